package nmea

import (
	"errors"

	"nmea-route/internal/geo"
)

var (
	ErrMalformed        = errors.New("nmea: malformed sentence")
	ErrChecksumMismatch = errors.New("nmea: checksum mismatch")
)

// Decode runs one line through every stage. Malformed lines return
// ErrMalformed and bad checksums ErrChecksumMismatch; the remaining
// failures come from BuildPosition.
func Decode(line string) (geo.Position, error) {
	if !IsWellFormed(line) {
		return geo.Position{}, ErrMalformed
	}
	if !HasValidChecksum(line) {
		return geo.Position{}, ErrChecksumMismatch
	}
	return BuildPosition(Extract(line))
}
