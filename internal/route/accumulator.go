package route

import (
	"errors"
	"iter"
	"slices"

	"github.com/charmbracelet/log"

	"nmea-route/internal/geo"
	"nmea-route/internal/nmea"
)

// Stats counts what happened to each line offered to an Accumulator.
type Stats struct {
	Lines            int `json:"lines"`
	Accepted         int `json:"accepted"`
	Malformed        int `json:"malformed"`
	ChecksumMismatch int `json:"checksum_mismatch"`
	Unsupported      int `json:"unsupported"`
	InvalidField     int `json:"invalid_field"`
}

func (s Stats) Skipped() int {
	return s.Lines - s.Accepted
}

type Option func(*Accumulator)

// WithLogger logs every skipped line at debug level.
func WithLogger(l *log.Logger) Option {
	return func(a *Accumulator) {
		a.logger = l
	}
}

// Accumulator appends the position of every acceptable line it is offered.
// A bad line is counted and dropped; it never aborts accumulation.
// The zero value is ready to use.
type Accumulator struct {
	logger    *log.Logger
	positions []geo.Position
	stats     Stats
}

func NewAccumulator(opts ...Option) *Accumulator {
	a := &Accumulator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add decodes one line and reports whether it extended the route.
func (a *Accumulator) Add(line string) bool {
	a.stats.Lines++
	pos, err := nmea.Decode(line)
	if err != nil {
		reason := a.count(err)
		if a.logger != nil {
			a.logger.Debug("skipped line", "reason", reason, "line", line, "err", err)
		}
		return false
	}
	a.stats.Accepted++
	a.positions = append(a.positions, pos)
	return true
}

func (a *Accumulator) count(err error) string {
	var unsupported *nmea.UnsupportedSentenceTypeError
	switch {
	case errors.Is(err, nmea.ErrMalformed):
		a.stats.Malformed++
		return "malformed"
	case errors.Is(err, nmea.ErrChecksumMismatch):
		a.stats.ChecksumMismatch++
		return "checksum"
	case errors.As(err, &unsupported):
		a.stats.Unsupported++
		return "unsupported"
	default:
		a.stats.InvalidField++
		return "invalid_field"
	}
}

// Route returns the positions accumulated so far. The result does not
// share storage with the accumulator.
func (a *Accumulator) Route() Route {
	return Route{positions: slices.Clone(a.positions)}
}

func (a *Accumulator) Stats() Stats { return a.stats }

// Build consumes lines front to back and returns the route of every valid
// positioning sentence, in input order.
func Build(lines iter.Seq[string], opts ...Option) Route {
	a := NewAccumulator(opts...)
	for line := range lines {
		a.Add(line)
	}
	return a.Route()
}

// Positions lazily decodes lines, yielding only valid positions. Lines are
// pulled from the source one at a time and only while the caller keeps
// ranging.
func Positions(lines iter.Seq[string]) iter.Seq[geo.Position] {
	return func(yield func(geo.Position) bool) {
		for line := range lines {
			pos, err := nmea.Decode(line)
			if err != nil {
				continue
			}
			if !yield(pos) {
				return
			}
		}
	}
}
