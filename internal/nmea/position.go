package nmea

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"nmea-route/internal/geo"
)

// SentenceType identifies one of the supported positioning sentences.
type SentenceType int

const (
	UnknownType SentenceType = iota
	GLL
	RMC
	GGA
	numSentenceTypes
)

var sentenceTypeNames = [numSentenceTypes]string{
	UnknownType: "",
	GLL:         "GLL",
	RMC:         "RMC",
	GGA:         "GGA",
}

func (t SentenceType) String() string {
	if t <= UnknownType || t >= numSentenceTypes {
		return fmt.Sprintf("SentenceType(%d)", int(t))
	}
	return sentenceTypeNames[t]
}

// ParseSentenceType maps a three letter type code onto a SentenceType.
func ParseSentenceType(code string) (SentenceType, bool) {
	for t := GLL; t < numSentenceTypes; t++ {
		if sentenceTypeNames[t] == code {
			return t, true
		}
	}
	return UnknownType, false
}

// Arity is the type's base field count.
func (t SentenceType) Arity() int {
	if t <= UnknownType || t >= numSentenceTypes {
		return 0
	}
	return schemas[t].arities[0]
}

const noField = -1

// fieldSchema gives each role its index in SentenceData.Fields. GLL also
// takes the trailing status field, which NMEA 2.0 receivers append.
type fieldSchema struct {
	arities []int
	lat     int
	latDir  int
	lon     int
	lonDir  int
	elev    int
}

var schemas = [numSentenceTypes]fieldSchema{
	// 0 lat, 1 N/S, 2 lon, 3 E/W, 4 time, [5 status]
	GLL: {arities: []int{5, 6}, lat: 0, latDir: 1, lon: 2, lonDir: 3, elev: noField},
	// 0 time, 1 status, 2 lat, 3 N/S, 4 lon, 5 E/W, 6 knots, 7 course,
	// 8 date, 9 magvar, 10 E/W
	RMC: {arities: []int{11}, lat: 2, latDir: 3, lon: 4, lonDir: 5, elev: noField},
	// 0 time, 1 lat, 2 N/S, 3 lon, 4 E/W, 5 quality, 6 sats, 7 hdop,
	// 8 altitude, 9 M, 10 geoid separation, 11 M, 12 dgps age, 13 station
	GGA: {arities: []int{14}, lat: 1, latDir: 2, lon: 3, lonDir: 4, elev: 8},
}

func validLatitudeDir(d string) bool {
	switch d {
	case "N", "S":
		return true
	}
	return false
}

func validLongitudeDir(d string) bool {
	switch d {
	case "E", "W":
		return true
	}
	return false
}

// InvalidFieldError reports a sentence whose fields do not fit its schema.
// Field is the offending index, or -1 when the field count is wrong.
type InvalidFieldError struct {
	Type   string
	Field  int
	Value  string
	Reason string
	Err    error
}

func (e *InvalidFieldError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "nmea: invalid %s field", e.Type)
	if e.Field >= 0 {
		fmt.Fprintf(&b, " %d (%q)", e.Field, e.Value)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *InvalidFieldError) Unwrap() error { return e.Err }

// UnsupportedSentenceTypeError reports a type code other than GLL, RMC or GGA.
type UnsupportedSentenceTypeError struct {
	Type string
}

func (e *UnsupportedSentenceTypeError) Error() string {
	return fmt.Sprintf("nmea: unsupported sentence type %q", e.Type)
}

// BuildPosition maps the fields of a GLL, RMC or GGA sentence onto a
// position. Failures are *InvalidFieldError or *UnsupportedSentenceTypeError.
func BuildPosition(data SentenceData) (geo.Position, error) {
	if len(data.Fields) == 0 {
		return geo.Position{}, &InvalidFieldError{Type: data.Type, Field: -1, Reason: "no fields"}
	}
	t, ok := ParseSentenceType(data.Type)
	if !ok {
		return geo.Position{}, &UnsupportedSentenceTypeError{Type: data.Type}
	}
	sc := schemas[t]
	f := data.Fields
	if !slices.Contains(sc.arities, len(f)) {
		return geo.Position{}, &InvalidFieldError{
			Type:   data.Type,
			Field:  -1,
			Reason: fmt.Sprintf("got %d fields, want one of %v", len(f), sc.arities),
		}
	}

	for _, idx := range []int{sc.lat, sc.lon} {
		if _, err := strconv.ParseFloat(f[idx], 64); err != nil {
			return geo.Position{}, &InvalidFieldError{Type: data.Type, Field: idx, Value: f[idx], Reason: "not numeric", Err: err}
		}
	}
	if !validLatitudeDir(f[sc.latDir]) {
		return geo.Position{}, &InvalidFieldError{Type: data.Type, Field: sc.latDir, Value: f[sc.latDir], Reason: "latitude direction must be N or S"}
	}
	if !validLongitudeDir(f[sc.lonDir]) {
		return geo.Position{}, &InvalidFieldError{Type: data.Type, Field: sc.lonDir, Value: f[sc.lonDir], Reason: "longitude direction must be E or W"}
	}

	pos, err := geo.FromNMEA(f[sc.lat], f[sc.latDir], f[sc.lon], f[sc.lonDir])
	if err != nil {
		return geo.Position{}, &InvalidFieldError{Type: data.Type, Field: -1, Reason: "bad coordinate", Err: err}
	}

	if sc.elev != noField && f[sc.elev] != "" {
		elev, err := strconv.ParseFloat(f[sc.elev], 64)
		if err != nil {
			return geo.Position{}, &InvalidFieldError{Type: data.Type, Field: sc.elev, Value: f[sc.elev], Reason: "elevation not numeric", Err: err}
		}
		pos = pos.WithElevation(elev)
	}
	return pos, nil
}
