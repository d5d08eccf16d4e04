// Package geo holds the immutable position value produced by the NMEA
// decoder, along with distance and UTM helpers.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusM is the mean Earth radius (IUGG) used for great-circle distances.
const EarthRadiusM = 6371008.8

var (
	ErrInvalidHemisphere = errors.New("geo: invalid hemisphere")
	ErrInvalidCoordinate = errors.New("geo: coordinate out of range")
)

type Position struct {
	latDeg  float64
	lonDeg  float64
	elevM   float64
	hasElev bool
}

// FromDegrees builds a Position from signed decimal degrees.
func FromDegrees(latDeg, lonDeg float64) (Position, error) {
	if math.IsNaN(latDeg) || latDeg < -90 || latDeg > 90 {
		return Position{}, fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, latDeg)
	}
	if math.IsNaN(lonDeg) || lonDeg < -180 || lonDeg > 180 {
		return Position{}, fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, lonDeg)
	}
	return Position{latDeg: latDeg, lonDeg: lonDeg}, nil
}

// FromNMEA builds a Position from the NMEA latitude (ddmm.mmmm) and
// longitude (dddmm.mmmm) strings and their hemisphere letters.
func FromNMEA(lat, latHemi, lon, lonHemi string) (Position, error) {
	latDeg, err := ParseLatitude(lat, latHemi)
	if err != nil {
		return Position{}, err
	}
	lonDeg, err := ParseLongitude(lon, lonHemi)
	if err != nil {
		return Position{}, err
	}
	return Position{latDeg: latDeg, lonDeg: lonDeg}, nil
}

// ParseLatitude converts ddmm.mmmm plus N/S into signed degrees.
func ParseLatitude(v, hemi string) (float64, error) {
	var sign float64
	switch hemi {
	case "N":
		sign = 1
	case "S":
		sign = -1
	default:
		return 0, fmt.Errorf("%w: latitude %q", ErrInvalidHemisphere, hemi)
	}
	deg, err := parseDegMin(v, 90)
	if err != nil {
		return 0, fmt.Errorf("latitude %q: %w", v, err)
	}
	return sign * deg, nil
}

// ParseLongitude converts dddmm.mmmm plus E/W into signed degrees.
func ParseLongitude(v, hemi string) (float64, error) {
	var sign float64
	switch hemi {
	case "E":
		sign = 1
	case "W":
		sign = -1
	default:
		return 0, fmt.Errorf("%w: longitude %q", ErrInvalidHemisphere, hemi)
	}
	deg, err := parseDegMin(v, 180)
	if err != nil {
		return 0, fmt.Errorf("longitude %q: %w", v, err)
	}
	return sign * deg, nil
}

// parseDegMin splits an unsigned NMEA degrees+minutes value. The last two
// integer digits are whole minutes, everything before them is degrees.
func parseDegMin(v string, maxDeg float64) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidCoordinate)
	}
	raw, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if raw < 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCoordinate, raw)
	}
	deg := math.Trunc(raw / 100)
	mins := raw - deg*100
	if mins >= 60 {
		return 0, fmt.Errorf("%w: minutes %v", ErrInvalidCoordinate, mins)
	}
	dec := deg + mins/60.0
	if dec > maxDeg {
		return 0, fmt.Errorf("%w: %v > %v", ErrInvalidCoordinate, dec, maxDeg)
	}
	return dec, nil
}

// WithElevation returns a copy of p carrying an elevation in meters.
func (p Position) WithElevation(m float64) Position {
	p.elevM = m
	p.hasElev = true
	return p
}

func (p Position) Latitude() float64  { return p.latDeg }
func (p Position) Longitude() float64 { return p.lonDeg }

// Elevation reports meters above mean sea level, if the source sentence had one.
func (p Position) Elevation() (float64, bool) { return p.elevM, p.hasElev }

func (p Position) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.latDeg, p.lonDeg)
}

// DistanceTo is the great-circle distance in meters, ignoring elevation.
func (p Position) DistanceTo(q Position) float64 {
	var a s1.Angle = p.LatLng().Distance(q.LatLng())
	return a.Radians() * EarthRadiusM
}

func (p Position) String() string {
	if p.hasElev {
		return fmt.Sprintf("%.6f,%.6f,%.1fm", p.latDeg, p.lonDeg, p.elevM)
	}
	return fmt.Sprintf("%.6f,%.6f", p.latDeg, p.lonDeg)
}
