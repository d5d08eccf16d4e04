package main

import (
	"fmt"
	"io"
	"math"

	"nmea-route/internal/route"
)

type routeSummary struct {
	route.Stats
	Positions int      `json:"positions"`
	LengthM   float64  `json:"length_m"`
	MinElevM  *float64 `json:"min_elev_m,omitempty"`
	MaxElevM  *float64 `json:"max_elev_m,omitempty"`
}

func summarizeRoute(r route.Route, st route.Stats) routeSummary {
	s := routeSummary{Stats: st, Positions: r.Len(), LengthM: r.Length()}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range r.All() {
		elev, ok := p.Elevation()
		if !ok {
			continue
		}
		lo = math.Min(lo, elev)
		hi = math.Max(hi, elev)
	}
	if !math.IsInf(lo, 1) {
		s.MinElevM = &lo
		s.MaxElevM = &hi
	}
	return s
}

func printRouteSummary(w io.Writer, s routeSummary) error {
	lines := []string{
		fmt.Sprintf("lines: %d", s.Lines),
		fmt.Sprintf("positions: %d", s.Positions),
		fmt.Sprintf("skipped: %d", s.Skipped()),
		fmt.Sprintf("  malformed: %d", s.Malformed),
		fmt.Sprintf("  checksum_mismatch: %d", s.ChecksumMismatch),
		fmt.Sprintf("  unsupported: %d", s.Unsupported),
		fmt.Sprintf("  invalid_field: %d", s.InvalidField),
		fmt.Sprintf("length_m: %.1f", s.LengthM),
	}
	if s.MinElevM != nil {
		lines = append(lines, fmt.Sprintf("elev_m: %.1f..%.1f", *s.MinElevM, *s.MaxElevM))
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
