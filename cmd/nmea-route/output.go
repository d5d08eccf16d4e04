package main

import (
	"encoding/json"
	"fmt"
	"io"

	"nmea-route/internal/config"
	"nmea-route/internal/geo"
	"nmea-route/internal/route"
)

type positionJSON struct {
	LatDeg float64  `json:"lat_deg"`
	LonDeg float64  `json:"lon_deg"`
	ElevM  *float64 `json:"elev_m,omitempty"`
	UTM    string   `json:"utm,omitempty"`
}

type routeJSON struct {
	Positions []positionJSON `json:"positions"`
	Summary   *routeSummary  `json:"summary,omitempty"`
}

func writeRoute(w io.Writer, r route.Route, st route.Stats, out config.OutputConfig) error {
	if out.Format == config.FormatJSON {
		return writeRouteJSON(w, r, st, out)
	}
	for i, p := range r.All() {
		line := fmt.Sprintf("%d %.6f %.6f", i, p.Latitude(), p.Longitude())
		if elev, ok := p.Elevation(); ok {
			line += fmt.Sprintf(" %.1f", elev)
		}
		if out.UTM {
			line += " " + utmString(p)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if out.ShowSummary() {
		return printRouteSummary(w, summarizeRoute(r, st))
	}
	return nil
}

func writeRouteJSON(w io.Writer, r route.Route, st route.Stats, out config.OutputConfig) error {
	doc := routeJSON{Positions: make([]positionJSON, 0, r.Len())}
	for _, p := range r.All() {
		pj := positionJSON{LatDeg: p.Latitude(), LonDeg: p.Longitude()}
		if elev, ok := p.Elevation(); ok {
			pj.ElevM = &elev
		}
		if out.UTM {
			pj.UTM = utmString(p)
		}
		doc.Positions = append(doc.Positions, pj)
	}
	if out.ShowSummary() {
		s := summarizeRoute(r, st)
		doc.Summary = &s
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func utmString(p geo.Position) string {
	c, err := p.UTM()
	if err != nil {
		return "-"
	}
	return geo.FormatUTM(c)
}
