// Package route folds a stream of NMEA log lines into an ordered route.
package route

import (
	"iter"
	"slices"

	"nmea-route/internal/geo"
)

// Route is an ordered sequence of positions, oldest first.
type Route struct {
	positions []geo.Position
}

// New builds a Route from positions already in chronological order.
func New(positions ...geo.Position) Route {
	return Route{positions: slices.Clone(positions)}
}

func (r Route) Len() int { return len(r.positions) }

func (r Route) At(i int) geo.Position { return r.positions[i] }

// Positions returns a copy of the route's positions.
func (r Route) Positions() []geo.Position {
	return slices.Clone(r.positions)
}

func (r Route) All() iter.Seq2[int, geo.Position] {
	return slices.All(r.positions)
}

// Length is the summed great-circle distance between consecutive
// positions, in meters.
func (r Route) Length() float64 {
	total := 0.0
	for i := 1; i < len(r.positions); i++ {
		total += r.positions[i-1].DistanceTo(r.positions[i])
	}
	return total
}
