package model

import (
	"fmt"
	"time"
)

// RouteStop is one station on a train's single fixed route, with the
// cumulative distance from the origin.  Route distance lookups are the
// only thing the fare calculator needs from the catalog.
type RouteStop struct {
	StationCode string
	StationName string
	DistanceKM  float64
}

// Train aggregates the ordered coach list and the fixed route.  Trains
// are registered once at startup and treated as immutable during
// booking operations; the reservation core only ever reads them.
//
// Fields:
//  ID            – public train number, e.g. "12951".
//  Name          – display name.
//  Coaches       – ordered coach list; registration order is the
//                  allocator's coach tie-break order.
//  Route         – ordered stops with cumulative distances.
//  DepartureHour – departure clock time at the origin station (UTC).
//  DepartureMin  – minute component of the departure time.
type Train struct {
	ID            string
	Name          string
	Coaches       []*Coach
	Route         []RouteStop
	DepartureHour int
	DepartureMin  int
}

// CoachesOf returns the train's coaches of the given type in
// registration order.
func (t *Train) CoachesOf(ct CoachType) []*Coach {
	var out []*Coach
	for _, c := range t.Coaches {
		if c.Type == ct {
			out = append(out, c)
		}
	}
	return out
}

// stop looks up a route stop by station code.
func (t *Train) stop(code string) (RouteStop, bool) {
	for _, s := range t.Route {
		if s.StationCode == code {
			return s, true
		}
	}
	return RouteStop{}, false
}

// HasStation reports whether the station code appears on the route.
func (t *Train) HasStation(code string) bool {
	_, ok := t.stop(code)
	return ok
}

// DistanceBetween returns the absolute difference of the cumulative
// route distances of two stops.  Both stations must be on the route.
func (t *Train) DistanceBetween(src, dst string) (float64, error) {
	from, ok := t.stop(src)
	if !ok {
		return 0, fmt.Errorf("station %q is not on the route of train %s", src, t.ID)
	}
	to, ok := t.stop(dst)
	if !ok {
		return 0, fmt.Errorf("station %q is not on the route of train %s", dst, t.ID)
	}
	d := to.DistanceKM - from.DistanceKM
	if d < 0 {
		d = -d
	}
	return d, nil
}

// DepartureAt combines a travel date with the train's departure clock
// time.  Refund tiers are computed against this instant.
func (t *Train) DepartureAt(date TravelDate) time.Time {
	day := date.Day()
	return time.Date(day.Year(), day.Month(), day.Day(), t.DepartureHour, t.DepartureMin, 0, 0, time.UTC)
}
