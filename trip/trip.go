// Package trip aggregates a waypoint sequence into trip-level metrics:
// driven distance, straight-line distance, elapsed time, derived speeds,
// a data-quality classification and fixed-offset position samples.
package trip

import (
	"github.com/praynham/taxi-predict/geo"
	"github.com/praynham/taxi-predict/polyline"
)

// TickMinutes is the fixed interval between consecutive waypoints.
const TickMinutes = 0.25

// Acceptance thresholds for the outlier rules.
const (
	minTripTime    = 0.5 // minutes
	minTripDist    = 30  // metres, straight line
	minDrivePace   = 5   // metres per minute of driven distance
	maxSegmentDist = 625 // metres per 15-second segment, ~150 km/h
)

// Outlier is the data-quality bucket a trip falls into. The rules are
// mutually exclusive and evaluated in declaration order, first match wins.
type Outlier int

const (
	Accepted Outlier = iota
	TooShortTime
	TooShortDistance
	TooSlow
	TooFast
)

var outlierNames = [...]string{"ACCEPTED", "TOO_SHORT_TIME", "TOO_SHORT_DISTANCE", "TOO_SLOW", "TOO_FAST"}

func (o Outlier) String() string {
	if o < Accepted || int(o) >= len(outlierNames) {
		return "UNKNOWN"
	}
	return outlierNames[o]
}

// Reason returns the human explanation used in acceptance reports.
func (o Outlier) Reason() string {
	switch o {
	case TooShortTime:
		return "ignored - trip less than 30 seconds"
	case TooShortDistance:
		return "ignored - trip less than 30 metres"
	case TooSlow:
		return "ignored - taxi averaged under 5 km/h"
	case TooFast:
		return "ignored - taxi exceeded 150 km/h"
	}
	return "accepted"
}

// Metrics are the derived trip-level values, computed once per trip.
// Every field has a finite zero default for a degenerate sequence.
type Metrics struct {
	DriveDist  float64 // metres actually driven, sum of segments
	TripDist   float64 // metres start to end, straight line
	TripTime   float64 // minutes
	AvgSpeed   float64 // km/h over the driven distance, 0 for a zero-time trip
	TripSpeed  float64 // km/h over the straight-line distance
	MaxSegment float64 // longest single 15-second segment, metres
	Outlier    Outlier
}

// Aggregate folds a waypoint sequence into its trip metrics. It is a pure
// function; an empty sequence yields zero values classified TooShortTime.
func Aggregate(seq []polyline.Waypoint) Metrics {
	var m Metrics
	for _, w := range seq {
		m.DriveDist += w.Dist
		if w.Dist > m.MaxSegment {
			m.MaxSegment = w.Dist
		}
	}
	if len(seq) > 0 {
		first, last := seq[0], seq[len(seq)-1]
		m.TripDist = geo.PlanarDistance(first.Lon, first.Lat, last.Lon, last.Lat)
	}
	if gaps := len(seq) - 1; gaps > 0 {
		m.TripTime = TickMinutes * float64(gaps)
	}
	if m.TripTime != 0 {
		m.AvgSpeed = m.DriveDist / m.TripTime * (60.0 / 1000.0)
		m.TripSpeed = m.TripDist / m.TripTime * (60.0 / 1000.0)
	}
	m.Outlier = classify(m)
	return m
}

// classify applies the acceptance rules in priority order. The time rule
// runs first, which also guarantees the segment maximum is never consulted
// for an empty sequence.
func classify(m Metrics) Outlier {
	switch {
	case m.TripTime < minTripTime:
		return TooShortTime
	case m.TripDist < minTripDist:
		return TooShortDistance
	case m.DriveDist/m.TripTime < minDrivePace:
		return TooSlow
	case m.MaxSegment > maxSegmentDist:
		return TooFast
	}
	return Accepted
}

// Finish selects the last waypoint of a trip in SampleAt, whatever the
// trip's length.
const Finish = -1

// SampleOffsets are the elapsed-minute marks emitted for prepared output.
var SampleOffsets = []int{0, 2, 5, 10, Finish}

// SampleAt returns the waypoint at the given elapsed-minute mark, or
// ok=false when the trip is too short to have one. The mark maps to index
// minutes*4; Finish maps to the last element.
func SampleAt(seq []polyline.Waypoint, offsetMinutes int) (polyline.Waypoint, bool) {
	ix := offsetMinutes * 4
	if offsetMinutes == Finish {
		ix = -1
	}
	if ix < 0 {
		ix += len(seq)
	}
	if ix < 0 || ix >= len(seq) {
		return polyline.Waypoint{}, false
	}
	return seq[ix], true
}
