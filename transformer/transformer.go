// Package transformer turns raw CSV trip records into derived trip data:
// parsed waypoints, aggregated metrics and calendar features.
package transformer

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/praynham/taxi-predict/model"
	"github.com/praynham/taxi-predict/polyline"
	"github.com/praynham/taxi-predict/timeinfo"
	"github.com/praynham/taxi-predict/trip"
)

// Derived bundles everything the output drivers need for one trip record.
type Derived struct {
	Record    *model.TripRecord
	Waypoints []polyline.Waypoint
	Metrics   trip.Metrics
	Stamp     timeinfo.Stamp
	Missing   bool // no GPS data, or the source flagged incomplete logging
}

// TripTransformer derives trip data from raw records.
type TripTransformer struct {
	log zerolog.Logger
}

func NewTripTransformer(log zerolog.Logger) *TripTransformer {
	return &TripTransformer{log: log}
}

// Derive parses and aggregates a single record. A malformed polyline
// degrades to zero geometry and a warning; it never fails the record.
func (t *TripTransformer) Derive(rec *model.TripRecord) *Derived {
	waypoints, diags := polyline.Parse(rec.Polyline)
	for _, d := range diags {
		t.log.Warn().Str("trip_id", rec.TripID).Msg(d)
	}

	unix, err := strconv.ParseInt(rec.Timestamp, 10, 64)
	if err != nil {
		t.log.Warn().Str("trip_id", rec.TripID).Str("timestamp", rec.Timestamp).
			Msg("unparseable timestamp, treating as epoch")
		unix = 0
	}

	return &Derived{
		Record:    rec,
		Waypoints: waypoints,
		Metrics:   trip.Aggregate(waypoints),
		Stamp:     timeinfo.Decode(unix),
		Missing:   len(waypoints) == 0 || strings.HasPrefix(rec.MissingData, "T"),
	}
}

// Transform derives storable summary records from a batch of raw records.
// Records without a trip id are skipped.
func (t *TripTransformer) Transform(records []*model.TripRecord) ([]model.TripSummary, error) {
	out := make([]model.TripSummary, 0, len(records))
	now := time.Now().UTC()

	for _, rec := range records {
		if rec.TripID == "" {
			t.log.Warn().Msg("skipping record with empty TRIP_ID")
			continue
		}
		d := t.Derive(rec)
		out = append(out, model.TripSummary{
			TripID:      rec.TripID,
			CallType:    rec.CallType,
			OriginCall:  rec.OriginCall,
			OriginStand: rec.OriginStand,
			TaxiID:      rec.TaxiID,
			Timestamp:   d.Stamp.Unix,
			DayType:     rec.DayType,
			WeekDay:     d.Stamp.WeekDay,
			DayBusy:     d.Stamp.DayBusy,
			DayHour:     d.Stamp.DayHour,
			MissingData: d.Missing,
			DriveDist:   d.Metrics.DriveDist,
			TripDist:    d.Metrics.TripDist,
			TripTime:    d.Metrics.TripTime,
			AvgSpeed:    d.Metrics.AvgSpeed,
			TripSpeed:   d.Metrics.TripSpeed,
			Outlier:     d.Metrics.Outlier.String(),
			IngestedAt:  now,
		})
	}
	return out, nil
}
