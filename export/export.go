// Package export writes the flattened summary file and the prepared file
// for statistical analysis.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/praynham/taxi-predict/dataset"
	"github.com/praynham/taxi-predict/model"
	"github.com/praynham/taxi-predict/transformer"
	"github.com/praynham/taxi-predict/trip"
)

// Options control row selection for the summary and prepare writers.
type Options struct {
	Limit  int // stop after this many source records when non-zero
	Sample int // write every sample-th record; 1 or less writes all
}

func (o Options) sample() int {
	if o.Sample < 1 {
		return 1
	}
	return o.Sample
}

// Tally counts trips per data-quality class, indexed by trip.Outlier.
type Tally [5]int

// Summary replaces each trip's waypoint list with the derived scalar
// metrics and writes the result as CSV. It returns the number of source
// records scanned.
func Summary(src dataset.Source, xf *transformer.TripTransformer, w io.Writer, opts Options) (int, error) {
	records, err := src.Records()
	if err != nil {
		return 0, err
	}

	sample := opts.sample()
	var rows []model.SummaryRow
	count := 0
	for _, rec := range records {
		if count%sample == 0 {
			rows = append(rows, summaryRow(xf.Derive(rec)))
		}
		count++
		if count == opts.Limit {
			break
		}
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return count, fmt.Errorf("failed to write summary: %w", err)
	}
	return count, nil
}

// Prepare writes the enriched per-trip file with calendar features and
// fixed-offset waypoint samples. Every selected row is written; the returned
// tally reports how each row was classified.
func Prepare(src dataset.Source, xf *transformer.TripTransformer, w io.Writer, opts Options) (int, Tally, error) {
	var tally Tally

	records, err := src.Records()
	if err != nil {
		return 0, tally, err
	}

	sample := opts.sample()
	var rows []model.PreparedRow
	count := 0
	for _, rec := range records {
		if count%sample == 0 {
			d := xf.Derive(rec)
			tally[d.Metrics.Outlier]++
			rows = append(rows, preparedRow(d))
		}
		count++
		if opts.Limit != 0 && count == opts.Limit*sample {
			break
		}
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return count, tally, fmt.Errorf("failed to write prepared file: %w", err)
	}
	return count, tally, nil
}

func summaryRow(d *transformer.Derived) model.SummaryRow {
	r := d.Record
	m := d.Metrics
	return model.SummaryRow{
		TripID:      r.TripID,
		CallType:    r.CallType,
		OriginCall:  r.OriginCall,
		OriginStand: r.OriginStand,
		TaxiID:      r.TaxiID,
		Timestamp:   r.Timestamp,
		DayType:     r.DayType,
		MissingData: formatBool(d.Missing),
		DriveDist:   fmt.Sprintf("%.3f", m.DriveDist/1000),
		TripDist:    fmt.Sprintf("%.3f", m.TripDist/1000),
		TripTime:    fmt.Sprintf("%.2f", m.TripTime),
	}
}

func preparedRow(d *transformer.Derived) model.PreparedRow {
	r := d.Record
	m := d.Metrics
	row := model.PreparedRow{
		TripID:      r.TripID,
		CallType:    r.CallType,
		OriginCall:  r.OriginCall,
		OriginStand: r.OriginStand,
		TaxiID:      r.TaxiID,
		Timestamp:   r.Timestamp,
		DayType:     r.DayType,
		WeekDay:     strconv.Itoa(d.Stamp.WeekDay),
		DayBusy:     d.Stamp.DayBusy,
		DayHour:     fmt.Sprintf("%.3f", d.Stamp.DayHour),
		MissingData: formatBool(d.Missing),
		DriveDist:   fmt.Sprintf("%.0f", m.DriveDist),
		TripDist:    fmt.Sprintf("%.0f", m.TripDist),
		TripTime:    fmt.Sprintf("%.2f", m.TripTime),
	}

	mark := func(lon, lat *string, offset int) {
		if wp, ok := trip.SampleAt(d.Waypoints, offset); ok {
			*lon = fmt.Sprintf("%.6f", wp.Lon)
			*lat = fmt.Sprintf("%.6f", wp.Lat)
		}
	}
	mark(&row.LonStart, &row.LatStart, 0)
	mark(&row.Lon02, &row.Lat02, 2)
	mark(&row.Lon05, &row.Lat05, 5)
	mark(&row.Lon10, &row.Lat10, 10)
	mark(&row.LonFinish, &row.LatFinish, trip.Finish)
	return row
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
