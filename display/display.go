// Package display renders selected trip records in human-comprehensible
// form, including a per-waypoint listing with compass glyphs.
package display

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/praynham/taxi-predict/dataset"
	"github.com/praynham/taxi-predict/geo"
	"github.com/praynham/taxi-predict/polyline"
	"github.com/praynham/taxi-predict/transformer"
	"github.com/praynham/taxi-predict/trip"
)

// labels mirror the Porto CSV header order.
var labels = [...]string{
	"TRIP_ID", "CALL_TYPE", "ORIGIN_CALL", "ORIGIN_STAND", "TAXI_ID",
	"TIMESTAMP", "DAY_TYPE", "MISSING_DATA", "POLYLINE",
}

// Options select which records to render.
type Options struct {
	Limit int // 0 selects interesting rows from throughout the file
	Start int // first record to render when Limit is non-zero
}

// Render writes the selected trips to w and returns the number of records
// scanned.
func Render(src dataset.Source, xf *transformer.TripTransformer, w io.Writer, opts Options) (int, error) {
	records, err := src.Records()
	if err != nil {
		return 0, err
	}

	width := 3
	for _, label := range labels {
		if len(label) > width {
			width = len(label)
		}
	}

	count := 0
	for _, rec := range records {
		if dataset.Selected(count, opts.Start, opts.Limit) {
			fmt.Fprintf(w, "__%d%s\n", count, strings.Repeat("_", width))
			renderRecord(w, xf.Derive(rec), width)
			fmt.Fprintln(w)
		}
		count++
		if opts.Limit != 0 && count >= opts.Start+opts.Limit {
			break
		}
	}
	if count > 0 {
		fmt.Fprintln(w, strings.Repeat("_", width+2))
	}
	return count, nil
}

func renderRecord(w io.Writer, d *transformer.Derived, width int) {
	r := d.Record
	atoms := [...]string{
		r.TripID, r.CallType, r.OriginCall, r.OriginStand, r.TaxiID,
		r.Timestamp, r.DayType, r.MissingData, r.Polyline,
	}

	for i, label := range labels {
		if label != "POLYLINE" {
			suffix := annotate(label, atoms[i])
			if suffix != "" {
				suffix = "  (" + suffix + ")"
			}
			fmt.Fprintf(w, "%s: %s%s\n", rjust(label, width), atoms[i], suffix)
			continue
		}

		renderWaypoints(w, label, d.Waypoints, width)
		m := d.Metrics
		fmt.Fprintf(w, "%s: %6.3f %s\n", rjust("ROUTE_LEN", width), m.DriveDist/1000, "km")
		fmt.Fprintf(w, "%s: %6.3f %s\n", rjust("TRIP_LEN", width), m.TripDist/1000, "km")
		fmt.Fprintf(w, "%s: %5.2f %s\n", rjust("TRIP_TIME", width), m.TripTime, "min")
		fmt.Fprintf(w, "%s: %4.1f %s\n", rjust("AVG_SPEED", width), m.AvgSpeed, "km/h")
		fmt.Fprintf(w, "%s: %4.1f %s\n", rjust("TRIP_SPEED", width), m.TripSpeed, "km/h")
	}
}

// renderWaypoints prints one line per waypoint: elapsed minutes, position,
// segment distance and heading, plus a compass point and an arrow whose
// shaft length illustrates the speed.
func renderWaypoints(w io.Writer, label string, points []polyline.Waypoint, indent int) {
	fmt.Fprintf(w, "%s:\n", rjust(label, indent))
	prefix := strings.Repeat(" ", indent)
	ticks := 0.0
	for _, p := range points {
		if p.Dist != 0 {
			fmt.Fprintf(w, "%s%5.2f: %.6f, %.6f, %4.0fm, %4.0f°  %s%s\n",
				prefix, ticks, p.Lon, p.Lat, p.Dist, p.Heading,
				geo.CompassName(p.Heading), arrow(p))
		} else {
			fmt.Fprintf(w, "%s%5.2f: %.6f, %.6f, %4.0fm,    -\n",
				prefix, ticks, p.Lon, p.Lat, p.Dist)
		}
		ticks += trip.TickMinutes
	}
}

// arrow draws the direction/speed glyph. Headings in (-90, 90] are
// westward in the rotated convention and point left.
func arrow(p polyline.Waypoint) string {
	shaft := strings.Repeat("=", int(math.Min(30, math.Round(p.Dist/50))))
	if -90 < p.Heading && p.Heading <= 90 {
		return "<" + shaft
	}
	return shaft + ">"
}

// annotate returns a clarification for an atom of data, or "".
func annotate(label, atom string) string {
	switch label {
	case "CALL_TYPE":
		switch atom {
		case "A":
			return "central dispatch"
		case "B":
			return "taxi stand"
		case "C":
			return "street hail"
		case "":
			return ""
		}
		return "-"
	case "DAY_TYPE":
		switch atom {
		case "A":
			return "normal day"
		case "B":
			return "holiday"
		case "C":
			return "day before holiday"
		case "":
			return ""
		}
		return "-"
	case "TIMESTAMP":
		if unix, err := strconv.ParseInt(atom, 10, 64); err == nil {
			return time.Unix(unix, 0).UTC().Format("Jan-02 15:04:05")
		}
	}
	return ""
}

func rjust(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
