// Package polyline parses the bracketed coordinate-pair encoding that the
// Porto taxi dataset uses for a trip's GPS trace.
package polyline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/praynham/taxi-predict/geo"
)

// Waypoint is one GPS fix along a trip together with its geometric relation
// to the preceding fix. Consecutive waypoints are 15 seconds apart.
type Waypoint struct {
	Lon     float64 // degrees, -180..180
	Lat     float64 // degrees, -180..180
	Dist    float64 // metres from the preceding waypoint, 0 for the first
	Heading float64 // degrees, 0=west 90=north ±180=east; 0 when Dist is 0
}

// Parse converts text of the form [[lon0,lat0],[lon1,lat1],...] into an
// ordered waypoint sequence. An empty list yields a nil sequence. Malformed
// numeric content degrades that waypoint to (0, 0) and adds at most one
// diagnostic for the whole call; a pair with an absent coordinate degrades
// silently. Parse never fails.
//
// Segment geometry is carried by a last-known-position cursor that starts at
// (0, 0), so a trip whose first fix is literally 0,0 longitude/latitude is
// indistinguishable from having no previous position and yields zero
// distance and heading for the following segment.
func Parse(text string) ([]Waypoint, []string) {
	body := strings.TrimRight(strings.TrimLeft(text, "["), "]")
	frags := strings.Split(body, "],[")
	if len(frags) == 1 && frags[0] == "" {
		return nil, nil
	}

	var diags []string
	waypoints := make([]Waypoint, 0, len(frags))
	lastLon, lastLat := 0.0, 0.0
	for _, frag := range frags {
		lonText, latText, _ := strings.Cut(frag, ",")
		lon, lonErr := strconv.ParseFloat(lonText, 64)
		lat, latErr := strconv.ParseFloat(latText, 64)
		if lonErr != nil || latErr != nil {
			if lonText != "" && latText != "" && len(diags) == 0 {
				diags = append(diags, fmt.Sprintf("cannot parse trip polyline: %s", text))
			}
			lon, lat = 0, 0
		}

		wp := Waypoint{Lon: lon, Lat: lat}
		if lastLon != 0 && lastLat != 0 {
			wp.Dist = geo.PlanarDistance(lon, lat, lastLon, lastLat)
			wp.Heading = geo.PlanarHeading(lon, lat, lastLon, lastLat)
		}
		lastLon, lastLat = lon, lat
		waypoints = append(waypoints, wp)
	}
	return waypoints, diags
}
