package trip

import (
	"testing"

	"github.com/praynham/taxi-predict/polyline"
)

// trace builds an eastbound waypoint sequence with n fixes spaced segDist
// metres apart. Positions only matter for the straight-line distance, so the
// longitude step is a rough city-scale approximation.
func trace(n int, segDist float64) []polyline.Waypoint {
	seq := make([]polyline.Waypoint, n)
	for i := range seq {
		seq[i].Lon = -8.61 + float64(i)*segDist/84000
		seq[i].Lat = 41.14
		if i > 0 {
			seq[i].Dist = segDist
			seq[i].Heading = 180
		}
	}
	return seq
}

func TestAggregateEmptySequence(t *testing.T) {
	m := Aggregate(nil)

	if m.DriveDist != 0 || m.TripDist != 0 || m.TripTime != 0 ||
		m.AvgSpeed != 0 || m.TripSpeed != 0 || m.MaxSegment != 0 {
		t.Errorf("expected all-zero metrics for an empty sequence, got %+v", m)
	}
	if m.Outlier != TooShortTime {
		t.Errorf("expected TOO_SHORT_TIME for an empty sequence, got %s", m.Outlier)
	}
}

func TestAggregateTripTime(t *testing.T) {
	cases := []struct {
		points int
		want   float64
	}{
		{1, 0},
		{2, 0.25},
		{3, 0.5},
		{5, 1.0},
		{41, 10.0},
	}

	for _, tc := range cases {
		m := Aggregate(trace(tc.points, 100))
		if m.TripTime != tc.want {
			t.Errorf("%d points: expected trip time %f, got %f", tc.points, tc.want, m.TripTime)
		}
	}
}

func TestAggregateSpeeds(t *testing.T) {
	// One 100 m segment over 0.25 min is exactly 24 km/h.
	m := Aggregate(trace(2, 100))

	if m.DriveDist != 100 {
		t.Errorf("expected drive distance 100, got %f", m.DriveDist)
	}
	if m.AvgSpeed != 24.0 {
		t.Errorf("expected average speed 24.0 km/h, got %f", m.AvgSpeed)
	}
	if m.TripSpeed <= 0 {
		t.Errorf("expected positive trip speed, got %f", m.TripSpeed)
	}
}

func TestAggregateMaxSegment(t *testing.T) {
	seq := trace(4, 100)
	seq[2].Dist = 300
	m := Aggregate(seq)

	if m.MaxSegment != 300 {
		t.Errorf("expected max segment 300, got %f", m.MaxSegment)
	}
	if m.DriveDist != 500 {
		t.Errorf("expected drive distance 500, got %f", m.DriveDist)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	seq := trace(5, 200)
	a := Aggregate(seq)
	b := Aggregate(seq)
	if a != b {
		t.Errorf("metrics differ across calls: %+v vs %+v", a, b)
	}
}

func TestClassification(t *testing.T) {
	cases := []struct {
		name string
		seq  []polyline.Waypoint
		want Outlier
	}{
		{"single fix", trace(1, 0), TooShortTime},
		{"one segment", trace(2, 100), TooShortTime},
		{"stationary", trace(3, 0), TooShortDistance},
		{"teleport", trace(3, 700), TooFast},
		{"accepted", trace(5, 200), Accepted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Aggregate(tc.seq)
			if m.Outlier != tc.want {
				t.Errorf("expected %s, got %s", tc.want, m.Outlier)
			}
		})
	}
}

func TestClassificationTooSlow(t *testing.T) {
	// Endpoints far enough apart to pass the distance rule, but segment
	// distances summing to almost nothing.
	seq := trace(3, 0)
	seq[2].Lon = -8.60
	seq[1].Dist = 1
	seq[2].Dist = 1

	m := Aggregate(seq)
	if m.Outlier != TooSlow {
		t.Errorf("expected TOO_SLOW, got %s (metrics %+v)", m.Outlier, m)
	}
}

func TestClassificationTimeRuleWins(t *testing.T) {
	// A trip both too short and impossibly fast reports the time rule;
	// the rules are evaluated in priority order.
	m := Aggregate(trace(2, 10000))
	if m.Outlier != TooShortTime {
		t.Errorf("expected TOO_SHORT_TIME to win, got %s", m.Outlier)
	}
}

func TestOutlierNames(t *testing.T) {
	cases := []struct {
		o    Outlier
		want string
	}{
		{Accepted, "ACCEPTED"},
		{TooShortTime, "TOO_SHORT_TIME"},
		{TooShortDistance, "TOO_SHORT_DISTANCE"},
		{TooSlow, "TOO_SLOW"},
		{TooFast, "TOO_FAST"},
		{Outlier(99), "UNKNOWN"},
	}
	for _, tc := range cases {
		if got := tc.o.String(); got != tc.want {
			t.Errorf("Outlier(%d).String(): expected %q, got %q", tc.o, tc.want, got)
		}
	}

	if Accepted.Reason() != "accepted" {
		t.Errorf("unexpected accepted reason %q", Accepted.Reason())
	}
	if TooFast.Reason() != "ignored - taxi exceeded 150 km/h" {
		t.Errorf("unexpected too-fast reason %q", TooFast.Reason())
	}
}

func TestSampleAt(t *testing.T) {
	seq := trace(41, 100) // exactly a 10-minute trip

	cases := []struct {
		offset int
		index  int
	}{
		{0, 0},
		{2, 8},
		{5, 20},
		{10, 40},
		{Finish, 40},
	}

	for _, tc := range cases {
		wp, ok := SampleAt(seq, tc.offset)
		if !ok {
			t.Errorf("offset %d: expected a waypoint", tc.offset)
			continue
		}
		if wp != seq[tc.index] {
			t.Errorf("offset %d: expected waypoint %d", tc.offset, tc.index)
		}
	}
}

func TestSampleAtShortTrip(t *testing.T) {
	seq := trace(5, 100) // one minute

	if _, ok := SampleAt(seq, 2); ok {
		t.Error("expected no waypoint at the 2-minute mark of a 1-minute trip")
	}
	wp, ok := SampleAt(seq, Finish)
	if !ok || wp != seq[4] {
		t.Error("expected the finish sample to be the last waypoint")
	}
}

func TestSampleAtEmpty(t *testing.T) {
	for _, offset := range SampleOffsets {
		if _, ok := SampleAt(nil, offset); ok {
			t.Errorf("offset %d: expected no waypoint from an empty sequence", offset)
		}
	}
}

func TestSampleOffsetsFinishLast(t *testing.T) {
	if SampleOffsets[len(SampleOffsets)-1] != Finish {
		t.Error("expected the finish mark to close the offset list")
	}
	if Finish >= 0 {
		t.Error("finish sentinel must be negative")
	}
}
