package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testCSV = `TRIP_ID,CALL_TYPE,ORIGIN_CALL,ORIGIN_STAND,TAXI_ID,TIMESTAMP,DAY_TYPE,MISSING_DATA,POLYLINE
1372636858620000589,C,,,20000589,1372636858,A,False,"[[-8.618643,41.141412],[-8.618499,41.141376]]"
1372637303620000596,B,,7,20000596,1372637303,A,False,"[[-8.639847,41.159826]]"
1372636951620000320,C,,,20000320,1372636951,A,True,"[]"
`

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trips.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestFileRecords(t *testing.T) {
	src := File{Path: writeTestFile(t, testCSV)}
	records, err := src.Records()
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first.TripID != "1372636858620000589" {
		t.Errorf("unexpected trip id %q", first.TripID)
	}
	if first.CallType != "C" {
		t.Errorf("unexpected call type %q", first.CallType)
	}
	if first.Timestamp != "1372636858" {
		t.Errorf("unexpected timestamp %q", first.Timestamp)
	}
	// The quoted polyline must survive with its commas intact.
	if first.Polyline != "[[-8.618643,41.141412],[-8.618499,41.141376]]" {
		t.Errorf("unexpected polyline %q", first.Polyline)
	}

	if records[2].MissingData != "True" || records[2].Polyline != "[]" {
		t.Errorf("unexpected third record %+v", records[2])
	}
}

func TestFileRecordsMissingFile(t *testing.T) {
	src := File{Path: filepath.Join(t.TempDir(), "nope.csv")}
	if _, err := src.Records(); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestIsInteresting(t *testing.T) {
	want := map[int]bool{
		0: true, 1: true, 2: true, 3: true, 4: true, 6: true, 8: true,
		12: true, 16: true, 24: true, 32: true, 48: true,
	}

	for n := 0; n <= 50; n++ {
		if got := IsInteresting(n); got != want[n] {
			t.Errorf("IsInteresting(%d): expected %v, got %v", n, want[n], got)
		}
	}
}

func TestSelected(t *testing.T) {
	cases := []struct {
		n, start, limit int
		want            bool
	}{
		{0, 0, 10, true},
		{9, 0, 10, true},
		{10, 0, 10, false},
		{4, 5, 10, false},
		{5, 5, 10, true},
		{14, 5, 10, true},
		{15, 5, 10, false},
		{5, 0, 0, false}, // limit 0 falls back to the interesting spread
		{6, 0, 0, true},
	}

	for _, tc := range cases {
		if got := Selected(tc.n, tc.start, tc.limit); got != tc.want {
			t.Errorf("Selected(%d, %d, %d): expected %v, got %v",
				tc.n, tc.start, tc.limit, tc.want, got)
		}
	}
}

func TestRawSampleWindow(t *testing.T) {
	src := writeTestFile(t, testCSV)
	dst := filepath.Join(t.TempDir(), "sample.csv")

	count, err := RawSample(src, dst, 2, 1, true)
	if err != nil {
		t.Fatalf("RawSample failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 scanned rows, got %d", count)
	}

	out, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read sample: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "TRIP_ID,") {
		t.Errorf("expected the header to be copied, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1372637303620000596,") {
		t.Errorf("expected the window to start at row 1, got %q", lines[1])
	}
}

func TestRawSampleNoHeader(t *testing.T) {
	body := strings.SplitN(testCSV, "\n", 2)[1]
	src := writeTestFile(t, body)
	dst := filepath.Join(t.TempDir(), "sample.csv")

	count, err := RawSample(src, dst, 1, 0, false)
	if err != nil {
		t.Fatalf("RawSample failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 scanned row, got %d", count)
	}

	out, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read sample: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "1372636858620000589,") {
		t.Errorf("expected only the first data row, got %q", lines)
	}
}

func TestRawSampleSpread(t *testing.T) {
	// limit 0 copies the interesting spread from the whole file.
	var sb strings.Builder
	sb.WriteString("TRIP_ID,CALL_TYPE,ORIGIN_CALL,ORIGIN_STAND,TAXI_ID,TIMESTAMP,DAY_TYPE,MISSING_DATA,POLYLINE\n")
	for i := 0; i < 10; i++ {
		sb.WriteString("id,C,,,1,1372636858,A,False,\"[]\"\n")
	}
	src := writeTestFile(t, sb.String())
	dst := filepath.Join(t.TempDir(), "sample.csv")

	count, err := RawSample(src, dst, 0, 0, true)
	if err != nil {
		t.Fatalf("RawSample failed: %v", err)
	}
	if count != 10 {
		t.Errorf("expected all 10 rows scanned, got %d", count)
	}

	out, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read sample: %v", err)
	}
	// Rows 0,1,2,3,4,6,8 of 0..9 are interesting: header plus 7.
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 8 {
		t.Errorf("expected 8 lines, got %d", len(lines))
	}
}
