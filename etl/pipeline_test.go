package etl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/praynham/taxi-predict/dataset"
	"github.com/praynham/taxi-predict/transformer"
	"github.com/praynham/taxi-predict/tripstore"
)

func writeDataset(t *testing.T, rows int) string {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("TRIP_ID,CALL_TYPE,ORIGIN_CALL,ORIGIN_STAND,TAXI_ID,TIMESTAMP,DAY_TYPE,MISSING_DATA,POLYLINE\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "trip-%d,C,,,20000589,1372680000,A,False,\"[[-8.618643,41.141412],[-8.618499,41.141376]]\"\n", i)
	}

	path := filepath.Join(t.TempDir(), "trips.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}

func newPipeline(t *testing.T, dataPath string) (*Pipeline, *tripstore.TripStore) {
	t.Helper()

	repo, err := tripstore.NewTripStore(filepath.Join(t.TempDir(), "trips.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	p := NewPipeline(
		dataset.File{Path: dataPath},
		transformer.NewTripTransformer(zerolog.Nop()),
		repo,
		zerolog.Nop(),
	)
	return p, repo
}

func TestRunLoadsAllRecords(t *testing.T) {
	p, repo := newPipeline(t, writeDataset(t, 5))

	if err := p.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	count, err := repo.CountTrips()
	if err != nil {
		t.Fatalf("CountTrips failed: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5 trips in the store, got %d", count)
	}
}

func TestRunWithSample(t *testing.T) {
	p, repo := newPipeline(t, writeDataset(t, 10))
	p.Sample = 3 // keeps records 0, 3, 6, 9

	if err := p.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	count, err := repo.CountTrips()
	if err != nil {
		t.Fatalf("CountTrips failed: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 sampled trips, got %d", count)
	}
}

func TestRunWithLimit(t *testing.T) {
	p, repo := newPipeline(t, writeDataset(t, 10))
	p.Limit = 3

	if err := p.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	count, err := repo.CountTrips()
	if err != nil {
		t.Fatalf("CountTrips failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 trips, got %d", count)
	}
}

func TestRunMissingDataset(t *testing.T) {
	p, _ := newPipeline(t, filepath.Join(t.TempDir(), "nope.csv"))
	if err := p.Run(); err == nil {
		t.Error("expected an extract error for a missing dataset")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	p, repo := newPipeline(t, writeDataset(t, 4))

	if err := p.Run(); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if err := p.Run(); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	count, err := repo.CountTrips()
	if err != nil {
		t.Fatalf("CountTrips failed: %v", err)
	}
	if count != 4 {
		t.Errorf("expected the rerun to upsert, got %d trips", count)
	}
}
