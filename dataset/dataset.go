// Package dataset reads the Porto taxi CSV file and provides the record
// selection and raw-sampling helpers shared by the output drivers.
package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/praynham/taxi-predict/model"
)

func init() {
	// POLYLINE fields are quoted and full of commas; be lenient about
	// stray quoting in hand-edited sample files.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.LazyQuotes = true
		return r
	})
}

// Source yields the trip records of one dataset.
type Source interface {
	Records() ([]*model.TripRecord, error)
}

// File is a Source backed by a CSV file with a header row.
type File struct {
	Path string
}

func (f File) Records() ([]*model.TripRecord, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer fh.Close()

	var records []*model.TripRecord
	if err := gocsv.Unmarshal(fh, &records); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", f.Path, err)
	}
	return records, nil
}

// IsInteresting reports whether n belongs to the thinning selection
// 1, 2, 3, 4, 6, 8, 12, 16, 24, 32, ... (two-powers and sesqui-two-powers),
// used to show a reasonable spread of rows from a file of unknown size.
func IsInteresting(n int) bool {
	red := n & (n - 1)
	return red == 0 || red&(red-1) == 0 && n&(n>>1) != 0
}

// Selected reports whether record n falls in the window [start, start+limit),
// or in the interesting selection when limit is 0.
func Selected(n, start, limit int) bool {
	if limit != 0 {
		return n >= start && n < start+limit
	}
	return IsInteresting(n)
}

// RawSample copies a subset of raw lines from srcPath to dstPath, leaving
// the records untouched. The header line, when present, is always copied.
// It returns the number of data rows scanned.
func RawSample(srcPath, dstPath string, limit, start int, hasHead bool) (int, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open source: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create sample: %w", err)
	}
	defer dst.Close()

	scanner := bufio.NewScanner(src)
	// Long trips produce very long polyline fields.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	w := bufio.NewWriter(dst)

	count := 0
	didHead := false
	for scanner.Scan() {
		line := scanner.Text()
		if hasHead && !didHead {
			fmt.Fprintln(w, line)
			didHead = true
			continue
		}
		if Selected(count, start, limit) {
			fmt.Fprintln(w, line)
		}
		count++
		if limit != 0 && count >= start+limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("failed to read source: %w", err)
	}
	if err := w.Flush(); err != nil {
		return count, fmt.Errorf("failed to write sample: %w", err)
	}
	return count, nil
}
