// Package etl orchestrates the extract-transform-load run that fills the
// trip database from a dataset file.
package etl

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/praynham/taxi-predict/dataset"
	"github.com/praynham/taxi-predict/model"
	"github.com/praynham/taxi-predict/transformer"
	"github.com/praynham/taxi-predict/tripstore"
)

// Pipeline manages the end-to-end Extract-Transform-Load process.
type Pipeline struct {
	Source      dataset.Source
	Transformer *transformer.TripTransformer
	Repo        tripstore.Repository
	Log         zerolog.Logger

	Limit  int // stop after this many records when non-zero
	Sample int // keep every sample-th record when greater than 1
}

// NewPipeline creates a new ETL pipeline instance with all dependencies.
func NewPipeline(src dataset.Source, xf *transformer.TripTransformer, repo tripstore.Repository, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		Source:      src,
		Transformer: xf,
		Repo:        repo,
		Log:         log,
	}
}

// Run executes the full ETL cycle.
func (p *Pipeline) Run() error {
	start := time.Now()
	p.Log.Info().Msg("starting ETL cycle")

	records, err := p.Source.Records()
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}
	p.Log.Info().Int("records", len(records)).Msg("extracted raw trips")

	selected := p.window(records)

	summaries, err := p.Transformer.Transform(selected)
	if err != nil {
		return fmt.Errorf("transform failed: %w", err)
	}
	p.Log.Info().Int("records", len(summaries)).Msg("transformed trip summaries")

	if err := p.Repo.Load(summaries); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	p.Log.Info().
		Int("records", len(summaries)).
		Dur("elapsed", time.Since(start)).
		Msg("ETL cycle completed")

	return nil
}

// window applies the sample and limit options to the extracted records.
func (p *Pipeline) window(records []*model.TripRecord) []*model.TripRecord {
	sample := p.Sample
	if sample < 1 {
		sample = 1
	}

	selected := make([]*model.TripRecord, 0, len(records)/sample+1)
	for i, rec := range records {
		if i%sample == 0 {
			selected = append(selected, rec)
		}
		if p.Limit != 0 && len(selected) >= p.Limit {
			break
		}
	}
	return selected
}
