// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/sumprep/core"
	"github.com/poiesic/sumprep/storage"
)

// CheckpointType is the processor type under which exports record progress.
const CheckpointType = "export"

// Config holds configuration for an export.
type Config struct {
	// BatchSize is the number of records to fetch and write per batch
	BatchSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// Resume continues after the last exported record instead of starting over
	Resume bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 1000,
	}
}

// Validate checks the config for usable values.
func (c *Config) Validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("%w: batch size %d", ErrInvalidConfig, c.BatchSize)
	}
	if c.ReportInterval < 1 {
		return fmt.Errorf("%w: report interval %d", ErrInvalidConfig, c.ReportInterval)
	}
	return nil
}

// Stats summarizes one export run.
type Stats struct {
	Exported int
	LastID   core.ID
	Elapsed  time.Duration
}

// Exporter streams stored pair records to a Writer.
type Exporter struct {
	pairs       storage.PairRepository
	checkpoints storage.CheckpointRepository
	writer      Writer
	config      *Config
	progress    io.Writer
	iterator    *PairIterator
	logger      *slog.Logger
}

// NewExporter creates a new exporter.
// checkpoints may be nil unless config.Resume is set. progress: where to write progress output
// (typically os.Stderr); nil discards it.
func NewExporter(
	pairs storage.PairRepository,
	checkpoints storage.CheckpointRepository,
	writer Writer,
	config *Config,
	progress io.Writer,
) (*Exporter, error) {
	if pairs == nil {
		return nil, ErrPairRepositoryRequired
	}
	if writer == nil {
		return nil, ErrWriterRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Resume && checkpoints == nil {
		return nil, fmt.Errorf("%w: resume requires a checkpoint repository", ErrInvalidConfig)
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Exporter{
		pairs:       pairs,
		checkpoints: checkpoints,
		writer:      writer,
		config:      config,
		progress:    progress,
		iterator:    NewPairIterator(pairs, config.BatchSize),
		logger:      slog.Default().With("component", "exporter"),
	}, nil
}

// Run exports every stored record, or with Resume every record after the
// last checkpoint. With Resume the export checkpoint advances after each
// written batch.
func (e *Exporter) Run(ctx context.Context) (*Stats, error) {
	var start core.ID
	if e.config.Resume {
		checkpoint, err := e.checkpoints.LoadCheckpoint(ctx, CheckpointType)
		if err != nil {
			return nil, fmt.Errorf("failed to load export checkpoint: %w", err)
		}
		if checkpoint != nil {
			start = checkpoint.LastID
		}
	}

	// Only pairs past the checkpoint are exported, so only they count toward progress
	total, err := e.pairs.CountPairsAfter(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("failed to count pairs: %w", err)
	}
	if total == 0 {
		if start > 0 {
			fmt.Fprintf(e.progress, "No new pairs since last export (0 pairs)\n")
		} else {
			fmt.Fprintf(e.progress, "No pairs found in database (0 pairs)\n")
		}
		return &Stats{LastID: start}, nil
	}

	fmt.Fprintf(e.progress, "Starting export of %d pairs (batch size: %d)\n", total, e.config.BatchSize)

	tracker := NewProgressTracker(e.progress, total, e.config.ReportInterval)
	tracker.Start()

	stats := &Stats{LastID: start}
	err = e.iterator.ForEach(ctx, start, func(records []*core.PairRecord) error {
		if err := e.writer.Write(records); err != nil {
			return fmt.Errorf("failed to write batch: %w", err)
		}
		if err := e.writer.Flush(); err != nil {
			return fmt.Errorf("failed to flush batch: %w", err)
		}

		stats.Exported += len(records)
		stats.LastID = records[len(records)-1].Id
		tracker.Increment(len(records))

		e.saveCheckpoint(ctx, stats.LastID)
		return nil
	})
	if err != nil {
		return stats, err
	}

	tracker.Finish()
	stats.Elapsed = tracker.Elapsed()

	e.logger.Info("export complete", "exported", stats.Exported, "last_id", stats.LastID,
		"elapsed", stats.Elapsed.Round(time.Millisecond))
	return stats, nil
}

func (e *Exporter) saveCheckpoint(ctx context.Context, lastID core.ID) {
	if !e.config.Resume {
		return
	}
	checkpoint := &core.Checkpoint{ProcessorType: CheckpointType, LastID: lastID}
	if err := e.checkpoints.SaveCheckpoint(ctx, checkpoint); err != nil {
		e.logger.Error("error saving export checkpoint", "err", err)
	}
}
