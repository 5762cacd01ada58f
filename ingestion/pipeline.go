package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sumprep/core"
	"github.com/poiesic/sumprep/storage"
)

const (
	// CheckpointType is the processor type under which Ingest records progress.
	CheckpointType = "ingest"

	// DefaultChunkSize is the number of groups prepared per pool task.
	DefaultChunkSize = 64
)

// Pipeline orchestrates the preparation and storage of sentence pairs.
// Chunks of document groups are prepared concurrently on a worker pool and
// written back in input order.
type Pipeline struct {
	pairRepository       storage.PairRepository
	checkpointRepository storage.CheckpointRepository
	pool                 *ants.Pool
	proc                 processor
	chunkSize            int
	splitMode            core.SplitMode
	keepFragments        bool
	retry                storage.RetryPolicy
	logger               *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent preparation.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.pool != nil {
			p.pool.Release()
		}
		p.pool = pool
		return nil
	}
}

// WithChunkSize sets how many groups each pool task prepares.
func WithChunkSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("%w: chunk size %d", ErrInvalidOption, size)
		}
		p.chunkSize = size
		return nil
	}
}

// WithSplitMode selects how sentences are tokenized for the fragment filter.
// Default is core.SplitSpace.
func WithSplitMode(mode core.SplitMode) Option {
	return func(p *Pipeline) error {
		p.splitMode = mode
		return nil
	}
}

// WithKeepFragments disables dropping of single-token fragments.
func WithKeepFragments(keep bool) Option {
	return func(p *Pipeline) error {
		p.keepFragments = keep
		return nil
	}
}

// WithRetry sets the retry policy for storage writes.
func WithRetry(policy storage.RetryPolicy) Option {
	return func(p *Pipeline) error {
		if policy.MaxAttempts < 1 {
			return fmt.Errorf("%w: %w", ErrInvalidOption, storage.ErrInvalidMaxAttempts)
		}
		p.retry = policy
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new preparation pipeline.
func NewPipeline(
	pairRepository storage.PairRepository,
	checkpointRepository storage.CheckpointRepository,
	opts ...Option,
) (*Pipeline, error) {
	if pairRepository == nil {
		return nil, ErrPairRepositoryRequired
	}
	if checkpointRepository == nil {
		return nil, ErrCheckpointRepositoryRequired
	}

	p := &Pipeline{
		pairRepository:       pairRepository,
		checkpointRepository: checkpointRepository,
		chunkSize:            DefaultChunkSize,
		splitMode:            core.SplitSpace,
		retry:                storage.DefaultRetryPolicy(),
		logger:               slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	if p.pool == nil {
		poolSize := runtime.NumCPU() / 2
		if poolSize < 1 {
			poolSize = 1
		}
		pool, err := ants.NewPool(poolSize)
		if err != nil {
			return nil, err
		}
		p.pool = pool
	}

	// Create the processor after options are applied (so it gets final config)
	proc, err := newSentenceProcessor(p.splitMode, p.keepFragments, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.proc = proc

	return p, nil
}

// Result summarizes one Prepare or Ingest call.
type Result struct {
	Groups    int     // Document groups received
	Pairs     int     // Sentence pairs produced by broadcasting
	Fragments int     // Pairs dropped as non-sentences
	Stored    int     // Records written (zero for Prepare)
	LastID    core.ID // ID of the last record written (zero for Prepare)
}

// Prepare validates and prepares groups without touching storage.
// Records are returned in input order with zero IDs.
func (p *Pipeline) Prepare(ctx context.Context, groups []core.DocumentGroup) ([]*core.PairRecord, *Result, error) {
	chunks, result, err := p.prepare(ctx, groups)
	if err != nil {
		return nil, nil, err
	}

	records := make([]*core.PairRecord, 0, result.Pairs-result.Fragments)
	for _, chunk := range chunks {
		records = append(records, chunk.records...)
	}
	return records, result, nil
}

// Ingest prepares groups and stores the resulting pair records.
// Nothing is written unless every group validates and prepares cleanly.
// Chunks are written in input order, each in its own transaction, and the
// ingest checkpoint is advanced to the last written ID.
func (p *Pipeline) Ingest(ctx context.Context, groups []core.DocumentGroup) (*Result, error) {
	chunks, result, err := p.prepare(ctx, groups)
	if err != nil {
		return nil, err
	}

	for _, chunk := range chunks {
		if len(chunk.records) == 0 {
			continue
		}

		var added []*core.PairRecord
		err := storage.RetryWithBackoff(ctx, func() error {
			var addErr error
			added, addErr = p.pairRepository.AddPairs(ctx, chunk.records...)
			return addErr
		}, p.retry)
		if err != nil {
			return result, fmt.Errorf("storing pairs: %w", err)
		}

		result.Stored += len(added)
		result.LastID = added[len(added)-1].Id
	}

	if result.Stored > 0 {
		checkpoint := &core.Checkpoint{ProcessorType: CheckpointType, LastID: result.LastID}
		if err := p.checkpointRepository.SaveCheckpoint(ctx, checkpoint); err != nil {
			p.logger.Error("error saving ingest checkpoint", "err", err)
		}
	}

	p.logger.Info("ingested document groups", "groups", result.Groups, "pairs", result.Pairs,
		"stored", result.Stored, "fragments", result.Fragments)
	return result, nil
}

// prepare validates every group, then prepares chunks on the pool.
// The returned chunks are in input order.
func (p *Pipeline) prepare(ctx context.Context, groups []core.DocumentGroup) ([]chunkResult, *Result, error) {
	for i := range groups {
		if err := core.ValidateDocumentGroup(&groups[i]); err != nil {
			return nil, nil, fmt.Errorf("group %d: %w", i, err)
		}
	}

	numChunks := (len(groups) + p.chunkSize - 1) / p.chunkSize
	chunks := make([]chunkResult, numChunks)
	errs := make([]error, numChunks)

	var wg sync.WaitGroup
	for i := 0; i < numChunks; i++ {
		start := i * p.chunkSize
		end := min(start+p.chunkSize, len(groups))

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			chunks[i], errs[i] = p.proc.process(ctx, groups[start:end])
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
			break
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, nil, err
	}

	result := &Result{Groups: len(groups)}
	for _, chunk := range chunks {
		result.Pairs += chunk.pairs
		result.Fragments += chunk.fragments
	}
	return chunks, result, nil
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
