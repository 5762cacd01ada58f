package storage

import (
	"context"

	"github.com/poiesic/sumprep/core"
)

// PairRepository provides operations for managing prepared sentence pairs.
// Implementations must be thread-safe and support concurrent access.
type PairRepository interface {
	// AddPairs adds one or more pair records to storage in a single transaction.
	// IDs are assigned from a sequence in argument order, so ID order is
	// insertion order. Sets InsertedAt.
	// Returns the records with generated IDs and timestamps populated.
	AddPairs(ctx context.Context, records ...*core.PairRecord) ([]*core.PairRecord, error)

	// GetPair retrieves a single pair record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetPair(ctx context.Context, id core.ID) (*core.PairRecord, error)

	// GetPairsByDocument retrieves all pairs of a document in insertion order.
	// Returns an empty slice when the document is unknown.
	GetPairsByDocument(ctx context.Context, docID core.DocID) ([]*core.PairRecord, error)

	// GetPairsAfter retrieves up to limit pairs with ID greater than afterID,
	// ordered by ID ascending. Pass 0 to start from the beginning.
	GetPairsAfter(ctx context.Context, afterID core.ID, limit int) ([]*core.PairRecord, error)

	// DeleteDocument removes every pair of a document and its index entries.
	// Returns the number of pairs removed, or ErrNotFound if there were none.
	DeleteDocument(ctx context.Context, docID core.DocID) (int, error)

	// CountPairs returns the number of stored pairs.
	CountPairs(ctx context.Context) (int, error)

	// CountPairsAfter returns the number of stored pairs with ID greater than afterID.
	CountPairsAfter(ctx context.Context, afterID core.ID) (int, error)

	// Close releases resources held by the repository.
	Close() error
}

// CheckpointRepository persists processor progress markers.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint, setting UpdatedAt.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a processor type.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error)
}
