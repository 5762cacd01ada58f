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


package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sumprep/core"
	"github.com/poiesic/sumprep/storage"
)

// CheckpointRepository implements storage.CheckpointRepository for BadgerDB.
type CheckpointRepository struct {
	backend *Backend
}

var _ storage.CheckpointRepository = (*CheckpointRepository)(nil)

// NewCheckpointRepository creates a new CheckpointRepository.
func NewCheckpointRepository(backend *Backend) *CheckpointRepository {
	return &CheckpointRepository{
		backend: backend,
	}
}

// SaveCheckpoint persists a checkpoint for a processor type.
// Checkpoints only move forward: saving a LastID below the stored one is a no-op.
func (r *CheckpointRepository) SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error {
	if checkpoint == nil || checkpoint.ProcessorType == "" {
		return fmt.Errorf("%w: checkpoint requires a processor type", storage.ErrInvalidQuery)
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCheckpointKey(checkpoint.ProcessorType)
		current, err := readCheckpoint(tx, key)
		if err != nil {
			return err
		}
		if current != nil && current.LastID > checkpoint.LastID {
			return nil
		}
		checkpoint.UpdatedAt = time.Now().UTC()
		if err := tx.Set(key, storage.MarshalCheckpoint(checkpoint)); err != nil {
			return err
		}
		return commit(tx)
	}, true)
}

// LoadCheckpoint retrieves the checkpoint for a processor type.
// Returns nil, nil if no checkpoint exists.
func (r *CheckpointRepository) LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error) {
	var checkpoint *core.Checkpoint
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		checkpoint, err = readCheckpoint(tx, makeCheckpointKey(processorType))
		return err
	}, false)

	return checkpoint, err
}

// readCheckpoint reads a checkpoint, returning nil, nil when absent.
func readCheckpoint(tx *badger.Txn, key []byte) (*core.Checkpoint, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var checkpoint *core.Checkpoint
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		checkpoint, unmarshalErr = storage.UnmarshalCheckpoint(val)
		return unmarshalErr
	})
	return checkpoint, err
}
