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

	"github.com/poiesic/sumprep/core"
	"github.com/poiesic/sumprep/storage"
)

const (
	// DefaultBatchSize is the default number of records to fetch in each batch
	DefaultBatchSize = 100
)

// PairIterator pages over stored pair records in ID order.
type PairIterator struct {
	repo      storage.PairRepository
	batchSize int
}

// NewPairIterator creates a new pair iterator.
// batchSize: number of records to fetch in each batch (defaults when <= 0)
func NewPairIterator(repo storage.PairRepository, batchSize int) *PairIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &PairIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach calls fn for each batch of records with ID greater than after.
// Iteration stops on the first error from fn or when storage is exhausted.
// Context cancellation is checked between batches.
func (it *PairIterator) ForEach(ctx context.Context, after core.ID, fn func([]*core.PairRecord) error) error {
	cursor := after
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, err := it.repo.GetPairsAfter(ctx, cursor, it.batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		if err := fn(batch); err != nil {
			return err
		}

		cursor = batch[len(batch)-1].Id
		if len(batch) < it.batchSize {
			return nil
		}
	}
}
