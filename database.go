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


package sumprep

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/sumprep/core"
	"github.com/poiesic/sumprep/dataset"
	"github.com/poiesic/sumprep/ingestion"
	"github.com/poiesic/sumprep/storage"
	"github.com/poiesic/sumprep/storage/badger"
)

type Database struct {
	backend        *badger.Backend
	pairRepo       storage.PairRepository
	checkpointRepo storage.CheckpointRepository
	logger         *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory bool
}

// WithInMemory keeps the database in memory. The path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.inMemory {
		filePath = ""
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create pair repository
	pairRepo, err := badger.NewPairRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:        backend,
		pairRepo:       pairRepo,
		checkpointRepo: badger.NewCheckpointRepository(backend),
		logger:         slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.pairRepo.Close(); err != nil {
		db.logger.Error("error closing pair repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) PairRepository() storage.PairRepository {
	return db.pairRepo
}

func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.checkpointRepo
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.pairRepo, db.checkpointRepo, opts...)
}

// NewExporter creates an exporter writing to w in the given format.
// progress receives progress lines and may be nil.
func (db *Database) NewExporter(
	w io.Writer,
	format dataset.Format,
	config *dataset.Config,
	progress io.Writer,
	opts ...dataset.WriterOption,
) (*dataset.Exporter, error) {
	writer, err := dataset.NewWriter(w, format, opts...)
	if err != nil {
		return nil, err
	}
	return dataset.NewExporter(db.pairRepo, db.checkpointRepo, writer, config, progress)
}

// Stats summarizes the stored pairs.
type Stats struct {
	Pairs        int
	Documents    int
	ByMembership map[core.Membership]int
}

// Stats walks every stored pair and tallies membership and documents.
func (db *Database) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByMembership: make(map[core.Membership]int)}
	docs := make(map[core.DocID]struct{})

	err := dataset.NewPairIterator(db.pairRepo, 0).ForEach(ctx, 0, func(records []*core.PairRecord) error {
		for _, r := range records {
			stats.Pairs++
			stats.ByMembership[r.Summary]++
			docs[r.DocID] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats.Documents = len(docs)
	return stats, nil
}
