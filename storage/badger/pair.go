package badger

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sumprep/core"
	"github.com/poiesic/sumprep/storage"
)

// PairRepository implements storage.PairRepository for BadgerDB.
type PairRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.PairRepository = (*PairRepository)(nil)

// NewPairRepository creates a new PairRepository.
func NewPairRepository(backend *Backend) (*PairRepository, error) {
	idSeq, err := backend.GetSequence(pairIDSeq)
	if err != nil {
		return nil, err
	}

	return &PairRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *PairRepository) Close() error {
	return r.idSeq.Release()
}

// AddPairs adds one or more pair records to storage.
func (r *PairRepository) AddPairs(ctx context.Context, records ...*core.PairRecord) ([]*core.PairRecord, error) {
	for _, record := range records {
		if err := core.ValidatePairRecord(record); err != nil {
			return nil, err
		}
	}
	if len(records) == 0 {
		return records, nil
	}

	// Callers' records only see their IDs once the commit has succeeded
	ids := make([]core.ID, len(records))
	insertedAt := time.Now().UTC()
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for i, record := range records {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			stored := *record
			stored.Id = core.ID(nextID)
			stored.InsertedAt = insertedAt
			ids[i] = stored.Id

			if err := tx.Set(makePairKey(stored.Id), storage.MarshalPairRecord(&stored)); err != nil {
				return translateTxErr(err)
			}
			if err := tx.Set(makePairDocKey(stored.DocID, stored.Id), storage.MarshalID(stored.Id)); err != nil {
				return translateTxErr(err)
			}
		}
		return commit(tx)
	}, true)
	if err != nil {
		return nil, err
	}

	for i, record := range records {
		record.Id = ids[i]
		record.InsertedAt = insertedAt
	}
	return records, nil
}

// GetPair retrieves a single pair record by ID.
func (r *PairRepository) GetPair(ctx context.Context, id core.ID) (*core.PairRecord, error) {
	var result *core.PairRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readPair(tx, makePairKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetPairsByDocument retrieves all pairs of a document in insertion order.
func (r *PairRepository) GetPairsByDocument(ctx context.Context, docID core.DocID) ([]*core.PairRecord, error) {
	results := []*core.PairRecord{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids, err := documentPairIDs(tx, docID)
		if err != nil {
			return err
		}
		for _, id := range ids {
			record, err := readPair(tx, makePairKey(id))
			if err != nil {
				return err
			}
			// Index keys are hashed, so confirm the record really belongs here
			if record != nil && record.DocID == docID {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// GetPairsAfter retrieves up to limit pairs with ID greater than afterID.
func (r *PairRepository) GetPairsAfter(ctx context.Context, afterID core.ID, limit int) ([]*core.PairRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be greater than 0", storage.ErrInvalidQuery)
	}
	results := []*core.PairRecord{}
	if uint64(afterID) == math.MaxUint64 {
		return results, nil
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(pairRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(makePairKey(afterID + 1)); iter.Valid() && len(results) < limit; iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var record *core.PairRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalPairRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, record)
		}
		return nil
	}, false)

	return results, err
}

// DeleteDocument removes every pair of a document.
func (r *PairRepository) DeleteDocument(ctx context.Context, docID core.DocID) (int, error) {
	deleted := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids, err := documentPairIDs(tx, docID)
		if err != nil {
			return err
		}
		for _, id := range ids {
			key := makePairKey(id)
			record, err := readPair(tx, key)
			if err != nil {
				return err
			}
			if record == nil || record.DocID != docID {
				continue
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
			if err := tx.Delete(makePairDocKey(docID, id)); err != nil {
				return err
			}
			deleted++
		}
		if deleted == 0 {
			return storage.ErrNotFound
		}
		return commit(tx)
	}, true)
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// CountPairs returns the number of stored pairs.
func (r *PairRepository) CountPairs(ctx context.Context) (int, error) {
	return r.CountPairsAfter(ctx, 0)
}

// CountPairsAfter returns the number of stored pairs with ID greater than afterID.
func (r *PairRepository) CountPairsAfter(ctx context.Context, afterID core.ID) (int, error) {
	if uint64(afterID) == math.MaxUint64 {
		return 0, nil
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(pairRecordPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(makePairKey(afterID + 1)); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Helper methods

// readPair reads a pair record from the transaction.
// Returns nil, nil when the key does not exist.
func readPair(tx *badger.Txn, key []byte) (*core.PairRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.PairRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalPairRecord(val)
		return unmarshalErr
	})
	return record, err
}

// documentPairIDs returns the IDs indexed under a document, in ID order.
func documentPairIDs(tx *badger.Txn, docID core.DocID) ([]core.ID, error) {
	var ids []core.ID
	prefix := makePartialPairDocKey(docID)

	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		key := iter.Item().Key()
		if !bytes.HasPrefix(key, prefix) {
			break
		}
		var id core.ID
		err := iter.Item().Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
