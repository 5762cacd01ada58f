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


// Package storage provides the storage abstraction layer for sumprep.
//
// This package defines repository interfaces that decouple the preparation
// pipeline and dataset export from the storage implementation, plus the
// binary codec helpers and the retry policy shared by writers.
//
// # Architecture
//
//   - PairRepository: prepared sentence pairs and their per-document index
//   - CheckpointRepository: progress markers for ingest and export runs
//
// # Ordering
//
// Pair IDs come from a sequence and are assigned in the order records are
// passed to AddPairs. Every read that returns more than one pair returns
// them in ID order, which is therefore insertion order.
//
// # Usage
//
//	pairs, checkpoints, backend, err := badger.NewMemoryRepositories()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	defer pairs.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
