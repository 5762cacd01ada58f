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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/sumprep/core"
)

// processor is an internal interface for turning document groups into pair records.
type processor interface {
	// process prepares the records for one chunk of groups, in input order.
	process(ctx context.Context, groups []core.DocumentGroup) (chunkResult, error)
}

// chunkResult is the prepared output of one chunk.
type chunkResult struct {
	records   []*core.PairRecord
	pairs     int // pairs produced by broadcasting
	fragments int // pairs dropped as non-sentences
}

// sentenceProcessor broadcasts, filters, cleans and labels sentence pairs.
type sentenceProcessor struct {
	splitMode     core.SplitMode
	keepFragments bool
	logger        *slog.Logger
}

func newSentenceProcessor(splitMode core.SplitMode, keepFragments bool, logger *slog.Logger) (processor, error) {
	if splitMode != core.SplitSpace && splitMode != core.SplitWhitespace {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidSplitMode, splitMode)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &sentenceProcessor{
		splitMode:     splitMode,
		keepFragments: keepFragments,
		logger:        logger,
	}, nil
}

func (sp *sentenceProcessor) process(ctx context.Context, groups []core.DocumentGroup) (chunkResult, error) {
	pairs, err := core.BroadcastPairs(groups)
	if err != nil {
		return chunkResult{}, err
	}

	result := chunkResult{
		records: make([]*core.PairRecord, 0, len(pairs)),
		pairs:   len(pairs),
	}

	// pairs is the flattening of groups, so walking both in step recovers
	// each pair's position and label.
	k := 0
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return chunkResult{}, err
		}
		for pos := range group.Sentences {
			pair := pairs[k]
			k++

			if !sp.keepFragments && !core.IsSentenceMode(pair.Sentence, sp.splitMode) {
				result.fragments++
				continue
			}

			cleaned, err := core.CleanLeadingNewline(pair.Sentence)
			if err != nil {
				return chunkResult{}, fmt.Errorf("document %q sentence %d: %w", pair.DocID, pos, err)
			}

			summary := core.MembershipUnlabeled
			if group.Labeled() {
				summary = core.ClassifySummary(group.Labels[pos])
			}

			result.records = append(result.records, &core.PairRecord{
				DocID:    pair.DocID,
				Position: pos,
				Sentence: cleaned,
				Summary:  summary,
			})
		}
	}

	sp.logger.Debug("prepared chunk", "groups", len(groups), "pairs", result.pairs,
		"kept", len(result.records), "fragments", result.fragments)
	return result, nil
}
