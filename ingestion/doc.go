// Package ingestion provides pipeline orchestration for preparing
// summarization training pairs.
//
// The Pipeline type takes document groups through the preparation workflow:
//   - Validating every group before any work starts
//   - Broadcasting each group's identifier onto its sentences
//   - Dropping fragments that are not full sentences
//   - Stripping the leading-newline artifact left by upstream tokenizers
//   - Tagging summary membership from optional per-sentence labels
//   - Storing the results and advancing the ingest checkpoint
//
// Chunks of groups are prepared concurrently on a worker pool; results are
// reassembled and written in input order.
package ingestion
