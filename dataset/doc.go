// Package dataset moves prepared sentence pairs in and out of sumprep.
//
// ReadGroups decodes document groups from JSON Lines for ingestion.
// Exporter pages stored pairs out to CSV or JSON Lines in batches, reports
// progress, and can resume from the last exported pair.
package dataset
