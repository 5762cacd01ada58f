package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored records.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DocID is an opaque document identifier.
// Integer identifiers are carried as their decimal text.
type DocID string

// Key returns the fixed-width hash of the identifier used by storage indices.
func (d DocID) Key() ID {
	return IDFromContent(string(d))
}

// Membership tags whether a sentence belongs to the reference summary.
type Membership string

const (
	// MembershipUnlabeled marks a pair whose group carried no labels.
	MembershipUnlabeled Membership = ""
	// MembershipYes marks a sentence selected into the summary.
	MembershipYes Membership = "yes"
	// MembershipNo marks a sentence left out of the summary.
	MembershipNo Membership = "no"
)

// DocumentGroup is a document identifier paired with its ordered sentences.
// Groups are read-only inputs; nothing in this module mutates them.
type DocumentGroup struct {
	ID        DocID
	Sentences []string
	Labels    []float64 // Optional, aligned 1:1 with Sentences when present
}

// NewDocumentGroup builds a validated DocumentGroup.
// A nil or empty sentence slice is valid and contributes no pairs.
func NewDocumentGroup(id DocID, sentences []string, labels ...float64) (DocumentGroup, error) {
	g := DocumentGroup{ID: id, Sentences: sentences}
	if len(labels) > 0 {
		g.Labels = labels
	}
	if err := ValidateDocumentGroup(&g); err != nil {
		return DocumentGroup{}, err
	}
	return g, nil
}

// Labeled reports whether the group carries summary labels.
func (g *DocumentGroup) Labeled() bool {
	return g.Labels != nil
}

// SentencePair associates a single sentence with its document identifier.
type SentencePair struct {
	DocID    DocID
	Sentence string
}

// PairRecord is a prepared training example as persisted by storage.
type PairRecord struct {
	Id         ID
	DocID      DocID
	Position   int        // Index of the sentence within its source group
	Sentence   string     // Sentence text after cleaning
	Summary    Membership // Empty when the source group had no labels
	InsertedAt time.Time  // When the record was inserted into the database
}

// Checkpoint records how far a batch processor has progressed.
type Checkpoint struct {
	ProcessorType string
	LastID        ID
	UpdatedAt     time.Time
}
