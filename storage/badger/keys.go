package badger

import (
	"encoding/binary"

	"github.com/poiesic/sumprep/core"
)

// Key prefixes for different data types. Each ends in ':' so that no prefix
// is a byte prefix of another.
const (
	pairRecordPrefix = "senpar:"
	pairDocPrefix    = "senpard:"
	pairIDSeq        = "senparseq"
	checkpointPrefix = "chkpt:"
)

// makePairKey generates a key for a pair record by ID.
// Format: prefix + BigEndian(id), so iteration order is ID order.
func makePairKey(id core.ID) []byte {
	buf := make([]byte, len(pairRecordPrefix)+8)
	offset := copy(buf, pairRecordPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePairDocKey generates a composite key for the document index.
// Format: prefix + BigEndian(docKey) + BigEndian(id)
func makePairDocKey(docID core.DocID, id core.ID) []byte {
	buf := make([]byte, len(pairDocPrefix)+16)
	offset := copy(buf, pairDocPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID.Key()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialPairDocKey generates a partial key covering one document.
// Format: prefix + BigEndian(docKey)
func makePartialPairDocKey(docID core.DocID) []byte {
	buf := make([]byte, len(pairDocPrefix)+8)
	offset := copy(buf, pairDocPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID.Key()))
	return buf
}

// makeCheckpointKey generates a key for processor checkpoints.
func makeCheckpointKey(processorType string) []byte {
	return []byte(checkpointPrefix + processorType)
}
