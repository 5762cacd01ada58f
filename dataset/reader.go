package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/poiesic/sumprep/core"
)

// maxLineSize bounds a single JSON Lines record.
const maxLineSize = 16 << 20

// groupLine is the JSON Lines shape of an input document group.
type groupLine struct {
	ID        json.RawMessage `json:"id"`
	Sentences []string        `json:"sentences"`
	Labels    []float64       `json:"labels"`
}

// ReadGroups decodes document groups from JSON Lines.
// Each non-blank line holds {"id": ..., "sentences": [...], "labels": [...]}.
// The id may be a string or a number; labels are optional.
// Groups are validated as they are read.
func ReadGroups(r io.Reader) ([]core.DocumentGroup, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var groups []core.DocumentGroup
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var gl groupLine
		if err := json.Unmarshal(line, &gl); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", core.ErrInvalidInput, lineNo, err)
		}

		id, err := parseDocID(gl.ID)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		group, err := core.NewDocumentGroup(id, gl.Sentences, gl.Labels...)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		groups = append(groups, group)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading groups: %w", err)
	}

	return groups, nil
}

// parseDocID accepts a JSON string or number. A missing or null id yields
// the empty DocID, which validation rejects.
func parseDocID(raw json.RawMessage) (core.DocID, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return core.DocID(s), nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return core.DocID(n.String()), nil
	}

	return "", fmt.Errorf("%w: id must be a string or number, got %s", core.ErrInvalidInput, raw)
}
