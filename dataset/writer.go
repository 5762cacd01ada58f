package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/poiesic/sumprep/core"
)

// Format names an export encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
)

// ParseFormat converts a case-insensitive name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatJSONL:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Writer encodes pair records to an output stream.
type Writer interface {
	// Write encodes a batch of records.
	Write(records []*core.PairRecord) error

	// Flush pushes any buffered output to the underlying stream.
	Flush() error
}

var csvHeader = []string{"id", "doc_id", "position", "sentence", "summary"}

// WriterOption configures a Writer.
type WriterOption func(*writerOptions)

type writerOptions struct {
	header bool
}

// WithHeader controls whether formats with a header row write one before
// the first record. Default is true; pass false when appending to output
// that already has its header.
func WithHeader(header bool) WriterOption {
	return func(o *writerOptions) {
		o.header = header
	}
}

// NewWriter returns a Writer for the given format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	options := &writerOptions{header: true}
	for _, opt := range opts {
		opt(options)
	}

	switch format {
	case FormatCSV:
		return &csvWriter{w: csv.NewWriter(w), wroteHeader: !options.header}, nil
	case FormatJSONL:
		return &jsonlWriter{enc: json.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

type csvWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

func (cw *csvWriter) Write(records []*core.PairRecord) error {
	if !cw.wroteHeader {
		if err := cw.w.Write(csvHeader); err != nil {
			return err
		}
		cw.wroteHeader = true
	}
	for _, r := range records {
		row := []string{
			strconv.FormatUint(uint64(r.Id), 10),
			string(r.DocID),
			strconv.Itoa(r.Position),
			r.Sentence,
			string(r.Summary),
		}
		if err := cw.w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

// pairLine is the JSON Lines shape of an exported record.
type pairLine struct {
	ID       core.ID    `json:"id"`
	DocID    core.DocID `json:"doc_id"`
	Position int        `json:"position"`
	Sentence string     `json:"sentence"`
	Summary  string     `json:"summary,omitempty"`
}

type jsonlWriter struct {
	enc *json.Encoder
}

func (jw *jsonlWriter) Write(records []*core.PairRecord) error {
	for _, r := range records {
		line := pairLine{
			ID:       r.Id,
			DocID:    r.DocID,
			Position: r.Position,
			Sentence: r.Sentence,
			Summary:  string(r.Summary),
		}
		if err := jw.enc.Encode(line); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op; the encoder writes each line through.
func (jw *jsonlWriter) Flush() error { return nil }
