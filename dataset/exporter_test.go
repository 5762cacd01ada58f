package dataset

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/sumprep/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingWriter fails on the given call number (1-based).
type failingWriter struct {
	calls  int
	failOn int
}

func (w *failingWriter) Write([]*core.PairRecord) error {
	w.calls++
	if w.calls == w.failOn {
		return errors.New("disk full")
	}
	return nil
}

func (w *failingWriter) Flush() error { return nil }

func csvRows(out string) []string {
	return strings.Split(strings.TrimSpace(out), "\n")
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.ErrorIs(t, (&Config{BatchSize: 0, ReportInterval: 1}).Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, (&Config{BatchSize: 1, ReportInterval: 0}).Validate(), ErrInvalidConfig)
}

func TestNewExporter_Validation(t *testing.T) {
	pairRepo, _ := setupTestDB(t)
	w, err := NewWriter(&bytes.Buffer{}, FormatCSV)
	require.NoError(t, err)

	_, err = NewExporter(nil, nil, w, nil, nil)
	assert.ErrorIs(t, err, ErrPairRepositoryRequired)

	_, err = NewExporter(pairRepo, nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrWriterRequired)

	_, err = NewExporter(pairRepo, nil, w, &Config{BatchSize: 10, ReportInterval: 10, Resume: true}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestExporter_Run(t *testing.T) {
	pairRepo, checkpointRepo := setupTestDB(t)
	added := addTestPairs(t, pairRepo, 10)
	ctx := context.Background()

	var out, progress bytes.Buffer
	w, err := NewWriter(&out, FormatCSV)
	require.NoError(t, err)

	exporter, err := NewExporter(pairRepo, checkpointRepo, w, &Config{BatchSize: 3, ReportInterval: 3}, &progress)
	require.NoError(t, err)

	stats, err := exporter.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Exported)
	assert.Equal(t, added[9].Id, stats.LastID)

	rows := csvRows(out.String())
	require.Len(t, rows, 11, "header plus one row per pair")
	assert.Equal(t, "id,doc_id,position,sentence,summary", rows[0])
	assert.Contains(t, rows[1], "sentence number 0")
	assert.Contains(t, rows[10], "sentence number 9")

	assert.Contains(t, progress.String(), "Starting export of 10 pairs")
	assert.Contains(t, progress.String(), "10/10 pairs")

	checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, CheckpointType)
	require.NoError(t, err)
	assert.Nil(t, checkpoint, "only resumable exports record a checkpoint")
}

func TestExporter_Resume(t *testing.T) {
	pairRepo, checkpointRepo := setupTestDB(t)
	added := addTestPairs(t, pairRepo, 4)
	ctx := context.Background()

	var first bytes.Buffer
	w, err := NewWriter(&first, FormatJSONL)
	require.NoError(t, err)
	exporter, err := NewExporter(pairRepo, checkpointRepo, w, &Config{BatchSize: 2, ReportInterval: 2, Resume: true}, nil)
	require.NoError(t, err)

	stats, err := exporter.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Exported)

	more := addTestPairs(t, pairRepo, 2)
	require.Greater(t, more[0].Id, added[3].Id)

	var second, progress bytes.Buffer
	w, err = NewWriter(&second, FormatJSONL)
	require.NoError(t, err)
	exporter, err = NewExporter(pairRepo, checkpointRepo, w, &Config{BatchSize: 2, ReportInterval: 1, Resume: true}, &progress)
	require.NoError(t, err)

	stats, err = exporter.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Exported, "only pairs added after the checkpoint")
	assert.Equal(t, more[1].Id, stats.LastID)
	assert.Len(t, csvRows(second.String()), 2)

	assert.Contains(t, progress.String(), "Starting export of 2 pairs")
	assert.Contains(t, progress.String(), "2/2 pairs (100.0%)")
	assert.NotContains(t, progress.String(), "/6 pairs", "progress counts only the remaining pairs")

	progress.Reset()
	exporter, err = NewExporter(pairRepo, checkpointRepo, w, &Config{BatchSize: 2, ReportInterval: 1, Resume: true}, &progress)
	require.NoError(t, err)
	stats, err = exporter.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Exported)
	assert.Equal(t, more[1].Id, stats.LastID)
	assert.Contains(t, progress.String(), "No new pairs since last export")
}

func TestExporter_EmptyDatabase(t *testing.T) {
	pairRepo, checkpointRepo := setupTestDB(t)

	var out, progress bytes.Buffer
	w, err := NewWriter(&out, FormatCSV)
	require.NoError(t, err)
	exporter, err := NewExporter(pairRepo, checkpointRepo, w, nil, &progress)
	require.NoError(t, err)

	stats, err := exporter.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Exported)
	assert.Empty(t, out.String())
	assert.Contains(t, progress.String(), "No pairs found")
}

func TestExporter_WriteError(t *testing.T) {
	pairRepo, checkpointRepo := setupTestDB(t)
	added := addTestPairs(t, pairRepo, 6)
	ctx := context.Background()

	exporter, err := NewExporter(pairRepo, checkpointRepo, &failingWriter{failOn: 2},
		&Config{BatchSize: 2, ReportInterval: 2, Resume: true}, nil)
	require.NoError(t, err)

	stats, err := exporter.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 2, stats.Exported)

	checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, CheckpointType)
	require.NoError(t, err)
	require.NotNil(t, checkpoint)
	assert.Equal(t, added[1].Id, checkpoint.LastID, "checkpoint covers only the written batch")
}
