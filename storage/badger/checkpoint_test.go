package badger

import (
	"context"
	"testing"

	"github.com/poiesic/sumprep/core"
	"github.com/poiesic/sumprep/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRepository(t *testing.T) {
	pairRepo, checkpointRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { pairRepo.Close(); backend.Close() }()

	ctx := context.Background()

	missing, err := checkpointRepo.LoadCheckpoint(ctx, "export")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, checkpointRepo.SaveCheckpoint(ctx, &core.Checkpoint{ProcessorType: "export", LastID: 10}))

	loaded, err := checkpointRepo.LoadCheckpoint(ctx, "export")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, core.ID(10), loaded.LastID)
	assert.False(t, loaded.UpdatedAt.IsZero())

	t.Run("does not move backwards", func(t *testing.T) {
		require.NoError(t, checkpointRepo.SaveCheckpoint(ctx, &core.Checkpoint{ProcessorType: "export", LastID: 4}))
		loaded, err := checkpointRepo.LoadCheckpoint(ctx, "export")
		require.NoError(t, err)
		assert.Equal(t, core.ID(10), loaded.LastID)
	})

	t.Run("processor types are independent", func(t *testing.T) {
		require.NoError(t, checkpointRepo.SaveCheckpoint(ctx, &core.Checkpoint{ProcessorType: "ingest", LastID: 2}))
		loaded, err := checkpointRepo.LoadCheckpoint(ctx, "ingest")
		require.NoError(t, err)
		assert.Equal(t, core.ID(2), loaded.LastID)
	})

	t.Run("requires processor type", func(t *testing.T) {
		err := checkpointRepo.SaveCheckpoint(ctx, &core.Checkpoint{LastID: 1})
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})
}
