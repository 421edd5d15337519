package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/runstore"
)

func TestCreateAndGetRun(t *testing.T) {
	store := New()
	ctx := context.Background()

	id := entity.NewRunID()
	run := &runstore.Run{ID: id, Status: runstore.StatusQueued}

	err := store.Create(ctx, run)
	require.NoError(t, err)
	assert.Equal(t, 1, store.QueryCount())

	got, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, runstore.StatusQueued, got.Status)
}

func TestGetByIDReturnsNotFound(t *testing.T) {
	store := New()
	_, err := store.GetByID(context.Background(), entity.NewRunID())

	require.Error(t, err)
	assert.True(t, runstore.IsNotFound(err))
}

func TestUpdateReturnsNotFoundForUnknownRun(t *testing.T) {
	store := New()
	err := store.Update(context.Background(), &runstore.Run{ID: entity.NewRunID()})

	require.Error(t, err)
	assert.True(t, runstore.IsNotFound(err))
}

func TestUpdateMutatesStoredRun(t *testing.T) {
	store := New()
	ctx := context.Background()

	id := entity.NewRunID()
	require.NoError(t, store.Create(ctx, &runstore.Run{ID: id, Status: runstore.StatusQueued}))

	require.NoError(t, store.Update(ctx, &runstore.Run{ID: id, Status: runstore.StatusDone, ObjectiveValue: 42}))

	got, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, runstore.StatusDone, got.Status)
	assert.Equal(t, 42.0, got.ObjectiveValue)
}

func TestListByStatusFiltersCorrectly(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &runstore.Run{ID: entity.NewRunID(), Status: runstore.StatusQueued}))
	require.NoError(t, store.Create(ctx, &runstore.Run{ID: entity.NewRunID(), Status: runstore.StatusDone}))
	require.NoError(t, store.Create(ctx, &runstore.Run{ID: entity.NewRunID(), Status: runstore.StatusDone}))

	done, err := store.ListByStatus(ctx, runstore.StatusDone)
	require.NoError(t, err)
	assert.Len(t, done, 2)
}
