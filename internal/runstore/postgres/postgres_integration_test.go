package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/schedcu/scheduler/internal/entity"
	"github.com/schedcu/scheduler/internal/runstore"
)

// postgresTestHelper spins up a disposable Postgres container per test.
type postgresTestHelper struct {
	store     *Store
	container testcontainers.Container
	ctx       context.Context
}

func newPostgresTestHelper(ctx context.Context, t *testing.T) *postgresTestHelper {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "schedcu_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/schedcu_test?sslmode=disable", host, port.Port())

	store, err := New(connStr)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))

	return &postgresTestHelper{store: store, container: container, ctx: ctx}
}

func (h *postgresTestHelper) Close(t *testing.T) {
	if err := h.store.Close(); err != nil {
		t.Logf("warning: failed to close store: %v", err)
	}
	if err := h.container.Terminate(h.ctx); err != nil {
		t.Logf("warning: failed to terminate container: %v", err)
	}
}

func TestStoreCreateAndGetByID(t *testing.T) {
	ctx := context.Background()
	helper := newPostgresTestHelper(ctx, t)
	defer helper.Close(t)

	id := entity.NewRunID()
	run := &runstore.Run{ID: id, Status: runstore.StatusQueued}
	require.NoError(t, helper.store.Create(ctx, run))

	got, err := helper.store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, runstore.StatusQueued, got.Status)
}

func TestStoreGetByIDReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	helper := newPostgresTestHelper(ctx, t)
	defer helper.Close(t)

	_, err := helper.store.GetByID(ctx, entity.NewRunID())
	require.Error(t, err)
	assert.True(t, runstore.IsNotFound(err))
}

func TestStoreUpdatePersistsChanges(t *testing.T) {
	ctx := context.Background()
	helper := newPostgresTestHelper(ctx, t)
	defer helper.Close(t)

	id := entity.NewRunID()
	require.NoError(t, helper.store.Create(ctx, &runstore.Run{ID: id, Status: runstore.StatusQueued}))

	require.NoError(t, helper.store.Update(ctx, &runstore.Run{
		ID: id, Status: runstore.StatusDone, SolverStatus: "optimal", ObjectiveValue: 17.5,
	}))

	got, err := helper.store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, runstore.StatusDone, got.Status)
	assert.Equal(t, "optimal", got.SolverStatus)
	assert.Equal(t, 17.5, got.ObjectiveValue)
}

func TestStoreUpdateReturnsNotFoundForUnknownRun(t *testing.T) {
	ctx := context.Background()
	helper := newPostgresTestHelper(ctx, t)
	defer helper.Close(t)

	err := helper.store.Update(ctx, &runstore.Run{ID: entity.NewRunID(), Status: runstore.StatusFailed})
	require.Error(t, err)
	assert.True(t, runstore.IsNotFound(err))
}

func TestStoreListByStatusFiltersCorrectly(t *testing.T) {
	ctx := context.Background()
	helper := newPostgresTestHelper(ctx, t)
	defer helper.Close(t)

	require.NoError(t, helper.store.Create(ctx, &runstore.Run{ID: entity.NewRunID(), Status: runstore.StatusQueued}))
	require.NoError(t, helper.store.Create(ctx, &runstore.Run{ID: entity.NewRunID(), Status: runstore.StatusDone}))
	require.NoError(t, helper.store.Create(ctx, &runstore.Run{ID: entity.NewRunID(), Status: runstore.StatusDone}))

	done, err := helper.store.ListByStatus(ctx, runstore.StatusDone)
	require.NoError(t, err)
	assert.Len(t, done, 2)
}

func TestStoreHealth(t *testing.T) {
	ctx := context.Background()
	helper := newPostgresTestHelper(ctx, t)
	defer helper.Close(t)

	assert.NoError(t, helper.store.Health(ctx))
}
