package apihttp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/scheduler/internal/apihttp"
	"github.com/schedcu/scheduler/internal/jobqueue"
	"github.com/schedcu/scheduler/internal/runstore/memory"
)

type fakeEnqueuer struct {
	calls []jobqueue.SolveRunPayload
	err   error
}

func (f *fakeEnqueuer) EnqueueSolveRun(ctx context.Context, payload jobqueue.SolveRunPayload) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, payload)
	return &asynq.TaskInfo{}, nil
}

func TestCreateRunEnqueuesAndPersistsQueuedRun(t *testing.T) {
	e := echo.New()
	store := memory.New()
	queue := &fakeEnqueuer{}
	h := apihttp.NewHandlers(queue, store)

	body := `{"input_dir":"/data/in","output_dir":"/data/out"}`
	req := httptest.NewRequest(http.MethodPost, "/api/runs", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.CreateRun(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Len(t, queue.calls, 1)
	assert.Equal(t, "/data/in", queue.calls[0].InputDir)
}

func TestCreateRunRejectsMissingInputDir(t *testing.T) {
	e := echo.New()
	h := apihttp.NewHandlers(&fakeEnqueuer{}, memory.New())

	req := httptest.NewRequest(http.MethodPost, "/api/runs", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.CreateRun(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRunReturnsNotFoundForUnknownID(t *testing.T) {
	e := echo.New()
	h := apihttp.NewHandlers(&fakeEnqueuer{}, memory.New())

	req := httptest.NewRequest(http.MethodGet, "/api/runs/notfound", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("00000000-0000-0000-0000-000000000000")

	require.NoError(t, h.GetRun(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthCheckReportsOK(t *testing.T) {
	e := echo.New()
	store := memory.New()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, apihttp.HealthCheck(store)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
