package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-lifecycle-bridge/internal/api/rest"
	"github.com/feral-file/ff-lifecycle-bridge/internal/metrics"
	"github.com/feral-file/ff-lifecycle-bridge/internal/mocks"
)

func newTestHandler(t *testing.T) rest.Handler {
	ctrl := gomock.NewController(t)
	return rest.NewHandler(
		mocks.NewMockLifecycleService(ctrl),
		mocks.NewMockOnboarder(ctrl),
		mocks.NewMockVerifier(ctrl),
		mocks.NewMockAuthorizer(ctrl),
		nil,
	)
}

func TestRouter_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.IncSaga("raw", "create", metrics.OutcomeSuccess)

	router := New(Config{}, newTestHandler(t), reg).Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lifecycle_saga_outcomes_total")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_WithoutMetrics(t *testing.T) {
	router := New(Config{}, newTestHandler(t), nil).Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := New(Config{AllowedOrigins: []string{"https://app.example.org"}}, newTestHandler(t), nil).Router()

	req := httptest.NewRequest(http.MethodOptions, "/v1/watched", nil)
	req.Header.Set("Origin", "https://app.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.org", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_StartShutdown(t *testing.T) {
	srv := New(Config{Host: "127.0.0.1", Port: 0}, newTestHandler(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	require.NoError(t, srv.Shutdown(shutdownCtx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	srv := New(Config{Host: "127.0.0.1", Port: 0}, newTestHandler(t), nil)
	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, srv.Start(context.Background()))
}
