package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits(_ string)                            {}
func (m *mockMetrics) IncCacheMisses(_ string)                          {}
func (m *mockMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *mockMetrics) IncStreakTransition(_ string)                     {}
func (m *mockMetrics) IncReschedule(_ string)                           {}
func (m *mockMetrics) IncNotifications(_ string)                        {}
func (m *mockMetrics) SetArmedTriggers(_ int)                           {}
func (m *mockMetrics) SetDraftsTotal(_ int)                             {}

type recordingLogger struct {
	cacheTestLogger
	debugTypes []TypeEnum
}

func (l *recordingLogger) Debugf(t TypeEnum, _ string, _ ...interface{}) {
	l.debugTypes = append(l.debugTypes, t)
}

func routesFor(handler http.Handler, patterns ...string) *http.ServeMux {
	mux := http.NewServeMux()
	for _, p := range patterns {
		mux.Handle(p, handler)
	}
	return mux
}

func TestAccessMiddleware_CapturesStatusAndEndpoint(t *testing.T) {
	metrics := &mockMetrics{}
	logger := &recordingLogger{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	mw := AccessMiddleware(metrics, logger, routesFor(handler, "/streak/activity"), handler)

	req := httptest.NewRequest(http.MethodPost, "/streak/activity", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, "/streak/activity", metrics.requestEndpoint)
	assert.Equal(t, http.StatusCreated, metrics.requestStatus)
	assert.Equal(t, 1, metrics.durationCalls)
	assert.Equal(t, []TypeEnum{TypePost}, logger.debugTypes)
}

func TestAccessMiddleware_DefaultStatus200(t *testing.T) {
	metrics := &mockMetrics{}
	logger := &recordingLogger{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mw := AccessMiddleware(metrics, logger, routesFor(handler, "/streak"), handler)

	req := httptest.NewRequest(http.MethodGet, "/streak", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, metrics.requestStatus)
	assert.Equal(t, []TypeEnum{TypeGet}, logger.debugTypes)
}

func TestAccessMiddleware_UnknownPathsShareOneLabel(t *testing.T) {
	metrics := &mockMetrics{}
	routes := routesFor(http.NotFoundHandler(), "/streak")
	mw := AccessMiddleware(metrics, &recordingLogger{}, routes, routes)

	for _, path := range []string{"/wp-admin", "/streakx", "/a/b/c/d"} {
		rr := httptest.NewRecorder()
		mw.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, unmatchedEndpoint, metrics.requestEndpoint, path)
		assert.Equal(t, http.StatusNotFound, metrics.requestStatus, path)
	}
	assert.Equal(t, 3, metrics.requestCalls)
}

func TestStatusWriter_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	sw.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, sw.status)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
