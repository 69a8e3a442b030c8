package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keypool-go/internal/credential"
	"keypool-go/internal/pool"
)

func newTestRouter(t *testing.T) (*pool.Pool, http.Handler) {
	t.Helper()
	p, err := pool.New([]string{"AIzaSyA-first-secret", "AIzaSyB-second-secret"})
	require.NoError(t, err)
	return p, NewRouter(p, false)
}

func TestHealthz(t *testing.T) {
	_, r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 2, body["credentials"])
}

func TestHealthzExhausted(t *testing.T) {
	p, err := pool.NewFromStore(&credential.Store{})
	require.NoError(t, err)
	r := NewRouter(p, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStatsEndpoint(t *testing.T) {
	p, r := newTestRouter(t)

	p.Report("key-1", pool.OutcomeSuccess, 20*time.Millisecond)
	p.Report("key-1", pool.OutcomeError, 20*time.Millisecond)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/stats", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Strategy    string                `json:"strategy"`
		Credentials []pool.CredentialStat `json:"credentials"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "round_robin", body.Strategy)
	require.Len(t, body.Credentials, 2)
	assert.EqualValues(t, 2, body.Credentials[0].Requests)
	assert.EqualValues(t, 1, body.Credentials[0].Errors)
	assert.Equal(t, "AIzaSyA-fi...", body.Credentials[0].MaskedID)
	assert.NotContains(t, w.Body.String(), "first-secret")
}

func TestStatsSummaryEndpoint(t *testing.T) {
	p, r := newTestRouter(t)

	p.Report("key-1", pool.OutcomeSuccess, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/stats/summary", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "=== Key Rotation Statistics ===")
	assert.Contains(t, w.Body.String(), "AIzaSyA-fi...: 1 requests, 0 errors (0.0%)")
}

func TestRequestIDHeader(t *testing.T) {
	_, r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))
}

func TestSummaryLines(t *testing.T) {
	lines := SummaryLines([]pool.CredentialStat{
		{MaskedID: "AIzaSyA123...", Requests: 10, Errors: 1, ErrorRatePct: 10},
		{MaskedID: "AIzaSyB456...", Requests: 8, Errors: 2, ErrorRatePct: 25, Degraded: true},
	})

	require.Len(t, lines, 4)
	assert.Equal(t, "AIzaSyA123...: 10 requests, 1 errors (10.0%)", lines[1])
	assert.Equal(t, "AIzaSyB456...: 8 requests, 2 errors (25.0%) [cooling down]", lines[2])
}
