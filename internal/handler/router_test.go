package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/candidate-desk/backend/internal/handler/feed"
	"github.com/zhouzirui/candidate-desk/backend/internal/metrics"
	"github.com/zhouzirui/candidate-desk/backend/internal/model/candidate"
	candidateService "github.com/zhouzirui/candidate-desk/backend/internal/service/candidate"
	feedService "github.com/zhouzirui/candidate-desk/backend/internal/service/feed"
)

func setupRouter(t *testing.T) (http.Handler, *candidate.MemoryStore, *feedService.Broker) {
	t.Helper()
	m := metrics.New()
	store := candidate.NewMemoryStore(candidate.Seed())
	broker := feedService.NewBroker(4, m, nil)
	svc := candidateService.NewService(store,
		candidateService.WithPublisher(broker),
		candidateService.WithRecorder(m))

	router := NewRouter(Deps{
		Candidates: svc,
		Feed:       feed.New(broker, time.Minute, nil),
		Metrics:    m,
	})
	return router, store, broker
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	r, _, _ := setupRouter(t)
	resp := serve(r, http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Server is running"}`, resp.Body.String())
}

func TestCORSHeadersOnAPI(t *testing.T) {
	r, _, _ := setupRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/candidates/stats", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouteOrderKeepsStaticPathsAheadOfID(t *testing.T) {
	r, _, _ := setupRouter(t)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/candidates/stats", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/api/candidates/search", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/candidates/nope", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/candidates", "").Code)
}

func TestStatusUpdateFlowsToMetrics(t *testing.T) {
	r, store, _ := setupRouter(t)
	id := store.List()[0].ID

	resp := serve(r, http.MethodPatch, "/api/candidates/"+id+"/status", `{"status":"selected"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	resp = serve(r, http.MethodGet, "/api/candidates/search?q=gmail", "")
	require.Equal(t, http.StatusOK, resp.Code)

	metricsBody := serve(r, http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, metricsBody, `candidate_status_updates_total{status="selected"} 1`)
	assert.Contains(t, metricsBody, "candidate_searches_total 1")

	stats := serve(r, http.MethodGet, "/api/candidates/stats", "").Body.String()
	assert.Contains(t, stats, `"selected":1`)
}

func TestUnknownAPIRoute(t *testing.T) {
	r, _, _ := setupRouter(t)
	resp := serve(r, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"error":"Route not found"}`, resp.Body.String())
}

func TestUIMounted(t *testing.T) {
	r, _, _ := setupRouter(t)
	resp := serve(r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Candidate Selection System")
}
