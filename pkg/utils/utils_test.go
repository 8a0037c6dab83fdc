package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	resp := httptest.NewRecorder()
	RespondError(resp, http.StatusNotFound, "Candidate not found")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Candidate not found", body["error"])
}

func TestRespondData(t *testing.T) {
	resp := httptest.NewRecorder()
	RespondData(resp, http.StatusOK, []int{1, 2})

	assert.JSONEq(t, `{"data":[1,2]}`, resp.Body.String())
}

func TestSendSSEEvent(t *testing.T) {
	resp := httptest.NewRecorder()
	SetupSSEHeaders(resp)
	require.NoError(t, SendSSEEvent(resp, resp, "status", map[string]string{"id": "c1"}))
	require.NoError(t, SendSSEComment(resp, resp, "heartbeat"))

	assert.Equal(t, "text/event-stream", resp.Header().Get("Content-Type"))
	assert.Equal(t, "event: status\ndata: {\"id\":\"c1\"}\n\n: heartbeat\n\n", resp.Body.String())
	assert.True(t, resp.Flushed)
}
