package feed

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/candidate-desk/backend/internal/model/candidate"
	"github.com/zhouzirui/candidate-desk/backend/internal/service/feed"
)

func setupServer(t *testing.T) (*httptest.Server, *feed.Broker) {
	t.Helper()
	broker := feed.NewBroker(8, nil, nil)
	handler := New(broker, time.Hour, nil)

	r := chi.NewRouter()
	r.Route("/candidates", handler.RegisterRoutes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, broker
}

func statusEvent(id string) feed.Event {
	return feed.Event{
		Type:           feed.EventStatus,
		Candidate:      candidate.Candidate{ID: id, Email: "ada@bugcrowd.com", Status: candidate.StatusRejected},
		PreviousStatus: candidate.StatusPending,
		At:             time.Now().UTC(),
	}
}

// readSSEEvent returns the next event name and data payload from the stream.
func readSSEEvent(t *testing.T, reader *bufio.Reader) (string, string) {
	t.Helper()
	var name, data string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "" && name != "":
			return name, data
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestEventsStreamsStatusChanges(t *testing.T) {
	srv, broker := setupServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/candidates/events", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	name, _ := readSSEEvent(t, reader)
	require.Equal(t, "ready", name)

	broker.Publish(statusEvent("c-42"))

	name, data := readSSEEvent(t, reader)
	assert.Equal(t, feed.EventStatus, name)
	var evt feed.Event
	require.NoError(t, json.Unmarshal([]byte(data), &evt))
	assert.Equal(t, "c-42", evt.Candidate.ID)
	assert.Equal(t, candidate.StatusPending, evt.PreviousStatus)
}

func TestWebSocketStreamsStatusChanges(t *testing.T) {
	srv, broker := setupServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/candidates/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var hello struct {
		Type string `json:"type"`
	}
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, "connected", hello.Type)

	broker.Publish(statusEvent("c-7"))

	var msg struct {
		Type string     `json:"type"`
		Data feed.Event `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, feed.EventStatus, msg.Type)
	assert.Equal(t, "c-7", msg.Data.Candidate.ID)
	assert.Equal(t, candidate.StatusRejected, msg.Data.Candidate.Status)
}

func TestWebSocketUnsubscribesOnClose(t *testing.T) {
	srv, broker := setupServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/candidates/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	var hello map[string]any
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, 1, broker.Subscribers())

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))
	conn.Close()

	assert.Eventually(t, func() bool { return broker.Subscribers() == 0 }, 2*time.Second, 20*time.Millisecond)
}
