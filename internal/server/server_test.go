package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjacktable/internal/game"
	"github.com/lox/blackjacktable/internal/randutil"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logger := log.New(io.Discard)
	rng := randutil.New(3)
	tbl := game.NewTable(game.Config{Decks: 1}, game.NewRandomPolicy(rng), rng, logger, quartz.NewReal())
	srv := NewServer("", tbl, logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		ts.Close()
		srv.Stop()
	})
	return srv, ts
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func readMessage(t *testing.T, ws *websocket.Conn) *Message {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, ws.ReadJSON(&msg))
	return &msg
}

func readSnapshot(t *testing.T, ws *websocket.Conn) game.Snapshot {
	t.Helper()
	msg := readMessage(t, ws)
	require.Equal(t, MessageTypeSnapshot, msg.Type)
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(msg.Data, &snap))
	return snap
}

func sendIntent(t *testing.T, ws *websocket.Conn, msgType MessageType, data interface{}) {
	t.Helper()
	msg, err := NewMessage(msgType, data)
	require.NoError(t, err)
	require.NoError(t, ws.WriteJSON(msg))
}

func TestHealthEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSnapshotOnConnect(t *testing.T) {
	_, ts := newTestServer(t)
	ws := dialWS(t, ts)

	snap := readSnapshot(t, ws)
	assert.Equal(t, "betting", snap.Phase)
	assert.Len(t, snap.Seats, game.NumSeats)
	assert.Equal(t, 0, snap.ActiveSeatIndex)
	assert.Equal(t, "dealer", snap.Dealer.ID)
}

func TestBetIntentBroadcastsSnapshot(t *testing.T) {
	_, ts := newTestServer(t)
	ws := dialWS(t, ts)
	_ = readSnapshot(t, ws) // initial state

	// An out-of-turn bet is absorbed and produces no broadcast; the next
	// valid bet's snapshot must show only that bet applied.
	sendIntent(t, ws, MessageTypeSubmitBet, SubmitBetData{SeatID: 5, Amount: "99"})
	sendIntent(t, ws, MessageTypeSubmitBet, SubmitBetData{SeatID: 0, Amount: "25"})

	snap := readSnapshot(t, ws)
	assert.Equal(t, 25, snap.Seats[0].Bet)
	assert.Equal(t, 0, snap.Seats[5].Bet)
	assert.Equal(t, 1, snap.ActiveSeatIndex)
}

func TestRestartIntent(t *testing.T) {
	_, ts := newTestServer(t)
	ws := dialWS(t, ts)
	_ = readSnapshot(t, ws)

	sendIntent(t, ws, MessageTypeSubmitBet, SubmitBetData{SeatID: 0, Amount: "50"})
	snap := readSnapshot(t, ws)
	require.Equal(t, 50, snap.Seats[0].Bet)

	sendIntent(t, ws, MessageTypeRestart, nil)
	snap = readSnapshot(t, ws)
	assert.Equal(t, "betting", snap.Phase)
	assert.Equal(t, 0, snap.Seats[0].Bet)
	assert.Equal(t, 0, snap.ActiveSeatIndex)
}

func TestUnknownMessageType(t *testing.T) {
	_, ts := newTestServer(t)
	ws := dialWS(t, ts)
	_ = readSnapshot(t, ws)

	sendIntent(t, ws, MessageType("shuffle_harder"), nil)
	msg := readMessage(t, ws)
	require.Equal(t, MessageTypeError, msg.Type)

	var data ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "unknown_type", data.Code)
}
