package websocketPkg

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// robotServer acks every command with the status chosen by reply, after first
// sending an unrelated message.
func robotServer(t *testing.T, reply func(Command) *Ack) (*httptest.Server, chan Command) {
	t.Helper()
	received := make(chan Command, 16)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var cmd Command
			if err := json.Unmarshal(msg, &cmd); err != nil {
				return
			}
			received <- cmd

			conn.WriteMessage(websocket.TextMessage, []byte(`{"id":999999,"status":"done"}`))
			if ack := reply(cmd); ack != nil {
				data, _ := json.Marshal(ack)
				conn.WriteMessage(websocket.TextMessage, data)
			}
		}
	}))
	t.Cleanup(srv.Close)

	return srv, received
}

func testBridge(url string, ackTimeout time.Duration) *robotBridge {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return newRobotBridge("ws"+strings.TrimPrefix(url, "http"), log, ackTimeout)
}

func TestRotateWaitsForMatchingAck(t *testing.T) {
	srv, received := robotServer(t, func(cmd Command) *Ack {
		return &Ack{ID: cmd.ID, Status: AckDone}
	})
	bridge := testBridge(srv.URL, time.Second)
	defer bridge.Close()

	require.NoError(t, bridge.Rotate(context.Background(), "right", 45))
	require.NoError(t, bridge.Rotate(context.Background(), "right", 45))

	first := <-received
	assert.Equal(t, Command{ID: 1, Command: "rotate", Direction: "right", Degrees: 45}, first)
	second := <-received
	assert.Equal(t, uint64(2), second.ID)
	assert.True(t, bridge.IsConnected())
}

func TestRotateRejected(t *testing.T) {
	srv, _ := robotServer(t, func(cmd Command) *Ack {
		return &Ack{ID: cmd.ID, Status: AckError, Message: "bumper pressed"}
	})
	bridge := testBridge(srv.URL, time.Second)
	defer bridge.Close()

	err := bridge.Rotate(context.Background(), "right", 45)

	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "bumper pressed")
}

func TestRotateTimesOutWithoutAck(t *testing.T) {
	srv, _ := robotServer(t, func(cmd Command) *Ack { return nil })
	bridge := testBridge(srv.URL, 100*time.Millisecond)
	defer bridge.Close()

	err := bridge.Rotate(context.Background(), "right", 45)

	assert.Error(t, err)
	assert.False(t, bridge.IsConnected())
}

func TestRotateUnreachableBridge(t *testing.T) {
	bridge := testBridge("http://127.0.0.1:1", time.Second)

	err := bridge.Rotate(context.Background(), "right", 45)

	assert.ErrorIs(t, err, ErrNotConnected)
}
