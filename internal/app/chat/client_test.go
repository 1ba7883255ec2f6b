package chat

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// recordingHandler captures what a Client's ReadPump hands over.
type recordingHandler struct {
	frames       chan string
	disconnected chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{
		frames:       make(chan string, 16),
		disconnected: make(chan struct{}, 1),
	}
}

func (h *recordingHandler) HandleFrame(_ ConnectionHandle, raw []byte) error {
	h.frames <- string(raw)
	return nil
}

func (h *recordingHandler) HandleDisconnect() {
	h.disconnected <- struct{}{}
}

// startClientServer serves one WebSocket endpoint backed by a Client and returns
// the server-side Client together with a dialed peer connection.
func startClientServer(t *testing.T, h FrameHandler, opts ClientOptions, writePump bool) (*Client, *websocket.Conn) {
	t.Helper()

	clients := make(chan *Client, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Upgrade failed: %v", err)
			return
		}
		c := NewClient(conn, opts)
		clients <- c
		if writePump {
			go c.WritePump()
		}
		c.ReadPump(h)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	peer, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { peer.Close() })

	select {
	case c := <-clients:
		return c, peer
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for server-side client")
		return nil, nil
	}
}

func TestClientReadsFramesInOrder(t *testing.T) {
	h := newRecordingHandler()
	_, peer := startClientServer(t, h, ClientOptions{}, true)

	want := []string{"one", "two", "three"}
	for _, msg := range want {
		if err := peer.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	for _, expected := range want {
		select {
		case got := <-h.frames:
			if got != expected {
				t.Errorf("Expected %q, got %q", expected, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("Timed out waiting for %q", expected)
		}
	}
}

func TestClientSendReachesPeer(t *testing.T) {
	c, peer := startClientServer(t, newRecordingHandler(), ClientOptions{}, true)

	if c.State() != StateOpen {
		t.Fatalf("Expected new client to be open, got %s", c.State())
	}
	if c.ID() == "" {
		t.Error("Expected a connection id")
	}
	if err := c.Send(`{"message":"hello"}`); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	peer.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := peer.ReadMessage()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != `{"message":"hello"}` {
		t.Errorf("Unexpected payload %s", data)
	}
}

func TestClientPeerCloseNotifiesOnce(t *testing.T) {
	h := newRecordingHandler()
	c, peer := startClientServer(t, h, ClientOptions{}, true)

	peer.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	peer.Close()

	select {
	case <-h.disconnected:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for disconnect notification")
	}

	if c.State() != StateClosed {
		t.Errorf("Expected closed state, got %s", c.State())
	}
	if err := c.Send("late"); !errors.Is(err, ErrConnClosed) {
		t.Errorf("Expected ErrConnClosed, got %v", err)
	}

	select {
	case <-h.disconnected:
		t.Error("Disconnect must be reported only once")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestClientCloseFromServer(t *testing.T) {
	h := newRecordingHandler()
	c, peer := startClientServer(t, h, ClientOptions{}, true)

	c.Close()
	c.Close()

	if c.State() == StateOpen {
		t.Error("Expected client to leave the open state after Close")
	}

	peer.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := peer.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("Expected normal closure, got %v", err)
	}

	select {
	case <-h.disconnected:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for disconnect notification")
	}
	if c.State() != StateClosed {
		t.Errorf("Expected closed state, got %s", c.State())
	}
}

func TestClientSendQueueFull(t *testing.T) {
	c, _ := startClientServer(t, newRecordingHandler(), ClientOptions{SendQueueSize: 1}, false)

	if err := c.Send("first"); err != nil {
		t.Fatalf("First send failed: %v", err)
	}
	if err := c.Send("second"); !errors.Is(err, ErrSendQueueFull) {
		t.Errorf("Expected ErrSendQueueFull, got %v", err)
	}
}

func TestConnStateString(t *testing.T) {
	cases := map[ConnState]string{
		StateOpen:     "open",
		StateClosing:  "closing",
		StateClosed:   "closed",
		ConnState(42): "unknown",
	}
	for state, want := range cases {
		if state.String() != want {
			t.Errorf("Expected %q, got %q", want, state.String())
		}
	}
}
