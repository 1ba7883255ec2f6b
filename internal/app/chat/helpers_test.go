package chat

import (
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"relaychat/internal/app/user"
	"relaychat/internal/pkg/logx"
)

func TestMain(m *testing.M) {
	logx.InitGlobalLogger(false, "disabled")
	os.Exit(m.Run())
}

// fakeConn is an in-memory ConnectionHandle. Tests read sent frames and flip the state directly.
type fakeConn struct {
	mu      sync.Mutex
	state   ConnState
	sent    []string
	sendErr error
	panics  bool
	closed  int
}

func newFakeConn() *fakeConn {
	return &fakeConn{state: StateOpen}
}

func (f *fakeConn) Send(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.panics {
		panic("send on closed channel")
	}
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeConn) State() ConnState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	f.state = StateClosed
	return nil
}

func (f *fakeConn) setState(s ConnState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = s
}

// frames decodes every frame sent so far.
func (f *fakeConn) frames(t *testing.T) []OutboundFrame {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]OutboundFrame, 0, len(f.sent))
	for _, raw := range f.sent {
		var frame OutboundFrame
		if err := json.Unmarshal([]byte(raw), &frame); err != nil {
			t.Fatalf("Sent frame is not valid JSON: %v (%s)", err, raw)
		}
		out = append(out, frame)
	}
	return out
}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fixedClock pins the pool's clock so datetime fields are predictable.
func fixedClock(p *Pool) {
	p.now = func() time.Time {
		return time.Date(2024, 5, 1, 14, 3, 9, 0, time.UTC)
	}
}

func newMember(id, username string) (*ChatUser, *fakeConn) {
	conn := newFakeConn()
	return NewChatUser(user.New(id, username), conn), conn
}
