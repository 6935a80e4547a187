// Package debug provides tracing for bdfgo's load and render pipeline.
//
// One switch (BDFGO_DEBUG=1 or --debug) enables everything. Sessions are
// scoped to a single load or render and carry their own id, so traces from
// concurrent renders can be told apart. Output is JSON Lines by default with
// an optional pretty format.
package debug

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

var enabled atomic.Bool

// SetEnabled switches debug mode on or off for the whole process.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled reports whether debug mode is active.
func Enabled() bool {
	return enabled.Load()
}

// Environment variables recognised by InitFromEnv and PrettyFromEnv.
const (
	EnvDebug       = "BDFGO_DEBUG"
	EnvDebugPretty = "BDFGO_DEBUG_PRETTY"
)

// InitFromEnv enables debug mode when BDFGO_DEBUG=1.
func InitFromEnv() {
	if os.Getenv(EnvDebug) == "1" {
		SetEnabled(true)
	}
}

// PrettyFromEnv reports whether BDFGO_DEBUG_PRETTY=1 asks for the pretty sink.
func PrettyFromEnv() bool {
	return os.Getenv(EnvDebugPretty) == "1"
}

// Session groups the events of one CLI invocation or library call under a
// single id. A session may be handed to a load and then to a render; emits
// are serialized so the sink never sees interleaved events.
type Session struct {
	id    string
	sink  Sink
	start time.Time

	mu     sync.Mutex
	seq    int
	closed bool
}

// NewSession creates a session writing to sink. It returns nil when debug
// mode is off or sink is nil, and every Session method is a no-op on nil.
func NewSession(sink Sink) *Session {
	if !Enabled() || sink == nil {
		return nil
	}

	s := &Session{
		id:    newSessionID(),
		sink:  sink,
		start: time.Now(),
	}
	s.Emit("session", "Start", map[string]interface{}{
		"version": "1.0",
	})
	return s
}

// SessionID returns the unique identifier for this session.
func (s *Session) SessionID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Emit sends an event to the sink. Sink write errors are dropped so a broken
// trace never fails the traced operation.
func (s *Session) Emit(phase, event string, data interface{}) {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.seq++
	_ = s.sink.Write(Event{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		SessionID: s.id,
		Seq:       s.seq,
		Phase:     phase,
		Event:     event,
		Data:      data,
	})
}

// Close emits the session end event and closes the sink. Later emits and
// closes are ignored.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}

	s.Emit("session", "End", map[string]int64{
		"elapsed_ms": time.Since(s.start).Milliseconds(),
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.sink.Close()
}

var fallbackID atomic.Uint64

func newSessionID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "p" + strconv.Itoa(os.Getpid()) + "-" + strconv.FormatUint(fallbackID.Add(1), 10)
	}
	return hex.EncodeToString(b)
}

// Event is the base envelope for all debug events.
type Event struct {
	Timestamp string      `json:"ts"`
	SessionID string      `json:"session_id"`
	Seq       int         `json:"seq"`
	Phase     string      `json:"phase"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
}
