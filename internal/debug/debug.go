// Package debug traces bitmap renders.
//
// Tracing is off unless BITMAPWRITER_DEBUG=1 or the CLI's --debug flag turns
// it on. While off, NewSession returns nil and every Session method is a
// no-op on the nil receiver, so the renderer pays one pointer check per
// event. A session writes JSON Lines unless it is given a PrettySink.
package debug

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// traceSchema is bumped when an event payload changes shape.
const traceSchema = 1

var tracing atomic.Bool

// SetEnabled turns render tracing on or off for the whole process.
func SetEnabled(on bool) {
	tracing.Store(on)
}

// Enabled reports whether render tracing is on.
func Enabled() bool {
	return tracing.Load()
}

// InitFromEnv turns tracing on when BITMAPWRITER_DEBUG=1. It never turns it
// off.
func InitFromEnv() {
	if os.Getenv("BITMAPWRITER_DEBUG") == "1" {
		SetEnabled(true)
	}
}

// PrettyFromEnv reports whether BITMAPWRITER_DEBUG_PRETTY=1 asks for the
// human-readable trace format.
func PrettyFromEnv() bool {
	return os.Getenv("BITMAPWRITER_DEBUG_PRETTY") == "1"
}

// Session groups the trace events of the renders that share it, for example
// every frame drawn by one animated Writer. Renders on one session must not
// run concurrently.
type Session struct {
	id      string
	sink    Sink
	opened  time.Time
	renders atomic.Int64
}

// NewSession opens a session on sink and writes its session/Start event. It
// returns nil when tracing is off or sink is nil.
func NewSession(sink Sink) *Session {
	if sink == nil || !Enabled() {
		return nil
	}

	s := &Session{id: uuid.NewString(), sink: sink, opened: time.Now()}
	s.Emit("session", "Start", SessionStartData{Schema: traceSchema, PID: os.Getpid()})
	return s
}

// SessionID returns the UUID stamped on every event of the session.
func (s *Session) SessionID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Renders returns how many renders have started on the session.
func (s *Session) Renders() int64 {
	if s == nil {
		return 0
	}
	return s.renders.Load()
}

// Emit writes one event. Sink errors are dropped so that a broken trace
// never fails a render.
func (s *Session) Emit(phase, event string, data interface{}) {
	if s == nil {
		return
	}
	if phase == "render" && event == "Start" {
		s.renders.Add(1)
	}

	//nolint:errcheck
	s.sink.Write(Event{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		SessionID: s.id,
		Phase:     phase,
		Event:     event,
		Data:      data,
	})
}

// Close writes session/End with the render count and closes the sink.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	s.Emit("session", "End", SessionEndData{
		Renders:   s.renders.Load(),
		ElapsedMs: time.Since(s.opened).Milliseconds(),
	})
	return s.sink.Close()
}

// Event is one line of the trace.
type Event struct {
	Timestamp string      `json:"ts"`
	SessionID string      `json:"session_id"`
	Phase     string      `json:"phase"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
}
