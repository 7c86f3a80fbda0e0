package logging

import (
	"fmt"
	"strings"
	"sync"

	"github.com/arloliu/teamsplit/types"
)

// Entry is one recorded log call.
type Entry struct {
	Level         string
	Msg           string
	KeysAndValues []any
}

// Value returns the value logged for key, if any.
func (e Entry) Value(key string) (any, bool) {
	for i := 0; i+1 < len(e.KeysAndValues); i += 2 {
		if k, ok := e.KeysAndValues[i].(string); ok && k == key {
			return e.KeysAndValues[i+1], true
		}
	}

	return nil, false
}

// Recorder keeps every log call in memory so tests can assert on them.
// It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

var _ types.Logger = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(level, msg string, kv []any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, Entry{Level: level, Msg: msg, KeysAndValues: append([]any(nil), kv...)})
}

func (r *Recorder) Debug(msg string, kv ...any) { r.record("DEBUG", msg, kv) }
func (r *Recorder) Info(msg string, kv ...any)  { r.record("INFO", msg, kv) }
func (r *Recorder) Warn(msg string, kv ...any)  { r.record("WARN", msg, kv) }
func (r *Recorder) Error(msg string, kv ...any) { r.record("ERROR", msg, kv) }

// Fatal records at FATAL level. It does not exit.
func (r *Recorder) Fatal(msg string, kv ...any) { r.record("FATAL", msg, kv) }

// Entries returns a snapshot of the recorded calls.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Entry(nil), r.entries...)
}

// Find returns the recorded calls at level whose message contains substr.
func (r *Recorder) Find(level, substr string) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Level == level && strings.Contains(e.Msg, substr) {
			out = append(out, e)
		}
	}

	return out
}

// String renders all entries, one per line, for failure messages.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, e := range r.Entries() {
		fmt.Fprintf(&b, "%s: %s %v\n", e.Level, e.Msg, e.KeysAndValues)
	}

	return b.String()
}
