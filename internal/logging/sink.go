// pattern: Imperative Shell

package logging

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"
)

// errSinkClosed is returned by writes after Close.
var errSinkClosed = errors.New("logging: write to closed channel sink")

// ChannelSink is a zapcore.WriteSyncer that decodes each JSON entry and
// offers it on a bounded channel. A full channel drops its oldest entry,
// so a slow or absent reader never blocks logging.
type ChannelSink struct {
	mu      sync.Mutex
	entries chan LogEntry
	closed  bool
}

// NewChannelSink creates a sink buffering up to size entries.
func NewChannelSink(size int) *ChannelSink {
	return &ChannelSink{entries: make(chan LogEntry, size)}
}

// Write decodes one encoded entry. Undecodable input is accepted and
// discarded.
func (s *ChannelSink) Write(p []byte) (int, error) {
	entry, err := decodeEntry(p)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, errSinkClosed
	}
	if err != nil || cap(s.entries) == 0 {
		return len(p), nil
	}

	for {
		select {
		case s.entries <- entry:
			return len(p), nil
		default:
		}
		select {
		case <-s.entries:
		default:
		}
	}
}

// Sync is a no-op.
func (s *ChannelSink) Sync() error {
	return nil
}

// Close closes the entries channel. Further calls do nothing.
func (s *ChannelSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.entries)
	}
	return nil
}

// Entries returns the channel entries are delivered on.
func (s *ChannelSink) Entries() <-chan LogEntry {
	return s.entries
}

// decodeEntry turns one line of zap JSON output into a LogEntry. Caller
// and stack trace keys stay in the log file only.
func decodeEntry(data []byte) (LogEntry, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return LogEntry{}, err
	}

	take := func(key string) string {
		v, _ := fields[key].(string)
		delete(fields, key)
		return v
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Message:   take("msg"),
		Level:     ParseLevel(take("level")),
		Scope:     take("logger"),
	}
	if entry.Scope == "" {
		entry.Scope = "app"
	}
	if ts, ok := fields["ts"].(float64); ok {
		sec, frac := math.Modf(ts)
		entry.Timestamp = time.Unix(int64(sec), int64(frac*1e9))
	}
	delete(fields, "ts")
	delete(fields, "caller")
	delete(fields, "stacktrace")

	entry.Fields = fields
	return entry, nil
}

// Forward writes every entry whose scope matches prefix to w, one per
// line, until entries is closed. The returned channel is closed once the
// last entry has been written.
func Forward(entries <-chan LogEntry, w io.Writer, prefix string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for entry := range entries {
			if entry.MatchesScope(prefix) {
				_, _ = fmt.Fprintln(w, entry.String())
			}
		}
	}()
	return done
}
