// Package notify delivers user-facing notifications. Delivery is
// fire-and-forget: sinks never return errors to the caller.
package notify

import (
	"fmt"
	"io"
	"sync"

	"charm.land/lipgloss/v2"
	"go.uber.org/zap"
)

// Sink receives notifications.
type Sink interface {
	Notify(title, body string)
}

// Func adapts a function to a Sink.
type Func func(title, body string)

func (f Func) Notify(title, body string) { f(title, body) }

// Discard drops every notification.
var Discard Sink = Func(func(string, string) {})

// Gate forwards to a sink only while the platform permission is granted.
type Gate struct {
	mu      sync.RWMutex
	allowed bool
	next    Sink
}

// NewGate wraps next with the given permission.
func NewGate(next Sink, allowed bool) *Gate {
	return &Gate{next: next, allowed: allowed}
}

// SetAllowed changes the permission.
func (g *Gate) SetAllowed(allowed bool) {
	g.mu.Lock()
	g.allowed = allowed
	g.mu.Unlock()
}

// Allowed reports the current permission.
func (g *Gate) Allowed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.allowed
}

func (g *Gate) Notify(title, body string) {
	if g.Allowed() {
		g.next.Notify(title, body)
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	bodyStyle  = lipgloss.NewStyle().Faint(true)
)

// Writer prints notifications to w, one title line and an optional body line.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter returns a sink printing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (s *Writer) Notify(title, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, titleStyle.Render(title))
	if body != "" {
		fmt.Fprintln(s.w, "  "+bodyStyle.Render(body))
	}
}

// Log records notifications at info level.
type Log struct {
	logger *zap.Logger
}

// NewLog returns a sink that logs to logger.
func NewLog(logger *zap.Logger) Log {
	return Log{logger: logger}
}

func (l Log) Notify(title, body string) {
	l.logger.Info("notification", zap.String("title", title), zap.String("body", body))
}

// Multi fans out to every sink in order.
type Multi []Sink

func (m Multi) Notify(title, body string) {
	for _, s := range m {
		s.Notify(title, body)
	}
}

// Message is one delivered notification.
type Message struct {
	Title string
	Body  string
}

// Recorder keeps every notification it receives. Safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *Recorder) Notify(title, body string) {
	r.mu.Lock()
	r.msgs = append(r.msgs, Message{Title: title, Body: body})
	r.mu.Unlock()
}

// Messages returns a copy of what has been received so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// Drain returns and clears what has been received so far.
func (r *Recorder) Drain() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.msgs
	r.msgs = nil
	return out
}
