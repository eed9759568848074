// Package notify shows transient success and failure notifications.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Notifier surfaces the outcome of a user action.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#07BC0C")).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#E74C3C")).Padding(0, 1)
)

// Terminal writes one coloured line per notification.
type Terminal struct {
	w io.Writer
}

// NewTerminal returns a Terminal notifier writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Success(msg string) {
	fmt.Fprintln(t.w, successStyle.Render("✓ "+msg))
}

func (t *Terminal) Error(msg string) {
	fmt.Fprintln(t.w, errorStyle.Render("✗ "+msg))
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Success(string) {}
func (discard) Error(string)   {}

// Kind distinguishes recorded notifications.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Note is a recorded notification.
type Note struct {
	Kind    Kind
	Message string
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu    sync.Mutex
	notes []Note
}

func (r *Recorder) Success(msg string) { r.add(KindSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(KindError, msg) }

func (r *Recorder) add(kind Kind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Note{Kind: kind, Message: msg})
}

// Notes returns a copy of everything recorded so far.
func (r *Recorder) Notes() []Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Note(nil), r.notes...)
}

// Last returns the most recent notification, or the zero Note.
func (r *Recorder) Last() Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return Note{}
	}
	return r.notes[len(r.notes)-1]
}
