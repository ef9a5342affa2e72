package command

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/oaserrors"
	"github.com/erraggy/oasmodel/parser"
)

// Entry is one command recorded in a History.
type Entry struct {
	ID      uuid.UUID `json:"id"`
	Time    time.Time `json:"time"`
	Command Command   `json:"-"`
}

// History is an undo/redo stack bound to one document. Executing a new
// command clears the redo stack. Like the document, a History is not safe
// for concurrent use.
type History struct {
	doc    *model.Document
	done   []Entry
	undone []Entry
	limit  int
	logger parser.Logger
	now    func() time.Time
}

// HistoryOption configures a History.
type HistoryOption func(*History) error

// WithLimit caps the number of undoable entries; the oldest are dropped
// first. Zero means unlimited.
func WithLimit(n int) HistoryOption {
	return func(h *History) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "limit", Value: n, Message: "must not be negative"}
		}
		h.limit = n
		return nil
	}
}

// WithLogger sets the logger used to trace executed, undone and redone
// commands.
func WithLogger(l parser.Logger) HistoryOption {
	return func(h *History) error {
		if l == nil {
			l = parser.NopLogger{}
		}
		h.logger = l
		return nil
	}
}

// NewHistory creates an empty history for doc.
func NewHistory(doc *model.Document, opts ...HistoryOption) (*History, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "document is required"}
	}
	h := &History{doc: doc, logger: parser.NopLogger{}, now: time.Now}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Document returns the document the history edits.
func (h *History) Document() *model.Document { return h.doc }

// Execute runs cmd and records it. A failed command is not recorded.
func (h *History) Execute(cmd Command) (Entry, error) {
	if cmd == nil {
		return Entry{}, &oaserrors.CommandError{Message: "nil command"}
	}
	if err := cmd.Execute(h.doc); err != nil {
		return Entry{}, err
	}
	e := Entry{ID: uuid.New(), Time: h.now(), Command: cmd}
	h.done = append(h.done, e)
	if h.limit > 0 && len(h.done) > h.limit {
		h.done = h.done[len(h.done)-h.limit:]
	}
	h.undone = nil
	h.logger.Debug("executed command", "type", cmd.Type(), "id", e.ID.String())
	return e, nil
}

// Undo reverts the most recent command.
func (h *History) Undo() (Entry, error) {
	if len(h.done) == 0 {
		return Entry{}, &oaserrors.CommandError{Message: "nothing to undo"}
	}
	e := h.done[len(h.done)-1]
	if err := e.Command.Undo(h.doc); err != nil {
		return Entry{}, fmt.Errorf("command: undo %s: %w", e.Command.Type(), err)
	}
	h.done = h.done[:len(h.done)-1]
	h.undone = append(h.undone, e)
	h.logger.Debug("undid command", "type", e.Command.Type(), "id", e.ID.String())
	return e, nil
}

// Redo re-executes the most recently undone command.
func (h *History) Redo() (Entry, error) {
	if len(h.undone) == 0 {
		return Entry{}, &oaserrors.CommandError{Message: "nothing to redo"}
	}
	e := h.undone[len(h.undone)-1]
	if err := e.Command.Execute(h.doc); err != nil {
		return Entry{}, fmt.Errorf("command: redo %s: %w", e.Command.Type(), err)
	}
	h.undone = h.undone[:len(h.undone)-1]
	h.done = append(h.done, e)
	h.logger.Debug("redid command", "type", e.Command.Type(), "id", e.ID.String())
	return e, nil
}

// CanUndo reports whether Undo has an entry to revert.
func (h *History) CanUndo() bool { return len(h.done) > 0 }

// CanRedo reports whether Redo has an entry to re-execute.
func (h *History) CanRedo() bool { return len(h.undone) > 0 }

// Entries returns the undoable entries, oldest first.
func (h *History) Entries() []Entry {
	return append([]Entry(nil), h.done...)
}
