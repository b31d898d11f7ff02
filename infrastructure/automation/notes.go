package automation

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultFolder is where notes land when no folder is given.
const DefaultFolder = "Notes"

// Notes creates notes in Apple Notes.
type Notes struct {
	runner  ScriptRunner
	logger  *slog.Logger
	folder  string
	timeout time.Duration
}

// NotesOption customizes a Notes client.
type NotesOption func(*Notes)

// WithNotesFolder sets the folder used when the caller names none.
func WithNotesFolder(folder string) NotesOption {
	return func(n *Notes) {
		if folder != "" {
			n.folder = folder
		}
	}
}

// WithNotesTimeout bounds each osascript invocation.
func WithNotesTimeout(d time.Duration) NotesOption {
	return func(n *Notes) {
		if d > 0 {
			n.timeout = d
		}
	}
}

// NewNotes creates a Notes client backed by the real osascript binary.
func NewNotes(logger *slog.Logger, opts ...NotesOption) *Notes {
	return NewNotesWithRunner(osascriptRunner{}, logger, opts...)
}

// NewNotesWithRunner creates a Notes client with a custom runner. Tests
// use this to avoid invoking osascript.
func NewNotesWithRunner(runner ScriptRunner, logger *slog.Logger, opts ...NotesOption) *Notes {
	if logger == nil {
		logger = slog.Default()
	}
	n := &Notes{
		runner:  runner,
		logger:  logger,
		folder:  DefaultFolder,
		timeout: defaultScriptTimeout,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Add creates a note in the given folder of the primary Notes account and
// returns the folder used. When the folder-scoped script fails (the folder
// may not exist) it retries with a plain note in the default location.
func (n *Notes) Add(ctx context.Context, title, content, folder string) (string, error) {
	if !n.runner.Available() {
		return "", ErrUnavailable
	}
	if folder == "" {
		folder = n.folder
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if _, err := n.runner.Run(ctx, noteScript(title, content, folder)); err != nil {
		n.logger.Warn("note creation in folder failed, retrying without folder",
			slog.String("folder", folder),
			slog.String("error", err.Error()),
		)
		if _, err := n.runner.Run(ctx, simpleNoteScript(title, content)); err != nil {
			return "", fmt.Errorf("create note: %w", err)
		}
	}

	n.logger.Info("note created",
		slog.String("title", title),
		slog.String("folder", folder),
	)
	return folder, nil
}

func noteScript(title, body, folder string) string {
	return fmt.Sprintf(`tell application "Notes"
	tell account 1
		make new note at folder %s with properties {name:%s, body:%s}
	end tell
end tell`, quote(folder), quote(title), quote(body))
}

func simpleNoteScript(title, body string) string {
	return fmt.Sprintf(`tell application "Notes" to make new note with properties {name:%s, body:%s}`,
		quote(title), quote(body))
}
