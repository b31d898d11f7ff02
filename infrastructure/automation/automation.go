// Package automation creates Apple Notes and Apple Calendar entries by
// running AppleScript through osascript. On hosts without osascript the
// operations fail with ErrUnavailable instead of shelling out.
package automation

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// ErrUnavailable indicates osascript is missing, so Apple automation is
// not supported on this host.
var ErrUnavailable = errors.New("apple automation is not supported on this system (osascript not found)")

// defaultScriptTimeout bounds a single osascript invocation unless a
// client is configured otherwise.
const defaultScriptTimeout = 30 * time.Second

// ScriptRunner executes an AppleScript program.
type ScriptRunner interface {
	// Available reports whether the automation backend exists on this host.
	Available() bool
	// Run executes the given AppleScript source and returns its output.
	Run(ctx context.Context, script string) ([]byte, error)
}

type osascriptRunner struct{}

func (osascriptRunner) Available() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

func (osascriptRunner) Run(ctx context.Context, script string) ([]byte, error) {
	return exec.CommandContext(ctx, "osascript", "-e", script).Output()
}

// quote wraps s in AppleScript double quotes, escaping backslashes,
// quotes and newlines.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
