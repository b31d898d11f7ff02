package knowd

import "errors"

// Exported errors for library consumers.
var (
	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("knowd: client is closed")
)
