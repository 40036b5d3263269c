// Package exitcode carries a process exit status through cobra's error return.
package exitcode

import "fmt"

// Error asks main to exit with Code without printing anything further;
// the command has already written its own status line.
type Error struct {
	Code int
}

func (e *Error) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// New returns an *Error for code.
func New(code int) error { return &Error{Code: code} }
