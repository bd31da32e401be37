package cli

import (
	"errors"
	"fmt"

	"github.com/idilsaglam/todolists/internal/store"
)

// usageError marks mistakes in how the command was invoked (exit code 2).
type usageError struct {
	msg  string
	hint string
}

func (e usageError) Error() string { return e.msg }

func errUsage(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func errUsageHint(hint, format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...), hint: hint}
}

// ExitCode maps an error returned by the root command to a process exit
// code: 0 ok, 1 failure, 2 usage.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var u usageError
	if errors.As(err, &u) {
		return 2
	}
	if errors.Is(err, store.ErrEmptyName) || errors.Is(err, store.ErrDuplicateName) || errors.Is(err, store.ErrIndexOutOfRange) {
		return 2
	}
	return 1
}

// Hint returns the follow-up suggestion attached to a usage error, if any.
func Hint(err error) string {
	var u usageError
	if errors.As(err, &u) {
		return u.hint
	}
	return ""
}
