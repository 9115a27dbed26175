// Package exec provides helpers for executing commands on the host.
package exec

import (
	"context"
	"fmt"
	"io"

	"github.com/getdocker/getdocker/errstring"
)

// ErrCommandFailed is returned when a command fails.
var ErrCommandFailed = errstring.New("command failed")

// Waiter is implemented by processes that can be waited on.
type Waiter interface {
	Wait() error
}

// Connection is a minimal interface for running processes on a host.
type Connection interface {
	fmt.Stringer
	StartProcess(ctx context.Context, cmd string, stdin io.Reader, stdout, stderr io.Writer) (Waiter, error)
}

// DecorateFunc is a function that takes a command string and returns a
// decorated command string, like wrapping it in a sudo call.
type DecorateFunc func(string) string

// SimpleRunner is a command runner that can run commands without a context.
type SimpleRunner interface {
	fmt.Stringer
	Exec(command string, opts ...Option) error
	ExecOutput(command string, opts ...Option) (string, error)
}

// ContextRunner is a command runner that can run commands with a context.
type ContextRunner interface {
	fmt.Stringer
	ExecContext(ctx context.Context, command string, opts ...Option) error
	ExecOutputContext(ctx context.Context, command string, opts ...Option) (string, error)
}

// CommandFormatter is implemented by runners that can format commands without
// running them.
type CommandFormatter interface {
	Command(cmd string) string
	Commandf(format string, args ...any) string
}

// Runner is a full featured command runner.
type Runner interface {
	SimpleRunner
	ContextRunner
	CommandFormatter
}
