package exec

import (
	"context"
	"fmt"
	"io"
)

// Printer is a Connection that prints commands instead of executing them.
// It is used for dry runs where the commands that would modify the host are
// displayed to the user.
type Printer struct {
	Out io.Writer
}

// String returns the connection's printable name.
func (p Printer) String() string {
	return "dry-run"
}

// StartProcess prints the command and returns a no-op waiter.
func (p Printer) StartProcess(_ context.Context, cmd string, _ io.Reader, _, _ io.Writer) (Waiter, error) {
	fmt.Fprintln(p.Out, cmd)
	return NopWaiter{}, nil
}

// NopWaiter is a Waiter that returns immediately.
type NopWaiter struct{}

// Wait returns nil.
func (NopWaiter) Wait() error { return nil }

// NewDryRunner returns a Runner that prints the decorated commands to the
// given writer instead of running them.
func NewDryRunner(out io.Writer, decorators ...DecorateFunc) *HostRunner {
	return NewHostRunner(Printer{Out: out}, decorators...)
}
