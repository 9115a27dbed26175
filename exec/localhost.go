package exec

import (
	"context"
	"io"
	osexec "os/exec"
)

// Localhost is a Connection that runs commands on the local host through a
// shell.
type Localhost struct{}

// String returns the connection's printable name.
func (c Localhost) String() string {
	return "localhost"
}

// StartProcess starts a process on the local host.
func (c Localhost) StartProcess(ctx context.Context, cmd string, stdin io.Reader, stdout, stderr io.Writer) (Waiter, error) {
	command := osexec.CommandContext(ctx, "sh", "-c", "--", cmd)
	command.Stdin = stdin
	command.Stdout = stdout
	command.Stderr = stderr

	if err := command.Start(); err != nil {
		return nil, ErrCommandFailed.Wrapf("start local process: %w", err)
	}
	return command, nil
}

// NewLocalRunner returns a Runner that runs commands on the local host.
func NewLocalRunner(decorators ...DecorateFunc) *HostRunner {
	return NewHostRunner(Localhost{}, decorators...)
}
