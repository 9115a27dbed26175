package exec

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/getdocker/getdocker/iostream"
	"github.com/getdocker/getdocker/log"
)

// validate interfaces.
var (
	_ Runner           = (*HostRunner)(nil)
	_ SimpleRunner     = (*HostRunner)(nil)
	_ ContextRunner    = (*HostRunner)(nil)
	_ CommandFormatter = (*HostRunner)(nil)
)

// HostRunner is a Runner that runs commands on a host through a Connection.
type HostRunner struct {
	connection Connection
	decorators []DecorateFunc
}

// NewHostRunner returns a new HostRunner.
func NewHostRunner(conn Connection, decorators ...DecorateFunc) *HostRunner {
	return &HostRunner{
		connection: conn,
		decorators: decorators,
	}
}

// Command returns the command string decorated with the runner's decorators.
func (r *HostRunner) Command(cmd string) string {
	for _, decorator := range r.decorators {
		cmd = decorator(cmd)
	}
	return cmd
}

// Commandf formats the command string and returns it decorated.
func (r *HostRunner) Commandf(format string, args ...any) string {
	return r.Command(fmt.Sprintf(format, args...))
}

// String returns the connection's string representation.
func (r *HostRunner) String() string {
	return r.connection.String()
}

// ExecContext runs the command, streaming any output to the logger.
func (r *HostRunner) ExecContext(ctx context.Context, command string, opts ...Option) error {
	o := Build(opts...)
	cmd := r.Command(command)
	logger := log.Default().With(log.String("host", r.String()))
	logger.Debug("executing command", log.String("command", cmd))

	stdout := iostream.ScanWriter('\n', func(line string) {
		logger.Debug(line, log.String("stream", "stdout"))
	})
	stderr := iostream.ScanWriter('\n', func(line string) {
		logger.Error(line, log.String("stream", "stderr"))
	})
	defer stdout.Close()
	defer stderr.Close()

	waiter, err := r.connection.StartProcess(ctx, cmd, o.in, stdout, stderr)
	if err != nil {
		return ErrCommandFailed.Wrapf("start %s: %w", command, err)
	}
	if err := waiter.Wait(); err != nil {
		return ErrCommandFailed.Wrapf("%s: %w", command, err)
	}
	return nil
}

// ExecOutputContext runs the command and returns its trimmed standard output.
func (r *HostRunner) ExecOutputContext(ctx context.Context, command string, opts ...Option) (string, error) {
	o := Build(opts...)
	cmd := r.Command(command)
	logger := log.Default().With(log.String("host", r.String()))
	logger.Debug("executing command", log.String("command", cmd))

	out := &bytes.Buffer{}
	stderr := iostream.ScanWriter('\n', func(line string) {
		logger.Error(line, log.String("stream", "stderr"))
	})
	defer stderr.Close()

	waiter, err := r.connection.StartProcess(ctx, cmd, o.in, out, stderr)
	if err != nil {
		return "", ErrCommandFailed.Wrapf("start %s: %w", command, err)
	}
	if err := waiter.Wait(); err != nil {
		return "", ErrCommandFailed.Wrapf("%s: %w", command, err)
	}
	return strings.TrimSpace(stripansi.Strip(out.String())), nil
}

// Exec runs the command without a context.
func (r *HostRunner) Exec(command string, opts ...Option) error {
	return r.ExecContext(context.Background(), command, opts...)
}

// ExecOutput runs the command without a context and returns its trimmed
// standard output.
func (r *HostRunner) ExecOutput(command string, opts ...Option) (string, error) {
	return r.ExecOutputContext(context.Background(), command, opts...)
}
