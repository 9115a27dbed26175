// Package getdockertest provides testing utilities for mocking the command
// execution layer of getdocker.
package getdockertest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/getdocker/getdocker/exec"
)

var _ exec.Connection = (*MockConnection)(nil)

// A is the struct passed to command handling functions.
type A struct {
	// Ctx is the context passed to the command
	Ctx context.Context //nolint:containedctx
	// Stdin is the standard input of the command
	Stdin io.Reader
	// Stdout is the standard output of the command
	Stdout io.Writer
	// Stderr is the standard error of the command
	Stderr io.Writer
	// Command is the command line
	Command string
}

// CommandHandler is a function that handles a mocked command.
type CommandHandler func(a *A) error

// CommandMatcher is a function that checks if a command matches a certain criteria.
type CommandMatcher func(string) bool

// HasPrefix returns a CommandMatcher that checks if a command starts with a given prefix.
func HasPrefix(prefix string) CommandMatcher {
	return func(cmd string) bool {
		return strings.HasPrefix(cmd, prefix)
	}
}

// Contains returns a CommandMatcher that checks if a command contains a given substring.
func Contains(substring string) CommandMatcher {
	return func(cmd string) bool {
		return strings.Contains(cmd, substring)
	}
}

// Equal returns a CommandMatcher that checks if a command equals a given string.
func Equal(str string) CommandMatcher {
	return func(cmd string) bool {
		return cmd == str
	}
}

// Matches returns a CommandMatcher that checks if a command matches a given regular expression.
func Matches(pattern string) CommandMatcher {
	regex := regexp.MustCompile(pattern)
	return func(cmd string) bool {
		return regex.MatchString(cmd)
	}
}

type matcher struct {
	fn      CommandMatcher
	handler CommandHandler
}

// MockConnection is a mock exec.Connection. Commands are matched against
// registered handlers in order; unmatched commands succeed silently.
type MockConnection struct {
	mu       sync.Mutex
	commands []string
	matchers []matcher
}

// NewMockConnection creates a new mock connection.
func NewMockConnection() *MockConnection {
	return &MockConnection{}
}

// String returns the string representation of the connection.
func (m *MockConnection) String() string { return "mockhost" }

// AddCommand registers a handler for commands matching the given matcher.
func (m *MockConnection) AddCommand(fn CommandMatcher, handler CommandHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchers = append(m.matchers, matcher{fn: fn, handler: handler})
}

// AddCommandOutput registers a handler that writes the given output to stdout
// for commands matching the given matcher.
func (m *MockConnection) AddCommandOutput(fn CommandMatcher, output string) {
	m.AddCommand(fn, func(a *A) error {
		fmt.Fprintln(a.Stdout, output)
		return nil
	})
}

// AddCommandFailure registers a handler that fails with the given message for
// commands matching the given matcher.
func (m *MockConnection) AddCommandFailure(fn CommandMatcher, msg string) {
	m.AddCommand(fn, func(_ *A) error {
		return errors.New(msg) //nolint:goerr113
	})
}

type mockWaiter struct {
	err error
}

func (w mockWaiter) Wait() error { return w.err }

// StartProcess simulates starting a process. The matching handler runs
// synchronously and its error is returned from the waiter's Wait.
func (m *MockConnection) StartProcess(ctx context.Context, cmd string, stdin io.Reader, stdout, stderr io.Writer) (exec.Waiter, error) {
	m.mu.Lock()
	m.commands = append(m.commands, cmd)
	matchers := make([]matcher, len(m.matchers))
	copy(matchers, m.matchers)
	m.mu.Unlock()

	for _, matcher := range matchers {
		if matcher.fn(cmd) {
			err := matcher.handler(&A{Ctx: ctx, Stdin: stdin, Stdout: stdout, Stderr: stderr, Command: cmd})
			return mockWaiter{err: err}, nil
		}
	}
	return mockWaiter{}, nil
}

// Reset clears the command history.
func (m *MockConnection) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = nil
}

// Commands returns a copy of the commands received.
func (m *MockConnection) Commands() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmds := make([]string, len(m.commands))
	copy(cmds, m.commands)
	return cmds
}

// Received returns nil if a command matching the given matcher was received.
func (m *MockConnection) Received(fn CommandMatcher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cmd := range m.commands {
		if fn(cmd) {
			return nil
		}
	}
	return errors.New("a matching command was not received") //nolint:goerr113
}

// MockRunner runs commands on a mock connection.
type MockRunner struct {
	exec.Runner
	*MockConnection
}

// NewMockRunner creates a new mock runner.
func NewMockRunner() *MockRunner {
	connection := NewMockConnection()
	return &MockRunner{
		Runner:         exec.NewHostRunner(connection),
		MockConnection: connection,
	}
}

// String returns the string representation of the runner.
func (m *MockRunner) String() string {
	return "[MockRunner] " + m.MockConnection.String()
}
