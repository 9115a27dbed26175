package exec

import (
	"io"
	"strings"
)

// Options is a collection of exec options.
type Options struct {
	in io.Reader
}

// Option is a functional option for Options.
type Option func(*Options)

// Stdin sets the given string as the command's standard input.
func Stdin(s string) Option {
	return func(o *Options) {
		o.in = strings.NewReader(s)
	}
}

// StdinReader sets the given reader as the command's standard input.
func StdinReader(r io.Reader) Option {
	return func(o *Options) {
		o.in = r
	}
}

// Build returns an Options with the given options applied.
func Build(opts ...Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}
