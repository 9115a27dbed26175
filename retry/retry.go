// Package retry provides context based retry functionality for functions.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAbort is returned when retrying an operation will not result in a
// different outcome.
var ErrAbort = errors.New("operation can not be completed")

// Options for retry.
type Options struct {
	delay         time.Duration
	maxRetries    int
	continueOnErr func(error) bool
}

// NewOptions returns a new Options with the given options applied.
func NewOptions(opts ...Option) Options {
	options := Options{
		delay: 2 * time.Second,
		continueOnErr: func(err error) bool {
			return !errors.Is(err, ErrAbort)
		},
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// Option is a functional option function for Options.
type Option func(*Options)

// Delay is a functional option that sets the delay between retries. The
// default is 2 seconds.
func Delay(d time.Duration) Option {
	return func(o *Options) {
		o.delay = d
	}
}

// MaxRetries is a functional option that sets the maximum number of retries.
// The default is to retry until the context is done or canceled.
func MaxRetries(n int) Option {
	return func(o *Options) {
		o.maxRetries = n
	}
}

// If is a functional option that sets the function to determine if an error
// should continue the retry.
func If(f func(error) bool) Option {
	return func(o *Options) {
		o.continueOnErr = f
	}
}

// Do runs the function until it returns nil or the context is done or
// canceled.
func Do(ctx context.Context, fn func() error, opts ...Option) error {
	return DoWithContext(ctx, func(_ context.Context) error { return fn() }, opts...)
}

// DoWithContext runs the function and passes the context to it until it
// returns nil or the context is done or canceled.
func DoWithContext(ctx context.Context, fn func(context.Context) error, opts ...Option) error {
	options := NewOptions(opts...)

	var err error
	for attempt := 0; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err != nil {
				return fmt.Errorf("%w: %w", ctxErr, err)
			}
			return ctxErr //nolint:wrapcheck
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !options.continueOnErr(err) {
			return err
		}
		if options.maxRetries > 0 && attempt >= options.maxRetries {
			return err
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-time.After(options.delay):
		}
	}
}
