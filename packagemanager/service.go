package packagemanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/getdocker/getdocker/exec"
	"github.com/getdocker/getdocker/plumbing"
)

// Service provides lazy access to the host's package manager. The first
// operation probes the host for a supported package manager and the result is
// reused for subsequent operations.
type Service struct {
	lazy *plumbing.LazyService[exec.ContextRunner, PackageManager]
}

// NewService creates a new package manager Service with the given provider
// and runner.
func NewService(provider *Provider, runner exec.ContextRunner) *Service {
	return &Service{plumbing.NewLazyService[exec.ContextRunner, PackageManager](provider, runner)}
}

// GetPackageManager returns a PackageManager or an error if no supported
// package manager was found.
func (s *Service) GetPackageManager() (PackageManager, error) {
	pm, err := s.lazy.Get()
	if err != nil {
		return nil, fmt.Errorf("get package manager: %w", err)
	}
	return pm, nil
}

// PackageManager returns the detected package manager. When detection fails a
// NullPackageManager is returned which yields the detection error on every
// operation.
func (s *Service) PackageManager() PackageManager {
	pm, err := s.lazy.Get()
	if err != nil {
		return &NullPackageManager{Err: err}
	}
	return pm
}

// NullPackageManager is a package manager that returns an error on every
// operation.
type NullPackageManager struct {
	Err error
}

func (n *NullPackageManager) err(ctx context.Context) error {
	if ctx.Err() != nil {
		return fmt.Errorf("context error: %w", ctx.Err())
	}
	return n.Err
}

// Install returns an error on every call.
func (n *NullPackageManager) Install(ctx context.Context, _ exec.ContextRunner, packageNames ...string) error {
	return fmt.Errorf("install packages (%s): %w", strings.Join(packageNames, ","), n.err(ctx))
}

// Remove returns an error on every call.
func (n *NullPackageManager) Remove(ctx context.Context, _ exec.ContextRunner, packageNames ...string) error {
	return fmt.Errorf("remove packages (%s): %w", strings.Join(packageNames, ","), n.err(ctx))
}

// Update returns an error on every call.
func (n *NullPackageManager) Update(ctx context.Context, _ exec.ContextRunner) error {
	return fmt.Errorf("update package lists: %w", n.err(ctx))
}
