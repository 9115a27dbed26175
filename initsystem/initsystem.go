// Package initsystem provides a common interface for interacting with init
// systems like systemd, openrc and sysvinit.
package initsystem

import (
	"context"
	"fmt"
	"sync"

	"github.com/getdocker/getdocker/errstring"
	"github.com/getdocker/getdocker/exec"
	"github.com/getdocker/getdocker/plumbing"
)

// ServiceManager defines the methods for interacting with an init system.
type ServiceManager interface {
	StartService(ctx context.Context, h exec.ContextRunner, s string) error
	StopService(ctx context.Context, h exec.ContextRunner, s string) error
	EnableService(ctx context.Context, h exec.ContextRunner, s string) error
	DisableService(ctx context.Context, h exec.ContextRunner, s string) error
	ServiceIsRunning(ctx context.Context, h exec.ContextRunner, s string) bool
}

// ErrNoInitSystem is returned when no supported init system is found.
var ErrNoInitSystem = errstring.New("no supported init system found")

// Factory is a plumbing.Factory for init system ServiceManagers.
type Factory = plumbing.Factory[exec.ContextRunner, ServiceManager]

// Provider is a plumbing.Provider for init system ServiceManagers.
type Provider = plumbing.Provider[exec.ContextRunner, ServiceManager]

// DefaultProvider is the default provider for init systems.
var DefaultProvider = sync.OnceValue(func() *Provider {
	provider := NewProvider()
	RegisterSystemd(provider)
	RegisterOpenRC(provider)
	RegisterSysVinit(provider)
	return provider
})

// NewProvider returns a new Provider.
func NewProvider() *Provider {
	return plumbing.NewProvider[exec.ContextRunner, ServiceManager](ErrNoInitSystem)
}

// Service provides lazy access to the host's init system.
type Service struct {
	lazy *plumbing.LazyService[exec.ContextRunner, ServiceManager]
}

// NewService creates a new init system Service with the given provider and
// runner.
func NewService(provider *Provider, runner exec.ContextRunner) *Service {
	return &Service{plumbing.NewLazyService[exec.ContextRunner, ServiceManager](provider, runner)}
}

// GetServiceManager returns a ServiceManager or an error if no supported init
// system was found.
func (s *Service) GetServiceManager() (ServiceManager, error) {
	sm, err := s.lazy.Get()
	if err != nil {
		return nil, fmt.Errorf("get service manager: %w", err)
	}
	return sm, nil
}
