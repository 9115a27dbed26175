package initsystem

import (
	"context"
	"fmt"

	"github.com/getdocker/getdocker/exec"
)

// OpenRC is found on some linux systems, Devuan and Alpine for example.
type OpenRC struct{}

// StartService starts a service.
func (i OpenRC) StartService(ctx context.Context, h exec.ContextRunner, s string) error {
	if err := h.ExecContext(ctx, fmt.Sprintf("rc-service %s start", s)); err != nil {
		return fmt.Errorf("failed to start service %s: %w", s, err)
	}
	return nil
}

// StopService stops a service.
func (i OpenRC) StopService(ctx context.Context, h exec.ContextRunner, s string) error {
	if err := h.ExecContext(ctx, fmt.Sprintf("rc-service %s stop", s)); err != nil {
		return fmt.Errorf("failed to stop service %s: %w", s, err)
	}
	return nil
}

// EnableService enables a service.
func (i OpenRC) EnableService(ctx context.Context, h exec.ContextRunner, s string) error {
	if err := h.ExecContext(ctx, fmt.Sprintf("rc-update add %s", s)); err != nil {
		return fmt.Errorf("failed to enable service %s: %w", s, err)
	}
	return nil
}

// DisableService disables a service.
func (i OpenRC) DisableService(ctx context.Context, h exec.ContextRunner, s string) error {
	if err := h.ExecContext(ctx, fmt.Sprintf("rc-update del %s", s)); err != nil {
		return fmt.Errorf("failed to disable service %s: %w", s, err)
	}
	return nil
}

// ServiceIsRunning returns true if a service is running.
func (i OpenRC) ServiceIsRunning(ctx context.Context, h exec.ContextRunner, s string) bool {
	return h.ExecContext(ctx, fmt.Sprintf(`rc-service %s status 2> /dev/null | grep -q "status: started"`, s)) == nil
}

// RegisterOpenRC registers OpenRC to the given provider.
func RegisterOpenRC(provider *Provider) {
	provider.Register(func(c exec.ContextRunner) (ServiceManager, bool) {
		if c.ExecContext(context.Background(), "command -v openrc-init > /dev/null 2>&1 || test -f /sbin/openrc") != nil {
			return nil, false
		}
		return OpenRC{}, true
	})
}
