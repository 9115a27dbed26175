package initsystem

import (
	"context"
	"fmt"

	"github.com/getdocker/getdocker/exec"
)

// SysVinit is the old-style init system still found on minimal Debian family
// installations.
type SysVinit struct{}

// StartService starts a service.
func (i SysVinit) StartService(ctx context.Context, h exec.ContextRunner, s string) error {
	if err := h.ExecContext(ctx, fmt.Sprintf("/etc/init.d/%s start", s)); err != nil {
		return fmt.Errorf("failed to start service %s: %w", s, err)
	}
	return nil
}

// StopService stops a service.
func (i SysVinit) StopService(ctx context.Context, h exec.ContextRunner, s string) error {
	if err := h.ExecContext(ctx, fmt.Sprintf("/etc/init.d/%s stop", s)); err != nil {
		return fmt.Errorf("failed to stop service %s: %w", s, err)
	}
	return nil
}

// EnableService enables a service.
func (i SysVinit) EnableService(ctx context.Context, h exec.ContextRunner, s string) error {
	if err := h.ExecContext(ctx, fmt.Sprintf("update-rc.d %s defaults", s)); err != nil {
		return fmt.Errorf("failed to enable service %s: %w", s, err)
	}
	return nil
}

// DisableService disables a service.
func (i SysVinit) DisableService(ctx context.Context, h exec.ContextRunner, s string) error {
	if err := h.ExecContext(ctx, fmt.Sprintf("update-rc.d %s remove", s)); err != nil {
		return fmt.Errorf("failed to disable service %s: %w", s, err)
	}
	return nil
}

// ServiceIsRunning returns true if a service is running.
func (i SysVinit) ServiceIsRunning(ctx context.Context, h exec.ContextRunner, s string) bool {
	return h.ExecContext(ctx, fmt.Sprintf("/etc/init.d/%s status > /dev/null 2>&1", s)) == nil
}

// RegisterSysVinit registers SysVinit to the given provider.
func RegisterSysVinit(provider *Provider) {
	provider.Register(func(c exec.ContextRunner) (ServiceManager, bool) {
		if c.ExecContext(context.Background(), "command -v update-rc.d > /dev/null 2>&1 && test -d /etc/init.d") != nil {
			return nil, false
		}
		return SysVinit{}, true
	})
}
