package initsystem

import (
	"context"
	"fmt"

	"github.com/getdocker/getdocker/exec"
)

// Systemd is found by default on most linux distributions today.
type Systemd struct{}

// StartService starts a service.
func (i Systemd) StartService(ctx context.Context, h exec.ContextRunner, s string) error {
	if err := h.ExecContext(ctx, fmt.Sprintf("systemctl start %s 2> /dev/null", s)); err != nil {
		return fmt.Errorf("failed to start service %s: %w", s, err)
	}
	return nil
}

// StopService stops a service.
func (i Systemd) StopService(ctx context.Context, h exec.ContextRunner, s string) error {
	if err := h.ExecContext(ctx, fmt.Sprintf("systemctl stop %s 2> /dev/null", s)); err != nil {
		return fmt.Errorf("failed to stop service %s: %w", s, err)
	}
	return nil
}

// EnableService enables a service.
func (i Systemd) EnableService(ctx context.Context, h exec.ContextRunner, s string) error {
	if err := h.ExecContext(ctx, fmt.Sprintf("systemctl enable %s 2> /dev/null", s)); err != nil {
		return fmt.Errorf("failed to enable service %s: %w", s, err)
	}
	return nil
}

// DisableService disables a service.
func (i Systemd) DisableService(ctx context.Context, h exec.ContextRunner, s string) error {
	if err := h.ExecContext(ctx, fmt.Sprintf("systemctl disable %s 2> /dev/null", s)); err != nil {
		return fmt.Errorf("failed to disable service %s: %w", s, err)
	}
	return nil
}

// ServiceIsRunning returns true if a service is running.
func (i Systemd) ServiceIsRunning(ctx context.Context, h exec.ContextRunner, s string) bool {
	return h.ExecContext(ctx, fmt.Sprintf(`systemctl status %s 2> /dev/null | grep -q "(running)"`, s)) == nil
}

// DaemonReload reloads init system configuration.
func (i Systemd) DaemonReload(ctx context.Context, h exec.ContextRunner) error {
	if err := h.ExecContext(ctx, "systemctl daemon-reload 2> /dev/null"); err != nil {
		return fmt.Errorf("failed to daemon-reload: %w", err)
	}
	return nil
}

// RegisterSystemd registers systemd to the given provider.
func RegisterSystemd(provider *Provider) {
	provider.Register(func(c exec.ContextRunner) (ServiceManager, bool) {
		if c.ExecContext(context.Background(), "stat /run/systemd/system > /dev/null 2>&1") != nil {
			return nil, false
		}
		return Systemd{}, true
	})
}
