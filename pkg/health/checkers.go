package health

import (
	"context"
	"time"
)

// Checkable is implemented by adapters that support health checks.
type Checkable interface {
	HealthCheck(ctx context.Context) error
}

// AdapterChecker wraps any Checkable adapter into a named health check.
type AdapterChecker struct {
	name    string
	adapter Checkable
	timeout time.Duration
}

// NewAdapterChecker creates a health checker for an adapter.
func NewAdapterChecker(name string, adapter Checkable, timeout time.Duration) *AdapterChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AdapterChecker{
		name:    name,
		adapter: adapter,
		timeout: timeout,
	}
}

// NewStorageChecker creates a health checker for the table store.
func NewStorageChecker(store Checkable) *AdapterChecker {
	return NewAdapterChecker("storage", store, 5*time.Second)
}

// Check performs the health check on the adapter.
func (c *AdapterChecker) Check(ctx context.Context) CheckResult {
	start := time.Now()
	checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.adapter.HealthCheck(checkCtx)
	duration := time.Since(start)
	if err != nil {
		return CheckResult{
			Name:      c.name,
			Status:    StatusUnhealthy,
			Error:     err.Error(),
			Timestamp: time.Now(),
			Duration:  duration,
		}
	}
	return CheckResult{
		Name:      c.name,
		Status:    StatusHealthy,
		Message:   "OK",
		Timestamp: time.Now(),
		Duration:  duration,
	}
}

// Name returns the name of the health check.
func (c *AdapterChecker) Name() string {
	return c.name
}

// PingChecker always reports healthy. Used for liveness.
type PingChecker struct {
	name string
}

// NewPingChecker creates a new ping checker.
func NewPingChecker(name string) *PingChecker {
	return &PingChecker{name: name}
}

// Check always returns healthy status.
func (c *PingChecker) Check(_ context.Context) CheckResult {
	return CheckResult{
		Name:      c.name,
		Status:    StatusHealthy,
		Message:   "Service is alive",
		Timestamp: time.Now(),
	}
}

// Name returns the name of the health check.
func (c *PingChecker) Name() string {
	return c.name
}
