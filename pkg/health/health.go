// Package health aggregates readiness checks for the management server.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Status represents the health status of a component.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult represents the result of a single health check.
type CheckResult struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
}

// Checker is the interface health check implementations must satisfy.
type Checker interface {
	Check(ctx context.Context) CheckResult
	Name() string
}

// AggregatedResult is the combined outcome of every registered check.
type AggregatedResult struct {
	Status    Status        `json:"status"`
	Checks    []CheckResult `json:"checks"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
}

// IsHealthy reports whether the overall status is healthy.
func (r AggregatedResult) IsHealthy() bool {
	return r.Status == StatusHealthy
}

// Registry manages a collection of health checks.
type Registry struct {
	checkers map[string]Checker
	mu       sync.RWMutex
}

// NewRegistry creates an empty health check registry.
func NewRegistry() *Registry {
	return &Registry{
		checkers: make(map[string]Checker),
	}
}

// Register adds a health check, replacing any checker with the same name.
func (r *Registry) Register(checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[checker.Name()] = checker
}

// RegisterFunc registers a function-based health check under a name.
func (r *Registry) RegisterFunc(name string, checkFunc func(ctx context.Context) CheckResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[name] = &namedChecker{name: name, checkFunc: checkFunc}
}

// Unregister removes a health check.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.checkers, name)
}

// List returns the names of all registered health checks.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.checkers))
	for name := range r.checkers {
		names = append(names, name)
	}
	return names
}

// Check runs every registered check concurrently. Any unhealthy check
// makes the aggregate unhealthy.
func (r *Registry) Check(ctx context.Context) AggregatedResult {
	r.mu.RLock()
	checkers := make([]Checker, 0, len(r.checkers))
	for _, checker := range r.checkers {
		checkers = append(checkers, checker)
	}
	r.mu.RUnlock()

	start := time.Now()
	resultsChan := make(chan CheckResult, len(checkers))
	var wg sync.WaitGroup
	for _, checker := range checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()
			resultsChan <- c.Check(ctx)
		}(checker)
	}
	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	results := make([]CheckResult, 0, len(checkers))
	overall := StatusHealthy
	for result := range resultsChan {
		results = append(results, result)
		if result.Status == StatusUnhealthy {
			overall = StatusUnhealthy
		}
	}

	return AggregatedResult{
		Status:    overall,
		Checks:    results,
		Timestamp: time.Now(),
		Duration:  time.Since(start),
	}
}

// CheckOne runs a specific health check by name.
func (r *Registry) CheckOne(ctx context.Context, name string) (CheckResult, error) {
	r.mu.RLock()
	checker, exists := r.checkers[name]
	r.mu.RUnlock()
	if !exists {
		return CheckResult{}, fmt.Errorf("health check not found: %s", name)
	}
	return checker.Check(ctx), nil
}

type namedChecker struct {
	name      string
	checkFunc func(ctx context.Context) CheckResult
}

func (c *namedChecker) Check(ctx context.Context) CheckResult {
	return c.checkFunc(ctx)
}

func (c *namedChecker) Name() string {
	return c.name
}
