package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pytogo/website/pkg/observability/logger"
)

// Adapter is an in-memory table store used for development and tests.
type Adapter struct {
	mu     sync.RWMutex
	tables map[string][]map[string]any
	closed bool
	logger logger.Logger
}

// NewAdapter creates an empty in-memory table store.
func NewAdapter(log logger.Logger) *Adapter {
	return &Adapter{
		tables: make(map[string][]map[string]any),
		logger: log,
	}
}

// Insert appends a copy of the record to the target table.
func (a *Adapter) Insert(_ context.Context, table string, record map[string]any) error {
	if strings.TrimSpace(table) == "" {
		return fmt.Errorf("table is required")
	}
	if len(record) == 0 {
		return fmt.Errorf("record is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return fmt.Errorf("memory store is closed")
	}

	row := make(map[string]any, len(record))
	for k, v := range record {
		row[k] = v
	}
	a.tables[table] = append(a.tables[table], row)
	return nil
}

// SelectAll returns copies of every row in the target table.
func (a *Adapter) SelectAll(_ context.Context, table string) ([]map[string]any, error) {
	if strings.TrimSpace(table) == "" {
		return nil, fmt.Errorf("table is required")
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return nil, fmt.Errorf("memory store is closed")
	}

	rows := a.tables[table]
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		cp := make(map[string]any, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out = append(out, cp)
	}
	return out, nil
}

// Seed replaces the contents of a table. Intended for tests and local runs.
func (a *Adapter) Seed(table string, rows []map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tables[table] = rows
}

func (a *Adapter) HealthCheck(_ context.Context) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return fmt.Errorf("memory store is closed")
	}
	return nil
}

func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.tables = nil
	return nil
}
