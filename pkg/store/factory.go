package store

import (
	"fmt"
	"strings"

	"github.com/pytogo/website/pkg/config"
	"github.com/pytogo/website/pkg/observability/logger"
	"github.com/pytogo/website/pkg/store/memory"
	"github.com/pytogo/website/pkg/store/supabase"
)

// NewTableStore selects and initializes the table store from config.
func NewTableStore(cfg config.StorageConfig, log logger.Logger) (TableStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case config.StorageTypeSupabase:
		return supabase.NewAdapter(supabase.Config{
			URL:              cfg.Supabase.URL,
			APIKey:           cfg.Supabase.APIKey,
			OperationTimeout: cfg.Supabase.OperationTimeout,
		}, log)
	case config.StorageTypeMemory, "":
		return memory.NewAdapter(log), nil
	default:
		return nil, fmt.Errorf("unsupported storage.type %q (supported: %s, %s)", cfg.Type, config.StorageTypeSupabase, config.StorageTypeMemory)
	}
}
