package email

import (
	"fmt"
	"strings"

	"github.com/pytogo/website/pkg/config"
	"github.com/pytogo/website/pkg/observability/logger"
)

// ProviderSMTP uses standard SMTP protocol.
const ProviderSMTP = "smtp"

// NewProvider creates an email provider adapter from configuration.
// Returns nil when email is disabled.
func NewProvider(cfg config.EmailConfig, log logger.Logger) (Provider, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderSMTP:
		return NewSMTPProvider(cfg.SMTP, log)
	default:
		return nil, fmt.Errorf("unsupported email provider %q (supported: smtp)", cfg.Provider)
	}
}
