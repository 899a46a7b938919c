package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pytogo/website/pkg/observability/logger"
	"github.com/pytogo/website/pkg/observability/tracing"
)

// Adapter talks to a Supabase project through its PostgREST endpoint.
type Adapter struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	logger  logger.Logger
	timeout time.Duration
}

// Config holds Supabase adapter configuration.
type Config struct {
	URL              string
	APIKey           string
	OperationTimeout time.Duration
}

// NewAdapter creates a new Supabase PostgREST adapter.
func NewAdapter(cfg Config, log logger.Logger) (*Adapter, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("supabase API key is required")
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = 10 * time.Second
	}

	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(cfg.URL), "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse supabase URL %q: %w", cfg.URL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid supabase URL: %s", cfg.URL)
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	adapter := &Adapter{
		baseURL: base,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.OperationTimeout,
		},
		logger:  log,
		timeout: cfg.OperationTimeout,
	}

	log.Info("Supabase adapter initialized",
		"host", base.Host,
		"operation_timeout", cfg.OperationTimeout,
	)
	return adapter, nil
}

// Insert appends a row to the target table.
func (a *Adapter) Insert(ctx context.Context, table string, record map[string]any) error {
	if strings.TrimSpace(table) == "" {
		return fmt.Errorf("table is required")
	}
	if len(record) == 0 {
		return fmt.Errorf("record is required")
	}

	ctx, span := tracing.StartStorageSpan(ctx, tracing.SpanOperationTableInsert, table)
	defer span.End()

	if err := a.insert(ctx, table, record); err != nil {
		tracing.RecordError(span, err)
		return err
	}
	tracing.RecordSuccess(span)
	return nil
}

func (a *Adapter) insert(ctx context.Context, table string, record map[string]any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	resp, err := a.request(ctx, http.MethodPost, a.tablePath(table), payload, func(req *http.Request) {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to insert into %s: status %d: %s", table, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// SelectAll reads every row of the target table.
func (a *Adapter) SelectAll(ctx context.Context, table string) ([]map[string]any, error) {
	if strings.TrimSpace(table) == "" {
		return nil, fmt.Errorf("table is required")
	}

	ctx, span := tracing.StartStorageSpan(ctx, tracing.SpanOperationTableSelect, table)
	defer span.End()

	rows, err := a.selectAll(ctx, table)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	tracing.RecordSuccess(span)
	return rows, nil
}

func (a *Adapter) selectAll(ctx context.Context, table string) ([]map[string]any, error) {
	resp, err := a.request(ctx, http.MethodGet, a.tablePath(table)+"?select=*", nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response for %s: %w", table, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to select from %s: status %d: %s", table, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode rows from %s: %w", table, err)
	}
	return rows, nil
}

// HealthCheck verifies the PostgREST endpoint responds.
func (a *Adapter) HealthCheck(ctx context.Context) error {
	hcCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	resp, err := a.request(hcCtx, http.MethodGet, "/rest/v1/", nil, nil)
	if err != nil {
		a.logger.Error("Supabase health check failed", "error", err)
		return fmt.Errorf("supabase health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		err := fmt.Errorf("supabase health check failed with status %d", resp.StatusCode)
		a.logger.Error("Supabase health check failed", "error", err)
		return err
	}
	return nil
}

// Close releases idle HTTP connections.
func (a *Adapter) Close() error {
	if transport, ok := a.client.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
	return nil
}

func (a *Adapter) tablePath(table string) string {
	return "/rest/v1/" + url.PathEscape(strings.TrimSpace(table))
}

func (a *Adapter) request(ctx context.Context, method, path string, body []byte, decorate func(*http.Request)) (*http.Response, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", path, err)
	}
	endpoint := a.baseURL.ResolveReference(rel).String()

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", a.apiKey)
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	if decorate != nil {
		decorate(req)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	return resp, nil
}
