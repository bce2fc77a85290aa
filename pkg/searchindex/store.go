// SPDX-License-Identifier: Apache-2.0

package searchindex

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mitchellh/mapstructure"

	httplib "github.com/searchhintio/searchhint/internal/http"
	"github.com/searchhintio/searchhint/internal/json"
	"github.com/searchhintio/searchhint/pkg/backoff"
	loglib "github.com/searchhintio/searchhint/pkg/log"
)

// Store applies index definitions to a search service.
type Store interface {
	ApplyIndex(ctx context.Context, definition map[string]any) error
	DeleteIndex(ctx context.Context, indexName string) error
}

type Config struct {
	// Endpoint is the search service URL, e.g.
	// https://myservice.search.windows.net
	Endpoint string
	APIKey   string
	// APIVersion defaults to defaultAPIVersion
	APIVersion string
	// Retry defaults to exponential backoff when unset
	Retry *backoff.Config
}

const (
	defaultAPIVersion = "2023-11-01"

	defaultRetryInitialInterval = time.Second
	defaultRetryMaxInterval     = time.Minute
	defaultRetryMaxRetries      = 5

	apiKeyHeaderName = "api-key"
)

func (c *Config) apiVersion() string {
	if c.APIVersion == "" {
		return defaultAPIVersion
	}
	return c.APIVersion
}

func (c *Config) retryConfig() *backoff.Config {
	if c.Retry != nil {
		return c.Retry
	}
	return &backoff.Config{
		Exponential: &backoff.ExponentialConfig{
			InitialInterval: defaultRetryInitialInterval,
			MaxInterval:     defaultRetryMaxInterval,
			MaxRetries:      defaultRetryMaxRetries,
		},
	}
}

// HTTPStore applies index definitions over the search service REST API,
// retrying throttled requests with the configured backoff policy.
type HTTPStore struct {
	cfg             *Config
	client          httplib.Client
	logger          loglib.Logger
	backoffProvider backoff.Provider
}

type StoreOption func(*HTTPStore)

func NewHTTPStore(cfg *Config, opts ...StoreOption) (*HTTPStore, error) {
	if cfg.Endpoint == "" {
		return nil, errMissingEndpoint
	}
	if cfg.APIKey == "" {
		return nil, errMissingAPIKey
	}

	s := &HTTPStore{
		cfg:             cfg,
		client:          httplib.NewClient(),
		logger:          loglib.NewNoopLogger(),
		backoffProvider: backoff.NewProvider(cfg.retryConfig()),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func WithHTTPClient(client httplib.Client) StoreOption {
	return func(s *HTTPStore) {
		s.client = client
	}
}

func WithLogger(logger loglib.Logger) StoreOption {
	return func(s *HTTPStore) {
		s.logger = loglib.NewLogger(logger).WithFields(loglib.Fields{
			loglib.ModuleField: "searchindex_store",
		})
	}
}

// ApplyIndex creates or updates the index described by the definition. The
// definition must carry a "name" entry.
func (s *HTTPStore) ApplyIndex(ctx context.Context, definition map[string]any) error {
	indexName, ok := definition["name"].(string)
	if !ok || indexName == "" {
		return ErrInvalidIndexName{Name: fmt.Sprintf("%v", definition["name"])}
	}

	body, err := json.Marshal(definition)
	if err != nil {
		return fmt.Errorf("marshaling index definition: %w", err)
	}

	return s.retry(ctx, "apply index", indexName, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.indexURL(indexName), bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("creating apply index request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		return s.perform(req)
	})
}

// DeleteIndex removes the index if it exists.
func (s *HTTPStore) DeleteIndex(ctx context.Context, indexName string) error {
	return s.retry(ctx, "delete index", indexName, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.indexURL(indexName), nil)
		if err != nil {
			return fmt.Errorf("creating delete index request: %w", err)
		}
		return s.perform(req)
	})
}

func (s *HTTPStore) retry(ctx context.Context, operation, indexName string, op func(context.Context) error) error {
	bo := s.backoffProvider(ctx)
	return bo.RetryNotify(
		func() error { return op(ctx) },
		func(err error, d time.Duration) {
			s.logger.Warn(err, fmt.Sprintf("search store: %s failed, retrying", operation), loglib.Fields{
				"index":   indexName,
				"backoff": d,
			})
		})
}

func (s *HTTPStore) indexURL(indexName string) string {
	return fmt.Sprintf("%s/indexes('%s')?api-version=%s",
		s.cfg.Endpoint, url.PathEscape(indexName), s.cfg.apiVersion())
}

func (s *HTTPStore) perform(req *http.Request) error {
	req.Header.Set(apiKeyHeaderName, s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		// transport failures are worth retrying
		return fmt.Errorf("%w: performing request: %v", ErrRetriable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	// delete of a missing index is a no-op
	if req.Method == http.MethodDelete && resp.StatusCode == http.StatusNotFound {
		return nil
	}

	svcErr := parseServiceError(resp)
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
		return fmt.Errorf("%w: %w", ErrRetriable, svcErr)
	}
	return fmt.Errorf("%w: %w", backoff.ErrPermanent, svcErr)
}

func parseServiceError(resp *http.Response) error {
	svcErr := ServiceError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return svcErr
	}

	var payload struct {
		Error map[string]any `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error == nil {
		svcErr.Message = string(body)
		return svcErr
	}

	if err := mapstructure.Decode(payload.Error, &svcErr); err != nil {
		svcErr.Message = string(body)
	}
	return svcErr
}
