// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/xid"

	httplib "github.com/searchhintio/searchhint/internal/http"
	"github.com/searchhintio/searchhint/internal/json"
	loglib "github.com/searchhintio/searchhint/pkg/log"
)

// Client gives access to the Atlas style catalog API: collection listing,
// asset search and entity retrieval by GUID.
type Client interface {
	ListCollections(ctx context.Context) ([]Collection, error)
	SearchAssets(ctx context.Context, req *SearchRequest) ([]Asset, error)
	GetEntity(ctx context.Context, guid string) (*Entity, error)
}

type Collection struct {
	Name         string `json:"name"`
	FriendlyName string `json:"friendlyName"`
}

type Asset struct {
	GUID          string `json:"id"`
	Name          string `json:"name"`
	EntityType    string `json:"entityType"`
	QualifiedName string `json:"qualifiedName"`
}

type SearchRequest struct {
	CollectionID string
	Keywords     string
	Limit        int
}

// AtlasClient talks to the Purview Atlas REST API. The official SDK surface
// was not able to retrieve assets reliably, so the REST API is used directly.
type AtlasClient struct {
	httpClient    httplib.Client
	tokenProvider TokenProvider
	logger        loglib.Logger

	atlasURL   string
	accountURL string
	dumper     *entityDumper
}

type Option func(*AtlasClient)

const (
	atlasAPIPath              = "/catalog/api/atlas/v2"
	collectionsAPIVersion     = "2019-11-01-preview"
	defaultSearchLimit        = 100
	clientRequestIDHeaderName = "x-ms-client-request-id"
)

func NewAtlasClient(cfg *Config, opts ...Option) (*AtlasClient, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid catalog config: %w", err)
	}

	c := &AtlasClient{
		httpClient: httplib.NewClient(),
		logger:     loglib.NewNoopLogger(),
		atlasURL:   cfg.catalogEndpoint() + atlasAPIPath,
		accountURL: cfg.accountEndpoint(),
	}
	if cfg.DumpDir != "" {
		c.dumper = newEntityDumper(cfg.DumpDir)
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.tokenProvider == nil {
		c.tokenProvider = newClientCredentialsProvider(cfg, c.httpClient, clockwork.NewRealClock())
	}

	return c, nil
}

func WithHTTPClient(httpClient httplib.Client) Option {
	return func(c *AtlasClient) {
		c.httpClient = httpClient
	}
}

func WithTokenProvider(provider TokenProvider) Option {
	return func(c *AtlasClient) {
		c.tokenProvider = provider
	}
}

func WithLogger(logger loglib.Logger) Option {
	return func(c *AtlasClient) {
		c.logger = logger.WithFields(loglib.Fields{
			loglib.ModuleField: "catalog_atlas_client",
		})
	}
}

// ListCollections returns all collections in the catalog account.
func (c *AtlasClient) ListCollections(ctx context.Context) ([]Collection, error) {
	url := fmt.Sprintf("%s/collections?api-version=%s", c.accountURL, collectionsAPIVersion)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}

	var response struct {
		Value []Collection `json:"value"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("unmarshaling collections response: %w", err)
	}
	return response.Value, nil
}

// SearchAssets searches for assets, optionally restricted to a collection.
func (c *AtlasClient) SearchAssets(ctx context.Context, req *SearchRequest) ([]Asset, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	searchBody := map[string]any{
		"keywords": req.Keywords,
		"limit":    limit,
	}
	if req.CollectionID != "" {
		searchBody["filter"] = map[string]any{
			"collectionId": req.CollectionID,
		}
	}

	body, err := c.post(ctx, c.atlasURL+"/search/advanced", searchBody)
	if err != nil {
		return nil, fmt.Errorf("searching assets: %w", err)
	}

	var response struct {
		SearchCount int     `json:"@search.count"`
		Value       []Asset `json:"value"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("unmarshaling search response: %w", err)
	}

	c.logger.Debug("asset search completed", loglib.Fields{
		"search_count": response.SearchCount,
		"collection":   req.CollectionID,
	})

	return response.Value, nil
}

// GetEntity retrieves an entity and its referred entities (columns) by GUID.
func (c *AtlasClient) GetEntity(ctx context.Context, guid string) (*Entity, error) {
	if _, err := uuid.Parse(guid); err != nil {
		return nil, ErrInvalidGUID{GUID: guid}
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/entity/guid/%s", c.atlasURL, guid))
	if err != nil {
		var requestErr RequestError
		if errors.As(err, &requestErr) && requestErr.StatusCode == http.StatusNotFound {
			return nil, ErrEntityNotFound{GUID: guid}
		}
		return nil, fmt.Errorf("getting entity %s: %w", guid, err)
	}

	if c.dumper != nil {
		if err := c.dumper.dump(guid, body); err != nil {
			c.logger.Warn(err, "dumping entity payload", loglib.Fields{"guid": guid})
		}
	}

	var entity Entity
	if err := json.Unmarshal(body, &entity); err != nil {
		return nil, fmt.Errorf("unmarshaling entity response: %w", err)
	}
	return &entity, nil
}

func (c *AtlasClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.perform(req)
}

func (c *AtlasClient) post(ctx context.Context, url string, body any) ([]byte, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.perform(req)
}

func (c *AtlasClient) perform(req *http.Request) ([]byte, error) {
	token, err := c.tokenProvider.Token(req.Context())
	if err != nil {
		return nil, fmt.Errorf("acquiring catalog token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(clientRequestIDHeaderName, xid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing catalog request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading catalog response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
