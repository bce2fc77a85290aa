// SPDX-License-Identifier: Apache-2.0

package searchindex

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	httpmocks "github.com/searchhintio/searchhint/internal/http/mocks"
	"github.com/searchhintio/searchhint/pkg/backoff"
)

func testStoreConfig() *Config {
	return &Config{
		Endpoint: "https://myservice.search.windows.net",
		APIKey:   "test-api-key",
		Retry: &backoff.Config{
			Constant: &backoff.ConstantConfig{
				Interval:   time.Millisecond,
				MaxRetries: 2,
			},
		},
	}
}

func newStoreResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func TestHTTPStore_ApplyIndex(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	errTransport := errors.New("oh noes, transport is down")

	validDefinition := map[string]any{
		"name": "customers-index",
		"fields": []map[string]any{
			{"name": "id", "type": "Edm.String", "key": true},
		},
	}

	tests := map[string]struct {
		definition map[string]any
		client     *httpmocks.Client

		wantRequests int
		wantErr      error
	}{
		"ok": {
			definition: validDefinition,
			client: &httpmocks.Client{
				DoFn: func(req *http.Request) (*http.Response, error) {
					return newStoreResponse(http.StatusCreated, ""), nil
				},
			},
			wantRequests: 1,
		},
		"throttled then created": {
			definition: validDefinition,
			client: &httpmocks.Client{
				DoFn: func(req *http.Request) (*http.Response, error) {
					return nil, nil // replaced per call below
				},
			},
			wantRequests: 2,
		},
		"permanent service error is not retried": {
			definition: validDefinition,
			client: &httpmocks.Client{
				DoFn: func(req *http.Request) (*http.Response, error) {
					return newStoreResponse(http.StatusBadRequest,
						`{"error":{"code":"InvalidRequestParameter","message":"The request is invalid."}}`), nil
				},
			},
			wantRequests: 1,
			wantErr:      ServiceError{StatusCode: http.StatusBadRequest, Code: "InvalidRequestParameter", Message: "The request is invalid."},
		},
		"transport errors are retried": {
			definition: validDefinition,
			client: &httpmocks.Client{
				DoFn: func(req *http.Request) (*http.Response, error) {
					return nil, errTransport
				},
			},
			wantRequests: 3,
			wantErr:      ErrRetriable,
		},
		"missing name": {
			definition:   map[string]any{"fields": []map[string]any{}},
			client:       &httpmocks.Client{},
			wantRequests: 0,
			wantErr:      ErrInvalidIndexName{Name: "<nil>"},
		},
	}

	for name, tc := range tests {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			requests := 0
			doFn := tc.client.DoFn
			tc.client.DoFn = func(req *http.Request) (*http.Response, error) {
				requests++
				require.Equal(t, "test-api-key", req.Header.Get("api-key"))
				if name == "throttled then created" {
					if requests == 1 {
						return newStoreResponse(http.StatusTooManyRequests, `{"error":{"code":"Throttled","message":"slow down"}}`), nil
					}
					return newStoreResponse(http.StatusCreated, ""), nil
				}
				return doFn(req)
			}

			store, err := NewHTTPStore(testStoreConfig(), WithHTTPClient(tc.client))
			require.NoError(t, err)

			err = store.ApplyIndex(ctx, tc.definition)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.wantRequests, requests)
		})
	}
}

func TestHTTPStore_ApplyIndex_RequestShape(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	client := &httpmocks.Client{
		DoFn: func(req *http.Request) (*http.Response, error) {
			require.Equal(t, http.MethodPut, req.Method)
			require.Equal(t,
				"https://myservice.search.windows.net/indexes('customers-index')?api-version=2023-11-01",
				req.URL.String())
			require.Equal(t, "application/json", req.Header.Get("Content-Type"))
			return newStoreResponse(http.StatusCreated, ""), nil
		},
	}

	store, err := NewHTTPStore(testStoreConfig(), WithHTTPClient(client))
	require.NoError(t, err)

	err = store.ApplyIndex(ctx, map[string]any{"name": "customers-index"})
	require.NoError(t, err)
}

func TestHTTPStore_DeleteIndex(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := map[string]struct {
		statusCode int

		wantErr error
	}{
		"deleted":         {statusCode: http.StatusNoContent},
		"missing is noop": {statusCode: http.StatusNotFound},
		"forbidden": {
			statusCode: http.StatusForbidden,
			wantErr:    ServiceError{StatusCode: http.StatusForbidden, Message: "nope"},
		},
	}

	for name, tc := range tests {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			client := &httpmocks.Client{
				DoFn: func(req *http.Request) (*http.Response, error) {
					require.Equal(t, http.MethodDelete, req.Method)
					return newStoreResponse(tc.statusCode, "nope"), nil
				},
			}

			store, err := NewHTTPStore(testStoreConfig(), WithHTTPClient(client))
			require.NoError(t, err)

			err = store.DeleteIndex(ctx, "customers-index")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewHTTPStore_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewHTTPStore(&Config{APIKey: "key"})
	require.ErrorIs(t, err, errMissingEndpoint)

	_, err = NewHTTPStore(&Config{Endpoint: "https://svc"})
	require.ErrorIs(t, err, errMissingAPIKey)
}
