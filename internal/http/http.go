// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
	"time"
)

type Client interface {
	Do(*http.Request) (*http.Response, error)
}

const defaultRequestTimeout = 30 * time.Second

// NewClient returns a client with sane default timeouts to be used for the
// catalog and search service APIs.
func NewClient() *http.Client {
	return &http.Client{
		Timeout: defaultRequestTimeout,
	}
}
