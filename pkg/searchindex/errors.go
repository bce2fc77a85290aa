// SPDX-License-Identifier: Apache-2.0

package searchindex

import (
	"errors"
	"fmt"
)

// ServiceError is the decoded error payload returned by the search service.
type ServiceError struct {
	StatusCode int
	Code       string `mapstructure:"code"`
	Message    string `mapstructure:"message"`
}

func (e ServiceError) Error() string {
	return fmt.Sprintf("search service error (status %d, code %q): %s", e.StatusCode, e.Code, e.Message)
}

type ErrInvalidIndexName struct {
	Name string
}

func (e ErrInvalidIndexName) Error() string {
	return fmt.Sprintf("invalid index name: %q", e.Name)
}

var (
	// ErrRetriable wraps responses worth retrying, such as throttling.
	ErrRetriable = errors.New("retriable search service error")

	errMissingEndpoint = errors.New("search service endpoint not provided")
	errMissingAPIKey   = errors.New("search service api key not provided")
)
