// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"errors"
	"fmt"
)

type ErrEntityNotFound struct {
	GUID string
}

func (e ErrEntityNotFound) Error() string {
	return fmt.Sprintf("entity [%s] not found", e.GUID)
}

type ErrInvalidGUID struct {
	GUID string
}

func (e ErrInvalidGUID) Error() string {
	return fmt.Sprintf("invalid entity guid: %s", e.GUID)
}

// RequestError carries the status code and response body of a failed catalog
// API call.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e RequestError) Error() string {
	return fmt.Sprintf("catalog request failed with status %d: %s", e.StatusCode, e.Body)
}

var (
	errMissingAccount     = errors.New("catalog account name or endpoint is required")
	errMissingCredentials = errors.New("catalog tenant id, client id and client secret are required")
	errEmptyToken         = errors.New("token response contains no access token")
)
