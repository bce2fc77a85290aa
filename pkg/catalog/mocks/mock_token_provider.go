// SPDX-License-Identifier: Apache-2.0

package mocks

import "context"

type TokenProvider struct {
	TokenFn func(ctx context.Context) (string, error)
}

func (m *TokenProvider) Token(ctx context.Context) (string, error) {
	return m.TokenFn(ctx)
}
