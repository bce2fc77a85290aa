// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"
)

type Store struct {
	ApplyIndexFn  func(ctx context.Context, definition map[string]any) error
	DeleteIndexFn func(ctx context.Context, indexName string) error
}

func (m *Store) ApplyIndex(ctx context.Context, definition map[string]any) error {
	return m.ApplyIndexFn(ctx, definition)
}

func (m *Store) DeleteIndex(ctx context.Context, indexName string) error {
	return m.DeleteIndexFn(ctx, indexName)
}
