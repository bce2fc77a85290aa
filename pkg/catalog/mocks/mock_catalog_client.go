// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/searchhintio/searchhint/pkg/catalog"
)

type Client struct {
	ListCollectionsFn func(ctx context.Context) ([]catalog.Collection, error)
	SearchAssetsFn    func(ctx context.Context, req *catalog.SearchRequest) ([]catalog.Asset, error)
	GetEntityFn       func(ctx context.Context, guid string) (*catalog.Entity, error)
}

func (m *Client) ListCollections(ctx context.Context) ([]catalog.Collection, error) {
	return m.ListCollectionsFn(ctx)
}

func (m *Client) SearchAssets(ctx context.Context, req *catalog.SearchRequest) ([]catalog.Asset, error) {
	return m.SearchAssetsFn(ctx, req)
}

func (m *Client) GetEntity(ctx context.Context, guid string) (*catalog.Entity, error) {
	return m.GetEntityFn(ctx, guid)
}
