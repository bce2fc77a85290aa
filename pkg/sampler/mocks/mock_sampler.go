// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/searchhintio/searchhint/pkg/schema"
)

type Sampler struct {
	SampleFn func(ctx context.Context, table *schema.Table) (*schema.Sample, error)
}

func (m *Sampler) Sample(ctx context.Context, table *schema.Table) (*schema.Sample, error) {
	return m.SampleFn(ctx, table)
}
