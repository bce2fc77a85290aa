// SPDX-License-Identifier: Apache-2.0

// Package hint orchestrates schema inference end to end: catalog assets are
// fetched, optionally sampled from their backing store, classified into
// search field types, and rendered into index definitions that can be
// applied to the search service.
package hint

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/searchhintio/searchhint/internal/progress"
	synclib "github.com/searchhintio/searchhint/internal/sync"
	"github.com/searchhintio/searchhint/pkg/catalog"
	"github.com/searchhintio/searchhint/pkg/inference"
	loglib "github.com/searchhintio/searchhint/pkg/log"
	"github.com/searchhintio/searchhint/pkg/sampler"
	"github.com/searchhintio/searchhint/pkg/schema"
	"github.com/searchhintio/searchhint/pkg/searchindex"
)

type Config struct {
	// Concurrency bounds the number of assets processed in parallel.
	// Defaults to defaultConcurrency.
	Concurrency int
	// IndexNameTemplate renders index names from asset metadata. Empty uses
	// the searchindex default.
	IndexNameTemplate string
	// Sample enables data sampling from the asset's backing store. When
	// sampling is off or fails, declared column metadata is used instead.
	Sample bool
	// Apply pushes the produced index definitions to the search service.
	// Requires a store.
	Apply bool

	Inference inference.Config
}

const defaultConcurrency = 4

func (c *Config) concurrency() int64 {
	if c.Concurrency <= 0 {
		return defaultConcurrency
	}
	return int64(c.Concurrency)
}

// AssetReport is the per asset outcome of a run. Err is set when the asset
// could not be processed; the run itself carries on.
type AssetReport struct {
	Asset           catalog.Asset
	Table           *schema.Table
	Columns         []inference.ColumnDescriptor
	IndexName       string
	IndexDefinition map[string]any
	Sampled         bool
	Applied         bool
	Err             error
}

// Runner drives the inference pipeline over the assets of a collection.
type Runner struct {
	cfg    *Config
	logger loglib.Logger

	catalog      catalog.Client
	sampler      sampler.Sampler
	builder      *inference.Builder
	mapper       *searchindex.Mapper
	store        searchindex.Store
	nameTemplate *searchindex.NameTemplate

	newAssetBar func(total int, description string) progress.Bar
}

type Option func(*Runner)

var (
	ErrMissingStore = errors.New("apply requested but no search store configured")

	errNoColumns = errors.New("entity has no column metadata")
)

func NewRunner(cfg *Config, catalogClient catalog.Client, opts ...Option) (*Runner, error) {
	nameTemplate, err := searchindex.NewNameTemplate(cfg.IndexNameTemplate)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:          cfg,
		logger:       loglib.NewNoopLogger(),
		catalog:      catalogClient,
		builder:      inference.NewBuilder(inference.NewClassifier(&cfg.Inference)),
		mapper:       searchindex.NewMapper(),
		nameTemplate: nameTemplate,
		newAssetBar: func(total int, description string) progress.Bar {
			return progress.NewAssetBar(total, description)
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	if cfg.Apply && r.store == nil {
		return nil, ErrMissingStore
	}

	return r, nil
}

func WithSampler(s sampler.Sampler) Option {
	return func(r *Runner) {
		r.sampler = s
	}
}

func WithStore(s searchindex.Store) Option {
	return func(r *Runner) {
		r.store = s
	}
}

func WithLogger(logger loglib.Logger) Option {
	return func(r *Runner) {
		r.logger = loglib.NewLogger(logger).WithFields(loglib.Fields{
			loglib.ModuleField: "hint_runner",
		})
	}
}

func WithProgressBar(newBar func(total int, description string) progress.Bar) Option {
	return func(r *Runner) {
		r.newAssetBar = newBar
	}
}

// Run processes every asset of the collection and returns one report per
// asset, in the catalog's order. Per asset failures are recorded on the
// report, not returned: a single broken asset never fails the batch.
func (r *Runner) Run(ctx context.Context, collectionID, keywords string) ([]AssetReport, error) {
	assets, err := r.catalog.SearchAssets(ctx, &catalog.SearchRequest{
		CollectionID: collectionID,
		Keywords:     keywords,
	})
	if err != nil {
		return nil, fmt.Errorf("searching collection assets: %w", err)
	}
	if len(assets) == 0 {
		return nil, nil
	}

	reports := make([]AssetReport, len(assets))
	bar := r.newAssetBar(len(assets), "inferring asset schemas")
	defer bar.Close()

	sem := synclib.NewWeightedSemaphore(r.cfg.concurrency())
	group, groupCtx := errgroup.WithContext(ctx)
	for i, asset := range assets {
		i, asset := i, asset
		if err := sem.Acquire(groupCtx, 1); err != nil {
			return nil, fmt.Errorf("acquiring worker slot: %w", err)
		}
		group.Go(func() error {
			defer sem.Release(1)
			reports[i] = r.ProcessAsset(groupCtx, collectionID, asset)
			//nolint:errcheck // progress display only
			bar.Add(1)
			return nil
		})
	}
	// workers only report per asset errors, the group error is the context
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

// ProcessAsset runs the pipeline for a single asset: entity fetch, optional
// sample, classification, index definition and optional apply. The
// collection ID may be empty when processing an asset by GUID.
func (r *Runner) ProcessAsset(ctx context.Context, collectionID string, asset catalog.Asset) AssetReport {
	report := AssetReport{Asset: asset}

	entity, err := r.catalog.GetEntity(ctx, asset.GUID)
	if err != nil {
		report.Err = fmt.Errorf("fetching entity %q: %w", asset.GUID, err)
		return report
	}

	table := entity.ToTable()
	if table.QualifiedName == "" {
		table.QualifiedName = asset.QualifiedName
	}
	// assets resolved by GUID only carry the entity's own metadata
	if report.Asset.Name == "" {
		report.Asset.Name = table.Name
	}
	report.Table = table
	if table.IsEmpty() {
		report.Err = fmt.Errorf("asset %q: %w", report.Asset.Name, errNoColumns)
		return report
	}

	report.Columns, report.Sampled = r.buildDescriptors(ctx, table)

	indexName, err := r.nameTemplate.Render(&searchindex.NameData{
		Collection: collectionID,
		Asset:      report.Asset.Name,
	})
	if err != nil {
		report.Err = fmt.Errorf("naming index for asset %q: %w", report.Asset.Name, err)
		return report
	}
	report.IndexName = indexName
	report.IndexDefinition = r.mapper.BuildIndexDefinition(indexName, report.Columns)

	if r.cfg.Apply {
		if err := r.store.ApplyIndex(ctx, report.IndexDefinition); err != nil {
			report.Err = fmt.Errorf("applying index %q: %w", indexName, err)
			return report
		}
		report.Applied = true
	}

	return report
}

// buildDescriptors classifies the table's columns, preferring sampled data
// and falling back to the declared column metadata when sampling is off or
// fails.
func (r *Runner) buildDescriptors(ctx context.Context, table *schema.Table) ([]inference.ColumnDescriptor, bool) {
	if r.cfg.Sample && r.sampler != nil {
		sample, err := r.sampler.Sample(ctx, table)
		if err == nil && !sample.IsEmpty() {
			descriptors := r.builder.BuildColumnDescriptors(sample)
			mergeDeclaredNullability(descriptors, table)
			return descriptors, true
		}
		if err != nil {
			r.logger.Warn(err, "sampling failed, falling back to column metadata", loglib.Fields{
				"qualified_name": table.QualifiedName,
			})
		}
	}
	return r.builder.BuildFromMetadata(table.Columns), false
}

// mergeDeclaredNullability marks sampled columns nullable when the catalog
// declares them nullable: a small sample may not contain a NULL even for a
// column that allows them.
func mergeDeclaredNullability(descriptors []inference.ColumnDescriptor, table *schema.Table) {
	for i := range descriptors {
		if descriptors[i].Nullable {
			continue
		}
		if col, found := table.GetColumnByName(descriptors[i].Name); found &&
			col.Nullable != nil && *col.Nullable {
			descriptors[i].Nullable = true
		}
	}
}
