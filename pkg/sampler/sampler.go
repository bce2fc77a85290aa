// SPDX-License-Identifier: Apache-2.0

package sampler

import (
	"context"
	"fmt"

	loglib "github.com/searchhintio/searchhint/pkg/log"
	"github.com/searchhintio/searchhint/pkg/schema"
)

// Sampler retrieves a small tabular sample of a catalog asset from its
// backing store.
type Sampler interface {
	Sample(ctx context.Context, table *schema.Table) (*schema.Sample, error)
}

type Config struct {
	// RowLimit is the maximum number of rows retrieved per table. Defaults to
	// defaultRowLimit when zero.
	RowLimit int

	SQLServer SQLServerConfig
}

const defaultRowLimit = 10

func (c *Config) rowLimit() int {
	if c.RowLimit <= 0 {
		return defaultRowLimit
	}
	return c.RowLimit
}

// SourceSampler dispatches to the sampler matching the asset's backing
// store, derived from its qualified name.
type SourceSampler struct {
	cfg    *Config
	logger loglib.Logger

	sqlServer *sqlServerSampler
	csv       *csvSampler
}

func New(cfg *Config, logger loglib.Logger) *SourceSampler {
	logger = loglib.NewLogger(logger).WithFields(loglib.Fields{
		loglib.ModuleField: "sampler",
	})
	return &SourceSampler{
		cfg:       cfg,
		logger:    logger,
		sqlServer: newSQLServerSampler(cfg, logger),
		csv:       newCSVSampler(cfg.rowLimit()),
	}
}

func (s *SourceSampler) Sample(ctx context.Context, table *schema.Table) (*schema.Sample, error) {
	conn := ParseQualifiedName(table.QualifiedName)
	switch conn.Kind {
	case SourceKindSQLServer:
		return s.sqlServer.sample(ctx, conn)
	case SourceKindLocalFile, SourceKindDataLake:
		// lake files can only be read when mirrored locally, there is no
		// storage SDK wired in
		return s.csv.sample(conn.Path)
	default:
		return nil, ErrUnsupportedSource{Kind: conn.Kind, QualifiedName: table.QualifiedName}
	}
}

type ErrUnsupportedSource struct {
	Kind          SourceKind
	QualifiedName string
}

func (e ErrUnsupportedSource) Error() string {
	return fmt.Sprintf("unsupported source kind %q for asset %q", e.Kind, e.QualifiedName)
}
