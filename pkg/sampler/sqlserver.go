// SPDX-License-Identifier: Apache-2.0

package sampler

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/shopspring/decimal"

	loglib "github.com/searchhintio/searchhint/pkg/log"
	"github.com/searchhintio/searchhint/pkg/schema"
)

type SQLServerConfig struct {
	User     string
	Password string
	// ConnTimeout defaults to 30s
	ConnTimeout time.Duration
}

type sqlServerSampler struct {
	cfg    *Config
	logger loglib.Logger

	// openDB is swapped in tests
	openDB func(dsn string) (*sql.DB, error)
}

func newSQLServerSampler(cfg *Config, logger loglib.Logger) *sqlServerSampler {
	return &sqlServerSampler{
		cfg:    cfg,
		logger: logger,
		openDB: func(dsn string) (*sql.DB, error) {
			return sql.Open("sqlserver", dsn)
		},
	}
}

func (s *sqlServerSampler) sample(ctx context.Context, conn *ConnectionInfo) (*schema.Sample, error) {
	db, err := s.openDB(s.dsn(conn))
	if err != nil {
		return nil, fmt.Errorf("opening sql server connection: %w", err)
	}
	defer db.Close()

	query := fmt.Sprintf("SELECT TOP %d * FROM %s.%s",
		s.cfg.rowLimit(), quoteIdentifier(conn.Schema), quoteIdentifier(conn.Table))

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying sample rows: %w", err)
	}
	defer rows.Close()

	columnNames, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading column names: %w", err)
	}
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("reading column types: %w", err)
	}

	sample := &schema.Sample{
		ColumnNames: columnNames,
	}
	for rows.Next() {
		scanTargets := make([]any, len(columnNames))
		for i := range scanTargets {
			scanTargets[i] = new(any)
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("scanning sample row: %w", err)
		}

		row := make([]any, len(columnNames))
		for i, target := range scanTargets {
			row[i] = normalizeCell(*(target.(*any)), columnTypes[i].DatabaseTypeName())
		}
		sample.Rows = append(sample.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sample rows: %w", err)
	}

	s.logger.Debug("retrieved sql server sample", loglib.Fields{
		"schema": conn.Schema,
		"table":  conn.Table,
		"rows":   len(sample.Rows),
	})

	return sample, nil
}

func (s *sqlServerSampler) dsn(conn *ConnectionInfo) string {
	timeout := s.cfg.SQLServer.ConnTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	query := url.Values{}
	query.Set("database", conn.Database)
	query.Set("dial timeout", fmt.Sprintf("%.0f", timeout.Seconds()))
	query.Set("encrypt", "true")

	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     conn.Server,
		RawQuery: query.Encode(),
	}
	if s.cfg.SQLServer.User != "" {
		u.User = url.UserPassword(s.cfg.SQLServer.User, s.cfg.SQLServer.Password)
	}
	return u.String()
}

// normalizeCell maps driver values to the classifier's value vocabulary.
// Fixed precision numerics arrive as text from the driver and are converted
// to decimals so they classify as floating point rather than textual.
func normalizeCell(value any, dbTypeName string) any {
	if value == nil {
		return nil
	}

	switch strings.ToUpper(dbTypeName) {
	case "DECIMAL", "NUMERIC", "MONEY", "SMALLMONEY":
		var text string
		switch v := value.(type) {
		case []byte:
			text = string(v)
		case string:
			text = v
		default:
			return value
		}
		if d, err := decimal.NewFromString(text); err == nil {
			return d
		}
		return text
	default:
		if b, ok := value.([]byte); ok {
			return string(b)
		}
		return value
	}
}

func quoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}
