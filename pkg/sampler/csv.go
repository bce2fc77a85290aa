// SPDX-License-Identifier: Apache-2.0

package sampler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/searchhintio/searchhint/pkg/schema"
)

// csvSampler reads the first rows of a CSV file into a tabular sample. Cell
// values are parsed into typed values on a best effort basis so the
// classifier sees integers, floats, booleans and timestamps instead of raw
// text.
type csvSampler struct {
	rowLimit int
}

func newCSVSampler(rowLimit int) *csvSampler {
	return &csvSampler{rowLimit: rowLimit}
}

var errMissingHeader = errors.New("csv file has no header row")

func (s *csvSampler) sample(path string) (*schema.Sample, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".csv") {
		return nil, ErrUnsupportedSource{Kind: SourceKindLocalFile, QualifiedName: path}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv file: %w", err)
	}
	defer f.Close()

	return s.read(csv.NewReader(f))
}

func (s *csvSampler) read(reader *csv.Reader) (*schema.Sample, error) {
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errMissingHeader
		}
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	sample := &schema.Sample{
		ColumnNames: header,
	}

	for len(sample.Rows) < s.rowLimit {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("reading csv record: %w", err)
		}

		row := make([]any, len(header))
		for i := range header {
			if i < len(record) {
				row[i] = parseCell(record[i])
			}
		}
		sample.Rows = append(sample.Rows, row)
	}

	return sample, nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseCell converts a raw CSV cell to a typed value. Empty cells are
// absent. Booleans only match the true/false literals so "1" stays numeric.
func parseCell(raw string) any {
	if raw == "" {
		return nil
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return raw
}
