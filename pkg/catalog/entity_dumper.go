// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/searchhintio/searchhint/internal/json"
)

// entityDumper writes raw entity payloads to disk for debugging.
type entityDumper struct {
	dir string
}

func newEntityDumper(dir string) *entityDumper {
	return &entityDumper{dir: dir}
}

func (d *entityDumper) dump(guid string, payload []byte) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("creating dump directory: %w", err)
	}

	// re-indent for readability before writing
	var v any
	indented := payload
	if err := json.Unmarshal(payload, &v); err == nil {
		if b, err := json.MarshalIndent(v); err == nil {
			indented = b
		}
	}

	fileName := filepath.Join(d.dir, fmt.Sprintf("%s_schema.json", guid))
	if err := os.WriteFile(fileName, indented, 0o644); err != nil {
		return fmt.Errorf("writing entity dump: %w", err)
	}
	return nil
}
