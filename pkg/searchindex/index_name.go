// SPDX-License-Identifier: Apache-2.0

package searchindex

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// DefaultNameTemplate derives an index name from the asset name.
const DefaultNameTemplate = "{{ .Asset | lower }}-index"

// maxIndexNameLength is the service limit on index names.
const maxIndexNameLength = 128

// NameTemplate renders index names from asset metadata and normalises the
// result to satisfy the service naming rules (lowercase letters, digits and
// dashes only, no leading or trailing dash).
type NameTemplate struct {
	tmpl *template.Template
}

// NameData is the data available to the index name template.
type NameData struct {
	Collection string
	Asset      string
}

func NewNameTemplate(raw string) (*NameTemplate, error) {
	if raw == "" {
		raw = DefaultNameTemplate
	}

	tmpl, err := template.New("index-name").Funcs(sprig.TxtFuncMap()).Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing index name template: %w", err)
	}

	return &NameTemplate{tmpl: tmpl}, nil
}

func (t *NameTemplate) Render(data *NameData) (string, error) {
	var sb strings.Builder
	if err := t.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering index name template: %w", err)
	}

	name := normaliseIndexName(sb.String())
	if name == "" {
		return "", ErrInvalidIndexName{Name: sb.String()}
	}

	return name, nil
}

func normaliseIndexName(raw string) string {
	var sb strings.Builder
	lastDash := true // drops leading dashes
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteRune('-')
				lastDash = true
			}
		}
	}

	name := strings.TrimRight(sb.String(), "-")
	if len(name) > maxIndexNameLength {
		name = strings.TrimRight(name[:maxIndexNameLength], "-")
	}
	return name
}
