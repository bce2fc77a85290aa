// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// no t.Parallel, viper carries global state
func TestLoadFile(t *testing.T) {
	content := []byte("catalog:\n  account_name: acme\n")

	tests := map[string]struct {
		fileName string

		wantErr bool
	}{
		"yaml extension": {
			fileName: "searchhint.yaml",
		},
		"no extension defaults to yaml": {
			fileName: "searchhint",
		},
		"unknown extension": {
			fileName: "searchhint.exe",
			wantErr:  true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)

			file := filepath.Join(t.TempDir(), tc.fileName)
			require.NoError(t, os.WriteFile(file, content, 0o600))

			err := LoadFile(file)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "acme", viper.GetString("catalog.account_name"))
		})
	}

	t.Run("empty path is a no-op", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)

		require.NoError(t, LoadFile(""))
	})

	t.Run("missing file", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)

		require.Error(t, LoadFile(filepath.Join(t.TempDir(), "nope.yaml")))
	})
}
