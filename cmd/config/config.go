// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/searchhintio/searchhint/pkg/catalog"
	"github.com/searchhintio/searchhint/pkg/hint"
	"github.com/searchhintio/searchhint/pkg/inference"
	"github.com/searchhintio/searchhint/pkg/sampler"
	"github.com/searchhintio/searchhint/pkg/searchindex"
)

func Load() error {
	return LoadFile(viper.GetString("config"))
}

func LoadFile(file string) error {
	if file != "" {
		viper.SetConfigFile(file)
		// extensionless config files are read as yaml
		configType := "yaml"
		if ext := filepath.Ext(file); ext != "" {
			configType = ext[1:]
		}
		viper.SetConfigType(configType)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// ParseCatalogConfig assembles the catalog configuration from the yaml
// config, environment variables and CLI flags, in that order of precedence.
func ParseCatalogConfig() *catalog.Config {
	return &catalog.Config{
		AccountName:     PurviewAccountName(),
		CatalogEndpoint: firstSet("catalog.endpoint", "SEARCHHINT_CATALOG_ENDPOINT"),
		AccountEndpoint: firstSet("catalog.account_endpoint", "SEARCHHINT_CATALOG_ACCOUNT_ENDPOINT"),
		TenantID:        firstSet("catalog.tenant_id", "SEARCHHINT_AZURE_TENANT_ID"),
		ClientID:        firstSet("catalog.client_id", "SEARCHHINT_AZURE_CLIENT_ID"),
		ClientSecret:    firstSet("catalog.client_secret", "SEARCHHINT_AZURE_CLIENT_SECRET"),
		DumpDir:         firstSet("catalog.dump_dir", "SEARCHHINT_DUMP_DIR"),
	}
}

func PurviewAccountName() string {
	return firstSet("catalog.account_name", "SEARCHHINT_PURVIEW_ACCOUNT_NAME", "purview-account")
}

func ParseSamplerConfig() *sampler.Config {
	return &sampler.Config{
		RowLimit: firstSetInt("sampler.row_limit", "SEARCHHINT_SAMPLE_ROW_LIMIT"),
		SQLServer: sampler.SQLServerConfig{
			User:        firstSet("sampler.sqlserver.user", "SEARCHHINT_SQLSERVER_USER"),
			Password:    firstSet("sampler.sqlserver.password", "SEARCHHINT_SQLSERVER_PASSWORD"),
			ConnTimeout: viper.GetDuration("SEARCHHINT_SQLSERVER_CONN_TIMEOUT"),
		},
	}
}

func ParseStoreConfig() *searchindex.Config {
	return &searchindex.Config{
		Endpoint:   firstSet("search.endpoint", "SEARCHHINT_SEARCH_ENDPOINT"),
		APIKey:     firstSet("search.api_key", "SEARCHHINT_SEARCH_API_KEY"),
		APIVersion: firstSet("search.api_version", "SEARCHHINT_SEARCH_API_VERSION"),
	}
}

func ParseRunnerConfig() *hint.Config {
	return &hint.Config{
		Concurrency:       firstSetInt("runner.concurrency", "SEARCHHINT_CONCURRENCY", "concurrency"),
		IndexNameTemplate: firstSet("runner.index_name_template", "SEARCHHINT_INDEX_NAME_TEMPLATE", "index-name-template"),
		Sample:            viper.GetBool("sample"),
		Apply:             viper.GetBool("apply"),
		Inference: inference.Config{
			DisableTemporalDeclaredTypes: viper.GetBool("SEARCHHINT_DISABLE_TEMPORAL_DECLARED_TYPES"),
		},
	}
}

// firstSet returns the first non empty string value among the given viper
// keys. Keys are listed from most to least specific: yaml config, env
// variable, CLI flag.
func firstSet(keys ...string) string {
	for _, key := range keys {
		if v := viper.GetString(key); v != "" {
			return v
		}
	}
	return ""
}

func firstSetInt(keys ...string) int {
	for _, key := range keys {
		if v := viper.GetInt(key); v != 0 {
			return v
		}
	}
	return 0
}
