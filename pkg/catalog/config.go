// SPDX-License-Identifier: Apache-2.0

package catalog

import "fmt"

type Config struct {
	// AccountName is the Purview account name. It is used to derive the
	// catalog and account endpoints unless they are set explicitly.
	AccountName string
	// CatalogEndpoint overrides the derived https://<account>.purview.azure.com
	CatalogEndpoint string
	// AccountEndpoint overrides the derived account endpoint used for
	// collection listing
	AccountEndpoint string

	TenantID     string
	ClientID     string
	ClientSecret string

	// DumpDir enables writing the raw entity payloads to the given directory
	// for debugging when set
	DumpDir string
}

const defaultTokenScope = "https://purview.azure.net/.default"

func (c *Config) catalogEndpoint() string {
	if c.CatalogEndpoint != "" {
		return c.CatalogEndpoint
	}
	return fmt.Sprintf("https://%s.purview.azure.com", c.AccountName)
}

func (c *Config) accountEndpoint() string {
	if c.AccountEndpoint != "" {
		return c.AccountEndpoint
	}
	return c.catalogEndpoint()
}

func (c *Config) IsValid() error {
	if c.AccountName == "" && c.CatalogEndpoint == "" {
		return errMissingAccount
	}
	if c.TenantID == "" || c.ClientID == "" || c.ClientSecret == "" {
		return errMissingCredentials
	}
	return nil
}
