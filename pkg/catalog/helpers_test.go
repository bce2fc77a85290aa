// SPDX-License-Identifier: Apache-2.0

package catalog

const testGUID = "f8c3de3d-1fea-4d7c-a8b0-29f63c4c3454"

func testConfig() *Config {
	return &Config{
		AccountName:  "test-account",
		TenantID:     "tenant",
		ClientID:     "client",
		ClientSecret: "secret",
	}
}
