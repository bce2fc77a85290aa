// SPDX-License-Identifier: Apache-2.0

package sampler

import (
	"strings"
)

// SourceKind identifies the backing store family behind a catalog asset,
// derived from its qualified name.
type SourceKind string

const (
	SourceKindSQLServer = SourceKind("sql_server")
	SourceKindDataLake  = SourceKind("azure_data_lake")
	SourceKindBlob      = SourceKind("azure_blob")
	SourceKindLocalFile = SourceKind("local_file")
	SourceKindUnknown   = SourceKind("unknown")
)

// ConnectionInfo is the connection detail extracted from an asset's
// qualified name.
type ConnectionInfo struct {
	Kind SourceKind

	// sql server
	Server   string
	Database string
	Schema   string
	Table    string

	// lake/blob storage
	StorageAccount string
	Container      string
	Path           string
}

// ParseQualifiedName determines the source kind of a qualified name and
// extracts the connection details needed to sample it.
//   - mssql://server/database/schema/table
//   - abfss://container@account.dfs.core.windows.net/path
//   - file:///path/to/file.csv
func ParseQualifiedName(qualifiedName string) *ConnectionInfo {
	lower := strings.ToLower(qualifiedName)

	switch {
	case strings.HasPrefix(lower, "mssql://"), strings.HasPrefix(lower, "sqlserver://"):
		return parseSQLServerName(qualifiedName)
	case strings.HasPrefix(lower, "abfss://"), strings.Contains(lower, "adls"):
		return parseDataLakeName(qualifiedName)
	case strings.HasPrefix(lower, "https://") && strings.Contains(lower, "blob"):
		return &ConnectionInfo{Kind: SourceKindBlob, Path: qualifiedName}
	case strings.HasPrefix(lower, "file://"):
		return &ConnectionInfo{
			Kind: SourceKindLocalFile,
			Path: strings.TrimPrefix(qualifiedName, "file://"),
		}
	default:
		return &ConnectionInfo{Kind: SourceKindUnknown}
	}
}

func parseSQLServerName(qualifiedName string) *ConnectionInfo {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(qualifiedName, "mssql://"), "sqlserver://")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 4 {
		return &ConnectionInfo{Kind: SourceKindUnknown}
	}
	return &ConnectionInfo{
		Kind:     SourceKindSQLServer,
		Server:   parts[0],
		Database: parts[1],
		Schema:   parts[2],
		Table:    parts[3],
	}
}

func parseDataLakeName(qualifiedName string) *ConnectionInfo {
	trimmed := strings.TrimPrefix(qualifiedName, "abfss://")
	slashIdx := strings.Index(trimmed, "/")
	if slashIdx == -1 {
		return &ConnectionInfo{Kind: SourceKindUnknown}
	}

	containerAccount := trimmed[:slashIdx]
	atIdx := strings.Index(containerAccount, "@")
	if atIdx == -1 {
		return &ConnectionInfo{Kind: SourceKindUnknown}
	}

	return &ConnectionInfo{
		Kind:           SourceKindDataLake,
		Container:      containerAccount[:atIdx],
		StorageAccount: strings.Split(containerAccount[atIdx+1:], ".")[0],
		Path:           trimmed[slashIdx+1:],
	}
}
