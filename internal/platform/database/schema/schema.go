// Package schema names the PostgreSQL tables and columns used by the Katha stores.
//
// Tables are grouped into schemas by concern: users, core, social and library.
package schema

import "strings"

// Select renders columns as a comma-separated list, each prefixed with alias.
func Select(alias string, columns []string) string {
	if alias == "" {
		return strings.Join(columns, ", ")
	}

	prefixed := make([]string, len(columns))
	for i, column := range columns {
		prefixed[i] = alias + "." + column
	}
	return strings.Join(prefixed, ", ")
}
