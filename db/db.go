// Package db carries the SQL schema applied at startup and by the test
// harness.
package db

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed migrations/*.up.sql
var migrationsFS embed.FS

// Migrations returns the schema files in apply order.
func Migrations() ([]string, error) {
	entries, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)

	payloads := make([]string, 0, len(entries))
	for _, name := range entries {
		data, err := migrationsFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, string(data))
	}
	return payloads, nil
}
