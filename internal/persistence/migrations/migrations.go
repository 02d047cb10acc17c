// Package migrations embeds the versioned schema of every backend.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed fyyur/*.sql trivia/*.sql coffee/*.sql
var files embed.FS

// For returns the migration files of one application.
func For(app string) (fs.FS, error) {
	sub, err := fs.Sub(files, app)
	if err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(sub, ".")
	if err != nil || len(entries) == 0 {
		return nil, fmt.Errorf("no migrations for app %q", app)
	}
	return sub, nil
}
