package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql mysql/*.sql
var Files embed.FS

// GetFS returns the migrations for one database driver
func GetFS(driver string) (fs.FS, error) {
	switch driver {
	case "postgres", "sqlite", "mysql":
		return fs.Sub(Files, driver)
	}
	return nil, fmt.Errorf("no migrations for driver %q", driver)
}
