package migrations

import (
	"embed"
	"io/fs"
)

// Files holds every schema migration, applied in filename order.
//
//go:embed *.sql
var Files embed.FS

func GetFS() fs.FS {
	return Files
}
