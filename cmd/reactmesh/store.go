package main

import (
	"github.com/hupe1980/reactmesh/audit"
)

// openStore opens the SQLite audit trail at path, or an in-memory store when
// path is empty.
func openStore(path string) (audit.Store, error) {
	if path == "" {
		return audit.NewInMemoryStore(), nil
	}
	return audit.NewSQLiteStore(path)
}
