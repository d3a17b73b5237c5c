package storage

import (
	"fmt"

	"github.com/Veraticus/gxpassess/pkg/logger"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backends lists the supported backend names.
func Backends() []string {
	return []string{BackendMemory, BackendFile, BackendSQLite}
}

// Open constructs the named backend. location is the data directory for the
// file backend and the database path for sqlite; memory ignores it.
func Open(backend, location string, log logger.Logger) (KV, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemoryKV(), nil
	case BackendFile:
		return NewFileKVWithLogger(location, log)
	case BackendSQLite:
		return NewSQLiteKV(location)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
