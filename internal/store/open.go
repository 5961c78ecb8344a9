package store

import (
	"context"
	"fmt"
)

// Options selects and configures a backend
type Options struct {
	Backend string
	Path    string
	Redis   RedisOptions
}

// Open creates the configured backend
func Open(ctx context.Context, opts Options) (KeyValue, error) {
	switch opts.Backend {
	case BackendFile, "":
		return NewFile(opts.Path)
	case BackendSQLite:
		return OpenSQLite(ctx, opts.Path)
	case BackendRedis:
		return NewRedis(ctx, opts.Redis)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
