package storage

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/shopd/internal/model"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Options struct {
	Backend    string
	FilePath   string
	SQLitePath string
	RedisURL   string
	RedisKey   string
}

// Open builds the Store named by opts.Backend. An empty backend means file.
func Open(opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		return NewJSONFileStore(opts.FilePath), nil
	case BackendSQLite:
		path := strings.TrimSpace(opts.SQLitePath)
		if path == "" {
			return nil, fmt.Errorf("storage: sqlite backend requires a database path")
		}
		return OpenSQLite(path)
	case BackendRedis:
		if strings.TrimSpace(opts.RedisURL) == "" {
			return nil, fmt.Errorf("storage: redis backend requires a url")
		}
		return NewRedisStore(opts.RedisURL, opts.RedisKey)
	case BackendMemory:
		return NewMemoryStore(model.NewShoppingList()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
