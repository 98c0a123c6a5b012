package store

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/andreyvolosyuk/cassandra-fake/internal/cassandra"
)

// Registry maps keyspace names to keyspaces. It replaces the process-wide
// globals a driver would hide behind a session: each test harness owns its
// own Registry, so parallel runs share nothing.
//
// Keyspace and table creation is expected to happen single-threaded at
// schema sync time, before statement traffic begins; the registry mutex only
// keeps that assumption cheap to hold, it is not a transaction boundary.
type Registry struct {
	mu        sync.Mutex
	keyspaces map[string]*Keyspace
	logger    zerolog.Logger
}

type Config struct {
	// Logger is optional; a disabled logger is used when nil.
	Logger *zerolog.Logger
}

// New creates an empty registry.
func New(cfg *Config) *Registry {
	logger := zerolog.Nop()
	if cfg != nil && cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Registry{
		keyspaces: make(map[string]*Keyspace),
		logger:    logger,
	}
}

// CreateKeyspace registers an empty keyspace, replacing any prior keyspace
// of the same name together with its tables. Test-suite resets rely on the
// overwrite being silent.
func (r *Registry) CreateKeyspace(name string) *Keyspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	ks := newKeyspace(name)
	r.keyspaces[name] = ks
	r.logger.Debug().Str("keyspace", name).Msg("keyspace created")
	return ks
}

// Keyspace looks up a keyspace created earlier. Callers must create
// keyspaces before first table use.
func (r *Registry) Keyspace(name string) (*Keyspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keyspace(name)
}

func (r *Registry) keyspace(name string) (*Keyspace, error) {
	ks, ok := r.keyspaces[name]
	if !ok {
		return nil, newError(ErrKeyspaceNotFound, "%s", name)
	}
	return ks, nil
}

// AddTable registers a table in an existing keyspace.
func (r *Registry) AddTable(keyspace, name string, columns []cassandra.Column) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ks, err := r.keyspace(keyspace)
	if err != nil {
		return nil, err
	}
	t, err := ks.AddTable(name, columns)
	if err != nil {
		return nil, err
	}
	r.logger.Debug().Str("keyspace", keyspace).Str("table", name).Msg("table created")
	return t, nil
}

// Table resolves keyspace and table in one step.
func (r *Registry) Table(keyspace, name string) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ks, err := r.keyspace(keyspace)
	if err != nil {
		return nil, err
	}
	return ks.Table(name)
}

// Flush clears every table's rows across all keyspaces. Schemas survive, so
// re-populating after a flush needs no re-declaration.
func (r *Registry) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ks := range r.keyspaces {
		for _, t := range ks.tables {
			t.truncate()
		}
	}
	r.logger.Debug().Msg("all tables flushed")
}

// Reset drops every registered keyspace, schemas included.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.keyspaces = make(map[string]*Keyspace)
	r.logger.Debug().Msg("registry reset")
}
