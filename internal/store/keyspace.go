package store

import (
	"github.com/andreyvolosyuk/cassandra-fake/internal/cassandra"
)

// Keyspace is a named collection of tables. It carries no behavior beyond
// lookup and creation; tables are only ever added explicitly, never on
// first write.
type Keyspace struct {
	name   string
	tables map[string]*Table
}

func newKeyspace(name string) *Keyspace {
	return &Keyspace{
		name:   name,
		tables: make(map[string]*Table),
	}
}

func (k *Keyspace) Name() string { return k.name }

// AddTable creates a table from its column schema. Re-declaring an existing
// table name is ErrTableExists: a mis-declared model should fail schema sync
// loudly instead of silently replacing the previous schema.
func (k *Keyspace) AddTable(name string, columns []cassandra.Column) (*Table, error) {
	if _, ok := k.tables[name]; ok {
		return nil, newError(ErrTableExists, "%s.%s", k.name, name)
	}
	t := newTable(name, columns)
	k.tables[name] = t
	return t, nil
}

// Table looks up a table by its storage name.
func (k *Keyspace) Table(name string) (*Table, error) {
	t, ok := k.tables[name]
	if !ok {
		return nil, newError(ErrTableNotFound, "%s.%s", k.name, name)
	}
	return t, nil
}

// Tables returns the registered table names.
func (k *Keyspace) Tables() []string {
	names := make([]string, 0, len(k.tables))
	for name := range k.tables {
		names = append(names, name)
	}
	return names
}
