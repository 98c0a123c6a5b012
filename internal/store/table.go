package store

import (
	"reflect"
	"sync"

	"github.com/andreyvolosyuk/cassandra-fake/internal/cassandra"
)

// Table owns one column family's rows. Every read and mutation runs under a
// single table mutex: concurrent calls on the same table are fully
// serialized, calls on different tables never contend.
type Table struct {
	name    string
	columns []cassandra.Column
	byField map[string]cassandra.Column // storage name → column
	display map[string]string           // storage name → model name, where they differ
	primary []string                    // partition columns, then clustering columns

	mu   sync.Mutex
	rows []cassandra.Row
}

func newTable(name string, columns []cassandra.Column) *Table {
	t := &Table{
		name:    name,
		columns: columns,
		byField: make(map[string]cassandra.Column, len(columns)),
		display: make(map[string]string),
	}
	for _, c := range columns {
		f := c.StorageName()
		t.byField[f] = c
		if c.Name != f {
			t.display[f] = c.Name
		}
	}
	for _, c := range columns {
		if c.Key == cassandra.KeyPartition {
			t.primary = append(t.primary, c.StorageName())
		}
	}
	for _, c := range columns {
		if c.Key == cassandra.KeyClustering {
			t.primary = append(t.primary, c.StorageName())
		}
	}
	return t
}

func (t *Table) Name() string { return t.name }

// Columns returns the declared schema in declaration order.
func (t *Table) Columns() []cassandra.Column {
	out := make([]cassandra.Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len reports the number of stored rows.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// Find scans rows in insertion order and returns the ones matching every
// equality filter, at most limit of them (0 means unbounded). Each result
// holds only the projected fields, keyed by the column's model-facing name
// where one is declared, and is deep-copied so callers cannot reach stored
// state. Empty filters match every row; an empty projection selects all
// declared columns.
func (t *Table) Find(filters map[string]any, limit int, fields []string) []cassandra.Row {
	t.mu.Lock()
	defer t.mu.Unlock()

	idxs := t.matchIndices(filters, limit)
	out := make([]cassandra.Row, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, t.project(idx, fields))
	}
	return out
}

// Insert builds a full row from values, defaulting absent scalars to nil and
// absent containers to their empty instance, and appends it. A row with the
// same primary key tuple is replaced wholesale, or reported as ErrNotApplied
// when ifNotExists is set. Primary key columns may never resolve to nil.
func (t *Table) Insert(values map[string]any, ifNotExists bool) error {
	entry := make(cassandra.Row, len(t.columns))
	for _, c := range t.columns {
		f := c.StorageName()
		v, ok := values[f]
		if !ok || v == nil {
			v = c.Kind.EmptyValue()
		}
		entry[f] = v
	}

	for _, pk := range t.primary {
		if entry[pk] == nil {
			return newError(ErrPrimaryKeyMissing, "column %s", pk)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if idx, ok := t.findByKey(entry); ok {
		if ifNotExists {
			return newError(ErrNotApplied, "insert into %s", t.name)
		}
		t.rows[idx] = entry // last writer wins, no merge
		return nil
	}
	t.rows = append(t.rows, entry)
	return nil
}

// Update applies the ordered assignments to every row matching the filters,
// as one batch under the lock. Filters are not restricted to the primary key
// and may match zero or many rows; zero matches with ifExists set yields
// ErrNotApplied. Assignments naming an undeclared column are dropped.
func (t *Table) Update(filters map[string]any, assignments []Assignment, ifExists bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idxs := t.matchIndices(filters, 0)
	if len(idxs) == 0 && ifExists {
		return newError(ErrNotApplied, "update %s", t.name)
	}

	for _, idx := range idxs {
		for _, a := range assignments {
			col, ok := t.byField[a.Column]
			if !ok {
				continue
			}
			t.rows[idx][a.Column] = applyOperator(col.Kind, a.Operator, t.rows[idx][a.Column], a.Value)
		}
	}
	return nil
}

// Delete removes every row matching the filters; empty filters truncate the
// table. Zero matches on a non-empty filter with ifExists set yields
// ErrNotApplied.
func (t *Table) Delete(filters map[string]any, ifExists bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(filters) == 0 {
		t.rows = nil
		return nil
	}

	idxs := t.matchIndices(filters, 0)
	if len(idxs) == 0 && ifExists {
		return newError(ErrNotApplied, "delete from %s", t.name)
	}

	// walk backwards so the remaining indices stay valid while removing
	for i := len(idxs) - 1; i >= 0; i-- {
		idx := idxs[i]
		t.rows = append(t.rows[:idx], t.rows[idx+1:]...)
	}
	return nil
}

func (t *Table) truncate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = nil
}

func (t *Table) project(idx int, fields []string) cassandra.Row {
	if len(fields) == 0 {
		fields = make([]string, 0, len(t.columns))
		for _, c := range t.columns {
			fields = append(fields, c.StorageName())
		}
	}

	row := make(cassandra.Row, len(fields))
	for _, f := range fields {
		key := f
		if name, ok := t.display[f]; ok {
			key = name
		}
		row[key] = cassandra.CopyValue(t.rows[idx][f])
	}
	return row
}

func (t *Table) matchIndices(filters map[string]any, limit int) []int {
	var idxs []int
	for idx, row := range t.rows {
		if !rowMatches(row, filters) {
			continue
		}
		idxs = append(idxs, idx)
		if limit > 0 && len(idxs) == limit {
			break
		}
	}
	return idxs
}

// findByKey locates the row sharing entry's primary key tuple. A table with
// no declared primary key has no row identity: nothing ever matches.
func (t *Table) findByKey(entry cassandra.Row) (int, bool) {
	if len(t.primary) == 0 {
		return 0, false
	}
	for idx, row := range t.rows {
		match := true
		for _, pk := range t.primary {
			if !valueEqual(row[pk], entry[pk]) {
				match = false
				break
			}
		}
		if match {
			return idx, true
		}
	}
	return 0, false
}

func rowMatches(row cassandra.Row, filters map[string]any) bool {
	for f, want := range filters {
		got, ok := row[f]
		if !ok || !valueEqual(got, want) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
