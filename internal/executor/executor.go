// Package executor translates abstract select/insert/update/delete
// statements, bound to a model's schema, into table calls and normalizes
// read results. It holds no state of its own.
package executor

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/andreyvolosyuk/cassandra-fake/internal/cassandra"
	"github.com/andreyvolosyuk/cassandra-fake/internal/normalize"
	"github.com/andreyvolosyuk/cassandra-fake/internal/store"
)

//go:generate mockgen -destination=./executor_mock.go -package=executor -source=executor.go

type registry interface {
	Table(keyspace, name string) (*store.Table, error)
}

type Executor struct {
	registry registry
	logger   zerolog.Logger
}

type Config struct {
	Registry registry
	// Logger is optional; a disabled logger is used when nil.
	Logger *zerolog.Logger
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Registry == nil {
		errGrp = append(errGrp, errors.New("registry is required"))
	}
	return errors.Join(errGrp...)
}

func New(cfg *Config) (*Executor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Executor{
		registry: cfg.Registry,
		logger:   logger,
	}, nil
}

// Select runs the statement's equality filters, limit and projection against
// the target table and normalizes every result row for the model. An empty
// result set short-circuits without normalization.
func (e *Executor) Select(model *cassandra.Model, stmt *SelectStatement) ([]cassandra.Row, error) {
	tbl, err := e.target(model, stmt.Table)
	if err != nil {
		return nil, err
	}
	e.logStatement("select", model, stmt.Table).Int("limit", stmt.Limit).Send()

	rows := tbl.Find(relationsToFilters(stmt.Where), stmt.Limit, stmt.Fields)
	if len(rows) == 0 {
		return rows, nil
	}

	out := make([]cassandra.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalizeRow(model, row))
	}
	return out, nil
}

// Count reports how many rows the statement matches. It is a read plus a
// length, not an aggregate pushed into the store.
func (e *Executor) Count(model *cassandra.Model, stmt *SelectStatement) (int, error) {
	rows, err := e.Select(model, stmt)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Insert folds the statement's assignment clauses into a values map and
// forwards it. A store.ErrNotApplied from an IF NOT EXISTS insert propagates
// unchanged so the caller can branch on whether the write applied.
func (e *Executor) Insert(model *cassandra.Model, stmt *InsertStatement) error {
	tbl, err := e.target(model, stmt.Table)
	if err != nil {
		return err
	}
	e.logStatement("insert", model, stmt.Table).Bool("if_not_exists", stmt.IfNotExists).Send()

	values := make(map[string]any, len(stmt.Assignments))
	for _, a := range stmt.Assignments {
		values[a.Field] = a.Value
	}
	return tbl.Insert(values, stmt.IfNotExists)
}

// Update forwards the statement's predicates and (column, operator, value)
// triples to the table.
func (e *Executor) Update(model *cassandra.Model, stmt *UpdateStatement) error {
	tbl, err := e.target(model, stmt.Table)
	if err != nil {
		return err
	}
	e.logStatement("update", model, stmt.Table).Bool("if_exists", stmt.IfExists).Send()

	return tbl.Update(relationsToFilters(stmt.Where), assignmentsToStore(stmt.Assignments), stmt.IfExists)
}

// Delete removes the matching rows, or, when the statement carries field
// targets, nulls those columns on the matching rows instead. Column nulling
// goes through Table.Update so it runs under the same table lock as every
// other mutation.
func (e *Executor) Delete(model *cassandra.Model, stmt *DeleteStatement) error {
	tbl, err := e.target(model, stmt.Table)
	if err != nil {
		return err
	}
	e.logStatement("delete", model, stmt.Table).
		Bool("if_exists", stmt.IfExists).
		Strs("fields", stmt.Fields).
		Send()

	filters := relationsToFilters(stmt.Where)
	if len(stmt.Fields) > 0 {
		assignments := make([]store.Assignment, 0, len(stmt.Fields))
		for _, f := range stmt.Fields {
			assignments = append(assignments, store.Assignment{
				Column:   f,
				Operator: store.OpAssign,
				Value:    nil,
			})
		}
		return tbl.Update(filters, assignments, false)
	}
	return tbl.Delete(filters, stmt.IfExists)
}

// target resolves the destination table. An explicit "keyspace.table" in the
// statement overrides the model's declared keyspace; a bare table name only
// overrides the table.
func (e *Executor) target(model *cassandra.Model, stmtTable string) (*store.Table, error) {
	keyspace, table := model.Keyspace, model.Table
	if stmtTable != "" {
		table = stmtTable
		if ks, tbl, ok := strings.Cut(stmtTable, "."); ok {
			keyspace, table = ks, tbl
		}
	}
	return e.registry.Table(keyspace, table)
}

func (e *Executor) logStatement(kind string, model *cassandra.Model, stmtTable string) *zerolog.Event {
	return e.logger.Debug().
		Str("statement", kind).
		Str("keyspace", model.Keyspace).
		Str("table", model.Table).
		Str("override", stmtTable)
}

func normalizeRow(model *cassandra.Model, row cassandra.Row) cassandra.Row {
	out := make(cassandra.Row, len(row))
	for key, v := range row {
		col, ok := model.Column(key)
		if !ok {
			out[key] = v
			continue
		}
		out[key] = normalize.Value(v, col)
	}
	return out
}

func relationsToFilters(where []Relation) map[string]any {
	filters := make(map[string]any, len(where))
	for _, rel := range where {
		filters[rel.Field] = rel.Value
	}
	return filters
}

var supportedOperations = map[string]store.Operator{
	"append":  store.OpAppend,
	"prepend": store.OpPrepend,
	"add":     store.OpAdd,
	"remove":  store.OpRemove,
	"update":  store.OpUpdate,
	"assign":  store.OpAssign,
}

// assignmentsToStore keeps clause order and maps each clause's operation to
// a store operator. Unrecognized operations fall back to assignment rather
// than failing the statement.
func assignmentsToStore(assignments []Assignment) []store.Assignment {
	out := make([]store.Assignment, 0, len(assignments))
	for _, a := range assignments {
		op, ok := supportedOperations[a.Operation]
		if !ok {
			op = store.OpAssign
		}
		out = append(out, store.Assignment{
			Column:   a.Field,
			Operator: op,
			Value:    a.Value,
		})
	}
	return out
}
