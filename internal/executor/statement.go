package executor

// The executor consumes statements that are already parsed: a query layer
// above it is responsible for turning CQL text into these shapes.

// Relation is one conjunctive equality predicate on a storage-named column.
type Relation struct {
	Field string
	Value any
}

// Assignment is one SET clause. Operation names the collection operation
// (append, prepend, add, remove, update); empty or unrecognized operations
// mean plain assignment.
type Assignment struct {
	Field     string
	Operation string
	Value     any
}

// SelectStatement reads rows matching equality predicates.
type SelectStatement struct {
	// Table optionally overrides the model's target as "table" or
	// "keyspace.table".
	Table  string
	Where  []Relation
	Fields []string // projection; empty selects all declared columns
	Limit  int      // 0 means unbounded
}

// InsertStatement writes one full row.
type InsertStatement struct {
	Table       string
	Assignments []Assignment
	IfNotExists bool
}

// UpdateStatement mutates every row matching its predicates.
type UpdateStatement struct {
	Table       string
	Where       []Relation
	Assignments []Assignment
	IfExists    bool
}

// DeleteStatement removes matching rows, or nulls the named columns on them
// when Fields is set.
type DeleteStatement struct {
	Table    string
	Where    []Relation
	Fields   []string
	IfExists bool
}
