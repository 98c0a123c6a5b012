package cassandra

// Kind classifies a column as a scalar or one of the CQL container shapes.
type Kind int

const (
	KindScalar Kind = iota
	KindList
	KindSet
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	default:
		return "scalar"
	}
}

// Type is the scalar type tag of a column. For containers it tags the
// element type (list/set) or the value type (map).
type Type int

const (
	TypeText Type = iota
	TypeInt
	TypeBigInt
	TypeDouble
	TypeBoolean
	TypeUUID
	TypeTimestamp
	TypeDate
	TypeBlob
)

// KeyRole marks a column's position in the primary key. Partition columns
// come before clustering columns when the key tuple is assembled.
type KeyRole int

const (
	KeyNone KeyRole = iota
	KeyPartition
	KeyClustering
)

// Column describes one declared column of a table. Column values are
// immutable once a table has been created from them.
type Column struct {
	// Name is the model-facing identifier.
	Name string
	// DBField is the storage identifier. Empty means same as Name.
	DBField string
	Kind    Kind
	// Type is the scalar type; for a list or set it is the element type,
	// for a map it is the value type.
	Type Type
	// KeyType is the key type of a map column.
	KeyType  Type
	Key      KeyRole
	Required bool
}

// StorageName returns the identifier rows are keyed by.
func (c Column) StorageName() string {
	if c.DBField != "" {
		return c.DBField
	}
	return c.Name
}

// Model binds a keyspace and table name to the column schema a statement
// executor validates and normalizes against.
type Model struct {
	Keyspace string
	Table    string
	Columns  []Column
}

// Column resolves a result key, which may be either the model-facing or the
// storage identifier, back to its column definition.
func (m *Model) Column(key string) (Column, bool) {
	for _, c := range m.Columns {
		if c.Name == key || c.StorageName() == key {
			return c, true
		}
	}
	return Column{}, false
}

// Container representations stored in rows. Set and Map keys must be
// comparable scalars.
type (
	List = []any
	Set  = map[any]struct{}
	Map  = map[any]any
)

// NewSet builds a Set from its elements.
func NewSet(elems ...any) Set {
	s := make(Set, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// Row maps a column's storage name to its stored value, one entry per
// declared column. Absent scalars hold nil; containers are never nil.
type Row map[string]any

// Copy deep-copies the row so callers can mutate results freely.
func (r Row) Copy() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = CopyValue(v)
	}
	return out
}

// EmptyValue returns the default stored value for the kind: nil for a
// scalar, an empty instance for every container kind.
func (k Kind) EmptyValue() any {
	switch k {
	case KindList:
		return List{}
	case KindSet:
		return Set{}
	case KindMap:
		return Map{}
	default:
		return nil
	}
}

// CopyValue deep-copies container and blob values. Scalars are returned
// as-is.
func CopyValue(v any) any {
	switch tv := v.(type) {
	case List:
		out := make(List, len(tv))
		for i, e := range tv {
			out[i] = CopyValue(e)
		}
		return out
	case Set:
		out := make(Set, len(tv))
		for e := range tv {
			out[e] = struct{}{}
		}
		return out
	case Map:
		out := make(Map, len(tv))
		for k, e := range tv {
			out[k] = CopyValue(e)
		}
		return out
	case []byte:
		out := make([]byte, len(tv))
		copy(out, tv)
		return out
	default:
		return v
	}
}
