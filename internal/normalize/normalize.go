// Package normalize converts stored raw values into their canonical
// external representation on the read path. The write path keeps raw values;
// only results handed back to the query layer pass through here.
package normalize

import (
	"time"

	"github.com/andreyvolosyuk/cassandra-fake/internal/cassandra"
)

// The native protocol encodes a date as an unsigned day count centered on
// the epoch, so 1970-01-01 is 2^31.
const epochOffsetDays = int64(1) << 31

var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Value converts one stored value per its column's declared type. Containers
// are normalized element-wise using the declared element type(s); the
// recursion bottoms out on scalar leaves, nested containers are not modeled.
// Types with no conversion pass through unchanged.
func Value(v any, col cassandra.Column) any {
	if v == nil {
		return nil
	}

	switch col.Kind {
	case cassandra.KindList:
		l, ok := v.(cassandra.List)
		if !ok || len(l) == 0 {
			return v
		}
		out := make(cassandra.List, len(l))
		for i, e := range l {
			out[i] = Scalar(e, col.Type)
		}
		return out
	case cassandra.KindSet:
		s, ok := v.(cassandra.Set)
		if !ok || len(s) == 0 {
			return v
		}
		out := make(cassandra.Set, len(s))
		for e := range s {
			out[Scalar(e, col.Type)] = struct{}{}
		}
		return out
	case cassandra.KindMap:
		m, ok := v.(cassandra.Map)
		if !ok || len(m) == 0 {
			return v
		}
		out := make(cassandra.Map, len(m))
		for k, e := range m {
			out[Scalar(k, col.KeyType)] = Scalar(e, col.Type)
		}
		return out
	default:
		return Scalar(v, col.Type)
	}
}

// Scalar converts one scalar value per its type tag.
//
//	timestamp: epoch milliseconds → time.Time in UTC
//	date:      offset day count   → time.Time at UTC midnight
//
// Any integer or float width is accepted as the stored numeric. Values
// already carrying a canonical type, and every other type tag, are returned
// unchanged.
func Scalar(v any, t cassandra.Type) any {
	switch t {
	case cassandra.TypeTimestamp:
		if ms, ok := toInt64(v); ok {
			return time.UnixMilli(ms).UTC()
		}
	case cassandra.TypeDate:
		if days, ok := toInt64(v); ok {
			return epoch.AddDate(0, 0, int(days-epochOffsetDays))
		}
	}
	return v
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	default:
		return 0, false
	}
}
