package store

import (
	"github.com/andreyvolosyuk/cassandra-fake/internal/cassandra"
)

// Operator tags how an assignment mutates the stored value.
type Operator string

const (
	OpAssign  Operator = "assign"
	OpAppend  Operator = "append"
	OpPrepend Operator = "prepend"
	OpAdd     Operator = "add"
	OpRemove  Operator = "remove"
	OpUpdate  Operator = "update"
)

// Assignment is one (column, operator, value) triple of an update.
type Assignment struct {
	Column   string // storage name
	Operator Operator
	Value    any
}

// applyOperator computes the new stored value for one assignment. It never
// mutates current: container operators build a fresh instance, so a value
// shared with a previous read stays intact. Any (kind, operator) pairing
// outside the table below, including mismatched value shapes, degrades to
// plain assignment.
//
//	list: append, prepend
//	set:  add, remove
//	map:  update, remove
func applyOperator(kind cassandra.Kind, op Operator, current, delta any) any {
	if op == OpAssign {
		return delta
	}

	switch kind {
	case cassandra.KindList:
		cur, okCur := current.(cassandra.List)
		d, okDelta := delta.(cassandra.List)
		if okCur && okDelta {
			switch op {
			case OpAppend:
				out := make(cassandra.List, 0, len(cur)+len(d))
				out = append(out, cur...)
				return append(out, d...)
			case OpPrepend:
				out := make(cassandra.List, 0, len(cur)+len(d))
				out = append(out, d...)
				return append(out, cur...)
			}
		}
	case cassandra.KindSet:
		cur, okCur := current.(cassandra.Set)
		d, okDelta := delta.(cassandra.Set)
		if okCur && okDelta {
			switch op {
			case OpAdd:
				out := make(cassandra.Set, len(cur)+len(d))
				for e := range cur {
					out[e] = struct{}{}
				}
				for e := range d {
					out[e] = struct{}{}
				}
				return out
			case OpRemove:
				out := make(cassandra.Set, len(cur))
				for e := range cur {
					if _, drop := d[e]; !drop {
						out[e] = struct{}{}
					}
				}
				return out
			}
		}
	case cassandra.KindMap:
		cur, okCur := current.(cassandra.Map)
		if !okCur {
			break
		}
		switch op {
		case OpUpdate:
			if d, ok := delta.(cassandra.Map); ok {
				out := make(cassandra.Map, len(cur)+len(d))
				for k, v := range cur {
					out[k] = v
				}
				for k, v := range d {
					out[k] = v
				}
				return out
			}
		case OpRemove:
			// the delta is a key collection; both map and set shapes occur
			var drop func(k any) bool
			switch d := delta.(type) {
			case cassandra.Map:
				drop = func(k any) bool { _, ok := d[k]; return ok }
			case cassandra.Set:
				drop = func(k any) bool { _, ok := d[k]; return ok }
			default:
				return delta
			}
			out := make(cassandra.Map, len(cur))
			for k, v := range cur {
				if !drop(k) {
					out[k] = v
				}
			}
			return out
		}
	}

	return delta
}
