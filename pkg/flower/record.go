package flower

import (
	"fmt"
	"strconv"
)

// Record is the shape of records decoded from JSON, YAML or TOML input.
type Record = map[string]any

// Accessor extracts the label and the type set of a record.
// Implementations must be total: the core never recovers from a panic.
type Accessor[R any] interface {
	Label(record R) string
	Types(record R) []string
}

// AccessorFuncs adapts a pair of functions to [Accessor].
type AccessorFuncs[R any] struct {
	LabelFunc func(R) string
	TypesFunc func(R) []string
}

func (a AccessorFuncs[R]) Label(record R) string   { return a.LabelFunc(record) }
func (a AccessorFuncs[R]) Types(record R) []string { return a.TypesFunc(record) }

// FieldAccessor reads the label and the types of a [Record] by field name.
//
// The type field may hold a list of scalars, a single string, or nothing at
// all; a missing or null field means the record belongs to no types.
type FieldAccessor struct {
	LabelField string
	TypesField string
}

// Label returns the label field formatted as a string.
func (a FieldAccessor) Label(r Record) string {
	v, ok := r[a.LabelField]
	if !ok || v == nil {
		return ""
	}
	return scalarString(v)
}

// Types returns the type field as a list of strings.
func (a FieldAccessor) Types(r Record) []string {
	switch v := r[a.TypesField].(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, x := range v {
			if x == nil {
				continue
			}
			out = append(out, scalarString(x))
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return []string{scalarString(v)}
	}
}

func scalarString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
