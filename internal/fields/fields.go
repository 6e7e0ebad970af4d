package fields

import (
	"fmt"
	"net/url"
)

// #region source

// Source exposes named fields of a live invocation instance. Implementations
// decide per supported invocation type how a field name resolves; a false
// second return means the field does not exist on this instance.
type Source interface {
	Field(name string) (any, bool)
}

// MapSource resolves fields from a plain map.
type MapSource map[string]any

// Field implements Source.
func (m MapSource) Field(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// FormSource resolves fields from parsed form values. Only the first value
// for a name is used.
type FormSource url.Values

// Field implements Source.
func (f FormSource) Field(name string) (any, bool) {
	vs, ok := f[name]
	if !ok || len(vs) == 0 {
		return nil, false
	}
	return vs[0], true
}

// FuncSource adapts an accessor function to Source.
type FuncSource func(name string) (any, bool)

// Field implements Source.
func (fn FuncSource) Field(name string) (any, bool) {
	return fn(name)
}

// #endregion source

// #region field-value

// FieldValue is one extracted (name, value) pair. Value is always coerced
// to text before scoring.
type FieldValue struct {
	Name  string
	Value string
}

// #endregion field-value

// #region extract

// Extract resolves the named fields against src, preserving declared order.
// Fields the source cannot resolve are skipped; a resolution failure for one
// field never aborts extraction of the rest. A resolved nil is normalized to
// the empty string so downstream scoring never sees an absent value.
func Extract(src Source, names []string) []FieldValue {
	out := make([]FieldValue, 0, len(names))
	for _, name := range names {
		v, ok := src.Field(name)
		if !ok {
			continue
		}
		out = append(out, FieldValue{Name: name, Value: coerce(v)})
	}
	return out
}

// coerce renders an arbitrary scalar as text. nil becomes "".
func coerce(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// #endregion extract
