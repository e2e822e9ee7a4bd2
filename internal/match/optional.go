package match

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Optional is an update field that tells an absent JSON key apart from an
// explicit null. Set is false when the key was missing; Null is true when the
// key was present with a null value.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a field set to v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns a field that clears the column.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value, o.Null = zero, true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// present reports whether v was given and is not null.
func (o Optional[T]) present() bool {
	return o.Set && !o.Null
}

// assignments collects the SET clause of a partial update.
type assignments struct {
	cols []string
	args []any
}

// setField appends col when o was given. A null binds as SQL NULL.
func setField[T any](a *assignments, col string, o Optional[T]) {
	if !o.Set {
		return
	}
	a.cols = append(a.cols, col+" = ?")
	if o.Null {
		a.args = append(a.args, nil)
		return
	}
	a.args = append(a.args, o.Value)
}

// clause returns the SET list, or noop when nothing was given so the
// statement still reports whether the row exists.
func (a *assignments) clause(noop string) string {
	if len(a.cols) == 0 {
		return noop
	}
	return strings.Join(a.cols, ", ")
}
