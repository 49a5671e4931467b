package model

import (
	"net/url"
	"sort"
	"strings"
)

// FormState is an immutable snapshot of submitted or pre-filled values keyed
// by field name. Mutators return a new snapshot; the receiver is never
// modified, so a state can be shared between the renderer and the pipeline.
type FormState struct {
	values map[string][]string
}

// NewState copies the provided values into a fresh snapshot. Empty names are
// dropped.
func NewState(values url.Values) FormState {
	out := make(map[string][]string, len(values))
	for name, list := range values {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		out[key] = append([]string(nil), list...)
	}
	return FormState{values: out}
}

// StateFromMap builds a snapshot holding one value per key.
func StateFromMap(values map[string]string) FormState {
	out := make(url.Values, len(values))
	for name, value := range values {
		out.Set(name, value)
	}
	return NewState(out)
}

// Get returns the first value recorded for name, or "".
func (s FormState) Get(name string) string {
	list := s.values[name]
	if len(list) == 0 {
		return ""
	}
	return list[0]
}

// Values returns a copy of every value recorded for name.
func (s FormState) Values(name string) []string {
	list := s.values[name]
	if len(list) == 0 {
		return nil
	}
	return append([]string(nil), list...)
}

// Has reports whether name was present, even with an empty value.
func (s FormState) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Blank reports whether the first value for name is empty after trimming.
func (s FormState) Blank(name string) bool {
	return strings.TrimSpace(s.Get(name)) == ""
}

// With returns a copy of the state with name set to values.
func (s FormState) With(name string, values ...string) FormState {
	next := s.clone()
	key := strings.TrimSpace(name)
	if key == "" {
		return next
	}
	next.values[key] = append([]string(nil), values...)
	return next
}

// Without returns a copy of the state with the named entries removed.
func (s FormState) Without(names ...string) FormState {
	next := s.clone()
	for _, name := range names {
		delete(next.values, name)
	}
	return next
}

// Names returns the recorded field names sorted for deterministic output.
func (s FormState) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many names are recorded.
func (s FormState) Len() int {
	return len(s.values)
}

// Encode returns the state as url.Values.
func (s FormState) Encode() url.Values {
	out := make(url.Values, len(s.values))
	for name, list := range s.values {
		out[name] = append([]string(nil), list...)
	}
	return out
}

// Flatten returns the first value of every entry, the shape renderers use to
// pre-fill single-value controls.
func (s FormState) Flatten() map[string]string {
	out := make(map[string]string, len(s.values))
	for name := range s.values {
		out[name] = s.Get(name)
	}
	return out
}

func (s FormState) clone() FormState {
	out := make(map[string][]string, len(s.values)+1)
	for name, list := range s.values {
		out[name] = append([]string(nil), list...)
	}
	return FormState{values: out}
}
