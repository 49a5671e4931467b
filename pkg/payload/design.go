package payload

import (
	"strings"

	"github.com/goliatone/go-formrelay/pkg/model"
	"github.com/goliatone/go-formrelay/pkg/specs"
)

// TimestampField is the synthesized timestamp key shared by both payloads.
const TimestampField = "timestamp"

// Design is the flat payload of the design request form: field name to
// string value, with the specs slot collapsed into one entry.
type Design map[string]string

// BuildDesign copies every allowed field from state verbatim, collapses the
// type-dependent specs inputs for the active variant and stamps the payload.
// Controller-owned inputs (digital checkboxes, custom override) never appear
// as keys of their own.
func BuildDesign(state model.FormState, allowed []string, timestamp string) Design {
	variant := specs.VariantFor(state.Get(specs.TypeField))
	state = specs.Discard(variant, state)

	out := make(Design, len(allowed)+2)
	for _, name := range allowed {
		switch name {
		case specs.DigitalField, specs.CustomField, specs.SpecsField, TimestampField:
			continue
		}
		if !state.Has(name) {
			continue
		}
		out[name] = state.Get(name)
	}

	out[specs.SpecsField] = specs.SpecsValue(variant, state)
	out[TimestampField] = timestamp
	return out
}

// Get returns the value stored under name.
func (d Design) Get(name string) string {
	return d[strings.TrimSpace(name)]
}
