package specs

import "github.com/goliatone/go-formrelay/pkg/model"

// Controller tracks the type selector and hands out widget sets. It holds no
// state of its own; every call derives the result from the supplied
// FormState.
type Controller struct{}

// NewController returns a controller.
func NewController() *Controller {
	return &Controller{}
}

// Initial renders the widgets for the selector value already present in
// state, the way the page looks on first load.
func (c *Controller) Initial(state model.FormState) WidgetSet {
	v := VariantFor(state.Get(TypeField))
	return Render(v, state)
}

// Switch records a new selector value, clears the inputs of every variant and
// rebuilds the widgets for the selected one. Previously typed specs are
// discarded even when the same type is re-selected.
func (c *Controller) Switch(state model.FormState, typeValue string) (model.FormState, WidgetSet) {
	next := state.Without(SpecsField, CustomField, DigitalField).With(TypeField, typeValue)
	return next, Render(VariantFor(typeValue), next)
}
