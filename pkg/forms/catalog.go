package forms

import "fmt"

// Catalog indexes definitions by name.
type Catalog struct {
	forms map[string]Definition
	order []string
}

// NewCatalog registers defs in order. Duplicate names are rejected.
func NewCatalog(defs ...Definition) (*Catalog, error) {
	c := &Catalog{forms: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("forms: definition name is required")
		}
		if _, exists := c.forms[def.Name]; exists {
			return nil, fmt.Errorf("forms: definition %q already registered", def.Name)
		}
		c.forms[def.Name] = def
		c.order = append(c.order, def.Name)
	}
	return c, nil
}

// Get returns the named definition.
func (c *Catalog) Get(name string) (Definition, error) {
	def, ok := c.forms[name]
	if !ok {
		return Definition{}, fmt.Errorf("forms: definition %q not found", name)
	}
	return def, nil
}

// Names lists the registered names in registration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}
