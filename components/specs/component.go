package specs

import "net/http"

// Component bundles the fragment handler with its options so a server can
// mount one specs route per form that declares a specs slot.
type Component struct {
	opts Options
}

// New returns a component configured from the defaults plus fns.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Path is the URL the fragment is served at when mounted at the root.
func (c *Component) Path() string {
	if c == nil {
		return DefaultOptions().RoutePath
	}
	return joinRoute("", c.opts.RoutePath)
}

// Handler serves the widget set for the requested type.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes mounts the fragment under basePath and returns its path.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
