package specs

import (
	"errors"
	"net/http"
	"path"
	"strings"
)

// Mux is what the fragment route needs from a router. *http.ServeMux
// satisfies it.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath is the URL the fragment is served at: the route path joined under
// basePath. The design page points its type selector at this URL.
func MountPath(basePath string, fns ...OptionFn) string {
	return joinRoute(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes mounts the fragment handler on mux and returns its path.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions is RegisterRoutes for a prepared Options value.
// The route is registered for GET, which the mux also matches for HEAD.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", errors.New("specs: a mux is required to mount the fragment route")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	route := joinRoute(basePath, opts.RoutePath)
	mux.Handle(http.MethodGet+" "+route, HandlerWithOptions(opts))
	return route, nil
}

func joinRoute(basePath, routePath string) string {
	joined := path.Join("/", strings.TrimSpace(basePath), strings.TrimSpace(routePath))
	if joined == "." {
		return "/"
	}
	return joined
}
