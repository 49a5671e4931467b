package specs

import (
	"context"
	"net/http"

	"github.com/goliatone/go-formrelay/pkg/specs"
)

// GuardFunc may reject a request before any rendering happens.
type GuardFunc func(r *http.Request) error

// FragmentRenderer draws the specs slot markup.
type FragmentRenderer interface {
	RenderSpecs(ctx context.Context, widgets specs.WidgetSet) ([]byte, error)
}

type Options struct {
	RoutePath   string
	TypeParam   string
	FormatParam string
	Guard       GuardFunc

	// Renderer draws the HTML fragment. Without one the handler always
	// answers JSON.
	Renderer FragmentRenderer
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:   "/design/specs",
		TypeParam:   specs.TypeField,
		FormatParam: "format",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/design/specs"
	}
	if opts.TypeParam == "" {
		opts.TypeParam = specs.TypeField
	}
	if opts.FormatParam == "" {
		opts.FormatParam = "format"
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithTypeParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TypeParam = name
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithRenderer(renderer FragmentRenderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}
