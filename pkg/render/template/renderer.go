package template

import (
	"io"
)

// TemplateRenderer is the engine contract renderers rely on. Name-based
// calls resolve templates from the engine's loaders; RenderString compiles
// the supplied source on the fly.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
