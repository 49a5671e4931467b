package render

import (
	"context"

	"github.com/goliatone/go-formrelay/pkg/model"
)

// Renderer converts a FormModel plus its per-request state into bytes (an
// HTML page, a fragment, terminal output).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
