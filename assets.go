package formrelay

import (
	"io/fs"

	"github.com/goliatone/go-formrelay/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in page and specs fragment templates so
// callers can copy or extend them without importing the renderer package.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the stylesheet and page script the HTML renderer inlines.
//
// Typical mount:
//
//	mux.Handle("GET /assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formrelay.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
