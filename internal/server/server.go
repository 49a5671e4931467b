package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	formrelay "github.com/goliatone/go-formrelay"
	specscomponent "github.com/goliatone/go-formrelay/components/specs"
	"github.com/goliatone/go-formrelay/internal/i18n"
	"github.com/goliatone/go-formrelay/internal/metrics"
	"github.com/goliatone/go-formrelay/pkg/forms"
	"github.com/goliatone/go-formrelay/pkg/render"
	"github.com/goliatone/go-formrelay/pkg/renderers/html"
	"github.com/goliatone/go-formrelay/pkg/submission"
)

// maxFormBytes bounds a submitted form body.
const maxFormBytes = 1 << 20

// Option customises a Server.
type Option func(*Server)

// WithForm mounts a form at /<name> backed by pipeline.
func WithForm(pipeline *submission.Pipeline) Option {
	return func(s *Server) {
		if pipeline == nil {
			return
		}
		def := pipeline.Definition()
		s.forms[def.Name] = &formRoute{def: def, pipeline: pipeline}
		s.order = append(s.order, def.Name)
	}
}

// WithTranslations enables Accept-Language negotiation.
func WithTranslations(t *i18n.Translations) Option {
	return func(s *Server) {
		s.translations = t
	}
}

// WithMetrics records request and submission metrics and serves them at
// path.
func WithMetrics(m *metrics.Metrics, path string) Option {
	return func(s *Server) {
		s.metrics = m
		if path != "" {
			s.metricsPath = path
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server serves the form pages, the specs fragment and the submission
// endpoints.
type Server struct {
	pages        *html.Renderer
	renderers    *render.Registry
	translations *i18n.Translations
	metrics      *metrics.Metrics
	metricsPath  string
	logger       logrus.FieldLogger

	forms map[string]*formRoute
	order []string
}

type formRoute struct {
	def      forms.Definition
	pipeline *submission.Pipeline
}

// New builds a server drawing pages with pages.
func New(pages *html.Renderer, opts ...Option) (*Server, error) {
	if pages == nil {
		return nil, errors.New("server: html renderer is required")
	}
	s := &Server{
		pages:       pages,
		renderers:   render.NewRegistry(),
		metricsPath: "/metrics",
		logger:      discardLogger(),
		forms:       make(map[string]*formRoute),
	}
	if err := s.renderers.Register(pages); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if len(s.forms) == 0 {
		return nil, errors.New("server: no forms configured")
	}
	return s, nil
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	for _, name := range s.order {
		route := s.forms[name]
		path := "/" + name
		mux.Handle("GET "+path, s.page(route))
		mux.Handle("POST "+path, s.submit(route))

		if endpoint := route.def.Model.Metadata[forms.MetadataSpecsEndpoint]; endpoint != "" {
			component := specscomponent.New(
				specscomponent.WithRoutePath(endpoint),
				specscomponent.WithRenderer(s.pages),
			)
			if _, err := component.RegisterRoutes(mux, ""); err != nil {
				s.logger.WithError(err).Error("specs component not mounted")
			}
		}
	}

	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(formrelay.AssetsFS())))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		mux.Handle("GET "+s.metricsPath, s.metrics.Handler())
	}

	return s.requestID(s.instrument(mux))
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("formrelay listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("formrelay shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
