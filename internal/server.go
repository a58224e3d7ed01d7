package internal

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"time"

	"standardglass-api/internal/catalog"
	"standardglass-api/internal/config"
	"standardglass-api/internal/contact"
	"standardglass-api/internal/content"
	"standardglass-api/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

//go:embed openapi
var openapiFS embed.FS

type Server struct {
	Router  *chi.Mux
	Catalog *catalog.Catalog
	Content *content.Site
	Contact *contact.Desk
	Metrics *Metrics
	Log     *zap.Logger

	cfg *config.Config
	srv *http.Server
}

// NewServer loads the catalog (embedded unless cfg.CatalogPath is set) and
// builds the router.
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		cat = loaded
	}

	site := content.Default()

	s := &Server{
		Router:  chi.NewRouter(),
		Catalog: cat,
		Content: site,
		Contact: contact.NewDesk(contact.Options{
			Services:  site.ServiceNames(),
			PerMinute: cfg.ContactRate,
			Burst:     cfg.ContactBurst,
			Submitter: contact.LogSubmitter{Log: logger.Named("contact")},
		}),
		Metrics: NewMetrics(),
		Log:     logger,
		cfg:     cfg,
	}

	s.Router.Use(middleware.RequestID)
	s.Router.Use(requestLogger(logger))
	s.Router.Use(recoverer(logger))
	s.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	// Mount metrics if enabled
	if cfg.EnableMetrics {
		s.Router.Use(s.Metrics.Middleware())
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	s.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	s.mountDocs(s.Router)

	s.Router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		sendErrorResponse(w, "Not found", "NOT_FOUND", http.StatusNotFound)
	})
	s.Router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		sendErrorResponse(w, "Method not allowed", "METHOD_NOT_ALLOWED", http.StatusMethodNotAllowed)
	})

	s.Router.Route("/api", s.mountAPIRoutes)

	logger.Info("catalog loaded",
		zap.Int("projects", cat.Len()),
		zap.String("source", catalogSource(cfg)),
	)
	return s, nil
}

func catalogSource(cfg *config.Config) string {
	if cfg.CatalogPath != "" {
		return cfg.CatalogPath
	}
	return "embedded"
}

// mountAPIRoutes mounts the read-only content routes and the contact form
func (s *Server) mountAPIRoutes(r chi.Router) {
	r.Get("/projects", s.listProjects)
	r.Get("/projects/{slug}", s.getProject)
	r.Get("/projects/{slug}/related", s.relatedProjects)
	r.Get("/categories", s.listCategories)

	r.Get("/home", s.getHome)
	r.Get("/services", s.listServices)
	r.Get("/services/{id}", s.getService)
	r.Get("/testimonials", s.listTestimonials)
	r.Get("/faqs", s.listFAQs)
	r.Get("/about", s.getAbout)
	r.Get("/locations", s.listLocations)

	contactHandler := handlers.NewContactHandler(s.Contact, s.Log.Named("contact"), s.Metrics)
	r.Get("/contact", s.getContactPage)
	r.Post("/contact", contactHandler.Submit)
}

// mountDocs serves the OpenAPI spec and Swagger UI
func (s *Server) mountDocs(mux *chi.Mux) {
	if !s.cfg.EnableSwagger {
		return
	}

	mux.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		data, err := openapiFS.ReadFile("openapi/openapi.yaml")
		if err != nil {
			http.Error(w, "Failed to read OpenAPI spec", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/x-yaml")
		if _, err := w.Write(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	mux.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`<!doctype html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Standard Glass Co. API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css">
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: '/openapi.yaml',
                dom_id: '#swagger-ui',
                deepLinking: true
            });
        };
    </script>
</body>
</html>`))
	})
}

// ListenAndServe blocks until ctx is cancelled, then shuts the server down
// within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Log.Info("listening", zap.String("addr", s.srv.Addr))
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.Close(shutdownCtx)
}

// Close gracefully stops the HTTP server if it is running
func (s *Server) Close(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	s.Log.Info("shutting down")
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
