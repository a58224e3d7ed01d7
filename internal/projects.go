package internal

import (
	"net/http"
	"strconv"
	"strings"

	"standardglass-api/internal/catalog"
	"standardglass-api/internal/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// projectListPath is where unresolvable project slugs are redirected.
const projectListPath = "/api/projects"

type listMeta struct {
	Count    int    `json:"count"`
	Total    int    `json:"total"`
	Category string `json:"category"`
}

type projectDetail struct {
	models.Project
	Path       string   `json:"path"`
	Paragraphs []string `json:"paragraphs"`
}

type categoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	projects := s.Catalog.List(catalog.ListOptions{
		Category: params.category,
		Limit:    params.limit,
	})

	category := params.category
	if category == "" {
		category = catalog.All
	}
	writeData(w, projects, listMeta{
		Count:    len(projects),
		Total:    s.Catalog.Len(),
		Category: category,
	})
}

// lookupProject resolves the {slug} URL parameter. When the slug is unknown
// it redirects to the listing and reports false.
func (s *Server) lookupProject(w http.ResponseWriter, r *http.Request) (models.Project, bool) {
	slug := chi.URLParam(r, "slug")
	p, ok := s.Catalog.BySlug(slug)
	s.Metrics.ObserveLookup(ok)
	if !ok {
		s.Log.Debug("project not found, redirecting to listing", zap.String("slug", slug))
		http.Redirect(w, r, projectListPath, http.StatusFound)
		return models.Project{}, false
	}
	return p, true
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookupProject(w, r)
	if !ok {
		return
	}
	writeData(w, projectDetail{
		Project:    p,
		Path:       p.Path(),
		Paragraphs: p.Paragraphs(),
	}, nil)
}

func (s *Server) relatedProjects(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookupProject(w, r)
	if !ok {
		return
	}

	limit := catalog.DefaultRelatedLimit
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = min(n, maxListLimit)
		}
	}

	related := s.Catalog.Related(p.ID, p.Category, limit)
	writeData(w, related, listMeta{
		Count:    len(related),
		Total:    s.Catalog.Len(),
		Category: p.Category,
	})
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	counts := s.Catalog.Counts()
	names := catalog.Categories()

	out := make([]categoryCount, len(names))
	for i, name := range names {
		out[i] = categoryCount{Name: name, Count: counts[name]}
	}
	writeData(w, out, nil)
}
