// Package catalog holds the read-only collection of completed glazing
// projects and the queries the site runs against it.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"standardglass-api/internal/models"
	"standardglass-api/pkg/seed"
)

// All is the sentinel category meaning "no filter".
const All = "All"

// DefaultRelatedLimit is used by Related when the caller passes no limit.
const DefaultRelatedLimit = 3

var categories = []string{All, "Commercial", "Healthcare", "Retail", "Education", "Hospitality", "Institutional"}

var (
	ErrInvalidID       = errors.New("id must be a positive integer")
	ErrDuplicateID     = errors.New("duplicate id")
	ErrEmptySlug       = errors.New("slug is required")
	ErrDuplicateSlug   = errors.New("duplicate slug")
	ErrUnknownCategory = errors.New("unknown category")
)

//go:embed data/projects.yaml
var embeddedProjects []byte

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Load(bytes.NewReader(embeddedProjects))
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded dataset: %v", err))
	}
	return c
})

// Default returns the process-wide catalog built from the embedded dataset.
func Default() *Catalog {
	return defaultCatalog()
}

// Categories returns the enumerated category set, All first.
func Categories() []string {
	return append([]string(nil), categories...)
}

// IsCategory reports whether c is one of the enumerated categories,
// including All. The comparison is case-sensitive.
func IsCategory(c string) bool {
	for _, known := range categories {
		if known == c {
			return true
		}
	}
	return false
}

// Catalog is an immutable, ordered set of projects. The zero value is an
// empty catalog. A Catalog is safe for concurrent use since nothing ever
// writes to it after construction.
type Catalog struct {
	projects []models.Project
}

type document struct {
	seed.Header `yaml:",inline"`
	Projects    []models.Project `yaml:"projects"`
}

// New validates projects and returns a catalog holding private copies of
// them, in the given order.
func New(projects []models.Project) (*Catalog, error) {
	if err := seed.Join(Check(projects)); err != nil {
		return nil, err
	}
	c := &Catalog{projects: make([]models.Project, len(projects))}
	for i, p := range projects {
		c.projects[i] = p.Clone()
	}
	return c, nil
}

// Load decodes a YAML dataset and builds a catalog from it.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	if err := seed.Decode(r, &doc); err != nil {
		return nil, err
	}
	return New(doc.Projects)
}

// LoadFile is Load over the file at path.
func LoadFile(path string) (*Catalog, error) {
	var doc document
	if err := seed.DecodeFile(path, &doc); err != nil {
		return nil, err
	}
	c, err := New(doc.Projects)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Check returns every integrity problem in projects: non-positive or
// repeated ids, empty or repeated slugs, and categories outside the
// enumerated set. Records are numbered from 1.
func Check(projects []models.Project) []seed.Issue {
	var issues []seed.Issue
	ids := make(map[int]int, len(projects))
	slugs := make(map[string]int, len(projects))

	for i, p := range projects {
		n := i + 1
		if p.ID <= 0 {
			issues = append(issues, seed.Issue{Record: n, Field: "id", Message: ErrInvalidID.Error(), Err: ErrInvalidID})
		} else if first, ok := ids[p.ID]; ok {
			issues = append(issues, seed.Issue{Record: n, Field: "id", Message: fmt.Sprintf("%s %d (first used by record %d)", ErrDuplicateID, p.ID, first), Err: ErrDuplicateID})
		} else {
			ids[p.ID] = n
		}

		if p.Slug == "" {
			issues = append(issues, seed.Issue{Record: n, Field: "slug", Message: ErrEmptySlug.Error(), Err: ErrEmptySlug})
		} else if first, ok := slugs[p.Slug]; ok {
			issues = append(issues, seed.Issue{Record: n, Field: "slug", Message: fmt.Sprintf("%s %q (first used by record %d)", ErrDuplicateSlug, p.Slug, first), Err: ErrDuplicateSlug})
		} else {
			slugs[p.Slug] = n
		}

		// All is a filter sentinel, never a record's category.
		if p.Category == All || !IsCategory(p.Category) {
			issues = append(issues, seed.Issue{Record: n, Field: "category", Message: fmt.Sprintf("%s %q", ErrUnknownCategory, p.Category), Err: ErrUnknownCategory})
		}
	}
	return issues
}

// ListOptions narrows a List call. The zero value lists everything.
type ListOptions struct {
	// Category filters by exact match; "" and All disable the filter.
	Category string
	// Limit caps the result after filtering; <= 0 means no cap.
	Limit int
}

// List returns the projects matching opts in insertion order. The result is
// always a fresh slice; an unknown category yields an empty one.
func (c *Catalog) List(opts ListOptions) []models.Project {
	out := []models.Project{}
	for _, p := range c.all() {
		if opts.Category != "" && opts.Category != All && p.Category != opts.Category {
			continue
		}
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
		out = append(out, p.Clone())
	}
	return out
}

// BySlug returns the first project whose slug equals slug. The boolean is
// false when there is none; callers are expected to send the visitor back
// to the listing in that case.
func (c *Catalog) BySlug(slug string) (models.Project, bool) {
	for _, p := range c.all() {
		if p.Slug == slug {
			return p.Clone(), true
		}
	}
	return models.Project{}, false
}

// Related returns up to limit projects in category, excluding the project
// with excludeID, in insertion order. limit <= 0 means DefaultRelatedLimit.
func (c *Catalog) Related(excludeID int, category string, limit int) []models.Project {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	out := []models.Project{}
	for _, p := range c.all() {
		if len(out) == limit {
			break
		}
		if p.ID == excludeID || p.Category != category {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

// Featured returns the projects flagged for the large tile layout.
func (c *Catalog) Featured() []models.Project {
	out := []models.Project{}
	for _, p := range c.all() {
		if p.Featured {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Len reports the number of projects.
func (c *Catalog) Len() int {
	return len(c.all())
}

// Counts returns the number of projects per category, keyed by category,
// with All holding the total.
func (c *Catalog) Counts() map[string]int {
	counts := make(map[string]int, len(categories))
	for _, name := range categories {
		counts[name] = 0
	}
	for _, p := range c.all() {
		counts[p.Category]++
	}
	counts[All] = c.Len()
	return counts
}

func (c *Catalog) all() []models.Project {
	if c == nil {
		return nil
	}
	return c.projects
}
