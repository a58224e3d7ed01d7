// Package content serves the fixed marketing copy of the site: services,
// testimonials, FAQ, offices and company history.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"standardglass-api/internal/models"
	"standardglass-api/pkg/seed"
)

//go:embed data/site.yaml
var embeddedSite []byte

// Site is the decoded content set. Accessors return copies.
type Site struct {
	seed.Header  `yaml:",inline"`
	Services     []models.Service     `yaml:"services"`
	Testimonials []models.Testimonial `yaml:"testimonials"`
	FAQs         []models.FAQ         `yaml:"faqs"`
	Locations    []models.Location    `yaml:"locations"`
	Milestones   []models.Milestone   `yaml:"milestones"`
	Values       []models.Value       `yaml:"values"`
	Process      []models.ProcessStep `yaml:"process"`
}

var defaultSite = sync.OnceValue(func() *Site {
	s, err := Load(bytes.NewReader(embeddedSite))
	if err != nil {
		panic(fmt.Sprintf("content: embedded dataset: %v", err))
	}
	return s
})

// Default returns the content decoded from the embedded dataset.
func Default() *Site {
	return defaultSite()
}

func Load(r io.Reader) (*Site, error) {
	var s Site
	if err := seed.Decode(r, &s); err != nil {
		return nil, err
	}
	if err := seed.Join(s.check()); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Site) check() []seed.Issue {
	var issues []seed.Issue
	seen := map[string]bool{}
	for i, svc := range s.Services {
		if svc.ID == "" {
			issues = append(issues, seed.Issue{Record: i + 1, Field: "services.id", Message: "id is required"})
			continue
		}
		if seen[svc.ID] {
			issues = append(issues, seed.Issue{Record: i + 1, Field: "services.id", Message: fmt.Sprintf("duplicate id %q", svc.ID)})
		}
		seen[svc.ID] = true
	}
	for i, t := range s.Testimonials {
		if t.Rating < 1 || t.Rating > 5 {
			issues = append(issues, seed.Issue{Record: i + 1, Field: "testimonials.rating", Message: fmt.Sprintf("rating %d out of range 1-5", t.Rating)})
		}
	}
	return issues
}

func (s *Site) ServiceList() []models.Service {
	out := make([]models.Service, len(s.Services))
	for i, svc := range s.Services {
		out[i] = cloneService(svc)
	}
	return out
}

// Service looks up a service by id.
func (s *Site) Service(id string) (models.Service, bool) {
	for _, svc := range s.Services {
		if svc.ID == id {
			return cloneService(svc), true
		}
	}
	return models.Service{}, false
}

// ServiceNames lists the short service titles the contact form offers,
// followed by "Other".
func (s *Site) ServiceNames() []string {
	out := make([]string, 0, len(s.Services)+1)
	for _, svc := range s.Services {
		out = append(out, svc.ShortTitle)
	}
	return append(out, "Other")
}

func (s *Site) TestimonialList() []models.Testimonial {
	return append([]models.Testimonial{}, s.Testimonials...)
}

func (s *Site) FAQList() []models.FAQ {
	return append([]models.FAQ{}, s.FAQs...)
}

func (s *Site) LocationList() []models.Location {
	return append([]models.Location{}, s.Locations...)
}

func (s *Site) MilestoneList() []models.Milestone {
	return append([]models.Milestone{}, s.Milestones...)
}

func (s *Site) ValueList() []models.Value {
	return append([]models.Value{}, s.Values...)
}

func (s *Site) ProcessSteps() []models.ProcessStep {
	return append([]models.ProcessStep{}, s.Process...)
}

func cloneService(svc models.Service) models.Service {
	svc.Features = append([]string(nil), svc.Features...)
	svc.Applications = append([]string(nil), svc.Applications...)
	return svc
}
