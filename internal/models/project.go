package models

import "strings"

// ProjectStats holds the headline figures shown on a project page.
// Values are free text ("15,000", "8 months", "12 total").
type ProjectStats struct {
	SqFt     string `json:"sqft" yaml:"sqft"`
	Duration string `json:"duration" yaml:"duration"`
	Floors   string `json:"floors" yaml:"floors"`
}

type Project struct {
	ID              int          `json:"id" yaml:"id"`
	Slug            string       `json:"slug" yaml:"slug"`
	Title           string       `json:"title" yaml:"title"`
	Location        string       `json:"location" yaml:"location"`
	Category        string       `json:"category" yaml:"category"`
	Year            string       `json:"year" yaml:"year"`
	Description     string       `json:"description" yaml:"description"`
	FullDescription string       `json:"fullDescription" yaml:"full_description"`
	Image           string       `json:"image" yaml:"image"`
	Features        []string     `json:"features" yaml:"features"`
	Stats           ProjectStats `json:"stats" yaml:"stats"`
	Featured        bool         `json:"featured" yaml:"featured"`
}

// Path is the routable location of the project on the site.
func (p Project) Path() string {
	return "/projects/" + p.Slug
}

// Paragraphs splits FullDescription on blank lines.
func (p Project) Paragraphs() []string {
	parts := strings.Split(strings.ReplaceAll(p.FullDescription, "\r\n", "\n"), "\n\n")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a copy that shares no mutable state with p.
func (p Project) Clone() Project {
	if p.Features != nil {
		p.Features = append([]string(nil), p.Features...)
	}
	return p
}
