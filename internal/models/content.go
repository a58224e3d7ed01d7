package models

type Service struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	ShortTitle   string   `json:"shortTitle" yaml:"short_title"`
	Tagline      string   `json:"tagline" yaml:"tagline"`
	Description  string   `json:"description" yaml:"description"`
	Features     []string `json:"features" yaml:"features"`
	Applications []string `json:"applications" yaml:"applications"`
}

type Testimonial struct {
	ID      int    `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Role    string `json:"role" yaml:"role"`
	Company string `json:"company" yaml:"company"`
	Content string `json:"content" yaml:"content"`
	Rating  int    `json:"rating" yaml:"rating"`
}

type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

type Location struct {
	City    string `json:"city" yaml:"city"`
	Address string `json:"address" yaml:"address"`
	Phone   string `json:"phone" yaml:"phone"`
	Email   string `json:"email" yaml:"email"`
	Hours   string `json:"hours" yaml:"hours"`
}

// Milestone is one entry of the company timeline.
type Milestone struct {
	Year        string `json:"year" yaml:"year"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type Value struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type ProcessStep struct {
	Step        int    `json:"step" yaml:"step"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}
