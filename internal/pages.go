package internal

import (
	"net/http"

	"standardglass-api/internal/catalog"
	"standardglass-api/internal/models"

	"github.com/go-chi/chi/v5"
)

// homeProjectCount is the size of the abbreviated project grid on the home page.
const homeProjectCount = 4

type homePage struct {
	Projects     []models.Project     `json:"projects"`
	Featured     []models.Project     `json:"featured"`
	Services     []models.Service     `json:"services"`
	Testimonials []models.Testimonial `json:"testimonials"`
	Process      []models.ProcessStep `json:"process"`
}

type aboutPage struct {
	Values     []models.Value       `json:"values"`
	Milestones []models.Milestone   `json:"milestones"`
	Process    []models.ProcessStep `json:"process"`
}

type contactPage struct {
	Services  []string          `json:"services"`
	Locations []models.Location `json:"locations"`
}

func (s *Server) getHome(w http.ResponseWriter, _ *http.Request) {
	writeData(w, homePage{
		Projects:     s.Catalog.List(catalog.ListOptions{Limit: homeProjectCount}),
		Featured:     s.Catalog.Featured(),
		Services:     s.Content.ServiceList(),
		Testimonials: s.Content.TestimonialList(),
		Process:      s.Content.ProcessSteps(),
	}, nil)
}

func (s *Server) listServices(w http.ResponseWriter, _ *http.Request) {
	writeData(w, s.Content.ServiceList(), nil)
}

func (s *Server) getService(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.Content.Service(chi.URLParam(r, "id"))
	if !ok {
		sendErrorResponse(w, "Service not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeData(w, svc, nil)
}

func (s *Server) listTestimonials(w http.ResponseWriter, _ *http.Request) {
	writeData(w, s.Content.TestimonialList(), nil)
}

func (s *Server) listFAQs(w http.ResponseWriter, _ *http.Request) {
	writeData(w, s.Content.FAQList(), nil)
}

func (s *Server) getAbout(w http.ResponseWriter, _ *http.Request) {
	writeData(w, aboutPage{
		Values:     s.Content.ValueList(),
		Milestones: s.Content.MilestoneList(),
		Process:    s.Content.ProcessSteps(),
	}, nil)
}

func (s *Server) listLocations(w http.ResponseWriter, _ *http.Request) {
	writeData(w, s.Content.LocationList(), nil)
}

func (s *Server) getContactPage(w http.ResponseWriter, _ *http.Request) {
	writeData(w, contactPage{
		Services:  s.Content.ServiceNames(),
		Locations: s.Content.LocationList(),
	}, nil)
}
