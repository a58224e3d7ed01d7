package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"standardglass-api/internal/contact"
)

// Recorder receives the outcome of each submission: accepted, invalid,
// rate_limited or error.
type Recorder interface {
	ContactSubmission(outcome string)
}

// ContactHandler handles quote requests from the contact form
type ContactHandler struct {
	Desk     *contact.Desk
	Log      *zap.Logger
	Recorder Recorder
	MaxBytes int64
}

// NewContactHandler creates a new contact handler
func NewContactHandler(desk *contact.Desk, logger *zap.Logger, rec Recorder) *ContactHandler {
	return &ContactHandler{
		Desk:     desk,
		Log:      logger,
		Recorder: rec,
		MaxBytes: 64 << 10, // 64 KB
	}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)

	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		writeJSON(w, http.StatusUnsupportedMediaType, map[string]any{
			"error": "content-type must be application/json",
			"code":  "UNSUPPORTED_MEDIA_TYPE",
		})
		return
	}

	var in contact.Inquiry
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{
				"error": "request body too large",
				"code":  "BODY_TOO_LARGE",
			})
			return
		}
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		h.record("invalid")
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid JSON",
			"code":    "INVALID_JSON",
			"details": err.Error(),
		})
		return
	}

	receipt, err := h.Desk.Submit(r.Context(), in)
	if err != nil {
		var verr *contact.ValidationError
		switch {
		case errors.As(err, &verr):
			h.record("invalid")
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "VALIDATION_FAILED",
				"fields": verr.Fields,
			})
		case errors.Is(err, contact.ErrRateLimited):
			h.record("rate_limited")
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error": err.Error(),
				"code":  "RATE_LIMITED",
			})
		default:
			h.record("error")
			h.Log.Error("contact submission failed",
				zap.Error(err),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error": "could not accept inquiry",
				"code":  "SUBMIT_FAILED",
			})
		}
		return
	}

	h.record("accepted")
	writeJSON(w, http.StatusCreated, map[string]any{
		"data": receipt,
		"meta": map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (h *ContactHandler) record(outcome string) {
	if h.Recorder != nil {
		h.Recorder.ContactSubmission(outcome)
	}
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
