// Package contact accepts quote requests from the site's contact form.
//
// Accepted inquiries are acknowledged and handed to a Submitter; nothing is
// stored and nothing is sent over the network by this package.
package contact

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	MaxFieldLength   = 200
	MaxMessageLength = 5000

	// AckMessage is shown to the visitor once an inquiry is accepted.
	AckMessage = "We've received your message and will be in touch shortly."
)

// ErrRateLimited is returned when submissions arrive faster than allowed.
var ErrRateLimited = errors.New("too many submissions, try again later")

type Inquiry struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Service string `json:"service,omitempty"`
	Message string `json:"message"`
}

// Receipt acknowledges an accepted inquiry.
type Receipt struct {
	Reference  string    `json:"reference"`
	ReceivedAt time.Time `json:"received_at"`
	Message    string    `json:"message"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid inquiry: " + strings.Join(parts, "; ")
}

// Submitter receives inquiries that passed validation.
type Submitter interface {
	Submit(ctx context.Context, receipt Receipt, in Inquiry) error
}

// LogSubmitter records inquiries in the log and does nothing else.
type LogSubmitter struct {
	Log *zap.Logger
}

func (s LogSubmitter) Submit(_ context.Context, receipt Receipt, in Inquiry) error {
	s.Log.Info("contact inquiry received",
		zap.String("reference", receipt.Reference),
		zap.String("service", in.Service),
		zap.String("company", in.Company),
		zap.Int("message_length", utf8.RuneCountInString(in.Message)),
	)
	return nil
}

// Options configures a Desk. Zero values pick defaults.
type Options struct {
	// Services is the set of accepted values for Inquiry.Service.
	Services []string
	// PerMinute and Burst size the submission token bucket; PerMinute <= 0
	// disables throttling.
	PerMinute int
	Burst     int
	Submitter Submitter
	Now       func() time.Time
	NewID     func() string
}

// Desk validates, throttles and acknowledges inquiries. It is safe for
// concurrent use.
type Desk struct {
	services  map[string]bool
	limiter   *rate.Limiter
	policy    *bluemonday.Policy
	submitter Submitter
	now       func() time.Time
	newID     func() string
}

func NewDesk(opts Options) *Desk {
	d := &Desk{
		services:  make(map[string]bool, len(opts.Services)),
		limiter:   rate.NewLimiter(rate.Inf, 0),
		policy:    bluemonday.StrictPolicy(),
		submitter: opts.Submitter,
		now:       opts.Now,
		newID:     opts.NewID,
	}
	for _, s := range opts.Services {
		d.services[s] = true
	}
	if opts.PerMinute > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		d.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.PerMinute)), burst)
	}
	if d.submitter == nil {
		d.submitter = LogSubmitter{Log: zap.NewNop()}
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.newID == nil {
		d.newID = func() string { return uuid.New().String() }
	}
	return d
}

// Clean strips markup and surrounding whitespace from every field.
func (d *Desk) Clean(in Inquiry) Inquiry {
	return Inquiry{
		Name:    d.plain(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   d.plain(in.Phone),
		Company: d.plain(in.Company),
		Service: d.plain(in.Service),
		Message: d.plain(in.Message),
	}
}

func (d *Desk) plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(d.policy.Sanitize(s)))
}

// Validate checks a cleaned inquiry. It returns a *ValidationError.
func (d *Desk) Validate(in Inquiry) error {
	var fields []FieldError
	add := func(field, msg string) {
		fields = append(fields, FieldError{Field: field, Message: msg})
	}

	if in.Name == "" {
		add("name", "is required")
	} else if utf8.RuneCountInString(in.Name) > MaxFieldLength {
		add("name", fmt.Sprintf("must be at most %d characters", MaxFieldLength))
	}

	if in.Email == "" {
		add("email", "is required")
	} else if !IsValidEmail(in.Email) {
		add("email", "is not a valid email address")
	}

	for _, f := range []struct{ name, value string }{
		{"phone", in.Phone},
		{"company", in.Company},
	} {
		if utf8.RuneCountInString(f.value) > MaxFieldLength {
			add(f.name, fmt.Sprintf("must be at most %d characters", MaxFieldLength))
		}
	}

	if in.Service != "" && !d.services[in.Service] {
		add("service", "is not an offered service")
	}

	if in.Message == "" {
		add("message", "is required")
	} else if utf8.RuneCountInString(in.Message) > MaxMessageLength {
		add("message", fmt.Sprintf("must be at most %d characters", MaxMessageLength))
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Submit cleans and validates in, then acknowledges it.
func (d *Desk) Submit(ctx context.Context, in Inquiry) (Receipt, error) {
	if !d.limiter.Allow() {
		return Receipt{}, ErrRateLimited
	}

	in = d.Clean(in)
	if err := d.Validate(in); err != nil {
		return Receipt{}, err
	}

	receipt := Receipt{
		Reference:  d.newID(),
		ReceivedAt: d.now().UTC(),
		Message:    AckMessage,
	}
	if err := d.submitter.Submit(ctx, receipt, in); err != nil {
		return Receipt{}, fmt.Errorf("submit inquiry: %w", err)
	}
	return receipt, nil
}

// IsValidEmail accepts a bare address (no display name) with a dotted or
// single-label domain.
func IsValidEmail(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}
