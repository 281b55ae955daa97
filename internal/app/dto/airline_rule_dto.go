package dto

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/mraditya/flight-journal-service/internal/pkg/exception"
)

// AirlineRule is a regex-based parsing rule for one airline's
// confirmation emails. Builtin rules ship in code; custom rules are
// stored and may not shadow builtin IDs.
type AirlineRule struct {
	ID             uuid.UUID `json:"id"`
	AirlineName    string    `json:"airline_name"`
	AirlineCode    string    `json:"airline_code"`
	SenderPattern  string    `json:"sender_pattern"`
	SubjectPattern string    `json:"subject_pattern"`
	BodyPattern    string    `json:"body_pattern"`
	DateLayout     string    `json:"date_layout"`
	TimeLayout     string    `json:"time_layout"`
	Active         bool      `json:"is_active"`
	Builtin        bool      `json:"is_builtin"`
	Priority       int       `json:"priority"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AirlineRuleRequest is the write payload for custom rules.
type AirlineRuleRequest struct {
	AirlineName    string `json:"airline_name" validate:"required,max=255"`
	AirlineCode    string `json:"airline_code" validate:"omitempty,max=10"`
	SenderPattern  string `json:"sender_pattern" validate:"required"`
	SubjectPattern string `json:"subject_pattern"`
	BodyPattern    string `json:"body_pattern" validate:"required"`
	DateLayout     string `json:"date_layout"`
	TimeLayout     string `json:"time_layout"`
	Active         *bool  `json:"is_active,omitempty"`
	Priority       int    `json:"priority"`
}

func (r *AirlineRuleRequest) Bind(_ *http.Request) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (r *AirlineRuleRequest) Validate() error {
	if err := ValidateSingleError(r); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	// Reject rules whose patterns would fail at match time.
	for name, pattern := range map[string]string{
		"sender_pattern":  r.SenderPattern,
		"subject_pattern": r.SubjectPattern,
		"body_pattern":    r.BodyPattern,
	} {
		if pattern == "" {
			continue
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return exception.ApplicationError{
				StatusCode: http.StatusBadRequest,
				Message:    fmt.Sprintf("invalid regex in %s: %s", name, err),
			}
		}
	}

	return nil
}

type AirlineRuleListResponse struct {
	Rules []AirlineRule `json:"rules"`
	Total int           `json:"total"`
}
