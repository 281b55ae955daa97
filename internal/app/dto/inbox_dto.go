package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mraditya/flight-journal-service/internal/pkg/exception"
)

// InboxMessage is one forwarded confirmation email. The body is plain
// text (or HTML already stripped by the forwarder); the service never
// speaks IMAP or SMTP itself.
type InboxMessage struct {
	Sender    string     `json:"sender" validate:"required"`
	Subject   string     `json:"subject" validate:"required"`
	Body      string     `json:"body" validate:"required"`
	MessageID string     `json:"message_id"`
	Date      *time.Time `json:"date,omitempty"`
	AccountID string     `json:"email_account_id,omitempty"`
}

func (r *InboxMessage) Bind(_ *http.Request) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (r *InboxMessage) Validate() error {
	if err := ValidateSingleError(r); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

// InboxImportResponse summarises one import run.
type InboxImportResponse struct {
	RuleMatched     string   `json:"rule_matched"`
	FlightsImported int      `json:"flights_imported"`
	FlightsSkipped  int      `json:"flights_skipped"`
	Flights         []Flight `json:"flights"`
}

// ForwardingAddressResponse reports where users should forward their
// airline emails.
type ForwardingAddressResponse struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address,omitempty"`
	Domain  string `json:"domain,omitempty"`
}
