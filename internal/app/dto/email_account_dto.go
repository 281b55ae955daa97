package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mraditya/flight-journal-service/internal/pkg/exception"
)

// EmailAccount is a connected mailbox that imported flights are
// attributed to. The service never opens a mail connection itself;
// messages arrive through the inbox import endpoint.
type EmailAccount struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	EmailAddress string     `json:"email_address"`
	Provider     string     `json:"provider"`
	IMAPHost     string     `json:"imap_host"`
	IMAPPort     int        `json:"imap_port"`
	IMAPUsername string     `json:"imap_username"`
	UseSSL       bool       `json:"use_ssl"`
	Active       bool       `json:"is_active"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	FlightCount  int        `json:"flight_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// EmailAccountRequest is the write payload. The password is accepted on
// write and never echoed back.
type EmailAccountRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	EmailAddress string `json:"email_address" validate:"required,email"`
	Provider     string `json:"provider" validate:"required,oneof=gmail outlook imap"`
	IMAPHost     string `json:"imap_host"`
	IMAPPort     int    `json:"imap_port" validate:"omitempty,min=1,max=65535"`
	IMAPUsername string `json:"imap_username"`
	IMAPPassword string `json:"imap_password"`
	UseSSL       *bool  `json:"use_ssl,omitempty"`
	Active       *bool  `json:"is_active,omitempty"`
}

func (r *EmailAccountRequest) Bind(_ *http.Request) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (r *EmailAccountRequest) Validate() error {
	if err := ValidateSingleError(r); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	// Known providers get their IMAP host forced; generic imap must say.
	if r.Provider == "imap" && r.IMAPHost == "" {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "imap_host is required for the generic imap provider",
		}
	}

	return nil
}

type EmailAccountListResponse struct {
	Accounts []EmailAccount `json:"accounts"`
	Total    int            `json:"total"`
}
