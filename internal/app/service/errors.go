package service

import (
	"net/http"

	"github.com/mraditya/flight-journal-service/internal/pkg/exception"
)

var ErrFlightNotFound = exception.ApplicationError{
	Message:    "flight not found",
	StatusCode: http.StatusNotFound,
}

var ErrGroupNotFound = exception.ApplicationError{
	Message:    "flight group not found",
	StatusCode: http.StatusNotFound,
}

var ErrEmailAccountNotFound = exception.ApplicationError{
	Message:    "email account not found",
	StatusCode: http.StatusNotFound,
}

var ErrEmailAddressTaken = exception.ApplicationError{
	Message:    "an account with this email address already exists",
	StatusCode: http.StatusConflict,
}

var ErrAirlineRuleNotFound = exception.ApplicationError{
	Message:    "airline rule not found",
	StatusCode: http.StatusNotFound,
}

var ErrBuiltinRuleImmutable = exception.ApplicationError{
	Message:    "builtin airline rules cannot be modified or deleted",
	StatusCode: http.StatusForbidden,
}

var ErrNoRuleMatched = exception.ApplicationError{
	Message:    "no airline rule matched the message",
	StatusCode: http.StatusUnprocessableEntity,
}
