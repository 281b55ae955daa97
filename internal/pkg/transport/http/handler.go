package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
	"github.com/google/uuid"

	"github.com/mraditya/flight-journal-service/internal/pkg/exception"
)

// DecodeRequestFunc extracts the endpoint request from the HTTP request.
type DecodeRequestFunc func(ctx context.Context, r *http.Request) (interface{}, error)

// EncodeResponseFunc writes the endpoint response to the client.
type EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

// MakeHandlerFunc adapts a go-kit endpoint to an http.HandlerFunc.
// Decode errors without an application status are reported as bad
// requests; endpoint errors go through ErrorResponse as-is.
func MakeHandlerFunc(e endpoint.Endpoint, dec DecodeRequestFunc, enc EncodeResponseFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		request, err := dec(ctx, r)
		if err != nil {
			var appErr exception.ApplicationError
			if !errors.As(err, &appErr) {
				err = exception.ApplicationError{
					StatusCode: http.StatusBadRequest,
					Message:    err.Error(),
				}
			}

			ErrorResponse(ctx, err, w)

			return
		}

		response, err := e(ctx, request)
		if err != nil {
			ErrorResponse(ctx, err, w)

			return
		}

		if err := enc(ctx, w, response); err != nil {
			ErrorResponse(ctx, err, w)
		}
	}
}

// DecodeRequest decodes a JSON body into T and runs its Bind validation.
func DecodeRequest[T any](_ context.Context, r *http.Request) (interface{}, error) {
	req := new(T)

	binder, ok := any(req).(render.Binder)
	if !ok {
		return nil, errors.New("request type does not implement render.Binder")
	}

	if err := render.Bind(r, binder); err != nil {
		return nil, err
	}

	return req, nil
}

// IDRequest carries the resource UUID from the URL path.
type IDRequest struct {
	ID uuid.UUID
}

// IDWithBody carries both the resource UUID and a decoded JSON body.
type IDWithBody[T any] struct {
	ID   uuid.UUID
	Body *T
}

// DecodeIDRequest extracts the {id} path parameter.
func DecodeIDRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := decodePathID(r)
	if err != nil {
		return nil, err
	}

	return &IDRequest{ID: id}, nil
}

// DecodeIDWithBody extracts the {id} path parameter and decodes the
// JSON body into T.
func DecodeIDWithBody[T any](ctx context.Context, r *http.Request) (interface{}, error) {
	id, err := decodePathID(r)
	if err != nil {
		return nil, err
	}

	body, err := DecodeRequest[T](ctx, r)
	if err != nil {
		return nil, err
	}

	req, ok := body.(*T)
	if !ok {
		return nil, errors.New("invalid decoded request type")
	}

	return &IDWithBody[T]{ID: id, Body: req}, nil
}

// NopRequestDecoder is for endpoints that take no request data.
func NopRequestDecoder(_ context.Context, _ *http.Request) (interface{}, error) {
	return nil, nil
}

func decodePathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "invalid id in path",
		}
	}

	return id, nil
}
