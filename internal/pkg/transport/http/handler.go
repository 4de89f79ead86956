package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
	"github.com/gondwana/booking-rates-service/internal/pkg/exception"
)

type DecodeRequestFunc func(r *http.Request) (interface{}, error)

type EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

// MakeHandlerFunc adapts a go-kit endpoint to an http.HandlerFunc with the
// given request decoder and response encoder.
func MakeHandlerFunc(ep endpoint.Endpoint, dec DecodeRequestFunc, enc EncodeResponseFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		req, err := dec(r)
		if err != nil {
			ErrorResponse(ctx, err, w)

			return
		}

		response, err := ep(ctx, req)
		if err != nil {
			ErrorResponse(ctx, err, w)

			return
		}

		if err := enc(ctx, w, response); err != nil {
			ErrorResponse(ctx, err, w)
		}
	}
}

// DecodeRequest decodes the JSON body into T. When *T implements
// render.Binder the decoded value is validated through Bind; a body that is
// not valid JSON maps to a 400 rather than an internal error.
func DecodeRequest[T any](r *http.Request) (interface{}, error) {
	req := new(T)

	binder, ok := interface{}(req).(render.Binder)
	if !ok {
		if err := render.DecodeJSON(r.Body, req); err != nil {
			return nil, invalidJSON(err)
		}

		return req, nil
	}

	if err := render.Bind(r, binder); err != nil {
		var appErr exception.ApplicationError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, invalidJSON(err)
	}

	return req, nil
}

func invalidJSON(cause error) error {
	return exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Message:    "Invalid JSON",
		Detail:     "Request body must be valid JSON",
		Cause:      cause,
	}
}
