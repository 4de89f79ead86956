package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gondwana/booking-rates-service/internal/app/dto"
	"github.com/gondwana/booking-rates-service/internal/pkg/exception"
)

// ResponseWithBody is the common method to encode all response types to the client.
func ResponseWithBody(_ context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("encode response body: %w", err)
	}

	return nil
}

func NoContentResponse(_ context.Context, w http.ResponseWriter, _ interface{}) error {
	w.WriteHeader(http.StatusNoContent)

	return nil
}

// ErrorResponse encodes the failure envelope. Application errors keep their
// status code and validation details; anything else is a 500 and logged.
func ErrorResponse(ctx context.Context, err error, respWriter http.ResponseWriter) {
	response := dto.ErrorResponse{
		Error:   "Processing Error",
		Message: err.Error(),
	}
	statusCode := http.StatusInternalServerError

	var appErr exception.ApplicationError
	if errors.As(err, &appErr) {
		statusCode = appErr.StatusCode
		response.Error = appErr.Message
		response.Message = appErr.Description()
		response.Details = appErr.Details
	} else {
		slog.ErrorContext(ctx, response.Message, slog.Any("error", err))
	}

	respWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	respWriter.WriteHeader(statusCode)

	//nolint:errcheck,errchkjson
	json.NewEncoder(respWriter).Encode(response)
}
