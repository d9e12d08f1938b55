package handler

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForCode maps domain error codes to HTTP statuses.
var statusForCode = map[string]int{
	model.ErrCodeUnauthenticated: http.StatusUnauthorized,
	model.ErrCodeConflict:        http.StatusBadRequest,
	model.ErrCodeNotFound:        http.StatusNotFound,
	model.ErrCodeInvalidWebhook:  http.StatusBadRequest,
	model.ErrCodeMissingField:    http.StatusBadRequest,
	model.ErrCodeInvalidQuantity: http.StatusBadRequest,
	model.ErrCodeInvalidPrice:    http.StatusBadRequest,
	model.ErrCodeInvalidAmount:   http.StatusBadRequest,
	model.ErrCodeEmptyOrder:      http.StatusBadRequest,
	model.ErrCodeInvalidPassword: http.StatusBadRequest,
}

// writeError translates err into a status code and an {"error": ...} body.
// Errors that are neither domain nor upstream errors are reported as 500 without detail.
func writeError(c echo.Context, err error, logger zerolog.Logger) error {
	status, message := classify(err)

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Int("status", status).
		Str("path", c.Path()).
		Msg("handler error")

	return c.JSON(status, ErrorResponse{Error: message})
}

func classify(err error) (int, string) {
	var de *model.DomainError
	if errors.As(err, &de) {
		if status, ok := statusForCode[de.Code]; ok {
			return status, de.Message
		}
	}

	var ue *model.UpstreamError
	if errors.As(err, &ue) {
		status := http.StatusBadGateway
		if ue.StatusCode >= 400 && ue.StatusCode <= 599 {
			status = ue.StatusCode
		}
		return status, ue.Error()
	}

	return http.StatusInternalServerError, "internal server error"
}

// badRequest answers a request whose body could not be decoded.
func badRequest(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
}

// principal returns the caller set by the auth middleware.
func principal(c echo.Context) (model.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.UserID == "" {
		return model.Principal{}, model.ErrUnauthenticated
	}
	return p, nil
}
