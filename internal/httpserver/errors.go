package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/employee_registry/internal/domain"
)

type errorBody struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// messages carries the resource specific wording for failures a handler can hit.
type messages struct {
	notFound  string
	duplicate string
	internal  string
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrDuplicateKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err under event and converts it into the HTTP error the client sees.
func fail(l *slog.Logger, event string, err error, m messages) *echo.HTTPError {
	status := statusOf(err)

	var msg string
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		msg = "Invalid credentials"
	case errors.Is(err, domain.ErrValidation):
		msg = "validation failed"
	case errors.Is(err, domain.ErrNotFound):
		msg = m.notFound
	case errors.Is(err, domain.ErrDuplicateKey):
		msg = m.duplicate
	case status == http.StatusUnauthorized:
		msg = "unauthenticated"
	case status == http.StatusForbidden:
		msg = "forbidden"
	default:
		msg = m.internal
	}

	if status >= 500 {
		l.Error(event, "status", status, "reason", msg, "error", err)
	} else {
		l.Warn(event, "status", status, "reason", msg, "error", err)
	}
	return echo.NewHTTPError(status, msg).SetInternal(err)
}

// ErrorHandler renders every error as {"error": message}, adding the offending
// fields when the cause is a *domain.ValidationError.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	body := errorBody{}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		body.Error = messageOf(he)
		if he.Internal != nil {
			err = he.Internal
		}
	} else {
		he = echo.NewHTTPError(statusOf(err), http.StatusText(statusOf(err)))
		body.Error = he.Message.(string)
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(he.Code)
		return
	}
	_ = c.JSON(he.Code, body)
}

func messageOf(he *echo.HTTPError) string {
	switch m := he.Message.(type) {
	case string:
		return m
	case error:
		return m.Error()
	case nil:
		return http.StatusText(he.Code)
	default:
		return fmt.Sprint(m)
	}
}
