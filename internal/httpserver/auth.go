package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/employee_registry/internal/service"
	"github.com/Skotchmaster/employee_registry/internal/transport"
	"github.com/Skotchmaster/employee_registry/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func authResponse(msg string, res *service.AuthResult) transport.AuthResponse {
	return transport.AuthResponse{
		Message:   msg,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      transport.NewUserView(res.User),
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Register(ctx, req)
	if err != nil {
		m := messages{duplicate: "Email or username already exists", internal: "cannot register user"}
		if errors.Is(err, service.ErrUserExists) {
			m.duplicate = "User already exists"
		}
		return fail(l, "register_failed", err, m)
	}

	return c.JSON(http.StatusCreated, authResponse("User registered successfully", res))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return fail(l, "login_failed", err, messages{internal: "cannot log in"})
	}

	return c.JSON(http.StatusOK, authResponse("Login successful", res))
}
