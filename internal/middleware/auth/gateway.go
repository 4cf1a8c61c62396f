package auth

import (
	"context"
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/employee_registry/internal/domain"
	"github.com/Skotchmaster/employee_registry/internal/models"
	"github.com/Skotchmaster/employee_registry/pkg/logging"
	"github.com/Skotchmaster/employee_registry/pkg/tokens"
)

const (
	ctxClaims    = "token_claims"
	ctxPrincipal = "principal"
)

type TokenVerifier interface {
	Verify(token string) (*tokens.Claims, error)
}

type UserLookup interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// Gateway guards protected routes: Authenticate verifies the bearer token
// and loads the caller, RequireRole checks the loaded caller's role.
type Gateway struct {
	Tokens TokenVerifier
	Users  UserLookup
}

func NewGateway(tokens TokenVerifier, users UserLookup) *Gateway {
	return &Gateway{Tokens: tokens, Users: users}
}

func unauthenticated(msg string, err error) *echo.HTTPError {
	he := echo.NewHTTPError(http.StatusUnauthorized, msg)
	if err != nil {
		he = he.SetInternal(errors.Join(domain.ErrUnauthenticated, err))
	} else {
		he = he.SetInternal(domain.ErrUnauthenticated)
	}
	return he
}

func (g *Gateway) verifyToken() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ",
		ContextKey:  ctxClaims,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return g.Tokens.Verify(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "auth.verify_token")
			if errors.Is(err, tokens.ErrExpiredToken) {
				l.Warn("authenticate_failed", "status", 401, "reason", "token expired")
				return unauthenticated("token expired", err)
			}
			l.Warn("authenticate_failed", "status", 401, "reason", "missing or invalid token", "error", err)
			return unauthenticated("missing or invalid token", err)
		},
	})
}

func (g *Gateway) loadPrincipal(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "auth.load_principal")

		claims, ok := c.Get(ctxClaims).(*tokens.Claims)
		if !ok || claims == nil {
			return unauthenticated("missing or invalid token", nil)
		}

		user, err := g.Users.FindUserByID(ctx, claims.UserID())
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				l.Warn("authenticate_failed", "status", 401, "reason", "user no longer exists", "user_id", claims.UserID())
				return unauthenticated("user not found", err)
			}
			l.Error("authenticate_failed", "status", 500, "reason", "cannot load user", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot load user").SetInternal(err)
		}

		c.Set(ctxPrincipal, &domain.Principal{UserID: user.ID, Username: user.Username, Role: user.Role})
		req := c.Request().WithContext(logging.IntoContext(ctx, logging.FromContext(ctx).With("user_id", user.ID)))
		c.SetRequest(req)
		return next(c)
	}
}

// Authenticate rejects the request with 401 unless it carries a valid,
// unexpired bearer token for an existing user.
func (g *Gateway) Authenticate() echo.MiddlewareFunc {
	verify := g.verifyToken()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(g.loadPrincipal(next))
	}
}

// RequireRole must run after Authenticate.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return unauthenticated("missing or invalid token", nil)
			}
			if !p.HasRole(role) {
				logging.FromContext(c.Request().Context()).Warn("authorize_failed",
					"status", 403, "reason", "role "+role+" required", "role", p.Role)
				return echo.NewHTTPError(http.StatusForbidden, role+" access required").SetInternal(domain.ErrForbidden)
			}
			return next(c)
		}
	}
}

func RequireAdmin() echo.MiddlewareFunc { return RequireRole(domain.RoleAdmin) }

func PrincipalFrom(c echo.Context) (*domain.Principal, bool) {
	p, ok := c.Get(ctxPrincipal).(*domain.Principal)
	return p, ok && p != nil
}
