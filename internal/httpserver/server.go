package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	loggingmw "github.com/Skotchmaster/employee_registry/pkg/middleware/logging"
)

const bodyLimit = "1M"

// New builds the echo instance with the shared middleware chain and routes.
// An empty corsOrigins allows any origin.
func New(logger *slog.Logger, corsOrigins []string, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomw.Secure())
	e.Use(echomw.BodyLimit(bodyLimit))

	Register(e, d)
	return e
}
