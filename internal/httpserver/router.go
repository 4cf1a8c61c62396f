package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/employee_registry/internal/middleware/auth"
	"github.com/Skotchmaster/employee_registry/pkg/logging"
)

type Deps struct {
	AuthHandler     *AuthHTTP
	EmployeeHandler *EmployeeHTTP
	Gateway         *auth.Gateway
	// Ready reports whether the backing store is reachable. Nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		if err := d.Ready(c.Request().Context()); err != nil {
			logging.FromContext(c.Request().Context()).Error("ready_check_failed", "status", 503, "error", err)
			return echo.NewHTTPError(http.StatusServiceUnavailable, "store unavailable").SetInternal(err)
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", d.AuthHandler.Register)
	authGroup.POST("/login", d.AuthHandler.Login)

	employees := api.Group("/employees", d.Gateway.Authenticate())
	employees.GET("", d.EmployeeHandler.GetEmployees)
	employees.GET("/search", d.EmployeeHandler.SearchEmployees)
	employees.GET("/:id", d.EmployeeHandler.GetEmployee)

	admin := employees.Group("", auth.RequireAdmin())
	admin.POST("", d.EmployeeHandler.CreateEmployee)
	admin.PUT("/:id", d.EmployeeHandler.UpdateEmployee)
	admin.DELETE("/:id", d.EmployeeHandler.DeleteEmployee)
}
