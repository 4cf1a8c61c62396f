package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/employee_registry/internal/service"
	"github.com/Skotchmaster/employee_registry/internal/transport"
	"github.com/Skotchmaster/employee_registry/pkg/logging"
)

var employeeMessages = messages{
	notFound:  "Employee not found",
	duplicate: "Employee with this email already exists",
	internal:  "cannot access employees",
}

type EmployeeHTTP struct {
	Svc *service.EmployeeService
}

// employeeID returns the :id path param, or false when it cannot name any
// stored employee.
func employeeID(c echo.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func (h *EmployeeHTTP) GetEmployees(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "employee.get_employees")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "get_employees_failed", err, employeeMessages)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *EmployeeHTTP) SearchEmployees(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "employee.search_employees")

	items, err := h.Svc.Search(ctx, c.QueryParam("query"))
	if err != nil {
		return fail(l, "search_employees_failed", err, employeeMessages)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *EmployeeHTTP) GetEmployee(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "employee.get_employee")

	id, ok := employeeID(c)
	if !ok {
		l.Warn("get_employee_failed", "status", 404, "reason", "id is not a uuid", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, employeeMessages.notFound)
	}

	emp, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_employee_failed", err, employeeMessages)
	}
	return c.JSON(http.StatusOK, emp)
}

func (h *EmployeeHTTP) CreateEmployee(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "employee.create_employee")

	var req transport.EmployeeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_employee_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	emp, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_employee_failed", err, employeeMessages)
	}

	l.Info("create_employee_success", "employee_id", emp.ID)
	return c.JSON(http.StatusCreated, emp)
}

func (h *EmployeeHTTP) UpdateEmployee(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "employee.update_employee")

	id, ok := employeeID(c)
	if !ok {
		l.Warn("update_employee_failed", "status", 404, "reason", "id is not a uuid", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, employeeMessages.notFound)
	}

	var req transport.EmployeeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_employee_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	emp, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_employee_failed", err, employeeMessages)
	}

	l.Info("update_employee_success", "employee_id", emp.ID)
	return c.JSON(http.StatusOK, emp)
}

func (h *EmployeeHTTP) DeleteEmployee(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "employee.delete_employee")

	id, ok := employeeID(c)
	if !ok {
		l.Warn("delete_employee_failed", "status", 404, "reason", "id is not a uuid", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusNotFound, employeeMessages.notFound)
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_employee_failed", err, employeeMessages)
	}

	l.Info("delete_employee_success", "employee_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Employee deleted successfully"})
}
