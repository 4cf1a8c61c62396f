package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/employee_registry/internal/domain"
	"github.com/Skotchmaster/employee_registry/internal/models"
	"github.com/Skotchmaster/employee_registry/internal/transport"
)

const dateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

// validateStruct runs the struct tags and returns the structured field list,
// or nil when everything passes.
func validateStruct(s any) []domain.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldError{{Field: "body", Message: err.Error()}}
	}
	out := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

// ParseJoiningDate accepts a calendar date or an RFC3339 timestamp and
// normalizes it to midnight UTC of that calendar day.
func ParseJoiningDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("joiningDate %q: expected YYYY-MM-DD or RFC3339", s)
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func normalizeEmployee(req transport.EmployeeRequest) transport.EmployeeRequest {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.EmployeeType = strings.TrimSpace(req.EmployeeType)
	req.Department = strings.TrimSpace(req.Department)
	req.Position = strings.TrimSpace(req.Position)
	req.ProfilePicURL = strings.TrimSpace(req.ProfilePicURL)
	req.JoiningDate = strings.TrimSpace(req.JoiningDate)
	req.Status = strings.TrimSpace(req.Status)
	if req.Status == "" {
		req.Status = models.StatusActive
	}
	return req
}

// ValidateEmployee normalizes req and checks required fields, enums and the
// joining date. It returns the record to persist or a *domain.ValidationError.
func ValidateEmployee(req transport.EmployeeRequest) (*models.Employee, error) {
	req = normalizeEmployee(req)

	fields := validateStruct(req)
	var joining time.Time
	if req.JoiningDate != "" {
		t, err := ParseJoiningDate(req.JoiningDate)
		if err != nil {
			fields = append(fields, domain.FieldError{Field: "joiningDate", Message: "must be a date (YYYY-MM-DD) or an RFC3339 timestamp"})
		}
		joining = t
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	return &models.Employee{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		EmployeeType:  req.EmployeeType,
		Department:    req.Department,
		Position:      req.Position,
		ProfilePicURL: req.ProfilePicURL,
		JoiningDate:   joining,
		Salary:        req.Salary,
		Status:        req.Status,
	}, nil
}

func normalizeRegister(req transport.RegisterRequest) transport.RegisterRequest {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	return req
}

func ValidateRegister(req transport.RegisterRequest) (transport.RegisterRequest, error) {
	req = normalizeRegister(req)
	if fields := validateStruct(req); len(fields) > 0 {
		return req, &domain.ValidationError{Fields: fields}
	}
	return req, nil
}
