package transport

import (
	"time"

	"github.com/Skotchmaster/employee_registry/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func NewUserView(u *models.User) UserView {
	return UserView{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

type AuthResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserView  `json:"user"`
}

// EmployeeRequest is the body of both create and full-replace update.
type EmployeeRequest struct {
	FirstName     string  `json:"firstName"     validate:"required"`
	LastName      string  `json:"lastName"      validate:"required"`
	Email         string  `json:"email"         validate:"required,email"`
	Phone         string  `json:"phone"         validate:"required"`
	EmployeeType  string  `json:"employeeType"  validate:"required,oneof=Full-time Part-time Contract Intern"`
	Department    string  `json:"department"    validate:"required"`
	Position      string  `json:"position"      validate:"required"`
	ProfilePicURL string  `json:"profilePicUrl" validate:"omitempty,max=2048"`
	JoiningDate   string  `json:"joiningDate"   validate:"required"`
	Salary        float64 `json:"salary"        validate:"gt=0"`
	Status        string  `json:"status"        validate:"required,oneof=Active Inactive"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
