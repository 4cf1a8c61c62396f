package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

var EmployeeTypes = []string{"Full-time", "Part-time", "Contract", "Intern"}

type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"        json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"        json:"email"`
	PasswordHash string    `gorm:"not null"                    json:"-"`
	Role         string    `gorm:"not null;default:user"       json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Employee struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	FirstName     string    `gorm:"not null"                    json:"firstName"`
	LastName      string    `gorm:"not null"                    json:"lastName"`
	Email         string    `gorm:"uniqueIndex;not null"        json:"email"`
	Phone         string    `gorm:"not null"                    json:"phone"`
	EmployeeType  string    `gorm:"not null"                    json:"employeeType"`
	Department    string    `gorm:"not null"                    json:"department"`
	Position      string    `gorm:"not null"                    json:"position"`
	ProfilePicURL string    `gorm:"not null"                    json:"profilePicUrl"`
	JoiningDate   time.Time `gorm:"not null"                    json:"joiningDate"`
	Salary        float64   `gorm:"not null"                    json:"salary"`
	Status        string    `gorm:"not null;default:Active"     json:"status"`
	CreatedAt     time.Time `gorm:"index"                       json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (e *Employee) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Employee{})
}
