package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/employee_registry/internal/domain"
	"github.com/Skotchmaster/employee_registry/internal/models"
	pkgdb "github.com/Skotchmaster/employee_registry/pkg/db"
)

const newestFirst = "created_at DESC, id DESC"

var searchColumns = []string{"first_name", "last_name", "email", "department", "position"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}

func searchWhere(db *gorm.DB) string {
	conds := make([]string, 0, len(searchColumns))
	for _, col := range searchColumns {
		conds = append(conds, pkgdb.LowerExpr(db, col)+" LIKE ? ESCAPE '\\'")
	}
	return strings.Join(conds, " OR ")
}

func (r *GormRepo) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	items := make([]models.Employee, 0)
	if err := r.DB.WithContext(ctx).Order(newestFirst).Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

// SearchEmployees does a case-insensitive substring match over the searchable
// columns. A blank query lists everything.
func (r *GormRepo) SearchEmployees(ctx context.Context, query string) ([]models.Employee, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.ListEmployees(ctx)
	}

	pattern := likePattern(query)
	args := make([]any, len(searchColumns))
	for i := range args {
		args[i] = pattern
	}

	items := make([]models.Employee, 0)
	if err := r.DB.WithContext(ctx).
		Where(searchWhere(r.DB), args...).
		Order(newestFirst).
		Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (r *GormRepo) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	var emp models.Employee
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&emp).Error; err != nil {
		return nil, translate(err)
	}
	return &emp, nil
}

func (r *GormRepo) CreateEmployee(ctx context.Context, emp *models.Employee) (*models.Employee, error) {
	if err := r.DB.WithContext(ctx).Create(emp).Error; err != nil {
		return nil, translate(err)
	}
	return emp, nil
}

// UpdateEmployee replaces every mutable field of the stored record with the
// values in next. id, createdAt are kept.
func (r *GormRepo) UpdateEmployee(ctx context.Context, id string, next *models.Employee) (*models.Employee, error) {
	var emp models.Employee
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&emp).Error; err != nil {
			return err
		}

		emp.FirstName = next.FirstName
		emp.LastName = next.LastName
		emp.Email = next.Email
		emp.Phone = next.Phone
		emp.EmployeeType = next.EmployeeType
		emp.Department = next.Department
		emp.Position = next.Position
		emp.ProfilePicURL = next.ProfilePicURL
		emp.JoiningDate = next.JoiningDate
		emp.Salary = next.Salary
		emp.Status = next.Status

		return tx.Save(&emp).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &emp, nil
}

func (r *GormRepo) DeleteEmployee(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Employee{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
