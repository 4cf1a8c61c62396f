package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/employee_registry/internal/domain"
	"github.com/Skotchmaster/employee_registry/internal/models"
	pkg_hash "github.com/Skotchmaster/employee_registry/pkg/hash"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *GormRepo) FindUserByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Where("email = ? OR username = ?", normalizeEmail(email), strings.TrimSpace(username)).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// CreateUser hashes password and stores a new user with the default role.
// Fails with domain.ErrDuplicateKey when the email or username is taken.
func (r *GormRepo) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     strings.TrimSpace(username),
		Email:        normalizeEmail(email),
		PasswordHash: pwHash,
		Role:         domain.RoleUser,
	}
	if err := r.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// VerifyPassword compares against the stored hash. A nil user still pays for
// one comparison.
func (r *GormRepo) VerifyPassword(user *models.User, password string) bool {
	if user == nil {
		pkg_hash.BurnCompare(password)
		return false
	}
	return pkg_hash.CheckPassword(user.PasswordHash, password)
}

func (r *GormRepo) SetRole(ctx context.Context, email, role string) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", normalizeEmail(email)).
		Update("role", role)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
