package repo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Skotchmaster/employee_registry/internal/domain"
)

const pgUniqueViolation = "23505"

type GormRepo struct {
	DB *gorm.DB
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translate maps gorm and driver errors onto the domain taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %w", domain.ErrDuplicateKey, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
}
