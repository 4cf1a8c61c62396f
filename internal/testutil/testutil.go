// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/employee_registry/internal/models"
	pkgdb "github.com/Skotchmaster/employee_registry/pkg/db"
)

const JWTSecret = "test-jwt-secret"

// OpenDB opens a private in-memory SQLite database with migrations applied.
// It is closed via t.Cleanup.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := pkgdb.Open(context.Background(), pkgdb.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() { _ = pkgdb.Close(db) })
	return db
}
