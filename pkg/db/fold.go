package db

import (
	"database/sql/driver"
	"strings"

	gosqlite "github.com/glebarez/go-sqlite"
	"gorm.io/gorm"
)

// sqliteLowerFunc is a Unicode-aware lower(). SQLite's builtin lower() only
// folds ASCII letters.
const sqliteLowerFunc = "unicode_lower"

func init() {
	gosqlite.MustRegisterDeterministicScalarFunction(sqliteLowerFunc, 1, func(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case nil:
			return nil, nil
		case string:
			return strings.ToLower(v), nil
		case []byte:
			return strings.ToLower(string(v)), nil
		default:
			return v, nil
		}
	})
}

// LowerExpr returns an SQL expression folding col to lower case the same way
// strings.ToLower does, for the dialect db is connected with.
func LowerExpr(db *gorm.DB, col string) string {
	if db.Dialector.Name() == DriverSQLite {
		return sqliteLowerFunc + "(" + col + ")"
	}
	return "LOWER(" + col + ")"
}
