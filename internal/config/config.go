package config

import (
	"fmt"
	"os"
	"strings"

	pkgcfg "github.com/Skotchmaster/employee_registry/pkg/config"
	pkgdb "github.com/Skotchmaster/employee_registry/pkg/db"
)

type Config struct {
	ServiceName  string
	HTTPAddr     string
	DBDriver     string
	DatabaseURL  string
	JWTSecret    []byte
	KafkaBrokers []string
	LogLevel     string
	CORSOrigins  []string
}

// Load reads the process environment. It fails when a required variable is
// missing so the server never starts with an empty signing key.
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName:  pkgcfg.EnvDefault("SERVICE_NAME", "employee-registry"),
		HTTPAddr:     pkgcfg.EnvDefault("HTTP_ADDR", ":5000"),
		DBDriver:     strings.ToLower(pkgcfg.EnvDefault("DB_DRIVER", pkgdb.DriverPostgres)),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:    []byte(os.Getenv("JWT_SECRET")),
		KafkaBrokers: pkgcfg.CSV(os.Getenv("KAFKA_BROKERS")),
		LogLevel:     pkgcfg.EnvDefault("LOG_LEVEL", "info"),
		CORSOrigins:  pkgcfg.CSV(pkgcfg.EnvDefault("CORS_ORIGINS", "*")),
	}

	var driverErr error
	if cfg.DBDriver != pkgdb.DriverPostgres && cfg.DBDriver != pkgdb.DriverSQLite {
		driverErr = fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if err := pkgcfg.Require(
		pkgcfg.NonEmpty(cfg.DatabaseURL, "DATABASE_URL"),
		pkgcfg.NonEmptyBytes(cfg.JWTSecret, "JWT_SECRET"),
		driverErr,
	); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
