// Command promote sets the role of an existing user. It is the only way to
// grant the admin role.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/employee_registry/internal/config"
	"github.com/Skotchmaster/employee_registry/internal/domain"
	"github.com/Skotchmaster/employee_registry/internal/models"
	"github.com/Skotchmaster/employee_registry/internal/repo"
	pkgdb "github.com/Skotchmaster/employee_registry/pkg/db"
)

func main() {
	email := flag.String("email", "", "email of the user to update")
	role := flag.String("role", domain.RoleAdmin, "role to assign (admin|user)")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *role != domain.RoleAdmin && *role != domain.RoleUser {
		log.Fatalf("unknown role %q", *role)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer pkgdb.Close(db)

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	r := &repo.GormRepo{DB: db}
	if err := r.SetRole(ctx, *email, *role); err != nil {
		log.Fatalf("set role: %v", err)
	}
	fmt.Printf("%s is now %s\n", *email, *role)
}
