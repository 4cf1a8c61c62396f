package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/employee_registry/internal/config"
	"github.com/Skotchmaster/employee_registry/internal/httpserver"
	"github.com/Skotchmaster/employee_registry/internal/middleware/auth"
	"github.com/Skotchmaster/employee_registry/internal/models"
	"github.com/Skotchmaster/employee_registry/internal/mykafka"
	"github.com/Skotchmaster/employee_registry/internal/repo"
	"github.com/Skotchmaster/employee_registry/internal/service"
	pkgdb "github.com/Skotchmaster/employee_registry/pkg/db"
	"github.com/Skotchmaster/employee_registry/pkg/logging"
	"github.com/Skotchmaster/employee_registry/pkg/tokens"
)

type eventSink interface {
	service.EventPublisher
	Close() error
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("notice: .env not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	tk, err := tokens.NewService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}

	var events eventSink = mykafka.Discard{}
	if len(cfg.KafkaBrokers) > 0 {
		p, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		events = p
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	notifier := service.NewNotifier(events)

	r := &repo.GormRepo{DB: db}
	e := httpserver.New(logger, cfg.CORSOrigins, &httpserver.Deps{
		AuthHandler:     &httpserver.AuthHTTP{Svc: &service.AuthService{Users: r, Tokens: tk, Events: notifier}},
		EmployeeHandler: &httpserver.EmployeeHTTP{Svc: &service.EmployeeService{Repo: r, Events: notifier}},
		Gateway:         auth.NewGateway(tk, r),
		Ready: func(ctx context.Context) error {
			return pkgdb.Ping(ctx, db)
		},
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	notifier.Close()
	if err := events.Close(); err != nil {
		logger.Error("kafka_close_failed", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close_failed", "error", err)
	}

	logger.Info("server_stopped")
}
