package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/dengas/devtimetracker/internal/config"
	"github.com/dengas/devtimetracker/internal/db"
	"github.com/dengas/devtimetracker/internal/httpapi"
	"github.com/dengas/devtimetracker/internal/keycloak"
	"github.com/dengas/devtimetracker/internal/security"
)

// main runs the server entrypoint and exits on unrecoverable errors.
func main() {
	if errRun := run(context.Background(), os.Args[1:]); errRun != nil {
		log.WithError(errRun).Error("server failed")
		os.Exit(1)
	}
}

// run parses flags, loads config, and serves the API until shutdown.
func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("devtimetracker", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "config file path (or env CONFIG_PATH)")
	port := fs.Int("port", 0, "server port override")
	if errParse := fs.Parse(args); errParse != nil {
		return errParse
	}

	// A local .env is optional; variables already set in the environment win.
	_ = godotenv.Load()

	path := *cfgPath
	if strings.TrimSpace(path) == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.Load(config.ResolveConfigPath(path))
	if err != nil {
		return err
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if errValidate := validatePort(cfg.Server.Port); errValidate != nil {
		return errValidate
	}

	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}

	verifier, err := security.NewVerifier(ctx, cfg.Keycloak.JWKSURI)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	httpapi.RegisterRoutes(engine, httpapi.Deps{
		DB:          conn,
		Verifier:    verifier,
		Keycloak:    keycloak.NewClient(cfg.Keycloak),
		CORSOrigins: cfg.CORS.Origins,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case errServe := <-errCh:
		if errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			return errServe
		}
		return nil
	case <-shutdownCtx.Done():
	}

	log.Info("shutting down")
	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(timeoutCtx)
}

func validatePort(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port: %d", port)
	}
	return nil
}
