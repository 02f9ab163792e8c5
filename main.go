package main

import (
	"context"
	"errors"
	"fmt"
	"go-marketplace/app"
	"go-marketplace/config"
	_ "go-marketplace/docs"
	"go-marketplace/logger"
	"go-marketplace/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title Go Marketplace Cart API
// @version 1.0
// @description Shopping cart persisted to a key/value storage slot.
// @host localhost:8082
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.LoadConfig(); err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := config.AppConfig

	log := logger.New(logger.Options{Service: "go-marketplace", Env: cfg.AppEnv, Level: cfg.LogLevel})

	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := issueToken(cfg, os.Args[2:]); err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		return
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Server starting on port %s", cfg.Port)
		log.Infof("Swagger UI: http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Failed to start server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
}

func issueToken(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: go-marketplace token <device-id>")
	}
	token, err := utils.GenerateToken(args[0], cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, token)
	return nil
}
