package api

import (
	"context"
	"go-marketplace/app"
	"go-marketplace/config"
	"go-marketplace/logger"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	handler http.Handler
	once    sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg, err := config.FromEnv()
		if err != nil {
			logrus.WithError(err).Error("invalid configuration")
			handler = unavailable(err)
			return
		}
		log := logger.New(logger.Options{Service: "go-marketplace", Env: cfg.AppEnv, Level: cfg.LogLevel})

		a, err := app.New(context.Background(), cfg, log)
		if err != nil {
			log.WithError(err).Error("failed to initialize app")
			handler = unavailable(err)
			return
		}
		handler = a.Router
	})
}

func unavailable(err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable: "+err.Error(), http.StatusServiceUnavailable)
	})
}

// Handler is the serverless entrypoint.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	handler.ServeHTTP(w, r)
}
