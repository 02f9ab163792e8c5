// Package app wires configuration, storage and the cart into a gin engine.
package app

import (
	"context"
	"fmt"
	"go-marketplace/cart"
	"go-marketplace/config"
	"go-marketplace/events"
	"go-marketplace/routes"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type App struct {
	Store  *cart.Store
	Router *gin.Engine

	closers []func()
}

func New(ctx context.Context, cfg *config.Config, log *logrus.Entry) (*App, error) {
	kv, closeStorage, err := config.OpenStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}
	a := &App{closers: []func(){closeStorage}}

	a.Store = cart.New(kv,
		cart.WithKey(cfg.CartStorageKey),
		cart.WithRetry(cfg.SaveMaxRetries, cfg.SaveRetryInterval, 0),
		cart.WithLogger(log),
	)

	if cfg.RabbitMQURI != "" {
		conn, ch, err := events.Dial(cfg.RabbitMQURI, cfg.AMQPQueue)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { conn.Close() }, func() { ch.Close() })
		// Runs before the channel closes so pending events still go out.
		a.closers = append(a.closers, events.NewAMQPPublisher(ch, cfg.AMQPQueue).Attach(a.Store))
		log.WithField("queue", cfg.AMQPQueue).Info("Publishing cart events to RabbitMQ")
	}

	if err := a.Store.Load(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("load cart: %w", err)
	}

	a.Router = routes.NewRouter(cfg, a.Store, log)
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
