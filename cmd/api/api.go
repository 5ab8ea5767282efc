package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Larafmp/acai-mae-e-filha/internal/metrics"
	"github.com/Larafmp/acai-mae-e-filha/internal/queue"
	"github.com/Larafmp/acai-mae-e-filha/internal/service"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
)

type backgroundWorker interface {
	Start() error
	Stop()
}

type application struct {
	config         config
	logger         *zap.SugaredLogger
	storage        *storage
	broker         queue.Broker
	metrics        *metrics.Metrics
	catalogService *service.CatalogService
	orderService   *service.OrderService
	importService  *service.ImportService
	workers        []backgroundWorker
}

type config struct {
	addr           string
	env            string
	storage        storageConfig
	rabbitMQ       rabbitMQConfig
	googleCreds    string
	metricsEnabled bool
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if app.config.metricsEnabled {
		r.Method(http.MethodGet, "/metrics", app.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/menu-items", func(r chi.Router) {
			r.Get("/", app.listMenuItemsHandler)
			r.Post("/", app.createMenuItemHandler)
			r.Get("/{item_id}", app.getMenuItemHandler)
			r.Put("/{item_id}", app.updateMenuItemHandler)
			r.Delete("/{item_id}", app.deleteMenuItemHandler)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", app.listOrdersHandler)
			r.Post("/", app.createOrderHandler)
			r.Get("/{order_id}", app.getOrderHandler)
			r.Post("/{order_id}/advance", app.advanceOrderHandler)
			r.Post("/{order_id}/cancel", app.cancelOrderHandler)
			r.Patch("/{order_id}/status", app.updateOrderStatusHandler)
			r.Get("/{order_id}/audit", app.getOrderAuditHandler)
		})

		r.Post("/catalog/imports", app.createImportTaskHandler)
		r.Get("/catalog/imports/{task_id}", app.getImportTaskHandler)
	})

	return r
}

func (app *application) startWorkers() error {
	for _, w := range app.workers {
		if err := w.Start(); err != nil {
			return fmt.Errorf("failed to start worker: %w", err)
		}
	}
	return nil
}

func (app *application) stopWorkers() {
	for _, w := range app.workers {
		w.Stop()
	}
}

func (app *application) run(mux http.Handler) error {
	if err := app.startWorkers(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		err := srv.Shutdown(ctx)

		app.stopWorkers()

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing broker", "error", err)
			} else {
				app.logger.Info("broker closed gracefully")
			}
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing storage", "driver", app.storage.driver, "error", err)
			} else {
				app.logger.Infow("storage closed gracefully", "driver", app.storage.driver)
			}
		}

		shutdown <- err
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
