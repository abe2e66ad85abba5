// Package restserver serves the dashboard as a JSON/PNG API plus a single HTML page.
package restserver

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/chrissnell/bikedash/internal/dataset"
	"github.com/chrissnell/bikedash/pkg/config"
)

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	restConfig config.RESTServerData
	Server     http.Server
	FS         fs.FS
	Dataset    *dataset.Cache
	logger     *zap.SugaredLogger
	handlers   *Handlers
}

// NewController creates a new REST server controller serving the dataset held by cache
func NewController(ctx context.Context, wg *sync.WaitGroup, cache *dataset.Cache, rc config.RESTServerData, logger *zap.SugaredLogger) (*Controller, error) {
	if cache == nil {
		return nil, fmt.Errorf("REST server requires a dataset")
	}

	// If a ListenAddr was not provided, listen on all interfaces
	if rc.ListenAddr == "" {
		logger.Infof("rest.listen-addr not provided; defaulting to %s (all interfaces)", config.DefaultListenAddr)
		rc.ListenAddr = config.DefaultListenAddr
	}

	// Set default HTTP port if not specified
	if rc.Port == 0 {
		logger.Infof("rest.port not provided; defaulting to %d", config.DefaultHTTPPort)
		rc.Port = config.DefaultHTTPPort
	}

	if rc.PageTitle == "" {
		rc.PageTitle = config.DefaultPageTitle
	}

	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		restConfig: rc,
		FS:         GetAssets(),
		Dataset:    cache,
		logger:     logger,
	}

	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", rc.ListenAddr, rc.Port)
	ctrl.Server.Handler = ctrl.setupRouter()
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	c.logger.Infow("starting REST server controller", "addr", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.restConfig.Cert != "" && c.restConfig.Key != "" {
			if err := c.Server.ListenAndServeTLS(c.restConfig.Cert, c.restConfig.Key); err != http.ErrServerClosed {
				c.logger.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				c.logger.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		c.logger.Info("shutting down the REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Server.Shutdown(shutdownCtx)
	}()

	return nil
}

// Handler returns the fully wrapped HTTP handler
func (c *Controller) Handler() http.Handler {
	return c.Server.Handler
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() http.Handler {
	router := mux.NewRouter()

	router.Use(c.requestIDMiddleware)
	router.Use(c.loggingMiddleware)

	// API endpoints
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/options", c.handlers.GetOptions).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", c.handlers.GetDashboard).Methods(http.MethodGet)
	api.HandleFunc("/records", c.handlers.GetRecords).Methods(http.MethodGet)
	api.HandleFunc("/requests", c.handlers.GetRecentRequests).Methods(http.MethodGet)

	router.HandleFunc("/chart/{name}.png", c.handlers.GetChart).Methods(http.MethodGet)
	router.HandleFunc("/healthz", c.handlers.GetHealth).Methods(http.MethodGet)

	// Template endpoint
	router.HandleFunc("/", c.handlers.ServeIndexTemplate).Methods(http.MethodGet)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)

	return handlers.CompressHandler(cors(router))
}
