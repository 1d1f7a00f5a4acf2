// Package web wires the fiber application serving the device protocol.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/h-mdm/hmdm-server-sub000/internal/config"
	"github.com/h-mdm/hmdm-server-sub000/internal/events"
	accesslog "github.com/h-mdm/hmdm-server-sub000/internal/logger/adapter/fiber"
	"github.com/h-mdm/hmdm-server-sub000/internal/provision"
	"github.com/h-mdm/hmdm-server-sub000/internal/sync"
	"github.com/h-mdm/hmdm-server-sub000/internal/web/handler/qr"
	"github.com/h-mdm/hmdm-server-sub000/internal/web/handler/syncpub"
)

// Service represents the web service.
type Service struct {
	App   *fiber.App
	cfg   *config.Config
	db    *gorm.DB
	alive atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: fail /checkalive first so the
	// LB removes this instance from active targets, then stop fiber.
	s.alive.Store(false)
	time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped")
}

// New creates a new web service with the given configuration and engine
// collaborators.
func New(
	cfg *config.Config,
	db *gorm.DB,
	resolver *sync.Resolver,
	builder *provision.Builder,
	hooks sync.Pipeline,
	publisher events.Publisher,
) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "hmdm-server",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	// access logging
	app.Use(accesslog.New(accesslog.Config{Config: cfg.Log}))

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}
	service.alive.Store(true)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/checkalive", func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendStatus(fiber.StatusOK)
	})

	// uploaded files, icons and application packages
	if cfg.Webserver.FilesDir != "" {
		app.Static("/files", cfg.Webserver.FilesDir)
	}

	// init handlers (they register their own routes)
	if err := syncpub.Handler.Init(app, cfg, db, resolver, hooks, publisher); err != nil {
		panic(err)
	}

	if err := qr.Handler.Init(app, cfg, db, builder); err != nil {
		panic(err)
	}

	return service
}
