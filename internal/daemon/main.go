// Package daemon assembles the persistence layer, the resolution engine and
// the web service into a running server.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/h-mdm/hmdm-server-sub000/internal/config"
	"github.com/h-mdm/hmdm-server-sub000/internal/db/dsn"
	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
	"github.com/h-mdm/hmdm-server-sub000/internal/events"
	"github.com/h-mdm/hmdm-server-sub000/internal/integrity"
	"github.com/h-mdm/hmdm-server-sub000/internal/provision"
	"github.com/h-mdm/hmdm-server-sub000/internal/sync"
	"github.com/h-mdm/hmdm-server-sub000/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until it stops. A
// SIGINT/SIGTERM drains the service gracefully.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db := openDB(cfg)

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Settings{},
		&models.Configuration{},
		&models.Application{},
		&models.ApplicationVersion{},
		&models.ConfigurationApplication{},
		&models.ApplicationSetting{},
		&models.ConfigurationFile{},
		&models.Device{},
		&models.Group{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	publisher := newPublisher(cfg)

	cache := integrity.New(db)
	resolver := sync.NewResolver(db, cfg.Webserver.URL)
	builder := provision.NewBuilder(cache, cfg.Webserver.URL, cfg.Provision)

	// post-processing hooks, registered explicitly at process start
	hooks := sync.Pipeline{
		sync.ServerTimeHook{},
	}

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db, resolver, builder, hooks, publisher),
	}
}

func openDB(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector

	switch cfg.DB.Engine {
	case "sqlite":
		dialector = sqlite.Open(cfg.DB.File)
	default:
		dialector = gormpostgres.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	return db
}

func newPublisher(cfg *config.Config) events.Publisher {
	if !cfg.MQTT.Enabled {
		return events.NopPublisher{}
	}

	publisher, err := events.NewMQTTPublisher(cfg.MQTT)
	if err != nil {
		// the sync protocol works without the broker, degrade loudly
		log.Error().Err(err).Str("broker", cfg.MQTT.BrokerURL).
			Msg("mqtt broker unavailable, events will be dropped")

		return events.NopPublisher{}
	}

	return publisher
}
