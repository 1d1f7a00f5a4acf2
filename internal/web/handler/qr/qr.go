// Package qr serves the enrollment QR code for a configuration key.
package qr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/h-mdm/hmdm-server-sub000/internal/config"
	"github.com/h-mdm/hmdm-server-sub000/internal/db/controller/configuration"
	"github.com/h-mdm/hmdm-server-sub000/internal/provision"
)

const (
	// Path is the path of the enrollment QR endpoint.
	Path = "/public/qr"
)

// Service is the QR enrollment handler service.
type Service struct {
	cfg     *config.Config
	db      *gorm.DB
	builder *provision.Builder
}

// Handler is the QR enrollment handler.
var Handler = Service{}

// Init initializes the QR enrollment handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, builder *provision.Builder) error {
	if app == nil || cfg == nil || db == nil || builder == nil {
		return errors.New("app, cfg, db or builder is nil")
	}

	s.cfg = cfg
	s.db = db
	s.builder = builder

	app.Get(Path+"/:key", s.Get)

	return nil
}

// Get renders the provisioning QR image for a configuration key. An unknown
// key or an unprovisionable configuration yields an empty 200 response;
// unexpected failures yield a 500.
func (s *Service) Get(c *fiber.Ctx) error {
	key := c.Params("key")
	deviceID := c.Query("deviceId")
	size := c.QueryInt("size")

	cfg, err := configuration.GetByQRCodeKey(s.db, key)
	if err != nil {
		if errors.Is(err, configuration.ErrConfigurationNotFound) {
			return c.SendStatus(fiber.StatusOK)
		}

		log.Error().Err(err).Str("key", key).Msg("qr configuration lookup failed")

		return c.SendStatus(fiber.StatusInternalServerError)
	}

	payload, err := s.builder.Build(c.Context(), cfg, deviceID)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("provisioning payload build failed")

		return c.SendStatus(fiber.StatusInternalServerError)
	}

	if payload == nil {
		// nothing to provision for this configuration
		return c.SendStatus(fiber.StatusOK)
	}

	png, err := s.builder.RenderQR(payload, size)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("qr rendering failed")

		return c.SendStatus(fiber.StatusInternalServerError)
	}

	c.Set(fiber.HeaderContentType, "image/png")

	return c.Send(png)
}
