// Package syncpub implements the public device synchronization protocol:
// configuration fetch, info reports and application-settings reports.
package syncpub

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/h-mdm/hmdm-server-sub000/internal/config"
	"github.com/h-mdm/hmdm-server-sub000/internal/db/controller/application"
	"github.com/h-mdm/hmdm-server-sub000/internal/db/controller/configuration"
	"github.com/h-mdm/hmdm-server-sub000/internal/db/controller/device"
	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
	"github.com/h-mdm/hmdm-server-sub000/internal/events"
	"github.com/h-mdm/hmdm-server-sub000/internal/sync"
	"github.com/h-mdm/hmdm-server-sub000/internal/web/handler"
)

const (
	// Path is the base path of the public sync protocol.
	Path = "/public/sync"

	// ipHeader carries the caller's observed address back to the device.
	ipHeader = "X-IP-Address"
)

var (
	// requests counts protocol requests by endpoint and envelope status.
	requests *prometheus.CounterVec //nolint:gochecknoglobals

	// integrityMismatches counts info reports whose agent digest disagrees
	// with the stored hash.
	integrityMismatches prometheus.Counter //nolint:gochecknoglobals
)

// Service is the sync protocol handler service.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	resolver  *sync.Resolver
	hooks     sync.Pipeline
	publisher events.Publisher
}

// Handler is the sync protocol handler.
var Handler = Service{}

// Init initializes the sync protocol handler.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	resolver *sync.Resolver,
	hooks sync.Pipeline,
	publisher events.Publisher,
) error {
	if app == nil || cfg == nil || db == nil || resolver == nil || publisher == nil {
		return errors.New("app, cfg, db, resolver or publisher is nil")
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()
	s.resolver = resolver
	s.hooks = hooks
	s.publisher = publisher

	if requests == nil {
		requests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_requests_total",
				Help: "Number of device sync protocol requests, by endpoint and status.",
			},
			[]string{"endpoint", "status"},
		)
	}

	if integrityMismatches == nil {
		integrityMismatches = promauto.NewCounter(prometheus.CounterOpts{
			Name: "sync_integrity_mismatches_total",
			Help: "Number of info reports with an agent digest disagreeing with the stored hash.",
		})
	}

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get("/configuration/:deviceId", s.GetConfiguration)
		router.Post("/info", s.PostInfo)
		router.Post("/applicationSettings/:deviceId", s.PostApplicationSettings)
	})

	return nil
}

// GetConfiguration resolves and returns the effective configuration of the
// polling device. Unknown identifiers enroll on demand when the deployment
// enables it, otherwise the distinguished not-found status is returned.
func (s *Service) GetConfiguration(c *fiber.Ctx) error {
	number := c.Params("deviceId")

	d, err := device.GetOrCreateByNumber(s.db, number)
	if err != nil {
		return s.fail(c, "configuration", number, err)
	}

	cfg, err := s.resolver.Resolve(d)
	if err != nil {
		return s.fail(c, "configuration", number, err)
	}

	cfg = s.hooks.Apply(d.ID, cfg)

	requests.WithLabelValues("configuration", handler.StatusOK).Inc()

	return c.JSON(handler.OK(cfg))
}

// PostInfo persists a self-reported device info blob, stamps the identifier
// change timestamp on IMEI changes and emits the derived domain events.
func (s *Service) PostInfo(c *fiber.Ctx) error {
	// every info response carries the observed caller address, devices use
	// it to detect NAT changes even when the report itself is rejected
	c.Set(ipHeader, c.IP())

	var info DeviceInfo

	if err := c.BodyParser(&info); err != nil {
		requests.WithLabelValues("info", handler.StatusError).Inc()

		return c.Status(fiber.StatusBadRequest).JSON(handler.ValidationError("malformed info report"))
	}

	if err := s.validator.Struct(info); err != nil {
		requests.WithLabelValues("info", handler.StatusError).Inc()

		return c.Status(fiber.StatusBadRequest).JSON(handler.ValidationError("invalid info report"))
	}

	// on-demand enrollment applies to info reports too
	d, err := device.GetOrCreateByNumber(s.db, info.DeviceID)
	if err != nil {
		return s.fail(c, "info", info.DeviceID, err)
	}

	if info.IMEI != "" && d.IMEI != "" && info.IMEI != d.IMEI {
		ts := time.Now().UnixMilli()
		d.IMEIChangeTs = &ts

		log.Warn().
			Str("device", d.Number).
			Str("reported", info.IMEI).
			Str("known", d.IMEI).
			Msg("device hardware identifier changed")
	}

	if info.IMEI != "" {
		d.IMEI = info.IMEI
	}

	if info.Phone != "" {
		d.Phone = info.Phone
	}

	raw, err := json.Marshal(info)
	if err != nil {
		return s.fail(c, "info", info.DeviceID, err)
	}
	d.Info = raw

	if err := device.UpdateReportedInfo(s.db, d); err != nil {
		return s.fail(c, "info", info.DeviceID, err)
	}

	s.checkIntegrity(d, &info)
	s.emitInfoEvents(d.Number, &info)

	requests.WithLabelValues("info", handler.StatusOK).Inc()

	return c.JSON(handler.OK(nil))
}

// checkIntegrity compares a self-reported agent digest against the stored
// hash of the configuration's main application. A disagreement is observable
// through the log and the mismatch counter, never fatal to the report.
func (s *Service) checkIntegrity(d *models.Device, info *DeviceInfo) {
	if info.Checksum == "" {
		return
	}

	cfg, err := configuration.GetFull(s.db, d.ConfigurationID)
	if err != nil || cfg.MainApp == nil || cfg.MainApp.APKHash == "" {
		return
	}

	if cfg.MainApp.APKHash != info.Checksum {
		integrityMismatches.Inc()

		log.Warn().
			Str("device", d.Number).
			Str("pkg", cfg.MainApp.Application.Pkg).
			Str("reported", info.Checksum).
			Str("stored", cfg.MainApp.APKHash).
			Msg("agent package digest disagreement")
	}
}

// emitInfoEvents publishes the domain events derived from an accepted info
// report. Publishing never blocks or fails the request.
func (s *Service) emitInfoEvents(number string, info *DeviceInfo) {
	if info.BatteryLevel != nil {
		s.publisher.Publish(events.New(events.TypeBatteryLevelUpdated, number, events.BatteryPayload{
			Level:    *info.BatteryLevel,
			Charging: info.BatteryCharging != "",
		}))
	}

	if info.Location != nil {
		s.publisher.Publish(events.New(events.TypeLocationUpdated, number, events.LocationPayload{
			Lat: info.Location.Lat,
			Lon: info.Location.Lon,
			Ts:  info.Location.Ts,
		}))
	}

	s.publisher.Publish(events.New(events.TypeDeviceInfoUpdated, number, nil))
}

// PostApplicationSettings replaces the device-level application settings
// layer with the reported one. Lookup only, reports never enroll devices.
func (s *Service) PostApplicationSettings(c *fiber.Ctx) error {
	number := c.Params("deviceId")

	d, err := device.GetByNumber(s.db, number)
	if err != nil {
		return s.fail(c, "applicationSettings", number, err)
	}

	var reported []ReportedSetting
	if err := c.BodyParser(&reported); err != nil {
		requests.WithLabelValues("applicationSettings", handler.StatusError).Inc()

		return c.Status(fiber.StatusBadRequest).JSON(handler.ValidationError("malformed settings report"))
	}

	// the whole batch must be valid before anything is persisted, including
	// catalog registrations for first-seen packages
	for _, r := range reported {
		if err := s.validator.Struct(r); err != nil {
			requests.WithLabelValues("applicationSettings", handler.StatusError).Inc()

			return c.Status(fiber.StatusBadRequest).JSON(handler.ValidationError("invalid settings report"))
		}
	}

	settings := make([]models.ApplicationSetting, 0, len(reported))

	for _, r := range reported {
		a, err := application.GetOrCreateByPkg(s.db, d.CustomerID, r.PackageID)
		if err != nil {
			return s.fail(c, "applicationSettings", number, err)
		}

		lastUpdate := r.LastUpdate
		if lastUpdate == 0 {
			lastUpdate = time.Now().UnixMilli()
		}

		settings = append(settings, models.ApplicationSetting{
			ApplicationID: a.ID,
			Name:          r.Name,
			Type:          models.NormalizeSettingType(r.Type),
			ReadOnly:      r.ReadOnly,
			Value:         r.Value,
			LastUpdate:    lastUpdate,
		})
	}

	if err := device.ReplaceSettings(s.db, d.ID, settings); err != nil {
		return s.fail(c, "applicationSettings", number, err)
	}

	// the effective configuration changed, prompt a poll
	s.publisher.Publish(events.New(events.TypeConfigurationUpdated, d.Number, nil))

	requests.WithLabelValues("applicationSettings", handler.StatusOK).Inc()

	return c.JSON(handler.OK(nil))
}

// fail maps typed engine errors to protocol envelopes. Not-found outcomes
// keep their distinguished status, everything else surfaces as a generic
// internal error without leaking detail.
func (s *Service) fail(c *fiber.Ctx, endpoint, number string, err error) error {
	if errors.Is(err, device.ErrDeviceNotFound) ||
		errors.Is(err, device.ErrNumberEmpty) ||
		errors.Is(err, sync.ErrConfigurationNotFound) {
		requests.WithLabelValues(endpoint, handler.StatusDeviceNotFound).Inc()

		return c.JSON(handler.DeviceNotFound())
	}

	log.Error().Err(err).Str("endpoint", endpoint).Str("device", number).Msg("sync request failed")
	requests.WithLabelValues(endpoint, handler.StatusError).Inc()

	return c.Status(fiber.StatusInternalServerError).JSON(handler.InternalError())
}
