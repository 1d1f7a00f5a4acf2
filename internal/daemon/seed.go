package daemon

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/h-mdm/hmdm-server-sub000/internal/config"
	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
)

// seed creates the master customer, its settings row and a default
// configuration on first boot. Devices contacting the server on demand are
// enrolled into this configuration.
func seed(_ *config.Config, db *gorm.DB) {
	var count int64
	db.Model(&models.Customer{}).Count(&count)
	if count != 0 {
		return
	}

	customer := models.Customer{
		Name:             "Default",
		Description:      "Built-in customer of a single-tenant deployment",
		FilesDir:         "default",
		Master:           true,
		RegistrationTime: time.Now().UnixMilli(),
	}
	if err := db.Create(&customer).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed master customer")

		return
	}

	cfg := models.Configuration{
		CustomerID:    customer.ID,
		Name:          "Default",
		Description:   "Configuration assigned to devices enrolled on demand",
		QRCodeKey:     uuid.NewString(),
		IconSize:      "NORMAL",
		DesktopHeader: "NO_HEADER",
	}
	if err := db.Create(&cfg).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed default configuration")

		return
	}

	settings := models.Settings{
		CustomerID:               customer.ID,
		IconSize:                 "NORMAL",
		DesktopHeader:            "NO_HEADER",
		CreateNewDevices:         true,
		NewDeviceConfigurationID: &cfg.ID,
	}
	if err := db.Create(&settings).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed customer settings")
	}
}
