package device

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.Customer{},
		&models.Settings{},
		&models.Configuration{},
		&models.Application{},
		&models.ApplicationSetting{},
		&models.Device{},
		&models.Group{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedTenant creates the master customer with a default configuration.
// createNewDevices controls the on-demand enrollment flag.
func seedTenant(t *testing.T, db *gorm.DB, createNewDevices bool) (*models.Customer, *models.Configuration) {
	t.Helper()

	c := models.Customer{Name: "Default", FilesDir: "default", Master: true}
	require.NoError(t, db.Create(&c).Error)

	cfg := models.Configuration{CustomerID: c.ID, Name: "Default", QRCodeKey: "qr-default"}
	require.NoError(t, db.Create(&cfg).Error)

	s := models.Settings{
		CustomerID:               c.ID,
		CreateNewDevices:         createNewDevices,
		NewDeviceConfigurationID: &cfg.ID,
	}
	require.NoError(t, db.Create(&s).Error)

	return &c, &cfg
}

func TestGetByNumber(t *testing.T) {
	db := setupTestDB(t)
	c, cfg := seedTenant(t, db, false)

	require.NoError(t, db.Create(&models.Device{
		Number:          "DEV-001",
		CustomerID:      c.ID,
		ConfigurationID: cfg.ID,
	}).Error)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		number        string
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			number:        "DEV-001",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty number",
			dbParam:       db,
			number:        "",
			expectedError: ErrNumberEmpty,
		},
		{
			name:          "device not found",
			dbParam:       db,
			number:        "UNKNOWN",
			expectedError: ErrDeviceNotFound,
		},
		{
			name:    "successful get",
			dbParam: db,
			number:  "DEV-001",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := GetByNumber(tc.dbParam, tc.number)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, d)
			} else {
				require.NoError(t, err)
				require.NotNil(t, d)
				assert.Equal(t, tc.number, d.Number)
			}
		})
	}
}

func TestGetOrCreateByNumberDisabled(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db, false)

	d, err := GetOrCreateByNumber(db, "NEW-DEV")

	require.ErrorIs(t, err, ErrDeviceNotFound)
	assert.Nil(t, d)

	// not-found must not leave a record behind
	var count int64
	db.Model(&models.Device{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetOrCreateByNumberEnabled(t *testing.T) {
	db := setupTestDB(t)
	c, cfg := seedTenant(t, db, true)

	d, err := GetOrCreateByNumber(db, "NEW-DEV")

	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "NEW-DEV", d.Number)
	assert.Equal(t, c.ID, d.CustomerID)
	assert.Equal(t, cfg.ID, d.ConfigurationID)
	assert.Zero(t, d.LastUpdate, "a created device starts with a zero sync timestamp")

	// second contact returns the same record
	again, err := GetOrCreateByNumber(db, "NEW-DEV")
	require.NoError(t, err)
	assert.Equal(t, d.ID, again.ID)
}

func TestGetOrCreateByNumberDefaultGroup(t *testing.T) {
	db := setupTestDB(t)
	c, _ := seedTenant(t, db, true)

	g := models.Group{CustomerID: c.ID, Name: "New devices"}
	require.NoError(t, db.Create(&g).Error)
	require.NoError(t, db.Model(&models.Settings{}).
		Where("customer_id = ?", c.ID).
		Update("new_device_group_id", g.ID).Error)

	d, err := GetOrCreateByNumber(db, "NEW-DEV")
	require.NoError(t, err)

	var stored models.Device
	require.NoError(t, db.Preload("Groups").First(&stored, d.ID).Error)
	require.Len(t, stored.Groups, 1)
	assert.Equal(t, "New devices", stored.Groups[0].Name)
}

func TestUpdateReportedInfo(t *testing.T) {
	db := setupTestDB(t)
	c, cfg := seedTenant(t, db, false)

	d := models.Device{Number: "DEV-001", CustomerID: c.ID, ConfigurationID: cfg.ID}
	require.NoError(t, db.Create(&d).Error)

	d.IMEI = "123456"
	d.Info = []byte(`{"model":"Pixel"}`)
	require.NoError(t, UpdateReportedInfo(db, &d))

	var stored models.Device
	require.NoError(t, db.First(&stored, d.ID).Error)
	assert.Equal(t, "123456", stored.IMEI)
	assert.JSONEq(t, `{"model":"Pixel"}`, string(stored.Info))
	assert.Positive(t, stored.LastUpdate)
}

func TestReplaceSettings(t *testing.T) {
	db := setupTestDB(t)
	c, cfg := seedTenant(t, db, false)

	app := models.Application{Pkg: "com.x"}
	require.NoError(t, db.Create(&app).Error)

	d := models.Device{Number: "DEV-001", CustomerID: c.ID, ConfigurationID: cfg.ID}
	require.NoError(t, db.Create(&d).Error)

	first := []models.ApplicationSetting{
		{ApplicationID: app.ID, Name: "a", Type: models.SettingTypeString, Value: "1"},
		{ApplicationID: app.ID, Name: "b", Type: models.SettingTypeString, Value: "2"},
	}
	require.NoError(t, ReplaceSettings(db, d.ID, first))

	second := []models.ApplicationSetting{
		{ApplicationID: app.ID, Name: "a", Type: models.SettingTypeString, Value: "changed"},
	}
	require.NoError(t, ReplaceSettings(db, d.ID, second))

	stored, err := GetSettings(db, d.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1, "the reported layer replaces the previous one")
	assert.Equal(t, "a", stored[0].Name)
	assert.Equal(t, "changed", stored[0].Value)
	require.NotNil(t, stored[0].DeviceID)
	assert.Equal(t, d.ID, *stored[0].DeviceID)
	assert.Equal(t, "com.x", stored[0].Application.Pkg)
}

func TestReplaceSettingsEmpty(t *testing.T) {
	db := setupTestDB(t)
	c, cfg := seedTenant(t, db, false)

	d := models.Device{Number: "DEV-001", CustomerID: c.ID, ConfigurationID: cfg.ID}
	require.NoError(t, db.Create(&d).Error)

	require.NoError(t, ReplaceSettings(db, d.ID, nil))

	stored, err := GetSettings(db, d.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
