package qr

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/h-mdm/hmdm-server-sub000/internal/config"
	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
	"github.com/h-mdm/hmdm-server-sub000/internal/integrity"
	"github.com/h-mdm/hmdm-server-sub000/internal/provision"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.Customer{},
		&models.Configuration{},
		&models.Application{},
		&models.ApplicationVersion{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func newTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	cfg := config.Config{}
	cfg.Webserver.URL = "https://mdm.example.com"
	cfg.Provision.QRCodeSize = 250
	builder := provision.NewBuilder(integrity.New(db), cfg.Webserver.URL, cfg.Provision)

	app := fiber.New()
	svc := Service{}
	require.NoError(t, svc.Init(app, &cfg, db, builder))

	return app
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil), -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

func TestGetUnknownKey(t *testing.T) {
	app := newTestApp(t, setupTestDB(t))

	resp, body := get(t, app, "/public/qr/no-such-key")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, resp.Header.Get(fiber.HeaderContentType), "image/png")
	assert.NotEqual(t, "\x89PNG", string(body[:min(4, len(body))]))
}

func TestGetUnprovisionableConfiguration(t *testing.T) {
	db := setupTestDB(t)

	c := models.Customer{Name: "Default", FilesDir: "default", Master: true}
	require.NoError(t, db.Create(&c).Error)
	// no main application, nothing to provision
	require.NoError(t, db.Create(&models.Configuration{
		CustomerID: c.ID,
		Name:       "Empty",
		QRCodeKey:  "qr-empty",
	}).Error)

	app := newTestApp(t, db)

	resp, body := get(t, app, "/public/qr/qr-empty")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
}

func TestGetRendersPNG(t *testing.T) {
	db := setupTestDB(t)

	c := models.Customer{Name: "Default", FilesDir: "default", Master: true}
	require.NoError(t, db.Create(&c).Error)

	a := models.Application{CustomerID: c.ID, Pkg: "com.example.agent"}
	require.NoError(t, db.Create(&a).Error)

	// stored hash keeps the digest cache off the network
	v := models.ApplicationVersion{
		ApplicationID: a.ID,
		Version:       "1.0",
		URL:           "apps/agent.apk",
		APKHash:       "c29tZS1oYXNo",
	}
	require.NoError(t, db.Create(&v).Error)

	require.NoError(t, db.Create(&models.Configuration{
		CustomerID:              c.ID,
		Name:                    "Main",
		QRCodeKey:               "qr-main",
		MainAppID:               &v.ID,
		EventReceivingComponent: "com.example.agent.AdminReceiver",
	}).Error)

	app := newTestApp(t, db)

	resp, body := get(t, app, "/public/qr/qr-main?deviceId=DEV-001&size=300")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	require.Greater(t, len(body), 8)
	assert.Equal(t, "\x89PNG\r\n\x1a\n", string(body[:8]))
}
