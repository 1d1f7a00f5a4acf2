package provision

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/h-mdm/hmdm-server-sub000/internal/config"
	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
	"github.com/h-mdm/hmdm-server-sub000/internal/integrity"
)

const testBaseURL = "https://mdm.example.com"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Application{}, &models.ApplicationVersion{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func provisionableConfiguration(t *testing.T, db *gorm.DB, apkURL string) *models.Configuration {
	t.Helper()

	v := models.ApplicationVersion{
		Application: models.Application{Pkg: "com.example.agent"},
		Version:     "1.0",
		URL:         apkURL,
	}
	require.NoError(t, db.Create(&v).Error)

	return &models.Configuration{
		Customer:                models.Customer{Name: "Default", FilesDir: "default"},
		MainApp:                 &v,
		EventReceivingComponent: "com.example.agent.AdminReceiver",
	}
}

func newTestBuilder(db *gorm.DB, cfg config.Provision) *Builder {
	return NewBuilder(integrity.New(db), testBaseURL, cfg)
}

func TestBuild(t *testing.T) {
	content := []byte("agent apk")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(content)
	}))
	defer srv.Close()

	db := setupTestDB(t)
	cfg := provisionableConfiguration(t, db, srv.URL+"/agent.apk")

	b := newTestBuilder(db, config.Provision{
		QRCodeSize: 250,
		WifiSSID:   "fleet-net",
	})

	p, err := b.Build(context.Background(), cfg, "DEV-042")
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "com.example.agent/com.example.agent.AdminReceiver", p[keyAdminComponent])
	assert.Equal(t, srv.URL+"/agent.apk", p[keyDownloadLocation])
	assert.NotEmpty(t, p[keyPackageChecksum])

	assert.Equal(t, "fleet-net", p[keyWifiSSID])
	assert.Equal(t, "WPA", p[keyWifiSecurityType], "security type defaults to WPA when unset")
	assert.NotContains(t, p, keyWifiPassword)

	extras, ok := p[keyAdminExtras].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, testBaseURL, extras[extraBaseURL])
	assert.Equal(t, "Default", extras[extraCustomer])
	assert.Equal(t, "DEV-042", extras[extraDeviceID])
}

func TestBuildDegradesGracefully(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name   string
		mutate func(cfg *models.Configuration)
	}{
		{
			name:   "no main application",
			mutate: func(cfg *models.Configuration) { cfg.MainApp = nil },
		},
		{
			name:   "no download url",
			mutate: func(cfg *models.Configuration) { cfg.MainApp.URL = "" },
		},
		{
			name:   "no receiver component",
			mutate: func(cfg *models.Configuration) { cfg.EventReceivingComponent = "" },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := provisionableConfiguration(t, db, "apps/agent.apk")
			tc.mutate(cfg)

			p, err := newTestBuilder(db, config.Provision{}).Build(context.Background(), cfg, "")

			require.NoError(t, err, "unprovisionable configurations degrade, they do not fail")
			assert.Nil(t, p)
		})
	}
}

func TestBuildOmitsChecksumOnFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	db := setupTestDB(t)
	cfg := provisionableConfiguration(t, db, srv.URL+"/gone.apk")

	p, err := newTestBuilder(db, config.Provision{}).Build(context.Background(), cfg, "")

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.NotContains(t, p, keyPackageChecksum, "failed digest omits the checksum only")
	assert.Equal(t, srv.URL+"/gone.apk", p[keyDownloadLocation])
}

func TestRenderQR(t *testing.T) {
	db := setupTestDB(t)
	b := newTestBuilder(db, config.Provision{QRCodeSize: 250})

	png, err := b.RenderQR(Payload{keyDownloadLocation: "https://x/y.apk"}, 0)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "rendered image must be a PNG")
}
