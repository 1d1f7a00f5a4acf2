// Package integrity lazily computes and persists the content digest of
// published application packages.
package integrity

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
)

var (
	// ErrNoDownloadURL is returned when a version has no download location
	// to digest.
	ErrNoDownloadURL = errors.New("application version has no download url")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

const fetchTimeout = 60 * time.Second

// Cache computes the SHA-256 digest of an application package exactly when
// first needed and persists it against the version record.
//
// Concurrent callers observing "no hash yet" may both fetch and compute; the
// digest is a pure function of immutable content, so all computations agree
// and the last write wins. This is a deliberate relaxation, not a bug.
type Cache struct {
	db     *gorm.DB
	client *http.Client
}

// New creates a Cache reading and writing version records through db.
func New(db *gorm.DB) *Cache {
	return &Cache{
		db:     db,
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// GetOrCompute returns the stored digest of the version, computing and
// persisting it first if absent. The digest is base64 url-encoded SHA-256
// over the full package byte stream, the format required by the Android
// provisioning checksum.
func (c *Cache) GetOrCompute(ctx context.Context, v *models.ApplicationVersion) (string, error) {
	if c.db == nil {
		return "", ErrDBNil
	}

	if v.APKHash != "" {
		return v.APKHash, nil
	}

	url := downloadURL(v)
	if url == "" {
		return "", ErrNoDownloadURL
	}

	hash, err := c.digest(ctx, url)
	if err != nil {
		return "", err
	}

	// explicit upsert, last writer wins
	result := c.db.Model(&models.ApplicationVersion{}).
		Where("id = ?", v.ID).
		Update("apk_hash", hash)
	if result.Error != nil {
		return "", result.Error
	}

	v.APKHash = hash

	return hash, nil
}

func downloadURL(v *models.ApplicationVersion) string {
	switch {
	case v.URL != "":
		return v.URL
	case v.Arm64URL != "":
		return v.Arm64URL
	default:
		return v.ArmeabiURL
	}
}

// digest stream-fetches url and hashes the full byte stream.
func (c *Cache) digest(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	h := sha256.New()
	if _, err := io.Copy(h, resp.Body); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(h.Sum(nil)), nil
}
