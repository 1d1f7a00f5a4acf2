// Package sync implements the configuration resolution engine: it computes
// the exact configuration payload handed to a polling device, merging the
// precedence layers of application settings, resolving stored references to
// absolute URLs and applying the registered post-processing hooks.
package sync

import (
	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
)

// settingKey is the lookup key of an application setting within one layer.
type settingKey struct {
	applicationID uint64
	name          string
}

// MergeSettings combines two precedence-ordered application settings layers.
// Entries with empty values are dropped from both inputs first: an empty
// override means absence, not "clear the lower layer's value". Every entry of
// the high layer is kept; low entries are kept only for keys the high layer
// does not carry. The engine works for any two adjacent precedence layers.
func MergeSettings(low, high []models.ApplicationSetting) []models.ApplicationSetting {
	highKept := dropEmptyValues(high)

	overridden := make(map[settingKey]struct{}, len(highKept))
	for _, s := range highKept {
		overridden[settingKey{s.ApplicationID, s.Name}] = struct{}{}
	}

	merged := make([]models.ApplicationSetting, 0, len(low)+len(highKept))

	for _, s := range dropEmptyValues(low) {
		if _, ok := overridden[settingKey{s.ApplicationID, s.Name}]; !ok {
			merged = append(merged, s)
		}
	}

	return append(merged, highKept...)
}

func dropEmptyValues(settings []models.ApplicationSetting) []models.ApplicationSetting {
	kept := make([]models.ApplicationSetting, 0, len(settings))

	for _, s := range settings {
		if s.Value != "" {
			kept = append(kept, s)
		}
	}

	return kept
}
