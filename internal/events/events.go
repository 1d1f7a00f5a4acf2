// Package events defines the domain events emitted by the sync endpoints and
// the fire-and-forget publisher delivering them to the broker. Transport
// delivery to devices and downstream consumers is an external concern; a
// failed publish is logged and never fails the triggering request.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Event types emitted by the sync endpoints.
const (
	// TypeDeviceInfoUpdated is emitted on every accepted info report.
	TypeDeviceInfoUpdated = "deviceInfoUpdated"
	// TypeBatteryLevelUpdated is emitted when a report carries a battery level.
	TypeBatteryLevelUpdated = "deviceBatteryLevelUpdated"
	// TypeLocationUpdated is emitted when a report carries a location fix.
	TypeLocationUpdated = "deviceLocationUpdated"
	// TypeConfigurationUpdated triggers a device poll after an upstream
	// configuration change.
	TypeConfigurationUpdated = "configurationUpdated"
)

// Event is the envelope published for every domain event.
type Event struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	DeviceNumber string          `json:"deviceNumber"`
	Timestamp    int64           `json:"ts"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

// New creates an event envelope stamped with a fresh id and the current time.
func New(eventType, deviceNumber string, payload any) Event {
	e := Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		DeviceNumber: deviceNumber,
		Timestamp:    time.Now().UnixMilli(),
	}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			log.Error().Err(err).Str("type", eventType).Msg("can't marshal event payload")
		} else {
			e.Payload = raw
		}
	}

	return e
}

// BatteryPayload carries a reported battery state.
type BatteryPayload struct {
	Level    int  `json:"level"`
	Charging bool `json:"charging"`
}

// LocationPayload carries a reported location fix.
type LocationPayload struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Ts  int64   `json:"ts"`
}

// Publisher delivers domain events. Implementations must be safe for
// concurrent use and must never block the caller on broker I/O.
type Publisher interface {
	Publish(e Event)
}
