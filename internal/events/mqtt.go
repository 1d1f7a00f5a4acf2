package events

import (
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/h-mdm/hmdm-server-sub000/internal/config"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second

	// topicPrefix scopes all server topics on a shared broker.
	topicPrefix = "hmdm/device"
)

// MQTTPublisher publishes domain events to an MQTT broker, one topic per
// device and event type. Publishing is fire-and-forget: delivery failures
// are logged, the triggering request never waits on or fails with them.
type MQTTPublisher struct {
	client pahomqtt.Client
}

// NewMQTTPublisher connects to the broker configured in cfg.
func NewMQTTPublisher(cfg config.MQTT) (*MQTTPublisher, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := pahomqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect: timeout after %v", connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}

	return &MQTTPublisher{client: client}, nil
}

// Publish implements Publisher. The broker handshake happens on a background
// goroutine; the caller returns immediately.
func (p *MQTTPublisher) Publish(e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		log.Error().Err(err).Str("type", e.Type).Msg("can't marshal event")

		return
	}

	topic := fmt.Sprintf("%s/%s/%s", topicPrefix, e.DeviceNumber, e.Type)

	go func() {
		token := p.client.Publish(topic, 0, false, payload)
		if !token.WaitTimeout(publishTimeout) {
			log.Warn().Str("topic", topic).Msg("event publish timed out")

			return
		}
		if err := token.Error(); err != nil {
			log.Warn().Err(err).Str("topic", topic).Msg("event publish failed")
		}
	}()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(uint(publishTimeout.Milliseconds()))
}

// NopPublisher logs events instead of publishing them. Used when the broker
// is disabled in the configuration.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(e Event) {
	log.Debug().
		Str("type", e.Type).
		Str("device", e.DeviceNumber).
		Msg("event broker disabled, dropping event")
}
