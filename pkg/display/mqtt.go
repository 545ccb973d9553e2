package display

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/coastalhacks/tideclock/pkg/config"
	"github.com/coastalhacks/tideclock/pkg/visualize"
)

const publishTimeout = 10 * time.Second

// MQTT publishes frames to the broker the LED matrix controller listens on.
// The full frame goes to <prefix>/frame retained, and each 8x8 panel gets its
// lit pixels on <prefix>/panel/<n> for hardware that addresses matrices
// individually.
type MQTT struct {
	client      mqtt.Client
	topicPrefix string
}

// NewMQTT connects to the configured broker.
func NewMQTT(cfg config.MQTTConfig) (*MQTT, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required")
	}
	topicPrefix := cfg.TopicPrefix
	if topicPrefix == "" {
		topicPrefix = "tideclock"
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID("tideclock-" + uuid.NewString()[:8])
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return &MQTT{
		client:      client,
		topicPrefix: topicPrefix,
	}, nil
}

func (m *MQTT) Name() string { return "mqtt" }

// framePayload is the full-frame message.
type framePayload struct {
	Updated time.Time                              `json:"updated"`
	Cells   [visualize.Hours][visualize.Rows]uint8 `json:"cells"`
}

// pixel is one lit LED in a panel message.
type pixel struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	Color uint8 `json:"color"`
}

func (m *MQTT) Render(ctx context.Context, f *visualize.Frame) error {
	payload := framePayload{Updated: time.Now()}
	for x := 0; x < visualize.Hours; x++ {
		for y := 0; y < visualize.Rows; y++ {
			payload.Cells[x][y] = uint8(f.At(x, y))
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	if err := m.publish(ctx, m.topicPrefix+"/frame", body, true); err != nil {
		return err
	}

	for p := 0; p < visualize.Panels; p++ {
		panel := f.Panel(p)
		pixels := make([]pixel, 0, visualize.PanelSize*visualize.Rows)
		for x := 0; x < visualize.PanelSize; x++ {
			for y := 0; y < visualize.Rows; y++ {
				if panel[x][y] != visualize.Off {
					pixels = append(pixels, pixel{X: x, Y: y, Color: uint8(panel[x][y])})
				}
			}
		}
		body, err := json.Marshal(pixels)
		if err != nil {
			return fmt.Errorf("encoding panel %d: %w", p, err)
		}
		topic := fmt.Sprintf("%s/panel/%d", m.topicPrefix, p)
		if err := m.publish(ctx, topic, body, false); err != nil {
			return err
		}
	}

	return nil
}

func (m *MQTT) publish(ctx context.Context, topic string, body []byte, retained bool) error {
	token := m.client.Publish(topic, 0, retained, body)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-token.Done():
	case <-time.After(publishTimeout):
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (m *MQTT) Close() error {
	if m.client != nil && m.client.IsConnected() {
		m.client.Disconnect(250)
	}
	return nil
}
