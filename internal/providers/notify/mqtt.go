package notify

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"
	"github.com/sandevgo/campinnova/internal/config"
	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/pkg/log"
)

var ErrNotConnected = errors.New("mqtt notifier not started")

// MQTTNotifier publishes anonymized crisis alerts to a broker topic watched by the campus crisis team.
type MQTTNotifier struct {
	cfg *config.MQTTConfig
	cm  *autopaho.ConnectionManager
}

func NewMQTTNotifier(cfg *config.MQTTConfig) *MQTTNotifier {
	return &MQTTNotifier{cfg: cfg}
}

func (n *MQTTNotifier) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	brokerURL, err := url.Parse(n.cfg.Broker)
	if err != nil {
		return fmt.Errorf("parse mqtt broker URL: %w", err)
	}

	pahoCfg := autopaho.ClientConfig{
		ServerUrls:      []*url.URL{brokerURL},
		KeepAlive:       30,
		ConnectUsername: n.cfg.Username,
		ConnectPassword: []byte(n.cfg.Password),
		OnConnectionUp: func(_ *autopaho.ConnectionManager, _ *paho.Connack) {
			logger.Info().Str("broker", n.cfg.Broker).Msg("mqtt connected to broker")
		},
		OnConnectError: func(err error) {
			logger.Warn().Err(err).Msg("mqtt connection error")
		},
		ClientConfig: paho.ClientConfig{
			ClientID: n.cfg.ClientID,
		},
	}

	if brokerURL.Scheme == "mqtts" || brokerURL.Scheme == "ssl" {
		pahoCfg.TlsCfg = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	cm, err := autopaho.NewConnection(ctx, pahoCfg)
	if err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	n.cm = cm

	connCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := cm.AwaitConnection(connCtx); err != nil {
		// autopaho keeps retrying in the background.
		logger.Warn().Err(err).Msg("mqtt initial connection timed out, will retry in background")
	}
	return nil
}

func (n *MQTTNotifier) Shutdown(ctx context.Context) error {
	if n.cm == nil {
		return nil
	}
	return n.cm.Disconnect(ctx)
}

func (n *MQTTNotifier) Notify(ctx context.Context, alert core.Alert) error {
	if n.cm == nil {
		return ErrNotConnected
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	if _, err := n.cm.Publish(ctx, &paho.Publish{
		Topic:   n.cfg.Topic,
		Payload: payload,
		QoS:     1,
	}); err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}
	return nil
}
