package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/campinnova/pkg/log"
)

type MQTTConfig struct {
	Broker   string `env:"MQTT_BROKER,required,notEmpty"`
	Topic    string `env:"MQTT_TOPIC" envDefault:"campinnova/crisis-alerts"`
	Username string `env:"MQTT_USERNAME"`
	Password string `env:"MQTT_PASSWORD"`
	ClientID string `env:"MQTT_CLIENT_ID" envDefault:"campinnova-relay"`
}

func LoadMQTTConfig() (*MQTTConfig, error) {
	c := &MQTTConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func NewMQTTConfig(ctx context.Context) *MQTTConfig {
	c, err := LoadMQTTConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse MQTT config")
	}
	return c
}
