package rabbitmq

import (
	"context"
	"errors"
	"testing"

	"storefeed/go/helpers"
)

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		Title      string
		Vars       map[string]string
		Configured bool
	}{
		{Title: "Complete", Vars: map[string]string{"RABBITMQ_HOST": "mq:5672", "RABBITMQ_USER": "u", "RABBITMQ_PASSWORD": "p@ss"}, Configured: true},
		{Title: "Missing password", Vars: map[string]string{"RABBITMQ_HOST": "mq:5672", "RABBITMQ_USER": "u", "RABBITMQ_PASSWORD": ""}, Configured: false},
		{Title: "Nothing set", Vars: map[string]string{"RABBITMQ_HOST": "", "RABBITMQ_USER": "", "RABBITMQ_PASSWORD": ""}, Configured: false},
	}
	for _, tt := range tests {
		t.Run(tt.Title, func(t *testing.T) {
			defer helpers.TempEnvVars(tt.Vars)()
			if got := ConfigFromEnv().Configured(); got != tt.Configured {
				t.Fatalf("Expected configured=%v, got %v", tt.Configured, got)
			}
		})
	}
}

func TestConfig_URL(t *testing.T) {
	cfg := Config{Host: "mq:5672", User: "u", Password: "p@ss"}
	if got := cfg.URL(); got != "amqp://u:p%40ss@mq:5672" {
		t.Fatalf("Unexpected URL %q", got)
	}
}

func TestPublish_NotConfigured(t *testing.T) {
	err := Publish(context.Background(), Config{}, Message{Exchange: "shopify.webhook"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Expected ErrNotConfigured, got %v", err)
	}
}
