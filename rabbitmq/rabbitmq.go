package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net"
	"net/url"
	"os"

	"storefeed/go/logging"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrNotConfigured = errors.New("invalid or incomplete RabbitMQ environment variables")

type Config struct {
	Host     string
	User     string
	Password string
}

func ConfigFromEnv() Config {
	return Config{
		Host:     os.Getenv("RABBITMQ_HOST"),
		User:     os.Getenv("RABBITMQ_USER"),
		Password: os.Getenv("RABBITMQ_PASSWORD"),
	}
}

func (c Config) Configured() bool {
	return c.Host != "" && c.User != "" && c.Password != ""
}

func (c Config) URL() string {
	return (&url.URL{Scheme: "amqp", User: url.UserPassword(c.User, c.Password), Host: c.Host}).String()
}

type Message struct {
	Exchange    string
	RoutingKey  string
	ContentType string
	Body        []byte
	Headers     amqp.Table
}

type PublishFunc func(ctx context.Context, cfg Config, msg Message) error

// Publish opens a connection for a single persistent message. Functions are
// short lived, so nothing is pooled.
func Publish(ctx context.Context, cfg Config, msg Message) error {
	if !cfg.Configured() {
		return ErrNotConfigured
	}

	config := amqp.Config{
		Dial: func(network, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(ctx, network, addr)
		},
	}
	conn, err := amqp.DialConfig(cfg.URL(), config)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ:\n>>> %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open a channel to RabbitMQ:\n>>> %w", err)
	}
	defer ch.Close()

	headers := amqp.Table{}
	maps.Copy(headers, msg.Headers)
	contentType := msg.ContentType
	if contentType == "" {
		contentType = "text/plain"
	}

	err = ch.PublishWithContext(ctx, msg.Exchange, msg.RoutingKey, false, false, amqp.Publishing{
		ContentType:  contentType,
		Body:         msg.Body,
		DeliveryMode: amqp.Persistent,
		Headers:      headers,
	})
	if err != nil {
		return fmt.Errorf("failed to publish a message to RabbitMQ:\n>>> %w", err)
	}

	logger := logging.NewLogger("rabbitmq")
	logger.Info().Str("exchange", msg.Exchange).Str("key", msg.RoutingKey).Msg("published message to RabbitMQ")

	return nil
}
