package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"storefeed/go/app"
	"storefeed/go/logging"
	"storefeed/go/rabbitmq"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

const (
	DeadLetterExchange   = "shopify.webhook"
	DeadLetterRoutingKey = "analytics.deadletter"

	defaultAttempts  = 3
	defaultRetryWait = time.Second
)

var ErrNotConfigured = errors.New("missing GA4 measurement id or api secret")

// leveledLogger routes retryablehttp's retry logs to zerolog.
type leveledLogger struct {
	logger zerolog.Logger
}

func (l leveledLogger) log(event *zerolog.Event, msg string, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		event = event.Interface(fmt.Sprint(keysAndValues[i]), keysAndValues[i+1])
	}
	event.Msg(msg)
}

func (l leveledLogger) Error(msg string, keysAndValues ...any) {
	l.log(l.logger.Error(), msg, keysAndValues)
}
func (l leveledLogger) Info(msg string, keysAndValues ...any) {
	l.log(l.logger.Info(), msg, keysAndValues)
}
func (l leveledLogger) Debug(msg string, keysAndValues ...any) {
	l.log(l.logger.Debug(), msg, keysAndValues)
}
func (l leveledLogger) Warn(msg string, keysAndValues ...any) {
	l.log(l.logger.Warn(), msg, keysAndValues)
}

type Relay struct {
	cfg    Config
	client *retryablehttp.Client
}

type RelayOption func(*retryablehttp.Client)

// WithRetryWait sets the constant pause between attempts.
func WithRetryWait(wait time.Duration) RelayOption {
	return func(c *retryablehttp.Client) {
		c.RetryWaitMin = wait
		c.RetryWaitMax = wait
	}
}

func WithAttempts(attempts int) RelayOption {
	return func(c *retryablehttp.Client) {
		c.RetryMax = attempts - 1
	}
}

func NewRelay(cfg Config, opts ...RelayOption) *Relay {
	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = 5 * time.Second
	client.RetryMax = defaultAttempts - 1
	client.RetryWaitMin = defaultRetryWait
	client.RetryWaitMax = defaultRetryWait
	client.Backoff = func(min, _ time.Duration, _ int, _ *http.Response) time.Duration {
		return min
	}
	// any non-2xx answer is worth another attempt, not only 5xx and 429
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, nil
		}
		return resp.StatusCode < 200 || resp.StatusCode > 299, nil
	}
	client.Logger = leveledLogger{logger: logging.NewLogger("analytics")}
	for _, opt := range opts {
		opt(client)
	}
	return &Relay{cfg: cfg, client: client}
}

func (r *Relay) target() string {
	query := url.Values{}
	query.Set("measurement_id", r.cfg.MeasurementId)
	query.Set("api_secret", r.cfg.ApiSecret)
	return r.cfg.Endpoint + "?" + query.Encode()
}

// Send posts the payload until it is accepted or the attempts are used up.
func (r *Relay) Send(ctx context.Context, payload Payload) error {
	if r.cfg.MeasurementId == "" || r.cfg.ApiSecret == "" {
		return ErrNotConfigured
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshalling GA4 payload:\n>>> %w", err)
	}
	request, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, r.target(), body)
	if err != nil {
		return fmt.Errorf("error creating GA4 request:\n>>> %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := r.client.Do(request)
	if err != nil {
		return fmt.Errorf("GA4 failed after retries:\n>>> %w", err)
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, response.Body)
	return nil
}

// DeadLetter parks a webhook that could not be relayed on RabbitMQ.
func DeadLetter(ctx context.Context, cfg rabbitmq.Config, webhook []byte, cause error) error {
	publish, _ := app.GetCacheValue(ctx, []any{"RabbitMQ", "Publish"}, rabbitmq.PublishFunc(rabbitmq.Publish))
	return publish(ctx, cfg, rabbitmq.Message{
		Exchange:    DeadLetterExchange,
		RoutingKey:  DeadLetterRoutingKey,
		ContentType: "application/json",
		Body:        webhook,
		Headers:     map[string]any{"x-error": cause.Error()},
	})
}

var ErrInvalidWebhook = errors.New("invalid order webhook")

type Outcome struct {
	Success bool `json:"success"`
	Skipped bool `json:"skipped,omitempty"`
}

// RelayOrder sends the purchase event of an orders/create webhook. When
// every attempt fails the raw webhook is dead-lettered, if RabbitMQ is
// configured, and the send error is returned.
func (r *Relay) RelayOrder(ctx context.Context, mq rabbitmq.Config, webhook []byte) (*Outcome, error) {
	var order OrderWebhook
	if err := json.Unmarshal(webhook, &order); err != nil {
		return nil, fmt.Errorf("%w:\n>>> %w", ErrInvalidWebhook, err)
	}
	if order.Id == "" {
		return nil, fmt.Errorf("%w: missing order id", ErrInvalidWebhook)
	}
	logger := logging.NewLogger("analytics").With().Str("orderId", string(order.Id)).Logger()
	if r.cfg.RequiredTag != "" && !order.HasTag(r.cfg.RequiredTag) {
		logger.Info().Str("tag", r.cfg.RequiredTag).Msg("order not tagged, skipping GA4 tracking")
		return &Outcome{Success: true, Skipped: true}, nil
	}

	sendErr := r.Send(ctx, PurchaseEvent(order, r.cfg.ClientId))
	if sendErr == nil {
		return &Outcome{Success: true}, nil
	}
	if mq.Configured() {
		if err := DeadLetter(ctx, mq, webhook, sendErr); err != nil {
			logger.Error().Err(err).Msg("failed to dead-letter order webhook")
		} else {
			logger.Warn().Msg("order webhook dead-lettered")
		}
	}
	return nil, sendErr
}
