package main

import (
	"context"
	"errors"
	"net/http"

	"storefeed/go/analytics"
	"storefeed/go/app"
	"storefeed/go/netlify"
	"storefeed/go/rabbitmq"
	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

func newHandler(client *adminapi.Client) app.NetlifyFunction {
	cfg := client.Config()
	relay := analytics.NewRelay(analytics.ConfigFromEnv())
	mq := rabbitmq.ConfigFromEnv()

	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		if cfg.WebhookSecret != "" {
			if err := shopify.ValidateWebhook(cfg, request); err != nil {
				return app.NetlifyLogAndResponse(401, "Invalid Shopify webhook", err)
			}
		}
		body, err := netlify.Body(request)
		if err != nil {
			return app.NetlifyLogAndResponse(400, "Invalid request body", err)
		}

		outcome, err := relay.RelayOrder(ctx, mq, body)
		if errors.Is(err, analytics.ErrInvalidWebhook) {
			return app.NetlifyLogAndJsonResponse(400, map[string]string{"error": "Invalid order webhook"}, err)
		}
		if err != nil {
			return app.NetlifyLogAndJsonResponse(500, map[string]string{"error": "GA4 failed after retries"}, err)
		}
		return app.NetlifyLogAndJsonResponse(200, outcome, nil)
	}
}

func main() {
	lambda.Start(netlify.ShopifyRoute(
		netlify.Route{Name: "webhook-order-create", Methods: []string{http.MethodPost}},
		newHandler,
	))
}
