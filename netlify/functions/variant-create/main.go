package main

import (
	"context"
	"errors"
	"net/http"

	"storefeed/go/app"
	"storefeed/go/netlify"
	"storefeed/go/shopify/adminapi"
	"storefeed/go/variants"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

func newHandler(client *adminapi.Client) app.NetlifyFunction {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		var payload variants.Request
		if err := netlify.DecodeJSON(request, &payload); err != nil {
			return app.NetlifyLogAndJsonResponse(400, map[string]string{"error": "Invalid JSON in request body"}, err)
		}
		item, err := payload.First()
		if err != nil {
			return app.NetlifyLogAndJsonResponse(400, map[string]string{"error": "Missing items in payload"}, err)
		}

		created, err := variants.CreateDynamic(ctx, client, item)
		if errors.Is(err, variants.ErrMissingItems) {
			return app.NetlifyLogAndJsonResponse(400, map[string]string{"error": "Missing items in payload"}, err)
		}
		if err != nil {
			return app.NetlifyLogAndJsonResponse(500, map[string]string{"error": err.Error()}, err)
		}
		return app.NetlifyLogAndJsonResponse(200, created, nil)
	}
}

func main() {
	lambda.Start(netlify.ShopifyRoute(
		netlify.Route{Name: "variant-create", Methods: []string{http.MethodPost}, CORS: true},
		newHandler,
	))
}
