package main

import (
	"context"
	"errors"
	"net/http"

	"storefeed/go/app"
	"storefeed/go/discounts"
	"storefeed/go/netlify"
	"storefeed/go/shopify/adminapi"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

func newHandler(client *adminapi.Client) app.NetlifyFunction {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		code := netlify.QueryParam(request, "code")
		if code == "" {
			return app.NetlifyLogAndJsonResponse(400, map[string]string{"error": "Discount code is required"}, nil)
		}

		info, err := discounts.Lookup(ctx, client, code)
		if errors.Is(err, discounts.ErrNotFound) {
			return app.NetlifyLogAndJsonResponse(404, map[string]any{"error": "Discount code not found", "valid": false}, nil)
		}
		if err != nil {
			return app.NetlifyLogAndJsonResponse(500, netlify.ErrorBody("Failed to lookup discount", err), err)
		}
		return app.NetlifyJsonResponse(200, info)
	}
}

func main() {
	lambda.Start(netlify.ShopifyRoute(
		netlify.Route{Name: "discount", Methods: []string{http.MethodGet}, CORS: true},
		newHandler,
	))
}
