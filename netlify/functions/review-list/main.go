package main

import (
	"context"
	"net/http"

	"storefeed/go/app"
	"storefeed/go/netlify"
	"storefeed/go/reviews"
	"storefeed/go/shopify/adminapi"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

func newHandler(client *adminapi.Client) app.NetlifyFunction {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		ids, err := reviews.List(ctx, client)
		if err != nil {
			return app.NetlifyLogAndJsonResponse(500, map[string]string{"error": "Failed to load reviews"}, err)
		}
		return app.NetlifyJsonResponse(200, map[string]any{"reviews": ids})
	}
}

func main() {
	lambda.Start(netlify.ShopifyRoute(
		netlify.Route{Name: "review-list", Methods: []string{http.MethodGet}, CORS: true},
		newHandler,
	))
}
