package main

import (
	"context"
	"errors"
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
		var input reviews.Input
		if err := netlify.DecodeJSON(request, &input); err != nil {
			return app.NetlifyLogAndJsonResponse(400, map[string]string{"error": "Invalid JSON in request body"}, err)
		}

		created, err := reviews.Create(ctx, client, input)
		if errors.Is(err, reviews.ErrInvalidInput) {
			return app.NetlifyLogAndJsonResponse(400, map[string]string{"error": "Missing fields"}, err)
		}
		if err != nil {
			return app.NetlifyLogAndJsonResponse(500, map[string]string{"error": err.Error()}, err)
		}
		return app.NetlifyLogAndJsonResponse(200, created, nil)
	}
}

func main() {
	lambda.Start(netlify.ShopifyRoute(
		netlify.Route{Name: "review-create", Methods: []string{http.MethodPost}, CORS: true},
		newHandler,
	))
}
