package main

import (
	"context"
	"net/http"

	"storefeed/go/app"
	"storefeed/go/metafields"
	"storefeed/go/netlify"
	"storefeed/go/shopify/adminapi"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

type results struct {
	General []metafields.Result `json:"general"`
}

func newHandler(client *adminapi.Client) app.NetlifyFunction {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		general, err := metafields.CreateDefinitions(ctx, client, metafields.GeneralDefinitions, metafields.OwnerProductVariant)
		if err != nil {
			return app.NetlifyLogAndResponse(500, err.Error(), err)
		}
		return app.NetlifyLogAndJsonResponse(200, map[string]any{
			"message": "Metafield definitions created",
			"results": results{General: general},
		}, nil)
	}
}

func main() {
	lambda.Start(netlify.ShopifyRoute(
		netlify.Route{Name: "metafields-create", Methods: []string{http.MethodGet}, Auth: true, Timeout: netlify.FeedTimeout},
		newHandler,
	))
}
