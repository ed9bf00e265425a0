package main

import (
	"context"
	"errors"
	"net/http"

	"storefeed/go/app"
	"storefeed/go/catalog"
	"storefeed/go/duplicates"
	"storefeed/go/netlify"
	"storefeed/go/shopify/adminapi"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

func newHandler(client *adminapi.Client) app.NetlifyFunction {
	strategy, err := adminapi.CatalogStrategy(client, catalog.NewFetcher(), adminapi.StrategyREST, adminapi.StrategyOptions{
		Fields: duplicates.Fields,
	})
	if err != nil {
		return app.FailingFunction(500, map[string]string{"error": "Invalid catalog strategy"}, err)
	}

	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		report, err := catalog.Transform(ctx, strategy, duplicates.Find)
		if errors.Is(err, duplicates.ErrNoProducts) {
			return app.NetlifyLogAndResponse(404, "No products found", nil)
		}
		if err != nil {
			return app.NetlifyLogAndResponse(500, err.Error(), err)
		}
		return app.NetlifyLogAndJsonResponse(200, report, nil)
	}
}

func main() {
	lambda.Start(netlify.ShopifyRoute(
		netlify.Route{Name: "duplicates", Methods: []string{http.MethodGet}, Auth: true, Timeout: netlify.FeedTimeout},
		newHandler,
	))
}
