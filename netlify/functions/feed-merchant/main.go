package main

import (
	"context"
	"encoding/json"
	"net/http"

	"storefeed/go/app"
	"storefeed/go/catalog"
	"storefeed/go/feeds"
	"storefeed/go/netlify"
	"storefeed/go/shopify/adminapi"
	"storefeed/go/shopify/adminapi/types"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

func newHandler(client *adminapi.Client) app.NetlifyFunction {
	strategy, err := adminapi.CatalogStrategy(client, catalog.NewFetcher(), adminapi.StrategyREST, adminapi.StrategyOptions{})
	if err != nil {
		return app.FailingFunction(500, map[string]string{"error": "Invalid catalog strategy"}, err)
	}
	opts := feeds.DefaultOptions(client.Config().ShopDomain)

	xmlFeed := netlify.XMLFeed("merchant", netlify.Always(strategy), func(products []types.Product) ([]byte, error) {
		return feeds.MerchantXML(products, opts)
	})

	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		var render func(products []types.Product) ([]byte, error)
		switch netlify.QueryParam(request, "type") {
		case "xml":
			return xmlFeed(ctx, request)
		case "json":
			render = func(products []types.Product) ([]byte, error) {
				return feeds.MerchantJSON(products, opts)
			}
		default:
			// raw catalog for debugging the feed input
			render = func(products []types.Product) ([]byte, error) {
				return json.Marshal(products)
			}
		}

		body, err := catalog.Transform(ctx, strategy, render)
		if err != nil {
			return app.NetlifyLogAndResponse(500, err.Error(), err)
		}
		return app.NetlifyResponseWithHeaders(200, string(body), map[string]string{
			"Content-Type": "application/json",
		})
	}
}

func main() {
	lambda.Start(netlify.ShopifyRoute(
		netlify.Route{Name: "feed-merchant", Methods: []string{http.MethodGet}, Timeout: netlify.FeedTimeout},
		newHandler,
	))
}
