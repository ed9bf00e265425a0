package main

import (
	"net/http"
	"time"

	"storefeed/go/app"
	"storefeed/go/catalog"
	"storefeed/go/feeds"
	"storefeed/go/netlify"
	"storefeed/go/shopify/adminapi"
	"storefeed/go/shopify/adminapi/types"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

const (
	pollInterval = 2 * time.Second
	pollTimeout  = 10 * time.Minute
)

func newHandler(client *adminapi.Client) app.NetlifyFunction {
	// both strategies share the request budget of the same credentials
	fetcher := catalog.NewFetcher()
	bulk, err := adminapi.CatalogStrategy(client, fetcher, adminapi.StrategyBulk, adminapi.StrategyOptions{
		PollInterval: pollInterval,
		PollTimeout:  pollTimeout,
	})
	if err != nil {
		return app.FailingFunction(500, map[string]string{"error": "Invalid catalog strategy"}, err)
	}
	paging, err := adminapi.CatalogStrategy(client, fetcher, adminapi.StrategyPaging, adminapi.StrategyOptions{})
	if err != nil {
		return app.FailingFunction(500, map[string]string{"error": "Invalid catalog strategy"}, err)
	}
	opts := feeds.DefaultOptions(client.Config().ShopDomain)

	strategy := func(request events.APIGatewayProxyRequest) catalog.Strategy {
		if netlify.QueryParam(request, "useBulk") == "false" {
			return paging
		}
		return bulk
	}
	return netlify.CSVFeed("hood", strategy, func(products []types.Product) ([]byte, error) {
		return feeds.HoodCSV(products, opts)
	}, "products-export.csv")
}

func main() {
	lambda.Start(netlify.ShopifyRoute(
		netlify.Route{Name: "feed-hood", Methods: []string{http.MethodGet}, Timeout: netlify.FeedTimeout},
		newHandler,
	))
}
