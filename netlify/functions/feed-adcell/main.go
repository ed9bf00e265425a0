package main

import (
	"net/http"

	"storefeed/go/app"
	"storefeed/go/catalog"
	"storefeed/go/feeds"
	"storefeed/go/netlify"
	"storefeed/go/shopify/adminapi"
	"storefeed/go/shopify/adminapi/types"

	"github.com/aws/aws-lambda-go/lambda"
)

func newHandler(client *adminapi.Client) app.NetlifyFunction {
	strategy, err := adminapi.CatalogStrategy(client, catalog.NewFetcher(), adminapi.StrategyPaging, adminapi.StrategyOptions{})
	if err != nil {
		return app.FailingFunction(500, map[string]string{"error": "Invalid catalog strategy"}, err)
	}
	opts := feeds.DefaultOptions(client.Config().ShopDomain)

	return netlify.CSVFeed("adcell", netlify.Always(strategy), func(products []types.Product) ([]byte, error) {
		return feeds.AdcellCSV(products, opts)
	}, "")
}

func main() {
	lambda.Start(netlify.ShopifyRoute(
		netlify.Route{Name: "feed-adcell", Methods: []string{http.MethodGet}, Timeout: netlify.FeedTimeout},
		newHandler,
	))
}
