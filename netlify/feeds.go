package netlify

import (
	"context"
	"errors"
	"net/http"

	"storefeed/go/app"
	"storefeed/go/catalog"
	"storefeed/go/feeds"
	"storefeed/go/logging"
	"storefeed/go/shopify/adminapi/types"

	"github.com/aws/aws-lambda-go/events"
)

type Render func(products []types.Product) ([]byte, error)

// StrategyFunc picks the fetch strategy per request, e.g. from a query parameter.
type StrategyFunc func(request events.APIGatewayProxyRequest) catalog.Strategy

func Always(strategy catalog.Strategy) StrategyFunc {
	return func(events.APIGatewayProxyRequest) catalog.Strategy {
		return strategy
	}
}

func fetchStatus(err error) int {
	var timeoutErr *catalog.FetchTimeoutError
	if errors.As(err, &timeoutErr) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func renderFeed(ctx context.Context, feed string, strategy catalog.Strategy, render Render) ([]byte, error) {
	logger := logging.NewLogger("feeds").With().Str("feed", feed).Logger()
	body, err := catalog.Transform(ctx, strategy, func(products []types.Product) ([]byte, error) {
		logger.Info().Int("products", len(products)).Msg("catalog fetched")
		return render(products)
	})
	if err != nil {
		logger.Error().Err(err).Msg("feed not built")
	}
	return body, err
}

// XMLFeed answers with the rendered document, or with an XML error document.
func XMLFeed(feed string, strategy StrategyFunc, render Render) app.NetlifyFunction {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		body, err := renderFeed(ctx, feed, strategy(request), render)
		if err != nil {
			return XMLResponse(fetchStatus(err), feeds.ErrorXML(err))
		}
		return XMLResponse(http.StatusOK, body)
	}
}

func CSVFeed(feed string, strategy StrategyFunc, render Render, filename string) app.NetlifyFunction {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		body, err := renderFeed(ctx, feed, strategy(request), render)
		if err != nil {
			return app.NetlifyJsonResponse(fetchStatus(err), map[string]string{"error": err.Error()})
		}
		return CSVResponse(body, filename)
	}
}
