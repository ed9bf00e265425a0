package main

import (
	"context"
	"errors"
	"net/http"

	"storefeed/go/app"
	"storefeed/go/netlify"
	"storefeed/go/orders"
	"storefeed/go/shopify/adminapi"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

func newHandler(client *adminapi.Client) app.NetlifyFunction {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		orderId := netlify.QueryParam(request, "order_id")
		if orderId == "" {
			return app.NetlifyLogAndJsonResponse(400, map[string]string{"error": "order_id fehlt"}, nil)
		}

		details, err := orders.Get(ctx, client, orderId)
		if errors.Is(err, orders.ErrNotFound) {
			return app.NetlifyLogAndJsonResponse(404, map[string]string{"error": "Order nicht gefunden"}, nil)
		}
		if err != nil {
			return app.NetlifyLogAndJsonResponse(500, map[string]string{"error": "Fehler beim Laden der Bestellung"}, err)
		}
		return app.NetlifyJsonResponse(200, details)
	}
}

func main() {
	lambda.Start(netlify.ShopifyRoute(
		netlify.Route{Name: "order-get", Methods: []string{http.MethodGet}, CORS: true},
		newHandler,
	))
}
