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

func newHandler(client *adminapi.Client) app.NetlifyFunction {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		result, err := metafields.DeleteOrphaned(ctx, client, metafields.ProtectedNames)
		if err != nil {
			return app.NetlifyLogAndResponse(500, err.Error(), err)
		}
		if result.Total == 0 {
			return app.NetlifyLogAndJsonResponse(200, map[string]string{"message": "No metafields found in namespace 'custom'"}, nil)
		}
		if len(result.UserErrors) > 0 {
			return app.NetlifyLogAndJsonResponse(500, map[string]any{
				"error":      "Failed to delete metafields",
				"userErrors": result.UserErrors,
			}, adminapi.UserErrors(result.UserErrors))
		}
		return app.NetlifyLogAndJsonResponse(200, map[string]any{
			"message":         "Orphaned metafields processed",
			"totalMetafields": result.Total,
			"deleted":         result.Deleted,
		}, nil)
	}
}

func main() {
	lambda.Start(netlify.ShopifyRoute(
		netlify.Route{Name: "metafields-delete", Methods: []string{http.MethodGet}, Auth: true, Timeout: netlify.FeedTimeout},
		newHandler,
	))
}
