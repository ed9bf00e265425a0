package main

import (
	"context"
	"strings"
	"testing"

	"storefeed/go/app"
	"storefeed/go/helpers"
	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi"

	"github.com/aws/aws-lambda-go/events"
)

func TestHandler(t *testing.T) {
	tests := []struct {
		Title          string
		OrderId        string
		Response       any
		ExpectedStatus int
		ExpectedBody   string
	}{
		{Title: "Missing order id", ExpectedStatus: 400, ExpectedBody: "order_id fehlt"},
		{
			Title:          "Unknown order",
			OrderId:        "77",
			Response:       map[string]any{"data": map[string]any{"order": nil}},
			ExpectedStatus: 404,
			ExpectedBody:   "Order nicht gefunden",
		},
		{
			Title:   "Found",
			OrderId: "1001",
			Response: map[string]any{"data": map[string]any{"order": map[string]any{
				"id":        "gid://shopify/Order/1001",
				"name":      "#1001",
				"lineItems": map[string]any{"edges": []any{}},
			}}},
			ExpectedStatus: 200,
			ExpectedBody:   `"name":"#1001"`,
		},
	}
	for _, test := range tests {
		t.Run(test.Title, func(t *testing.T) {
			graphQLQuery := func(_ context.Context, _ string, _ string, _ string, _ string, _ map[string]any) (any, error) {
				return test.Response, nil
			}
			ctx := app.ContextWithCache(context.Background())
			defer app.SetCacheValue(ctx, []any{"Shopify", "GraphQLQuery"}, helpers.GraphQLQueryFunc(graphQLQuery))()

			client := adminapi.NewClient(shopify.Config{HostName: "shop.myshopify.com", AccessToken: "T", APIVersion: "2025-04"})
			request := events.APIGatewayProxyRequest{QueryStringParameters: map[string]string{"order_id": test.OrderId}}
			res, _ := newHandler(client)(ctx, request)
			if res.StatusCode != test.ExpectedStatus || !strings.Contains(res.Body, test.ExpectedBody) {
				t.Fatalf("unexpected response %v %v", res.StatusCode, res.Body)
			}
		})
	}
}
