package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"storefeed/go/helpers"
	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi"

	"github.com/aws/aws-lambda-go/events"
)

const orderWebhook = `{"id":4711,"total_price":"99.90","currency":"EUR","tags":"manuell","line_items":[{"title":"Tisch","price":"99.90","quantity":1}]}`

func sign(secret string, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func webhookRequest(body string, signature string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Body:       body,
		Headers: map[string]string{
			"x-shopify-shop-domain": "shop.myshopify.com",
			"x-shopify-topic":       "orders/create",
			"x-shopify-hmac-sha256": signature,
		},
	}
}

func TestHandler(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	tests := []struct {
		Title          string
		Secret         string
		RequiredTag    string
		Request        events.APIGatewayProxyRequest
		ExpectedStatus int
		ExpectedBody   string
		ExpectedCalls  int32
	}{
		{
			Title:          "Bad signature",
			Secret:         "s3cret",
			Request:        webhookRequest(orderWebhook, sign("other", orderWebhook)),
			ExpectedStatus: 401,
			ExpectedBody:   "Invalid Shopify webhook",
		},
		{
			Title:          "Invalid payload",
			Request:        webhookRequest(`{"total_price":"1"}`, ""),
			ExpectedStatus: 400,
			ExpectedBody:   "Invalid order webhook",
		},
		{
			Title:          "Untagged order",
			RequiredTag:    "online",
			Request:        webhookRequest(orderWebhook, ""),
			ExpectedStatus: 200,
			ExpectedBody:   `"skipped":true`,
		},
		{
			Title:          "Relayed",
			Secret:         "s3cret",
			Request:        webhookRequest(orderWebhook, sign("s3cret", orderWebhook)),
			ExpectedStatus: 200,
			ExpectedBody:   `{"success":true}`,
			ExpectedCalls:  1,
		},
	}
	for _, test := range tests {
		t.Run(test.Title, func(t *testing.T) {
			calls.Store(0)
			defer helpers.TempEnvVars(map[string]string{
				"GA4_MEASUREMENT_ID": "G-TEST",
				"GA4_API_SECRET":     "api",
				"GA4_REQUIRED_TAG":   test.RequiredTag,
				"GA4_ENDPOINT":       server.URL,
				"RABBITMQ_HOST":      "",
			})()
			client := adminapi.NewClient(shopify.Config{HostName: "shop.myshopify.com", AccessToken: "T", APIVersion: "2025-04", WebhookSecret: test.Secret})

			res, _ := newHandler(client)(context.Background(), test.Request)
			if res.StatusCode != test.ExpectedStatus || !strings.Contains(res.Body, test.ExpectedBody) {
				t.Fatalf("unexpected response %v %v", res.StatusCode, res.Body)
			}
			if calls.Load() != test.ExpectedCalls {
				t.Fatalf("expected %d GA4 calls, got %d", test.ExpectedCalls, calls.Load())
			}
		})
	}
}
