package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"storefeed/go/helpers"

	"github.com/aws/aws-lambda-go/events"
)

func okFunction(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
	return NetlifyResponse(200, "OK")
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		Title          string
		AuthKey        string
		Header         string
		ExpectedStatus int
	}{
		{Title: "No key configured", AuthKey: "", Header: "Bearer x", ExpectedStatus: 401},
		{Title: "Missing header", AuthKey: "k", Header: "", ExpectedStatus: 401},
		{Title: "Wrong token", AuthKey: "k", Header: "Bearer nope", ExpectedStatus: 401},
		{Title: "OK", AuthKey: "k", Header: "Bearer k", ExpectedStatus: 200},
	}
	for _, tt := range tests {
		t.Run(tt.Title, func(t *testing.T) {
			defer helpers.TempEnvVars(map[string]string{"AUTH_KEY": tt.AuthKey})()
			headers := map[string]string{}
			if tt.Header != "" {
				headers["authorization"] = tt.Header
			}
			res, _ := AuthMiddleware(okFunction)(context.Background(), events.APIGatewayProxyRequest{Headers: headers})
			if res.StatusCode != tt.ExpectedStatus {
				t.Fatalf("expected %v, got %v", tt.ExpectedStatus, res.StatusCode)
			}
		})
	}
}

func TestCheckEnvMiddleware(t *testing.T) {
	tests := []struct {
		Title          string
		Env            string
		Disabled       string
		ExpectedStatus int
	}{
		{Title: "No env", Env: "", ExpectedStatus: 404},
		{Title: "Disabled env", Env: "DEV", Disabled: "STAGING,DEV", ExpectedStatus: 404},
		{Title: "Enabled env", Env: "PROD", Disabled: "DEV", ExpectedStatus: 200},
	}
	for _, tt := range tests {
		t.Run(tt.Title, func(t *testing.T) {
			defer helpers.TempEnvVars(map[string]string{"ENV": tt.Env, "ENV_DISABLE": tt.Disabled})()
			res, _ := CheckEnvMiddleware(okFunction)(context.Background(), events.APIGatewayProxyRequest{})
			if res.StatusCode != tt.ExpectedStatus {
				t.Fatalf("expected %v, got %v", tt.ExpectedStatus, res.StatusCode)
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	function := CORSMiddleware(okFunction, "POST")

	res, _ := function(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "OPTIONS"})
	if res.StatusCode != 204 {
		t.Fatalf("expected 204 for preflight, got %v", res.StatusCode)
	}
	if res.Headers["Access-Control-Allow-Methods"] != "POST, OPTIONS" {
		t.Fatalf("unexpected allowed methods: %v", res.Headers)
	}

	res, _ = function(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "POST"})
	if res.StatusCode != 200 || res.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Fatalf("expected CORS headers on regular response, got %v %v", res.StatusCode, res.Headers)
	}
}

func TestMethodMiddleware(t *testing.T) {
	function := MethodMiddleware(okFunction, "GET")
	res, _ := function(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "DELETE"})
	if res.StatusCode != 405 {
		t.Fatalf("expected 405, got %v", res.StatusCode)
	}
	res, _ = function(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "GET"})
	if res.StatusCode != 200 {
		t.Fatalf("expected 200, got %v", res.StatusCode)
	}
}

func TestTimeoutMiddlewareWith(t *testing.T) {
	slow := func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
		}
		return NetlifyResponse(200, "late")
	}
	res, _ := TimeoutMiddlewareWith(slow, 20*time.Millisecond)(context.Background(), events.APIGatewayProxyRequest{})
	if res.StatusCode != 504 {
		t.Fatalf("expected 504, got %v", res.StatusCode)
	}
	res, _ = TimeoutMiddleware(okFunction)(context.Background(), events.APIGatewayProxyRequest{})
	if res.StatusCode != 200 {
		t.Fatalf("expected 200, got %v", res.StatusCode)
	}
}

func TestNetlifyJsonResponse(t *testing.T) {
	res, _ := NetlifyJsonResponse(200, map[string]any{"ok": true})
	if res.Body != `{"ok":true}` || res.Headers["Content-Type"] != "application/json" {
		t.Fatalf("unexpected response %+v", res)
	}
	res, _ = NetlifyJsonResponse(200, make(chan int))
	if res.StatusCode != 500 {
		t.Fatalf("expected 500 for unmarshallable data, got %v", res.StatusCode)
	}
}

func TestFailingFunction(t *testing.T) {
	res, _ := FailingFunction(500, map[string]string{"error": "Missing Shopify credentials"}, nil)(context.Background(), events.APIGatewayProxyRequest{})
	if res.StatusCode != 500 || !strings.Contains(res.Body, "Missing Shopify credentials") {
		t.Fatalf("unexpected response %+v", res)
	}
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	if val, found := GetCacheValue(ctx, []any{"a"}, "fallback"); found || val != "fallback" {
		t.Fatalf("expected fallback without cache, got %v %v", val, found)
	}
	SetCacheValue(ctx, []any{"a"}, "ignored")()

	ctx = ContextWithCache(ctx)
	if ContextWithCache(ctx) != ctx {
		t.Fatalf("expected ContextWithCache to keep an existing cache")
	}
	reset := SetCacheValue(ctx, []any{"Shopify", 1}, "one")
	if val, found := GetCacheValue(ctx, []any{"Shopify", 1}, ""); !found || val != "one" {
		t.Fatalf("expected cached value, got %v %v", val, found)
	}
	if val, found := GetCacheValue(ctx, []any{"Shopify", 1}, 0); found || val != 0 {
		t.Fatalf("expected fallback on type mismatch, got %v %v", val, found)
	}
	inner := SetCacheValue(ctx, []any{"Shopify", 1}, "two")
	inner()
	if val, _ := GetCacheValue(ctx, []any{"Shopify", 1}, ""); val != "one" {
		t.Fatalf("expected restored value, got %v", val)
	}
	reset()
	if _, found := GetCacheValue(ctx, []any{"Shopify", 1}, ""); found {
		t.Fatalf("expected value to be removed")
	}
}
