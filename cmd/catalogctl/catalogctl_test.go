package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storefeed/go/app"
	"storefeed/go/helpers"
)

const restProducts = `{"products":[
	{"id":1,"title":"Tisch alt","handle":"tisch-alt","status":"active","created_at":"2023-01-01T10:00:00+01:00","variants":[{"id":11,"sku":"T-1","price":"100.00"}]},
	{"id":2,"title":"Tisch neu","handle":"tisch-neu","status":"active","created_at":"2024-01-01T10:00:00+01:00","variants":[{"id":21,"sku":"T-1","price":"120.00"}]}
]}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	defer helpers.TempEnvVars(map[string]string{
		"ENV":                        "TEST",
		"SHOPIFY_HOST_NAME":          "shop.myshopify.com",
		"SHOPIFY_ADMIN_ACCESS_TOKEN": "token",
		"SHOPIFY_LOCATION_ID":        "",
		"SHOP_DOMAIN":                "https://shop.example",
	})()

	restRequest := func(_ context.Context, _ string, _ string, _ string, _ string, _ any) (*helpers.RESTResponse, error) {
		return &helpers.RESTResponse{StatusCode: 200, Header: http.Header{}, Body: []byte(restProducts)}, nil
	}
	ctx := app.ContextWithCache(context.Background())
	defer app.SetCacheValue(ctx, []any{"Shopify", "RESTRequest"}, helpers.RESTRequestFunc(restRequest))()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), err
}

func TestDuplicatesCmd(t *testing.T) {
	out, err := run(t, "duplicates")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, `"count": 1`) || !strings.Contains(out, `"productIdsToDelete": [`) || !strings.Contains(out, "1\n") {
		t.Fatalf("Unexpected report %s", out)
	}
}

func TestFeedCmd(t *testing.T) {
	tests := []struct {
		Title    string
		Args     []string
		Expected string
		Error    string
	}{
		{Title: "Google XML", Args: []string{"feed", "--format", "google"}, Expected: "https://shop.example/products/tisch-alt"},
		{Title: "Merchant JSON", Args: []string{"feed", "-f", "merchant-json"}, Expected: `"offerId":"11"`},
		{Title: "Unknown format", Args: []string{"feed", "-f", "csv"}, Error: "unknown format"},
		{Title: "Unknown strategy", Args: []string{"feed", "-s", "ftp"}, Error: "unknown catalog strategy"},
	}
	for _, tt := range tests {
		t.Run(tt.Title, func(t *testing.T) {
			out, err := run(t, tt.Args...)
			if tt.Error != "" {
				if err == nil || !strings.Contains(err.Error(), tt.Error) {
					t.Fatalf("Expected error containing %q, got %v", tt.Error, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.Expected) {
				t.Fatalf("Expected output containing %q, got %s", tt.Expected, out)
			}
		})
	}
}

func TestFeedCmd_OutFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "hood.csv")
	out, err := run(t, "feed", "-f", "hood", "--out", target)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != "" {
		t.Fatalf("Expected nothing on stdout, got %s", out)
	}
	body, err := os.ReadFile(target)
	if err != nil || !strings.Contains(string(body), "Tisch alt") {
		t.Fatalf("Unexpected file content %q (%v)", body, err)
	}
}
