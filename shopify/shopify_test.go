package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"storefeed/go/helpers"

	"github.com/aws/aws-lambda-go/events"
)

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestValidateWebhook(t *testing.T) {
	cfg := Config{HostName: "shop.myshopify.com", WebhookSecret: "S"}
	body := `{"id":1}`
	headers := func(domain, signature string) map[string]string {
		return map[string]string{
			"x-shopify-shop-domain": domain,
			"x-shopify-hmac-sha256": signature,
			"x-shopify-topic":       "orders/create",
		}
	}
	tests := []struct {
		Title         string
		Config        Config
		Headers       map[string]string
		Body          string
		ExpectedError string
	}{
		{Title: "OK", Config: cfg, Headers: headers("shop.myshopify.com", sign("S", body)), Body: body},
		{Title: "Missing headers", Config: cfg, Headers: map[string]string{}, Body: body, ExpectedError: "incomplete Shopify headers"},
		{Title: "No secret", Config: Config{HostName: "shop.myshopify.com"}, Headers: headers("shop.myshopify.com", "x"), Body: body, ExpectedError: "missing Shopify webhook secret"},
		{Title: "Other shop", Config: cfg, Headers: headers("other.myshopify.com", sign("S", body)), Body: body, ExpectedError: "unexpected Shopify shop domain"},
		{Title: "Empty body", Config: cfg, Headers: headers("shop.myshopify.com", sign("S", "")), Body: "", ExpectedError: "empty request"},
		{Title: "Bad signature", Config: cfg, Headers: headers("shop.myshopify.com", sign("other", body)), Body: body, ExpectedError: "not valid"},
	}
	for _, tt := range tests {
		t.Run(tt.Title, func(t *testing.T) {
			err := ValidateWebhook(tt.Config, events.APIGatewayProxyRequest{Headers: tt.Headers, Body: tt.Body})
			if tt.ExpectedError == "" {
				if err != nil {
					t.Fatalf("no error expected, but got one: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.ExpectedError) {
				t.Fatalf("expected '%s' in error, but got: %v", tt.ExpectedError, err)
			}
		})
	}
}

func TestParseGid_OK(t *testing.T) {
	testCases := []struct {
		Title        string
		Gid          string
		ExpectedType string
		ExpectedId   string
	}{
		{Title: "Full", Gid: "gid://shopify/ProductVariant/123123123", ExpectedType: "ProductVariant", ExpectedId: "123123123"},
		{Title: "With additional params", Gid: "gid://shopify/Product/42?SomethingHere=SomethingElse", ExpectedType: "Product", ExpectedId: "42"},
	}
	for _, tc := range testCases {
		t.Run(tc.Title, func(t *testing.T) {
			resourceType, id, err := ParseGid(tc.Gid)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resourceType != tc.ExpectedType || id != tc.ExpectedId {
				t.Fatalf("expected (%s, %s), got (%s, %s)", tc.ExpectedType, tc.ExpectedId, resourceType, id)
			}
		})
	}
}

func TestParseGid_KO(t *testing.T) {
	testCases := []struct {
		Title string
		Gid   string
	}{
		{Title: "No number part", Gid: "gid://shopify/Product/"},
		{Title: "No type part", Gid: "gid://shopify//12321321"},
		{Title: "No both parts", Gid: "gid://shopify//"},
		{Title: "No enough parts", Gid: "gid://shopify/"},
		{Title: "Plain number", Gid: "12321321"},
	}
	for _, tc := range testCases {
		t.Run(tc.Title, func(t *testing.T) {
			resourceType, id, err := ParseGid(tc.Gid)
			if err == nil {
				t.Fatalf("expected error, but returned: %s %s", resourceType, id)
			}
		})
	}
}

func TestNumericIdAndToGid(t *testing.T) {
	if NumericId("gid://shopify/Product/8522924228900") != "8522924228900" {
		t.Fatalf("unexpected numeric id")
	}
	if NumericId("8522924228900") != "8522924228900" {
		t.Fatalf("plain ids must be returned as they are")
	}
	if ToGid("Order", "12") != "gid://shopify/Order/12" {
		t.Fatalf("unexpected gid: %s", ToGid("Order", "12"))
	}
	if ToGid("Order", "gid://shopify/Order/12") != "gid://shopify/Order/12" {
		t.Fatalf("gids must be returned as they are")
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		Title         string
		Env           map[string]string
		Expected      Config
		ExpectedError error
	}{
		{
			Title:         "Missing credentials",
			Env:           map[string]string{"SHOPIFY_HOST_NAME": "", "SHOPIFY_ADMIN_ACCESS_TOKEN": ""},
			ExpectedError: ErrMissingCredentials,
		},
		{
			Title: "Defaults",
			Env: map[string]string{
				"SHOPIFY_HOST_NAME":          "https://shop.myshopify.com/",
				"SHOPIFY_ADMIN_ACCESS_TOKEN": "T",
				"SHOPIFY_API_VERSION":        "",
				"SHOPIFY_WEBHOOK_SECRET":     "",
				"SHOP_DOMAIN":                "",
				"SHOPIFY_LOCATION_ID":        "",
			},
			Expected: Config{
				HostName:    "shop.myshopify.com",
				AccessToken: "T",
				APIVersion:  DefaultAPIVersion,
				ShopDomain:  "https://shop.myshopify.com",
			},
		},
		{
			Title: "Everything set",
			Env: map[string]string{
				"SHOPIFY_HOST_NAME":          "shop.myshopify.com",
				"SHOPIFY_ADMIN_ACCESS_TOKEN": "T",
				"SHOPIFY_API_VERSION":        "2024-10",
				"SHOPIFY_WEBHOOK_SECRET":     "S",
				"SHOP_DOMAIN":                "https://erides.de/",
				"SHOPIFY_LOCATION_ID":        "104671773052",
			},
			Expected: Config{
				HostName:      "shop.myshopify.com",
				AccessToken:   "T",
				APIVersion:    "2024-10",
				WebhookSecret: "S",
				ShopDomain:    "https://erides.de",
				LocationId:    104671773052,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.Title, func(t *testing.T) {
			defer helpers.TempEnvVars(tt.Env)()
			cfg, err := LoadConfig()
			if tt.ExpectedError != nil {
				if !errors.Is(err, tt.ExpectedError) {
					t.Fatalf("expected %v, got %v", tt.ExpectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("no error expected, but got one: %v", err)
			}
			if cfg != tt.Expected {
				t.Fatalf("expected %+v, got %+v", tt.Expected, cfg)
			}
		})
	}
}

func TestConfigURLs(t *testing.T) {
	cfg := Config{HostName: "shop.myshopify.com", APIVersion: "2025-04"}
	if cfg.GraphQLURL() != "https://shop.myshopify.com/admin/api/2025-04/graphql.json" {
		t.Fatalf("unexpected GraphQL URL %s", cfg.GraphQLURL())
	}
	if cfg.RESTURL("/products.json") != "https://shop.myshopify.com/admin/api/2025-04/products.json" {
		t.Fatalf("unexpected REST URL %s", cfg.RESTURL("/products.json"))
	}
}
