package shopify

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const DefaultAPIVersion = "2025-04"

// Config is built once per cold start and shared read-only by every call.
type Config struct {
	HostName      string
	AccessToken   string
	APIVersion    string
	WebhookSecret string
	LocationId    int64
	ShopDomain    string
}

var ErrMissingCredentials = errors.New("missing Shopify credentials")

func LoadConfig() (Config, error) {
	if os.Getenv("ENV") == "LOCAL" {
		// a missing .env is fine, the variables may already be exported
		_ = godotenv.Load()
	}

	cfg := Config{
		HostName:      normalizeHostName(os.Getenv("SHOPIFY_HOST_NAME")),
		AccessToken:   os.Getenv("SHOPIFY_ADMIN_ACCESS_TOKEN"),
		APIVersion:    os.Getenv("SHOPIFY_API_VERSION"),
		WebhookSecret: os.Getenv("SHOPIFY_WEBHOOK_SECRET"),
		ShopDomain:    strings.TrimSuffix(os.Getenv("SHOP_DOMAIN"), "/"),
	}
	if cfg.HostName == "" || cfg.AccessToken == "" {
		return Config{}, ErrMissingCredentials
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.ShopDomain == "" {
		cfg.ShopDomain = "https://" + cfg.HostName
	}
	if location := os.Getenv("SHOPIFY_LOCATION_ID"); location != "" {
		id, err := strconv.ParseInt(location, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHOPIFY_LOCATION_ID %q:\n>>> %w", location, err)
		}
		cfg.LocationId = id
	}
	return cfg, nil
}

func normalizeHostName(host string) string {
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimSuffix(host, "/")
}

func (c Config) GraphQLURL() string {
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.HostName, c.APIVersion)
}

func (c Config) RESTURL(path string) string {
	return fmt.Sprintf("https://%s/admin/api/%s/%s", c.HostName, c.APIVersion, strings.TrimPrefix(path, "/"))
}
