package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

func ValidateWebhook(cfg Config, request events.APIGatewayProxyRequest) error {
	shopDomain, okDomain := request.Headers["x-shopify-shop-domain"]
	hmacHeader, okHeader := request.Headers["x-shopify-hmac-sha256"]
	shopifyTopic, okTopic := request.Headers["x-shopify-topic"]
	if !(okDomain && okHeader && okTopic && shopDomain != "" && hmacHeader != "" && shopifyTopic != "") {
		return fmt.Errorf("invalid or incomplete Shopify headers")
	}

	if cfg.WebhookSecret == "" {
		return fmt.Errorf("missing Shopify webhook secret")
	}
	if shopDomain != cfg.HostName {
		return fmt.Errorf("unexpected Shopify shop domain: %v", shopDomain)
	}

	if len(request.Body) == 0 {
		return fmt.Errorf("empty request")
	}

	mac := hmac.New(sha256.New, []byte(cfg.WebhookSecret))
	mac.Write([]byte(request.Body))
	calculatedHMAC := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	isValid := hmac.Equal([]byte(calculatedHMAC), []byte(hmacHeader))

	if !isValid {
		return fmt.Errorf("the Shopify webhook is not valid")
	}

	return nil
}
