// Package netlify assembles the functions deployed under netlify/functions:
// cold start configuration, middleware order and the request helpers they share.
package netlify

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefeed/go/app"
	"storefeed/go/logging"
	"storefeed/go/shopify"
	"storefeed/go/shopify/adminapi"

	"github.com/aws/aws-lambda-go/events"
)

// FeedTimeout stays below the 15 minute limit of background functions.
const FeedTimeout = 14 * time.Minute

type Route struct {
	Name    string
	Methods []string
	// CORS is set on routes called from the storefront.
	CORS bool
	// Auth requires the AUTH_KEY bearer token.
	Auth    bool
	Timeout time.Duration
}

// Wrap applies the middlewares every function runs with. Preflight requests
// are answered before the environment and method checks.
func Wrap(route Route, function app.NetlifyFunction) app.NetlifyFunction {
	if route.Auth {
		function = app.AuthMiddleware(function)
	}
	if len(route.Methods) > 0 {
		function = app.MethodMiddleware(function, route.Methods...)
	}
	function = app.CacheMiddleware(app.CheckEnvMiddleware(function))

	timeout := route.Timeout
	if timeout <= 0 {
		timeout = app.DefaultTimeout
	}
	function = app.TimeoutMiddlewareWith(function, timeout)

	if route.CORS {
		function = app.CORSMiddleware(function, route.Methods...)
	}
	return app.ProfilingMiddleware(function, route.Name)
}

// ShopifyRoute loads the Shopify configuration once and hands the client to
// build. Without credentials every request is answered with a 500.
func ShopifyRoute(route Route, build func(client *adminapi.Client) app.NetlifyFunction) app.NetlifyFunction {
	logging.Setup(logging.ConfigFromEnv())

	cfg, err := shopify.LoadConfig()
	if err != nil {
		body := map[string]string{"error": "Missing Shopify credentials"}
		if !errors.Is(err, shopify.ErrMissingCredentials) {
			body["error"] = "Invalid Shopify configuration"
		}
		return Wrap(route, app.FailingFunction(http.StatusInternalServerError, body, err))
	}
	return Wrap(route, build(adminapi.NewClient(cfg)))
}

func QueryParam(request events.APIGatewayProxyRequest, name string) string {
	return strings.TrimSpace(request.QueryStringParameters[name])
}

// Body returns the raw request body, decoding it when the gateway delivered it base64 encoded.
func Body(request events.APIGatewayProxyRequest) ([]byte, error) {
	if !request.IsBase64Encoded {
		return []byte(request.Body), nil
	}
	body, err := base64.StdEncoding.DecodeString(request.Body)
	if err != nil {
		return nil, fmt.Errorf("error decoding base64 request body:\n>>> %w", err)
	}
	return body, nil
}

func DecodeJSON(request events.APIGatewayProxyRequest, v any) error {
	body, err := Body(request)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("error decoding JSON request body:\n>>> %w", err)
	}
	return nil
}

func XMLResponse(statusCode int, body []byte) (*events.APIGatewayProxyResponse, error) {
	return app.NetlifyResponseWithHeaders(statusCode, string(body), map[string]string{
		"Content-Type": "application/xml",
	})
}

// CSVResponse offers body as a download when filename is set.
func CSVResponse(body []byte, filename string) (*events.APIGatewayProxyResponse, error) {
	headers := map[string]string{"Content-Type": "text/plain; charset=utf-8"}
	if filename != "" {
		headers["Content-Disposition"] = fmt.Sprintf("attachment; filename=%q", filename)
	}
	return app.NetlifyResponseWithHeaders(http.StatusOK, string(body), headers)
}

// ErrorBody is the JSON error answer shared by the routes.
func ErrorBody(message string, err error) map[string]any {
	body := map[string]any{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	return body
}
