package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime/trace"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"
)

type NetlifyFunction func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error)

const DefaultTimeout = 9500 * time.Millisecond

func AuthMiddleware(function NetlifyFunction) NetlifyFunction {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		expectedToken := os.Getenv("AUTH_KEY")
		if expectedToken == "" {
			return &events.APIGatewayProxyResponse{
				StatusCode: 401,
				Body:       "Unauthorized",
			}, nil
		}
		expectedToken = fmt.Sprintf("Bearer %s", expectedToken)
		token, tokenFound := request.Headers["authorization"]
		if !tokenFound || token != expectedToken {
			return &events.APIGatewayProxyResponse{
				StatusCode: 401,
				Body:       "Unauthorized",
			}, nil
		}

		return function(ctx, request)
	}
}

func CheckEnvMiddleware(function NetlifyFunction) NetlifyFunction {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		currentEnv := os.Getenv("ENV")
		disabledEnvs := os.Getenv("ENV_DISABLE")
		if currentEnv == "" || (disabledEnvs != "" && slices.Contains(strings.Split(disabledEnvs, ","), currentEnv)) {
			return &events.APIGatewayProxyResponse{
				StatusCode: 404,
				Body:       "Not Found",
			}, nil
		}

		return function(ctx, request)
	}
}

func corsHeaders(methods string) map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": methods,
		"Access-Control-Allow-Headers": "Content-Type, Authorization",
	}
}

// CORSMiddleware answers preflight requests and adds the CORS headers to every response.
func CORSMiddleware(function NetlifyFunction, methods ...string) NetlifyFunction {
	allowed := strings.Join(append(methods, "OPTIONS"), ", ")
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		if request.HTTPMethod == http.MethodOptions {
			return NetlifyResponseWithHeaders(204, "", corsHeaders(allowed))
		}
		response, err := function(ctx, request)
		if response != nil {
			if response.Headers == nil {
				response.Headers = map[string]string{}
			}
			for key, val := range corsHeaders(allowed) {
				response.Headers[key] = val
			}
		}
		return response, err
	}
}

func MethodMiddleware(function NetlifyFunction, methods ...string) NetlifyFunction {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		if request.HTTPMethod != "" && !slices.Contains(methods, request.HTTPMethod) {
			return NetlifyResponse(http.StatusMethodNotAllowed, "Method Not Allowed")
		}
		return function(ctx, request)
	}
}

func ProfilingMiddleware(function NetlifyFunction, filename string) NetlifyFunction {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		if os.Getenv("PROFILING") == "1" && os.Getenv("ENV") == "LOCAL" {
			path := os.Getenv("PROFILING_PATH")
			if path != "" {
				if string(path[len(path)-1]) != "/" {
					path += "/"
				}
				filename = path + filename
			}
			filename += ".out"
			f, err := os.Create(filename)
			if err != nil {
				log.Warn().Err(err).Str("file", filename).Msg("could not create trace profile")
			} else {
				defer f.Close()
				if err := trace.Start(f); err != nil {
					f.Close()
					log.Warn().Err(err).Str("file", filename).Msg("could not start trace profile")
				} else {
					defer trace.Stop()
					log.Info().Str("file", filename).Msg("tracing on")
				}
			}
		}

		return function(ctx, request)
	}
}

func TimeoutMiddleware(function NetlifyFunction) NetlifyFunction {
	return TimeoutMiddlewareWith(function, DefaultTimeout)
}

// TimeoutMiddlewareWith is used by the feed functions, which run as background functions
// and may wait on a bulk export for minutes.
func TimeoutMiddlewareWith(function NetlifyFunction, timeout time.Duration) NetlifyFunction {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		type result struct {
			Response *events.APIGatewayProxyResponse
			Error    error
		}

		resultChan := make(chan result, 1)

		go func() {
			response, err := function(timeoutCtx, request)
			resultChan <- result{
				Response: response,
				Error:    err,
			}
		}()

		select {
		case res := <-resultChan:
			return res.Response, res.Error
		case <-timeoutCtx.Done():
			return NetlifyResponse(int(http.StatusGatewayTimeout), "Request timed out")
		}
	}
}

// FailingFunction answers every request with the same error, used when the
// configuration could not be loaded at cold start.
func FailingFunction(statusCode int, body any, err error) NetlifyFunction {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
		return NetlifyLogAndJsonResponse(statusCode, body, err)
	}
}

func NetlifyResponseWithHeaders(statusCode int, body string, headers map[string]string) (*events.APIGatewayProxyResponse, error) {
	return &events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Body:       body,
		Headers:    headers,
	}, nil
}

func NetlifyResponse(statusCode int, body string) (*events.APIGatewayProxyResponse, error) {
	return NetlifyResponseWithHeaders(statusCode, body, nil)
}

func NetlifyJsonResponse(statusCode int, data any) (*events.APIGatewayProxyResponse, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("error marshalling Netlify JSON response")
		return NetlifyResponse(500, "Internal Error")
	}
	return NetlifyResponseWithHeaders(statusCode, string(jsonData), map[string]string{
		"Content-Type": "application/json",
	})
}

func logBodyAndError(statusCode int, body any, err error) {
	switch {
	case err != nil:
		log.Error().Err(err).Int("status", statusCode).Interface("body", body).Msg("responding with error")
	case statusCode >= 400:
		log.Warn().Int("status", statusCode).Interface("body", body).Msg("responding")
	default:
		log.Info().Int("status", statusCode).Interface("body", body).Msg("responding")
	}
}

func NetlifyLogAndResponse(statusCode int, body string, err error) (*events.APIGatewayProxyResponse, error) {
	logBodyAndError(statusCode, body, err)
	return NetlifyResponse(statusCode, body)
}

func NetlifyLogAndJsonResponse(statusCode int, body any, err error) (*events.APIGatewayProxyResponse, error) {
	logBodyAndError(statusCode, body, err)
	return NetlifyJsonResponse(statusCode, body)
}
