package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type GraphQLQueryFunc func(ctx context.Context, url string, authHeader string, authToken string, query string, variables map[string]any) (any, error)

type RESTRequestFunc func(ctx context.Context, method string, url string, authHeader string, authToken string, body any) (*RESTResponse, error)

type DownloadFunc func(ctx context.Context, url string) (io.ReadCloser, error)

type RESTResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

func GraphQLQuery(ctx context.Context, url string, authHeader string, authToken string, query string, variables map[string]any) (any, error) {
	requestBody, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return nil, fmt.Errorf("error marshalling GraphQL request:\n>>> %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("error creating GraphQL query request:\n>>> %w", err)
	}
	request.Header.Add("Content-Type", "application/json")
	if authHeader != "" && authToken != "" {
		request.Header.Add(authHeader, authToken)
	}

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("error requesting GraphQL query:\n>>> %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GraphQL query response:\n>>> %w", err)
	}

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from GraphQL query: [%s] %s", response.Status, responseBody)
	}

	var responseJsonAny any
	err = json.Unmarshal(responseBody, &responseJsonAny)
	if err != nil {
		return nil, fmt.Errorf("invalid response format from GraphQL query: [%s] %s", response.Status, responseBody)
	}

	return responseJsonAny, nil
}

// RESTRequest sends body as JSON (when not nil) and fails on any non-2xx status.
func RESTRequest(ctx context.Context, method string, url string, authHeader string, authToken string, body any) (*RESTResponse, error) {
	var reader io.Reader
	if body != nil {
		requestBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error marshalling REST request body:\n>>> %w", err)
		}
		reader = bytes.NewReader(requestBody)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("error creating REST request:\n>>> %w", err)
	}
	request.Header.Add("Accept", "application/json")
	if body != nil {
		request.Header.Add("Content-Type", "application/json")
	}
	if authHeader != "" && authToken != "" {
		request.Header.Add(authHeader, authToken)
	}

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("error requesting %s %s:\n>>> %w", method, url, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading REST response:\n>>> %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("non-2xx response from %s %s: [%s] %s", method, url, response.Status, responseBody)
	}

	return &RESTResponse{
		StatusCode: response.StatusCode,
		Header:     response.Header,
		Body:       responseBody,
	}, nil
}

// Download opens url for streaming. The caller closes the body.
func Download(ctx context.Context, url string) (io.ReadCloser, error) {
	request, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating download request:\n>>> %w", err)
	}
	// no client timeout: bulk results can take longer than 30s to stream
	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("error downloading %s:\n>>> %w", url, err)
	}
	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return nil, fmt.Errorf("non-200 response downloading %s: [%s]", url, response.Status)
	}
	return response.Body, nil
}

// FlexString decodes a JSON string or number, for ids that storefront scripts
// send either way.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*s = FlexString(number.String())
	return nil
}

func TempEnvVars(vars map[string]string) (reset func()) {
	current := map[string]string{}
	for key, val := range vars {
		current[key] = os.Getenv(key)
		os.Setenv(key, val)
	}
	return func() {
		for key, val := range current {
			os.Setenv(key, val)
		}
	}
}

func StringPtr(s string) *string {
	return &s
}

// normalizeString removes diacritics/accents.
func normalizeString(s string) (string, error) {
	// NFD splits 'ö' into 'o' + combining mark, the marks are dropped, NFC recomposes the rest
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return "", fmt.Errorf("error normalizing string\nERROR=%w", err)
	}
	return result, nil
}

// CompareStrings checks if two strings are equal, ignoring case and accents.
func CompareStrings(s1, s2 string) (bool, error) {
	n1, err := normalizeString(s1)
	if err != nil {
		return false, fmt.Errorf("could not normalize s1\nERROR=%w", err)
	}
	n2, err := normalizeString(s2)
	if err != nil {
		return false, fmt.Errorf("could not normalize s2\nERROR=%w", err)
	}
	return strings.EqualFold(n1, n2), nil
}

// StringInSlice checks if s is in l, ignoring case and accents.
func StringInSlice(s string, l []string) (bool, error) {
	for _, sl := range l {
		equal, err := CompareStrings(s, sl)
		if err != nil {
			return false, fmt.Errorf("error comparing %q with %q:\n>>> %w", s, sl, err)
		}
		if equal {
			return true, nil
		}
	}
	return false, nil
}
