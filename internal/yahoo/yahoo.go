package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Yahoo Finance query host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// FinanceClient provides methods for fetching live quotes from the Yahoo
// Finance API. It wraps an HTTP client with a bounded timeout so a slow
// upstream cannot stall a request indefinitely.
type FinanceClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFinanceClient creates a new Yahoo Finance client. An empty baseURL
// selects the public Yahoo endpoint; tests point it at a local server.
func NewFinanceClient(baseURL string, timeout time.Duration) *FinanceClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &FinanceClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// QueryQuotes fetches quotes for all given symbols in a single round trip
// using the v7 quote endpoint. Symbols unknown to Yahoo are absent from the
// result; only transport failures, malformed responses, or an API-level
// error object fail the call.
//
// Parameters:
//   - ctx: request-scoped context; cancellation abandons the in-flight call
//   - symbols: ticker symbols, already carrying their exchange suffix
//
// Returns:
//   - []Result: resolved quotes, in Yahoo's response order
//   - error: if the HTTP request fails or the API reports an error
func (c *FinanceClient) QueryQuotes(ctx context.Context, symbols []string) ([]Result, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	reqURL := fmt.Sprintf(
		"%s/v7/finance/quote?symbols=%s",
		c.baseURL,
		url.QueryEscape(strings.Join(symbols, ",")),
	)

	response, err := c.queryYahoo(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	return response.QuoteResponse.Result, nil
}

// queryYahoo is an internal helper that executes HTTP requests to the Yahoo
// Finance API. It sets a browser User-Agent (Yahoo blocks default Go
// clients), reads and parses the JSON body, and surfaces API-level errors.
func (c *FinanceClient) queryYahoo(ctx context.Context, reqURL string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.QuoteResponse.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", response.QuoteResponse.Error.Description)
	}

	return response, nil
}
