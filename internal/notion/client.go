package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	perrors "github.com/tessro/play-notion/internal/errors"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

// Settings configures a Client.
type Settings struct {
	// DatabaseURL is the database resource, e.g.
	// https://api.notion.com/v1/databases/<id>.
	DatabaseURL string
	Token       string
	APIVersion  string
	Properties  Properties
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
}

// Client is a Notion database client.
type Client struct {
	httpClient  *http.Client
	databaseURL string
	token       *oauth2.Token
	apiVersion  string
	props       Properties
	verbose     bool
	logFunc     func(format string, args ...interface{})
}

// New creates a new Notion client.
func New(s Settings) *Client {
	token := StaticToken(s.Token)
	return &Client{
		httpClient:  authorized(&http.Client{Timeout: s.Timeout}, token),
		databaseURL: s.DatabaseURL,
		token:       token,
		apiVersion:  s.APIVersion,
		props:       s.Properties,
	}
}

// SetHTTPClient replaces the HTTP client used for requests. Requests still
// carry the integration token.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = authorized(hc, c.token)
}

// SetVerbose enables verbose logging.
func (c *Client) SetVerbose(verbose bool, logFunc func(format string, args ...interface{})) {
	c.verbose = verbose
	c.logFunc = logFunc
}

func (c *Client) log(format string, args ...interface{}) {
	if c.verbose && c.logFunc != nil {
		c.logFunc(format, args...)
	}
}

// QueryURL returns the database query endpoint.
func (c *Client) QueryURL() string {
	return c.databaseURL + "/query"
}

// request sends a POST with body as JSON when body is non-nil and a GET
// otherwise. Only a 200 response is a success; its body is returned after
// checking it is valid JSON.
func (c *Client) request(ctx context.Context, method, url string, body interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		c.log("[notion] %s %s\n  body: %s", method, url, string(jsonBody))
		bodyReader = bytes.NewReader(jsonBody)
	} else {
		c.log("[notion] %s %s", method, url)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = Headers(c.apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", perrors.ErrRemoteService, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", perrors.ErrRemoteService, err)
	}

	c.log("[notion] response: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		c.log("[notion] response body: %s", string(respBody))
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	if !gjson.ValidBytes(respBody) {
		return nil, fmt.Errorf("%w: invalid JSON in response: %s", perrors.ErrRemoteService, truncate(string(respBody), 200))
	}

	return respBody, nil
}

// APIError is a non-200 response from the Notion API.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	// Body is the raw response text.
	Body string `json:"-"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = string(body)
	}
	apiErr.Status = status
	apiErr.Body = string(body)
	return apiErr
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("notion API error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("notion API error %d: %s", e.Status, e.Message)
}

// Is makes every APIError match errors.ErrRemoteService.
func (e *APIError) Is(target error) bool {
	return target == perrors.ErrRemoteService
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
