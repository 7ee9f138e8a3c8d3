package http

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	charsetpkg "golang.org/x/net/html/charset"
)

// Client represents an HTTP client with configuration options.
type Client struct {
	baseURL            string
	client             *http.Client
	defaultContentType string
	logger             HTTPLogger
}

// ClientOptions represents the configuration options for the HTTP client.
type ClientOptions struct {
	// DefaultContentType decides how a response without a Content-Type header is decoded.
	DefaultContentType string
	ConnectionTimeout  time.Duration
	// ReadTimeout bounds the whole exchange. Zero means no client-imposed limit.
	ReadTimeout time.Duration
	// Logger receives request/response events. Nil disables logging.
	Logger HTTPLogger
	// Transport replaces the pooled transport, mainly for tests.
	Transport http.RoundTripper
}

// NewHttpClient creates a new HTTP client with the given base URL and configuration options.
func NewHttpClient(baseURL string, opts ClientOptions) *Client {
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 30 * time.Second
	}
	if opts.DefaultContentType == "" {
		opts.DefaultContentType = "application/json"
	}

	transport := opts.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        200,
			MaxIdleConnsPerHost: 20,
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.ReadTimeout,
		},
		defaultContentType: opts.DefaultContentType,
		logger:             opts.Logger,
	}
}

// Request creates a new Request object for the client.
func (hc *Client) Request() *Request {
	return NewHttpClientRequest(hc)
}

// doGet builds the URL, sets headers, executes a GET and decodes the response.
// Failures are reported as *TransportError, *StatusError or *DecodeError.
func (hc *Client) doGet(ctx context.Context, path string, queryParams map[string]string, headers map[string]string, successResp any, errorResp any) (any, any, int, error) {
	fullURL := hc.buildURL(path)
	if len(queryParams) > 0 {
		fullURL += "?" + buildQueryString(queryParams)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	logURL := redactURL(req.URL)
	if hc.logger != nil {
		hc.logger.LogRequest(logURL)
	}

	start := time.Now()
	resp, err := hc.client.Do(req)
	if err != nil {
		err = &TransportError{Err: err}
		if hc.logger != nil {
			hc.logger.LogResponseError(logURL, 0, "", time.Since(start).Milliseconds(), err)
		}
		return nil, nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		err = &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
		if hc.logger != nil {
			hc.logger.LogResponseError(logURL, resp.StatusCode, "", latency, err)
		}
		return nil, nil, resp.StatusCode, err
	}

	respContentType := resp.Header.Get("Content-Type")
	if respContentType == "" {
		respContentType = hc.defaultContentType
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if successResp != nil {
			if err := unmarshalResponse(bodyBytes, respContentType, successResp); err != nil {
				err = &DecodeError{StatusCode: resp.StatusCode, Err: err}
				if hc.logger != nil {
					hc.logger.LogResponseError(logURL, resp.StatusCode, string(bodyBytes), latency, err)
				}
				return nil, nil, resp.StatusCode, err
			}
		}
		if hc.logger != nil {
			hc.logger.LogResponseSuccess(logURL, resp.StatusCode, string(bodyBytes), latency)
		}
		return successResp, nil, resp.StatusCode, nil
	}

	statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	if hc.logger != nil {
		hc.logger.LogResponseError(logURL, resp.StatusCode, string(bodyBytes), latency, statusErr)
	}

	// A body that does not match the error shape still leaves the status error intact.
	if errorResp != nil && len(bodyBytes) > 0 {
		if err := unmarshalResponse(bodyBytes, respContentType, errorResp); err != nil {
			return nil, nil, resp.StatusCode, statusErr
		}
		return nil, errorResp, resp.StatusCode, statusErr
	}

	return nil, nil, resp.StatusCode, statusErr
}

// unmarshalResponse decodes XML (in any charset the document declares) or JSON by content type
func unmarshalResponse(bodyBytes []byte, contentType string, target any) error {
	mainContentType := strings.TrimSpace(strings.Split(contentType, ";")[0])

	switch mainContentType {
	case "application/xml", "text/xml":
		dec := xml.NewDecoder(bytes.NewReader(bodyBytes))
		dec.CharsetReader = charsetpkg.NewReaderLabel
		return dec.Decode(target)
	default:
		return json.Unmarshal(bodyBytes, target)
	}
}

// buildURL builds a normalized URL by properly handling baseURL and path
func (hc *Client) buildURL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return hc.baseURL + path
}

// buildQueryString builds an escaped query string, sorted by key
func buildQueryString(params map[string]string) string {
	values := make(url.Values, len(params))
	for key, value := range params {
		values.Set(key, value)
	}
	return values.Encode()
}

var secretParams = []string{"appid", "api_key", "apikey", "key", "token"}

// redactURL masks credentials passed as query parameters before they reach a log sink
func redactURL(u *url.URL) string {
	redacted := *u
	query := redacted.Query()
	changed := false
	for _, name := range secretParams {
		if query.Has(name) {
			query.Set(name, "***")
			changed = true
		}
	}
	if changed {
		redacted.RawQuery = query.Encode()
	}
	return redacted.String()
}
