package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"time"

	nethttp "net/http"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/ghost-client/internal/auth"
	"github.com/fivetwenty-io/ghost-client/internal/constants"
	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
)

// AuthMode selects how a request is authenticated.
type AuthMode int

// Authentication modes.
const (
	// AuthNone sends no credential.
	AuthNone AuthMode = iota
	// AuthAdmin sends the signed admin token in the Authorization header.
	AuthAdmin
	// AuthContent appends the static content key as the "key" query
	// parameter.
	AuthContent
)

// Request represents one HTTP request to the Ghost API.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-marshaled when set.
	Body any
	// RawBody (with ContentType) is sent verbatim; used for multipart
	// uploads. Body and RawBody are mutually exclusive.
	RawBody     io.Reader
	ContentType string
	Headers     map[string]string
	Auth        AuthMode
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// File describes one multipart upload part.
type File struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     io.Reader
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets a logger for the client.
func WithLogger(logger ghost.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each HTTP round trip; expiry surfaces as a
// TransportError.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig tunes the transport's retries for transient failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.http.RetryMax = retryMax
		c.http.RetryWaitMin = waitMin
		c.http.RetryWaitMax = waitMax
	}
}

// Client is the transport adapter: it owns URL construction, auth
// injection, JSON serialization, and the mapping of HTTP status to the
// typed error taxonomy. A 401 on an admin request triggers exactly one
// re-sign-and-retry; the second 401 surfaces as an AuthenticationError.
type Client struct {
	baseURL    string
	signer     auth.TokenSigner
	contentKey string
	http       *retryablehttp.Client
	logger     ghost.Logger
	debug      bool
	userAgent  string
}

// NewClient creates a transport bound to a site. signer may be nil for
// content-only clients; contentKey may be empty for admin-only clients.
func NewClient(baseURL string, signer auth.TokenSigner, contentKey string, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = constants.DefaultRetryMax
	rc.RetryWaitMin = constants.DefaultRetryWaitMin
	rc.RetryWaitMax = constants.DefaultRetryWaitMax
	rc.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	// Hand back the final response even when retries are exhausted so the
	// status can be classified instead of lost inside a retry error.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:    baseURL,
		signer:     signer,
		contentKey: contentKey,
		http:       rc,
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes the request. On 2xx the parsed body is returned; on error
// the response (when one exists) is returned alongside the typed error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	resigned := false

	for {
		resp, err := c.roundTrip(ctx, req, body, contentType)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == nethttp.StatusUnauthorized {
			if req.Auth == AuthAdmin && c.signer != nil && !resigned {
				resigned = true

				c.signer.Invalidate()

				continue
			}

			attempts := 1
			if resigned {
				attempts = 2
			}

			return resp, &ghost.AuthenticationError{Attempts: attempts, Last: parseAPIError(resp)}
		}

		if resp.StatusCode >= nethttp.StatusBadRequest {
			return resp, classifyAPIError(resp)
		}

		return resp, nil
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values, mode AuthMode) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query, Auth: mode})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, query url.Values, mode AuthMode) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Query: query, Body: body, Auth: mode})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, query url.Values, mode AuthMode) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, Path: path, Query: query, Body: body, Auth: mode})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, mode AuthMode) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path, Auth: mode})
}

// Upload performs a multipart POST of one file plus form fields.
func (c *Client) Upload(ctx context.Context, path string, query url.Values, file File, fields map[string]string) (*Response, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, file.FieldName, file.FileName))
	header.Set("Content-Type", file.ContentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("creating multipart body: %w", err)
	}

	_, err = io.Copy(part, file.Content)
	if err != nil {
		return nil, fmt.Errorf("reading upload content: %w", err)
	}

	for name, value := range fields {
		err = writer.WriteField(name, value)
		if err != nil {
			return nil, fmt.Errorf("writing form field: %w", err)
		}
	}

	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	return c.Do(ctx, &Request{
		Method:      nethttp.MethodPost,
		Path:        path,
		Query:       query,
		RawBody:     &buf,
		ContentType: writer.FormDataContentType(),
		Auth:        AuthAdmin,
	})
}

// encodeBody normalizes the request body to one byte slice so the
// re-sign retry can resend it.
func encodeBody(req *Request) ([]byte, string, error) {
	switch {
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", fmt.Errorf("encoding request body: %w", err)
		}

		return data, "application/json", nil
	case req.RawBody != nil:
		data, err := io.ReadAll(req.RawBody)
		if err != nil {
			return nil, "", fmt.Errorf("reading request body: %w", err)
		}

		return data, req.ContentType, nil
	default:
		return nil, "", nil
	}
}

// roundTrip performs one HTTP exchange: URL assembly, auth injection, and
// transport-error wrapping. Status classification happens in Do.
func (c *Client) roundTrip(ctx context.Context, req *Request, body []byte, contentType string) (*Response, error) {
	fullURL, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	var reqBody interface{}
	if body != nil {
		reqBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if req.Auth == AuthAdmin {
		if c.signer == nil {
			return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, ghost.ErrAdminKeyRequired)
		}

		token, err := c.signer.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("signing request: %w", err)
		}

		httpReq.Header.Set("Authorization", "Ghost "+token)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &ghost.TransportError{Op: req.Method, URL: fullURL, Err: err}
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &ghost.TransportError{Op: req.Method, URL: fullURL, Err: err}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"bytes":  len(respBody),
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}, nil
}

func (c *Client) buildURL(req *Request) (string, error) {
	query := url.Values{}
	for key, values := range req.Query {
		query[key] = values
	}

	if req.Auth == AuthContent {
		if c.contentKey == "" {
			return "", fmt.Errorf("%s %s: %w", req.Method, req.Path, ghost.ErrContentKeyRequired)
		}

		query.Set("key", c.contentKey)
	}

	fullURL := c.baseURL + req.Path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	return fullURL, nil
}

// parseAPIError decodes the Ghost error envelope, falling back to the raw
// body when the envelope is absent or malformed.
func parseAPIError(resp *Response) *ghost.APIError {
	apiErr := &ghost.APIError{StatusCode: resp.StatusCode}

	var envelope struct {
		Errors []ghost.ErrorDetail `json:"errors"`
	}

	err := json.Unmarshal(resp.Body, &envelope)
	if err != nil || len(envelope.Errors) == 0 {
		apiErr.Message = truncate(string(resp.Body), 512)

		return apiErr
	}

	apiErr.Errors = envelope.Errors
	apiErr.Type = envelope.Errors[0].Type
	apiErr.Message = envelope.Errors[0].Message

	return apiErr
}

// classifyAPIError maps a non-2xx response to the error taxonomy.
func classifyAPIError(resp *Response) error {
	apiErr := parseAPIError(resp)

	switch resp.StatusCode {
	case nethttp.StatusNotFound:
		return &ghost.NotFoundError{APIError: apiErr}
	case nethttp.StatusUnprocessableEntity:
		return &ghost.ValidationError{APIError: apiErr}
	default:
		return apiErr
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max]
}
