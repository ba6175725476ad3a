package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/telsho/anthropic-go/key"
)

// Client calls the Anthropic Messages API. It is safe for concurrent use.
type Client struct {
	key     key.Key
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL overrides the API base URL, e.g. to point at a proxy or a test
// server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger enables structured logging of request lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client authenticated with the given key.
func New(k key.Key, opts ...Option) *Client {
	c := &Client{
		key:     k,
		baseURL: defaultBaseURL,
		http:    http.DefaultClient,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Message sends the request and waits for the complete response.
func (c *Client) Message(ctx context.Context, req *Request) (Response, error) {
	r := *req
	r.Stream = false
	resp, err := c.do(ctx, &r)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, &TransportError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, parseHTTPError(resp.StatusCode, body)
	}
	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return Response{}, &DecodeError{Raw: body, Err: err}
	}
	c.log.DebugContext(ctx, "message complete",
		slog.String("id", out.ID),
		slog.Uint64("input_tokens", out.Usage.InputTokens),
		slog.Uint64("output_tokens", out.Usage.OutputTokens))
	return out, nil
}

// Stream sends the request and returns a [Stream] of events. The caller owns
// the stream and must close it.
func (c *Client) Stream(ctx context.Context, req *Request) (*Stream, error) {
	r := *req
	r.Stream = true
	resp, err := c.do(ctx, &r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &TransportError{Err: err}
		}
		return nil, parseHTTPError(resp.StatusCode, body)
	}
	return NewStream(resp.Body), nil
}

func (c *Client) do(ctx context.Context, req *Request) (*http.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Model == "" {
		req.Model = DefaultModel
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = defaultMaxTokens
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("anthropic: build request: %w", err)
	}

	apiKey, err := c.key.Read()
	if err != nil {
		return nil, fmt.Errorf("anthropic: read key: %w", err)
	}
	httpReq.Header.Set("x-api-key", apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)
	httpReq.Header.Set("content-type", "application/json")
	if req.usesCache() {
		httpReq.Header.Set("anthropic-beta", promptCachingBeta)
	}
	if req.Stream {
		httpReq.Header.Set("accept", "text/event-stream")
	}

	c.log.DebugContext(ctx, "sending request",
		slog.String("model", string(req.Model)),
		slog.Int("messages", len(req.Messages)),
		slog.Bool("stream", req.Stream))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return resp, nil
}

// parseHTTPError turns a non-200 response body into an *APIError. Bodies
// that do not carry the standard error envelope fall back to an error type
// derived from the status code.
func parseHTTPError(status int, body []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		env.Error.Raw = body
		return env.Error
	}
	return &APIError{Type: errTypeForStatus(status), Message: string(body), Raw: body}
}

func errTypeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrTypeInvalidRequest
	case http.StatusUnauthorized:
		return ErrTypeAuthentication
	case http.StatusForbidden:
		return ErrTypePermission
	case http.StatusNotFound:
		return ErrTypeNotFound
	case http.StatusRequestEntityTooLarge:
		return ErrTypeRequestTooLarge
	case http.StatusTooManyRequests:
		return ErrTypeRateLimit
	case 529:
		return ErrTypeOverloaded
	default:
		return ErrTypeAPI
	}
}
