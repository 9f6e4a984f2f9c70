// Package emotion is a client for the facial emotion recognition REST API.
package emotion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultAPIRoot is used when Config.APIRoot is unset.
	DefaultAPIRoot = "https://westus.api.cognitive.microsoft.com/face/v1.0"
	// DefaultAuthHeader carries the subscription key on every request.
	DefaultAuthHeader = "Ocp-Apim-Subscription-Key"
	// DefaultHTTPTimeout bounds each exchange on an owned transport.
	DefaultHTTPTimeout = 30 * time.Second
)

// Credentials is the authorization header attached to every request.
type Credentials struct {
	HeaderName  string
	HeaderValue string
}

// Config encapsulates the options required to instantiate a Client.
type Config struct {
	APIRoot     string
	Credentials Credentials
	// HTTPClient, when set, is borrowed: the Client sends through it but
	// never releases it. A GET with a body fails with ErrGetBodyNotAllowed
	// unless the client has SetAllowGetMethodPayload(true).
	HTTPClient *resty.Client
	Timeout    time.Duration
	Logger     Logger
}

// Validate performs basic sanity checks on the configuration and fills defaults for optional fields.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}

	root := strings.TrimSpace(c.APIRoot)
	if root == "" {
		root = DefaultAPIRoot
	}
	if _, err := url.ParseRequestURI(root); err != nil {
		return fmt.Errorf("invalid APIRoot: %w", err)
	}
	c.APIRoot = strings.TrimRight(root, "/")

	c.Credentials.HeaderName = strings.TrimSpace(c.Credentials.HeaderName)
	if c.Credentials.HeaderName == "" {
		c.Credentials.HeaderName = DefaultAuthHeader
	}
	if strings.TrimSpace(c.Credentials.HeaderValue) == "" {
		return errors.New("credentials header value is required")
	}

	if c.Timeout <= 0 {
		c.Timeout = DefaultHTTPTimeout
	}

	return nil
}

// Client sends typed requests to the API and translates failures into
// *ServiceError, *TransportError, *MalformedResponseError or ErrCanceled.
// It is safe for concurrent use.
type Client struct {
	apiRoot     string
	credentials Credentials
	transport   *transport
	cleanup     runtime.Cleanup
	log         Logger
}

// New constructs a Client. Without Config.HTTPClient the Client creates and
// owns its transport; Close releases it.
func New(cfg Config) (*Client, error) {
	cfgCopy := cfg
	if err := (&cfgCopy).Validate(); err != nil {
		return nil, err
	}

	var t *transport
	if cfgCopy.HTTPClient != nil {
		t = borrowTransport(cfgCopy.HTTPClient)
	} else {
		t = newOwnedTransport(cfgCopy.Timeout)
	}

	c := &Client{
		apiRoot:     cfgCopy.APIRoot,
		credentials: cfgCopy.Credentials,
		transport:   t,
		log:         ensureLogger(cfgCopy.Logger),
	}
	if t.owned {
		// Reclaims the handle if the Client is collected without Close.
		c.cleanup = runtime.AddCleanup(c, func(t *transport) { t.release() }, t)
	}
	return c, nil
}

// APIRoot returns the base URI relative paths are resolved against.
func (c *Client) APIRoot() string {
	return c.apiRoot
}

// Close releases the transport if the Client owns it. It is safe to call
// more than once; calls issued afterwards fail with ErrClosed.
func (c *Client) Close() error {
	if c == nil || c.transport == nil {
		return nil
	}
	if c.transport.close() {
		c.cleanup.Stop()
		c.log.DebugObj("emotion client transport released", "api_root", c.apiRoot)
	}
	return nil
}

// Send issues one request and decodes the response into T. A nil body sends
// no content, an io.Reader is streamed as application/octet-stream and any
// other value is encoded as JSON. Paths that are relative references are
// appended to the API root; anything else is used as an absolute URL.
func Send[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T
	if c == nil || c.transport == nil {
		return zero, errors.New("emotion: client is not initialized")
	}
	if c.transport.isClosed() {
		return zero, ErrClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return zero, canceled(err)
	}

	req, err := c.buildRequest(ctx, method, path, body)
	if err != nil {
		return zero, err
	}

	start := time.Now()
	resp, err := req.Send()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, canceled(ctxErr)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, canceled(err)
		}
		c.log.WarnObj("emotion request failed", "emotion_transport_error", map[string]any{
			"method": method,
			"url":    req.URL,
			"error":  err.Error(),
		})
		return zero, &TransportError{Err: err}
	}

	c.log.DebugObj("emotion response received", "emotion_response", map[string]any{
		"method":     method,
		"url":        req.URL,
		"status":     resp.StatusCode(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	out, err := decode[T](resp)
	if err != nil {
		c.log.WarnObj("emotion response rejected", "emotion_response_error", map[string]any{
			"method": method,
			"url":    req.URL,
			"status": resp.StatusCode(),
			"error":  err.Error(),
		})
		return zero, err
	}
	return out, nil
}

// Get issues a GET without a body.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	return Send[T](ctx, c, http.MethodGet, path, nil)
}

// Post issues a POST with the given body.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return Send[T](ctx, c, http.MethodPost, path, body)
}
