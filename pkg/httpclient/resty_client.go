package httpclient

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewRestyHTTPClient returns a resty.Client with the specified timeout.
// A zero timeout leaves the transport without a client-side deadline.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

// Release drops idle keep-alive connections held by the client's transport.
func Release(c *resty.Client) {
	if c == nil {
		return
	}
	if hc := c.GetClient(); hc != nil {
		hc.CloseIdleConnections()
	}
}
