package emotion

import (
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/samvad-hq/emotion-sdk/pkg/httpclient"
)

// transport is the HTTP handle a Client sends through. Owned handles are
// released exactly once; borrowed handles belong to the caller and are never
// released here.
type transport struct {
	http     *resty.Client
	owned    bool
	closed   atomic.Bool
	released atomic.Bool
	// releaseFn frees the owned handle; swapped out in tests.
	releaseFn func(*resty.Client)
}

func newOwnedTransport(timeout time.Duration) *transport {
	c := httpclient.NewRestyHTTPClient(timeout)
	c.SetAllowGetMethodPayload(true)
	return &transport{
		http:      c,
		owned:     true,
		releaseFn: httpclient.Release,
	}
}

func borrowTransport(c *resty.Client) *transport {
	return &transport{http: c}
}

// close stops the transport from accepting new calls and releases the handle
// when it is owned. It reports whether this call performed the release.
func (t *transport) close() bool {
	t.closed.Store(true)
	return t.release()
}

func (t *transport) release() bool {
	if t == nil || !t.owned {
		return false
	}
	if !t.released.CompareAndSwap(false, true) {
		return false
	}
	if t.releaseFn != nil {
		t.releaseFn(t.http)
	}
	return true
}

// allowsGetBody reports whether a GET may carry a payload. Owned handles
// always allow it; borrowed ones follow the caller's setting.
func (t *transport) allowsGetBody() bool {
	return t.owned || t.http.AllowGetMethodPayload
}

func (t *transport) isClosed() bool {
	return t.closed.Load()
}
