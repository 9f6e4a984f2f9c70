package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewRestyHTTPClientTimeout(t *testing.T) {
	c := NewRestyHTTPClient(3 * time.Second)
	if got := c.GetClient().Timeout; got != 3*time.Second {
		t.Fatalf("timeout = %v", got)
	}
}

func TestRestyResponseSatisfiesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewRestyHTTPClient(time.Second)
	defer Release(c)

	resp, err := c.R().Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	var r Response = resp
	if !IsSuccess(r) {
		t.Fatalf("expected 2xx, got %d", r.StatusCode())
	}
	if r.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected content type %q", r.Header().Get("Content-Type"))
	}
	if string(r.Body()) != "{}" {
		t.Fatalf("unexpected body %q", r.Body())
	}
}

func TestReleaseNilClient(t *testing.T) {
	Release(nil)
}
