package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/go-resty/resty/v2"
)

const (
	headerContentType      = "Content-Type"
	contentTypeOctetStream = "application/octet-stream"
	contentTypeJSON        = "application/json; charset=utf-8"
)

// buildRequest assembles the request for one call without touching the network.
func (c *Client) buildRequest(ctx context.Context, method, path string, body any) (*resty.Request, error) {
	if body != nil && method == http.MethodGet && !c.transport.allowsGetBody() {
		return nil, ErrGetBodyNotAllowed
	}

	req := c.transport.http.R().SetContext(ctx)
	req.Method = method
	req.URL = c.resolveURL(path)
	req.SetHeader(c.credentials.HeaderName, c.credentials.HeaderValue)

	switch b := body.(type) {
	case nil:
	case io.Reader:
		req.SetHeader(headerContentType, contentTypeOctetStream)
		req.SetBody(b)
	default:
		raw, err := encodeJSON(b)
		if err != nil {
			return nil, err
		}
		req.SetHeader(headerContentType, contentTypeJSON)
		req.SetBody(raw)
	}

	return req, nil
}

// resolveURL appends relative references to the API root verbatim.
func (c *Client) resolveURL(path string) string {
	if isRelativeReference(path) {
		return c.apiRoot + path
	}
	return path
}

// isRelativeReference reports whether path is a well-formed URI reference
// without a scheme.
func isRelativeReference(path string) bool {
	if strings.ContainsAny(path, " \t\r\n\\") {
		return false
	}
	u, err := url.Parse(path)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Opaque == ""
}

// encodeJSON marshals v, then drops null-valued object members and camelCases
// every object key, including keys of untagged fields and maps.
func encodeJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("normalize request body: %w", err)
	}

	out, err := json.Marshal(normalizeJSON(tree))
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return out, nil
}

func normalizeJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if val == nil {
				continue
			}
			out[camelCase(k)] = normalizeJSON(val)
		}
		return out
	case []any:
		for i := range t {
			t[i] = normalizeJSON(t[i])
		}
		return t
	default:
		return v
	}
}

// camelCase lower-cases the leading run of upper-case letters, keeping the
// last one upper when it starts the next word: "ImageURL" -> "imageURL",
// "URLValue" -> "urlValue", "ID" -> "id".
func camelCase(s string) string {
	r := []rune(s)
	if len(r) == 0 || !unicode.IsUpper(r[0]) {
		return s
	}
	for i := range r {
		if i == 1 && !unicode.IsUpper(r[i]) {
			break
		}
		if i > 0 && i+1 < len(r) && !unicode.IsUpper(r[i+1]) {
			if unicode.IsSpace(r[i+1]) {
				r[i] = unicode.ToLower(r[i])
			}
			break
		}
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}
