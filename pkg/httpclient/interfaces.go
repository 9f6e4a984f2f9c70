package httpclient

import "net/http"

// Response is the fully-read view of an HTTP response that decoders work from.
// *resty.Response satisfies it directly.
type Response interface {
	Body() []byte
	StatusCode() int
	Status() string
	Header() http.Header
}

// IsSuccess reports whether the response carries a 2xx status.
func IsSuccess(resp Response) bool {
	code := resp.StatusCode()
	return code >= 200 && code <= 299
}
