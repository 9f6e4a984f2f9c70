package emotion

import (
	"bytes"
	"encoding/json"
	"mime"
	"strings"

	"github.com/samvad-hq/emotion-sdk/pkg/httpclient"
)

const mediaTypeJSON = "application/json"

// errorEnvelope is the wrapper the service puts around ServiceError.
type errorEnvelope struct {
	Error *ServiceError `json:"error"`
}

// decode interprets a fully-read response. A 2xx status yields T (the zero
// value for an empty body); any other status yields an error.
func decode[T any](resp httpclient.Response) (T, error) {
	var zero T
	status := resp.StatusCode()

	if httpclient.IsSuccess(resp) {
		body := resp.Body()
		if len(bytes.TrimSpace(body)) == 0 {
			return zero, nil
		}
		var out T
		if err := json.Unmarshal(body, &out); err != nil {
			return zero, &MalformedResponseError{StatusCode: status, Body: string(body), Err: err}
		}
		return out, nil
	}

	if hasJSONContent(resp) {
		var envelope errorEnvelope
		if err := json.Unmarshal(resp.Body(), &envelope); err == nil && envelope.Error != nil {
			envelope.Error.StatusCode = status
			return zero, envelope.Error
		}
	}

	return zero, &TransportError{StatusCode: status}
}

// hasJSONContent reports whether the response declares an application/json
// family media type.
func hasJSONContent(resp httpclient.Response) bool {
	raw := resp.Header().Get(headerContentType)
	if raw == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		mediaType = raw
	}
	return strings.Contains(strings.ToLower(mediaType), mediaTypeJSON)
}
