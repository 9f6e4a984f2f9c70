package emotion

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubResponse struct {
	status int
	header http.Header
	body   string
}

func (s stubResponse) Body() []byte        { return []byte(s.body) }
func (s stubResponse) StatusCode() int     { return s.status }
func (s stubResponse) Status() string      { return http.StatusText(s.status) }
func (s stubResponse) Header() http.Header { return s.header }

func jsonHeader() http.Header {
	return http.Header{"Content-Type": []string{"application/json; charset=utf-8"}}
}

func TestDecodeSuccess(t *testing.T) {
	resp := stubResponse{status: http.StatusOK, header: jsonHeader(), body: `{"emotion":{"anger":0.1,"happiness":0.7}}`}

	attrs, err := decode[FaceAttributes](resp)
	require.NoError(t, err)
	require.NotNil(t, attrs.Emotion)
	require.Equal(t, 0.7, attrs.Emotion.Happiness)
	require.Equal(t, Score{Label: "Happiness", Score: 0.7}, attrs.Emotion.Ranked()[0])
}

func TestDecodeEmptySuccessBodyYieldsZeroValue(t *testing.T) {
	faces, err := decode[[]Face](stubResponse{status: http.StatusOK, header: http.Header{}, body: "  \n"})
	require.NoError(t, err)
	require.Nil(t, faces)

	attrs, err := decode[*FaceAttributes](stubResponse{status: http.StatusNoContent, header: http.Header{}})
	require.NoError(t, err)
	require.Nil(t, attrs)
}

func TestDecodeMalformedSuccessBody(t *testing.T) {
	_, err := decode[[]Face](stubResponse{status: http.StatusOK, header: jsonHeader(), body: `{"faceId":`})

	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	require.Equal(t, http.StatusOK, malformed.StatusCode)
	require.Equal(t, `{"faceId":`, malformed.Body)
}

func TestDecodeServiceError(t *testing.T) {
	resp := stubResponse{
		status: http.StatusBadRequest,
		header: jsonHeader(),
		body:   `{"error":{"code":"BadArgument","message":"x"}}`,
	}

	_, err := decode[[]Face](resp)

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	require.Equal(t, "BadArgument", svcErr.Code)
	require.Equal(t, "x", svcErr.Message)
	require.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	require.Equal(t, "emotion: x (BadArgument, status 400)", svcErr.Error())
}

func TestDecodeTransportErrorWithoutEnvelope(t *testing.T) {
	cases := map[string]stubResponse{
		"empty body":         {status: http.StatusServiceUnavailable, header: http.Header{}},
		"non json body":      {status: http.StatusServiceUnavailable, header: http.Header{"Content-Type": []string{"text/html"}}, body: "<html>down</html>"},
		"json without key":   {status: http.StatusServiceUnavailable, header: jsonHeader(), body: `{"message":"down"}`},
		"json null envelope": {status: http.StatusServiceUnavailable, header: jsonHeader(), body: `{"error":null}`},
		"json malformed":     {status: http.StatusServiceUnavailable, header: jsonHeader(), body: `{"error":`},
		"envelope not json":  {status: http.StatusServiceUnavailable, header: http.Header{"Content-Type": []string{"text/plain"}}, body: `{"error":{"code":"X"}}`},
	}

	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := decode[[]Face](resp)
			require.Nil(t, out)

			var transportErr *TransportError
			require.True(t, errors.As(err, &transportErr))
			require.Equal(t, http.StatusServiceUnavailable, transportErr.StatusCode)
			require.Nil(t, transportErr.Err)

			var svcErr *ServiceError
			require.False(t, errors.As(err, &svcErr))
		})
	}
}

func TestHasJSONContentAcceptsFamily(t *testing.T) {
	require.True(t, hasJSONContent(stubResponse{header: http.Header{"Content-Type": []string{"application/json"}}}))
	require.True(t, hasJSONContent(stubResponse{header: http.Header{"Content-Type": []string{"Application/JSON; charset=utf-8"}}}))
	require.False(t, hasJSONContent(stubResponse{header: http.Header{"Content-Type": []string{"text/plain"}}}))
	require.False(t, hasJSONContent(stubResponse{header: http.Header{}}))
}
