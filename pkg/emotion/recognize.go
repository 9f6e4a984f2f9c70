package emotion

import (
	"context"
	"errors"
	"io"
	"strings"
)

// DetectPath is the detection endpoint, relative to the API root, with
// emotion attributes requested.
const DetectPath = "/detect?returnFaceAttributes=emotion"

type urlRequest struct {
	URL string `json:"url"`
}

// RecognizeURL asks the service to fetch the image at imageURL and returns
// the faces it detected.
func (c *Client) RecognizeURL(ctx context.Context, imageURL string) ([]Face, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, errors.New("image url is required")
	}
	return Post[[]Face](ctx, c, DetectPath, urlRequest{URL: imageURL})
}

// RecognizeImage uploads the image bytes read from image and returns the
// faces detected in it.
func (c *Client) RecognizeImage(ctx context.Context, image io.Reader) ([]Face, error) {
	if image == nil {
		return nil, errors.New("image reader is required")
	}
	return Post[[]Face](ctx, c, DetectPath, image)
}
