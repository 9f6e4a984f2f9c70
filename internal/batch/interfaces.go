package batch

import (
	"context"
	"io"

	"github.com/samvad-hq/emotion-sdk/pkg/emotion"
	"github.com/samvad-hq/emotion-sdk/pkg/publishers"
)

// Recognizer detects faces and their emotions. *emotion.Client satisfies it.
type Recognizer interface {
	RecognizeURL(ctx context.Context, imageURL string) ([]emotion.Face, error)
	RecognizeImage(ctx context.Context, image io.Reader) ([]emotion.Face, error)
}

// EventPublisher publishes recognition events downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Cache remembers encoded recognition results by source fingerprint.
type Cache interface {
	Lookup(key string) ([]byte, bool, error)
	Remember(key string, value []byte) error
}
