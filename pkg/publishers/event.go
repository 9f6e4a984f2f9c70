package publishers

import (
	"time"

	"github.com/samvad-hq/emotion-sdk/pkg/emotion"
)

// Event represents one recognized image published downstream.
type Event struct {
	SourceID        string         `json:"source_id"`
	Source          string         `json:"source"`
	Faces           []emotion.Face `json:"faces"`
	DominantEmotion string         `json:"dominant_emotion,omitempty"`
	RecognizedAt    time.Time      `json:"recognized_at"`
}

// NewEvent constructs an Event for the faces detected in source. The dominant
// emotion is taken from the first face that carries emotion scores.
func NewEvent(sourceID, source string, faces []emotion.Face) Event {
	evt := Event{
		SourceID:     sourceID,
		Source:       source,
		Faces:        faces,
		RecognizedAt: time.Now().UTC(),
	}
	if evt.Faces == nil {
		evt.Faces = []emotion.Face{}
	}
	for _, f := range faces {
		if e, ok := f.Emotion(); ok {
			evt.DominantEmotion = e.Dominant().Label
			break
		}
	}
	return evt
}
