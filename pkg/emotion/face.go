package emotion

// nilAttributesHash is the hash of FaceAttributes without an emotion.
const nilAttributesHash uint64 = 0x3fffffff

// FaceAttributes carries the attributes requested for a detected face.
type FaceAttributes struct {
	Emotion *Emotion `json:"emotion,omitempty"`
}

// Equal delegates to the emotions; two absent emotions are equal.
func (a FaceAttributes) Equal(o FaceAttributes) bool {
	if a.Emotion == nil || o.Emotion == nil {
		return a.Emotion == nil && o.Emotion == nil
	}
	return a.Emotion.Equal(*o.Emotion)
}

// Hash is consistent with Equal.
func (a FaceAttributes) Hash() uint64 {
	if a.Emotion == nil {
		return nilAttributesHash
	}
	return a.Emotion.Hash()
}

// FaceRectangle locates a face within the submitted image, in pixels.
type FaceRectangle struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Face is one face detected by the service.
type Face struct {
	FaceID         string          `json:"faceId,omitempty"`
	FaceRectangle  *FaceRectangle  `json:"faceRectangle,omitempty"`
	FaceAttributes *FaceAttributes `json:"faceAttributes,omitempty"`
}

// Emotion returns the face's emotion scores, if the service returned them.
func (f Face) Emotion() (Emotion, bool) {
	if f.FaceAttributes == nil || f.FaceAttributes.Emotion == nil {
		return Emotion{}, false
	}
	return *f.FaceAttributes.Emotion, true
}
