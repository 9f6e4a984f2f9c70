package emotion

import (
	"cmp"
	"encoding/binary"
	"math"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Emotion labels as they appear in ranked lists.
const (
	LabelAnger     = "Anger"
	LabelContempt  = "Contempt"
	LabelDisgust   = "Disgust"
	LabelFear      = "Fear"
	LabelHappiness = "Happiness"
	LabelNeutral   = "Neutral"
	LabelSadness   = "Sadness"
	LabelSurprise  = "Surprise"
)

// Emotion holds the per-category confidence scores detected for one face.
type Emotion struct {
	Anger     float64 `json:"anger"`
	Contempt  float64 `json:"contempt"`
	Disgust   float64 `json:"disgust"`
	Fear      float64 `json:"fear"`
	Happiness float64 `json:"happiness"`
	Neutral   float64 `json:"neutral"`
	Sadness   float64 `json:"sadness"`
	Surprise  float64 `json:"surprise"`
}

// Score is one labelled entry of a ranked emotion list.
type Score struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Ranked returns all eight scores ordered by descending score, ties broken
// by ascending label.
func (e Emotion) Ranked() []Score {
	out := []Score{
		{LabelAnger, e.Anger},
		{LabelContempt, e.Contempt},
		{LabelDisgust, e.Disgust},
		{LabelFear, e.Fear},
		{LabelHappiness, e.Happiness},
		{LabelNeutral, e.Neutral},
		{LabelSadness, e.Sadness},
		{LabelSurprise, e.Surprise},
	}
	slices.SortFunc(out, func(a, b Score) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

// Dominant returns the highest ranked score.
func (e Emotion) Dominant() Score {
	return e.Ranked()[0]
}

// Equal compares every score except Contempt, which does not take part in
// equality or hashing.
func (e Emotion) Equal(o Emotion) bool {
	return e.Anger == o.Anger &&
		e.Disgust == o.Disgust &&
		e.Fear == o.Fear &&
		e.Happiness == o.Happiness &&
		e.Neutral == o.Neutral &&
		e.Sadness == o.Sadness &&
		e.Surprise == o.Surprise
}

// Hash is consistent with Equal.
func (e Emotion) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range [...]float64{e.Anger, e.Disgust, e.Fear, e.Happiness, e.Neutral, e.Sadness, e.Surprise} {
		if v == 0 {
			// -0 and +0 compare equal.
			v = 0
		}
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
