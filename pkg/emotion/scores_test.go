package emotion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRankedOrdersByScoreThenLabel(t *testing.T) {
	e := Emotion{Anger: 0.1, Contempt: 0.2, Fear: 0.2, Happiness: 0.5}

	require.Equal(t, []Score{
		{LabelHappiness, 0.5},
		{LabelContempt, 0.2},
		{LabelFear, 0.2},
		{LabelAnger, 0.1},
		{LabelDisgust, 0},
		{LabelNeutral, 0},
		{LabelSadness, 0},
		{LabelSurprise, 0},
	}, e.Ranked())
	require.Equal(t, Score{LabelHappiness, 0.5}, e.Dominant())
}

func TestRankedAllZeroIsAlphabetical(t *testing.T) {
	ranked := Emotion{}.Ranked()
	require.Len(t, ranked, 8)

	labels := make([]string, 0, len(ranked))
	for _, s := range ranked {
		require.Zero(t, s.Score)
		labels = append(labels, s.Label)
	}
	require.Equal(t, []string{
		"Anger", "Contempt", "Disgust", "Fear", "Happiness", "Neutral", "Sadness", "Surprise",
	}, labels)
}

func TestEqualIgnoresContempt(t *testing.T) {
	a := Emotion{Anger: 0.1, Contempt: 0.3, Disgust: 0.05, Fear: 0.05, Happiness: 0.2, Neutral: 0.1, Sadness: 0.1, Surprise: 0.1}
	b := a
	b.Contempt = 0.9

	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())
	require.NotEqual(t, a.Ranked(), b.Ranked())
}

func TestEqualComparesOtherScores(t *testing.T) {
	a := Emotion{Happiness: 0.7}
	b := Emotion{Happiness: 0.6}
	require.False(t, a.Equal(b))
	require.NotEqual(t, a.Hash(), b.Hash())
}

func TestFaceAttributesEquality(t *testing.T) {
	require.True(t, FaceAttributes{}.Equal(FaceAttributes{}))
	require.Equal(t, FaceAttributes{}.Hash(), FaceAttributes{}.Hash())

	withEmotion := FaceAttributes{Emotion: &Emotion{Sadness: 0.4}}
	require.False(t, withEmotion.Equal(FaceAttributes{}))
	require.False(t, FaceAttributes{}.Equal(withEmotion))

	same := FaceAttributes{Emotion: &Emotion{Sadness: 0.4, Contempt: 0.1}}
	require.True(t, withEmotion.Equal(same))
	require.Equal(t, withEmotion.Hash(), same.Hash())
	require.Equal(t, withEmotion.Emotion.Hash(), withEmotion.Hash())
}

func TestFaceJSONOmitsAbsentFields(t *testing.T) {
	raw, err := json.Marshal(Face{FaceID: "f1"})
	require.NoError(t, err)
	require.JSONEq(t, `{"faceId":"f1"}`, string(raw))

	_, ok := Face{}.Emotion()
	require.False(t, ok)
}
