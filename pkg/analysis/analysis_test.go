package analysis

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"tableflip.dev/thrivesense/pkg/imagedata"
)

type fakeModels struct {
	calls    int
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig

	text string
	err  error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	f.config = config
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

const okResponse = `{
  "overallMood": "Content",
  "moodScore": 7,
  "keyEmotions": ["calm", "hopeful"],
  "feedback": "You seem to be doing well.",
  "activitySuggestion": "Consider a short walk outside."
}`

func newTestGemini(f *fakeModels) *Gemini {
	return newGemini(f, &Config{Model: "test-model", Temperature: 0.7}, nil)
}

func TestAnalyzeTextOnly(t *testing.T) {
	f := &fakeModels{text: okResponse}
	g := newTestGemini(f)

	got, err := g.Analyze(context.Background(), Request{Text: "Feeling okay today", SleepHours: 7, StressLevel: 4})
	require.NoError(t, err)

	assert.Equal(t, "Content", got.OverallMood)
	assert.Equal(t, 7.0, got.MoodScore)
	assert.Equal(t, []string{"calm", "hopeful"}, got.KeyEmotions)
	assert.Equal(t, "Consider a short walk outside.", got.ActivitySuggestion)

	require.Equal(t, 1, f.calls)
	assert.Equal(t, "test-model", f.model)
	require.Len(t, f.contents, 1)
	require.Len(t, f.contents[0].Parts, 1, "text-only requests carry no image part")
	prompt := f.contents[0].Parts[0].Text
	assert.Contains(t, prompt, `"Feeling okay today"`)
	assert.Contains(t, prompt, "Sleep: 7 hours")
	assert.Contains(t, prompt, "Stress Level: 4/10")
	assert.NotContains(t, prompt, "facial expression")

	assert.Equal(t, "application/json", f.config.ResponseMIMEType)
	require.NotNil(t, f.config.ResponseSchema)
	assert.ElementsMatch(t, requiredFields, f.config.ResponseSchema.Required)
	require.NotNil(t, f.config.Temperature)
	assert.InDelta(t, 0.7, *f.config.Temperature, 0.0001)
}

func TestAnalyzeWithImage(t *testing.T) {
	f := &fakeModels{text: okResponse}
	g := newTestGemini(f)
	img := &imagedata.Image{MediaType: "image/jpeg", Data: []byte("jpeg")}

	_, err := g.Analyze(context.Background(), Request{Text: "tired", SleepHours: 5, StressLevel: 8, Image: img})
	require.NoError(t, err)

	parts := f.contents[0].Parts
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0].Text, withImageInstruction)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "image/jpeg", parts[1].InlineData.MIMEType)
	assert.Equal(t, []byte("jpeg"), parts[1].InlineData.Data)
}

func TestAnalyzeImageOnly(t *testing.T) {
	f := &fakeModels{text: okResponse}
	g := newTestGemini(f)
	img := &imagedata.Image{MediaType: "image/png", Data: []byte("png")}

	_, err := g.Analyze(context.Background(), Request{SleepHours: 8, StressLevel: 5, Image: img})
	require.NoError(t, err)

	prompt := f.contents[0].Parts[0].Text
	assert.Contains(t, prompt, "did not provide a written journal entry")
	assert.Contains(t, prompt, imageOnlyInstruction)
}

func TestAnalyzeNoInput(t *testing.T) {
	f := &fakeModels{text: okResponse}
	_, err := newTestGemini(f).Analyze(context.Background(), Request{Text: "  ", SleepHours: 8, StressLevel: 5})
	assert.ErrorIs(t, err, ErrNoInput)
	assert.Zero(t, f.calls)
}

func TestAnalyzeTransportFailure(t *testing.T) {
	f := &fakeModels{err: errors.New("connection reset")}
	_, err := newTestGemini(f).Analyze(context.Background(), Request{Text: "hi", SleepHours: 8, StressLevel: 5})
	assert.ErrorIs(t, err, ErrAnalysisFailed)
	assert.Equal(t, 1, f.calls, "no retries")
}

func TestAnalyzeMalformedResponse(t *testing.T) {
	for name, body := range map[string]string{
		"not json":       "I feel like you are happy",
		"missing field":  `{"overallMood":"Calm","moodScore":5,"keyEmotions":["a"],"feedback":"f"}`,
		"score too high": `{"overallMood":"Calm","moodScore":11,"keyEmotions":["a"],"feedback":"f","activitySuggestion":"s"}`,
		"no emotions":    `{"overallMood":"Calm","moodScore":5,"keyEmotions":[],"feedback":"f","activitySuggestion":"s"}`,
		"blank mood":     `{"overallMood":" ","moodScore":5,"keyEmotions":["a"],"feedback":"f","activitySuggestion":"s"}`,
		"empty":          "",
		"wrong type":     `{"overallMood":"Calm","moodScore":"high","keyEmotions":["a"],"feedback":"f","activitySuggestion":"s"}`,
	} {
		t.Run(name, func(t *testing.T) {
			f := &fakeModels{text: body}
			_, err := newTestGemini(f).Analyze(context.Background(), Request{Text: "hi", SleepHours: 8, StressLevel: 5})
			assert.ErrorIs(t, err, ErrAnalysisFailed)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestAnalyzeRejectsOutOfRangeMetrics(t *testing.T) {
	f := &fakeModels{text: okResponse}
	_, err := newTestGemini(f).Analyze(context.Background(), Request{Text: "hi", SleepHours: 13, StressLevel: 5})
	assert.Error(t, err)
	assert.Zero(t, f.calls)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	for _, key := range []string{"GEMINI_MODEL", "GEMINI_TEMPERATURE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.InDelta(t, 0.7, cfg.Temperature, 0.0001)
}
