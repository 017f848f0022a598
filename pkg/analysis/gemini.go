package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"tableflip.dev/thrivesense/pkg/entry"
)

// Config is the analysis service credential and model selection, read
// from the environment.
type Config struct {
	APIKey      string  `env:"GEMINI_API_KEY, required"`
	Model       string  `env:"GEMINI_MODEL, default=gemini-2.5-flash"`
	Temperature float32 `env:"GEMINI_TEMPERATURE, default=0.7"`
}

// LoadConfig reads Config from the environment.
func LoadConfig(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("analysis: load config: %w", err)
	}
	return &cfg, nil
}

// generator is the slice of *genai.Models used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini analyzes entries with a Gemini model constrained to ResultSchema.
type Gemini struct {
	models      generator
	model       string
	temperature float32
	log         *zap.Logger
}

// NewGemini creates a client for the Gemini API.
func NewGemini(ctx context.Context, cfg *Config, log *zap.Logger) (*Gemini, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("analysis: GEMINI_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis: create client: %w", err)
	}
	return newGemini(client.Models, cfg, log), nil
}

func newGemini(models generator, cfg *Config, log *zap.Logger) *Gemini {
	if log == nil {
		log = zap.NewNop()
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Gemini{
		models:      models,
		model:       model,
		temperature: cfg.Temperature,
		log:         log,
	}
}

// Analyze sends one request. Any failure is reported as ErrAnalysisFailed;
// nothing is retried.
func (g *Gemini) Analyze(ctx context.Context, req Request) (*entry.Analysis, error) {
	if strings.TrimSpace(req.Text) == "" && req.Image == nil {
		return nil, ErrNoInput
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("analysis: invalid request: %w", err)
	}

	parts := []*genai.Part{genai.NewPartFromText(BuildPrompt(req))}
	if req.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MediaType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	log := g.log.With(
		zap.String("model", g.model),
		zap.Bool("image", req.Image != nil),
		zap.Bool("text", strings.TrimSpace(req.Text) != ""))
	log.Debug("requesting analysis")

	resp, err := g.models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResultSchema(),
		Temperature:      genai.Ptr(g.temperature),
	})
	if err != nil {
		log.Error("analysis request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: %w: no response", ErrAnalysisFailed, ErrMalformedResponse)
	}

	result, err := ParseResult(resp.Text())
	if err != nil {
		log.Error("analysis response rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	log.Debug("analysis complete", zap.String("mood", result.OverallMood), zap.Float64("score", result.MoodScore))
	return result, nil
}
