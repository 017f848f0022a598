// Package analysis asks a hosted generative model for a structured mood
// analysis of a journal entry.
package analysis

import (
	"context"
	"errors"

	"tableflip.dev/thrivesense/pkg/entry"
	"tableflip.dev/thrivesense/pkg/imagedata"
)

var (
	// ErrAnalysisFailed covers every failure of the analysis call. The
	// message is shown to the user as is.
	ErrAnalysisFailed = errors.New("failed to get analysis from AI. Please try again")

	// ErrMalformedResponse is joined with ErrAnalysisFailed when the model
	// answered with something that doesn't fit the result schema.
	ErrMalformedResponse = errors.New("analysis response does not match the expected schema")

	// ErrNoInput is returned when neither text nor an image was supplied.
	ErrNoInput = errors.New("analysis needs text or an image")
)

// Request carries the inputs of one analysis.
type Request struct {
	Text        string           `validate:"-"`
	SleepHours  float64          `validate:"gte=0,lte=12"`
	StressLevel int              `validate:"gte=1,lte=10"`
	Image       *imagedata.Image `validate:"-"`
}

// Analyzer turns a Request into an analysis result.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*entry.Analysis, error)
}

// AnalyzerFunc adapts a function to Analyzer.
type AnalyzerFunc func(ctx context.Context, req Request) (*entry.Analysis, error)

func (f AnalyzerFunc) Analyze(ctx context.Context, req Request) (*entry.Analysis, error) {
	return f(ctx, req)
}
