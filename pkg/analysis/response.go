package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/thrivesense/pkg/entry"
)

var validate = validator.New()

// wireResult mirrors the schema with pointers so missing fields are seen.
type wireResult struct {
	OverallMood        *string  `json:"overallMood" validate:"required"`
	MoodScore          *float64 `json:"moodScore" validate:"required,gte=1,lte=10"`
	KeyEmotions        []string `json:"keyEmotions" validate:"required,min=1,dive,required"`
	Feedback           *string  `json:"feedback" validate:"required"`
	ActivitySuggestion *string  `json:"activitySuggestion" validate:"required"`
}

// ParseResult decodes and validates the model's JSON answer.
func ParseResult(raw string) (*entry.Analysis, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var w wireResult
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := validate.Struct(&w); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%w: field %s failed %q", ErrMalformedResponse, verrs[0].Field(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if strings.TrimSpace(*w.OverallMood) == "" {
		return nil, fmt.Errorf("%w: empty overallMood", ErrMalformedResponse)
	}

	emotions := make([]string, 0, len(w.KeyEmotions))
	for _, e := range w.KeyEmotions {
		if e = strings.TrimSpace(e); e != "" {
			emotions = append(emotions, e)
		}
	}

	return &entry.Analysis{
		OverallMood:        strings.TrimSpace(*w.OverallMood),
		MoodScore:          *w.MoodScore,
		KeyEmotions:        emotions,
		Feedback:           strings.TrimSpace(*w.Feedback),
		ActivitySuggestion: strings.TrimSpace(*w.ActivitySuggestion),
	}, nil
}
