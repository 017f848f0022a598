package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tableflip.dev/thrivesense/pkg/imagedata"
)

func TestBuildPromptHalfHours(t *testing.T) {
	p := BuildPrompt(Request{Text: "ok", SleepHours: 6.5, StressLevel: 3})
	assert.Contains(t, p, "- Sleep: 6.5 hours")
	assert.True(t, strings.HasSuffix(p, "based on the required schema."))
}

func TestBuildPromptImageInstruction(t *testing.T) {
	img := &imagedata.Image{MediaType: "image/png"}
	assert.True(t, strings.HasSuffix(BuildPrompt(Request{Text: "ok", StressLevel: 1, Image: img}), withImageInstruction))
	assert.True(t, strings.HasSuffix(BuildPrompt(Request{StressLevel: 1, Image: img}), imageOnlyInstruction))
}

func TestBuildPromptKeepsTextVerbatim(t *testing.T) {
	text := "Line one\nShe said \"fine\" ☺"
	p := BuildPrompt(Request{Text: text, SleepHours: 8, StressLevel: 5})
	assert.Contains(t, p, "User's journal entry: \""+text+"\".\n")
	assert.NotContains(t, p, `\n`)
	assert.NotContains(t, p, `\"`)
}
