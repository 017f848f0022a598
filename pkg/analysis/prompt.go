package analysis

import (
	"fmt"
	"strings"

	"tableflip.dev/thrivesense/pkg/entry"
)

const (
	withImageInstruction = "Also consider their facial expression in the provided image to refine your analysis."
	imageOnlyInstruction = "The user has provided an image instead of a text entry. Analyze their emotional state primarily from their facial expression in the image, using the other metrics as context."
)

// BuildPrompt renders the instruction sent with every analysis. The image
// instruction is appended only when an image accompanies the request.
func BuildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("As an expert AI wellness assistant, analyze the user's emotional state based on their self-reported metrics and any provided media (text or image).\n")
	if strings.TrimSpace(req.Text) != "" {
		fmt.Fprintf(&b, "User's journal entry: \"%s\".\n", req.Text)
	} else {
		b.WriteString("The user did not provide a written journal entry.\n")
	}
	b.WriteString("Self-reported metrics:\n")
	fmt.Fprintf(&b, "- Sleep: %s hours\n", entry.FormatHours(req.SleepHours))
	fmt.Fprintf(&b, "- Stress Level: %d/10.\n\n", req.StressLevel)
	b.WriteString("Your analysis should be empathetic, insightful, and supportive. Provide a structured JSON response based on the required schema.")

	if req.Image != nil {
		b.WriteString(" ")
		if strings.TrimSpace(req.Text) != "" {
			b.WriteString(withImageInstruction)
		} else {
			b.WriteString(imageOnlyInstruction)
		}
	}
	return b.String()
}
