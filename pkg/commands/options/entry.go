package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/thrivesense/pkg/capture"
)

// EntryOptions
type EntryOptions struct {
	Text        string
	SleepHours  float64
	StressLevel int
	Photo       string
	Dictate     bool
	DictateCmd  string
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVarP(&o.Text, "text", "t", "",
		"What is on your mind. Remaining arguments are appended.")
	cmd.Flags().Float64Var(&o.SleepHours, "sleep", capture.DefaultSleepHours,
		"Hours slept last night, 0 to 12 in half hour steps.")
	cmd.Flags().IntVar(&o.StressLevel, "stress", capture.DefaultStressLevel,
		"Stress level from 1 (calm) to 10 (overwhelmed).")
	cmd.Flags().StringVar(&o.Photo, "photo", "",
		"A photo of your face, PNG or JPEG.")
	cmd.Flags().BoolVar(&o.Dictate, "dictate", false,
		"Read transcribed speech from stdin, one finalized segment per line.")
	cmd.Flags().StringVar(&o.DictateCmd, "dictate-cmd", "",
		`Run a transcriber and take each line it prints as a segment, example: --dictate-cmd="whisper-stream --lines".`)
	cmd.MarkFlagsMutuallyExclusive("dictate", "dictate-cmd")
}

// Dictation returns the transcriber command split into name and args.
func (o *EntryOptions) Dictation() (string, []string) {
	fields := strings.Fields(o.DictateCmd)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
