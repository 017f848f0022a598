package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/thrivesense/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Since string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Since, "since", "",
		`Only entries newer than this, example: --since=1w or --since=3d. Default is all.`)
}

func (o *WindowOptions) Window() (timeutil.Window, error) {
	return timeutil.ParseWindow(o.Since)
}
