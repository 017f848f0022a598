package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/thrivesense/pkg/export"
)

// ExportOptions
type ExportOptions struct {
	Path string
}

func AddExportArgs(cmd *cobra.Command, o *ExportOptions) {
	cmd.Flags().StringVarP(&o.Path, "out", "o", export.DefaultFilename,
		"File to write the PDF to.")
}
