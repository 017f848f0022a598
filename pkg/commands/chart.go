package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/thrivesense/pkg/commands/options"
	"tableflip.dev/thrivesense/pkg/export"
	"tableflip.dev/thrivesense/pkg/runner/chart"
	runexport "tableflip.dev/thrivesense/pkg/runner/export"
)

func addChart(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	png := ""
	calendar := false

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Plot mood scores from oldest to newest.",
		Example: `
thrive chart
thrive chart --since 1mo --png mood.png
thrive chart --calendar
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			w, err := wo.Window()
			if err != nil {
				return err
			}
			_, svc, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			c := chart.Chart{
				App:      svc,
				Window:   w,
				PNG:      png,
				Calendar: calendar,
				Out:      cmd.OutOrStdout(),
			}
			return c.Do(cmd.Context())
		},
	}

	options.AddWindowArgs(cmd, wo)
	cmd.Flags().StringVar(&png, "png", "", "Also write the chart as a PNG image to this file.")
	cmd.Flags().BoolVar(&calendar, "calendar", false, "Show the average mood per day on a month calendar instead.")

	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	eo := &options.ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the journal and mood chart to a PDF.",
		Example: `
thrive export
thrive export --since 1mo --out october.pdf
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			w, err := wo.Window()
			if err != nil {
				return err
			}
			_, svc, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			x := runexport.Export{
				App:      svc,
				Exporter: &export.Exporter{Log: logger},
				Path:     eo.Path,
				Window:   w,
				Out:      cmd.OutOrStdout(),
			}
			return x.Do(cmd.Context())
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddExportArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}
