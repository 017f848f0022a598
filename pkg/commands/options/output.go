package options

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
	// Out receives errors rendered as JSON, color.Output when nil.
	Out io.Writer
}

type jsonError struct {
	Error string `json:"error"`
}

func AddOutputArg(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().BoolVar(&o.JSON, "json", false,
		`Output as JSON. Errors are printed as {"error": "..."} and the exit code is 0.`)
}

// HandleError prints err as JSON when --json was given and swallows it.
func (o *OutputOptions) HandleError(err error) error {
	if !o.JSON || err == nil {
		return err
	}
	b, merr := json.Marshal(jsonError{Error: err.Error()})
	if merr != nil {
		return merr
	}
	out := o.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintln(out, string(b))
	return nil
}
