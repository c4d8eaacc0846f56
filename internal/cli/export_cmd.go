package cli

import (
	"fmt"

	"github.com/alexanderramin/proquote/internal/cli/formatter"
	"github.com/alexanderramin/proquote/internal/codec"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <proposal> --out <file>",
		Short: "Convert a proposal between JSON and YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := codec.FormatFromPath(out); err != nil {
				return err
			}
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			if err := saveSession(out, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Dim("Wrote"), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "destination file (.json, .yaml or .yml)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
