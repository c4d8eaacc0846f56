package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/proquote/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <proposal>",
		Short: "Render a proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProposal(s.Document()))
			return nil
		},
	}
}

func newQuoteCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "quote <proposal>",
		Short: "Show the cost breakdown and payment scheme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			q := s.Quote()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(q)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuote(q))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the breakdown as JSON")
	return cmd
}
