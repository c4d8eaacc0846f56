package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/proquote/internal/cli/formatter"
	"github.com/alexanderramin/proquote/internal/llm"
	"github.com/alexanderramin/proquote/internal/service"
	"github.com/spf13/cobra"
)

func newTechCmd(app *App) *cobra.Command {
	var apply bool
	cmd := &cobra.Command{
		Use:   "tech <proposal>",
		Short: "Suggest technologies for a proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			stop := spinnerFor(app, cmd, "Suggesting technologies...")
			sug, err := s.SuggestTechnologies(ctx)
			stop()
			if err != nil {
				return llmError(llm.TaskTechSuggest, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatTechSuggestion(sug, s.Document().TechStack))
			if !apply {
				return nil
			}

			res, err := s.Apply(ctx, service.TechCommands(sug.Technologies)...)
			if err != nil {
				return err
			}
			fmt.Fprint(out, "\n"+formatter.FormatEdit(res))
			if !res.Changed {
				return nil
			}
			return saveSession(args[0], s)
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "add the suggestions to the tech stack and save")
	return cmd
}
