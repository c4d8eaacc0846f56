package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/proquote/internal/cli/formatter"
	"github.com/alexanderramin/proquote/internal/intelligence"
	"github.com/alexanderramin/proquote/internal/llm"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   `ask <proposal> "<instruction>"`,
		Short: "Edit a proposal with a natural-language instruction",
		Long: "Translate an instruction such as \"add two QA engineers and extend testing by a month\"\n" +
			"into edits, show them, and apply them after confirmation.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, text := args[0], args[1]
			s, err := app.openSession(path)
			if err != nil {
				return err
			}

			ctx := context.Background()
			stop := spinnerFor(app, cmd, "Thinking...")
			t, err := s.Interpret(ctx, text)
			stop()
			if err != nil {
				return llmError(llm.TaskTranslate, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatTranslation(t))
			if t.State != intelligence.StateReady {
				return nil
			}
			if !yes && !confirm(app.In, out, applyPrompt) {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}

			res, err := s.Apply(ctx, t.Commands...)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatEdit(res))
			if !res.Changed {
				return nil
			}
			return saveSession(path, s)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "apply without asking")
	return cmd
}
