package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/proquote/internal/cli/formatter"
	"github.com/alexanderramin/proquote/internal/llm"
	"github.com/alexanderramin/proquote/internal/service"
	"github.com/spf13/cobra"
)

func newSalaryCmd(app *App) *cobra.Command {
	var pick int
	cmd := &cobra.Command{
		Use:   `salary [proposal] "<role title>"`,
		Short: "List salary suggestions for a role, or apply one to a proposal",
		Long: "With only a role title, list monthly salary suggestions.\n" +
			"With a proposal and one of its roles, list them and apply suggestion #N with\n" +
			"--pick N; the role's salary source is recorded from the suggestion.",
		Example: `  proquote salary "QA Engineer"
  proquote salary proposal.json "QA Engineer" --pick 2`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ctx := context.Background()

			if len(args) == 1 {
				if cmd.Flags().Changed("pick") {
					return errors.New("--pick needs a proposal file")
				}
				title := strings.TrimSpace(args[0])
				stop := spinnerFor(app, cmd, "Looking up salaries...")
				list, err := app.scratchSession().SalarySuggestions(ctx, title)
				stop()
				if err != nil {
					return llmError(llm.TaskSalary, err)
				}
				fmt.Fprint(out, formatter.FormatSalarySuggestions(title, list, app.Config.Pricing.SalarySuggestionIndex))
				return nil
			}

			path, title := args[0], strings.TrimSpace(args[1])
			s, err := app.openSession(path)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("pick") {
				stop := spinnerFor(app, cmd, "Looking up salaries...")
				list, err := s.SalarySuggestions(ctx, title)
				stop()
				if err != nil {
					return llmError(llm.TaskSalary, err)
				}
				fmt.Fprint(out, formatter.FormatSalarySuggestions(title, list, app.Config.Pricing.SalarySuggestionIndex))
				fmt.Fprintln(out, formatter.Dim("Apply one with --pick N."))
				return nil
			}

			stop := spinnerFor(app, cmd, "Looking up salaries...")
			res, list, err := s.AcceptSalary(ctx, title, &pick)
			stop()
			switch {
			case errors.Is(err, service.ErrUnknownRole), errors.Is(err, service.ErrNoSuggestions):
				return err
			case errors.Is(err, service.ErrPickOutOfRange):
				fmt.Fprint(out, formatter.FormatSalarySuggestions(title, list, app.Config.Pricing.SalarySuggestionIndex))
				return err
			case err != nil:
				return llmError(llm.TaskSalary, err)
			}

			fmt.Fprint(out, formatter.FormatSalaryPicked(title, list, pick))
			fmt.Fprint(out, "\n"+formatter.FormatEdit(res))
			if !res.Changed {
				return nil
			}
			return saveSession(path, s)
		},
	}
	cmd.Flags().IntVar(&pick, "pick", 0, "apply suggestion #N (as listed) to the role and save")
	return cmd
}
