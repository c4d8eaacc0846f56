package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/proquote/internal/cli/formatter"
	"github.com/alexanderramin/proquote/internal/command"
	"github.com/spf13/cobra"
)

type editFlags struct {
	roles       roleFlag
	salaries    salaryFlag
	capital     float64
	margin      float64
	addMonths   int
	updateMonth int
	removeMonth int
	phase       string
	activity    string
	techAdd     []string
	techRemove  []string
	dryRun      bool
}

func newEditCmd(app *App) *cobra.Command {
	var f editFlags
	cmd := &cobra.Command{
		Use:   "edit <proposal>",
		Short: "Apply structured edits to a proposal",
		Long: "Apply edits from flags as one batch, then save the proposal.\n" +
			"Edits run in this order: roles, salaries, costs, month removal,\n" +
			"month addition, month update, tech additions, tech removals.",
		Example: `  proquote edit proposal.json --role "QA Engineer=2" --margin 25
  proquote edit proposal.json --add-months 2 --phase Testing --activity "UAT"
  proquote edit proposal.json --salary "QA Engineer=9.500.000" --tech-add Redis`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := f.commands(cmd)
			if err != nil {
				return err
			}
			if len(cmds) == 0 {
				return errors.New("no edits given; see --help for the available flags")
			}

			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			stop := spinnerFor(app, cmd, "Applying...")
			res, err := s.Apply(context.Background(), cmds...)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEdit(res))
			if !res.Changed || f.dryRun {
				return nil
			}
			return saveSession(args[0], s)
		},
	}

	fl := cmd.Flags()
	fl.Var(&f.roles, "role", `set a role headcount, repeatable; 0 removes the role`)
	fl.Var(&f.salaries, "salary", `set a role's monthly salary by hand, repeatable`)
	fl.Float64Var(&f.capital, "capital", 0, "technical capital in rupiah")
	fl.Float64Var(&f.margin, "margin", 0, "profit margin percent")
	fl.IntVar(&f.addMonths, "add-months", 0, "append N months to the timeline")
	fl.IntVar(&f.updateMonth, "update-month", 0, "rewrite the phase/activity of month N")
	fl.IntVar(&f.removeMonth, "remove-month", 0, "remove month N and renumber the rest")
	fl.StringVar(&f.phase, "phase", "", "phase for --add-months or --update-month")
	fl.StringVar(&f.activity, "activity", "", "activity for --add-months or --update-month")
	fl.StringSliceVar(&f.techAdd, "tech-add", nil, "technologies to add")
	fl.StringSliceVar(&f.techRemove, "tech-remove", nil, "technologies to remove")
	fl.BoolVar(&f.dryRun, "dry-run", false, "show the result without saving")
	return cmd
}

// commands turns the parsed flags into one ordered batch.
func (f *editFlags) commands(cmd *cobra.Command) ([]command.Command, error) {
	changed := cmd.Flags().Changed
	if changed("add-months") && changed("update-month") && (changed("phase") || changed("activity")) {
		return nil, errors.New("--phase/--activity apply to only one of --add-months or --update-month")
	}

	var out []command.Command
	for _, c := range f.roles.cmds {
		out = append(out, c)
	}
	for _, c := range f.salaries.cmds {
		out = append(out, c)
	}

	if changed("capital") || changed("margin") {
		var c command.SetCost
		if changed("capital") {
			if f.capital < 0 {
				return nil, errors.New("--capital must be >= 0")
			}
			v := f.capital
			c.TechnicalCapital = &v
		}
		if changed("margin") {
			v := f.margin
			c.ProfitMarginPercent = &v
		}
		out = append(out, c)
	}

	if changed("remove-month") {
		if f.removeMonth < 1 {
			return nil, errors.New("--remove-month must be >= 1")
		}
		out = append(out, command.RemoveTimelineMonth{Month: f.removeMonth})
	}
	if changed("add-months") {
		if f.addMonths < 1 || f.addMonths > command.MaxAddMonths {
			return nil, fmt.Errorf("--add-months must be from 1 to %d", command.MaxAddMonths)
		}
		out = append(out, command.AddTimelineMonths{Count: f.addMonths, Phase: f.phase, Activity: f.activity})
	}
	if changed("update-month") {
		if f.updateMonth < 1 {
			return nil, errors.New("--update-month must be >= 1")
		}
		c := command.UpdateTimelineMonth{Month: f.updateMonth}
		if changed("phase") {
			v := f.phase
			c.Phase = &v
		}
		if changed("activity") {
			v := f.activity
			c.Activity = &v
		}
		if c.Phase == nil && c.Activity == nil {
			return nil, errors.New("--update-month needs --phase or --activity")
		}
		out = append(out, c)
	}

	for _, t := range f.techAdd {
		out = append(out, command.SetTechStack{Action: command.TechAdd, Technology: t})
	}
	for _, t := range f.techRemove {
		out = append(out, command.SetTechStack{Action: command.TechRemove, Technology: t})
	}
	return out, nil
}
