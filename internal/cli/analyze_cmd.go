package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/proquote/internal/cli/formatter"
	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/alexanderramin/proquote/internal/intelligence"
	"github.com/alexanderramin/proquote/internal/llm"
	"github.com/alexanderramin/proquote/internal/service"
	"github.com/alexanderramin/proquote/internal/source"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var (
		out string
		in  intakeAnswers
	)

	cmd := &cobra.Command{
		Use:   "analyze [requirements-file]",
		Short: "Draft a priced proposal from a requirements document",
		Long: "Read a requirements document (.txt, .md or .html), extract scope, team and timeline\n" +
			"with the LLM, suggest salaries for each role and write the proposal file.\n" +
			"Without a file, an intake form is shown on a terminal; otherwise stdin is read.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 1:
				src, err := source.Read(args[0])
				if err != nil {
					return err
				}
				in.Requirements = src.Text
			case app.IsInteractive():
				if err := app.RunForm(intakeForm(&in)); err != nil {
					return fmt.Errorf("intake form: %w", err)
				}
			default:
				text, err := readAll(app.In)
				if err != nil {
					return err
				}
				in.Requirements = text
			}
			if strings.TrimSpace(in.Requirements) == "" {
				return source.ErrEmptyInput
			}

			client, err := in.clientProfile()
			if err != nil {
				return err
			}
			details, err := in.details()
			if err != nil {
				return err
			}

			stop := spinnerFor(app, cmd, "Analyzing requirements...")
			session, err := service.NewSessionFromInput(context.Background(), intelligence.ExtractionInput{
				Content:       in.Requirements,
				ClientProfile: client,
				Details:       details,
			}, app.Collab, app.sessionOptions(), app.Observer)
			stop()
			if errors.Is(err, service.ErrNotRequirements) {
				return err
			}
			if err != nil {
				return llmError(llm.TaskExtract, err)
			}

			if err := saveSession(out, session); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProposal(session.Document()))
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s %s\n", formatter.Dim("Saved to"), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "proposal.json", "proposal file to write (.json or .yaml)")
	f := cmd.Flags()
	f.StringVar(&in.Company, "company", "", "client company name")
	f.StringVar(&in.Recipient, "recipient", "", "proposal recipient")
	f.StringVar(&in.Profile, "profile", string(domain.ProfileOther), "client profile: startup, multinational, government, other")
	f.StringVar(&in.Subject, "subject", "", "letter subject")
	f.StringVar(&in.From, "from", "", "sender printed on the letter")
	f.StringVar(&in.SignatureName, "signature", "", "name signing the proposal")
	f.StringVar(&in.SignatureFont, "signature-font", "", "dancing-script, pacifico, sacramento or great-vibes")
	f.StringVar(&in.Bank, "bank", "", "bank for the payment account")
	f.StringVar(&in.AccountNumber, "account-number", "", "payment account number")
	f.StringVar(&in.AccountName, "account-name", "", "payment account holder")
	return cmd
}

// spinnerFor shows a spinner on stderr only when a person is watching.
func spinnerFor(app *App, cmd *cobra.Command, msg string) func() {
	if !app.IsInteractive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), msg)
}
