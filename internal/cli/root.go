package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/proquote/internal/codec"
	"github.com/alexanderramin/proquote/internal/config"
	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/alexanderramin/proquote/internal/llm"
	"github.com/alexanderramin/proquote/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// App holds configuration and the LLM-backed collaborators used by CLI
// commands. Collaborators are nil when LLM features are disabled.
type App struct {
	Config     config.Config
	ConfigPath string
	Collab     service.Collaborators
	Observer   service.UseCaseObserver

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	In            io.Reader

	// Test seams for the interactive surfaces.
	RunForm    func(*huh.Form) error
	RunProgram func(tea.Model) (tea.Model, error)
	ServeMCP   func(ctx context.Context, proposalPath string, s *service.ProposalSession) error
}

// NewRootCmd creates the top-level "proquote" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	app.defaults()
	root := &cobra.Command{
		Use:           "proquote",
		Short:         "Draft, edit and price software project proposals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAnalyzeCmd(app),
		newShowCmd(app),
		newQuoteCmd(app),
		newEditCmd(app),
		newAskCmd(app),
		newAssistantCmd(app),
		newSalaryCmd(app),
		newTechCmd(app),
		newExportCmd(app),
		newMCPCmd(app),
		newConfigCmd(app),
	)
	return root
}

func (a *App) defaults() {
	if a.IsInteractive == nil {
		a.IsInteractive = func() bool { return false }
	}
	if a.RunForm == nil {
		a.RunForm = func(f *huh.Form) error { return f.Run() }
	}
	if a.RunProgram == nil {
		a.RunProgram = func(m tea.Model) (tea.Model, error) { return tea.NewProgram(m).Run() }
	}
	if a.ServeMCP == nil {
		a.ServeMCP = serveMCPStdio
	}
}

func (a *App) sessionOptions() service.Options {
	return service.Options{SalarySuggestionIndex: a.Config.Pricing.SalarySuggestionIndex}
}

// openSession loads a proposal file into a new editing session.
func (a *App) openSession(path string) (*service.ProposalSession, error) {
	doc, err := codec.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return service.NewSession(doc, a.Collab, a.sessionOptions(), a.Observer)
}

// scratchSession is a session over an empty proposal, for commands that
// only need the LLM collaborators.
func (a *App) scratchSession() *service.ProposalSession {
	s, err := service.NewSession(domain.Proposal{}, a.Collab, a.sessionOptions(), a.Observer)
	if err != nil {
		panic(err)
	}
	return s
}

func saveSession(path string, s *service.ProposalSession) error {
	if err := codec.Save(path, s.Document()); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	s.MarkSaved()
	return nil
}

// llmError turns LLM failures into actionable messages.
func llmError(task llm.TaskType, err error) error {
	switch {
	case errors.Is(err, llm.ErrDisabled):
		return fmt.Errorf("%w or [llm] enabled = true in config.toml", err)
	case errors.Is(err, llm.ErrTimeout):
		return fmt.Errorf("%s failed: %w (raise %s, e.g. 60000)", task, err, llm.TaskTimeoutEnv(task))
	case errors.Is(err, llm.ErrOllamaUnavailable):
		return fmt.Errorf("%s failed: %w (is `ollama serve` running?)", task, err)
	default:
		return fmt.Errorf("%s failed: %w", task, err)
	}
}
