package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/proquote/internal/cli/formatter"
	"github.com/alexanderramin/proquote/internal/intelligence"
	"github.com/alexanderramin/proquote/internal/llm"
	"github.com/alexanderramin/proquote/internal/service"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newAssistantCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assistant <proposal>",
		Short: "Chat with the proposal: edit it in plain language",
		Long: "Open an interactive chat. Each message is translated into edits and applied\n" +
			"right away. Commands: /quote, /show, /quit. The proposal is saved on exit\n" +
			"when it changed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Collab.Translator == nil {
				return llmError(llm.TaskTranslate, llm.ErrDisabled)
			}
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			if _, err := app.RunProgram(newAssistantModel(cmd.Context(), s)); err != nil {
				return err
			}
			if !s.Changed() {
				return nil
			}
			if err := saveSession(args[0], s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Dim("Saved"), args[0])
			return nil
		},
	}
}

// askDoneMsg carries the outcome of one instruction back to the model.
type askDoneMsg struct {
	res *service.AskResult
	err error
}

// assistantModel is a chat over one session. While an instruction is in
// flight the input is locked so the session only ever sees one call.
type assistantModel struct {
	ctx      context.Context
	session  *service.ProposalSession
	input    textinput.Model
	messages []string
	busy     bool
}

func newAssistantModel(ctx context.Context, s *service.ProposalSession) *assistantModel {
	if ctx == nil {
		ctx = context.Background()
	}
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Placeholder = "e.g. add a QA engineer and set margin to 25%"

	m := &assistantModel{ctx: ctx, session: s, input: ti}
	m.messages = append(m.messages,
		formatter.Header("Proposal Assistant"),
		formatter.Dim("Describe a change. /quote shows the price, /show the proposal, /quit exits."),
		formatter.FormatGrandTotal(s.Quote()),
	)
	return m
}

func (m *assistantModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *assistantModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			return m.handleInput(text)
		}

	case askDoneMsg:
		m.busy = false
		m.messages = append(m.messages, renderAsk(msg))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *assistantModel) View() string {
	var b strings.Builder
	for _, line := range m.messages {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.busy {
		b.WriteString(formatter.Dim("thinking...") + "\n")
	}
	b.WriteString(formatter.StylePurple.Render("proquote") + formatter.Dim("> "))
	b.WriteString(m.input.View())
	return b.String()
}

func (m *assistantModel) handleInput(text string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(text) {
	case "/quit", "/exit", "/q":
		return m, tea.Quit
	case "/quote":
		m.messages = append(m.messages, formatter.FormatQuote(m.session.Quote()))
		return m, nil
	case "/show":
		m.messages = append(m.messages, formatter.FormatProposal(m.session.Document()))
		return m, nil
	}

	m.messages = append(m.messages, formatter.Dim("You: ")+text)
	m.busy = true
	s, ctx := m.session, m.ctx
	return m, func() tea.Msg {
		res, err := s.Ask(ctx, text)
		return askDoneMsg{res: res, err: err}
	}
}

func renderAsk(msg askDoneMsg) string {
	if msg.err != nil {
		return formatter.StyleRed.Render(llmError(llm.TaskTranslate, msg.err).Error())
	}
	t := msg.res.Translation
	reply := formatter.StateColor(t.State).Render(msg.res.Reply())
	if t.State != intelligence.StateReady {
		return reply
	}
	return reply + "\n" + formatter.FormatGrandTotal(msg.res.Edit.Quote)
}
