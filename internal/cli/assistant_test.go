package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/proquote/internal/command"
	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/alexanderramin/proquote/internal/intelligence"
	"github.com/alexanderramin/proquote/internal/llm"
	"github.com/alexanderramin/proquote/internal/service"
	"github.com/alexanderramin/proquote/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedTranslator struct {
	replies []*intelligence.Translation
	err     error
}

func (s *scriptedTranslator) Translate(context.Context, string, domain.Proposal) (*intelligence.Translation, error) {
	if s.err != nil {
		return nil, s.err
	}
	t := s.replies[0]
	s.replies = s.replies[1:]
	return t, nil
}

func newAssistantDriver(t *testing.T, tr intelligence.TranslatorService) (*teatest.Driver, *service.ProposalSession) {
	t.Helper()
	s, err := service.NewSession(exampleProposal(), service.Collaborators{Translator: tr}, service.Options{})
	require.NoError(t, err)
	d := teatest.New(t, newAssistantModel(context.Background(), s), teatest.WithSize(100, 40))
	d.DrainInit()
	return d, s
}

func TestAssistant_AppliesReadyInstruction(t *testing.T) {
	phase := "Hardening"
	tr := &scriptedTranslator{replies: []*intelligence.Translation{{
		State:    intelligence.StateReady,
		Reply:    "Sure.",
		Commands: []command.Command{command.UpdateTimelineMonth{Month: 3, Phase: &phase}},
	}}}
	d, s := newAssistantDriver(t, tr)
	d.ViewContains("Rp 135.600.000")

	d.Submit("rename month 3 to hardening")

	d.ViewContains("You: rename month 3 to hardening")
	d.ViewContains("Sure. Updated month 3 to Hardening: Activity 3.")
	assert.Equal(t, "Hardening", s.Document().Timeline[2].Phase)
	assert.True(t, s.Changed())
	assert.NotContains(t, d.View(), "thinking...")
}

func TestAssistant_ClarificationKeepsDocument(t *testing.T) {
	tr := &scriptedTranslator{replies: []*intelligence.Translation{{
		State: intelligence.StateNeedsClarification,
		Reply: "Low confidence (30%). Please clarify.",
	}}}
	d, s := newAssistantDriver(t, tr)

	d.Submit("do the thing")

	d.ViewContains("Please clarify.")
	assert.False(t, s.Changed())
}

func TestAssistant_ErrorIsShown(t *testing.T) {
	d, _ := newAssistantDriver(t, &scriptedTranslator{err: llm.ErrOllamaUnavailable})

	d.Submit("add a QA")

	d.ViewContains("ollama serve")
}

func TestAssistant_SlashCommandsAndQuit(t *testing.T) {
	d, _ := newAssistantDriver(t, &scriptedTranslator{})

	d.Submit("/quote")
	d.ViewContains("PAYMENT SCHEME")

	d.Submit("/show")
	d.ViewContains("TECH STACK")

	d.Submit("/quit")
	assert.True(t, d.Quitting)
}

func TestAssistant_EmptyEnterIsIgnored(t *testing.T) {
	d, _ := newAssistantDriver(t, &scriptedTranslator{})
	before := d.View()
	d.PressEnter()
	assert.Equal(t, before, d.View())
}

func TestAssistantCmd_SavesOnExitWhenChanged(t *testing.T) {
	path := writeProposal(t, exampleProposal(), "p.json")
	app := testApp()
	app.Collab.Translator = &scriptedTranslator{replies: []*intelligence.Translation{{
		State:    intelligence.StateReady,
		Commands: []command.Command{command.RemoveTimelineMonth{Month: 1}},
	}}}
	app.RunProgram = func(m tea.Model) (tea.Model, error) {
		d := teatest.New(t, m)
		d.Submit("drop the first month")
		d.PressEsc()
		return d.Model, nil
	}

	out, err := executeCmd(t, app, "assistant", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved")
	assert.Len(t, loadProposal(t, path).Timeline, 2)
}
