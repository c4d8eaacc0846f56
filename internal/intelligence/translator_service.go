package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/proquote/internal/command"
	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/alexanderramin/proquote/internal/llm"
)

// TranslatorService turns a natural-language editing instruction into
// engine commands.
type TranslatorService interface {
	Translate(ctx context.Context, text string, doc domain.Proposal) (*Translation, error)
}

type translatorService struct {
	client    llm.LLMClient
	threshold float64
}

// NewTranslatorService creates a TranslatorService. Translations below
// the confidence threshold are returned as needing clarification.
func NewTranslatorService(client llm.LLMClient, threshold float64) TranslatorService {
	return &translatorService{client: client, threshold: threshold}
}

func (s *translatorService) Translate(ctx context.Context, text string, doc domain.Proposal) (*Translation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return &Translation{State: StateNeedsClarification, Reply: "What would you like to change?"}, nil
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding proposal: %w", err)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskTranslate,
		SystemPrompt: translateSystemPrompt,
		UserPrompt:   fmt.Sprintf("Current proposal:\n%s\n\nInstruction: %s", docJSON, text),
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("llm translate failed: %w", err)
	}

	out, err := llm.ExtractJSON[translatorOutput](resp.Text, validateTranslatorOutput)
	if err != nil {
		return nil, &ParsedCommandError{
			Code:    ErrCodeInvalidOutputFormat,
			Message: fmt.Sprintf("failed to extract commands: %v", err),
		}
	}

	return s.resolve(out), nil
}

// resolve applies the boundary contract: every command must be known and
// well-formed, otherwise nothing is handed to the engine.
func (s *translatorService) resolve(out translatorOutput) *Translation {
	t := &Translation{
		Raw:        out.Commands,
		Reply:      strings.TrimSpace(out.Reply),
		Confidence: out.Confidence,
	}

	if len(out.Commands) == 0 {
		t.State = StateNeedsClarification
		if t.Reply == "" {
			t.Reply = "I couldn't find a change to make. Could you rephrase?"
		}
		return t
	}

	cmds := make([]command.Command, 0, len(out.Commands))
	for _, tc := range out.Commands {
		cmd, perr := BuildCommand(tc)
		if perr != nil {
			t.State = StateRejected
			t.Error = perr
			return t
		}
		cmds = append(cmds, cmd)
	}

	if out.Confidence < s.threshold {
		t.State = StateNeedsClarification
		if t.Reply == "" {
			t.Reply = fmt.Sprintf("Low confidence (%.0f%%). Please clarify.", out.Confidence*100)
		}
		return t
	}

	t.State = StateReady
	t.Commands = cmds
	return t
}

// validateTranslatorOutput is a schema validator for ExtractJSON.
func validateTranslatorOutput(o translatorOutput) error {
	if o.Confidence < 0 || o.Confidence > 1 {
		return fmt.Errorf("confidence must be in [0,1], got %f", o.Confidence)
	}
	return nil
}
