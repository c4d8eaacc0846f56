package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/proquote/internal/llm"
)

// TechSuggestService recommends technologies for a set of requirements.
type TechSuggestService interface {
	Suggest(ctx context.Context, requirements string) (*TechSuggestion, error)
}

type techSuggestService struct {
	client llm.LLMClient
}

// NewTechSuggestService creates a TechSuggestService backed by an LLM client.
func NewTechSuggestService(client llm.LLMClient) TechSuggestService {
	return &techSuggestService{client: client}
}

func (s *techSuggestService) Suggest(ctx context.Context, requirements string) (*TechSuggestion, error) {
	requirements = strings.TrimSpace(requirements)
	if requirements == "" {
		return nil, errors.New("requirements are required")
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskTechSuggest,
		SystemPrompt: techSuggestSystemPrompt,
		UserPrompt:   "Project requirements:\n" + requirements,
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("llm tech suggest failed: %w", err)
	}

	out, err := llm.ExtractJSON[TechSuggestion](resp.Text, func(t TechSuggestion) error {
		if len(t.Technologies) == 0 {
			return errors.New("suggested_technologies is empty")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.Technologies = dedupeLabels(out.Technologies)
	out.Reasoning = strings.TrimSpace(out.Reasoning)
	return &out, nil
}
