package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/alexanderramin/proquote/internal/llm"
)

// SalaryOracle suggests monthly salaries for a role from named sources.
type SalaryOracle interface {
	Suggest(ctx context.Context, title string) ([]domain.SalarySuggestion, error)
}

type salaryOutput struct {
	Suggestions []domain.SalarySuggestion `json:"suggestions"`
}

type salaryOracle struct {
	client llm.LLMClient
}

// NewSalaryOracle creates a SalaryOracle backed by an LLM client.
func NewSalaryOracle(client llm.LLMClient) SalaryOracle {
	return &salaryOracle{client: client}
}

func (s *salaryOracle) Suggest(ctx context.Context, title string) ([]domain.SalarySuggestion, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("role title is required")
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSalary,
		SystemPrompt: salarySystemPrompt,
		UserPrompt:   "Role: " + title,
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("llm salary failed: %w", err)
	}

	out, err := llm.ExtractJSON[salaryOutput](resp.Text, validateSalaryOutput)
	if err != nil {
		return nil, err
	}

	suggestions := make([]domain.SalarySuggestion, 0, len(out.Suggestions))
	for _, sg := range out.Suggestions {
		sg.Source = domain.CoalesceStr(strings.TrimSpace(sg.Source), "Estimate")
		suggestions = append(suggestions, sg)
	}
	return suggestions, nil
}

func validateSalaryOutput(o salaryOutput) error {
	for i, sg := range o.Suggestions {
		if sg.Salary < 0 {
			return fmt.Errorf("suggestion %d has negative salary %v", i, sg.Salary)
		}
	}
	return nil
}

// PickSuggestion chooses the suggestion at index, or the last one when the
// list is shorter. An empty list yields a zero "Manual" salary.
func PickSuggestion(suggestions []domain.SalarySuggestion, index int) domain.SalarySuggestion {
	if len(suggestions) == 0 {
		return domain.SalarySuggestion{Source: domain.SalarySourceManual}
	}
	if index < 0 {
		index = 0
	}
	if index >= len(suggestions) {
		index = len(suggestions) - 1
	}
	return suggestions[index]
}
