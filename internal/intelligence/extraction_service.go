package intelligence

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/alexanderramin/proquote/internal/llm"
)

// ExtractionService reads a requirements source and drafts a proposal.
type ExtractionService interface {
	Extract(ctx context.Context, in ExtractionInput) (*Extraction, error)
}

type extractionOutput struct {
	IsValid             *bool            `json:"is_valid"`
	Reason              string           `json:"reason"`
	Summary             string           `json:"summary"`
	RequiredFeatures    []string         `json:"required_features"`
	Roles               []extractedRole  `json:"roles"`
	TechnicalCapital    float64          `json:"technical_capital"`
	ProfitMarginPercent *float64         `json:"profit_margin_percent"`
	Timeline            []extractedMonth `json:"timeline"`
	Technologies        []string         `json:"technologies"`
}

type extractedRole struct {
	Title     string  `json:"title"`
	Headcount float64 `json:"headcount"`
}

type extractedMonth struct {
	Month    float64 `json:"month"`
	Phase    string  `json:"phase"`
	Activity string  `json:"activity"`
}

type extractionService struct {
	client        llm.LLMClient
	defaultMargin float64
}

// NewExtractionService creates an ExtractionService. defaultMargin is used
// when the model omits a profit margin.
func NewExtractionService(client llm.LLMClient, defaultMargin float64) ExtractionService {
	return &extractionService{client: client, defaultMargin: defaultMargin}
}

func (s *extractionService) Extract(ctx context.Context, in ExtractionInput) (*Extraction, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return &Extraction{Valid: false, Reason: "the requirements document is empty"}, nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskExtract,
		SystemPrompt: extractSystemPrompt,
		UserPrompt:   fmt.Sprintf("Client profile: %s\n\nRequirements document:\n%s", in.ClientProfile.Label(), content),
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("llm extract failed: %w", err)
	}

	out, err := llm.ExtractJSON[extractionOutput](resp.Text, nil)
	if err != nil {
		return nil, err
	}

	if out.IsValid != nil && !*out.IsValid {
		return &Extraction{
			Valid:  false,
			Reason: domain.CoalesceStr(strings.TrimSpace(out.Reason), "the document does not describe project requirements"),
		}, nil
	}

	doc := s.normalize(out, in)
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: normalized proposal invalid: %v", llm.ErrInvalidOutput, err)
	}
	return &Extraction{Valid: true, Proposal: &doc}, nil
}

// normalize turns loose model output into a document that satisfies every
// proposal invariant.
func (s *extractionService) normalize(out extractionOutput, in ExtractionInput) domain.Proposal {
	doc := domain.Proposal{
		Client:           in.ClientProfile,
		Details:          in.Details,
		Summary:          strings.TrimSpace(out.Summary),
		RequiredFeatures: dedupeLabels(out.RequiredFeatures),
		Roles:            mergeRoles(out.Roles),
		Timeline:         renumberTimeline(out.Timeline),
		TechStack:        dedupeLabels(out.Technologies),
	}

	if domain.ValidAmount(out.TechnicalCapital) {
		doc.Costs.TechnicalCapital = out.TechnicalCapital
	}
	doc.Costs.ProfitMarginPercent = s.defaultMargin
	if m := out.ProfitMarginPercent; m != nil && !math.IsNaN(*m) && !math.IsInf(*m, 0) {
		doc.Costs.ProfitMarginPercent = *m
	}
	return doc
}

// mergeRoles sums headcounts of roles sharing a case-insensitive title and
// drops roles that end up empty. First spelling wins.
func mergeRoles(in []extractedRole) []domain.Role {
	var roles []domain.Role
	index := map[string]int{}
	for _, r := range in {
		title := strings.TrimSpace(r.Title)
		n := int(math.Round(r.Headcount))
		if title == "" || n <= 0 {
			continue
		}
		key := domain.LabelKey(title)
		if i, ok := index[key]; ok {
			roles[i].Headcount += n
			continue
		}
		index[key] = len(roles)
		roles = append(roles, domain.Role{Title: title, Headcount: n, SalarySource: domain.SalarySourceManual})
	}
	return roles
}

// renumberTimeline orders entries by the month the model gave them and
// assigns 1..N.
func renumberTimeline(in []extractedMonth) []domain.TimelineEntry {
	entries := make([]extractedMonth, len(in))
	copy(entries, in)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Month < entries[j].Month })

	var out []domain.TimelineEntry
	for _, e := range entries {
		out = append(out, domain.TimelineEntry{
			Month:    len(out) + 1,
			Phase:    strings.TrimSpace(e.Phase),
			Activity: strings.TrimSpace(e.Activity),
		})
	}
	return out
}

func dedupeLabels(in []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, v := range in {
		v = strings.TrimSpace(v)
		key := domain.LabelKey(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
