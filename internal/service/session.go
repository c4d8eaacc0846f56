package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/alexanderramin/proquote/internal/command"
	"github.com/alexanderramin/proquote/internal/costing"
	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/alexanderramin/proquote/internal/intelligence"
	"github.com/alexanderramin/proquote/internal/llm"
	"github.com/google/uuid"
)

var (
	// ErrNotRequirements is returned when extraction judges the input unusable.
	ErrNotRequirements = errors.New("input does not describe project requirements")
	ErrUnknownRole     = errors.New("no such role in the proposal")
	ErrNoSuggestions   = errors.New("no salary suggestions")
	ErrPickOutOfRange  = errors.New("salary suggestion pick out of range")
)

// Collaborators are the LLM-backed services a session may use. Any of them
// may be nil when LLM features are disabled; the matching use cases then
// fail with llm.ErrDisabled.
type Collaborators struct {
	Translator    intelligence.TranslatorService
	Oracle        intelligence.SalaryOracle
	Extractor     intelligence.ExtractionService
	TechSuggester intelligence.TechSuggestService
}

type Options struct {
	// SalarySuggestionIndex picks the oracle suggestion for new roles.
	SalarySuggestionIndex int
	Now                   func() time.Time
}

// ProposalSession owns the live proposal for one editor. It is not safe
// for concurrent use.
type ProposalSession struct {
	doc      domain.Proposal
	dirty    bool
	collab   Collaborators
	opts     Options
	observer UseCaseObserver
}

// EditResult reports the outcome of one batch of commands.
type EditResult struct {
	Message        string
	Changed        bool
	SalaryFallback []string // roles whose salary could not be resolved
	Quote          costing.Breakdown
}

// AskResult is the outcome of a natural-language instruction. Edit is nil
// unless the translation was ready and applied.
type AskResult struct {
	Translation *intelligence.Translation
	Edit        *EditResult
}

// Reply is the text to show the user for this result.
func (r *AskResult) Reply() string {
	t := r.Translation
	switch t.State {
	case intelligence.StateReady:
		return strings.TrimSpace(t.Reply + " " + r.Edit.Message)
	case intelligence.StateRejected:
		return fmt.Sprintf("I can't apply that: %s", t.Error.Message)
	default:
		return t.Reply
	}
}

// NewSession starts a session over an existing, valid proposal.
func NewSession(doc domain.Proposal, collab Collaborators, opts Options, observers ...UseCaseObserver) (*ProposalSession, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ProposalSession{
		doc:      doc.Clone(),
		collab:   collab,
		opts:     opts,
		observer: useCaseObserverOrNoop(observers),
	}, nil
}

// NewSessionFromInput drafts a proposal from a requirements document, then
// resolves a salary for every extracted role through the oracle.
func NewSessionFromInput(ctx context.Context, in intelligence.ExtractionInput, collab Collaborators, opts Options, observers ...UseCaseObserver) (s *ProposalSession, err error) {
	if collab.Extractor == nil {
		return nil, llm.ErrDisabled
	}

	s, err = NewSession(domain.Proposal{}, collab, opts, observers...)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{"profile": string(in.ClientProfile.ProfileType)}
	defer s.track(ctx, "analyze", fields)(&err)

	var ext *intelligence.Extraction
	ext, err = collab.Extractor.Extract(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("extracting requirements: %w", err)
	}
	if !ext.Valid {
		err = fmt.Errorf("%w: %s", ErrNotRequirements, ext.Reason)
		return nil, err
	}

	doc := ext.Proposal.Clone()
	doc.ID = uuid.New().String()
	doc.CreatedAt = s.opts.Now().UTC()
	s.doc = doc
	s.dirty = true

	var cmds []command.Command
	var fallbacks []string
	for _, r := range doc.Roles {
		sg, ok := s.resolveSalary(ctx, r.Title)
		if !ok {
			fallbacks = append(fallbacks, r.Title)
			continue
		}
		cmds = append(cmds, command.AcceptSalarySuggestion{Title: r.Title, Suggestion: sg})
	}
	if len(cmds) > 0 {
		s.doc, _ = command.Apply(s.doc, cmds)
	}

	fields["roles"] = len(doc.Roles)
	fields["months"] = doc.ProjectDurationMonths()
	fields["salary_fallbacks"] = len(fallbacks)
	return s, nil
}

// Document returns a copy of the current proposal.
func (s *ProposalSession) Document() domain.Proposal { return s.doc.Clone() }

// Quote prices the current proposal.
func (s *ProposalSession) Quote() costing.Breakdown { return costing.Compute(s.doc) }

// Changed reports whether the proposal differs from what the session was
// started or last reset with.
func (s *ProposalSession) Changed() bool { return s.dirty }

// MarkSaved clears the changed flag once the caller has written the proposal.
func (s *ProposalSession) MarkSaved() { s.dirty = false }

// Reset replaces the live proposal, for "start over" or loading a file.
func (s *ProposalSession) Reset(doc domain.Proposal) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	s.doc = doc.Clone()
	s.dirty = false
	return nil
}

// Apply resolves salaries for roles the batch adds, then dispatches the
// commands. Oracle failures fall back to a zero "Manual" salary and are
// reported, never fatal.
func (s *ProposalSession) Apply(ctx context.Context, cmds ...command.Command) (res *EditResult, err error) {
	fields := map[string]any{"commands": len(cmds)}
	defer s.track(ctx, "apply", fields)(&err)

	resolved, fallbacks := s.withSalaries(ctx, cmds)
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	before := s.doc
	after, msg := command.Apply(s.doc, resolved)
	changed := !reflect.DeepEqual(before, after)
	s.doc = after
	s.dirty = s.dirty || changed

	fields["changed"] = changed
	if len(fallbacks) > 0 {
		fields["salary_fallbacks"] = strings.Join(fallbacks, ",")
	}
	return &EditResult{
		Message:        msg,
		Changed:        changed,
		SalaryFallback: fallbacks,
		Quote:          costing.Compute(after),
	}, nil
}

// Interpret translates an instruction without applying it.
func (s *ProposalSession) Interpret(ctx context.Context, text string) (t *intelligence.Translation, err error) {
	if s.collab.Translator == nil {
		return nil, llm.ErrDisabled
	}
	fields := map[string]any{}
	defer s.track(ctx, "interpret", fields)(&err)

	t, err = s.collab.Translator.Translate(ctx, text, s.Document())
	if err != nil {
		return nil, err
	}
	fields["state"] = string(t.State)
	fields["commands"] = len(t.Commands)
	return t, nil
}

// Ask translates an instruction and applies it when it is ready.
// Clarifications and rejections leave the proposal untouched.
func (s *ProposalSession) Ask(ctx context.Context, text string) (*AskResult, error) {
	t, err := s.Interpret(ctx, text)
	if err != nil {
		return nil, err
	}
	res := &AskResult{Translation: t}
	if t.State != intelligence.StateReady {
		return res, nil
	}
	res.Edit, err = s.Apply(ctx, t.Commands...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SalarySuggestions lists oracle candidates for a role title.
func (s *ProposalSession) SalarySuggestions(ctx context.Context, title string) (out []domain.SalarySuggestion, err error) {
	if s.collab.Oracle == nil {
		return nil, llm.ErrDisabled
	}
	defer s.track(ctx, "salary-suggestions", map[string]any{"title": title})(&err)
	return s.collab.Oracle.Suggest(ctx, title)
}

// AcceptSalary asks the oracle about an existing role and applies one
// suggestion, recording its source. A nil pick uses the configured index,
// clamped to the list; an explicit pick must be in range.
func (s *ProposalSession) AcceptSalary(ctx context.Context, title string, pick *int) (*EditResult, []domain.SalarySuggestion, error) {
	i := s.doc.FindRole(title)
	if i < 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownRole, strings.TrimSpace(title))
	}
	title = s.doc.Roles[i].Title
	list, err := s.SalarySuggestions(ctx, title)
	if err != nil {
		return nil, nil, err
	}
	if len(list) == 0 {
		return nil, list, fmt.Errorf("%w for %q", ErrNoSuggestions, title)
	}

	idx := s.opts.SalarySuggestionIndex
	if pick != nil {
		if *pick < 0 || *pick >= len(list) {
			return nil, list, fmt.Errorf("%w: %d (0-%d)", ErrPickOutOfRange, *pick, len(list)-1)
		}
		idx = *pick
	}
	res, err := s.Apply(ctx, command.AcceptSalarySuggestion{
		Title:      title,
		Suggestion: intelligence.PickSuggestion(list, idx),
	})
	if err != nil {
		return nil, list, err
	}
	return res, list, nil
}

// SuggestTechnologies asks for technologies fitting the proposal's
// summary and features.
func (s *ProposalSession) SuggestTechnologies(ctx context.Context) (out *intelligence.TechSuggestion, err error) {
	if s.collab.TechSuggester == nil {
		return nil, llm.ErrDisabled
	}
	defer s.track(ctx, "suggest-technologies", map[string]any{})(&err)
	return s.collab.TechSuggester.Suggest(ctx, requirementsText(s.doc))
}

// TechCommands builds the commands adding each technology to the stack.
func TechCommands(techs []string) []command.Command {
	cmds := make([]command.Command, 0, len(techs))
	for _, t := range techs {
		cmds = append(cmds, command.SetTechStack{Action: command.TechAdd, Technology: t})
	}
	return cmds
}

// withSalaries fills in Salary for SetRoleCount commands that will add a
// role. Roles already present, or added earlier in the batch, keep theirs.
func (s *ProposalSession) withSalaries(ctx context.Context, cmds []command.Command) ([]command.Command, []string) {
	out := make([]command.Command, len(cmds))
	copy(out, cmds)

	present := map[string]bool{}
	for _, r := range s.doc.Roles {
		present[domain.LabelKey(r.Title)] = true
	}

	var fallbacks []string
	for i, c := range out {
		src, ok := c.(command.SetRoleCount)
		if !ok {
			continue
		}
		key := domain.LabelKey(src.Title)
		if src.Headcount <= 0 {
			delete(present, key)
			continue
		}
		if present[key] || src.Salary != nil {
			present[key] = true
			continue
		}
		present[key] = true

		sg, found := s.resolveSalary(ctx, src.Title)
		if !found {
			fallbacks = append(fallbacks, src.Title)
			continue
		}
		src.Salary = &sg
		out[i] = src
	}
	return out, fallbacks
}

// resolveSalary picks the configured oracle suggestion. ok is false when
// no oracle is configured, the call fails or it returns nothing.
func (s *ProposalSession) resolveSalary(ctx context.Context, title string) (domain.SalarySuggestion, bool) {
	if s.collab.Oracle == nil {
		return domain.SalarySuggestion{}, false
	}
	suggestions, err := s.collab.Oracle.Suggest(ctx, title)
	if err != nil || len(suggestions) == 0 {
		return domain.SalarySuggestion{}, false
	}
	return intelligence.PickSuggestion(suggestions, s.opts.SalarySuggestionIndex), true
}

func (s *ProposalSession) now() time.Time { return s.opts.Now() }

func requirementsText(doc domain.Proposal) string {
	var b strings.Builder
	b.WriteString(doc.Summary)
	if len(doc.RequiredFeatures) > 0 {
		b.WriteString("\n\nFeatures:\n")
		for _, f := range doc.RequiredFeatures {
			b.WriteString("- " + f + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}
