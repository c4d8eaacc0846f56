package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDuplicateRole      = errors.New("duplicate role title")
	ErrInvalidHeadcount   = errors.New("role headcount must be positive")
	ErrInvalidSalary      = errors.New("monthly salary must be a non-negative number")
	ErrEmptyRoleTitle     = errors.New("role title is required")
	ErrInvalidCapital     = errors.New("technical capital must be a non-negative number")
	ErrInvalidMargin      = errors.New("profit margin must be a finite number")
	ErrTimelineNotOrdered = errors.New("timeline months must run 1..N without gaps")
	ErrDuplicateTech      = errors.New("duplicate technology")
	ErrEmptyTech          = errors.New("technology name is required")
	ErrUnknownFont        = errors.New("unknown signature font")
)

// Validate checks every structural invariant of the proposal and returns the
// first violation found.
func (p *Proposal) Validate() error {
	seen := make(map[string]bool, len(p.Roles))
	for _, r := range p.Roles {
		key := LabelKey(r.Title)
		if key == "" {
			return ErrEmptyRoleTitle
		}
		if seen[key] {
			return fmt.Errorf("%w: %q", ErrDuplicateRole, r.Title)
		}
		seen[key] = true
		if r.Headcount <= 0 {
			return fmt.Errorf("%w: %q has %d", ErrInvalidHeadcount, r.Title, r.Headcount)
		}
		if !ValidAmount(r.MonthlySalary) {
			return fmt.Errorf("%w: %q", ErrInvalidSalary, r.Title)
		}
	}

	if !ValidAmount(p.Costs.TechnicalCapital) {
		return ErrInvalidCapital
	}
	if math.IsNaN(p.Costs.ProfitMarginPercent) || math.IsInf(p.Costs.ProfitMarginPercent, 0) {
		return ErrInvalidMargin
	}

	for i, e := range p.Timeline {
		if e.Month != i+1 {
			return fmt.Errorf("%w: entry %d has month %d", ErrTimelineNotOrdered, i, e.Month)
		}
	}

	techs := make(map[string]bool, len(p.TechStack))
	for _, t := range p.TechStack {
		key := LabelKey(t)
		if key == "" {
			return ErrEmptyTech
		}
		if techs[key] {
			return fmt.Errorf("%w: %q", ErrDuplicateTech, t)
		}
		techs[key] = true
	}

	if f := p.Details.SignatureFont; f != "" && !ValidSignatureFonts[f] {
		return fmt.Errorf("%w: %q", ErrUnknownFont, f)
	}
	return nil
}

// MustValidate panics when the proposal breaks an invariant. Mutators are
// the only writers, so a violation here is a bug, not bad input.
func MustValidate(p *Proposal) {
	if err := p.Validate(); err != nil {
		panic(fmt.Sprintf("proposal invariant violated: %v", err))
	}
}

// ValidAmount reports whether v is a finite, non-negative money amount.
func ValidAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
