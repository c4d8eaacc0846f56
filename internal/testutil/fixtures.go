package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/google/uuid"
)

// ProposalOption customizes a test proposal.
type ProposalOption func(*domain.Proposal)

func WithRoles(roles ...domain.Role) ProposalOption {
	return func(p *domain.Proposal) {
		p.Roles = append(p.Roles, roles...)
	}
}

func WithRole(title string, headcount int, salary float64) ProposalOption {
	return WithRoles(domain.Role{
		Title:         title,
		Headcount:     headcount,
		MonthlySalary: salary,
		SalarySource:  domain.SalarySourceManual,
	})
}

func WithCosts(capital, marginPct float64) ProposalOption {
	return func(p *domain.Proposal) {
		p.Costs = domain.CostDetails{TechnicalCapital: capital, ProfitMarginPercent: marginPct}
	}
}

// WithMonths replaces the timeline with n contiguous months.
func WithMonths(n int) ProposalOption {
	return func(p *domain.Proposal) {
		p.Timeline = nil
		for m := 1; m <= n; m++ {
			p.Timeline = append(p.Timeline, domain.TimelineEntry{
				Month:    m,
				Phase:    fmt.Sprintf("Phase %d", m),
				Activity: fmt.Sprintf("Activity %d", m),
			})
		}
	}
}

func WithTimeline(entries ...domain.TimelineEntry) ProposalOption {
	return func(p *domain.Proposal) {
		p.Timeline = entries
	}
}

func WithTechStack(techs ...string) ProposalOption {
	return func(p *domain.Proposal) {
		p.TechStack = techs
	}
}

func WithClient(company string, profile domain.ProfileType) ProposalOption {
	return func(p *domain.Proposal) {
		p.Client = domain.ClientProfile{RecipientName: "Bapak Budi", CompanyName: company, ProfileType: profile}
	}
}

// NewTestProposal returns an empty, valid proposal with the options applied.
func NewTestProposal(opts ...ProposalOption) domain.Proposal {
	p := domain.Proposal{
		ID:        uuid.New().String(),
		Summary:   "Test project",
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
