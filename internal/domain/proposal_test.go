package domain

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProposal() Proposal {
	return Proposal{
		ID:      "p-1",
		Summary: "Inventory portal",
		Roles: []Role{
			{Title: "Frontend Developer", Headcount: 2, MonthlySalary: 8_000_000, SalarySource: "Glassdoor"},
			{Title: "Project Manager", Headcount: 1, MonthlySalary: 15_000_000, SalarySource: SalarySourceManual},
		},
		Costs: CostDetails{TechnicalCapital: 5_000_000, ProfitMarginPercent: 20},
		Timeline: []TimelineEntry{
			{Month: 1, Phase: "Discovery", Activity: "Requirements"},
			{Month: 2, Phase: "Build", Activity: "Features"},
		},
		TechStack: []string{"Go", "React"},
	}
}

func TestProposal_ProjectDurationMonths(t *testing.T) {
	p := validProposal()
	assert.Equal(t, 2, p.ProjectDurationMonths())

	p.Timeline = nil
	assert.Equal(t, 0, p.ProjectDurationMonths())
}

func TestProposal_FindRole_CaseInsensitive(t *testing.T) {
	p := validProposal()
	assert.Equal(t, 0, p.FindRole("frontend developer"))
	assert.Equal(t, 1, p.FindRole("  PROJECT MANAGER "))
	assert.Equal(t, -1, p.FindRole("QA Engineer"))
}

func TestProposal_FindRole_UnicodeFolding(t *testing.T) {
	p := validProposal()
	p.Roles[0].Title = "ſenior Dev"
	assert.Equal(t, 0, p.FindRole("senior dev"))
	assert.Equal(t, 0, p.FindRole("SENIOR DEV"))
}

func TestLabelKey_AgreesWithEqualFold(t *testing.T) {
	pairs := [][2]string{
		{"Senior Dev", "ſenior Dev"},
		{"Kelvin", "\u212Aelvin"},
		{"QA", "qa"},
		{" Go ", "go"},
		{"Go", "Golang"},
		{"straße", "STRASSE"},
		{"Σίσυφος", "ΣΊΣΥΦΟΣ"},
		{"", "  "},
	}
	for _, pr := range pairs {
		a, b := pr[0], pr[1]
		want := strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
		assert.Equal(t, want, LabelKey(a) == LabelKey(b), "%q vs %q", a, b)
		assert.Equal(t, want, SameLabel(a, b), "%q vs %q", a, b)
	}
}

func TestProposalDetails_Defaults(t *testing.T) {
	var d ProposalDetails
	assert.Equal(t, FontDancingScript, d.Font())
	assert.False(t, d.HasPaymentAccount())

	d = ProposalDetails{SignatureFont: FontPacifico, PaymentBank: "BCA"}
	assert.Equal(t, FontPacifico, d.Font())
	assert.True(t, d.HasPaymentAccount())
}

func TestProposal_HasTechnology(t *testing.T) {
	p := validProposal()
	assert.True(t, p.HasTechnology("react"))
	assert.False(t, p.HasTechnology("Vue"))
}

func TestProposal_CloneIsDeep(t *testing.T) {
	p := validProposal()
	c := p.Clone()

	c.Roles[0].Headcount = 9
	c.Timeline[0].Phase = "Changed"
	c.TechStack[0] = "Rust"

	assert.Equal(t, 2, p.Roles[0].Headcount)
	assert.Equal(t, "Discovery", p.Timeline[0].Phase)
	assert.Equal(t, "Go", p.TechStack[0])
}

func TestProposal_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Proposal)
		wantErr error
	}{
		{name: "valid", mutate: func(p *Proposal) {}},
		{name: "empty document", mutate: func(p *Proposal) { *p = Proposal{} }},
		{
			name:    "duplicate role ignoring case",
			mutate:  func(p *Proposal) { p.Roles[1].Title = "FRONTEND developer" },
			wantErr: ErrDuplicateRole,
		},
		{
			name:    "zero headcount",
			mutate:  func(p *Proposal) { p.Roles[0].Headcount = 0 },
			wantErr: ErrInvalidHeadcount,
		},
		{
			name:    "blank title",
			mutate:  func(p *Proposal) { p.Roles[0].Title = "  " },
			wantErr: ErrEmptyRoleTitle,
		},
		{
			name:    "negative salary",
			mutate:  func(p *Proposal) { p.Roles[0].MonthlySalary = -1 },
			wantErr: ErrInvalidSalary,
		},
		{
			name:    "negative capital",
			mutate:  func(p *Proposal) { p.Costs.TechnicalCapital = -10 },
			wantErr: ErrInvalidCapital,
		},
		{
			name:    "nan margin",
			mutate:  func(p *Proposal) { p.Costs.ProfitMarginPercent = math.NaN() },
			wantErr: ErrInvalidMargin,
		},
		{
			name:    "timeline gap",
			mutate:  func(p *Proposal) { p.Timeline[1].Month = 3 },
			wantErr: ErrTimelineNotOrdered,
		},
		{
			name: "duplicate role under unicode case folding",
			mutate: func(p *Proposal) {
				p.Roles[0].Title = "Senior Dev"
				p.Roles[1].Title = "ſenior Dev"
			},
			wantErr: ErrDuplicateRole,
		},
		{
			name:    "duplicate technology ignoring case",
			mutate:  func(p *Proposal) { p.TechStack = []string{"Go", " go "} },
			wantErr: ErrDuplicateTech,
		},
		{
			name:    "blank technology",
			mutate:  func(p *Proposal) { p.TechStack = append(p.TechStack, " ") },
			wantErr: ErrEmptyTech,
		},
		{
			name:    "unknown signature font",
			mutate:  func(p *Proposal) { p.Details.SignatureFont = "comic-sans" },
			wantErr: ErrUnknownFont,
		},
		{
			name:   "known signature font",
			mutate: func(p *Proposal) { p.Details.SignatureFont = FontGreatVibes },
		},
		{
			name: "timeline out of order",
			mutate: func(p *Proposal) {
				p.Timeline[0].Month, p.Timeline[1].Month = 2, 1
			},
			wantErr: ErrTimelineNotOrdered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProposal()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMustValidate_PanicsOnViolation(t *testing.T) {
	p := validProposal()
	p.Timeline[0].Month = 5
	assert.Panics(t, func() { MustValidate(&p) })

	ok := validProposal()
	assert.NotPanics(t, func() { MustValidate(&ok) })
}

func TestClientProfile_Label(t *testing.T) {
	assert.Equal(t, "PT. Jaya Abadi (startup)", ClientProfile{CompanyName: "PT. Jaya Abadi", ProfileType: ProfileStartup}.Label())
	assert.Equal(t, "Bapak Budi (other)", ClientProfile{RecipientName: "Bapak Budi"}.Label())
	assert.Equal(t, "government", ClientProfile{ProfileType: ProfileGovernment}.Label())
}

func TestCoalesceHelpers(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	v := 3.5
	assert.Equal(t, 3.5, Float64FromPtrWithDefault(1, nil, &v))
	assert.Equal(t, 1.0, Float64FromPtrWithDefault(1))
	s := "x"
	assert.Equal(t, "x", StrFromPtrWithDefault("d", &s))
	assert.Equal(t, "d", StrFromPtrWithDefault("d", nil))
}
