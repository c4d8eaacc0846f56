package command

import (
	"testing"

	"github.com/alexanderramin/proquote/internal/costing"
	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/alexanderramin/proquote/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 { return &v }

func TestSetCost_PartialUpdate(t *testing.T) {
	doc := testutil.NewTestProposal(testutil.WithCosts(5_000_000, 20))

	out, msg := Mutate(doc, SetCost{ProfitMarginPercent: float(25)})
	assert.Equal(t, 5_000_000.0, out.Costs.TechnicalCapital)
	assert.Equal(t, 25.0, out.Costs.ProfitMarginPercent)
	assert.Equal(t, "Set profit margin to 25%.", msg)

	out, msg = Mutate(doc, SetCost{TechnicalCapital: float(7_500_000), ProfitMarginPercent: float(10)})
	assert.Equal(t, 7_500_000.0, out.Costs.TechnicalCapital)
	assert.Equal(t, 10.0, out.Costs.ProfitMarginPercent)
	assert.Equal(t, "Set technical capital to 7500000 and profit margin to 10%.", msg)

	out, msg = Mutate(doc, SetCost{})
	assert.Equal(t, doc.Costs, out.Costs)
	assert.Empty(t, msg)
}

func TestSetCost_NegativeCapitalIgnored(t *testing.T) {
	doc := testutil.NewTestProposal(testutil.WithCosts(1_000, 5))
	out, msg := Mutate(doc, SetCost{TechnicalCapital: float(-1)})
	assert.Equal(t, 1_000.0, out.Costs.TechnicalCapital)
	assert.Empty(t, msg)
}

func TestSetTechStack(t *testing.T) {
	doc := testutil.NewTestProposal(testutil.WithTechStack("Go", "React"))

	out, msg := Mutate(doc, SetTechStack{Action: TechAdd, Technology: "GO"})
	assert.Equal(t, []string{"Go", "React"}, out.TechStack)
	assert.Equal(t, "GO is already in the tech stack.", msg)

	out, msg = Mutate(doc, SetTechStack{Action: TechAdd, Technology: "PostgreSQL"})
	assert.Equal(t, []string{"Go", "React", "PostgreSQL"}, out.TechStack)
	assert.Equal(t, "Added PostgreSQL to the tech stack.", msg)

	out, msg = Mutate(doc, SetTechStack{Action: TechRemove, Technology: "REACT"})
	assert.Equal(t, []string{"Go"}, out.TechStack)
	assert.Equal(t, "Removed REACT from the tech stack.", msg)
	assert.Equal(t, []string{"Go", "React"}, doc.TechStack)

	_, msg = Mutate(doc, SetTechStack{Action: TechRemove, Technology: "Vue"})
	assert.Equal(t, "Vue is not in the tech stack.", msg)
}

func TestApply_EmptyBatchReturnsInputUnchanged(t *testing.T) {
	doc := testutil.NewTestProposal(testutil.WithMonths(2))

	out, msg := Apply(doc, nil)

	assert.Equal(t, doc, out)
	assert.Equal(t, NoChangeMessage, msg)
}

func TestApply_JoinsFragmentsInOrder(t *testing.T) {
	doc := testutil.NewTestProposal(testutil.WithMonths(3), testutil.WithCosts(5_000_000, 20))

	out, msg := Apply(doc, []Command{
		SetRoleCount{Title: "Frontend Developer", Headcount: 2, Salary: &domain.SalarySuggestion{Source: "Estimasi AI", Salary: 8_000_000}},
		SetTechStack{Action: TechAdd, Technology: "Next.js"},
		SetRoleCount{Title: "Nobody", Headcount: 0},
		RemoveTimelineMonth{Month: 1},
	})

	assert.Equal(t,
		"Added 2×Frontend Developer. Added Next.js to the tech stack. Removed month 1; the timeline now runs 2 months.",
		msg)
	assert.Len(t, out.Roles, 1)
	assert.Equal(t, 2, out.ProjectDurationMonths())
}

func TestApply_LastWriteWins(t *testing.T) {
	doc := testutil.NewTestProposal(testutil.WithCosts(0, 10))

	out, _ := Apply(doc, []Command{
		SetCost{ProfitMarginPercent: float(30)},
		SetRoleCount{Title: "QA", Headcount: 2},
		SetRoleCount{Title: "qa", Headcount: 0},
		SetCost{ProfitMarginPercent: float(15)},
	})

	assert.Empty(t, out.Roles)
	assert.Equal(t, 15.0, out.Costs.ProfitMarginPercent)
}

func TestApply_OnlyNoopsReportsNoChange(t *testing.T) {
	doc := testutil.NewTestProposal()
	out, msg := Apply(doc, []Command{SetRoleCount{Title: "Ghost", Headcount: 0}, SetCost{}})
	assert.Equal(t, doc, out)
	assert.Equal(t, NoChangeMessage, msg)
}

func TestApply_KeepsPreviousSnapshotValid(t *testing.T) {
	doc := testutil.NewTestProposal(
		testutil.WithRole("Backend Developer", 2, 10_000_000),
		testutil.WithMonths(4),
	)
	before := costing.Compute(doc).DurationMonths

	out, _ := Apply(doc, []Command{RemoveTimelineMonth{Month: 4}, RemoveTimelineMonth{Month: 1}})

	assert.Equal(t, 4, before)
	assert.Equal(t, 4, doc.ProjectDurationMonths())
	assert.Equal(t, 2, out.ProjectDurationMonths())
}

func TestApply_EndToEndPricing(t *testing.T) {
	doc := testutil.NewTestProposal()

	out, _ := Apply(doc, []Command{
		AddTimelineMonths{Count: 3, Phase: "Build", Activity: "Development"},
		SetRoleCount{Title: "Frontend Developer", Headcount: 2},
		SetSalaryManually{Title: "Frontend Developer", Salary: 8_000_000},
		SetCost{TechnicalCapital: float(5_000_000), ProfitMarginPercent: float(20)},
	})

	require.NoError(t, out.Validate())
	assert.Equal(t, 63_600_000.0, costing.Compute(out).GrandTotal)
}

type rogueCommand struct{ SetCost }

func TestMutate_UnknownCommandPanics(t *testing.T) {
	assert.Panics(t, func() {
		Mutate(testutil.NewTestProposal(), rogueCommand{})
	})
}
