package costing

import (
	"testing"

	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/alexanderramin/proquote/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_FrontendExample(t *testing.T) {
	p := testutil.NewTestProposal(
		testutil.WithRoles(domain.Role{Title: "Frontend Developer", Headcount: 2, MonthlySalary: 8_000_000, SalarySource: "Estimasi AI"}),
		testutil.WithMonths(3),
		testutil.WithCosts(5_000_000, 20),
	)

	b := Compute(p)

	assert.Equal(t, 3, b.DurationMonths)
	assert.Equal(t, 48_000_000.0, b.ManpowerCost)
	assert.Equal(t, 53_000_000.0, b.Subtotal)
	assert.Equal(t, 10_600_000.0, b.ProfitAmount)
	assert.Equal(t, 63_600_000.0, b.GrandTotal)
	assert.InDelta(t, 31_800_000.0, b.Tranches.DownPayment, 1e-6)
	assert.InDelta(t, 19_080_000.0, b.Tranches.Progress, 1e-6)
	assert.InDelta(t, 12_720_000.0, b.Tranches.Completion, 1e-6)

	require.Len(t, b.Lines, 1)
	assert.Equal(t, 48_000_000.0, b.Lines[0].Total)
	assert.Equal(t, "Estimasi AI", b.Lines[0].SalarySource)
}

func TestCompute_EmptyRolesAndTimeline(t *testing.T) {
	p := testutil.NewTestProposal(testutil.WithCosts(1_000_000, 0))

	b := Compute(p)

	assert.Equal(t, 0, b.DurationMonths)
	assert.Zero(t, b.ManpowerCost)
	assert.Equal(t, 1_000_000.0, b.Subtotal)
	assert.Zero(t, b.ProfitAmount)
	assert.Equal(t, 1_000_000.0, b.GrandTotal)
	assert.Empty(t, b.Lines)
}

func TestCompute_ZeroDurationMeansNoManpower(t *testing.T) {
	p := testutil.NewTestProposal(
		testutil.WithRoles(domain.Role{Title: "Backend Developer", Headcount: 3, MonthlySalary: 12_000_000}),
		testutil.WithCosts(0, 15),
	)

	b := Compute(p)

	assert.Zero(t, b.ManpowerCost)
	assert.Zero(t, b.GrandTotal)
}

func TestCompute_TotalsHaveNoHiddenTerms(t *testing.T) {
	cases := []domain.Proposal{
		testutil.NewTestProposal(),
		testutil.NewTestProposal(testutil.WithMonths(4), testutil.WithCosts(2_500_000, 12.5)),
		testutil.NewTestProposal(
			testutil.WithRoles(
				domain.Role{Title: "QA", Headcount: 1, MonthlySalary: 6_500_000},
				domain.Role{Title: "Designer", Headcount: 2, MonthlySalary: 9_250_000},
			),
			testutil.WithMonths(7),
			testutil.WithCosts(3_000_000, 33),
		),
	}

	for _, p := range cases {
		b := Compute(p)
		assert.Equal(t, b.Subtotal+b.ProfitAmount, b.GrandTotal)
		assert.Equal(t, p.Costs.TechnicalCapital+b.ManpowerCost, b.Subtotal)
	}
}

func TestCompute_ManpowerScalesLinearlyWithDuration(t *testing.T) {
	roles := testutil.WithRoles(
		domain.Role{Title: "Frontend Developer", Headcount: 2, MonthlySalary: 8_000_000},
		domain.Role{Title: "Project Manager", Headcount: 1, MonthlySalary: 14_000_000},
	)
	perMonth := Compute(testutil.NewTestProposal(roles, testutil.WithMonths(1))).ManpowerCost
	require.Equal(t, 30_000_000.0, perMonth)

	for months := 0; months <= 6; months++ {
		b := Compute(testutil.NewTestProposal(roles, testutil.WithMonths(months)))
		assert.Equal(t, perMonth*float64(months), b.ManpowerCost, "months=%d", months)
	}
}

func TestSplitTranches_SumsToTotal(t *testing.T) {
	tr := SplitTranches(1_000_000)
	assert.Equal(t, 500_000.0, tr.DownPayment)
	assert.InDelta(t, 1_000_000.0, tr.DownPayment+tr.Progress+tr.Completion, 1e-6)
}
