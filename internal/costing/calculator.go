// Package costing derives every monetary figure of a proposal from the
// document alone. Nothing here is stored; callers recompute on demand.
package costing

import "github.com/alexanderramin/proquote/internal/domain"

// Payment split across project milestones. Fixed by contract terms.
const (
	DownPaymentRatio = 0.50
	ProgressRatio    = 0.30
	CompletionRatio  = 0.20
)

type Tranches struct {
	DownPayment float64 `json:"down_payment"`
	Progress    float64 `json:"progress"`
	Completion  float64 `json:"completion"`
}

// RoleCost is one role's share of the manpower cost.
type RoleCost struct {
	Title         string  `json:"title"`
	Headcount     int     `json:"headcount"`
	MonthlySalary float64 `json:"monthly_salary"`
	SalarySource  string  `json:"salary_source"`
	Total         float64 `json:"total"`
}

type Breakdown struct {
	DurationMonths   int        `json:"duration_months"`
	TechnicalCapital float64    `json:"technical_capital"`
	ManpowerCost     float64    `json:"manpower_cost"`
	Subtotal         float64    `json:"subtotal"`
	ProfitMargin     float64    `json:"profit_margin_percent"`
	ProfitAmount     float64    `json:"profit_amount"`
	GrandTotal       float64    `json:"grand_total"`
	Tranches         Tranches   `json:"tranches"`
	Lines            []RoleCost `json:"lines"`
}

// Compute prices the proposal. Empty roles, an empty timeline or a zero
// margin all produce zero terms rather than errors.
func Compute(p domain.Proposal) Breakdown {
	duration := p.ProjectDurationMonths()

	lines := make([]RoleCost, 0, len(p.Roles))
	var manpower float64
	for _, r := range p.Roles {
		total := float64(r.Headcount) * r.MonthlySalary * float64(duration)
		manpower += total
		lines = append(lines, RoleCost{
			Title:         r.Title,
			Headcount:     r.Headcount,
			MonthlySalary: r.MonthlySalary,
			SalarySource:  r.SalarySource,
			Total:         total,
		})
	}

	subtotal := p.Costs.TechnicalCapital + manpower
	profit := subtotal * p.Costs.ProfitMarginPercent / 100
	grand := subtotal + profit

	return Breakdown{
		DurationMonths:   duration,
		TechnicalCapital: p.Costs.TechnicalCapital,
		ManpowerCost:     manpower,
		Subtotal:         subtotal,
		ProfitMargin:     p.Costs.ProfitMarginPercent,
		ProfitAmount:     profit,
		GrandTotal:       grand,
		Tranches:         SplitTranches(grand),
		Lines:            lines,
	}
}

// SplitTranches divides a total into the down payment, progress and
// completion installments.
func SplitTranches(total float64) Tranches {
	return Tranches{
		DownPayment: total * DownPaymentRatio,
		Progress:    total * ProgressRatio,
		Completion:  total * CompletionRatio,
	}
}
