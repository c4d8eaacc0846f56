package command

import (
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/proquote/internal/domain"
)

func applySetCost(doc domain.Proposal, c SetCost) (domain.Proposal, string) {
	out := doc.Clone()
	var changes []string

	if c.TechnicalCapital != nil && domain.ValidAmount(*c.TechnicalCapital) {
		out.Costs.TechnicalCapital = *c.TechnicalCapital
		changes = append(changes, "technical capital to "+formatAmount(*c.TechnicalCapital))
	}
	if c.ProfitMarginPercent != nil && !math.IsNaN(*c.ProfitMarginPercent) && !math.IsInf(*c.ProfitMarginPercent, 0) {
		out.Costs.ProfitMarginPercent = *c.ProfitMarginPercent
		changes = append(changes, "profit margin to "+formatAmount(*c.ProfitMarginPercent)+"%")
	}

	if len(changes) == 0 {
		return doc, ""
	}
	return out, "Set " + strings.Join(changes, " and ") + "."
}

// formatAmount prints a number without rounding or exponent notation.
// Display formatting with separators belongs to the presentation layer.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
