package command

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/proquote/internal/domain"
)

func applySetRoleCount(doc domain.Proposal, c SetRoleCount) (domain.Proposal, string) {
	title := strings.TrimSpace(c.Title)
	out := doc.Clone()
	idx := out.FindRole(title)

	switch {
	case idx >= 0 && c.Headcount <= 0:
		removed := out.Roles[idx].Title
		out.Roles = append(out.Roles[:idx], out.Roles[idx+1:]...)
		return out, fmt.Sprintf("Removed role %s.", removed)

	case idx >= 0:
		out.Roles[idx].Headcount = c.Headcount
		return out, fmt.Sprintf("Updated role to %d×%s.", c.Headcount, out.Roles[idx].Title)

	case c.Headcount > 0 && title != "":
		role := domain.Role{
			Title:        title,
			Headcount:    c.Headcount,
			SalarySource: domain.SalarySourceManual,
		}
		if c.Salary != nil && domain.ValidAmount(c.Salary.Salary) {
			role.MonthlySalary = c.Salary.Salary
			role.SalarySource = domain.CoalesceStr(c.Salary.Source, domain.SalarySourceManual)
		}
		out.Roles = append(out.Roles, role)
		return out, fmt.Sprintf("Added %d×%s.", c.Headcount, title)

	default:
		return doc, ""
	}
}

func applyAcceptSalarySuggestion(doc domain.Proposal, c AcceptSalarySuggestion) (domain.Proposal, string) {
	out := doc.Clone()
	idx := out.FindRole(c.Title)
	if idx < 0 {
		return doc, fmt.Sprintf("No role %s to update.", strings.TrimSpace(c.Title))
	}
	if !domain.ValidAmount(c.Suggestion.Salary) {
		return doc, ""
	}
	out.Roles[idx].MonthlySalary = c.Suggestion.Salary
	out.Roles[idx].SalarySource = domain.CoalesceStr(c.Suggestion.Source, domain.SalarySourceManual)
	return out, fmt.Sprintf("Set %s salary to %s from %s.",
		out.Roles[idx].Title, formatAmount(c.Suggestion.Salary), out.Roles[idx].SalarySource)
}

func applySetSalaryManually(doc domain.Proposal, c SetSalaryManually) (domain.Proposal, string) {
	out := doc.Clone()
	idx := out.FindRole(c.Title)
	if idx < 0 {
		return doc, fmt.Sprintf("No role %s to update.", strings.TrimSpace(c.Title))
	}
	if !domain.ValidAmount(c.Salary) {
		return doc, ""
	}
	out.Roles[idx].MonthlySalary = c.Salary
	out.Roles[idx].SalarySource = domain.SalarySourceManual
	return out, fmt.Sprintf("Set %s salary to %s.", out.Roles[idx].Title, formatAmount(c.Salary))
}
