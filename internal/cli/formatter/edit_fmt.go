package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/proquote/internal/command"
	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/alexanderramin/proquote/internal/intelligence"
	"github.com/alexanderramin/proquote/internal/service"
)

// DescribeCommand renders one command as a short human-readable line.
func DescribeCommand(c command.Command) string {
	switch c := c.(type) {
	case command.SetRoleCount:
		if c.Headcount <= 0 {
			return fmt.Sprintf("remove role %s", c.Title)
		}
		return fmt.Sprintf("set %s to %d", c.Title, c.Headcount)
	case command.SetCost:
		var parts []string
		if c.TechnicalCapital != nil {
			parts = append(parts, "technical capital "+Rupiah(*c.TechnicalCapital))
		}
		if c.ProfitMarginPercent != nil {
			parts = append(parts, "profit margin "+Percent(*c.ProfitMarginPercent))
		}
		return "set " + strings.Join(parts, " and ")
	case command.AddTimelineMonths:
		label := strings.TrimSpace(c.Phase)
		if label == "" {
			return fmt.Sprintf("add %s", Months(c.Count))
		}
		return fmt.Sprintf("add %s for %s", Months(c.Count), label)
	case command.RemoveTimelineMonth:
		return fmt.Sprintf("remove month %d", c.Month)
	case command.UpdateTimelineMonth:
		var parts []string
		if c.Phase != nil {
			parts = append(parts, fmt.Sprintf("phase %q", *c.Phase))
		}
		if c.Activity != nil {
			parts = append(parts, fmt.Sprintf("activity %q", *c.Activity))
		}
		return fmt.Sprintf("update month %d: %s", c.Month, strings.Join(parts, ", "))
	case command.SetTechStack:
		return fmt.Sprintf("%s %s", c.Action, c.Technology)
	case command.AcceptSalarySuggestion:
		return fmt.Sprintf("set %s salary to %s (%s)", c.Title, Rupiah(c.Suggestion.Salary), c.Suggestion.Source)
	case command.SetSalaryManually:
		return fmt.Sprintf("set %s salary to %s", c.Title, Rupiah(c.Salary))
	default:
		return string(c.Kind())
	}
}

// FormatTranslation previews what an instruction will do before it is
// confirmed.
func FormatTranslation(t *intelligence.Translation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StateIndicator(t.State), Dim(fmt.Sprintf("confidence %.0f%%", t.Confidence*100)))
	switch t.State {
	case intelligence.StateReady:
		for _, c := range t.Commands {
			fmt.Fprintf(&b, "  • %s\n", DescribeCommand(c))
		}
		if t.Reply != "" {
			b.WriteString(Dim(t.Reply) + "\n")
		}
	case intelligence.StateRejected:
		if t.Error != nil {
			b.WriteString(StyleRed.Render(t.Error.Message) + "\n")
		}
	default:
		b.WriteString(StyleYellow.Render(t.Reply) + "\n")
	}
	return b.String()
}

// FormatEdit reports an applied batch: the dispatcher's confirmation, any
// roles that fell back to a manual salary and the new grand total.
func FormatEdit(res *service.EditResult) string {
	var b strings.Builder
	style := StyleGreen
	if !res.Changed {
		style = StyleDim
	}
	b.WriteString(style.Render(res.Message))
	b.WriteString("\n")
	if len(res.SalaryFallback) > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf(
			"No salary suggestion for %s; set one with --salary.", strings.Join(res.SalaryFallback, ", "))))
		b.WriteString("\n")
	}
	b.WriteString(FormatGrandTotal(res.Quote))
	b.WriteString("\n")
	return b.String()
}

func FormatTechSuggestion(s *intelligence.TechSuggestion, current []string) string {
	var b strings.Builder
	b.WriteString(Header("Suggested Technologies"))
	b.WriteString("\n")
	have := make(map[string]bool, len(current))
	for _, c := range current {
		have[domain.LabelKey(c)] = true
	}
	for _, t := range s.Technologies {
		if have[domain.LabelKey(t)] {
			fmt.Fprintf(&b, "  • %s %s\n", t, Dim("(already in stack)"))
			continue
		}
		fmt.Fprintf(&b, "  • %s\n", StyleGreen.Render(t))
	}
	if s.Reasoning != "" {
		b.WriteString("\n" + Dim(s.Reasoning) + "\n")
	}
	return b.String()
}
