package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/proquote/internal/costing"
	"github.com/alexanderramin/proquote/internal/domain"
)

// FormatProposal renders the whole proposal: the letter header, scope,
// timeline, technology, the priced quote and the signature.
func FormatProposal(doc domain.Proposal) string {
	var b strings.Builder

	b.WriteString(Header("Proposal"))
	b.WriteString("\n")
	if doc.Details.Subject != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Subject:"), doc.Details.Subject)
	}
	if doc.Details.From != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("From:"), doc.Details.From)
	}
	if doc.Client.CompanyName != "" || doc.Client.RecipientName != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Client:"), orDash(doc.Client.Label()))
	}
	if doc.ID != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("ID:"), doc.ID)
	}
	if !doc.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "%s %s\n", Dim("Created:"), doc.CreatedAt.Format("2006-01-02"))
	}
	if doc.Summary != "" {
		b.WriteString("\n")
		b.WriteString(doc.Summary)
		b.WriteString("\n")
	}

	if len(doc.RequiredFeatures) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Features"))
		b.WriteString("\n")
		for _, f := range doc.RequiredFeatures {
			fmt.Fprintf(&b, "  • %s\n", f)
		}
	}

	b.WriteString("\n")
	b.WriteString(Header("Timeline"))
	b.WriteString("\n")
	b.WriteString(FormatTimeline(doc.Timeline))

	b.WriteString("\n")
	b.WriteString(Header("Tech Stack"))
	b.WriteString("\n")
	if len(doc.TechStack) == 0 {
		b.WriteString(Dim("  (none)") + "\n")
	} else {
		b.WriteString("  " + strings.Join(doc.TechStack, ", ") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(FormatQuote(costing.Compute(doc)))
	b.WriteString(FormatPaymentAccount(doc.Details))
	b.WriteString(FormatSignature(doc.Details))
	return b.String()
}

// FormatPaymentAccount renders the bank block printed under the payment
// scheme, or nothing when no bank is set.
func FormatPaymentAccount(d domain.ProposalDetails) string {
	if !d.HasPaymentAccount() {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n", Bold("Payment account"))
	fmt.Fprintf(&b, "  %s %s\n", Dim("Bank:"), d.PaymentBank)
	fmt.Fprintf(&b, "  %s %s\n", Dim("Account number:"), orDash(d.PaymentAccountNumber))
	fmt.Fprintf(&b, "  %s %s\n", Dim("Account name:"), orDash(d.PaymentAccountName))
	return b.String()
}

// FormatSignature renders the closing block. Without a signer nothing is
// printed.
func FormatSignature(d domain.ProposalDetails) string {
	if d.SignatureName == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(Header("Signature"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", StyleSignature.Render(d.SignatureName), Dim("("+string(d.Font())+")"))
	fmt.Fprintf(&b, "  %s\n", Bold(d.SignatureName))
	if d.From != "" {
		fmt.Fprintf(&b, "  %s\n", Dim(d.From))
	}
	return b.String()
}

func FormatTimeline(entries []domain.TimelineEntry) string {
	if len(entries) == 0 {
		return Dim("  (empty)") + "\n"
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{strconv.Itoa(e.Month), orDash(e.Phase), orDash(e.Activity)})
	}
	return Table{Headers: []string{"MONTH", "PHASE", "ACTIVITY"}, Rows: rows, Right: []int{0}}.Render()
}

// FormatQuote renders the manpower lines, cost components and payment
// scheme of a breakdown.
func FormatQuote(q costing.Breakdown) string {
	var b strings.Builder

	b.WriteString(Header("Team"))
	b.WriteString("\n")
	if len(q.Lines) == 0 {
		b.WriteString(Dim("  (no roles)") + "\n")
	} else {
		rows := make([][]string, 0, len(q.Lines))
		for _, l := range q.Lines {
			rows = append(rows, []string{
				l.Title,
				strconv.Itoa(l.Headcount),
				Rupiah(l.MonthlySalary),
				Dim(l.SalarySource),
				Months(q.DurationMonths),
				Rupiah(l.Total),
			})
		}
		b.WriteString(Table{
			Headers: []string{"ROLE", "COUNT", "SALARY/MONTH", "SOURCE", "DURATION", "SUBTOTAL"},
			Rows:    rows,
			Right:   []int{1, 2, 5},
		}.Render())
	}

	b.WriteString("\n")
	b.WriteString(Header("Cost"))
	b.WriteString("\n")
	b.WriteString(Table{
		Headers: []string{"COMPONENT", "AMOUNT"},
		Rows: [][]string{
			{"Technical capital", Rupiah(q.TechnicalCapital)},
			{"Manpower", Rupiah(q.ManpowerCost)},
			{"Subtotal", Rupiah(q.Subtotal)},
			{fmt.Sprintf("Profit margin (%s)", Percent(q.ProfitMargin)), Rupiah(q.ProfitAmount)},
		},
		Right:  []int{1},
		Footer: []string{"Grand total", Rupiah(q.GrandTotal)},
	}.Render())

	b.WriteString("\n")
	b.WriteString(Header("Payment Scheme"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  1. %s %s at project start\n", Bold("Down payment (50%):"), Rupiah(q.Tranches.DownPayment))
	fmt.Fprintf(&b, "  2. %s %s after development\n", Bold("Progress (30%):"), Rupiah(q.Tranches.Progress))
	fmt.Fprintf(&b, "  3. %s %s on handover\n", Bold("Completion (20%):"), Rupiah(q.Tranches.Completion))
	return b.String()
}

// FormatGrandTotal is the one-line summary printed after an edit.
func FormatGrandTotal(q costing.Breakdown) string {
	return fmt.Sprintf("%s %s %s",
		Dim("Grand total:"),
		StyleGreen.Render(Rupiah(q.GrandTotal)),
		Dim(fmt.Sprintf("(%s)", Months(q.DurationMonths))),
	)
}

// FormatSalarySuggestions lists oracle candidates and marks the one a new
// role would receive.
func FormatSalarySuggestions(title string, suggestions []domain.SalarySuggestion, pick int) string {
	return formatSalaryList(title, suggestions, pick, "default")
}

// FormatSalaryPicked lists oracle candidates and marks the one applied.
func FormatSalaryPicked(title string, suggestions []domain.SalarySuggestion, pick int) string {
	return formatSalaryList(title, suggestions, pick, "picked")
}

func formatSalaryList(title string, suggestions []domain.SalarySuggestion, pick int, label string) string {
	var b strings.Builder
	b.WriteString(Header("Salary: " + title))
	b.WriteString("\n")
	if len(suggestions) == 0 {
		b.WriteString(Dim("  No suggestions.") + "\n")
		return b.String()
	}
	if pick >= len(suggestions) {
		pick = len(suggestions) - 1
	}
	rows := make([][]string, 0, len(suggestions))
	for i, s := range suggestions {
		mark := ""
		if i == pick {
			mark = StyleGreen.Render(label)
		}
		rows = append(rows, []string{strconv.Itoa(i), s.Source, Rupiah(s.Salary), mark})
	}
	b.WriteString(Table{Headers: []string{"#", "SOURCE", "SALARY/MONTH", ""}, Rows: rows, Right: []int{0, 2}}.Render())
	return b.String()
}
