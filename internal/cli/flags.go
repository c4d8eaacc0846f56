package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/proquote/internal/command"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*roleFlag)(nil)
	_ pflag.Value = (*salaryFlag)(nil)
)

// splitAssignment parses "Title=value". The title may itself contain '='
// only before the last one.
func splitAssignment(s string) (string, string, error) {
	i := strings.LastIndex(s, "=")
	if i <= 0 || i == len(s)-1 {
		return "", "", fmt.Errorf("expected Title=value, got %q", s)
	}
	title := strings.TrimSpace(s[:i])
	if title == "" {
		return "", "", fmt.Errorf("missing title in %q", s)
	}
	return title, strings.TrimSpace(s[i+1:]), nil
}

// roleFlag collects repeated --role "Title=N" values.
type roleFlag struct {
	cmds []command.SetRoleCount
}

func (f *roleFlag) Set(s string) error {
	title, v, err := splitAssignment(s)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fmt.Errorf("headcount for %s must be a whole number >= 0, got %q", title, v)
	}
	f.cmds = append(f.cmds, command.SetRoleCount{Title: title, Headcount: n})
	return nil
}

func (f *roleFlag) String() string {
	parts := make([]string, len(f.cmds))
	for i, c := range f.cmds {
		parts[i] = fmt.Sprintf("%s=%d", c.Title, c.Headcount)
	}
	return strings.Join(parts, ",")
}

func (f *roleFlag) Type() string { return "Title=N" }

// salaryFlag collects repeated --salary "Title=amount" values.
type salaryFlag struct {
	cmds []command.SetSalaryManually
}

func (f *salaryFlag) Set(s string) error {
	title, v, err := splitAssignment(s)
	if err != nil {
		return err
	}
	amount, err := parseAmount(v)
	if err != nil {
		return fmt.Errorf("salary for %s: %w", title, err)
	}
	f.cmds = append(f.cmds, command.SetSalaryManually{Title: title, Salary: amount})
	return nil
}

func (f *salaryFlag) String() string {
	parts := make([]string, len(f.cmds))
	for i, c := range f.cmds {
		parts[i] = fmt.Sprintf("%s=%.0f", c.Title, c.Salary)
	}
	return strings.Join(parts, ",")
}

func (f *salaryFlag) Type() string { return "Title=amount" }

// parseAmount accepts plain numbers and grouped rupiah such as
// "15.000.000", "15,000,000" or "Rp 15.000.000". A single dot followed by
// exactly three digits is read as grouping.
func parseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "Rp"))
	if isGrouped(clean) {
		clean = strings.NewReplacer(".", "", ",", "").Replace(clean)
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("amount must be a number >= 0, got %q", s)
	}
	return v, nil
}

func isGrouped(s string) bool {
	if strings.Contains(s, ",") || strings.Count(s, ".") > 1 {
		return true
	}
	i := strings.Index(s, ".")
	return i > 0 && len(s)-i-1 == 3
}
