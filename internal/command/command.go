// Package command holds the closed set of proposal edits and the pure
// mutators that apply them. Every command kind is declared here; the
// unexported marker method keeps other packages from adding kinds the
// dispatcher would not know how to apply.
package command

import "github.com/alexanderramin/proquote/internal/domain"

// Kind names a command shape. The values double as the wire names used by
// the translator and the MCP tools.
type Kind string

const (
	KindSetRoleCount           Kind = "set_role_count"
	KindSetCost                Kind = "set_cost"
	KindAddTimelineMonths      Kind = "add_timeline_months"
	KindRemoveTimelineMonth    Kind = "remove_timeline_month"
	KindUpdateTimelineMonth    Kind = "update_timeline_month"
	KindSetTechStack           Kind = "set_tech_stack"
	KindAcceptSalarySuggestion Kind = "accept_salary_suggestion"
	KindSetSalaryManually      Kind = "set_salary_manually"
)

// Command is one structured edit to a proposal.
type Command interface {
	Kind() Kind
	isCommand()
}

// SetRoleCount upserts a role's headcount; zero deletes the role. Salary is
// only used when the role does not exist yet and is resolved before the
// command reaches the dispatcher. A nil Salary means 0 from "Manual".
type SetRoleCount struct {
	Title     string
	Headcount int
	Salary    *domain.SalarySuggestion
}

// SetCost is a partial update: nil fields are left unchanged.
type SetCost struct {
	TechnicalCapital    *float64
	ProfitMarginPercent *float64
}

// MaxAddMonths bounds AddTimelineMonths.Count; larger counts are refused.
const MaxAddMonths = 120

// AddTimelineMonths appends Count months after the current last month.
type AddTimelineMonths struct {
	Count    int
	Phase    string
	Activity string
}

// RemoveTimelineMonth deletes one month and renumbers the rest to 1..N.
type RemoveTimelineMonth struct {
	Month int
}

// UpdateTimelineMonth rewrites the description of one month. Month numbers
// never change.
type UpdateTimelineMonth struct {
	Month    int
	Phase    *string
	Activity *string
}

type TechAction string

const (
	TechAdd    TechAction = "add"
	TechRemove TechAction = "remove"
)

type SetTechStack struct {
	Action     TechAction
	Technology string
}

// AcceptSalarySuggestion sets a role's salary from an oracle candidate and
// records the candidate's source.
type AcceptSalarySuggestion struct {
	Title      string
	Suggestion domain.SalarySuggestion
}

// SetSalaryManually sets a role's salary by hand; the source becomes "Manual".
type SetSalaryManually struct {
	Title  string
	Salary float64
}

func (SetRoleCount) Kind() Kind           { return KindSetRoleCount }
func (SetCost) Kind() Kind                { return KindSetCost }
func (AddTimelineMonths) Kind() Kind      { return KindAddTimelineMonths }
func (RemoveTimelineMonth) Kind() Kind    { return KindRemoveTimelineMonth }
func (UpdateTimelineMonth) Kind() Kind    { return KindUpdateTimelineMonth }
func (SetTechStack) Kind() Kind           { return KindSetTechStack }
func (AcceptSalarySuggestion) Kind() Kind { return KindAcceptSalarySuggestion }
func (SetSalaryManually) Kind() Kind      { return KindSetSalaryManually }

func (SetRoleCount) isCommand()           {}
func (SetCost) isCommand()                {}
func (AddTimelineMonths) isCommand()      {}
func (RemoveTimelineMonth) isCommand()    {}
func (UpdateTimelineMonth) isCommand()    {}
func (SetTechStack) isCommand()           {}
func (AcceptSalarySuggestion) isCommand() {}
func (SetSalaryManually) isCommand()      {}
