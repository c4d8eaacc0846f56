package command

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/proquote/internal/domain"
)

// NoChangeMessage is returned when a batch holds no commands.
const NoChangeMessage = "No changes were made."

// Mutate applies a single command. The input proposal is never modified;
// the returned message is empty when the command had nothing to say.
func Mutate(doc domain.Proposal, cmd Command) (domain.Proposal, string) {
	switch c := cmd.(type) {
	case SetRoleCount:
		return applySetRoleCount(doc, c)
	case SetCost:
		return applySetCost(doc, c)
	case AddTimelineMonths:
		return applyAddTimelineMonths(doc, c)
	case RemoveTimelineMonth:
		return applyRemoveTimelineMonth(doc, c)
	case UpdateTimelineMonth:
		return applyUpdateTimelineMonth(doc, c)
	case SetTechStack:
		return applySetTechStack(doc, c)
	case AcceptSalarySuggestion:
		return applyAcceptSalarySuggestion(doc, c)
	case SetSalaryManually:
		return applySetSalaryManually(doc, c)
	default:
		panic(fmt.Sprintf("command: unhandled command type %T", cmd))
	}
}

// Apply folds the commands over the proposal in order and joins their
// confirmations with a space. Later commands win over earlier ones touching
// the same role or month; there is no conflict detection.
func Apply(doc domain.Proposal, cmds []Command) (domain.Proposal, string) {
	if len(cmds) == 0 {
		return doc, NoChangeMessage
	}

	current := doc
	fragments := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		next, msg := Mutate(current, cmd)
		domain.MustValidate(&next)
		current = next
		if msg != "" {
			fragments = append(fragments, msg)
		}
	}

	if len(fragments) == 0 {
		return current, NoChangeMessage
	}
	return current, strings.Join(fragments, " ")
}
