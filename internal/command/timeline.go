package command

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/proquote/internal/domain"
)

func applyAddTimelineMonths(doc domain.Proposal, c AddTimelineMonths) (domain.Proposal, string) {
	if c.Count <= 0 {
		return doc, ""
	}
	if c.Count > MaxAddMonths {
		return doc, fmt.Sprintf("Cannot add more than %d months at once.", MaxAddMonths)
	}
	out := doc.Clone()
	first := out.ProjectDurationMonths() + 1
	for i := 0; i < c.Count; i++ {
		out.Timeline = append(out.Timeline, domain.TimelineEntry{
			Month:    first + i,
			Phase:    c.Phase,
			Activity: c.Activity,
		})
	}

	last := first + c.Count - 1
	span := fmt.Sprintf("month %d", first)
	if c.Count > 1 {
		span = fmt.Sprintf("months %d-%d", first, last)
	}
	label := domain.CoalesceStr(strings.TrimSpace(c.Phase), strings.TrimSpace(c.Activity))
	if label == "" {
		return out, fmt.Sprintf("Added %s to the timeline.", span)
	}
	return out, fmt.Sprintf("Added %s to the timeline for %s.", span, label)
}

// applyRemoveTimelineMonth deletes a month and renumbers what is left so the
// timeline always runs 1..N.
func applyRemoveTimelineMonth(doc domain.Proposal, c RemoveTimelineMonth) (domain.Proposal, string) {
	idx := doc.FindMonth(c.Month)
	if idx < 0 {
		return doc, fmt.Sprintf("No month %d in the timeline.", c.Month)
	}

	out := doc.Clone()
	out.Timeline = append(out.Timeline[:idx], out.Timeline[idx+1:]...)
	for i := range out.Timeline {
		out.Timeline[i].Month = i + 1
	}

	if len(out.Timeline) == 0 {
		return out, fmt.Sprintf("Removed month %d; the timeline is now empty.", c.Month)
	}
	return out, fmt.Sprintf("Removed month %d; the timeline now runs %d months.", c.Month, len(out.Timeline))
}

func applyUpdateTimelineMonth(doc domain.Proposal, c UpdateTimelineMonth) (domain.Proposal, string) {
	idx := doc.FindMonth(c.Month)
	if idx < 0 {
		return doc, fmt.Sprintf("No month %d in the timeline.", c.Month)
	}
	if c.Phase == nil && c.Activity == nil {
		return doc, ""
	}

	out := doc.Clone()
	entry := &out.Timeline[idx]
	entry.Phase = domain.StrFromPtrWithDefault(entry.Phase, c.Phase)
	entry.Activity = domain.StrFromPtrWithDefault(entry.Activity, c.Activity)
	return out, fmt.Sprintf("Updated month %d to %s: %s.", c.Month, entry.Phase, entry.Activity)
}
