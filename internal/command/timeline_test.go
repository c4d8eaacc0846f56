package command

import (
	"testing"

	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/alexanderramin/proquote/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func months(entries []domain.TimelineEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Month
	}
	return out
}

func TestAddTimelineMonths_AppendsAfterLastMonth(t *testing.T) {
	doc := testutil.NewTestProposal(testutil.WithMonths(3))

	out, msg := Mutate(doc, AddTimelineMonths{Count: 2, Phase: "Testing", Activity: "UAT"})

	assert.Equal(t, []int{1, 2, 3, 4, 5}, months(out.Timeline))
	assert.Equal(t, "Testing", out.Timeline[3].Phase)
	assert.Equal(t, "UAT", out.Timeline[4].Activity)
	assert.Equal(t, "Added months 4-5 to the timeline for Testing.", msg)
	assert.Len(t, doc.Timeline, 3)
}

func TestAddTimelineMonths_EmptyTimelineStartsAtOne(t *testing.T) {
	out, msg := Mutate(testutil.NewTestProposal(), AddTimelineMonths{Count: 1, Phase: "Discovery"})

	assert.Equal(t, []int{1}, months(out.Timeline))
	assert.Equal(t, "Added month 1 to the timeline for Discovery.", msg)
}

func TestAddTimelineMonths_NonPositiveCountIsNoop(t *testing.T) {
	doc := testutil.NewTestProposal(testutil.WithMonths(2))
	out, msg := Mutate(doc, AddTimelineMonths{Count: 0})
	assert.Len(t, out.Timeline, 2)
	assert.Empty(t, msg)
}

func TestAddTimelineMonths_CountAboveLimitIsRefused(t *testing.T) {
	doc := testutil.NewTestProposal(testutil.WithMonths(2))
	out, msg := Mutate(doc, AddTimelineMonths{Count: MaxAddMonths + 1})
	assert.Len(t, out.Timeline, 2)
	assert.Equal(t, "Cannot add more than 120 months at once.", msg)

	out, _ = Mutate(doc, AddTimelineMonths{Count: MaxAddMonths})
	assert.Len(t, out.Timeline, 2+MaxAddMonths)
}

func TestRemoveTimelineMonth_RenumbersContiguously(t *testing.T) {
	doc := testutil.NewTestProposal(testutil.WithMonths(3))

	out, msg := Mutate(doc, RemoveTimelineMonth{Month: 2})

	require.Len(t, out.Timeline, 2)
	assert.Equal(t, []int{1, 2}, months(out.Timeline))
	// Original month 3 moved up into position 2.
	assert.Equal(t, "Phase 3", out.Timeline[1].Phase)
	assert.Equal(t, "Removed month 2; the timeline now runs 2 months.", msg)
	assert.Equal(t, []int{1, 2, 3}, months(doc.Timeline))
}

func TestRemoveTimelineMonth_LastEntryEmptiesTimeline(t *testing.T) {
	out, msg := Mutate(testutil.NewTestProposal(testutil.WithMonths(1)), RemoveTimelineMonth{Month: 1})
	assert.Empty(t, out.Timeline)
	assert.Equal(t, 0, out.ProjectDurationMonths())
	assert.Equal(t, "Removed month 1; the timeline is now empty.", msg)
}

func TestRemoveTimelineMonth_UnknownMonth(t *testing.T) {
	doc := testutil.NewTestProposal(testutil.WithMonths(2))
	out, msg := Mutate(doc, RemoveTimelineMonth{Month: 9})
	assert.Equal(t, doc.Timeline, out.Timeline)
	assert.Equal(t, "No month 9 in the timeline.", msg)
}

func TestUpdateTimelineMonth_DescribeOnly(t *testing.T) {
	doc := testutil.NewTestProposal(testutil.WithMonths(3))
	phase := "Hardening"

	out, msg := Mutate(doc, UpdateTimelineMonth{Month: 2, Phase: &phase})

	assert.Equal(t, []int{1, 2, 3}, months(out.Timeline))
	assert.Equal(t, "Hardening", out.Timeline[1].Phase)
	assert.Equal(t, "Activity 2", out.Timeline[1].Activity)
	assert.Equal(t, "Updated month 2 to Hardening: Activity 2.", msg)
	assert.Equal(t, "Phase 2", doc.Timeline[1].Phase)
}

func TestUpdateTimelineMonth_NoFieldsIsNoop(t *testing.T) {
	doc := testutil.NewTestProposal(testutil.WithMonths(1))
	out, msg := Mutate(doc, UpdateTimelineMonth{Month: 1})
	assert.Equal(t, doc.Timeline, out.Timeline)
	assert.Empty(t, msg)
}
