package intelligence

import (
	"testing"

	"github.com/alexanderramin/proquote/internal/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommand_Valid(t *testing.T) {
	phase := "UAT"
	tests := []struct {
		name string
		in   TranslatedCommand
		want command.Command
	}{
		{
			name: "role removal",
			in:   TranslatedCommand{Name: CmdSetRoleCount, Arguments: map[string]interface{}{"title": " QA ", "headcount": float64(0)}},
			want: command.SetRoleCount{Title: "QA", Headcount: 0},
		},
		{
			name: "add months defaults count to one",
			in:   TranslatedCommand{Name: CmdAddTimelineMonths, Arguments: map[string]interface{}{"phase": "Support"}},
			want: command.AddTimelineMonths{Count: 1, Phase: "Support"},
		},
		{
			name: "remove month",
			in:   TranslatedCommand{Name: CmdRemoveTimelineMonth, Arguments: map[string]interface{}{"month": float64(3)}},
			want: command.RemoveTimelineMonth{Month: 3},
		},
		{
			name: "update month phase only",
			in:   TranslatedCommand{Name: CmdUpdateTimelineMonth, Arguments: map[string]interface{}{"month": float64(2), "phase": "UAT"}},
			want: command.UpdateTimelineMonth{Month: 2, Phase: &phase},
		},
		{
			name: "tech action is case-insensitive",
			in:   TranslatedCommand{Name: CmdSetTechStack, Arguments: map[string]interface{}{"action": "REMOVE", "technology": "Vue"}},
			want: command.SetTechStack{Action: command.TechRemove, Technology: "Vue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildCommand(tt.in)
			require.Nil(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildCommand_SetCostPartial(t *testing.T) {
	got, err := BuildCommand(TranslatedCommand{Name: CmdSetCost, Arguments: map[string]interface{}{"technical_capital": float64(5_000_000)}})
	require.Nil(t, err)
	c := got.(command.SetCost)
	require.NotNil(t, c.TechnicalCapital)
	assert.Equal(t, 5_000_000.0, *c.TechnicalCapital)
	assert.Nil(t, c.ProfitMarginPercent)
}

func TestBuildCommand_Rejections(t *testing.T) {
	tests := []struct {
		name string
		in   TranslatedCommand
		code ParsedCommandErrorCode
	}{
		{"unknown name", TranslatedCommand{Name: "rename_project"}, ErrCodeUnknownCommand},
		{"missing title", TranslatedCommand{Name: CmdSetRoleCount, Arguments: map[string]interface{}{"headcount": float64(1)}}, ErrCodeArgSchemaMismatch},
		{"negative headcount", TranslatedCommand{Name: CmdSetRoleCount, Arguments: map[string]interface{}{"title": "QA", "headcount": float64(-1)}}, ErrCodeArgSchemaMismatch},
		{"fractional headcount", TranslatedCommand{Name: CmdSetRoleCount, Arguments: map[string]interface{}{"title": "QA", "headcount": 1.5}}, ErrCodeArgSchemaMismatch},
		{"empty cost", TranslatedCommand{Name: CmdSetCost, Arguments: map[string]interface{}{}}, ErrCodeArgSchemaMismatch},
		{"negative capital", TranslatedCommand{Name: CmdSetCost, Arguments: map[string]interface{}{"technical_capital": float64(-5)}}, ErrCodeArgSchemaMismatch},
		{"zero months", TranslatedCommand{Name: CmdAddTimelineMonths, Arguments: map[string]interface{}{"count": float64(0)}}, ErrCodeArgSchemaMismatch},
		{"too many months", TranslatedCommand{Name: CmdAddTimelineMonths, Arguments: map[string]interface{}{"count": float64(121)}}, ErrCodeArgSchemaMismatch},
		{"huge month count", TranslatedCommand{Name: CmdAddTimelineMonths, Arguments: map[string]interface{}{"count": 1e12}}, ErrCodeArgSchemaMismatch},
		{"month zero", TranslatedCommand{Name: CmdRemoveTimelineMonth, Arguments: map[string]interface{}{"month": float64(0)}}, ErrCodeArgSchemaMismatch},
		{"update without fields", TranslatedCommand{Name: CmdUpdateTimelineMonth, Arguments: map[string]interface{}{"month": float64(1)}}, ErrCodeArgSchemaMismatch},
		{"bad tech action", TranslatedCommand{Name: CmdSetTechStack, Arguments: map[string]interface{}{"action": "replace", "technology": "Go"}}, ErrCodeArgSchemaMismatch},
		{"missing technology", TranslatedCommand{Name: CmdSetTechStack, Arguments: map[string]interface{}{"action": "add"}}, ErrCodeArgSchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildCommand(tt.in)
			assert.Nil(t, got)
			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.in.Name, err.Command)
		})
	}
}

func TestCommandNames_AllBuildable(t *testing.T) {
	for _, name := range CommandNames {
		assert.True(t, IsValidCommandName(name), name)
	}
	assert.False(t, IsValidCommandName("accept_salary_suggestion"))
}
