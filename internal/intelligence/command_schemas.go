package intelligence

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/proquote/internal/command"
)

// BuildCommand validates the arguments for the named command and converts
// them into an engine command. SetRoleCount is built without a salary;
// resolving one for a new role happens later, outside the engine.
func BuildCommand(tc TranslatedCommand) (command.Command, *ParsedCommandError) {
	build, ok := commandBuilders[tc.Name]
	if !ok {
		return nil, &ParsedCommandError{
			Code:    ErrCodeUnknownCommand,
			Command: tc.Name,
			Message: "not one of " + joinNames(CommandNames),
		}
	}
	args := tc.Arguments
	if args == nil {
		args = map[string]interface{}{}
	}
	cmd, err := build(args)
	if err != nil {
		err.Command = tc.Name
		return nil, err
	}
	return cmd, nil
}

type commandBuilder func(map[string]interface{}) (command.Command, *ParsedCommandError)

var commandBuilders = map[CommandName]commandBuilder{
	CmdSetRoleCount:        buildSetRoleCount,
	CmdSetCost:             buildSetCost,
	CmdAddTimelineMonths:   buildAddTimelineMonths,
	CmdRemoveTimelineMonth: buildRemoveTimelineMonth,
	CmdUpdateTimelineMonth: buildUpdateTimelineMonth,
	CmdSetTechStack:        buildSetTechStack,
}

func argError(format string, a ...interface{}) *ParsedCommandError {
	return &ParsedCommandError{
		Code:    ErrCodeArgSchemaMismatch,
		Message: fmt.Sprintf(format, a...),
	}
}

func buildSetRoleCount(args map[string]interface{}) (command.Command, *ParsedCommandError) {
	title, ok := getString(args, "title")
	if !ok {
		return nil, argError("title is required")
	}
	n, ok := getInt(args, "headcount")
	if !ok || n < 0 {
		return nil, argError("headcount is required and must be a whole number >= 0")
	}
	return command.SetRoleCount{Title: title, Headcount: n}, nil
}

func buildSetCost(args map[string]interface{}) (command.Command, *ParsedCommandError) {
	var c command.SetCost
	if v, exists := args["technical_capital"]; exists && v != nil {
		f, ok := toNumber(v)
		if !ok || f < 0 {
			return nil, argError("technical_capital must be a number >= 0")
		}
		c.TechnicalCapital = &f
	}
	if v, exists := args["profit_margin_percent"]; exists && v != nil {
		f, ok := toNumber(v)
		if !ok {
			return nil, argError("profit_margin_percent must be a number")
		}
		c.ProfitMarginPercent = &f
	}
	if c.TechnicalCapital == nil && c.ProfitMarginPercent == nil {
		return nil, argError("at least one of technical_capital or profit_margin_percent is required")
	}
	return c, nil
}

func buildAddTimelineMonths(args map[string]interface{}) (command.Command, *ParsedCommandError) {
	count := 1
	if _, exists := args["count"]; exists {
		n, ok := getInt(args, "count")
		if !ok || n < 1 || n > command.MaxAddMonths {
			return nil, argError("count must be a whole number from 1 to %d", command.MaxAddMonths)
		}
		count = n
	}
	phase, _ := getString(args, "phase")
	activity, _ := getString(args, "activity")
	return command.AddTimelineMonths{Count: count, Phase: phase, Activity: activity}, nil
}

func buildRemoveTimelineMonth(args map[string]interface{}) (command.Command, *ParsedCommandError) {
	m, ok := getInt(args, "month")
	if !ok || m < 1 {
		return nil, argError("month is required and must be a whole number >= 1")
	}
	return command.RemoveTimelineMonth{Month: m}, nil
}

func buildUpdateTimelineMonth(args map[string]interface{}) (command.Command, *ParsedCommandError) {
	m, ok := getInt(args, "month")
	if !ok || m < 1 {
		return nil, argError("month is required and must be a whole number >= 1")
	}
	c := command.UpdateTimelineMonth{Month: m}
	if s, ok := getString(args, "phase"); ok {
		c.Phase = &s
	}
	if s, ok := getString(args, "activity"); ok {
		c.Activity = &s
	}
	if c.Phase == nil && c.Activity == nil {
		return nil, argError("at least one of phase or activity is required")
	}
	return c, nil
}

func buildSetTechStack(args map[string]interface{}) (command.Command, *ParsedCommandError) {
	action, _ := getString(args, "action")
	var a command.TechAction
	switch strings.ToLower(action) {
	case "add":
		a = command.TechAdd
	case "remove":
		a = command.TechRemove
	default:
		return nil, argError("action must be 'add' or 'remove'")
	}
	tech, ok := getString(args, "technology")
	if !ok {
		return nil, argError("technology is required")
	}
	return command.SetTechStack{Action: a, Technology: tech}, nil
}

// helper functions for type-safe argument extraction

func getString(args map[string]interface{}, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}

func getInt(args map[string]interface{}, key string) (int, bool) {
	v, ok := args[key]
	if !ok {
		return 0, false
	}
	f, ok := toNumber(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func joinNames(names []CommandName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
