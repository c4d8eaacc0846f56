package intelligence

import (
	"github.com/alexanderramin/proquote/internal/command"
	"github.com/alexanderramin/proquote/internal/domain"
)

// CommandName enumerates the edit commands the translator may produce.
// Salary commands are absent: salaries change only through the oracle
// or explicit user input, never from free text.
type CommandName string

const (
	CmdSetRoleCount        = CommandName(command.KindSetRoleCount)
	CmdSetCost             = CommandName(command.KindSetCost)
	CmdAddTimelineMonths   = CommandName(command.KindAddTimelineMonths)
	CmdRemoveTimelineMonth = CommandName(command.KindRemoveTimelineMonth)
	CmdUpdateTimelineMonth = CommandName(command.KindUpdateTimelineMonth)
	CmdSetTechStack        = CommandName(command.KindSetTechStack)
)

// CommandNames lists every translatable command in prompt order.
var CommandNames = []CommandName{
	CmdSetRoleCount, CmdSetCost, CmdAddTimelineMonths,
	CmdRemoveTimelineMonth, CmdUpdateTimelineMonth, CmdSetTechStack,
}

// IsValidCommandName returns true if the given name is a known command.
func IsValidCommandName(name CommandName) bool {
	_, ok := commandBuilders[name]
	return ok
}

// TranslatedCommand is one command as emitted by the model, before
// argument validation.
type TranslatedCommand struct {
	Name      CommandName            `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// translatorOutput is the JSON shape the translate prompt asks for.
type translatorOutput struct {
	Commands   []TranslatedCommand `json:"commands"`
	Reply      string              `json:"reply"`
	Confidence float64             `json:"confidence"`
}

// ParsedCommandErrorCode enumerates translation failure reasons.
type ParsedCommandErrorCode string

const (
	ErrCodeUnknownCommand      ParsedCommandErrorCode = "UNKNOWN_COMMAND"
	ErrCodeArgSchemaMismatch   ParsedCommandErrorCode = "ARGUMENT_SCHEMA_MISMATCH"
	ErrCodeInvalidOutputFormat ParsedCommandErrorCode = "INVALID_OUTPUT_FORMAT"
)

// ParsedCommandError is returned when model output cannot become commands.
type ParsedCommandError struct {
	Code    ParsedCommandErrorCode `json:"code"`
	Command CommandName            `json:"command,omitempty"`
	Message string                 `json:"message"`
}

func (e *ParsedCommandError) Error() string {
	if e.Command != "" {
		return string(e.Code) + ": " + string(e.Command) + ": " + e.Message
	}
	return string(e.Code) + ": " + e.Message
}

// TranslationState describes what the caller should do with a translation.
type TranslationState string

const (
	StateReady              TranslationState = "ready"
	StateNeedsClarification TranslationState = "needs_clarification"
	StateRejected           TranslationState = "rejected"
)

// Translation is the outcome of turning one instruction into commands.
// Commands is only populated in StateReady.
type Translation struct {
	State      TranslationState    `json:"state"`
	Commands   []command.Command   `json:"-"`
	Raw        []TranslatedCommand `json:"commands"`
	Reply      string              `json:"reply"`
	Confidence float64             `json:"confidence"`
	Error      *ParsedCommandError `json:"error,omitempty"`
}

// ExtractionInput is the raw requirements text plus who it is for. Details
// are not sent to the model; they are copied onto the drafted proposal.
type ExtractionInput struct {
	Content       string
	ClientProfile domain.ClientProfile
	Details       domain.ProposalDetails
}

// Extraction is the result of reading a requirements source. Proposal is
// nil when Valid is false. Roles come back with zero salaries; resolving
// them is the caller's job.
type Extraction struct {
	Valid    bool             `json:"is_valid"`
	Reason   string           `json:"reason,omitempty"`
	Proposal *domain.Proposal `json:"proposal,omitempty"`
}

// TechSuggestion lists technologies recommended for a set of requirements.
type TechSuggestion struct {
	Technologies []string `json:"suggested_technologies"`
	Reasoning    string   `json:"reasoning"`
}
