package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/proquote/internal/command"
	"github.com/alexanderramin/proquote/internal/costing"
	"github.com/alexanderramin/proquote/internal/intelligence"
	"github.com/alexanderramin/proquote/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type SetRoleCountInput struct {
	Title     string `json:"title" jsonschema:"role title, matched case-insensitively"`
	Headcount int    `json:"headcount" jsonschema:"number of people in the role; 0 removes the role"`
}

type SetCostInput struct {
	TechnicalCapital    *float64 `json:"technical_capital,omitempty" jsonschema:"fixed technical cost in rupiah"`
	ProfitMarginPercent *float64 `json:"profit_margin_percent,omitempty" jsonschema:"profit margin as a percentage, e.g. 20"`
}

type AddTimelineMonthsInput struct {
	Count    int    `json:"count,omitempty" jsonschema:"months to append, 1 to 120 (default 1)"`
	Phase    string `json:"phase,omitempty" jsonschema:"phase name for the new months"`
	Activity string `json:"activity,omitempty" jsonschema:"activity description for the new months"`
}

type RemoveTimelineMonthInput struct {
	Month int `json:"month" jsonschema:"month number to remove; later months are renumbered"`
}

type UpdateTimelineMonthInput struct {
	Month    int     `json:"month" jsonschema:"month number to update"`
	Phase    *string `json:"phase,omitempty" jsonschema:"new phase name"`
	Activity *string `json:"activity,omitempty" jsonschema:"new activity description"`
}

type SetTechStackInput struct {
	Action     string `json:"action" jsonschema:"add or remove"`
	Technology string `json:"technology" jsonschema:"technology name"`
}

type AcceptSalarySuggestionInput struct {
	Title string `json:"title" jsonschema:"existing role title, matched case-insensitively"`
	Pick  *int   `json:"pick,omitempty" jsonschema:"0-based index into the salary suggestions; omitted uses the configured default"`
}

type EmptyInput struct{}

// EditOutput is returned by every mutating tool.
type EditOutput struct {
	Message        string   `json:"message"`
	Changed        bool     `json:"changed"`
	GrandTotal     float64  `json:"grand_total"`
	SalaryFallback []string `json:"salary_fallback,omitempty"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        string(command.KindSetRoleCount),
		Description: "Add, resize or remove a team role. New roles get a suggested salary.",
	}, editTool[SetRoleCountInput](s, command.KindSetRoleCount))
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        string(command.KindSetCost),
		Description: "Set technical capital and/or profit margin.",
	}, editTool[SetCostInput](s, command.KindSetCost))
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        string(command.KindAddTimelineMonths),
		Description: "Append months to the end of the timeline.",
	}, editTool[AddTimelineMonthsInput](s, command.KindAddTimelineMonths))
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        string(command.KindRemoveTimelineMonth),
		Description: "Remove one month from the timeline.",
	}, editTool[RemoveTimelineMonthInput](s, command.KindRemoveTimelineMonth))
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        string(command.KindUpdateTimelineMonth),
		Description: "Change the phase or activity of one month.",
	}, editTool[UpdateTimelineMonthInput](s, command.KindUpdateTimelineMonth))
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        string(command.KindSetTechStack),
		Description: "Add or remove a technology from the tech stack.",
	}, editTool[SetTechStackInput](s, command.KindSetTechStack))
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        string(command.KindAcceptSalarySuggestion),
		Description: "Look up salary suggestions for an existing role and apply one, recording its source.",
	}, s.handleAcceptSalarySuggestion)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_quote",
		Description: "Price the proposal: manpower, subtotal, margin, grand total and payment tranches.",
	}, s.handleGetQuote)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_proposal",
		Description: "Return the full proposal document.",
	}, s.handleGetProposal)
}

// editTool adapts a typed tool input to the shared command schema, so MCP
// calls and translated instructions are validated by the same rules.
func editTool[In any](s *Server, kind command.Kind) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, EditOutput, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, EditOutput, error) {
		args, err := toArgs(in)
		if err != nil {
			return nil, EditOutput{}, err
		}
		cmd, perr := intelligence.BuildCommand(intelligence.TranslatedCommand{
			Name:      intelligence.CommandName(kind),
			Arguments: args,
		})
		if perr != nil {
			return nil, EditOutput{}, perr
		}
		return s.apply(ctx, cmd)
	}
}

func (s *Server) apply(ctx context.Context, cmd command.Command) (*mcp.CallToolResult, EditOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.session.Apply(ctx, cmd)
	if err != nil {
		return nil, EditOutput{}, err
	}
	return s.editResult(res)
}

func (s *Server) handleAcceptSalarySuggestion(ctx context.Context, _ *mcp.CallToolRequest, in AcceptSalarySuggestionInput) (*mcp.CallToolResult, EditOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, _, err := s.session.AcceptSalary(ctx, in.Title, in.Pick)
	if err != nil {
		return nil, EditOutput{}, err
	}
	return s.editResult(res)
}

// editResult persists an applied edit and renders it for the client.
// Callers hold s.mu.
func (s *Server) editResult(res *service.EditResult) (*mcp.CallToolResult, EditOutput, error) {
	if err := s.persist(res); err != nil {
		return nil, EditOutput{}, err
	}

	out := EditOutput{
		Message:        res.Message,
		Changed:        res.Changed,
		GrandTotal:     res.Quote.GrandTotal,
		SalaryFallback: res.SalaryFallback,
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{
			Text: fmt.Sprintf("%s Grand total: %.0f.", res.Message, res.Quote.GrandTotal),
		}},
	}, out, nil
}

func (s *Server) handleGetQuote(context.Context, *mcp.CallToolRequest, EmptyInput) (*mcp.CallToolResult, costing.Breakdown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nil, s.session.Quote(), nil
}

// handleGetProposal returns the document as JSON text with no output
// schema; the created_at timestamp has no structured schema form.
func (s *Server) handleGetProposal(context.Context, *mcp.CallToolRequest, EmptyInput) (*mcp.CallToolResult, any, error) {
	s.mu.Lock()
	doc := s.session.Document()
	s.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func toArgs(in any) (map[string]interface{}, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	args := map[string]interface{}{}
	if err := json.Unmarshal(data, &args); err != nil {
		return nil, err
	}
	return args, nil
}
