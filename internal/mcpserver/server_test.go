package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/alexanderramin/proquote/internal/intelligence"
	"github.com/alexanderramin/proquote/internal/service"
	"github.com/alexanderramin/proquote/internal/testutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOracle struct{}

func (stubOracle) Suggest(context.Context, string) ([]domain.SalarySuggestion, error) {
	return []domain.SalarySuggestion{
		{Source: "UMR Jakarta", Salary: 5_400_000},
		{Source: "Glassdoor", Salary: 12_000_000},
	}, nil
}

type saveRecorder struct {
	saved []domain.Proposal
	err   error
}

func (r *saveRecorder) save(doc domain.Proposal) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, doc)
	return nil
}

func newTestServer(t *testing.T, doc domain.Proposal, rec *saveRecorder) *Server {
	t.Helper()
	session, err := service.NewSession(doc, service.Collaborators{Oracle: stubOracle{}}, service.Options{SalarySuggestionIndex: 1})
	require.NoError(t, err)
	srv, err := NewServer(session, rec.save)
	require.NoError(t, err)
	return srv
}

func TestNewServer_RequiresSession(t *testing.T) {
	_, err := NewServer(nil, nil)
	assert.ErrorIs(t, err, ErrMissingSession)
}

func TestSetRoleCount_AppliesAndSaves(t *testing.T) {
	ctx := context.Background()
	rec := &saveRecorder{}
	srv := newTestServer(t, testutil.NewTestProposal(testutil.WithMonths(2)), rec)

	handler := editTool[SetRoleCountInput](srv, "set_role_count")
	res, out, err := handler(ctx, nil, SetRoleCountInput{Title: "QA", Headcount: 2})
	require.NoError(t, err)

	assert.True(t, out.Changed)
	assert.Equal(t, 48_000_000.0, out.GrandTotal, "2 x 12M x 2 months, no margin")
	require.Len(t, rec.saved, 1)
	assert.Equal(t, "Glassdoor", rec.saved[0].Roles[0].SalarySource)

	require.Len(t, res.Content, 1)
	assert.Contains(t, res.Content[0].(*mcp.TextContent).Text, "Grand total: 48000000.")
}

func TestSetCost_ArgumentErrorsUseCommandSchema(t *testing.T) {
	rec := &saveRecorder{}
	srv := newTestServer(t, testutil.NewTestProposal(), rec)

	_, _, err := editTool[SetCostInput](srv, "set_cost")(context.Background(), nil, SetCostInput{})
	var perr *intelligence.ParsedCommandError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, intelligence.ErrCodeArgSchemaMismatch, perr.Code)
	assert.Empty(t, rec.saved)
}

func TestAddTimelineMonths_DefaultCount(t *testing.T) {
	rec := &saveRecorder{}
	srv := newTestServer(t, testutil.NewTestProposal(testutil.WithMonths(1)), rec)

	_, out, err := editTool[AddTimelineMonthsInput](srv, "add_timeline_months")(context.Background(), nil, AddTimelineMonthsInput{Phase: "UAT"})
	require.NoError(t, err)
	assert.Equal(t, "Added month 2 to the timeline for UAT.", out.Message)
}

func TestAddTimelineMonths_RejectsOversizedCount(t *testing.T) {
	rec := &saveRecorder{}
	srv := newTestServer(t, testutil.NewTestProposal(testutil.WithMonths(1)), rec)

	_, _, err := editTool[AddTimelineMonthsInput](srv, "add_timeline_months")(context.Background(), nil, AddTimelineMonthsInput{Count: 1_000_000})
	var perr *intelligence.ParsedCommandError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, intelligence.ErrCodeArgSchemaMismatch, perr.Code)
	assert.Empty(t, rec.saved)
}

func TestAcceptSalarySuggestion(t *testing.T) {
	ctx := context.Background()
	doc := testutil.NewTestProposal(testutil.WithRole("QA", 1, 7_000_000), testutil.WithMonths(1))

	t.Run("explicit pick", func(t *testing.T) {
		rec := &saveRecorder{}
		srv := newTestServer(t, doc, rec)
		pick := 0
		_, out, err := srv.handleAcceptSalarySuggestion(ctx, nil, AcceptSalarySuggestionInput{Title: "qa", Pick: &pick})
		require.NoError(t, err)
		assert.True(t, out.Changed)
		assert.Equal(t, 5_400_000.0, out.GrandTotal)
		require.Len(t, rec.saved, 1)
		assert.Equal(t, "UMR Jakarta", rec.saved[0].Roles[0].SalarySource)
	})

	t.Run("default pick", func(t *testing.T) {
		rec := &saveRecorder{}
		srv := newTestServer(t, doc, rec)
		_, _, err := srv.handleAcceptSalarySuggestion(ctx, nil, AcceptSalarySuggestionInput{Title: "QA"})
		require.NoError(t, err)
		require.Len(t, rec.saved, 1)
		assert.Equal(t, 12_000_000.0, rec.saved[0].Roles[0].MonthlySalary)
		assert.Equal(t, "Glassdoor", rec.saved[0].Roles[0].SalarySource)
	})

	t.Run("errors", func(t *testing.T) {
		rec := &saveRecorder{}
		srv := newTestServer(t, doc, rec)
		_, _, err := srv.handleAcceptSalarySuggestion(ctx, nil, AcceptSalarySuggestionInput{Title: "Designer"})
		assert.ErrorIs(t, err, service.ErrUnknownRole)
		pick := 5
		_, _, err = srv.handleAcceptSalarySuggestion(ctx, nil, AcceptSalarySuggestionInput{Title: "QA", Pick: &pick})
		assert.ErrorIs(t, err, service.ErrPickOutOfRange)
		assert.Empty(t, rec.saved)
	})
}

func TestNoOpEditIsNotSaved(t *testing.T) {
	rec := &saveRecorder{}
	srv := newTestServer(t, testutil.NewTestProposal(testutil.WithMonths(1)), rec)

	_, out, err := editTool[RemoveTimelineMonthInput](srv, "remove_timeline_month")(context.Background(), nil, RemoveTimelineMonthInput{Month: 7})
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Equal(t, "No month 7 in the timeline.", out.Message)
	assert.Empty(t, rec.saved)
}

func TestSaveFailureIsReported(t *testing.T) {
	rec := &saveRecorder{err: errors.New("disk full")}
	srv := newTestServer(t, testutil.NewTestProposal(), rec)

	_, _, err := editTool[SetTechStackInput](srv, "set_tech_stack")(context.Background(), nil, SetTechStackInput{Action: "add", Technology: "Go"})
	assert.ErrorContains(t, err, "disk full")
}

func TestGetQuoteAndProposal(t *testing.T) {
	ctx := context.Background()
	doc := testutil.NewTestProposal(
		testutil.WithRole("Project Manager", 1, 15_000_000),
		testutil.WithRole("Developer", 2, 10_000_000),
		testutil.WithCosts(8_000_000, 20),
		testutil.WithMonths(3),
	)
	srv := newTestServer(t, doc, &saveRecorder{})

	_, quote, err := srv.handleGetQuote(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, 135_600_000.0, quote.GrandTotal)
	assert.Equal(t, 67_800_000.0, quote.Tranches.DownPayment)

	res, _, err := srv.handleGetProposal(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	var got domain.Proposal
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(*mcp.TextContent).Text), &got))
	assert.Equal(t, doc.ID, got.ID)
	assert.Len(t, got.Roles, 2)
}

func TestProposalResource(t *testing.T) {
	srv := newTestServer(t, testutil.NewTestProposal(testutil.WithTechStack("Go")), &saveRecorder{})

	res, err := srv.handleProposalResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: proposalURI},
	})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)
	assert.Contains(t, res.Contents[0].Text, `"tech_stack": [`)
}
