// Package mcpserver exposes a proposal editing session as MCP tools so an
// external assistant can edit and price the proposal.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/alexanderramin/proquote/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

var ErrMissingSession = errors.New("mcpserver: session is required")

// SaveFunc persists the proposal after each successful mutation.
type SaveFunc func(domain.Proposal) error

// Server serves one proposal session. Tool calls are serialized because
// the session is single-writer.
type Server struct {
	mu      sync.Mutex
	session *service.ProposalSession
	save    SaveFunc
	server  *mcp.Server
}

// NewServer registers the proposal tools and resource. save may be nil
// when the proposal should stay in memory.
func NewServer(session *service.ProposalSession, save SaveFunc) (*Server, error) {
	if session == nil {
		return nil, ErrMissingSession
	}
	s := &Server{
		session: session,
		save:    save,
		server:  mcp.NewServer(&mcp.Implementation{Name: "proquote", Version: Version}, nil),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// persist writes the proposal when the last edit changed it.
func (s *Server) persist(res *service.EditResult) error {
	if s.save == nil || !res.Changed {
		return nil
	}
	if err := s.save(s.session.Document()); err != nil {
		return fmt.Errorf("saving proposal: %w", err)
	}
	s.session.MarkSaved()
	return nil
}
