package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	proposalURI = "proquote://proposal"
	quoteURI    = "proquote://quote"
)

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         proposalURI,
		Name:        "proposal",
		Description: "The proposal being edited",
		MIMEType:    "application/json",
	}, s.handleProposalResource)

	s.server.AddResource(&mcp.Resource{
		URI:         quoteURI,
		Name:        "quote",
		Description: "Current cost breakdown of the proposal",
		MIMEType:    "application/json",
	}, s.handleQuoteResource)
}

func (s *Server) handleProposalResource(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	doc := s.session.Document()
	s.mu.Unlock()
	return jsonResource(req.Params.URI, doc)
}

func (s *Server) handleQuoteResource(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	q := s.session.Quote()
	s.mu.Unlock()
	return jsonResource(req.Params.URI, q)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
