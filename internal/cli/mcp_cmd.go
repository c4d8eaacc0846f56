package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/proquote/internal/codec"
	"github.com/alexanderramin/proquote/internal/domain"
	"github.com/alexanderramin/proquote/internal/mcpserver"
	"github.com/alexanderramin/proquote/internal/service"
	"github.com/spf13/cobra"
)

func newMCPCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp <proposal>",
		Short: "Serve proposal editing tools over MCP (stdio)",
		Long: "Start a Model Context Protocol server on stdin/stdout. Assistants can call\n" +
			"set_role_count, set_cost, add_timeline_months, remove_timeline_month,\n" +
			"update_timeline_month, set_tech_stack, get_quote and get_proposal.\n" +
			"The proposal file is saved after every change.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(args[0])
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.ServeMCP(ctx, args[0], s)
		},
	}
}

func serveMCPStdio(ctx context.Context, path string, s *service.ProposalSession) error {
	srv, err := mcpserver.NewServer(s, func(doc domain.Proposal) error {
		return codec.Save(path, doc)
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
