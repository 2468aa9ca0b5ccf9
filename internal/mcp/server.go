package mcp

import (
	"fmt"

	"edgarmcp/internal/config"
	"edgarmcp/internal/edgar"
	"edgarmcp/internal/logging"

	"github.com/mark3labs/mcp-go/server"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "edgarmcp"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Server hosts the MCP server over a narrow EDGAR client.
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	client    edgar.Client
	mcpServer *server.MCPServer
}

// NewServer creates a configured MCP server. The tool set is fixed here;
// adding or removing a capability is a code change, not a runtime mutation.
func NewServer(cfg *config.Config, logger *logging.AppLogger, client edgar.Client) *Server {
	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	mcpServer.AddTool(companyInfoTool(), companyInfoHandler(client))
	mcpServer.AddTool(companyFilingsTool(), companyFilingsHandler(client))
	mcpServer.AddTool(financialStatementsTool(), financialStatementsHandler(client))
	mcpServer.AddTool(insiderTransactionsTool(), insiderTransactionsHandler(client))
	mcpServer.AddTool(filingTextTool(), filingTextHandler(client, cfg.MaxTextBytes))

	logger.Info("MCP server configured", "tools", 5)

	return &Server{
		config:    cfg,
		logger:    logger,
		client:    client,
		mcpServer: mcpServer,
	}
}

// Serve starts the MCP server on stdio and blocks until the transport
// terminates.
func (s *Server) Serve() error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	s.logger.Info("Starting MCP stdio server")
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
