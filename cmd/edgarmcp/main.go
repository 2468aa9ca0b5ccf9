// Package main is the entry point for the edgarmcp MCP server.
//
// The binary speaks the Model Context Protocol over stdin/stdout, so the
// root command produces no terminal output of its own; all diagnostics go
// to stderr (or a log file in debug mode) through the logging package.
// Startup sequence:
//
// 1. Initialize logging
// 2. Load configuration (defaults, config file, environment)
// 3. Validate the configuration, refusing to start without a contact email
// 4. Construct the EDGAR client and the MCP server
// 5. Serve on stdio until the client disconnects
package main

import (
	"fmt"
	"os"

	"edgarmcp/internal/config"
	"edgarmcp/internal/edgar"
	"edgarmcp/internal/logging"
	"edgarmcp/internal/mcp"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "edgarmcp",
		Short: "MCP server exposing SEC EDGAR filing data",
		Long: "edgarmcp is a Model Context Protocol server that lets AI assistants\n" +
			"query SEC EDGAR: company profiles, filing listings, financial\n" +
			"statements, insider transactions and filing text.\n\n" +
			"The SEC requires a contact email on every request. Set it via\n" +
			"EDGAR_USER_EMAIL or run 'edgarmcp init' to write a config file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// runServe starts the stdio MCP server. Configuration failures are fatal
// before the server is constructed; once serving, per-request errors are
// handled inside the tool handlers.
func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.NewAppLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		return err
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		fmt.Fprintf(os.Stderr, "edgarmcp: %v\n", err)
		return err
	}

	client := edgar.NewHTTPClient(cfg, logger)
	server := mcp.NewServer(cfg, logger, client)

	if err := server.Serve(); err != nil {
		logger.Error("MCP server terminated", "error", err)
		return err
	}
	return nil
}

func newInitCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists at %s", path)
			}

			cfg := config.DefaultConfig()
			cfg.UserEmail = email
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "contact email sent to the SEC with every request")
	cmd.MarkFlagRequired("email")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the edgarmcp version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "edgarmcp %s\n", version)
		},
	}
}
