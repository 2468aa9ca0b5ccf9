// Package mcp provides the Model Context Protocol (MCP) server implementation for edgarmcp using mcp-go.
//
// This package implements an MCP server that allows AI assistants to query
// SEC EDGAR filing data through a standardized protocol. It exposes five
// tools: company lookup, filing listing, financial statement extraction,
// insider transaction retrieval and filing text extraction. All data access
// goes through the narrow edgar.Client boundary; this package only validates
// tool arguments, invokes the client and shapes the results.
//
// # Implementation
//
// The package uses the mcp-go library (github.com/mark3labs/mcp-go) for
// protocol handling and communicates via stdin/stdout using JSON-RPC 2.0 as
// specified by the MCP standard. Tool registration happens once at server
// construction; the tool set is a closed, compile-time surface.
//
// # Error handling
//
// Per-request failures never crash the serving process. Argument validation
// errors, unresolvable filers and upstream failures are all returned as
// tool results with IsError set, carrying a message that names the failing
// field or identifier. Absence of data (no filings, no statement, no
// transactions) is a successful result that says so explicitly.
//
// # Usage
//
// The MCP server is typically started as a subprocess by AI assistants that
// support MCP integration. It can also be started manually for testing:
//
//	EDGAR_USER_EMAIL=you@example.com edgarmcp
//
// The server will read JSON-RPC requests from stdin and write responses to
// stdout until it receives EOF or is terminated. The contact identity is
// required before startup completes; the SEC's fair access policy expects it
// on every outbound request.
//
// # References
//
// - MCP Specification: https://modelcontextprotocol.io/specification
// - mcp-go Library: https://github.com/mark3labs/mcp-go
// - EDGAR APIs: https://www.sec.gov/search-filings/edgar-application-programming-interfaces
package mcp
