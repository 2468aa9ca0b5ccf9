package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Argument bounds shared by the listing tools.
const (
	defaultFilingLimit      = 10
	defaultTransactionLimit = 20
	maxListLimit            = 100
)

// companyInfoInput is the MCP tool input for a company lookup.
type companyInfoInput struct {
	Identifier string `json:"identifier"`
}

// companyFilingsInput is the MCP tool input for a filing listing.
type companyFilingsInput struct {
	Identifier string `json:"identifier"`
	Form       string `json:"form,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// financialStatementsInput is the MCP tool input for statement extraction.
type financialStatementsInput struct {
	Identifier  string `json:"identifier"`
	Statement   string `json:"statement"`
	Form        string `json:"form,omitempty"`
	FilingIndex int    `json:"filing_index,omitempty"`
}

// insiderTransactionsInput is the MCP tool input for Form 4 retrieval.
type insiderTransactionsInput struct {
	Identifier string `json:"identifier"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// filingTextInput is the MCP tool input for filing text extraction. Either
// accession_number alone or identifier plus form selects the filing.
type filingTextInput struct {
	AccessionNumber string `json:"accession_number,omitempty"`
	Identifier      string `json:"identifier,omitempty"`
	Form            string `json:"form,omitempty"`
	FilingIndex     int    `json:"filing_index,omitempty"`
}

// companyInfoTool defines the MCP tool schema for company lookup.
func companyInfoTool() mcp.Tool {
	return mcp.NewTool(
		"get_company_info",
		mcp.WithDescription("Get basic company information for an SEC filer"),
		mcp.WithString("identifier",
			mcp.Required(),
			mcp.Description("Ticker symbol (e.g. AAPL) or CIK (e.g. 0000320193)"),
		),
		mcp.WithInputSchema[companyInfoInput](),
	)
}

// companyFilingsTool defines the MCP tool schema for filing listings.
func companyFilingsTool() mcp.Tool {
	return mcp.NewTool(
		"get_company_filings",
		mcp.WithDescription("List SEC filings for a company with optional form, date and count filtering"),
		mcp.WithString("identifier",
			mcp.Required(),
			mcp.Description("Ticker symbol or CIK"),
		),
		mcp.WithString("form",
			mcp.Description("Filing form type to filter by (e.g. 10-K, 10-Q, 8-K, 4)"),
		),
		mcp.WithString("start_date",
			mcp.Description("Earliest filing date to include, YYYY-MM-DD"),
		),
		mcp.WithString("end_date",
			mcp.Description("Latest filing date to include, YYYY-MM-DD"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of filings to return"),
			mcp.DefaultNumber(defaultFilingLimit),
			mcp.Min(1),
			mcp.Max(maxListLimit),
		),
		mcp.WithInputSchema[companyFilingsInput](),
	)
}

// financialStatementsTool defines the MCP tool schema for statement extraction.
func financialStatementsTool() mcp.Tool {
	return mcp.NewTool(
		"get_financial_statements",
		mcp.WithDescription("Extract a financial statement from a company's 10-K or 10-Q filing"),
		mcp.WithString("identifier",
			mcp.Required(),
			mcp.Description("Ticker symbol or CIK"),
		),
		mcp.WithString("statement",
			mcp.Required(),
			mcp.Description("Which statement to extract"),
			mcp.Enum("balance_sheet", "income_statement", "cash_flow"),
		),
		mcp.WithString("form",
			mcp.Description("Filing form to extract from"),
			mcp.Enum("10-K", "10-Q"),
			mcp.DefaultString("10-K"),
		),
		mcp.WithNumber("filing_index",
			mcp.Description("Index of the filing to use, 0 for most recent"),
			mcp.DefaultNumber(0),
			mcp.Min(0),
		),
		mcp.WithInputSchema[financialStatementsInput](),
	)
}

// insiderTransactionsTool defines the MCP tool schema for Form 4 retrieval.
func insiderTransactionsTool() mcp.Tool {
	return mcp.NewTool(
		"get_insider_transactions",
		mcp.WithDescription("Get insider transactions (Form 4 filings) for a company"),
		mcp.WithString("identifier",
			mcp.Required(),
			mcp.Description("Ticker symbol or CIK"),
		),
		mcp.WithString("start_date",
			mcp.Description("Earliest transaction date to include, YYYY-MM-DD"),
		),
		mcp.WithString("end_date",
			mcp.Description("Latest transaction date to include, YYYY-MM-DD"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of transactions to return"),
			mcp.DefaultNumber(defaultTransactionLimit),
			mcp.Min(1),
			mcp.Max(maxListLimit),
		),
		mcp.WithInputSchema[insiderTransactionsInput](),
	)
}

// filingTextTool defines the MCP tool schema for filing text extraction.
func filingTextTool() mcp.Tool {
	return mcp.NewTool(
		"get_filing_text",
		mcp.WithDescription("Extract plain text from a specific filing, selected by accession number or by company and form"),
		mcp.WithString("accession_number",
			mcp.Description("Accession number of the filing (e.g. 0000320193-23-000106)"),
		),
		mcp.WithString("identifier",
			mcp.Description("Ticker symbol or CIK, used with form when no accession number is given"),
		),
		mcp.WithString("form",
			mcp.Description("Filing form type (e.g. 10-K, 10-Q)"),
		),
		mcp.WithNumber("filing_index",
			mcp.Description("Index of the filing to use, 0 for most recent"),
			mcp.DefaultNumber(0),
			mcp.Min(0),
		),
		mcp.WithInputSchema[filingTextInput](),
	)
}
