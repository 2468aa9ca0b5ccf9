package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"edgarmcp/internal/edgar"
	"edgarmcp/internal/validation"

	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler is the mcp-go tool handler signature.
type toolHandler = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// filingsResult is the structured output of get_company_filings.
type filingsResult struct {
	Identifier string         `json:"identifier"`
	Count      int            `json:"count"`
	Filings    []edgar.Filing `json:"filings"`
}

// transactionsResult is the structured output of get_insider_transactions.
type transactionsResult struct {
	Identifier   string              `json:"identifier"`
	Count        int                 `json:"count"`
	Transactions []edgar.Transaction `json:"transactions"`
}

// upstreamErrorResult converts a client error into a tool error result. The
// handler layer never lets an upstream failure escape as a transport error.
func upstreamErrorResult(ctx context.Context, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, edgar.ErrFilerNotFound),
		errors.Is(err, edgar.ErrFilingNotFound):
		return mcp.NewToolResultError(err.Error())
	case errors.Is(err, context.Canceled), ctx.Err() == context.Canceled:
		return mcp.NewToolResultError("request cancelled")
	case errors.Is(err, context.DeadlineExceeded), ctx.Err() == context.DeadlineExceeded:
		return mcp.NewToolResultError("request timed out")
	default:
		return mcp.NewToolResultErrorFromErr("EDGAR request failed", err)
	}
}

// normalizeLimit applies the default and bounds for a count argument.
func normalizeLimit(limit, fallback int) (int, error) {
	if limit == 0 {
		return fallback, nil
	}
	if limit < 0 || limit > maxListLimit {
		return 0, fmt.Errorf("limit must be between 1 and %d, got %d", maxListLimit, limit)
	}
	return limit, nil
}

// companyInfoHandler resolves a filer and returns its profile.
func companyInfoHandler(client edgar.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input companyInfoInput
		if err := request.BindArguments(&input); err != nil {
			return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
		}
		if err := validation.ValidateIdentifier(input.Identifier); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("identifier: %v", err)), nil
		}

		company, err := client.ResolveCompany(ctx, input.Identifier)
		if err != nil {
			return upstreamErrorResult(ctx, err), nil
		}

		return mcp.NewToolResultStructuredOnly(company), nil
	}
}

// companyFilingsHandler lists filings matching the requested filter.
func companyFilingsHandler(client edgar.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input companyFilingsInput
		if err := request.BindArguments(&input); err != nil {
			return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
		}
		if err := validation.ValidateIdentifier(input.Identifier); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("identifier: %v", err)), nil
		}
		form := strings.ToUpper(strings.TrimSpace(input.Form))
		if form != "" {
			if err := validation.ValidateForm(form); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("form: %v", err)), nil
			}
		}
		if err := validation.ValidateDateRange(input.StartDate, input.EndDate); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit, err := normalizeLimit(input.Limit, defaultFilingLimit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("limit: %v", err)), nil
		}

		filter := edgar.FilingFilter{
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
			Limit:     limit,
		}
		if form != "" {
			filter.Forms = []string{form}
		}

		filings, err := client.ListFilings(ctx, input.Identifier, filter)
		if err != nil {
			return upstreamErrorResult(ctx, err), nil
		}
		if len(filings) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf(
				"No filings found for %q matching the given criteria.", input.Identifier)), nil
		}

		return mcp.NewToolResultStructuredOnly(filingsResult{
			Identifier: input.Identifier,
			Count:      len(filings),
			Filings:    filings,
		}), nil
	}
}

// financialStatementsHandler extracts one statement from one filing.
func financialStatementsHandler(client edgar.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input financialStatementsInput
		if err := request.BindArguments(&input); err != nil {
			return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
		}
		if err := validation.ValidateIdentifier(input.Identifier); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("identifier: %v", err)), nil
		}
		kind, err := edgar.ParseStatementKind(input.Statement)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("statement: %v", err)), nil
		}
		form := strings.ToUpper(strings.TrimSpace(input.Form))
		if form == "" {
			form = "10-K"
		}
		if form != "10-K" && form != "10-Q" {
			return mcp.NewToolResultError(fmt.Sprintf(
				"form: statements can only be extracted from 10-K or 10-Q filings, got %q", input.Form)), nil
		}
		if input.FilingIndex < 0 {
			return mcp.NewToolResultError(fmt.Sprintf(
				"filing_index: must be non-negative, got %d", input.FilingIndex)), nil
		}

		stmt, err := client.FinancialStatement(ctx, input.Identifier, kind, form, input.FilingIndex)
		if err != nil {
			return upstreamErrorResult(ctx, err), nil
		}
		if stmt == nil {
			return mcp.NewToolResultText(fmt.Sprintf(
				"No %s available for %q: the filer has no %s filing with reported data.",
				input.Statement, input.Identifier, form)), nil
		}

		return mcp.NewToolResultStructuredOnly(stmt), nil
	}
}

// insiderTransactionsHandler retrieves Form 4 transactions.
func insiderTransactionsHandler(client edgar.Client) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input insiderTransactionsInput
		if err := request.BindArguments(&input); err != nil {
			return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
		}
		if err := validation.ValidateIdentifier(input.Identifier); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("identifier: %v", err)), nil
		}
		if err := validation.ValidateDateRange(input.StartDate, input.EndDate); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit, err := normalizeLimit(input.Limit, defaultTransactionLimit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("limit: %v", err)), nil
		}

		transactions, err := client.InsiderTransactions(ctx, input.Identifier, edgar.FilingFilter{
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
			Limit:     limit,
		})
		if err != nil {
			return upstreamErrorResult(ctx, err), nil
		}
		if len(transactions) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf(
				"No insider transactions found for %q matching the given criteria.", input.Identifier)), nil
		}

		return mcp.NewToolResultStructuredOnly(transactionsResult{
			Identifier:   input.Identifier,
			Count:        len(transactions),
			Transactions: transactions,
		}), nil
	}
}

// filingTextHandler extracts plain text from one filing, truncated to
// maxBytes with an explicit marker.
func filingTextHandler(client edgar.Client, maxBytes int) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input filingTextInput
		if err := request.BindArguments(&input); err != nil {
			return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
		}

		form := strings.ToUpper(strings.TrimSpace(input.Form))
		if input.AccessionNumber != "" {
			if err := validation.ValidateAccessionNumber(input.AccessionNumber); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("accession_number: %v", err)), nil
			}
		} else {
			if input.Identifier == "" || form == "" {
				return mcp.NewToolResultError(
					"either accession_number or both identifier and form are required"), nil
			}
			if err := validation.ValidateIdentifier(input.Identifier); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("identifier: %v", err)), nil
			}
			if err := validation.ValidateForm(form); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("form: %v", err)), nil
			}
		}
		if input.FilingIndex < 0 {
			return mcp.NewToolResultError(fmt.Sprintf(
				"filing_index: must be non-negative, got %d", input.FilingIndex)), nil
		}

		text, err := client.FilingText(ctx, edgar.FilingSelector{
			AccessionNumber: input.AccessionNumber,
			Identifier:      input.Identifier,
			Form:            form,
			Index:           input.FilingIndex,
		})
		if err != nil {
			return upstreamErrorResult(ctx, err), nil
		}
		if text == "" {
			return mcp.NewToolResultText(fmt.Sprintf(
				"No filing text found for %q.", selectorLabel(input))), nil
		}

		return mcp.NewToolResultText(truncateText(text, maxBytes)), nil
	}
}

// selectorLabel names the filing selection in no-result messages.
func selectorLabel(input filingTextInput) string {
	if input.AccessionNumber != "" {
		return input.AccessionNumber
	}
	return fmt.Sprintf("%s %s", input.Identifier, input.Form)
}

// truncateText caps text at max bytes on a rune boundary and appends an
// explicit truncation marker.
func truncateText(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + fmt.Sprintf("\n\n[truncated: showing %d of %d bytes]", cut, len(text))
}
