// Package edgar is the boundary to SEC EDGAR. It defines the narrow client
// interface the MCP handlers call, the transient domain values that cross it,
// and a production implementation over the SEC's published JSON and XML
// endpoints. Handlers depend only on the Client interface so the upstream
// source can be swapped or faked in tests.
package edgar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrFilerNotFound reports that a ticker or CIK could not be resolved to a
// filer. Callers wrap it with the identifier they were given.
var ErrFilerNotFound = errors.New("filer not found")

// ErrFilingNotFound reports that a specific filing (by accession number or
// index) does not exist for the filer.
var ErrFilingNotFound = errors.New("filing not found")

// FilerNotFoundError wraps ErrFilerNotFound naming the exact identifier the
// caller supplied.
func FilerNotFoundError(identifier string) error {
	return fmt.Errorf("%w: %q", ErrFilerNotFound, identifier)
}

// Company is the resolved view of a filer.
type Company struct {
	CIK            string `json:"cik"`
	Name           string `json:"name"`
	Ticker         string `json:"ticker,omitempty"`
	Exchange       string `json:"exchange,omitempty"`
	SIC            string `json:"sic,omitempty"`
	SICDescription string `json:"sic_description,omitempty"`
	// RecentFilingCount summarizes how many filings the recent submissions
	// index carries for the filer.
	RecentFilingCount int `json:"recent_filing_count"`
}

// Filing is a single submission from the filer's recent index.
type Filing struct {
	Form            string `json:"form"`
	FilingDate      string `json:"filing_date"`
	ReportDate      string `json:"report_date,omitempty"`
	AccessionNumber string `json:"accession_number"`
	PrimaryDocument string `json:"primary_document,omitempty"`
	DocumentURL     string `json:"document_url,omitempty"`
}

// FilingFilter narrows a filing listing. Zero values mean "no constraint".
type FilingFilter struct {
	// Forms restricts results to these form codes (exact match after
	// uppercasing). Empty means all forms.
	Forms []string
	// StartDate and EndDate bound the filing date, inclusive, YYYY-MM-DD.
	StartDate string
	EndDate   string
	// Limit caps the number of results after filtering and ordering.
	Limit int
}

// FilingSelector names one filing either directly by accession number or by
// company identifier plus form type and index (0 = most recent).
type FilingSelector struct {
	AccessionNumber string
	Identifier      string
	Form            string
	Index           int
}

// StatementKind enumerates the financial statements that can be extracted.
type StatementKind string

const (
	BalanceSheet    StatementKind = "balance_sheet"
	IncomeStatement StatementKind = "income_statement"
	CashFlow        StatementKind = "cash_flow"
)

// ParseStatementKind validates a statement kind argument.
func ParseStatementKind(s string) (StatementKind, error) {
	switch StatementKind(strings.ToLower(strings.TrimSpace(s))) {
	case BalanceSheet:
		return BalanceSheet, nil
	case IncomeStatement:
		return IncomeStatement, nil
	case CashFlow:
		return CashFlow, nil
	default:
		return "", fmt.Errorf("unknown statement kind %q: expected balance_sheet, income_statement or cash_flow", s)
	}
}

// LineItem is one reported line of a financial statement: a label and the
// value per period end date.
type LineItem struct {
	Label  string             `json:"label"`
	Unit   string             `json:"unit"`
	Values map[string]float64 `json:"values"`
}

// Statement is a financial statement extracted from one filing.
type Statement struct {
	Kind            StatementKind `json:"statement"`
	Form            string        `json:"form"`
	AccessionNumber string        `json:"accession_number"`
	FilingDate      string        `json:"filing_date"`
	// Periods lists the period end dates covered, most recent first.
	Periods   []string   `json:"periods"`
	LineItems []LineItem `json:"line_items"`
}

// Transaction is one insider (Form 4) transaction row.
type Transaction struct {
	Insider          string  `json:"insider"`
	Role             string  `json:"role,omitempty"`
	Date             string  `json:"date"`
	Code             string  `json:"code"`
	Shares           float64 `json:"shares"`
	PricePerShare    float64 `json:"price_per_share"`
	AcquiredDisposed string  `json:"acquired_disposed,omitempty"`
	SharesOwnedAfter float64 `json:"shares_owned_after"`
	Ownership        string  `json:"ownership,omitempty"`
	AccessionNumber  string  `json:"accession_number"`
}

// Client is the capability set the handlers need from EDGAR. Empty results
// are returned as empty slices or nil pointers with a nil error; absence of
// data is not a failure.
type Client interface {
	// ResolveCompany resolves a ticker or CIK to a filer.
	ResolveCompany(ctx context.Context, identifier string) (*Company, error)
	// ListFilings returns the filer's filings matching the filter, ordered
	// by filing date descending then accession number descending.
	ListFilings(ctx context.Context, identifier string, filter FilingFilter) ([]Filing, error)
	// FinancialStatement extracts one statement from the index-th most
	// recent filing of the given form. A nil statement with nil error means
	// no matching filing or no reported facts.
	FinancialStatement(ctx context.Context, identifier string, kind StatementKind, form string, index int) (*Statement, error)
	// InsiderTransactions returns Form 4 transactions for the filer.
	InsiderTransactions(ctx context.Context, identifier string, filter FilingFilter) ([]Transaction, error)
	// FilingText fetches the selected filing's document and reduces it to
	// plain text. Truncation is the caller's concern.
	FilingText(ctx context.Context, sel FilingSelector) (string, error)
}

// FilterFilings applies the filter to a filing list and returns a new slice
// ordered by filing date descending, accession number descending as the
// tie-break. The ordering is stable for unchanged input, so repeated calls
// with the same filter are idempotent.
func FilterFilings(filings []Filing, filter FilingFilter) []Filing {
	forms := make(map[string]bool, len(filter.Forms))
	for _, f := range filter.Forms {
		forms[strings.ToUpper(strings.TrimSpace(f))] = true
	}

	out := make([]Filing, 0, len(filings))
	for _, f := range filings {
		if len(forms) > 0 && !forms[strings.ToUpper(f.Form)] {
			continue
		}
		if filter.StartDate != "" && f.FilingDate < filter.StartDate {
			continue
		}
		if filter.EndDate != "" && f.FilingDate > filter.EndDate {
			continue
		}
		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].FilingDate != out[j].FilingDate {
			return out[i].FilingDate > out[j].FilingDate
		}
		return out[i].AccessionNumber > out[j].AccessionNumber
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}
