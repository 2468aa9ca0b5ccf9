package edgar

import (
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// How many Form 4 documents to fetch when the caller gives no limit. Each
// document is a separate archive request, so the default stays small.
const defaultForm4Fetch = 20

// ownershipDocument mirrors the SEC Form 3/4/5 primary XML document, limited
// to the fields reported as insider transactions.
type ownershipDocument struct {
	XMLName        xml.Name `xml:"ownershipDocument"`
	ReportingOwner []struct {
		ID struct {
			Name string `xml:"rptOwnerName"`
		} `xml:"reportingOwnerId"`
		Relationship struct {
			IsDirector   string `xml:"isDirector"`
			IsOfficer    string `xml:"isOfficer"`
			IsTenPercent string `xml:"isTenPercentOwner"`
			IsOther      string `xml:"isOther"`
			OfficerTitle string `xml:"officerTitle"`
			OtherText    string `xml:"otherText"`
		} `xml:"reportingOwnerRelationship"`
	} `xml:"reportingOwner"`
	NonDerivativeTable struct {
		Transactions []nonDerivativeTransaction `xml:"nonDerivativeTransaction"`
	} `xml:"nonDerivativeTable"`
}

type nonDerivativeTransaction struct {
	Date struct {
		Value string `xml:"value"`
	} `xml:"transactionDate"`
	Coding struct {
		Code string `xml:"transactionCode"`
	} `xml:"transactionCoding"`
	Amounts struct {
		Shares struct {
			Value string `xml:"value"`
		} `xml:"transactionShares"`
		PricePerShare struct {
			Value string `xml:"value"`
		} `xml:"transactionPricePerShare"`
		AcquiredDisposed struct {
			Value string `xml:"value"`
		} `xml:"transactionAcquiredDisposedCode"`
	} `xml:"transactionAmounts"`
	PostAmounts struct {
		SharesOwned struct {
			Value string `xml:"value"`
		} `xml:"sharesOwnedFollowingTransaction"`
	} `xml:"postTransactionAmounts"`
	Ownership struct {
		DirectOrIndirect struct {
			Value string `xml:"value"`
		} `xml:"directOrIndirectOwnership"`
	} `xml:"ownershipNature"`
}

// InsiderTransactions implements Client. It lists the filer's Form 4
// submissions, fetches each primary XML document and flattens the reported
// non-derivative transactions.
func (c *HTTPClient) InsiderTransactions(ctx context.Context, identifier string, filter FilingFilter) ([]Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultForm4Fetch
	}

	// The date range applies to transaction dates. A filing cannot predate
	// the transactions it reports, so the start bound also prunes filings;
	// the end bound does not, since a transaction inside the range may be
	// filed days after it closes.
	filings, err := c.ListFilings(ctx, identifier, FilingFilter{
		Forms:     []string{"4"},
		StartDate: filter.StartDate,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	cik, err := c.resolveCIK(ctx, identifier)
	if err != nil {
		return nil, err
	}

	var transactions []Transaction
	for _, filing := range filings {
		doc, err := c.fetchOwnership(ctx, cik, filing)
		if err != nil {
			// A single unreadable document should not sink the whole listing.
			c.logger.Warn("Skipping unreadable Form 4 document",
				"accession", filing.AccessionNumber, "error", err)
			continue
		}
		for _, tx := range flattenOwnership(doc, filing) {
			if !inDateRange(tx.Date, filter.StartDate, filter.EndDate) {
				continue
			}
			transactions = append(transactions, tx)
		}
		if len(transactions) >= limit {
			transactions = transactions[:limit]
			break
		}
	}

	return transactions, nil
}

// inDateRange checks a date against inclusive bounds; empty bounds are open.
func inDateRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

// fetchOwnership retrieves and parses one Form 4 primary XML document.
func (c *HTTPClient) fetchOwnership(ctx context.Context, cik string, filing Filing) (*ownershipDocument, error) {
	doc := rawOwnershipDocument(filing.PrimaryDocument)
	if doc == "" {
		return nil, fmt.Errorf("filing %s has no primary document", filing.AccessionNumber)
	}

	url := c.documentURL(cik, filing.AccessionNumber, doc)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var ownership ownershipDocument
	if err := xml.Unmarshal(body, &ownership); err != nil {
		return nil, fmt.Errorf("failed to parse ownership document %s: %w", doc, err)
	}
	return &ownership, nil
}

// rawOwnershipDocument strips the XSL rendering prefix the submissions index
// sometimes carries (xslF345X05/form4.xml -> form4.xml); the raw XML lives
// at the top of the filing directory.
func rawOwnershipDocument(primary string) string {
	if primary == "" {
		return ""
	}
	if i := strings.LastIndex(primary, "/"); i >= 0 {
		return primary[i+1:]
	}
	return primary
}

// flattenOwnership converts one parsed document into transaction rows.
func flattenOwnership(doc *ownershipDocument, filing Filing) []Transaction {
	insider := ""
	role := ""
	if len(doc.ReportingOwner) > 0 {
		owner := doc.ReportingOwner[0]
		insider = owner.ID.Name
		role = ownerRole(
			owner.Relationship.IsDirector,
			owner.Relationship.IsOfficer,
			owner.Relationship.IsTenPercent,
			owner.Relationship.OfficerTitle,
			owner.Relationship.OtherText,
		)
	}

	out := make([]Transaction, 0, len(doc.NonDerivativeTable.Transactions))
	for _, tx := range doc.NonDerivativeTable.Transactions {
		out = append(out, Transaction{
			Insider:          insider,
			Role:             role,
			Date:             tx.Date.Value,
			Code:             tx.Coding.Code,
			Shares:           parseAmount(tx.Amounts.Shares.Value),
			PricePerShare:    parseAmount(tx.Amounts.PricePerShare.Value),
			AcquiredDisposed: tx.Amounts.AcquiredDisposed.Value,
			SharesOwnedAfter: parseAmount(tx.PostAmounts.SharesOwned.Value),
			Ownership:        tx.Ownership.DirectOrIndirect.Value,
			AccessionNumber:  filing.AccessionNumber,
		})
	}
	return out
}

// ownerRole summarizes the reporting owner relationship flags.
func ownerRole(isDirector, isOfficer, isTenPercent, officerTitle, otherText string) string {
	var roles []string
	if truthyFlag(isDirector) {
		roles = append(roles, "Director")
	}
	if truthyFlag(isOfficer) {
		if officerTitle != "" {
			roles = append(roles, officerTitle)
		} else {
			roles = append(roles, "Officer")
		}
	}
	if truthyFlag(isTenPercent) {
		roles = append(roles, "10% Owner")
	}
	if len(roles) == 0 && otherText != "" {
		roles = append(roles, otherText)
	}
	return strings.Join(roles, ", ")
}

// truthyFlag handles the "1"/"true" variants Form 4 documents use.
func truthyFlag(s string) bool {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "1", "true":
		return true
	}
	return false
}

// parseAmount parses a numeric value element, tolerating empty elements for
// transactions that omit a price (grants, gifts).
func parseAmount(s string) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return v
}
