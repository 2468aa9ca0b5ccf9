package edgar

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// statementConcept pairs a us-gaap concept tag with the label it is reported
// under. Concepts are projected in table order so statements read top-down
// the way the filings present them.
type statementConcept struct {
	tag   string
	label string
}

// The concept tables cover the primary line items companies tag under each
// statement. Filers that use different extension tags for a line simply have
// that line absent; absence is not an error.
var statementConcepts = map[StatementKind][]statementConcept{
	BalanceSheet: {
		{"CashAndCashEquivalentsAtCarryingValue", "Cash and cash equivalents"},
		{"MarketableSecuritiesCurrent", "Marketable securities, current"},
		{"AccountsReceivableNetCurrent", "Accounts receivable, net"},
		{"InventoryNet", "Inventories"},
		{"AssetsCurrent", "Total current assets"},
		{"PropertyPlantAndEquipmentNet", "Property, plant and equipment, net"},
		{"Goodwill", "Goodwill"},
		{"Assets", "Total assets"},
		{"AccountsPayableCurrent", "Accounts payable"},
		{"LiabilitiesCurrent", "Total current liabilities"},
		{"LongTermDebtNoncurrent", "Long-term debt"},
		{"Liabilities", "Total liabilities"},
		{"RetainedEarningsAccumulatedDeficit", "Retained earnings (accumulated deficit)"},
		{"StockholdersEquity", "Total stockholders' equity"},
	},
	IncomeStatement: {
		{"RevenueFromContractWithCustomerExcludingAssessedTax", "Net revenue"},
		{"Revenues", "Total revenues"},
		{"CostOfGoodsAndServicesSold", "Cost of sales"},
		{"CostOfRevenue", "Cost of revenue"},
		{"GrossProfit", "Gross profit"},
		{"ResearchAndDevelopmentExpense", "Research and development"},
		{"SellingGeneralAndAdministrativeExpense", "Selling, general and administrative"},
		{"OperatingExpenses", "Total operating expenses"},
		{"OperatingIncomeLoss", "Operating income"},
		{"IncomeTaxExpenseBenefit", "Provision for income taxes"},
		{"NetIncomeLoss", "Net income"},
		{"EarningsPerShareBasic", "Earnings per share, basic"},
		{"EarningsPerShareDiluted", "Earnings per share, diluted"},
	},
	CashFlow: {
		{"NetCashProvidedByUsedInOperatingActivities", "Net cash provided by operating activities"},
		{"PaymentsToAcquirePropertyPlantAndEquipment", "Payments for property, plant and equipment"},
		{"NetCashProvidedByUsedInInvestingActivities", "Net cash used in investing activities"},
		{"PaymentsOfDividends", "Dividends paid"},
		{"PaymentsForRepurchaseOfCommonStock", "Repurchases of common stock"},
		{"NetCashProvidedByUsedInFinancingActivities", "Net cash used in financing activities"},
		{"CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalentsPeriodIncreaseDecreaseIncludingExchangeRateEffect", "Net change in cash"},
	},
}

// companyFactsResponse mirrors the data.sec.gov companyfacts document,
// limited to the us-gaap taxonomy this server projects.
type companyFactsResponse struct {
	EntityName string                         `json:"entityName"`
	Facts      map[string]map[string]gaapFact `json:"facts"`
}

type gaapFact struct {
	Label string                `json:"label"`
	Units map[string][]factUnit `json:"units"`
}

type factUnit struct {
	Start           string  `json:"start,omitempty"`
	End             string  `json:"end"`
	Value           float64 `json:"val"`
	AccessionNumber string  `json:"accn"`
	Form            string  `json:"form"`
	Filed           string  `json:"filed"`
	Frame           string  `json:"frame,omitempty"`
}

// preferred unit order for reported values.
var unitPreference = []string{"USD", "USD/shares", "shares"}

// FinancialStatement implements Client. It anchors the statement to the
// index-th most recent filing of the given form, then projects the facts
// that filing reported.
func (c *HTTPClient) FinancialStatement(ctx context.Context, identifier string, kind StatementKind, form string, index int) (*Statement, error) {
	concepts, ok := statementConcepts[kind]
	if !ok {
		return nil, fmt.Errorf("unknown statement kind %q", kind)
	}

	filings, err := c.ListFilings(ctx, identifier, FilingFilter{Forms: []string{form}})
	if err != nil {
		return nil, err
	}
	if len(filings) == 0 {
		// No filings of this form on record; not an error.
		return nil, nil
	}
	if index < 0 || index >= len(filings) {
		return nil, fmt.Errorf("%w: filing index %d out of range, filer has %d %s filings",
			ErrFilingNotFound, index, len(filings), form)
	}
	filing := filings[index]

	cik, err := c.resolveCIK(ctx, identifier)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/xbrl/companyfacts/CIK%s.json", c.dataBaseURL, cik)
	var facts companyFactsResponse
	if err := c.getJSON(ctx, url, &facts); err != nil {
		if errors.Is(err, errNotFound) {
			// Filer exists but has never reported XBRL facts.
			return nil, nil
		}
		return nil, err
	}

	gaap := facts.Facts["us-gaap"]
	stmt := &Statement{
		Kind:            kind,
		Form:            filing.Form,
		AccessionNumber: filing.AccessionNumber,
		FilingDate:      filing.FilingDate,
	}

	periods := map[string]bool{}
	for _, concept := range concepts {
		fact, ok := gaap[concept.tag]
		if !ok {
			continue
		}

		unit, values := pickUnit(fact.Units)
		item := LineItem{Label: concept.label, Unit: unit, Values: map[string]float64{}}
		chosen := map[string]factUnit{}
		for _, v := range values {
			if v.AccessionNumber != filing.AccessionNumber {
				continue
			}
			if prev, ok := chosen[v.End]; ok && !preferPeriod(v, prev, filing.Form) {
				continue
			}
			chosen[v.End] = v
		}
		for end, v := range chosen {
			item.Values[end] = v.Value
			periods[end] = true
		}
		if len(item.Values) > 0 {
			stmt.LineItems = append(stmt.LineItems, item)
		}
	}

	if len(stmt.LineItems) == 0 {
		// The filing reported none of the projected concepts.
		return nil, nil
	}

	for p := range periods {
		stmt.Periods = append(stmt.Periods, p)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(stmt.Periods)))

	return stmt, nil
}

// preferPeriod reports whether a should replace b when both cover the same
// period end within one filing. Annual reports tag duration concepts for both
// the fiscal year and the fourth quarter with the same end date; the fiscal
// year (earlier start) wins in a 10-K, the discrete quarter (later start)
// wins in a 10-Q. Instant concepts carry no start date and never conflict.
func preferPeriod(a, b factUnit, form string) bool {
	if a.Start == "" || b.Start == "" || a.Start == b.Start {
		return false
	}
	if form == "10-Q" {
		return a.Start > b.Start
	}
	return a.Start < b.Start
}

// pickUnit chooses the reporting unit for a fact, preferring USD.
func pickUnit(units map[string][]factUnit) (string, []factUnit) {
	for _, name := range unitPreference {
		if values, ok := units[name]; ok {
			return name, values
		}
	}
	for name, values := range units {
		return name, values
	}
	return "", nil
}
