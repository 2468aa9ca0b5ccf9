package edgar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"edgarmcp/internal/config"
	"edgarmcp/internal/logging"
	"edgarmcp/internal/validation"
)

const (
	defaultDataBaseURL    = "https://data.sec.gov"
	defaultArchiveBaseURL = "https://www.sec.gov"

	// maxDocumentBytes bounds how much of a filing document is read. Filing
	// text is truncated far below this anyway; the bound keeps a pathological
	// document from exhausting memory.
	maxDocumentBytes = 8 << 20
)

var errNotFound = errors.New("resource not found")

// HTTPClient implements Client against SEC EDGAR's public JSON and XML
// endpoints. It holds no mutable state after the first ticker-map load, so
// concurrent use from multiple in-flight tool calls is safe.
type HTTPClient struct {
	userAgent      string
	httpc          *http.Client
	logger         *logging.AppLogger
	dataBaseURL    string
	archiveBaseURL string

	// Ticker resolution table, fetched once on first use and read-only after.
	tickerMu sync.Mutex
	tickers  map[string]string
}

// Option adjusts an HTTPClient, used by tests to point at a fake upstream.
type Option func(*HTTPClient)

// WithBaseURLs overrides the data and archive endpoints.
func WithBaseURLs(data, archive string) Option {
	return func(c *HTTPClient) {
		c.dataBaseURL = strings.TrimRight(data, "/")
		c.archiveBaseURL = strings.TrimRight(archive, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpc = httpc
	}
}

// NewHTTPClient builds the production EDGAR client. The configured contact
// identity becomes the User-Agent on every request, per the SEC's fair
// access policy.
func NewHTTPClient(cfg *config.Config, logger *logging.AppLogger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		userAgent:      fmt.Sprintf("edgarmcp (%s)", cfg.UserEmail),
		httpc:          &http.Client{Timeout: cfg.HTTPTimeout()},
		logger:         logger,
		dataBaseURL:    defaultDataBaseURL,
		archiveBaseURL: defaultArchiveBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs one GET with the identity header and returns the body.
func (c *HTTPClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("EDGAR request", "url", url)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", errNotFound, url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("request to %s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	return body, nil
}

// getJSON performs one GET and decodes the JSON body into v.
func (c *HTTPClient) getJSON(ctx context.Context, url string, v any) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

// tickerEntry is one row of the SEC company_tickers.json map.
type tickerEntry struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// loadTickers fetches the ticker-to-CIK table once per process.
func (c *HTTPClient) loadTickers(ctx context.Context) (map[string]string, error) {
	c.tickerMu.Lock()
	defer c.tickerMu.Unlock()

	if c.tickers != nil {
		return c.tickers, nil
	}

	url := c.archiveBaseURL + "/files/company_tickers.json"
	var entries map[string]tickerEntry
	if err := c.getJSON(ctx, url, &entries); err != nil {
		return nil, fmt.Errorf("failed to load ticker table: %w", err)
	}

	tickers := make(map[string]string, len(entries))
	for _, e := range entries {
		cik, err := validation.NormalizeCIK(fmt.Sprintf("%d", e.CIK))
		if err != nil {
			continue
		}
		tickers[strings.ToUpper(e.Ticker)] = cik
	}

	c.tickers = tickers
	c.logger.Debug("Ticker table loaded", "entries", len(tickers))
	return tickers, nil
}

// resolveCIK turns a ticker or CIK identifier into a zero-padded CIK.
func (c *HTTPClient) resolveCIK(ctx context.Context, identifier string) (string, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return "", FilerNotFoundError(identifier)
	}

	if validation.IsCIK(trimmed) {
		cik, err := validation.NormalizeCIK(trimmed)
		if err != nil {
			return "", FilerNotFoundError(identifier)
		}
		return cik, nil
	}

	tickers, err := c.loadTickers(ctx)
	if err != nil {
		return "", err
	}
	cik, ok := tickers[strings.ToUpper(trimmed)]
	if !ok {
		return "", FilerNotFoundError(identifier)
	}
	return cik, nil
}

// submissionsResponse mirrors the data.sec.gov submissions document, limited
// to the fields this server reports.
type submissionsResponse struct {
	CIK            string   `json:"cik"`
	Name           string   `json:"name"`
	SIC            string   `json:"sic"`
	SICDescription string   `json:"sicDescription"`
	Tickers        []string `json:"tickers"`
	Exchanges      []string `json:"exchanges"`
	Filings        struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			FilingDate      []string `json:"filingDate"`
			ReportDate      []string `json:"reportDate"`
			Form            []string `json:"form"`
			PrimaryDocument []string `json:"primaryDocument"`
		} `json:"recent"`
	} `json:"filings"`
}

// fetchSubmissions loads the recent submissions index for a CIK.
func (c *HTTPClient) fetchSubmissions(ctx context.Context, cik string) (*submissionsResponse, error) {
	url := fmt.Sprintf("%s/submissions/CIK%s.json", c.dataBaseURL, cik)
	var subs submissionsResponse
	if err := c.getJSON(ctx, url, &subs); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, FilerNotFoundError(cik)
		}
		return nil, err
	}
	return &subs, nil
}

// ResolveCompany implements Client.
func (c *HTTPClient) ResolveCompany(ctx context.Context, identifier string) (*Company, error) {
	cik, err := c.resolveCIK(ctx, identifier)
	if err != nil {
		return nil, err
	}

	subs, err := c.fetchSubmissions(ctx, cik)
	if err != nil {
		if errors.Is(err, ErrFilerNotFound) {
			return nil, FilerNotFoundError(identifier)
		}
		return nil, err
	}

	company := &Company{
		CIK:               cik,
		Name:              subs.Name,
		SIC:               subs.SIC,
		SICDescription:    subs.SICDescription,
		RecentFilingCount: len(subs.Filings.Recent.AccessionNumber),
	}
	if len(subs.Tickers) > 0 {
		company.Ticker = subs.Tickers[0]
	}
	if len(subs.Exchanges) > 0 {
		company.Exchange = subs.Exchanges[0]
	}
	return company, nil
}

// ListFilings implements Client.
func (c *HTTPClient) ListFilings(ctx context.Context, identifier string, filter FilingFilter) ([]Filing, error) {
	cik, err := c.resolveCIK(ctx, identifier)
	if err != nil {
		return nil, err
	}

	subs, err := c.fetchSubmissions(ctx, cik)
	if err != nil {
		if errors.Is(err, ErrFilerNotFound) {
			return nil, FilerNotFoundError(identifier)
		}
		return nil, err
	}

	recent := subs.Filings.Recent
	filings := make([]Filing, 0, len(recent.AccessionNumber))
	for i := range recent.AccessionNumber {
		f := Filing{
			AccessionNumber: recent.AccessionNumber[i],
		}
		if i < len(recent.Form) {
			f.Form = recent.Form[i]
		}
		if i < len(recent.FilingDate) {
			f.FilingDate = recent.FilingDate[i]
		}
		if i < len(recent.ReportDate) {
			f.ReportDate = recent.ReportDate[i]
		}
		if i < len(recent.PrimaryDocument) {
			f.PrimaryDocument = recent.PrimaryDocument[i]
		}
		f.DocumentURL = c.documentURL(cik, f.AccessionNumber, f.PrimaryDocument)
		filings = append(filings, f)
	}

	return FilterFilings(filings, filter), nil
}

// documentURL builds the archive URL for one filing document.
func (c *HTTPClient) documentURL(cik, accession, document string) string {
	if accession == "" || document == "" {
		return ""
	}
	return fmt.Sprintf("%s/Archives/edgar/data/%s/%s/%s",
		c.archiveBaseURL, unpadCIK(cik), undashAccession(accession), document)
}

// unpadCIK strips leading zeros; archive paths use the short form.
func unpadCIK(cik string) string {
	trimmed := strings.TrimLeft(cik, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// undashAccession strips dashes; archive directories use the compact form.
func undashAccession(accession string) string {
	return strings.ReplaceAll(accession, "-", "")
}
