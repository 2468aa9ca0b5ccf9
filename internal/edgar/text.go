package edgar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// FilingText implements Client. The selector either names a filing directly
// by accession number or picks the index-th most recent filing of a form for
// an identifier. An empty string with nil error means the filer has no
// matching filing.
func (c *HTTPClient) FilingText(ctx context.Context, sel FilingSelector) (string, error) {
	if sel.AccessionNumber != "" {
		return c.filingTextByAccession(ctx, sel)
	}
	return c.filingTextByForm(ctx, sel)
}

// filingTextByAccession fetches the full submission text file for an
// accession number. The filer CIK is taken from the selector identifier when
// given, otherwise from the accession prefix (the submitting filer).
func (c *HTTPClient) filingTextByAccession(ctx context.Context, sel FilingSelector) (string, error) {
	cik := accessionCIK(sel.AccessionNumber)
	if sel.Identifier != "" {
		resolved, err := c.resolveCIK(ctx, sel.Identifier)
		if err != nil {
			return "", err
		}
		cik = resolved
	}
	if cik == "" {
		return "", fmt.Errorf("%w: cannot derive filer from accession number %q",
			ErrFilingNotFound, sel.AccessionNumber)
	}

	url := fmt.Sprintf("%s/Archives/edgar/data/%s/%s/%s.txt",
		c.archiveBaseURL, unpadCIK(cik), undashAccession(sel.AccessionNumber), sel.AccessionNumber)
	body, err := c.get(ctx, url)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return "", fmt.Errorf("%w: no filing with accession number %s",
				ErrFilingNotFound, sel.AccessionNumber)
		}
		return "", fmt.Errorf("failed to fetch filing %s: %w", sel.AccessionNumber, err)
	}
	return extractText(body), nil
}

// filingTextByForm picks the index-th most recent filing of the selected
// form and fetches its primary document.
func (c *HTTPClient) filingTextByForm(ctx context.Context, sel FilingSelector) (string, error) {
	filings, err := c.ListFilings(ctx, sel.Identifier, FilingFilter{Forms: []string{sel.Form}})
	if err != nil {
		return "", err
	}
	if len(filings) == 0 {
		// No filings of this form; not an error.
		return "", nil
	}
	if sel.Index < 0 || sel.Index >= len(filings) {
		return "", fmt.Errorf("%w: filing index %d out of range, filer has %d %s filings",
			ErrFilingNotFound, sel.Index, len(filings), sel.Form)
	}

	filing := filings[sel.Index]
	if filing.DocumentURL == "" {
		return "", fmt.Errorf("%w: filing %s has no primary document",
			ErrFilingNotFound, filing.AccessionNumber)
	}

	body, err := c.get(ctx, filing.DocumentURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch filing %s: %w", filing.AccessionNumber, err)
	}
	return extractText(body), nil
}

// accessionCIK derives the zero-padded submitter CIK from an accession
// number prefix. Returns "" when the shape is wrong.
func accessionCIK(accession string) string {
	parts := strings.Split(accession, "-")
	if len(parts) != 3 || len(parts[0]) != 10 {
		return ""
	}
	return parts[0]
}

// extractText reduces a filing document to plain text. HTML markup is
// stripped; plain text documents pass through with whitespace normalized.
func extractText(body []byte) string {
	if !bytes.Contains(body, []byte("<")) {
		return normalizeWhitespace(string(body))
	}
	return normalizeWhitespace(stripHTML(body))
}

// Tags whose content is never filing text.
var skippedTags = map[string]bool{
	"script": true,
	"style":  true,
	"title":  true,
}

// Tags that end a line of running text.
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "tr": true, "li": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// stripHTML walks the token stream and keeps the text content.
func stripHTML(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	var b strings.Builder
	skip := ""

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// io.EOF or malformed tail; either way the text so far stands.
			return b.String()
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if skippedTags[tag] {
				skip = tag
			}
			if blockTags[tag] {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if tag == skip {
				skip = ""
			}
			if blockTags[tag] {
				b.WriteByte('\n')
			}
		case html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			if blockTags[string(name)] {
				b.WriteByte('\n')
			}
		case html.TextToken:
			if skip == "" {
				b.Write(tokenizer.Text())
			}
		}
	}
}

// normalizeWhitespace collapses runs of spaces within lines and runs of
// blank lines between them.
func normalizeWhitespace(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		lines = append(lines, strings.Join(fields, " "))
	}
	return strings.Join(lines, "\n")
}
