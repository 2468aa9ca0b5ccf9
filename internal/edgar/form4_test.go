package edgar

import (
	"encoding/xml"
	"testing"
)

func TestRawOwnershipDocument(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"xslF345X05/wk-form4.xml", "wk-form4.xml"},
		{"wk-form4.xml", "wk-form4.xml"},
		{"", ""},
	}
	for _, c := range cases {
		if got := rawOwnershipDocument(c.in); got != c.want {
			t.Errorf("rawOwnershipDocument(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestOwnerRole(t *testing.T) {
	t.Run("director and officer combine", func(t *testing.T) {
		got := ownerRole("1", "1", "0", "Chief Executive Officer", "")
		if got != "Director, Chief Executive Officer" {
			t.Errorf("unexpected role: %q", got)
		}
	})

	t.Run("officer without title", func(t *testing.T) {
		if got := ownerRole("0", "true", "0", "", ""); got != "Officer" {
			t.Errorf("unexpected role: %q", got)
		}
	})

	t.Run("ten percent owner", func(t *testing.T) {
		if got := ownerRole("0", "0", "1", "", ""); got != "10% Owner" {
			t.Errorf("unexpected role: %q", got)
		}
	})

	t.Run("other text fallback", func(t *testing.T) {
		if got := ownerRole("0", "0", "0", "", "Trustee"); got != "Trustee" {
			t.Errorf("unexpected role: %q", got)
		}
	})

	t.Run("no flags", func(t *testing.T) {
		if got := ownerRole("0", "0", "0", "", ""); got != "" {
			t.Errorf("expected empty role, got %q", got)
		}
	})
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1000", 1000},
		{"170.5", 170.5},
		{" 42 ", 42},
		{"", 0},
		{"n/a", 0},
	}
	for _, c := range cases {
		if got := parseAmount(c.in); got != c.want {
			t.Errorf("parseAmount(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestInDateRange(t *testing.T) {
	cases := []struct {
		date, start, end string
		want             bool
	}{
		{"2023-11-01", "", "", true},
		{"2023-11-01", "2023-10-01", "2023-11-02", true},
		{"2023-11-01", "2023-11-01", "2023-11-01", true},
		{"2023-11-01", "2023-11-02", "", false},
		{"2023-11-01", "", "2023-10-31", false},
	}
	for _, c := range cases {
		if got := inDateRange(c.date, c.start, c.end); got != c.want {
			t.Errorf("inDateRange(%q, %q, %q) = %v, want %v", c.date, c.start, c.end, got, c.want)
		}
	}
}

func TestFlattenOwnership(t *testing.T) {
	var doc ownershipDocument
	if err := xml.Unmarshal([]byte(appleForm4Fixture), &doc); err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	filing := Filing{AccessionNumber: "0000320193-23-000111"}
	transactions := flattenOwnership(&doc, filing)
	if len(transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(transactions))
	}

	tx := transactions[0]
	if tx.Insider != "DOE JANE" {
		t.Errorf("expected insider DOE JANE, got %q", tx.Insider)
	}
	if tx.Role != "Senior Vice President" {
		t.Errorf("expected officer title role, got %q", tx.Role)
	}
	if tx.Ownership != "D" {
		t.Errorf("expected direct ownership, got %q", tx.Ownership)
	}
	if tx.AccessionNumber != filing.AccessionNumber {
		t.Errorf("expected accession %q, got %q", filing.AccessionNumber, tx.AccessionNumber)
	}
}
