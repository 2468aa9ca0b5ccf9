package validation

import (
	"testing"
)

func TestNormalizeCIK(t *testing.T) {
	t.Run("pads short cik", func(t *testing.T) {
		got, err := NormalizeCIK("320193")
		if err != nil {
			t.Fatalf("expected valid cik, got error: %v", err)
		}
		if got != "0000320193" {
			t.Errorf("expected 0000320193, got %q", got)
		}
	})

	t.Run("keeps full-width cik", func(t *testing.T) {
		got, err := NormalizeCIK("0000320193")
		if err != nil {
			t.Fatalf("expected valid cik, got error: %v", err)
		}
		if got != "0000320193" {
			t.Errorf("expected 0000320193, got %q", got)
		}
	})

	t.Run("empty cik", func(t *testing.T) {
		_, err := NormalizeCIK("")
		if err == nil || err.Error() != "cik is empty" {
			t.Errorf("expected 'cik is empty', got: %v", err)
		}
	})

	t.Run("non-digit cik", func(t *testing.T) {
		_, err := NormalizeCIK("32O193")
		if err == nil {
			t.Error("expected error for non-digit cik")
		}
	})

	t.Run("too long", func(t *testing.T) {
		_, err := NormalizeCIK("12345678901")
		if err == nil {
			t.Error("expected error for 11-digit cik")
		}
	})
}

func TestIsCIK(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"320193", true},
		{"0000320193", true},
		{"AAPL", false},
		{"BRK.B", false},
		{"", false},
		{"12A4", false},
	}
	for _, c := range cases {
		if got := IsCIK(c.in); got != c.want {
			t.Errorf("IsCIK(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestValidateTicker(t *testing.T) {
	t.Run("plain ticker", func(t *testing.T) {
		if err := ValidateTicker("AAPL"); err != nil {
			t.Errorf("expected valid ticker, got: %v", err)
		}
	})

	t.Run("class suffix with dot", func(t *testing.T) {
		if err := ValidateTicker("BRK.B"); err != nil {
			t.Errorf("expected valid ticker, got: %v", err)
		}
	})

	t.Run("class suffix with hyphen", func(t *testing.T) {
		if err := ValidateTicker("BF-B"); err != nil {
			t.Errorf("expected valid ticker, got: %v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		err := ValidateTicker("")
		if err == nil || err.Error() != "ticker is empty" {
			t.Errorf("expected 'ticker is empty', got: %v", err)
		}
	})

	t.Run("leading dot", func(t *testing.T) {
		if err := ValidateTicker(".AAPL"); err == nil {
			t.Error("expected error for leading dot")
		}
	})

	t.Run("lowercase rejected", func(t *testing.T) {
		if err := ValidateTicker("aapl"); err == nil {
			t.Error("expected error for lowercase ticker")
		}
	})

	t.Run("too long", func(t *testing.T) {
		if err := ValidateTicker("ABCDEFGHIJK"); err == nil {
			t.Error("expected error for 11-character ticker")
		}
	})
}

func TestValidateIdentifier(t *testing.T) {
	t.Run("ticker", func(t *testing.T) {
		if err := ValidateIdentifier("AAPL"); err != nil {
			t.Errorf("expected valid identifier, got: %v", err)
		}
	})

	t.Run("lowercase ticker normalized", func(t *testing.T) {
		if err := ValidateIdentifier("aapl"); err != nil {
			t.Errorf("expected lowercase ticker to validate after upcasing, got: %v", err)
		}
	})

	t.Run("cik", func(t *testing.T) {
		if err := ValidateIdentifier("0000320193"); err != nil {
			t.Errorf("expected valid identifier, got: %v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		err := ValidateIdentifier("  ")
		if err == nil || err.Error() != "identifier is empty" {
			t.Errorf("expected 'identifier is empty', got: %v", err)
		}
	})
}

func TestValidateDate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		if err := ValidateDate("2024-02-29"); err != nil {
			t.Errorf("expected valid date, got: %v", err)
		}
	})

	t.Run("wrong layout", func(t *testing.T) {
		if err := ValidateDate("02/29/2024"); err == nil {
			t.Error("expected error for non-ISO date")
		}
	})

	t.Run("impossible day", func(t *testing.T) {
		if err := ValidateDate("2023-02-29"); err == nil {
			t.Error("expected error for invalid calendar date")
		}
	})
}

func TestValidateDateRange(t *testing.T) {
	t.Run("open ended", func(t *testing.T) {
		if err := ValidateDateRange("", ""); err != nil {
			t.Errorf("expected open range to be valid, got: %v", err)
		}
	})

	t.Run("ordered", func(t *testing.T) {
		if err := ValidateDateRange("2023-01-01", "2023-12-31"); err != nil {
			t.Errorf("expected valid range, got: %v", err)
		}
	})

	t.Run("inverted", func(t *testing.T) {
		if err := ValidateDateRange("2023-12-31", "2023-01-01"); err == nil {
			t.Error("expected error for inverted range")
		}
	})

	t.Run("bad start", func(t *testing.T) {
		err := ValidateDateRange("nope", "2023-01-01")
		if err == nil {
			t.Fatal("expected error for malformed start date")
		}
	})
}

func TestValidateForm(t *testing.T) {
	for _, form := range []string{"10-K", "10-Q", "8-K", "4", "S-1/A", "DEF 14A"} {
		err := ValidateForm(form)
		if form == "DEF 14A" {
			if err == nil {
				t.Error("expected error for form with space")
			}
			continue
		}
		if err != nil {
			t.Errorf("expected %q to be valid, got: %v", form, err)
		}
	}

	t.Run("empty", func(t *testing.T) {
		err := ValidateForm("")
		if err == nil || err.Error() != "form is empty" {
			t.Errorf("expected 'form is empty', got: %v", err)
		}
	})
}

func TestValidateAccessionNumber(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		if err := ValidateAccessionNumber("0000320193-23-000106"); err != nil {
			t.Errorf("expected valid accession number, got: %v", err)
		}
	})

	t.Run("undashed", func(t *testing.T) {
		if err := ValidateAccessionNumber("000032019323000106"); err == nil {
			t.Error("expected error for undashed accession number")
		}
	})

	t.Run("letters", func(t *testing.T) {
		if err := ValidateAccessionNumber("00003201AB-23-000106"); err == nil {
			t.Error("expected error for letters in accession number")
		}
	})
}
