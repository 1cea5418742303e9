package invoice

import "testing"

func TestFormatCurrency(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{0, "Rp 0"},
		{2500, "Rp 2.500"},
		{1500000, "Rp 1.500.000"},
		{2500.4, "Rp 2.500"},
		{2500.5, "Rp 2.501"},
		{-250, "Rp -250"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.in); got != tc.want {
			t.Fatalf("FormatCurrency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	if got := FormatNumber(1234567); got != "1.234.567" {
		t.Fatalf("FormatNumber = %q", got)
	}
	if got := FormatNumber(999); got != "999" {
		t.Fatalf("FormatNumber = %q", got)
	}
}

func TestFormatInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{2500, "2500"},
		{2.5, "2.5"},
	}
	for _, tc := range cases {
		if got := FormatInput(tc.in); got != tc.want {
			t.Fatalf("FormatInput(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
