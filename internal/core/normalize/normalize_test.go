package normalize

import (
	"testing"
)

// Test table covers each stage and combined pipelines.
func TestNormalize_Table(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity ascii",
			in:   "follow up tomorrow",
			out:  "follow up tomorrow",
		},
		{
			name: "utf8 repair drops invalid bytes",
			in:   string([]byte{0xff, 'a', 'c', 'm', 0x80, 'e', ' ', 'c', 'o', 'r', 'p'}),
			out:  "acme corp",
		},
		{
			name: "case fold",
			in:   "Acme CORP",
			out:  "acme corp",
		},
		{
			name: "remove zero-widths",
			in:   "de​mo‍ call", // ZERO WIDTH SPACE + ZERO WIDTH JOINER
			out:  "demo call",
		},
		{
			name: "remove combining marks",
			in:   "rené at café", // combining acute accents
			out:  "rene at cafe",
		},
		{
			name: "width fold fullwidth",
			in:   "ＡＣＭＥ deal", // fullwidth letters
			out:  "acme deal",
		},
		{
			name: "nfkd ligature",
			in:   "oﬃce hours", // ffi ligature
			out:  "office hours",
		},
		{
			name: "collapse whitespace",
			in:   "pricing\t\tdeck   attached",
			out:  "pricing deck attached",
		},
		{
			name: "whitespace runs with newline keep one break",
			in:   "hi there  \n\n  sending the recap",
			out:  "hi there\nsending the recap",
		},
		{
			name: "combined normalization",
			in:   "  Ｒené​  SMITH  \t", // width + marks + zero-width
			out:  "rene smith",
		},
		{
			name: "idempotent",
			in:   n.Normalize("Ｄｅｍｏ‍  Cáll  "),
			out:  "demo call",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.in)
			if got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
			// Idempotence check: normalize again should be identical
			got2 := n.Normalize(got)
			if got2 != got {
				t.Fatalf("Normalize not idempotent: %q -> %q", got, got2)
			}
		})
	}
}

func TestFold_UsesSharedNormalizer(t *testing.T) {
	if got := Fold("ＡＣＭＥ"); got != "acme" {
		t.Fatalf("Fold = %q, want %q", got, "acme")
	}
}

// Spot-check internal helpers in isolation.
func TestCollapseSpaces(t *testing.T) {
	in := " \t a   b   c \r\n "
	want := "a b c"
	got := collapseSpaces(in)
	if got != want {
		t.Fatalf("collapseSpaces(%q) = %q, want %q", in, got, want)
	}
}

func TestSanitize_StripsControls(t *testing.T) {
	in := "plan\x00 b\x07: call\tthem\n"
	want := "plan b: call\tthem\n"
	got := Sanitize(in)
	if got != want {
		t.Fatalf("Sanitize(%q) = %q, want %q", in, got, want)
	}
	// clean input returns unchanged via the fast path
	if got := Sanitize("clean"); got != "clean" {
		t.Fatalf("Sanitize fast path mangled input: %q", got)
	}
}
