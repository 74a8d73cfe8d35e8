package parser

import "testing"

func TestRatio(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want int
	}{
		{"sku", "sku", 100},
		{"date", "rate", 75},
		{"", "sku", 0},
		{"abc", "xyz", 0},
	}
	for _, tc := range cases {
		if got := Ratio(tc.a, tc.b); got != tc.want {
			t.Fatalf("Ratio(%q,%q) want=%d got=%d", tc.a, tc.b, tc.want, got)
		}
	}
}

func TestPartialAndTokenSort(t *testing.T) {
	t.Parallel()

	if got := PartialRatio("data", "sales data"); got != 100 {
		t.Fatalf("partial want=100 got=%d", got)
	}
	if got := TokenSortRatio("on hand qty", "QTY, on-hand"); got != 100 {
		t.Fatalf("token sort want=100 got=%d", got)
	}
	if got := Score("inventory", "inventory on hand"); got != 100 {
		t.Fatalf("score want=100 got=%d", got)
	}
}

func TestBestMatch(t *testing.T) {
	t.Parallel()

	m, ok := BestMatch("  Qty ", []string{"quantity", "qty"}, DefaultThreshold)
	if !ok || m.Phrase != "qty" || m.Score != 100 {
		t.Fatalf("unexpected match: %+v ok=%v", m, ok)
	}

	m, ok = BestMatch("on hand", []string{"on hand", "hand on"}, DefaultThreshold)
	if !ok || m.Phrase != "on hand" {
		t.Fatalf("tie should keep first candidate: %+v", m)
	}

	for _, target := range []string{"", "  ", "NaN"} {
		if _, ok := BestMatch(target, []string{"nan", "sku"}, 0); ok {
			t.Fatalf("target %q should never match", target)
		}
	}
	if _, ok := BestMatch("zzz", []string{"sku"}, DefaultThreshold); ok {
		t.Fatalf("zzz should not match sku")
	}
}

func TestBestMatchIgnoresCase(t *testing.T) {
	t.Parallel()

	phrases := []string{"SKU Code", "quantity", "On Hand"}
	want, ok := BestMatch("sku", phrases, DefaultThreshold)
	if !ok {
		t.Fatalf("sku should match")
	}
	for _, target := range []string{"SKU", "Sku", "  sKu  "} {
		got, ok := BestMatch(target, phrases, DefaultThreshold)
		if !ok || got != want {
			t.Fatalf("BestMatch(%q) = %+v ok=%v, want %+v", target, got, ok, want)
		}
	}

	want, _ = BestMatch("on hand", phrases, DefaultThreshold)
	if got, _ := BestMatch("ON HAND", phrases, DefaultThreshold); got != want || got.Phrase != "On Hand" {
		t.Fatalf("ON HAND = %+v, want %+v", got, want)
	}
}
