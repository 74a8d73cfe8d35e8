package parser

import "testing"

func TestNormalizeColumnName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  SKU  ":          "sku",
		"On\nHand":         "on hand",
		"Qty\t \tOn  Hand": "qty on hand",
		"":                 "",
	}
	for in, want := range cases {
		if got := NormalizeColumnName(in); got != want {
			t.Fatalf("NormalizeColumnName(%q) = %q want %q", in, got, want)
		}
	}
}

func TestContainsAny(t *testing.T) {
	t.Parallel()

	if !ContainsAny("dc inventory by week", []string{"warehouse", "dc "}) {
		t.Fatalf("expected match on dc prefix")
	}
	if ContainsAny("retail sales", []string{"warehouse", "dc "}) {
		t.Fatalf("unexpected match")
	}
	if ContainsAny("anything", nil) {
		t.Fatalf("nil keywords must not match")
	}
}
