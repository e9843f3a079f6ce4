package diag

import (
	"testing"

	"frtypo/internal/source"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name string
		want Code
		ok   bool
	}{
		{"quotes", RuleQuotes, true},
		{" Diacritics ", RuleDiacritics, true},
		{"ordinaux", RuleOrdinals, true},
		{"case", RuleCasse, true},
		{"structure", UnknownCode, false},
		{"grammar", UnknownCode, false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("%q: expected (%v, %v), got (%v, %v)", tt.name, tt.want, tt.ok, got, ok)
		}
	}
}

func TestCategoriesFollowPriority(t *testing.T) {
	cats := Categories()
	if len(cats) != NumCategories {
		t.Fatalf("expected %d categories, got %d", NumCategories, len(cats))
	}
	seen := make(map[string]bool)
	for i, c := range cats {
		if int(c) != i+1 {
			t.Fatalf("expected priority %d at index %d, got %d", i+1, i, c)
		}
		if seen[c.ID()] {
			t.Fatalf("duplicate category name %q", c.ID())
		}
		seen[c.ID()] = true
		if back, ok := ParseCategory(c.ID()); !ok || back != c {
			t.Fatalf("category %q does not round-trip", c.ID())
		}
	}
	if RuleFailure.IsRule() || !RuleAdmonitions.IsRule() {
		t.Fatal("unexpected IsRule result")
	}
}

func TestBagLimitAndSeverities(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	ReportWarning(r, StructUnterminated, source.Span{Start: 4}, "unterminated").Emit()
	NewReportBuilder(r, SevFix, RuleQuotes, source.Span{}, "").WithChange("\"a\"", "« a »").Emit()
	if bag.Add(New(SevError, RuleFailure, source.Span{}, "boom")) {
		t.Fatal("expected the limit to reject the third record")
	}
	if !bag.HasWarnings() || bag.HasErrors() {
		t.Fatalf("unexpected severities in %+v", bag.Items())
	}
	if bag.Count(SevFix) != 1 {
		t.Fatalf("expected 1 fix, got %d", bag.Count(SevFix))
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, RuleFailure, source.Span{}, "boom")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", bag.Len())
	}
}

func TestBagSortByPosition(t *testing.T) {
	bag := NewBag(0)
	bag.Add(New(SevFix, RuleDiacritics, source.Span{}, "").At(source.LineCol{Line: 2, Col: 1}))
	bag.Add(New(SevFix, RuleQuotes, source.Span{}, "").At(source.LineCol{Line: 1, Col: 5}))
	bag.Add(New(SevFix, RuleApostrophe, source.Span{}, "").At(source.LineCol{Line: 1, Col: 5}))
	bag.Sort()
	got := []Code{bag.Items()[0].Code, bag.Items()[1].Code, bag.Items()[2].Code}
	want := []Code{RuleQuotes, RuleApostrophe, RuleDiacritics}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
