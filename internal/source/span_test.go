package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{"disjoint", Span{Start: 2, End: 4}, Span{Start: 8, End: 10}, Span{Start: 2, End: 10}},
		{"nested", Span{Start: 2, End: 10}, Span{Start: 4, End: 5}, Span{Start: 2, End: 10}},
		{"other file", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 9}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSpanOverlaps(t *testing.T) {
	a := Span{Start: 0, End: 5}
	if a.Overlaps(Span{Start: 5, End: 7}) {
		t.Fatal("adjacent half-open spans must not overlap")
	}
	if !a.Overlaps(Span{Start: 4, End: 7}) {
		t.Fatal("expected overlap")
	}
}

func TestSpanOf(t *testing.T) {
	s := SpanOf(3, 10, 12)
	if s.File != 3 || s.Start != 10 || s.End != 12 || s.Len() != 2 {
		t.Fatalf("unexpected span %v", s)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative offset")
		}
	}()
	_ = SpanOf(0, -1, 2)
}
