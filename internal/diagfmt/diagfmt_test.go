package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"frtypo/internal/diag"
	"frtypo/internal/source"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("docs/index.md", []byte("Il dit: oui\n<!-- fr-typo-ignore-start -->\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevWarning, diag.StructUnterminated, source.SpanOf(id, 12, 41), "unterminated ignore region").
		At(source.LineCol{Line: 2, Col: 1}))
	bag.Add(diag.New(diag.SevWarning, diag.RuleSpacing, source.SpanOf(id, 6, 7), "no-break space before :").
		WithChange(":", "\u00a0:").At(source.LineCol{Line: 1, Col: 7}))
	bag.Add(diag.New(diag.SevFix, diag.RuleApostrophe, source.SpanOf(id, 0, 0), "typographic apostrophe").
		WithChange("'", "’").At(source.LineCol{Line: 1, Col: 1}))
	return bag, fs
}

func TestShort(t *testing.T) {
	bag, fs := testBag(t)
	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, TextOpts{Visible: true}); err != nil {
		t.Fatalf("short: %v", err)
	}
	want := "[fr-typo:structure] docs/index.md:2:1: unterminated ignore region\n" +
		"[fr-typo:spacing] docs/index.md: \":\" → \"⍽:\"\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}

	buf.Reset()
	if err := Short(&buf, bag, fs, TextOpts{Fixes: true}); err != nil {
		t.Fatalf("short: %v", err)
	}
	if !strings.Contains(buf.String(), "[fr-typo:apostrophe] docs/index.md: \"'\" → \"’\"") {
		t.Fatalf("expected the applied fix to be listed, got %q", buf.String())
	}
}

func TestPrettyShowsSourceLine(t *testing.T) {
	bag, fs := testBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, TextOpts{Visible: true}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"docs/index.md:1:7: warn spacing: no-break space before :",
		"  | Il dit: oui\n  |       ^\n",
		"  - :\n  + ⍽:\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestCaretOffsetCountsCells(t *testing.T) {
	if got := caretOffset("日本 x", 4); got != 5 {
		t.Fatalf("expected 5 cells, got %d", got)
	}
	if got := caretOffset("abc", 1); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestJSON(t *testing.T) {
	bag, fs := testBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 2}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out RecordsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 || out.Records[1].Category != "spacing" || out.Records[1].After != "\u00a0:" {
		t.Fatalf("unexpected output %+v", out)
	}
	if out.Records[0].Location.Line != 2 || out.Records[0].Location.File != "docs/index.md" {
		t.Fatalf("unexpected location %+v", out.Records[0].Location)
	}
}

func TestSarif(t *testing.T) {
	bag, fs := testBag(t)
	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "frtypo", ToolVersion: "test"}); err != nil {
		t.Fatalf("sarif: %v", err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("decode: %v", err)
	}
	results := log.Runs[0].Results
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1].Level != "warning" || len(results[1].Fixes) != 1 || results[2].Level != "note" {
		t.Fatalf("unexpected levels %+v", results)
	}
	if len(log.Runs[0].Tool.Driver.Rules) != diag.NumCategories+1 {
		t.Fatalf("expected one rule per category plus structure, got %d", len(log.Runs[0].Tool.Driver.Rules))
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("sarif"); err != nil || f != FormatSarif {
		t.Fatalf("expected sarif, got %v (%v)", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected an error")
	}
}
