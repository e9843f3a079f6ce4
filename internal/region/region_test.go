package region

import (
	"strings"
	"testing"

	"frtypo/internal/diag"
	"frtypo/internal/source"
	"frtypo/internal/testkit"
)

func classify(t *testing.T, text string) ([]Span, []diag.Record) {
	t.Helper()
	spans, recs := Classify(text)
	srcSpans := make([]source.Span, len(spans))
	for i, sp := range spans {
		if text[sp.Start:sp.End] != sp.Text {
			t.Fatalf("span %d text mismatch: %q vs %q", i, text[sp.Start:sp.End], sp.Text)
		}
		srcSpans[i] = sp.Source(0)
	}
	if err := testkit.CheckPartition(text, srcSpans); err != nil {
		t.Fatalf("partition: %v", err)
	}
	return spans, recs
}

func protectedTexts(spans []Span) []string {
	var out []string
	for _, sp := range spans {
		if sp.Protected() {
			out = append(out, sp.Text)
		}
	}
	return out
}

func correctableText(spans []Span) string {
	var sb strings.Builder
	for _, sp := range spans {
		if !sp.Protected() {
			sb.WriteString(sp.Text)
		}
	}
	return sb.String()
}

func TestClassifyConstructs(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		protected []string
		reason    Reason
	}{
		{"inline code", "Voir `a: b` ici", []string{"`a: b`"}, ReasonInlineCode},
		{"double backticks", "Le ``x ` y`` reste", []string{"``x ` y``"}, ReasonInlineCode},
		{"inline code attr", "Le `code`{: .lang} suit", []string{"`code`{: .lang}"}, ReasonInlineCode},
		{"fence", "Avant\n```go\nx := \"a\"\n```\nAprès", []string{"```go\nx := \"a\"\n```"}, ReasonCodeFence},
		{"tilde fence", "~~~~\n\"q\"\n~~~~", []string{"~~~~\n\"q\"\n~~~~"}, ReasonCodeFence},
		{"indented fence", "- item\n    ```\n    a -- b\n    ```\n", []string{"    ```\n    a -- b\n    ```"}, ReasonCodeFence},
		{"display math", "Soit $$a: b$$ fin", []string{"$$a: b$$"}, ReasonMathBlock},
		{"inline math", "Soit $x+y$ et rien", []string{"$x+y$"}, ReasonMathInline},
		{"link destination", "Voir [la page](https://ex.fr/a_(b)) ici", []string{"(https://ex.fr/a_(b))"}, ReasonLinkOrURL},
		{"reference link", "Voir [la page][ref] ici", []string{"[ref]"}, ReasonLinkOrURL},
		{"footnote", "Texte[^note1] suite", []string{"[^note1]"}, ReasonLinkOrURL},
		{"reference definition", "[ref]: https://ex.fr \"Titre\"\n", []string{"[ref]: https://ex.fr \"Titre\""}, ReasonLinkOrURL},
		{"bare url", "Voir https://ex.fr/page. Fin", []string{"https://ex.fr/page"}, ReasonLinkOrURL},
		{"mailto", "Écrire à mailto:a@b.fr !", []string{"mailto:a@b.fr"}, ReasonLinkOrURL},
		{"url in guillemets", "Voir «\u202fhttps://ex.fr/docs/2e-partie\u202f» ici.", []string{"https://ex.fr/docs/2e-partie"}, ReasonLinkOrURL},
		{"url after no-break space", "Voir\u00a0https://ex.fr ici", []string{"https://ex.fr"}, ReasonLinkOrURL},
		{"url after ellipsis", "Fin…http://x.y/z suite", []string{"http://x.y/z"}, ReasonLinkOrURL},
		{"autolink", "Voir <https://ex.fr> ici", []string{"<https://ex.fr>"}, ReasonLinkOrURL},
		{"email autolink", "Voir <moi@ex.fr> ici", []string{"<moi@ex.fr>"}, ReasonLinkOrURL},
		{"comment", "A <!-- note: x --> B", []string{"<!-- note: x -->"}, ReasonMarkup},
		{"tag", "Un <br/> deux <em>trois</em>", []string{"<br/>", "<em>", "</em>"}, ReasonMarkup},
		{"heading attr", "# Titre {#titre}\n", []string{"{#titre}"}, ReasonMarkup},
		{"template", "Valeur {{ page.title }} et {% if x %}", []string{"{{ page.title }}", "{% if x %}"}, ReasonMarkup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, recs := classify(t, tt.text)
			if len(recs) != 0 {
				t.Fatalf("expected no records, got %v", recs)
			}
			got := protectedTexts(spans)
			if strings.Join(got, "|") != strings.Join(tt.protected, "|") {
				t.Fatalf("expected protected %q, got %q", tt.protected, got)
			}
			for _, sp := range spans {
				if sp.Protected() && sp.Reason != tt.reason {
					t.Fatalf("expected reason %s, got %s", tt.reason, sp.Reason)
				}
			}
		})
	}
}

func TestClassifyLiteralTriggers(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"lone backtick", "Un ` isolé"},
		{"currency dollars", "Il coûte 5 $ et 6 $."},
		{"escaped dollar", `Prix \$5 et \$6`},
		{"math closer before digit", "De $a à $5 près"},
		{"less than", "Si a < b alors"},
		{"lone brace", "Un { seul"},
		{"code across paragraphs", "Un `début\n\nfin` ici"},
		{"plain brackets", "Voir [ceci] et [cela]"},
		{"scheme without slashes", "Note: voir ci-dessous"},
		{"url glued to a letter", "Voir éhttps://ex.fr ici"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, recs := classify(t, tt.text)
			if len(recs) != 0 {
				t.Fatalf("expected no records, got %v", recs)
			}
			if got := protectedTexts(spans); len(got) != 0 {
				t.Fatalf("expected nothing protected, got %q", got)
			}
		})
	}
}

func TestClassifyLinkLabelStaysCorrectable(t *testing.T) {
	spans, _ := classify(t, `Voir [le "guide"](https://ex.fr/a--b) ici`)
	got := correctableText(spans)
	if !strings.Contains(got, `[le "guide"]`) {
		t.Fatalf("expected the label to be correctable, got %q", got)
	}
	if strings.Contains(got, "a--b") {
		t.Fatalf("expected the destination to be protected, got %q", got)
	}
}

func TestClassifyWrapperElement(t *testing.T) {
	spans, recs := classify(t, "La <span>100km</span> et 5km")
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %v", recs)
	}
	got := protectedTexts(spans)
	if len(got) != 1 || got[0] != "<span>100km</span>" {
		t.Fatalf("expected the whole span element protected, got %q", got)
	}
	if spans[len(spans)-1].Text != " et 5km" {
		t.Fatalf("expected trailing text correctable, got %q", spans[len(spans)-1].Text)
	}
}

func TestClassifyNestedAndIgnoredElements(t *testing.T) {
	text := "<div class=\"note fr-typo-ignore\">\n<div>a -- b</div>\n</div>\nSuite -- fin"
	spans, recs := classify(t, text)
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %v", recs)
	}
	want := "<div class=\"note fr-typo-ignore\">\n<div>a -- b</div>\n</div>"
	if got := protectedTexts(spans); len(got) != 1 || got[0] != want {
		t.Fatalf("expected %q protected, got %q", want, got)
	}
	if got := correctableText(spans); got != "\nSuite -- fin" {
		t.Fatalf("unexpected correctable text %q", got)
	}
}

func TestClassifyIgnoreMarkers(t *testing.T) {
	text := "Un \"a\"\n<!-- fr-typo-ignore-start -->\nDeux \"b\"\n<!-- fr-typo-ignore-end -->\nTrois \"c\""
	spans, recs := classify(t, text)
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %v", recs)
	}
	got := correctableText(spans)
	if strings.Contains(got, "Deux") || !strings.Contains(got, "Un \"a\"") || !strings.Contains(got, "Trois \"c\"") {
		t.Fatalf("unexpected correctable text %q", got)
	}
	for _, sp := range spans {
		if sp.Protected() && sp.Reason != ReasonExplicitIgnore {
			t.Fatalf("expected explicit-ignore reason, got %s", sp.Reason)
		}
	}
}

func TestClassifyIgnoreNextBlock(t *testing.T) {
	text := "<!-- fr-typo-ignore -->\nLigne \"un\"\nLigne deux\n\nParagraphe \"libre\""
	spans, _ := classify(t, text)
	got := correctableText(spans)
	if got != "\n\nParagraphe \"libre\"" {
		t.Fatalf("unexpected correctable text %q", got)
	}
}

func TestClassifyUnterminated(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		before string
		line   uint32
		reason Reason
	}{
		{"ignore start", "Avant\n<!-- fr-typo-ignore-start -->\nTexte \"x\"", "<!-- fr-typo-ignore-start -->", 2, ReasonExplicitIgnore},
		{"fence", "Avant\n```\ncode", "```", 2, ReasonCodeFence},
		{"display math", "A $$x", "$$", 1, ReasonMathBlock},
		{"comment", "A\n\nB <!-- jamais", "<!--", 3, ReasonMarkup},
		{"span", "A <span>jamais fermé", "<span>", 1, ReasonInlineIgnoreSpan},
		{"front matter", "---\ntitle: x\n", "---", 1, ReasonFrontMatter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans, recs := classify(t, tt.text)
			if len(recs) != 1 {
				t.Fatalf("expected 1 record, got %d", len(recs))
			}
			r := recs[0]
			if r.Code != diag.StructUnterminated || r.Severity != diag.SevWarning {
				t.Fatalf("expected unterminated warning, got %v %v", r.Code, r.Severity)
			}
			if r.Before != tt.before || r.Pos.Line != tt.line {
				t.Fatalf("expected %q at line %d, got %q at line %d", tt.before, tt.line, r.Before, r.Pos.Line)
			}
			last := spans[len(spans)-1]
			if !last.Protected() || last.Reason != tt.reason || last.End != len(tt.text) {
				t.Fatalf("expected the rest to be protected, got %v", last)
			}
		})
	}
}

func TestClassifyFrontMatter(t *testing.T) {
	text := "---\ntitle: \"Titre\"\ntags: [a, b]\n---\nCorps \"texte\""
	spans, recs := classify(t, text)
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %v", recs)
	}
	if spans[0].Reason != ReasonFrontMatter || spans[0].Text != "---\ntitle: \"Titre\"\ntags: [a, b]\n---" {
		t.Fatalf("unexpected front matter span %v %q", spans[0], spans[0].Text)
	}
	if !spans[0].Reason.Block() {
		t.Fatal("front matter must be a block reason")
	}
}

func TestClassifyMalformedFrontMatter(t *testing.T) {
	text := "---\ntitle: [non fermé\n---\nCorps"
	spans, recs := classify(t, text)
	if len(recs) != 1 || recs[0].Code != diag.StructFrontMatter {
		t.Fatalf("expected a front matter record, got %v", recs)
	}
	if spans[0].Reason != ReasonFrontMatter {
		t.Fatalf("malformed front matter must stay protected, got %v", spans[0])
	}
}

func TestClassifyFrontMatterOnlyAtStart(t *testing.T) {
	spans, recs := classify(t, "Texte\n---\nautre\n---\n")
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %v", recs)
	}
	if got := protectedTexts(spans); len(got) != 0 {
		t.Fatalf("expected thematic breaks to stay text, got %q", got)
	}
}

func TestClassifyEmpty(t *testing.T) {
	spans, recs := classify(t, "")
	if len(spans) != 0 || len(recs) != 0 {
		t.Fatalf("expected nothing for empty text, got %v %v", spans, recs)
	}
}
