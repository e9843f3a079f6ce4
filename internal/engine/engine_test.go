package engine

import (
	"context"
	"strings"
	"testing"

	"frtypo/internal/config"
	"frtypo/internal/diag"
	"frtypo/internal/lexicon"
	"frtypo/internal/region"
	"frtypo/internal/rules"
	"frtypo/internal/testkit"
)

func visible(s string) string {
	return strings.NewReplacer(rules.NBSP, "~", rules.NNBSP, "^").Replace(s)
}

func testLexicon() *lexicon.Lexicon {
	return lexicon.Build([]string{"égrené", "délégué", "zélé", "ou", "où"})
}

func newEngine(t *testing.T, cfg config.Config) *Engine {
	t.Helper()
	e, err := New(cfg, testLexicon())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func withModes(t *testing.T, cfg config.Config, mode config.Mode, codes ...diag.Code) config.Config {
	t.Helper()
	for _, code := range codes {
		var err error
		if cfg, err = cfg.WithMode(code, mode); err != nil {
			t.Fatalf("with mode: %v", err)
		}
	}
	return cfg
}

func process(e *Engine, text string) Result {
	return e.Process(context.Background(), Document{Path: "doc.md", Text: text})
}

func TestScenarios(t *testing.T) {
	allFix := withModes(t, config.Defaults(), config.ModeFix, diag.RuleCasse, diag.RuleDiacritics)
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			"punctuation quotes and dashes",
			`Tu n'as pas pris ton parapluie?. Tante Jeanette -- qui n'est plus si jeune -- dirait encore: "Tu vas encore te faire mouiller, etc..."`,
			"Tu n’as pas pris ton parapluie^? Tante Jeanette — qui n’est plus si jeune — dirait encore~: «^Tu vas encore te faire mouiller, etc.^»",
		},
		{"diacritics", "EGRENE, O DELEGUE ZELE", "ÉGRENÉ, O DÉLÉGUÉ ZÉLÉ"},
		{"ambiguous word", "OU BIEN", "OU BIEN"},
		{"units", "100km", "100^km"},
		{"units inside markup", "<span>100km</span>", "<span>100km</span>"},
		{"calendar word", "Nous partons Lundi, Lucas est venu", "Nous partons lundi, Lucas est venu"},
		{"calendar word at start", "Lundi, Lucas est venu", "Lundi, Lucas est venu"},
	}
	e := newEngine(t, allFix)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := process(e, tt.in)
			if got := visible(res.Text); got != tt.out {
				t.Fatalf("expected %q, got %q", tt.out, got)
			}
			if res.Fixed != (tt.in != tt.out) {
				t.Fatalf("expected Fixed=%v, got %v", tt.in != tt.out, res.Fixed)
			}
			if res.Failed {
				t.Fatalf("unexpected rule failure: %+v", res.Records)
			}
		})
	}
}

func TestUnterminatedIgnoreMarker(t *testing.T) {
	e := newEngine(t, config.Defaults())
	in := "Avant l'été.\n<!-- fr-typo-ignore-start -->\nIl dit \"non\" -- ici: 100km\n"
	res := process(e, in)

	want := "Avant l’été.\n<!-- fr-typo-ignore-start -->\nIl dit \"non\" -- ici: 100km\n"
	if res.Text != want {
		t.Fatalf("expected %q, got %q", want, res.Text)
	}
	if len(res.Records) == 0 || res.Records[0].Code != diag.StructUnterminated {
		t.Fatalf("expected a structural record first, got %+v", res.Records)
	}
	first := res.Records[0]
	if first.Severity != diag.SevWarning || first.Pos.Line != 2 || first.Pos.Col != 1 {
		t.Fatalf("expected a warning at 2:1, got %s at %d:%d", first.Severity, first.Pos.Line, first.Pos.Col)
	}
	if !res.Warned || !res.Fixed {
		t.Fatalf("expected Warned and Fixed, got %v/%v", res.Warned, res.Fixed)
	}
}

func TestProtectedSpansSurvive(t *testing.T) {
	in := "Voir `a -- b` et $x: y$ ou https://exemple.fr/a?b=1.\n\n" +
		"```\nIl dit \"non\": 100km\n```\n" +
		"[lien: \"x\"](http://a.b/c?d) et {{ page.title }}\n"
	spans, _ := region.Classify(in)
	var protected []string
	for _, sp := range spans {
		if sp.Protected() {
			protected = append(protected, sp.Text)
		}
	}
	if len(protected) < 5 {
		t.Fatalf("expected at least 5 protected spans, got %d", len(protected))
	}

	cfg := withModes(t, config.Defaults(), config.ModeFix, diag.Categories()...)
	res := process(newEngine(t, cfg), in)
	if !res.Fixed {
		t.Fatal("expected the prose around protected spans to be fixed")
	}
	if err := testkit.CheckProtected(res.Text, protected); err != nil {
		t.Fatal(err)
	}
}

func TestIdempotent(t *testing.T) {
	cfg := withModes(t, config.Defaults(), config.ModeFix, diag.RuleCasse, diag.RuleDiacritics)
	e := newEngine(t, cfg)
	tests := []struct {
		name string
		in   string
	}{
		{"document", "# Titre\n\n" +
			`Tu n'as pas pris ton parapluie?. Tante Jeanette -- qui n'est plus si jeune -- dirait encore: "Tu vas encore te faire mouiller, etc..."` +
			"\n\nLe 1er jour, il court 100km. Nous partons Lundi.\n\n• un\n• deux\n\n!!! note\n    EGRENE, c.a.d. de facto.\n"},
		{"dash before punctuation", "Il hésite --? Puis repart -- enfin --: non --!"},
		{"url in guillemets", "Voir «\u202fhttps://exemple.fr/docs/2e-partie\u202f» ici... Le 2e."},
		{"url after ellipsis", "Fin]...http://x.y: suite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := process(e, tt.in)
			if !first.Fixed {
				t.Fatal("expected the first pass to fix something")
			}
			second := process(e, first.Text)
			if second.Fixed || second.Text != first.Text {
				t.Fatalf("expected a fixed point, second pass gave %q with %+v", second.Text, second.Records)
			}
		})
	}
}

func TestURLAfterNonASCIIKeepsProtection(t *testing.T) {
	e := newEngine(t, config.Defaults())
	url := "https://exemple.fr/docs/2e-partie"
	for _, in := range []string{
		"Voir «\u202f" + url + "\u202f» ici.",
		"Voir\u00a0" + url + " ici.",
		"Voir..." + url + " ici.",
	} {
		res := process(e, in)
		if !strings.Contains(res.Text, url) {
			t.Fatalf("expected %s untouched in %q", url, res.Text)
		}
	}
}

func TestModeIndependence(t *testing.T) {
	in := `Tu n'as pas pris ton parapluie?. Tante -- dit: "oui..."` +
		"\n\nLe 1er coeur pèse 100km, c.a.d. de facto. Nous partons Lundi en france.\n\n" +
		"• point\n\n!!! tip\n    EGRENE, OU DELEGUE\n"
	for _, code := range diag.Categories() {
		t.Run(code.ID(), func(t *testing.T) {
			off := withModes(t, config.Defaults(), config.ModeIgnore, diag.Categories()...)
			fixed := process(newEngine(t, withModes(t, off, config.ModeFix, code)), in)
			warned := process(newEngine(t, withModes(t, off, config.ModeWarn, code)), in)

			if warned.Text != in || warned.Fixed {
				t.Fatalf("warn mode must not alter the text, got %q", warned.Text)
			}
			if len(fixed.Records) != len(warned.Records) {
				t.Fatalf("expected %d records in warn mode, got %d", len(fixed.Records), len(warned.Records))
			}
			if len(fixed.Records) == 0 {
				t.Fatalf("expected the sample to trigger %s", code.ID())
			}
			for i := range fixed.Records {
				f, w := fixed.Records[i], warned.Records[i]
				if f.Before != w.Before || f.After != w.After || f.Pos != w.Pos || f.Primary != w.Primary {
					t.Fatalf("record %d differs: fix %+v, warn %+v", i, f, w)
				}
				if f.Severity != diag.SevFix || w.Severity != diag.SevWarning {
					t.Fatalf("unexpected severities %s/%s", f.Severity, w.Severity)
				}
			}
			if !warned.Warned {
				t.Fatal("expected Warned in warn mode")
			}
		})
	}
}

func TestRecordsUseCoordinatesBeforeTheRule(t *testing.T) {
	cfg := withModes(t, config.Defaults(), config.ModeIgnore, diag.Categories()...)
	cfg = withModes(t, cfg, config.ModeFix, diag.RuleApostrophe)
	res := process(newEngine(t, cfg), "l'un\net l'autre")
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records, got %+v", res.Records)
	}
	second := res.Records[1]
	if second.Pos.Line != 2 || second.Pos.Col != 5 || second.Before != "'" || second.After != "’" {
		t.Fatalf("unexpected record %+v", second)
	}
	if second.Primary.Start != 9 || second.Primary.End != 10 {
		t.Fatalf("expected offsets 9..10, got %d..%d", second.Primary.Start, second.Primary.End)
	}
}

type panicRule struct{}

func (panicRule) Category() diag.Code { return diag.RuleQuotes }
func (panicRule) Priority() int       { return int(diag.RuleQuotes) }
func (panicRule) Check(text string, _ *rules.State) []rules.Edit {
	if strings.Contains(text, "boom") {
		panic("boom")
	}
	return nil
}

type overlapRule struct{}

func (overlapRule) Category() diag.Code { return diag.RuleDash }
func (overlapRule) Priority() int       { return int(diag.RuleDash) }
func (overlapRule) Check(text string, _ *rules.State) []rules.Edit {
	return []rules.Edit{
		{Start: 0, End: 2, Before: text[:2], After: "xx"},
		{Start: 1, End: 3, Before: text[1:3], After: "yy"},
	}
}

func TestRuleFailureKeepsSpan(t *testing.T) {
	e := &Engine{
		cfg:    config.Defaults(),
		active: []rules.Rule{panicRule{}, overlapRule{}},
	}
	in := "boom `code` suite"
	res := process(e, in)
	if res.Text != in {
		t.Fatalf("expected the text to be kept, got %q", res.Text)
	}
	if !res.Failed {
		t.Fatal("expected Failed")
	}
	var failures int
	for _, rec := range res.Records {
		if rec.Code == diag.RuleFailure {
			failures++
			if rec.Severity != diag.SevError {
				t.Fatalf("expected error severity, got %s", rec.Severity)
			}
		}
	}
	// паника на первом сегменте, пересечение правок на обоих
	if failures != 3 {
		t.Fatalf("expected 3 failures, got %d: %+v", failures, res.Records)
	}
}
