package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"frtypo/internal/diag"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	want := map[diag.Code]Mode{
		diag.RuleQuotes:      ModeFix,
		diag.RuleLigatures:   ModeIgnore,
		diag.RuleCasse:       ModeWarn,
		diag.RuleDiacritics:  ModeWarn,
		diag.RuleAdmonitions: ModeFix,
	}
	for code, mode := range want {
		if got := cfg.Mode(code); got != mode {
			t.Fatalf("%s: expected %s, got %s", code.ID(), mode, got)
		}
	}
	if cfg.Mode(diag.RuleFailure) != ModeIgnore {
		t.Fatal("structural codes must not carry a mode")
	}
	if title, ok := cfg.Admonition("NOTE"); !ok || title != "Note" {
		t.Fatalf("expected default note title, got %q (%v)", title, ok)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"fix": ModeFix, " WARN ": ModeWarn, "ignore": ModeIgnore} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := ParseMode("apply"); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
}

func TestNormalizeMapShape(t *testing.T) {
	cfg, err := Normalize(map[string]any{
		"quotes":             "warn",
		"ordinaux":           "ignore",
		"enable_css_bullets": false,
		"css_scope_selector": "article",
		"admonition_translations": map[string]any{
			"note": "Remarque",
			"tip":  nil,
			"todo": "À faire",
		},
		"foreign": []any{"ad hoc"},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Mode(diag.RuleQuotes) != ModeWarn || cfg.Mode(diag.RuleOrdinals) != ModeIgnore {
		t.Fatalf("modes not applied: quotes=%s ordinals=%s", cfg.Mode(diag.RuleQuotes), cfg.Mode(diag.RuleOrdinals))
	}
	if cfg.CSSBullets() || cfg.CSSScope() != "article" {
		t.Fatalf("options not applied: bullets=%v scope=%q", cfg.CSSBullets(), cfg.CSSScope())
	}
	if title, _ := cfg.Admonition("note"); title != "Remarque" {
		t.Fatalf("expected override, got %q", title)
	}
	if title, _ := cfg.Admonition("tip"); title != "Astuce" {
		t.Fatalf("expected nil override to keep the default, got %q", title)
	}
	if title, _ := cfg.Admonition("todo"); title != "À faire" {
		t.Fatalf("expected custom keyword, got %q", title)
	}
	if got := cfg.ForeignExtra(); len(got) != 1 || got[0] != "ad hoc" {
		t.Fatalf("unexpected foreign list %v", got)
	}
}

func TestNormalizeForeignKey(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		mode    Mode
		phrases []string
	}{
		{"mode", map[string]any{"foreign": "warn"}, ModeWarn, nil},
		{"phrase list", map[string]any{"foreign": []any{"ad hoc", "a priori"}}, ModeFix, []string{"ad hoc", "a priori"}},
		{"both", map[string]any{"rules": map[string]any{"foreign": "ignore"}, "foreign_phrases": []string{"ad hoc"}}, ModeIgnore, []string{"ad hoc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			if got := cfg.Mode(diag.RuleForeign); got != tt.mode {
				t.Fatalf("expected mode %s, got %s", tt.mode, got)
			}
			if got := cfg.ForeignExtra(); strings.Join(got, "|") != strings.Join(tt.phrases, "|") {
				t.Fatalf("expected phrases %q, got %q", tt.phrases, got)
			}
		})
	}
}

func TestNormalizeStructAndMapAgree(t *testing.T) {
	off := false
	fromStruct, err := Normalize(&Options{Rules: map[string]string{"casse": "fix"}, CSSBullets: &off})
	if err != nil {
		t.Fatalf("struct: %v", err)
	}
	fromMap, err := Normalize(map[string]any{"casse": "fix", "css_bullets": false})
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if fromStruct.Digest() != fromMap.Digest() {
		t.Fatal("expected both host shapes to normalize to the same configuration")
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want error
	}{
		{"unknown category", Options{Rules: map[string]string{"grammar": "fix"}}, ErrUnknownCategory},
		{"invalid mode", map[string]any{"quotes": "apply"}, ErrInvalidMode},
		{"unknown option", map[string]any{"colour": true}, ErrUnknownOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Normalize(tt.raw); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if _, err := Normalize(42); err == nil {
		t.Fatal("expected an error for an unsupported shape")
	}
}

func TestConfigIsImmutable(t *testing.T) {
	base := Defaults()
	adm := base.Admonitions()
	adm["note"] = "changed"
	if title, _ := base.Admonition("note"); title != "Note" {
		t.Fatal("mutating the returned map must not affect the config")
	}

	warned := base.ReportOnly()
	if base.Mode(diag.RuleQuotes) != ModeFix || warned.Mode(diag.RuleQuotes) != ModeWarn {
		t.Fatal("ReportOnly must return a modified copy")
	}
	if warned.Mode(diag.RuleLigatures) != ModeIgnore {
		t.Fatal("ReportOnly must keep ignored categories ignored")
	}
	if promoted := base.Promote(); promoted.Mode(diag.RuleCasse) != ModeFix {
		t.Fatal("Promote must upgrade warn to fix")
	}
	if _, err := base.WithMode(diag.StructUnterminated, ModeFix); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestLoadFileAndDiscover(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "docs", "guide")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := `lexicon = "data/lex.msgpack.xz"
[rules]
diacritics = "fix"
[options]
css_scope = "main"
[admonitions]
note = "Remarque"
`
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, path, err := Discover(nested)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if !strings.HasSuffix(path, FileName) {
		t.Fatalf("expected config path, got %q", path)
	}
	if cfg.Mode(diag.RuleDiacritics) != ModeFix || cfg.CSSScope() != "main" {
		t.Fatalf("file values not applied")
	}
	if want := filepath.Join(root, "data", "lex.msgpack.xz"); cfg.LexiconPath() != want {
		t.Fatalf("expected lexicon %q, got %q", want, cfg.LexiconPath())
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("[options]\ncolour = true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
}

func TestTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("template must load: %v", err)
	}
	if cfg.Digest() != Defaults().Digest() {
		t.Fatal("template must describe the defaults")
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, path, err := Discover(t.TempDir())
	if err != nil || path != "" {
		t.Fatalf("expected defaults, got path %q err %v", path, err)
	}
	if cfg.Mode(diag.RuleQuotes) != ModeFix {
		t.Fatal("expected defaults")
	}
}
