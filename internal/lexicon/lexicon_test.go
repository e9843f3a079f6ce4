package lexicon

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ulikunitz/xz"
	"github.com/vmihailenco/msgpack/v5"
)

func TestKeyAndFold(t *testing.T) {
	tests := []struct{ in, key, fold string }{
		{"Élévation", "ELEVATION", "elevation"},
		{"égrené", "EGRENE", "egrene"},
		{"cœur", "CŒUR", "cœur"},
		{"Noël", "NOEL", "noel"},
	}
	for _, tt := range tests {
		if got := Key(tt.in); got != tt.key {
			t.Fatalf("Key(%q): expected %q, got %q", tt.in, tt.key, got)
		}
		if got := Fold(tt.in); got != tt.fold {
			t.Fatalf("Fold(%q): expected %q, got %q", tt.in, tt.fold, got)
		}
	}
}

func TestShapeOf(t *testing.T) {
	tests := map[string]Shape{
		"ECOLE":   ShapeUpper,
		"Ecole":   ShapeTitle,
		"ecole":   ShapeLower,
		"McBride": ShapeOther,
		"":        ShapeOther,
	}
	for in, want := range tests {
		if got := ShapeOf(in); got != want {
			t.Fatalf("ShapeOf(%q): expected %d, got %d", in, want, got)
		}
	}
}

func TestBuildOrdersForms(t *testing.T) {
	lex := Build([]string{"élevé", "élève", "eleve", "école", "x", "école"})
	e, ok := lex.Lookup("ELEVE")
	if !ok {
		t.Fatal("expected ELEVE entry")
	}
	want := []string{"eleve", "élevé", "élève"}
	if strings.Join(e.Forms, ",") != strings.Join(want, ",") {
		t.Fatalf("expected forms %v, got %v", want, e.Forms)
	}
	if e.Preferred() != "eleve" || !e.Ambiguous() {
		t.Fatalf("expected ambiguous entry with unaccented default, got %+v", e)
	}
	if lex.Words() != 4 {
		t.Fatalf("expected 4 distinct words, got %d", lex.Words())
	}
}

func TestResolveScenario(t *testing.T) {
	lex := Build([]string{"égrené", "délégué", "zélé", "élève", "élevé"})
	tests := []struct {
		token string
		want  string
		amb   bool
	}{
		{"EGRENE", "ÉGRENÉ", false},
		{"DELEGUE", "DÉLÉGUÉ", false},
		{"ZELE", "ZÉLÉ", false},
		{"O", "", false},
		{"ELEVE", "", true},
		{"ÉLÈVE", "", false},
		{"ELÈVE", "ÉLÈVE", false},
		{"zele", "", false},
		{"Zele", "", false},
		{"INCONNU", "", false},
	}
	for _, tt := range tests {
		res := lex.Resolve(tt.token)
		if res.Replacement != tt.want || res.Ambiguous != tt.amb {
			t.Fatalf("%s: expected (%q, ambiguous=%v), got (%q, ambiguous=%v)", tt.token, tt.want, tt.amb, res.Replacement, res.Ambiguous)
		}
	}
}

func TestResolveCapitalizedOnlyTouchesFirstLetter(t *testing.T) {
	lex := Build([]string{"école", "état", "élève"})
	if got := lex.Resolve("Ecole").Replacement; got != "École" {
		t.Fatalf("expected École, got %q", got)
	}
	if got := lex.Resolve("Etat").Replacement; got != "État" {
		t.Fatalf("expected État, got %q", got)
	}
	// "Eleve" would need accents in the lowercase tail
	if res := lex.Resolve("Eleve"); res.Changed() {
		t.Fatalf("expected no change, got %q", res.Replacement)
	}
	if res := lex.Resolve("Elève"); res.Replacement != "Élève" {
		t.Fatalf("expected Élève, got %q", res.Replacement)
	}
}

func TestResolveNeverRewritesAmbiguousKeys(t *testing.T) {
	lex := Build([]string{"ou", "où", "cote", "côte", "côté"})
	for _, token := range []string{"OU", "COTE", "Cote"} {
		res := lex.Resolve(token)
		if res.Changed() {
			t.Fatalf("%s: ambiguous key must not be rewritten, got %q", token, res.Replacement)
		}
	}
	if res := lex.Resolve("COTE"); !res.Ambiguous || res.Default != "cote" {
		t.Fatalf("expected ambiguity with default cote, got %+v", res)
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	lex := Build([]string{"égrené", "élève", "élevé", "eleve"})
	path := filepath.Join(t.TempDir(), "nested", "lexicon.msgpack.xz")
	if err := lex.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != lex.Len() || loaded.Words() != lex.Words() {
		t.Fatalf("expected %d keys/%d words, got %d/%d", lex.Len(), lex.Words(), loaded.Len(), loaded.Words())
	}
	if got := loaded.Resolve("EGRENE").Replacement; got != "ÉGRENÉ" {
		t.Fatalf("expected ÉGRENÉ after reload, got %q", got)
	}
	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".lexicon-*"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestDecodeRejectsSchema(t *testing.T) {
	var buf bytes.Buffer
	zw, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz: %v", err)
	}
	if err := msgpack.NewEncoder(zw).Encode(&artifact{Schema: 1}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := Decode(&buf); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestLoadClosesOnCorruptInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xz")
	if err := os.WriteFile(path, []byte("not xz at all"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for corrupt input")
	}
	// the file must not stay open: removing it works on every platform
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
}

func TestOpenFallsBackToBuiltin(t *testing.T) {
	lex, err := Open("")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if lex.Len() == 0 {
		t.Fatal("expected a non-empty fallback lexicon")
	}
	if got := lex.Resolve("ECOLE").Replacement; got != "ÉCOLE" {
		t.Fatalf("expected ÉCOLE, got %q", got)
	}
	if res := lex.Resolve("OU"); res.Changed() {
		t.Fatal("OU is ambiguous in the fallback list")
	}
}

func TestConcurrentResolve(t *testing.T) {
	lex := Fallback()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if got := lex.Resolve("DELEGUE").Replacement; got != "DÉLÉGUÉ" {
					t.Errorf("expected DÉLÉGUÉ, got %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestBuildFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("# commentaire\nécole\n\nzélé\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	lex, err := BuildFile(path)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if lex.Len() != 2 {
		t.Fatalf("expected 2 keys, got %d", lex.Len())
	}
}

func TestDigestFollowsContent(t *testing.T) {
	a := Build([]string{"école", "élève"})
	b := Build([]string{"élève", "école"})
	c := Build([]string{"école"})
	if a.Digest() != b.Digest() {
		t.Fatal("expected the digest to ignore word order")
	}
	if a.Digest() == c.Digest() {
		t.Fatal("expected different content to change the digest")
	}
	var nilLex *Lexicon
	if nilLex.Digest() != "" {
		t.Fatal("expected an empty digest for a nil lexicon")
	}
}
