package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"frtypo/internal/config"
)

const (
	BulletAsset  = "css/french-bullet.css"
	JustifyAsset = "css/french-justify.css"
)

// Asset is a generated stylesheet and the reference a site uses for it.
type Asset struct {
	Name    string // относительный путь внутри сайта
	Content string
}

// Assets returns the stylesheets enabled by cfg, bullets first.
func Assets(cfg config.Config) []Asset {
	scope := strings.TrimSpace(cfg.CSSScope())
	if scope == "" {
		scope = "body"
	}
	var out []Asset
	if cfg.CSSBullets() {
		out = append(out, Asset{Name: BulletAsset, Content: bulletCSS(scope)})
	}
	if cfg.Justify() {
		out = append(out, Asset{Name: JustifyAsset, Content: justifyCSS(scope)})
	}
	return out
}

// Stylesheet returns every enabled stylesheet as one CSS text, or "" when
// none is enabled.
func Stylesheet(cfg config.Config) string {
	assets := Assets(cfg)
	parts := make([]string, 0, len(assets))
	for _, a := range assets {
		parts = append(parts, a.Content)
	}
	return strings.Join(parts, "\n")
}

// MergeExtraCSS appends the enabled asset references to a site's extra_css
// list. With inject_stylesheet_once the merge is a set insertion, so running
// it twice leaves the list unchanged.
func MergeExtraCSS(existing []string, cfg config.Config) []string {
	if !cfg.InjectStylesheetOnce() {
		out := append([]string(nil), existing...)
		for _, a := range Assets(cfg) {
			out = append(out, a.Name)
		}
		return out
	}
	set := NewAssetSet(existing...)
	for _, a := range Assets(cfg) {
		set.Add(a.Name)
	}
	return set.Items()
}

// WriteStylesheet writes the enabled stylesheets under dir and returns the
// written paths.
func WriteStylesheet(dir string, cfg config.Config) ([]string, error) {
	assets := Assets(cfg)
	written := make([]string, 0, len(assets))
	for _, a := range assets {
		path := filepath.Join(dir, filepath.FromSlash(a.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
		// #nosec G306 -- stylesheets are public site assets
		if err := os.WriteFile(path, []byte(a.Content), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func bulletCSS(scope string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s ul { list-style: none; padding-left: 1.25em; }\n", scope)
	fmt.Fprintf(&b, "%s ul > li { position: relative; }\n", scope)
	fmt.Fprintf(&b, "%s ul > li::before {\n", scope)
	b.WriteString("  content: \"–\";\n")
	b.WriteString("  position: absolute;\n")
	b.WriteString("  left: -1.25em;\n")
	b.WriteString("}\n")
	return b.String()
}

func justifyCSS(scope string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s p, %s li {\n", scope, scope)
	b.WriteString("  text-align: justify;\n")
	b.WriteString("  hyphens: auto;\n")
	b.WriteString("  -webkit-hyphens: auto;\n")
	b.WriteString("}\n")
	return b.String()
}
