// Package config holds the resolved, immutable configuration of a run.
//
// A Config is built once (Defaults, Load, Normalize) and then passed by value
// to the engine. Every With* method returns a modified copy; maps and slices
// are cloned on the way in and on the way out, so no caller can mutate a
// Config shared by concurrent document runs.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"frtypo/internal/diag"
)

var (
	ErrUnknownCategory = errors.New("unknown rule category")
	ErrInvalidMode     = errors.New("invalid mode")
	ErrUnknownOption   = errors.New("unknown option")
)

// DefaultAdmonitions maps admonition keywords to French titles.
var DefaultAdmonitions = map[string]string{
	"note":     "Note",
	"abstract": "Résumé",
	"info":     "Info",
	"tip":      "Astuce",
	"success":  "Succès",
	"question": "Question",
	"warning":  "Avertissement",
	"failure":  "Échec",
	"danger":   "Danger",
	"bug":      "Bogue",
	"example":  "Exemple",
	"quote":    "Citation",
	"cite":     "Citation",
	"exercise": "Exercice",
}

type Config struct {
	modes       [diag.NumCategories + 1]Mode
	cssBullets  bool
	cssScope    string
	justify     bool
	injectOnce  bool
	summary     bool
	admonitions map[string]string
	foreign     []string
	naturalized []string
	lexicon     string
}

// Defaults returns the built-in configuration: ligatures are off, casse and
// diacritics only report, every other category fixes.
func Defaults() Config {
	cfg := Config{
		cssBullets:  true,
		cssScope:    "body",
		justify:     true,
		injectOnce:  true,
		admonitions: maps.Clone(DefaultAdmonitions),
	}
	for _, c := range diag.Categories() {
		cfg.modes[c] = ModeFix
	}
	cfg.modes[diag.RuleLigatures] = ModeIgnore
	cfg.modes[diag.RuleCasse] = ModeWarn
	cfg.modes[diag.RuleDiacritics] = ModeWarn
	return cfg
}

// Mode returns the mode of a rule category; non-rule codes are ignored.
func (c Config) Mode(code diag.Code) Mode {
	if !code.IsRule() {
		return ModeIgnore
	}
	return c.modes[code]
}

func (c Config) CSSBullets() bool           { return c.cssBullets }
func (c Config) CSSScope() string           { return c.cssScope }
func (c Config) Justify() bool              { return c.justify }
func (c Config) InjectStylesheetOnce() bool { return c.injectOnce }
func (c Config) Summary() bool              { return c.summary }
func (c Config) LexiconPath() string        { return c.lexicon }

// Admonition returns the translated title for an admonition keyword.
func (c Config) Admonition(kind string) (string, bool) {
	title, ok := c.admonitions[strings.ToLower(kind)]
	return title, ok
}

// Admonitions returns a copy of the merged translation table.
func (c Config) Admonitions() map[string]string {
	return maps.Clone(c.admonitions)
}

// ForeignExtra returns the user-supplied foreign phrases.
func (c Config) ForeignExtra() []string { return slices.Clone(c.foreign) }

// Naturalized returns the user-supplied phrases that must not be italicized.
func (c Config) Naturalized() []string { return slices.Clone(c.naturalized) }

// WithMode returns a copy with the category set to mode.
func (c Config) WithMode(code diag.Code, mode Mode) (Config, error) {
	if !code.IsRule() {
		return c, fmt.Errorf("%w: %d", ErrUnknownCategory, code)
	}
	c.modes[code] = mode
	return c.cloneRefs(), nil
}

// ReportOnly returns a copy where every enabled category reports instead of fixing.
func (c Config) ReportOnly() Config {
	for _, code := range diag.Categories() {
		if c.modes[code] == ModeFix {
			c.modes[code] = ModeWarn
		}
	}
	return c.cloneRefs()
}

// Promote returns a copy where every reporting category fixes.
func (c Config) Promote() Config {
	for _, code := range diag.Categories() {
		if c.modes[code] == ModeWarn {
			c.modes[code] = ModeFix
		}
	}
	return c.cloneRefs()
}

// WithLexicon returns a copy pointing at another lexicon artifact.
func (c Config) WithLexicon(path string) Config {
	c.lexicon = path
	return c.cloneRefs()
}

// Digest identifies everything that influences document output. It keys the
// clean-file cache.
func (c Config) Digest() string {
	h := sha256.New()
	for _, code := range diag.Categories() {
		fmt.Fprintf(h, "%s=%s;", code.ID(), c.modes[code])
	}
	fmt.Fprintf(h, "bullets=%t;", c.cssBullets)
	keys := make([]string, 0, len(c.admonitions))
	for k := range c.admonitions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "adm:%s=%s;", k, c.admonitions[k])
	}
	for _, p := range c.foreign {
		fmt.Fprintf(h, "foreign:%s;", p)
	}
	for _, p := range c.naturalized {
		fmt.Fprintf(h, "natural:%s;", p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c Config) cloneRefs() Config {
	c.admonitions = maps.Clone(c.admonitions)
	c.foreign = slices.Clone(c.foreign)
	c.naturalized = slices.Clone(c.naturalized)
	return c
}
