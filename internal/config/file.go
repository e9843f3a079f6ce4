package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = "frtypo.toml"

// Template is written by `frtypo init`.
const Template = `# frtypo configuration
# Modes: fix | warn | ignore

# lexicon = "data/lexicon.msgpack.xz"

[rules]
quotes = "fix"
apostrophe = "fix"
dash = "fix"
ellipsis = "fix"
spacing = "fix"
punctuation = "fix"
units = "fix"
ligatures = "ignore"
abbreviation = "fix"
ordinals = "fix"
foreign = "fix"
bullets = "fix"
casse = "warn"
diacritics = "warn"
admonitions = "fix"

[options]
css_bullets = true
css_scope = "body"
justify = true
inject_stylesheet_once = true

[admonitions]
# note = "Remarque"

[foreign]
extra = []
naturalized = []
`

type fileConfig struct {
	Lexicon     string            `toml:"lexicon"`
	Rules       map[string]string `toml:"rules"`
	Options     fileOptions       `toml:"options"`
	Admonitions map[string]string `toml:"admonitions"`
	Foreign     fileForeign       `toml:"foreign"`
}

type fileOptions struct {
	CSSBullets           *bool  `toml:"css_bullets"`
	CSSScope             string `toml:"css_scope"`
	Justify              *bool  `toml:"justify"`
	InjectStylesheetOnce *bool  `toml:"inject_stylesheet_once"`
	Summary              bool   `toml:"summary"`
}

type fileForeign struct {
	Extra       []string `toml:"extra"`
	Naturalized []string `toml:"naturalized"`
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadFile decodes a configuration file over Defaults. Unknown keys are
// errors; a relative lexicon path is resolved against the file's directory.
func LoadFile(path string) (Config, error) {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: %w %q", path, ErrUnknownOption, undecoded[0].String())
	}

	cfg, err := FromOptions(Options{
		Rules:                fc.Rules,
		CSSBullets:           fc.Options.CSSBullets,
		CSSScope:             fc.Options.CSSScope,
		Justify:              fc.Options.Justify,
		InjectStylesheetOnce: fc.Options.InjectStylesheetOnce,
		Summary:              fc.Options.Summary,
		Admonitions:          fc.Admonitions,
		Foreign:              fc.Foreign.Extra,
		Naturalized:          fc.Foreign.Naturalized,
		Lexicon:              fc.Lexicon,
	})
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.lexicon != "" && !filepath.IsAbs(cfg.lexicon) {
		cfg.lexicon = filepath.Join(filepath.Dir(path), cfg.lexicon)
	}
	return cfg, nil
}

// Discover loads the nearest configuration file, or Defaults when there is none.
// The returned path is empty in the latter case.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Defaults(), "", nil
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}
