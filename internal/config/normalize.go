package config

import (
	"fmt"
	"strings"

	"frtypo/internal/diag"
)

// Options is the typed shape a host build system may hand over.
type Options struct {
	Rules                map[string]string
	CSSBullets           *bool
	CSSScope             string
	Justify              *bool
	InjectStylesheetOnce *bool
	Summary              bool
	Admonitions          map[string]string
	Foreign              []string
	Naturalized          []string
	Lexicon              string
}

// Normalize converts any supported host shape into a Config. It is the only
// place where the shape of the input is inspected; unknown categories, modes
// and keys are rejected before any document is processed.
func Normalize(raw any) (Config, error) {
	switch v := raw.(type) {
	case nil:
		return Defaults(), nil
	case Config:
		return v.cloneRefs(), nil
	case *Config:
		if v == nil {
			return Defaults(), nil
		}
		return v.cloneRefs(), nil
	case Options:
		return FromOptions(v)
	case *Options:
		if v == nil {
			return Defaults(), nil
		}
		return FromOptions(*v)
	case map[string]any:
		return FromMap(v)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[k] = val
		}
		return FromMap(m)
	}
	return Config{}, fmt.Errorf("unsupported configuration shape %T", raw)
}

// FromOptions applies the typed host shape over Defaults.
func FromOptions(o Options) (Config, error) {
	cfg := Defaults()
	for name, mode := range o.Rules {
		if err := cfg.setMode(name, mode); err != nil {
			return Config{}, err
		}
	}
	if o.CSSBullets != nil {
		cfg.cssBullets = *o.CSSBullets
	}
	if s := strings.TrimSpace(o.CSSScope); s != "" {
		cfg.cssScope = s
	}
	if o.Justify != nil {
		cfg.justify = *o.Justify
	}
	if o.InjectStylesheetOnce != nil {
		cfg.injectOnce = *o.InjectStylesheetOnce
	}
	cfg.summary = o.Summary
	for kind, title := range o.Admonitions {
		cfg.mergeAdmonition(kind, title)
	}
	cfg.foreign = appendPhrases(cfg.foreign, o.Foreign)
	cfg.naturalized = appendPhrases(cfg.naturalized, o.Naturalized)
	cfg.lexicon = strings.TrimSpace(o.Lexicon)
	return cfg, nil
}

// FromMap applies a loosely typed mapping (as decoded from a host's YAML or
// JSON configuration) over Defaults. Category keys take a mode string; option
// keys follow the host plugin names, with short aliases.
func FromMap(m map[string]any) (Config, error) {
	cfg := Defaults()
	for key, val := range m {
		if err := cfg.applyKey(key, val); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func (c *Config) applyKey(key string, val any) error {
	k := strings.ToLower(strings.TrimSpace(key))
	// "foreign" is both a category and the phrase list; the value type decides
	_, isString := val.(string)
	if _, ok := diag.ParseCategory(k); ok && (k != "foreign" || isString) {
		s, err := asString(key, val)
		if err != nil {
			return err
		}
		return c.setMode(k, s)
	}
	switch k {
	case "rules":
		rules, ok := val.(map[string]any)
		if !ok {
			return fmt.Errorf("%q: expected a mapping, got %T", key, val)
		}
		for name, mode := range rules {
			s, err := asString(name, mode)
			if err != nil {
				return err
			}
			if err := c.setMode(name, s); err != nil {
				return err
			}
		}
	case "enable_css_bullets", "css_bullets":
		b, err := asBool(key, val)
		if err != nil {
			return err
		}
		c.cssBullets = b
	case "css_scope_selector", "css_scope":
		s, err := asString(key, val)
		if err != nil {
			return err
		}
		if s = strings.TrimSpace(s); s != "" {
			c.cssScope = s
		}
	case "justify":
		b, err := asBool(key, val)
		if err != nil {
			return err
		}
		c.justify = b
	case "inject_stylesheet_once":
		b, err := asBool(key, val)
		if err != nil {
			return err
		}
		c.injectOnce = b
	case "summary":
		b, err := asBool(key, val)
		if err != nil {
			return err
		}
		c.summary = b
	case "admonition_translations":
		return c.applyAdmonitions(key, val)
	case "foreign", "foreign_phrases", "naturalized":
		list, err := asStrings(key, val)
		if err != nil {
			return err
		}
		if k != "naturalized" {
			c.foreign = appendPhrases(c.foreign, list)
		} else {
			c.naturalized = appendPhrases(c.naturalized, list)
		}
	case "lexicon":
		s, err := asString(key, val)
		if err != nil {
			return err
		}
		c.lexicon = strings.TrimSpace(s)
	case "force_line_markers":
		// принимается для совместимости, на движок не влияет
	default:
		return fmt.Errorf("%w %q", ErrUnknownOption, key)
	}
	return nil
}

func (c *Config) applyAdmonitions(key string, val any) error {
	switch tr := val.(type) {
	case nil:
	case map[string]string:
		for kind, title := range tr {
			c.mergeAdmonition(kind, title)
		}
	case map[string]any:
		for kind, title := range tr {
			if title == nil {
				continue
			}
			s, err := asString(key+"."+kind, title)
			if err != nil {
				return err
			}
			c.mergeAdmonition(kind, s)
		}
	default:
		return fmt.Errorf("%q: expected a mapping, got %T", key, val)
	}
	return nil
}

func (c *Config) setMode(name, mode string) error {
	code, ok := diag.ParseCategory(name)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCategory, name)
	}
	m, err := ParseMode(mode)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	c.modes[code] = m
	return nil
}

// mergeAdmonition overrides one translation; empty titles are skipped.
func (c *Config) mergeAdmonition(kind, title string) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" || strings.TrimSpace(title) == "" {
		return
	}
	c.admonitions[kind] = title
}

func appendPhrases(dst, src []string) []string {
	for _, p := range src {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			dst = append(dst, p)
		}
	}
	return dst
}

func asString(key string, val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case Mode:
		return v.String(), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return "", fmt.Errorf("%q: expected a string, got %T", key, val)
}

func asBool(key string, val any) (bool, error) {
	if b, ok := val.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("%q: expected a boolean, got %T", key, val)
}

func asStrings(key string, val any) ([]string, error) {
	switch v := val.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, err := asString(fmt.Sprintf("%s[%d]", key, i), item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%q: expected a list, got %T", key, val)
}
