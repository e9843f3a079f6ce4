package config

import (
	"fmt"
	"strings"
)

// Mode selects how a rule category behaves.
type Mode uint8

const (
	// ModeIgnore skips the rule entirely.
	ModeIgnore Mode = iota
	// ModeWarn reports would-be changes without touching the text.
	ModeWarn
	// ModeFix rewrites the text.
	ModeFix
)

func (m Mode) String() string {
	switch m {
	case ModeIgnore:
		return "ignore"
	case ModeWarn:
		return "warn"
	case ModeFix:
		return "fix"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode parses "fix", "warn" or "ignore" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore", "off":
		return ModeIgnore, nil
	case "warn", "check":
		return ModeWarn, nil
	case "fix":
		return ModeFix, nil
	}
	return ModeIgnore, fmt.Errorf("%w %q (want fix, warn or ignore)", ErrInvalidMode, s)
}
