// Package rules holds the typographic rules. Every rule inspects the text of
// one correctable span and returns the edits it would make; the engine decides
// whether they are applied (fix) or only reported (warn).
package rules

import (
	"fmt"
	"sort"

	"frtypo/internal/config"
	"frtypo/internal/diag"
	"frtypo/internal/fix"
	"frtypo/internal/lexicon"
)

// Edit is a replacement local to one span.
type Edit = fix.Edit

// Rule is one typographic correction. Check must be pure: the same text and
// state always give the same edits, sorted and non-overlapping.
type Rule interface {
	Category() diag.Code
	Priority() int
	Check(text string, st *State) []Edit
}

// base carries the category shared by all rules; the priority is the code.
type base struct {
	code diag.Code
}

func (b base) Category() diag.Code { return b.code }
func (b base) Priority() int       { return int(b.code) }

// Registry is the ordered rule set built for one configuration.
type Registry struct {
	rules []Rule
}

// NewRegistry builds every rule, including ignored ones, ordered by priority.
// The lexicon may be nil; the diacritics rule then never fires.
func NewRegistry(cfg config.Config, lex *lexicon.Lexicon) *Registry {
	rs := []Rule{
		newQuotes(),
		newApostrophe(),
		newDash(),
		newEllipsis(),
		newSpacing(),
		newPunctuation(),
		newUnits(),
		newLigatures(),
		newAbbreviation(),
		newOrdinals(),
		newForeign(cfg.ForeignExtra(), cfg.Naturalized()),
		newBullets(cfg.CSSBullets()),
		newCasse(),
		newDiacritics(lex),
		newAdmonitions(cfg),
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Priority() < rs[j].Priority() })
	return &Registry{rules: rs}
}

// Rules returns the rules in execution order.
func (r *Registry) Rules() []Rule {
	return r.rules
}

// Active returns the rules whose mode is not ignore.
func (r *Registry) Active(cfg config.Config) []Rule {
	out := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		if cfg.Mode(rule.Category()) != config.ModeIgnore {
			out = append(out, rule)
		}
	}
	return out
}

// Get returns the rule of a category.
func (r *Registry) Get(code diag.Code) (Rule, bool) {
	for _, rule := range r.rules {
		if rule.Category() == code {
			return rule, true
		}
	}
	return nil, false
}

// Validate checks that priorities are unique and cover every category.
func (r *Registry) Validate() error {
	seen := make(map[int]diag.Code, len(r.rules))
	for _, rule := range r.rules {
		if prev, ok := seen[rule.Priority()]; ok {
			return fmt.Errorf("rules %s and %s share priority %d", prev, rule.Category(), rule.Priority())
		}
		seen[rule.Priority()] = rule.Category()
	}
	for _, c := range diag.Categories() {
		if _, ok := r.Get(c); !ok {
			return fmt.Errorf("no rule for category %s", c)
		}
	}
	return nil
}
