// Package engine runs the rule set over the correctable spans of a document.
//
// A document goes Start → Classified → rule 1 → … → rule N → Done. Each rule
// sees the text left by the previous one; protected spans pass through
// untouched and are reassembled at the end.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"frtypo/internal/config"
	"frtypo/internal/diag"
	"frtypo/internal/fix"
	"frtypo/internal/lexicon"
	"frtypo/internal/region"
	"frtypo/internal/rules"
	"frtypo/internal/source"
	"frtypo/internal/trace"
)

// Document is one unit of work.
type Document struct {
	Path string
	Text string
	File source.FileID
}

// Result is what Process returns for one document.
type Result struct {
	Path    string
	Text    string
	Records []diag.Record
	// Fixed reports that at least one edit was applied to Text.
	Fixed bool
	// Warned reports findings left in the text.
	Warned bool
	// Failed reports that a rule failed on at least one span.
	Failed bool

	Timings Timings
}

// Timings splits the processing time of one document.
type Timings struct {
	Classify time.Duration
	Rules    time.Duration
}

// Engine is immutable after New and safe for concurrent Process calls.
type Engine struct {
	cfg    config.Config
	active []rules.Rule
}

// New builds the rule set for cfg. The lexicon may be nil.
func New(cfg config.Config, lex *lexicon.Lexicon) (*Engine, error) {
	reg := rules.NewRegistry(cfg, lex)
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("rule registry: %w", err)
	}
	return &Engine{cfg: cfg, active: reg.Active(cfg)}, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.Config { return e.cfg }

// Rules returns the rules that run, in order.
func (e *Engine) Rules() []rules.Rule { return e.active }

// Process corrects one document. It never fails: structural problems and rule
// failures come back as records.
func (e *Engine) Process(ctx context.Context, doc Document) Result {
	tr := trace.FromContext(ctx)
	docSpan := trace.Begin(tr, trace.ScopeDocument, doc.Path, trace.CurrentSpan(ctx))

	bag := diag.NewBag(0)
	res := Result{Path: doc.Path}

	start := time.Now()
	spans, structural := region.Classify(doc.Text)
	for _, rec := range structural {
		rec.Primary.File = doc.File
		bag.Add(rec)
	}
	res.Timings.Classify = time.Since(start)

	start = time.Now()
	for _, rule := range e.active {
		e.runRule(tr, docSpan.ID(), doc.File, rule, spans, bag)
	}
	res.Timings.Rules = time.Since(start)

	res.Text = join(spans)
	res.Records = bag.Items()
	for _, rec := range res.Records {
		switch rec.Severity {
		case diag.SevFix:
			res.Fixed = true
		case diag.SevWarning:
			res.Warned = true
		case diag.SevError:
			res.Failed = true
		}
	}

	docSpan.WithExtra("records", fmt.Sprint(len(res.Records))).End("")
	return res
}

// runRule walks every span once. Record positions refer to the document as it
// stood before this rule ran.
func (e *Engine) runRule(tr trace.Tracer, parent uint64, file source.FileID, rule rules.Rule, spans []region.Span, bag *diag.Bag) {
	code := rule.Category()
	apply := e.cfg.Mode(code) == config.ModeFix
	before := join(spans)
	st := rules.NewState()

	pos := 0
	for i := range spans {
		sp := &spans[i]
		base := pos
		pos += len(sp.Text)

		if sp.Protected() {
			if sp.Reason.Block() {
				st.Break()
			} else {
				st.Continue()
			}
			continue
		}

		edits, err := check(rule, sp.Text, st)
		for _, note := range st.DrainTraces() {
			trace.Point(tr, trace.ScopeRule, code.ID(), note, parent)
		}
		if err != nil {
			bag.Add(diag.New(diag.SevError, diag.RuleFailure,
				source.SpanOf(file, base, base+len(sp.Text)),
				fmt.Sprintf("rule %s failed: %v", code.ID(), err)).
				At(source.LineColOf(before, base)))
			trace.Failure(tr, trace.ScopeRule, code.ID(), err.Error(), parent)
			st.Advance(sp.Text)
			continue
		}

		for _, ed := range edits {
			sev := diag.SevWarning
			if apply {
				sev = diag.SevFix
			}
			msg := ed.Note
			if msg == "" {
				msg = code.Title()
			}
			bag.Add(diag.New(sev, code, source.SpanOf(file, base+ed.Start, base+ed.End), msg).
				WithChange(ed.Before, ed.After).
				At(source.LineColOf(before, base+ed.Start)))
		}
		if apply && len(edits) > 0 {
			sp.Text = fix.Apply(sp.Text, edits)
		}
		st.Advance(sp.Text)
	}

	relayout(spans)
}

// check runs one rule on one span. A panic or an invalid edit set becomes an
// error and the span is kept as it was.
func check(rule rules.Rule, text string, st *rules.State) (edits []rules.Edit, err error) {
	defer func() {
		if r := recover(); r != nil {
			edits, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	edits = rule.Check(text, st)
	if err := fix.Validate(text, edits); err != nil {
		return nil, err
	}
	return edits, nil
}

func join(spans []region.Span) string {
	var sb strings.Builder
	for _, sp := range spans {
		sb.WriteString(sp.Text)
	}
	return sb.String()
}

// relayout recomputes offsets after span texts changed.
func relayout(spans []region.Span) {
	pos := 0
	for i := range spans {
		spans[i].Start = pos
		pos += len(spans[i].Text)
		spans[i].End = pos
	}
}
