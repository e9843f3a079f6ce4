package rules

import (
	"regexp"
	"strings"

	"frtypo/internal/config"
	"frtypo/internal/diag"
)

// admonitionHeader: indent, marker, type, options, optional "title".
var admonitionHeader = regexp.MustCompile(`^([ \t]*)(!!!|\?\?\?\+?)[ \t]+([A-Za-z0-9_-]+)((?:[ \t]+[^\s"]\S*)*)([ \t]+"[^"]*")?[ \t]*$`)

type admonitions struct {
	base
	titles map[string]string
}

func newAdmonitions(cfg config.Config) *admonitions {
	return &admonitions{base: base{diag.RuleAdmonitions}, titles: cfg.Admonitions()}
}

// Check gives untitled admonitions a French title. An explicit title, even
// an empty one, is kept.
func (a *admonitions) Check(text string, _ *State) []Edit {
	var edits []Edit
	forEachLine(text, func(start int, line string) {
		m := admonitionHeader.FindStringSubmatchIndex(line)
		if m == nil || m[10] >= 0 {
			return
		}
		kind := line[m[6]:m[7]]
		title, ok := a.titles[strings.ToLower(kind)]
		if !ok || title == "" {
			return
		}
		before := line[m[4]:m[9]]
		edits = append(edits, Edit{
			Start:  start + m[4],
			End:    start + m[9],
			Before: before,
			After:  before + ` "` + title + `"`,
			Note:   "admonition title " + title,
		})
	})
	return edits
}
