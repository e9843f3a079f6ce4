package region

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/adrg/frontmatter"

	"frtypo/internal/diag"
	"frtypo/internal/source"
)

const (
	ignoreStart = "fr-typo-ignore-start"
	ignoreNext  = "fr-typo-ignore"
)

var (
	ignoreEndRe = regexp.MustCompile(`<!--\s*(?:fr-typo-ignore-end|/fr-typo-ignore)\s*-->`)
	autolinkRe  = regexp.MustCompile(`^<(?:[A-Za-z][A-Za-z0-9+.-]{1,31}:[^\s<>]*|[^\s@<>]+@[^\s@<>]+\.[^\s@<>]+)>`)
	tagRe       = regexp.MustCompile(`^<(/?)([A-Za-z][A-Za-z0-9-]*)((?:\s+[^\s"'<>/=]+(?:\s*=\s*(?:"[^"]*"|'[^']*'|[^\s"'=<>` + "`" + `]+))?)*)\s*(/?)>`)
	ignoreAttr  = regexp.MustCompile(`(?i)(?:class\s*=\s*["']?[^"'>]*\bfr-typo-ignore\b|data-fr-typo\s*=\s*["']?ignore)`)
	attrListRe  = regexp.MustCompile(`^\{(?::[^{}\n]*|[ \t]*[#.][^{}\n]*)\}`)
	footnoteRe  = regexp.MustCompile(`^\[\^[^\]\s]+\]:?`)
	refDefRe    = regexp.MustCompile(`^ {0,3}\[[^\^\]\n][^\]\n]*\]:[ \t]*\S[^\n]*`)
)

// wrapperTags are inline elements whose whole content is left alone.
var wrapperTags = map[string]bool{
	"span": true, "code": true, "kbd": true, "samp": true, "var": true,
	"time": true, "data": true, "abbr": true, "a": true, "pre": true,
	"script": true, "style": true, "math": true,
}

type scanner struct {
	src   string
	spans []Span
	last  int
	rep   diag.Reporter
}

// Classify partitions text into correctable and protected spans. Structural
// problems (unterminated markers, malformed front matter) come back as
// warning records; the region after an unterminated marker is protected.
func Classify(text string) ([]Span, []diag.Record) {
	bag := diag.NewBag(0)
	s := &scanner{src: text, rep: diag.BagReporter{Bag: bag}}
	s.run()
	return s.spans, bag.Items()
}

func (s *scanner) run() {
	i := 0
	if strings.HasPrefix(s.src, "---") {
		i = s.frontMatter()
	}
	for i < len(s.src) {
		i = s.step(i)
	}
	s.flush(len(s.src))
}

// step inspects position i and returns the next position to look at.
func (s *scanner) step(i int) int {
	src := s.src
	if i == 0 || src[i-1] == '\n' {
		if end, ok := s.fence(i); ok {
			return end
		}
		if m := refDefRe.FindStringIndex(src[i:]); m != nil {
			return s.protect(i, i+m[1], ReasonLinkOrURL)
		}
	}
	switch c := src[i]; {
	case c == '`' && !escaped(src, i):
		return s.inlineCode(i)
	case c == '$' && !escaped(src, i):
		return s.math(i)
	case c == '<' && !escaped(src, i):
		return s.angle(i)
	case c == ']':
		return s.linkTail(i)
	case c == '[':
		if m := footnoteRe.FindStringIndex(src[i:]); m != nil {
			return s.protect(i, i+m[1], ReasonLinkOrURL)
		}
	case c == '{':
		return s.brace(i)
	case isASCIILetter(c) && !wordBefore(src, i):
		return s.bareURL(i)
	}
	return i + 1
}

func (s *scanner) flush(upTo int) {
	if upTo > s.last {
		s.spans = append(s.spans, Span{Kind: Correctable, Start: s.last, End: upTo, Text: s.src[s.last:upTo]})
		s.last = upTo
	}
}

func (s *scanner) protect(start, end int, reason Reason) int {
	if end <= start {
		return start + 1
	}
	s.flush(start)
	s.spans = append(s.spans, Span{Kind: Protected, Reason: reason, Start: start, End: end, Text: s.src[start:end]})
	s.last = end
	return end
}

// unterminated reports an open marker without its closing counterpart and
// protects everything from the marker to the end of the document.
func (s *scanner) unterminated(start, markerEnd int, reason Reason, what string) int {
	diag.ReportWarning(s.rep, diag.StructUnterminated, source.SpanOf(0, start, markerEnd),
		"unterminated "+what+"; the rest of the document is left untouched").
		WithChange(s.src[start:markerEnd], "").
		At(source.LineColOf(s.src, start)).
		Emit()
	return s.protect(start, len(s.src), reason)
}

func (s *scanner) frontMatter() int {
	first, next := line(s.src, 0)
	if strings.TrimRight(first, "\r") != "---" {
		return 0
	}
	for pos := next; pos < len(s.src); {
		l, n := line(s.src, pos)
		if t := strings.TrimRight(l, "\r"); t == "---" || t == "..." {
			s.validateFrontMatter(s.src[next:pos], len(first))
			return s.protect(0, pos+len(l), ReasonFrontMatter)
		}
		pos = n
	}
	return s.unterminated(0, len(first), ReasonFrontMatter, "front matter")
}

func (s *scanner) validateFrontMatter(body string, markerEnd int) {
	if strings.TrimSpace(body) == "" {
		return
	}
	var meta map[string]any
	if _, err := frontmatter.Parse(strings.NewReader("---\n"+body+"---\n"), &meta); err != nil {
		diag.ReportWarning(s.rep, diag.StructFrontMatter, source.SpanOf(0, 0, markerEnd),
			"malformed front matter: "+err.Error()).
			WithChange(s.src[:markerEnd], "").
			At(source.LineCol{Line: 1, Col: 1}).
			Emit()
	}
}

func (s *scanner) fence(i int) (int, bool) {
	l, next := line(s.src, i)
	rest := strings.TrimLeft(l, " \t")
	if len(rest) < 3 || (rest[0] != '`' && rest[0] != '~') {
		return 0, false
	}
	ch := rest[0]
	n := runLen(rest, ch)
	if n < 3 {
		return 0, false
	}
	if ch == '`' && strings.IndexByte(rest[n:], '`') >= 0 {
		return 0, false
	}
	for pos := next; pos < len(s.src); {
		cl, cnext := line(s.src, pos)
		t := strings.TrimSpace(cl)
		if len(t) >= n && runLen(t, ch) == len(t) {
			return s.protect(i, pos+len(cl), ReasonCodeFence), true
		}
		pos = cnext
	}
	return s.unterminated(i, i+len(l), ReasonCodeFence, "code fence"), true
}

func (s *scanner) inlineCode(i int) int {
	src := s.src
	n := runLen(src[i:], '`')
	for j := i + n; j < len(src); {
		k := strings.IndexByte(src[j:], '`')
		if k < 0 || hasBlankLine(src[j:j+k]) {
			break
		}
		k += j
		m := runLen(src[k:], '`')
		if m == n {
			end := k + m
			if loc := attrListRe.FindStringIndex(src[end:]); loc != nil {
				end += loc[1]
			}
			return s.protect(i, end, ReasonInlineCode)
		}
		j = k + m
	}
	// непарные обратные кавычки остаются обычным текстом
	return i + n
}

func (s *scanner) math(i int) int {
	src := s.src
	if strings.HasPrefix(src[i:], "$$") {
		k := strings.Index(src[i+2:], "$$")
		if k < 0 {
			return s.unterminated(i, i+2, ReasonMathBlock, "display math")
		}
		return s.protect(i, i+2+k+2, ReasonMathBlock)
	}
	if i+1 >= len(src) || isSpaceByte(src[i+1]) {
		return i + 1
	}
	lineEnd := strings.IndexByte(src[i:], '\n')
	if lineEnd < 0 {
		lineEnd = len(src)
	} else {
		lineEnd += i
	}
	for k := i + 1; k < lineEnd; k++ {
		if src[k] != '$' || escaped(src, k) || isSpaceByte(src[k-1]) {
			continue
		}
		if k+1 < len(src) && isDigit(src[k+1]) {
			continue
		}
		return s.protect(i, k+1, ReasonMathInline)
	}
	return i + 1
}

func (s *scanner) angle(i int) int {
	src := s.src
	rest := src[i:]
	if strings.HasPrefix(rest, "<!--") {
		k := strings.Index(rest[4:], "-->")
		if k < 0 {
			return s.unterminated(i, i+4, ReasonMarkup, "HTML comment")
		}
		end := i + 4 + k + 3
		switch strings.TrimSpace(rest[4 : 4+k]) {
		case ignoreStart:
			loc := ignoreEndRe.FindStringIndex(src[end:])
			if loc == nil {
				return s.unterminated(i, end, ReasonExplicitIgnore, "ignore marker")
			}
			return s.protect(i, end+loc[1], ReasonExplicitIgnore)
		case ignoreNext:
			return s.protect(i, s.nextBlockEnd(end), ReasonExplicitIgnore)
		}
		return s.protect(i, end, ReasonMarkup)
	}
	if m := autolinkRe.FindStringIndex(rest); m != nil {
		return s.protect(i, i+m[1], ReasonLinkOrURL)
	}
	m := tagRe.FindStringSubmatchIndex(rest)
	if m == nil {
		return i + 1
	}
	tagEnd := i + m[1]
	closing := m[3] > m[2]
	selfClosing := m[9] > m[8]
	name := strings.ToLower(rest[m[4]:m[5]])
	attrs := rest[m[6]:m[7]]
	if !closing && !selfClosing && (wrapperTags[name] || ignoreAttr.MatchString(attrs)) {
		end, ok := s.closeTag(tagEnd, name)
		if !ok {
			return s.unterminated(i, tagEnd, ReasonInlineIgnoreSpan, "<"+name+"> element")
		}
		return s.protect(i, end, ReasonInlineIgnoreSpan)
	}
	return s.protect(i, tagEnd, ReasonMarkup)
}

// closeTag finds the end of the element opened before from, counting nested
// elements of the same name.
func (s *scanner) closeTag(from int, name string) (int, bool) {
	src := s.src
	depth := 1
	for pos := from; pos < len(src); {
		k := strings.IndexByte(src[pos:], '<')
		if k < 0 {
			break
		}
		pos += k
		m := tagRe.FindStringSubmatchIndex(src[pos:])
		if m == nil || !strings.EqualFold(src[pos+m[4]:pos+m[5]], name) {
			pos++
			continue
		}
		switch {
		case m[3] > m[2]:
			depth--
			if depth == 0 {
				return pos + m[1], true
			}
		case m[9] == m[8]:
			depth++
		}
		pos += m[1]
	}
	return 0, false
}

// nextBlockEnd returns the end of the first non-blank block after from.
func (s *scanner) nextBlockEnd(from int) int {
	src := s.src
	pos := from
	for pos < len(src) && isSpaceByte(src[pos]) {
		pos++
	}
	if pos >= len(src) {
		return from
	}
	end := pos
	for pos < len(src) {
		l, next := line(src, pos)
		if strings.TrimSpace(l) == "" {
			break
		}
		end = pos + len(l)
		pos = next
	}
	return end
}

func (s *scanner) linkTail(i int) int {
	src := s.src
	if i+1 >= len(src) {
		return i + 1
	}
	switch src[i+1] {
	case '(':
		if end, ok := matchParen(src, i+1); ok {
			return s.protect(i+1, end, ReasonLinkOrURL)
		}
	case '[':
		k := strings.IndexAny(src[i+2:], "]\n")
		if k >= 0 && src[i+2+k] == ']' {
			return s.protect(i+1, i+2+k+1, ReasonLinkOrURL)
		}
	}
	return i + 1
}

func (s *scanner) brace(i int) int {
	rest := s.src[i:]
	for _, pair := range [][2]string{{"{{", "}}"}, {"{%", "%}"}} {
		if strings.HasPrefix(rest, pair[0]) {
			k := strings.Index(rest[2:], pair[1])
			if k < 0 {
				return i + 2
			}
			return s.protect(i, i+2+k+2, ReasonMarkup)
		}
	}
	if m := attrListRe.FindStringIndex(rest); m != nil {
		return s.protect(i, i+m[1], ReasonMarkup)
	}
	return i + 1
}

// bareURL protects scheme://… and mailto:… runs starting at a word boundary.
func (s *scanner) bareURL(i int) int {
	src := s.src
	j := i
	for j < len(src) && j-i <= 16 && (isASCIILetter(src[j]) || isDigit(src[j]) || src[j] == '+' || src[j] == '.' || src[j] == '-') {
		j++
	}
	rest := src[j:]
	switch {
	case strings.HasPrefix(rest, "://"):
		j += 3
	case strings.EqualFold(src[i:j], "mailto") && strings.HasPrefix(rest, ":"):
		j++
	default:
		return i + 1
	}
	for j < len(src) && src[j] < 0x80 && !isSpaceByte(src[j]) && !strings.ContainsRune("<>\"`", rune(src[j])) {
		j++
	}
	url := trimURLTail(src[i:j])
	return s.protect(i, i+len(url), ReasonLinkOrURL)
}

func trimURLTail(url string) string {
	for len(url) > 0 {
		last := url[len(url)-1]
		switch {
		case strings.IndexByte(".,;:!?*_'", last) >= 0:
			url = url[:len(url)-1]
		case last == ')' && strings.Count(url, "(") < strings.Count(url, ")"):
			url = url[:len(url)-1]
		default:
			return url
		}
	}
	return url
}

func matchParen(src string, open int) (int, bool) {
	depth := 0
	for k := open; k < len(src) && k < open+4096; k++ {
		switch src[k] {
		case '\\':
			k++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return k + 1, true
			}
		case '\n':
			if strings.HasPrefix(strings.TrimLeft(src[k+1:], " \t\r"), "\n") {
				return 0, false
			}
		}
	}
	return 0, false
}

// line returns the line starting at pos without its '\n' and the offset of the next line.
func line(src string, pos int) (string, int) {
	k := strings.IndexByte(src[pos:], '\n')
	if k < 0 {
		return src[pos:], len(src)
	}
	return src[pos : pos+k], pos + k + 1
}

func hasBlankLine(s string) bool {
	for {
		k := strings.IndexByte(s, '\n')
		if k < 0 {
			return false
		}
		s = s[k+1:]
		rest := strings.TrimLeft(s, " \t\r")
		if strings.HasPrefix(rest, "\n") {
			return true
		}
	}
}

func runLen(s string, ch byte) int {
	n := 0
	for n < len(s) && s[n] == ch {
		n++
	}
	return n
}

func escaped(src string, i int) bool {
	n := 0
	for k := i - 1; k >= 0 && src[k] == '\\'; k-- {
		n++
	}
	return n%2 == 1
}

func isASCIILetter(c byte) bool { return c|0x20 >= 'a' && c|0x20 <= 'z' }
func isDigit(c byte) bool       { return c >= '0' && c <= '9' }
func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// wordBefore reports whether the rune ending at i belongs to a word. No-break
// spaces, guillemets and ellipses are boundaries; accented letters are not.
func wordBefore(src string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(src[:i])
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
