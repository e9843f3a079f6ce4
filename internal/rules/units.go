package rules

import (
	"regexp"
	"sort"
	"strings"

	"frtypo/internal/diag"
)

var (
	siPrefixes = []string{
		"y", "z", "a", "f", "p", "n", "µ", "μ", "m", "c", "d", "da",
		"h", "k", "M", "G", "T", "P", "E", "Z", "Y",
	}
	prefixedUnits = []string{
		"m", "g", "s", "A", "K", "mol", "cd", "Hz", "N", "Pa", "J", "W",
		"C", "V", "F", "Ω", "S", "Wb", "T", "H", "lm", "lx", "Bq", "Gy",
		"Sv", "kat", "L", "l", "B", "o", "bit",
	}
	plainUnits = []string{
		"%", "‰", "°C", "°F", "°", "min", "h", "j", "an", "ha", "kWh", "Wh",
		"mAh", "dB", "ppm", "ppb", "bar", "atm", "mmHg", "rad", "sr",
		"ko", "Mo", "Go", "To",
	}
	currencies = []string{"€", "$", "£", "¥", "CHF", "CAD", "USD", "EUR"}
)

// unitPattern matches a number, optional blanks and the longest known unit.
var unitPattern = buildUnitPattern()

func buildUnitPattern() *regexp.Regexp {
	set := make(map[string]struct{})
	for _, u := range prefixedUnits {
		set[u] = struct{}{}
		for _, p := range siPrefixes {
			set[p+u] = struct{}{}
		}
	}
	for _, u := range plainUnits {
		set[u] = struct{}{}
	}
	for _, u := range currencies {
		set[u] = struct{}{}
	}
	units := make([]string, 0, len(set))
	for u := range set {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool {
		if len(units[i]) != len(units[j]) {
			return len(units[i]) > len(units[j])
		}
		return units[i] < units[j]
	})
	for i, u := range units {
		units[i] = regexp.QuoteMeta(u)
	}
	return regexp.MustCompile(`(\d+(?:[.,]\d+)?)([ \t\x{00A0}\x{202F}]*)(` + strings.Join(units, "|") + `)`)
}

type units struct{ base }

func newUnits() *units { return &units{base{diag.RuleUnits}} }

func (u *units) Check(text string, _ *State) []Edit {
	var edits []Edit
	for _, m := range unitPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		prev := runeBefore(text, start)
		if isWordRune(prev) {
			continue
		}
		if (prev == '.' || prev == ',') && isWordRune(runeBefore(text, start-1)) {
			continue
		}
		if next := runeAt(text, end); isWordRune(next) || next == '%' || next == '°' {
			continue
		}
		if text[m[4]:m[5]] == NNBSP {
			continue
		}
		number, unit := text[m[2]:m[3]], text[m[6]:m[7]]
		edits = append(edits, Edit{
			Start:  start,
			End:    end,
			Before: text[start:end],
			After:  number + NNBSP + unit,
			Note:   "narrow no-break space before unit " + unit,
		})
	}
	return edits
}
