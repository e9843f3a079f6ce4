package rules

import (
	"frtypo/internal/diag"
	"frtypo/internal/fix"
)

// ligatureWords maps spellings without ligature to the correct form.
var ligatureWords = map[string]string{
	"coeur": "cœur", "coeurs": "cœurs",
	"soeur": "sœur", "soeurs": "sœurs",
	"oeuvre": "œuvre", "oeuvres": "œuvres",
	"oeuf": "œuf", "oeufs": "œufs",
	"boeuf": "bœuf", "boeufs": "bœufs",
	"noeud": "nœud", "noeuds": "nœuds",
	"voeu": "vœu", "voeux": "vœux",
	"oeil": "œil", "oedipe": "œdipe",
	"oeillet": "œillet", "oeillets": "œillets",
	"oeillère": "œillère", "oeillères": "œillères",
	"choeur": "chœur", "choeurs": "chœurs",
	"rancoeur": "rancœur", "rancoeurs": "rancœurs",
	"manoeuvre": "manœuvre", "manoeuvres": "manœuvres",
	"oecuménique": "œcuménique", "oecuméniques": "œcuméniques",
	"oenologue": "œnologue", "oenologues": "œnologues",
	"oestrogène": "œstrogène", "oestrogènes": "œstrogènes",
	"écoeurant": "écœurant", "écoeurante": "écœurante",
	"moeurs": "mœurs", "oesophage": "œsophage",
	"oedème": "œdème", "foetus": "fœtus",
	"oenologie": "œnologie", "taenia": "tænia",
	"naevus": "nævus", "caecum": "cæcum",
	"ex aequo": "ex æquo", "et caetera": "et cætera",
	"curriculum vitae": "curriculum vitæ",
}

type ligatures struct {
	base
	words *phraseMatcher
}

func newLigatures() *ligatures {
	return &ligatures{base: base{diag.RuleLigatures}, words: newPhraseMatcher(ligatureWords)}
}

func (l *ligatures) Check(text string, _ *State) []Edit {
	var edits []Edit
	for _, m := range l.words.find(text, "") {
		before := text[m.start:m.end]
		after := recase(m.canonical, before)
		if after == "" || after == before {
			continue
		}
		edits = append(edits, fix.Replace(text, m.start, m.end, after, "ligature"))
	}
	return edits
}
