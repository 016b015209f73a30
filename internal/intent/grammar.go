// Package intent classifies voice transcripts into task commands.
//
// Each language has an ordered table of grammars, one per command kind.
// A grammar is an ordered list of patterns; every pattern captures the task
// title fragment in a group named "title". The table order is the
// tie-break order: the first grammar with a matching pattern wins.
package intent

import (
	"time"

	"github.com/dlclark/regexp2"
	"github.com/runoshun/vtodo/internal/domain"
)

// Form tags the surface shape a pattern covers.
type Form string

const (
	FormExplicit     Form = "explicit"      // "add <title>", "complete <title>"
	FormImplicit     Form = "implicit"      // "i need to <title>", "i finished <title>"
	FormSubjectFirst Form = "subject-first" // "mark <title> as done"
)

// Script tags the writing system a pattern expects.
type Script string

const (
	ScriptLatin  Script = "latin"  // English and Roman Urdu
	ScriptArabic Script = "arabic" // Native Urdu (Nastaliq)
)

// titleGroup is the capture group holding the task title fragment.
const titleGroup = "title"

// matchTimeout bounds a single pattern evaluation.
const matchTimeout = 250 * time.Millisecond

// KindOrder is the fixed evaluation order of grammars. Priority grammars come
// first because their surface forms also satisfy the generic ones.
var KindOrder = []domain.CommandKind{
	domain.CommandSetHighPriority,
	domain.CommandSetNormalPriority,
	domain.CommandCreate,
	domain.CommandComplete,
}

// Pattern is one surface pattern of a grammar.
type Pattern struct {
	re     *regexp2.Regexp
	Expr   string
	Form   Form
	Script Script
}

// newPattern compiles a case-insensitive pattern.
func newPattern(form Form, script Script, expr string) Pattern {
	re := regexp2.MustCompile(expr, regexp2.IgnoreCase|regexp2.Singleline)
	re.MatchTimeout = matchTimeout
	return Pattern{re: re, Expr: expr, Form: form, Script: script}
}

// Match returns the trimmed title fragment when the pattern matches s and
// the fragment is non-empty.
func (p Pattern) Match(s string) (string, bool) {
	m, err := p.re.FindStringMatch(s)
	if err != nil || m == nil {
		return "", false
	}
	g := m.GroupByName(titleGroup)
	if g == nil {
		return "", false
	}
	title := trimSpace(g.String())
	if title == "" {
		return "", false
	}
	return title, true
}

// Grammar is the ordered set of patterns for one command kind in one language.
type Grammar struct {
	Kind     domain.CommandKind
	Patterns []Pattern
}

// Match tries the patterns in declaration order.
func (g Grammar) Match(s string) (string, bool) {
	for _, p := range g.Patterns {
		if title, ok := p.Match(s); ok {
			return title, true
		}
	}
	return "", false
}

// Forms returns the set of forms covered for the given script.
func (g Grammar) Forms(script Script) map[Form]bool {
	forms := make(map[Form]bool)
	for _, p := range g.Patterns {
		if p.Script == script {
			forms[p.Form] = true
		}
	}
	return forms
}

// Table is the ordered grammar list of one language.
type Table []Grammar

// tables holds the grammar table of every supported language.
var tables = map[domain.Language]Table{
	domain.LanguageEnglish: englishTable(),
	domain.LanguageUrdu:    urduTable(),
}

// Grammars returns a copy of the grammar table for lang, or nil if the
// language has none.
func Grammars(lang domain.Language) Table {
	t, ok := tables[lang]
	if !ok {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// newTable arranges grammars in KindOrder.
func newTable(byKind map[domain.CommandKind][]Pattern) Table {
	t := make(Table, 0, len(KindOrder))
	for _, kind := range KindOrder {
		t = append(t, Grammar{Kind: kind, Patterns: byKind[kind]})
	}
	return t
}
