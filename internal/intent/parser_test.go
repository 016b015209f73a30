package intent

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/vtodo/internal/domain"
)

func TestParse_English(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.Command
	}{
		{"add todo", "Add todo: Buy milk", create("Buy milk")},
		{"surrounding whitespace", "  add todo: Buy milk \n", create("Buy milk")},
		{"bare add", "add call the bank", create("call the bank")},
		{"new task", "new task water the plants", create("water the plants")},
		{"list form", "put eggs on my todo list", create("eggs")},
		{"need to", "I need to call the plumber", create("call the plumber")},
		{"remind me", "Remind me to renew passport", create("renew passport")},
		{"explicit high", "mark high priority: finish report", high("finish report")},
		{"subject-first high", "mark finish report as high priority", high("finish report")},
		{"make urgent", "make the quarterly report urgent", high("the quarterly report")},
		{"prioritize", "prioritize call the bank", high("call the bank")},
		{"give priority", "give taxes top priority", high("taxes")},
		{"implicit high", "the invoice is urgent", high("the invoice")},
		{"subject-first normal", "mark finish report as normal priority", normal("finish report")},
		{"not urgent", "mark taxes as not urgent", normal("taxes")},
		{"title is a negation word", "mark not as urgent", high("not")},
		{"not important", "make taxes not important", normal("taxes")},
		{"remove priority", "remove the priority from taxes", normal("taxes")},
		{"explicit normal", "set low priority: taxes", normal("taxes")},
		{"can wait", "taxes can wait", normal("taxes")},
		{"subject-first done", "mark buy milk as done", complete("buy milk")},
		{"explicit done", "mark as done: buy milk", complete("buy milk")},
		{"complete the task", "complete the task file taxes", complete("file taxes")},
		{"check off", "check off buy milk", complete("buy milk")},
		{"i finished", "I finished the report", complete("the report")},
		{"is done", "the report is done", complete("the report")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input, domain.LanguageEnglish))
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"\u200c",
		"asdf jkl",
		"add todo:",
		"add todo",
		"create a new task",
	}

	for _, input := range inputs {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			got := Parse(input, domain.LanguageEnglish)
			assert.True(t, got.IsUnknown())
			assert.Empty(t, got.Title)
		})
	}
}

func TestParse_UnsupportedLanguage(t *testing.T) {
	assert.Equal(t, domain.UnknownCommand, Parse("add todo: Buy milk", domain.Language("fr")))
	assert.Nil(t, Grammars(domain.Language("fr")))
}

func TestParse_Urdu(t *testing.T) {
	// Each row holds a native-script utterance and its Roman spelling.
	tests := []struct {
		name        string
		native      string
		roman       string
		kind        domain.CommandKind
		nativeTitle string
		romanTitle  string
	}{
		{
			name:   "new task",
			native: "نیا کام: دودھ خریدیں", roman: "naya kaam: doodh khareedein",
			kind: domain.CommandCreate, nativeTitle: "دودھ خریدیں", romanTitle: "doodh khareedein",
		},
		{
			name:   "add to list",
			native: "دودھ کو فہرست میں شامل کریں", roman: "doodh ko list mein shamil karein",
			kind: domain.CommandCreate, nativeTitle: "دودھ", romanTitle: "doodh",
		},
		{
			name:   "remind me",
			native: "مجھے یاد دلائیں کہ بل ادا کرنا ہے", roman: "mujhe yaad dilayein ke bill ada karna hai",
			kind: domain.CommandCreate, nativeTitle: "بل ادا کرنا ہے", romanTitle: "bill ada karna hai",
		},
		{
			name:   "need to",
			native: "مجھے دودھ خریدنا ہے", roman: "mujhe doodh khareedna hai",
			kind: domain.CommandCreate, nativeTitle: "دودھ خریدنا", romanTitle: "doodh khareedna",
		},
		{
			name:   "make important",
			native: "رپورٹ کو اہم بنائیں", roman: "report ko aham banao",
			kind: domain.CommandSetHighPriority, nativeTitle: "رپورٹ", romanTitle: "report",
		},
		{
			name:   "important prefix",
			native: "اہم: رپورٹ", roman: "aham: report",
			kind: domain.CommandSetHighPriority, nativeTitle: "رپورٹ", romanTitle: "report",
		},
		{
			name:   "is important",
			native: "رپورٹ ضروری ہے", roman: "report zaroori hai",
			kind: domain.CommandSetHighPriority, nativeTitle: "رپورٹ", romanTitle: "report",
		},
		{
			name:   "make normal",
			native: "رپورٹ کو عام بنائیں", roman: "report ko aam banao",
			kind: domain.CommandSetNormalPriority, nativeTitle: "رپورٹ", romanTitle: "report",
		},
		{
			name:   "make unimportant",
			native: "رپورٹ کو غیر اہم بنائیں", roman: "report ko ghair aham banao",
			kind: domain.CommandSetNormalPriority, nativeTitle: "رپورٹ", romanTitle: "report",
		},
		{
			name:   "clear priority",
			native: "رپورٹ کی ترجیح ختم کریں", roman: "report ki tarjeeh khatam karein",
			kind: domain.CommandSetNormalPriority, nativeTitle: "رپورٹ", romanTitle: "report",
		},
		{
			name:   "not important",
			native: "رپورٹ ضروری نہیں ہے", roman: "report zaroori nahi hai",
			kind: domain.CommandSetNormalPriority, nativeTitle: "رپورٹ", romanTitle: "report",
		},
		{
			name:   "is complete",
			native: "رپورٹ مکمل ہو گیا", roman: "report mukammal ho gaya",
			kind: domain.CommandComplete, nativeTitle: "رپورٹ", romanTitle: "report",
		},
		{
			name:   "complete prefix",
			native: "مکمل کریں: رپورٹ", roman: "mukammal karein: report",
			kind: domain.CommandComplete, nativeTitle: "رپورٹ", romanTitle: "report",
		},
		{
			name:   "i completed",
			native: "میں نے رپورٹ مکمل کر لیا", roman: "maine report mukammal kar liya",
			kind: domain.CommandComplete, nativeTitle: "رپورٹ", romanTitle: "report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			native := Parse(tt.native, domain.LanguageUrdu)
			roman := Parse(tt.roman, domain.LanguageUrdu)

			assert.Equal(t, domain.Command{Kind: tt.kind, Title: tt.nativeTitle}, native)
			assert.Equal(t, domain.Command{Kind: tt.kind, Title: tt.romanTitle}, roman)
			assert.Equal(t, native.Kind, roman.Kind, "scripts must classify identically")
		})
	}
}

// Every spelling of every keyword, in either script, must classify the same
// way inside the same sentence.
func TestParse_UrduScriptParity(t *testing.T) {
	tests := []struct {
		name   string
		words  terms
		native string
		roman  string
		kind   domain.CommandKind
	}{
		{"high subject first", urHigh, "رپورٹ کو %s بنائیں", "report ko %s banao", domain.CommandSetHighPriority},
		{"high prefix", urHigh, "%s: رپورٹ", "%s: report", domain.CommandSetHighPriority},
		{"important is", urImportant, "رپورٹ %s ہے", "report %s hai", domain.CommandSetHighPriority},
		{"very important is", urImportant, "رپورٹ بہت %s ہے", "report bohat %s hai", domain.CommandSetHighPriority},
		{"give rank", urRank, "رپورٹ کو %s دیں", "report ko %s dein", domain.CommandSetHighPriority},
		{"normal subject first", urNormal, "رپورٹ کو %s بنائیں", "report ko %s banao", domain.CommandSetNormalPriority},
		{"normal prefix", urNormal, "%s: رپورٹ", "%s: report", domain.CommandSetNormalPriority},
		{"lesser is", urLesser, "رپورٹ %s ہے", "report %s hai", domain.CommandSetNormalPriority},
		{"clear rank", urRank, "رپورٹ کی %s ختم کریں", "report ki %s khatam karein", domain.CommandSetNormalPriority},
		{"guard before make", urGuards, "رپورٹ کو %s اہم بنائیں", "report ko %s aham banao", domain.CommandSetNormalPriority},
		{"guard before is", urGuards, "رپورٹ %s ضروری ہے", "report %s zaroori hai", domain.CommandSetNormalPriority},
		{"done subject first", urDone, "رپورٹ %s ہو گیا", "report %s ho gaya", domain.CommandComplete},
		{"i did", urDone, "میں نے رپورٹ %s کر لیا", "maine report %s kar liya", domain.CommandComplete},
	}

	spoken := func(spelling string) string {
		return strings.ReplaceAll(spelling, `\s+`, " ")
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, w := range tt.words {
				for _, n := range w.native {
					for _, r := range w.roman {
						native := Parse(fmt.Sprintf(tt.native, spoken(n)), domain.LanguageUrdu)
						roman := Parse(fmt.Sprintf(tt.roman, spoken(r)), domain.LanguageUrdu)

						assert.Equal(t, domain.Command{Kind: tt.kind, Title: "رپورٹ"}, native, "native %q", n)
						assert.Equal(t, domain.Command{Kind: tt.kind, Title: "report"}, roman, "roman %q", r)
					}
				}
			}
		})
	}
}

func TestParse_CreateForms(t *testing.T) {
	tests := []struct {
		lang      domain.Language
		templates []string
		titles    []string
	}{
		{
			lang: domain.LanguageEnglish,
			templates: []string{
				"add todo: %s",
				"add %s",
				"new task %s",
				"create a task: %s",
				"I need to %s",
				"remind me to %s",
				"put %s on my todo list",
			},
			titles: []string{"Buy milk", "call the bank", "Renew passport before June"},
		},
		{
			lang: domain.LanguageUrdu,
			templates: []string{
				"نیا کام: %s",
				"شامل کریں: %s",
				"مجھے یاد دلائیں کہ %s",
				"%s کو فہرست میں شامل کریں",
			},
			titles: []string{"دودھ خریدیں", "بل ادا کرنا"},
		},
		{
			lang: domain.LanguageUrdu,
			templates: []string{
				"naya kaam: %s",
				"shamil karein: %s",
				"yaad dilayein ke %s",
				"%s ko list mein shamil karein",
			},
			titles: []string{"doodh khareedein", "bill ada karna"},
		},
	}

	for _, tt := range tests {
		for _, tmpl := range tt.templates {
			for _, title := range tt.titles {
				input := fmt.Sprintf(tmpl, title)
				t.Run(input, func(t *testing.T) {
					assert.Equal(t, create(title), Parse(input, tt.lang))
				})
			}
		}
	}
}

// Each input also satisfies a generic grammar; the priority grammar must win.
func TestParse_PriorityPrecedence(t *testing.T) {
	tests := []struct {
		lang    domain.Language
		input   string
		generic domain.CommandKind
		want    domain.Command
	}{
		{domain.LanguageEnglish, "make a todo urgent", domain.CommandCreate, high("a todo")},
		{domain.LanguageEnglish, "new task is urgent", domain.CommandCreate, high("new task")},
		{domain.LanguageEnglish, "finish report is important", domain.CommandComplete, high("finish report")},
		{domain.LanguageEnglish, "complete taxes can wait", domain.CommandComplete, normal("complete taxes")},
		{domain.LanguageUrdu, "نیا کام ضروری ہے", domain.CommandCreate, high("نیا کام")},
		{domain.LanguageUrdu, "رپورٹ کی ترجیح ختم کریں", domain.CommandComplete, normal("رپورٹ")},
		{domain.LanguageUrdu, "report ki ahmiyat khatam karein", domain.CommandComplete, normal("report")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			// Setup
			g := grammarFor(t, tt.lang, tt.generic)
			_, genericMatches := g.Match(tt.input)
			require.True(t, genericMatches, "input should also match the %s grammar", tt.generic)

			// Execute
			got := Parse(tt.input, tt.lang)

			// Assert
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGrammars_Order(t *testing.T) {
	for _, lang := range domain.AllLanguages() {
		table := Grammars(lang)
		require.Len(t, table, len(KindOrder))
		for i, g := range table {
			assert.Equal(t, KindOrder[i], g.Kind, "%s grammar %d", lang, i)
		}
	}
}

func TestGrammars_ReturnsCopy(t *testing.T) {
	table := Grammars(domain.LanguageEnglish)
	table[0] = Grammar{Kind: domain.CommandUnknown}

	assert.Equal(t, domain.CommandSetHighPriority, Grammars(domain.LanguageEnglish)[0].Kind)
	assert.Equal(t, high("finish report"), Parse("mark high priority: finish report", domain.LanguageEnglish))
}

func TestGrammars_FormCoverage(t *testing.T) {
	scripts := map[domain.Language][]Script{
		domain.LanguageEnglish: {ScriptLatin},
		domain.LanguageUrdu:    {ScriptArabic, ScriptLatin},
	}

	for lang, langScripts := range scripts {
		for _, g := range Grammars(lang) {
			required := []Form{FormExplicit, FormImplicit}
			if g.Kind != domain.CommandCreate {
				required = append(required, FormSubjectFirst)
			}
			for _, script := range langScripts {
				forms := g.Forms(script)
				for _, form := range required {
					assert.True(t, forms[form], "%s/%s/%s missing %s form", lang, g.Kind, script, form)
				}
			}
		}
	}
}

func TestParse_ConcurrentCallsAgree(t *testing.T) {
	inputs := map[string]domain.Command{
		"Add todo: Buy milk":                create("Buy milk"),
		"mark high priority: finish report": high("finish report"),
		"mark taxes as not urgent":          normal("taxes"),
		"asdf jkl":                          domain.UnknownCommand,
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for input, want := range inputs {
				if got := Parse(input, domain.LanguageEnglish); got != want {
					errs <- fmt.Sprintf("Parse(%q) = %+v, want %+v", input, got, want)
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}

func grammarFor(t *testing.T, lang domain.Language, kind domain.CommandKind) Grammar {
	t.Helper()
	for _, g := range Grammars(lang) {
		if g.Kind == kind {
			return g
		}
	}
	t.Fatalf("no %s grammar for %s", kind, lang)
	return Grammar{}
}

func create(title string) domain.Command {
	return domain.Command{Kind: domain.CommandCreate, Title: title}
}

func high(title string) domain.Command {
	return domain.Command{Kind: domain.CommandSetHighPriority, Title: title}
}

func normal(title string) domain.Command {
	return domain.Command{Kind: domain.CommandSetNormalPriority, Title: title}
}

func complete(title string) domain.Command {
	return domain.Command{Kind: domain.CommandComplete, Title: title}
}
