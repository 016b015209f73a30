package intent

import (
	"strings"

	"github.com/runoshun/vtodo/internal/domain"
)

// Script-neutral fragments.
const (
	urSep   = `\s*[:،؛,;\-–]?\s*`
	urColon = `\s*[:،؛,]\s*`
	urTitle = `(?<title>.+)`
	urLazy  = `(?<title>.+?)`
)

// term is one Urdu word or phrase with its accepted native-script and Roman
// spellings. Spellings are literal apart from `\s+` between words.
type term struct {
	native []string
	roman  []string
}

func (t term) spellings(s Script) []string {
	if s == ScriptArabic {
		return t.native
	}
	return t.roman
}

func (t term) in(s Script) string {
	return terms{t}.in(s)
}

// terms is a set of alternative words.
type terms []term

// in returns the alternation of every spelling for script s.
func (ts terms) in(s Script) string {
	var parts []string
	for _, t := range ts {
		parts = append(parts, t.spellings(s)...)
	}
	return `(?:` + strings.Join(parts, `|`) + `)`
}

// cross builds the two-word phrases "a b" for every b.
func cross(a term, bs ...term) terms {
	out := make(terms, 0, len(bs))
	for _, b := range bs {
		out = append(out, term{native: joinWords(a.native, b.native), roman: joinWords(a.roman, b.roman)})
	}
	return out
}

func joinWords(as, bs []string) []string {
	out := make([]string, 0, len(as)*len(bs))
	for _, a := range as {
		for _, b := range bs {
			out = append(out, a+`\s+`+b)
		}
	}
	return out
}

func concat(sets ...terms) terms {
	var out terms
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// Vocabulary. Roman "kam" always means کم (less); کام is spelled "kaam".
var (
	urKo   = term{[]string{`کو`}, []string{`ko`}}
	urKi   = term{[]string{`کی`}, []string{`ki`}}
	urVery = term{[]string{`بہت`}, []string{`bohat`, `bahut`, `bohot`, `bahot`}}
	urNeg  = term{[]string{`نہیں`}, []string{`nahi`, `nahin`, `nai`}}
	urIs   = terms{
		{[]string{`ہے`}, []string{`hai`, `he`}},
		{[]string{`ہیں`}, []string{`hain`}},
	}

	urDo = terms{
		{[]string{`کریں`, `کیجیے`, `کیجئے`}, []string{`karein`, `karen`, `kariye`, `kijiye`}},
		{[]string{`کرو`}, []string{`karo`}},
		{[]string{`کر\s+دیں`}, []string{`kar\s+dein`, `kar\s+den`}},
		{[]string{`کر\s+دو`}, []string{`kar\s+do`}},
		{[]string{`مارک\s+کریں`, `مارک\s+کرو`, `مارک\s+کر\s+دو`}, []string{`mark\s+karein`, `mark\s+karo`, `mark\s+kar\s+do`}},
	}
	urMake = terms{
		{[]string{`بنائیں`}, []string{`banayein`, `banayen`, `banaen`}},
		{[]string{`بناؤ`}, []string{`banao`}},
		{[]string{`بنا\s+دیں`}, []string{`bana\s+dein`, `bana\s+den`}},
		{[]string{`بنا\s+دو`}, []string{`bana\s+do`}},
	}

	// Priority words.
	urImportant = terms{
		{[]string{`اہم`}, []string{`aham`, `ahem`, `ehem`, `eham`, `ahm`}},
		{[]string{`ضروری`}, []string{`zaroori`, `zaruri`, `zuroori`}},
	}
	urMore = term{[]string{`زیادہ`}, []string{`zyada`, `ziyada`}}
	urTop  = term{[]string{`اعلیٰ`, `اعلی`}, []string{`ala`, `aala`, `aalaa`}}
	urRank = terms{
		{[]string{`ترجیح`}, []string{`tarjeeh`, `tarjih`, `tarjee`}},
		{[]string{`اہمیت`}, []string{`ahmiyat`, `ehmiyat`, `ahmiat`}},
		{[]string{`پرائیورٹی`}, []string{`priority`}},
	}
	urHigh = concat(
		urImportant,
		cross(urMore, urImportant...),
		cross(urTop, urRank[0]),
		terms{{[]string{`ہائی\s+پرائیورٹی`}, []string{`high\s+priority`}}},
	)

	// urGuards are the words that turn a following priority word into its
	// opposite ("غیر اہم", "kam aham").
	urGuards = terms{
		{[]string{`غیر`}, []string{`ghair`, `gair`, `ghayr`}},
		{[]string{`کم`}, []string{`kam`}},
	}
	urPlainNormal = terms{
		{[]string{`عام`}, []string{`aam`}},
		{[]string{`معمولی`}, []string{`mamooli`, `mamuli`}},
		{[]string{`نارمل`}, []string{`normal`}},
	}
	urLesser = concat(cross(urGuards[0], urImportant...), cross(urGuards[1], urImportant...))
	urNormal = concat(
		urPlainNormal,
		urLesser,
		cross(urPlainNormal[0], urRank[0]),
		terms{{[]string{`نارمل\s+پرائیورٹی`, `لو\s+پرائیورٹی`}, []string{`normal\s+priority`, `low\s+priority`}}},
	)

	urGive = terms{
		{[]string{`دیں`, `دے\s+دیں`}, []string{`dein`, `den`, `de\s+dein`}},
		{[]string{`دو`, `دے\s+دو`}, []string{`do`, `de\s+do`}},
	}
	urEnd = terms{
		{[]string{`ختم`}, []string{`khatam`, `khatm`}},
		{[]string{`کم`}, []string{`kam`}},
	}
	urRemove = concat(
		terms{
			{[]string{`ہٹائیں`, `ہٹا\s+دیں`}, []string{`hatayein`, `hataen`, `hata\s+dein`}},
			{[]string{`ہٹاؤ`, `ہٹا\s+دو`}, []string{`hatao`, `hata\s+do`}},
		},
		cross(urEnd[0], urDo[0], urDo[1]),
	)

	// Task words.
	urNew = terms{
		{[]string{`نیا`}, []string{`naya`, `nayaa`, `nya`}},
		{[]string{`نئی`}, []string{`nai`, `nayi`}},
		{[]string{`نئے`}, []string{`naye`}},
	}
	urTask = terms{
		{[]string{`کام`}, []string{`kaam`}},
		{[]string{`ٹاسک`}, []string{`task`}},
		{[]string{`ٹوڈو`}, []string{`todo`, `to-do`}},
	}
	urAddWord = term{[]string{`شامل`, `ایڈ`}, []string{`shamil`, `shaamil`, `add`}}
	urAddNow  = concat(
		cross(urAddWord, urDo[0], urDo[1]),
		terms{
			{[]string{`لکھیں`}, []string{`likhein`, `likhen`}},
			{[]string{`لکھو`}, []string{`likho`}},
		},
	)
	urAddLater = concat(
		cross(urAddWord, urDo[:4]...),
		cross(term{[]string{`لکھ`}, []string{`likh`}},
			term{[]string{`لیں`}, []string{`lein`, `len`}},
			term{[]string{`لو`}, []string{`lo`}}),
		cross(term{[]string{`نوٹ`}, []string{`note`}},
			urDo[0], urDo[1],
			term{[]string{`کر\s+لیں`}, []string{`kar\s+lein`}},
			term{[]string{`کر\s+لو`}, []string{`kar\s+lo`}}),
	)
	urList   = term{[]string{`فہرست`, `لسٹ`}, []string{`list`, `fehrist`, `fehrest`}}
	urInside = term{[]string{`میں`}, []string{`mein`, `me`, `main`}}
	urRemind = terms{
		{[]string{`یاد\s+دلائیں`}, []string{`yaad\s+dilayein`, `yaad\s+dilaen`}},
		{[]string{`یاد\s+دلاؤ`}, []string{`yaad\s+dilao`}},
		{[]string{`یاد\s+دلا\s+دیں`}, []string{`yaad\s+dila\s+dein`}},
		{[]string{`یاد\s+دلا\s+دینا`}, []string{`yaad\s+dila\s+dena`}},
	}
	urThat = term{[]string{`کہ`}, []string{`keh`, `ke`, `ki`}}
	urMe   = term{[]string{`مجھے`}, []string{`mujhe`, `mujhay`}}
	urNeed = concat(
		urIs,
		terms{
			{[]string{`پڑے\s+گا`, `پڑے\s+گی`}, []string{`parega`, `padega`, `parey\s+ga`, `paregi`, `padegi`}},
			{[]string{`ہوگا`, `ہو\s+گا`}, []string{`hoga`, `ho\s+ga`}},
			{[]string{`چاہیے`}, []string{`chahiye`, `chahie`}},
		},
	)

	// Completion words.
	urIDid = term{
		[]string{`میں\s+نے`, `ہم\s+نے`},
		[]string{`main\s+ne`, `mein\s+ne`, `men\s+ne`, `hum\s+ne`, `maine`, `humne`},
	}
	urDone = terms{
		{[]string{`مکمل`}, []string{`mukammal`, `mukamal`, `complete`}},
		{[]string{`ختم`}, []string{`khatam`, `khatm`}},
		{[]string{`پورا`}, []string{`poora`, `pura`}},
		{[]string{`پوری`}, []string{`poori`, `puri`}},
		{[]string{`ڈن`}, []string{`done`}},
	}
	urDoneVerb = concat(
		urDo[:4],
		terms{
			{[]string{`کر\s+دیا`}, []string{`kar\s+diya`}},
			{[]string{`ہو\s+گیا`, `ہوگیا`}, []string{`ho\s+gaya`, `hogaya`}},
			{[]string{`ہو\s+گئی`, `ہوگئی`}, []string{`ho\s+gayi`, `ho\s+gai`, `hogayi`}},
			{[]string{`ہو\s+چکا`, `ہو\s+چکی`}, []string{`ho\s+chuka`, `ho\s+chuki`}},
		},
	)
	urDidVerb = terms{
		{[]string{`کر\s+لیا`, `کرلیا`}, []string{`kar\s+liya`, `karliya`}},
		{[]string{`کر\s+لی`}, []string{`kar\s+li`}},
		{[]string{`کر\s+دیا`}, []string{`kar\s+diya`}},
		{[]string{`کر\s+دی`}, []string{`kar\s+di`}},
	}
)

// urNotBefore rejects a lazily captured title ending in a guard word, so
// "X کم اہم" is never read as "X کم" + "اہم".
func urNotBefore(s Script) string {
	return `(?<!(?:^|\s)` + urGuards.in(s) + `)`
}

// urduPattern is written once and compiled for both scripts, so an
// utterance and its transliteration always land on the same grammar.
type urduPattern struct {
	form Form
	expr func(s Script) string
}

func urduTable() Table {
	byKind := map[domain.CommandKind][]urduPattern{
		domain.CommandSetHighPriority: {
			// <title> کو اہم بنائیں
			{FormSubjectFirst, func(s Script) string {
				return `^` + urLazy + urNotBefore(s) + `\s+(?:` + urKo.in(s) + `\s+)?` + urHigh.in(s) +
					`\s+(?:` + urMake.in(s) + `|` + urDo.in(s) + `)$`
			}},
			// <title> کو ترجیح دیں
			{FormSubjectFirst, func(s Script) string {
				return `^` + urLazy + `\s+` + urKo.in(s) + `\s+(?:` + terms{urTop, urMore}.in(s) + `\s+)?` +
					urRank.in(s) + `\s+` + urGive.in(s) + `$`
			}},
			// اہم: <title>
			{FormExplicit, func(s Script) string {
				return `^` + urHigh.in(s) + urColon + urTitle + `$`
			}},
			// اہم بنائیں <title>
			{FormExplicit, func(s Script) string {
				return `^(?:` + urRank.in(s) + `\s+` + urGive.in(s) + `|` + urImportant.in(s) + `\s+` + urMake.in(s) + `)` +
					urSep + urTitle + `$`
			}},
			// <title> ضروری ہے
			{FormImplicit, func(s Script) string {
				return `^` + urLazy + urNotBefore(s) + `\s+(?:` + urVery.in(s) + `\s+)?` + urImportant.in(s) +
					`\s+` + urIs.in(s) + `$`
			}},
		},
		domain.CommandSetNormalPriority: {
			// <title> کو عام بنائیں
			{FormSubjectFirst, func(s Script) string {
				return `^` + urLazy + `\s+(?:` + urKo.in(s) + `\s+)?` + urNormal.in(s) +
					`\s+(?:` + urMake.in(s) + `|` + urDo.in(s) + `)$`
			}},
			// <title> کی ترجیح ختم کریں
			{FormSubjectFirst, func(s Script) string {
				return `^` + urLazy + `\s+` + urKi.in(s) + `\s+` + urRank.in(s) + `\s+` + urEnd.in(s) +
					`\s+` + urDo.in(s) + `$`
			}},
			// عام: <title>
			{FormExplicit, func(s Script) string {
				return `^` + urNormal.in(s) + urColon + urTitle + `$`
			}},
			// ترجیح ہٹائیں <title>
			{FormExplicit, func(s Script) string {
				return `^` + urRank.in(s) + `\s+` + urRemove.in(s) + urSep + urTitle + `$`
			}},
			// <title> ضروری نہیں ہے
			{FormImplicit, func(s Script) string {
				return `^` + urLazy + `\s+` + urImportant.in(s) + `\s+` + urNeg.in(s) + `(?:\s+` + urIs.in(s) + `)?$`
			}},
			// <title> کم اہم ہے
			{FormImplicit, func(s Script) string {
				return `^` + urLazy + `\s+(?:` + urVery.in(s) + `\s+)?` + urLesser.in(s) + `\s+` + urIs.in(s) + `$`
			}},
		},
		domain.CommandCreate: {
			// نیا کام: <title>
			{FormExplicit, func(s Script) string {
				return `^` + urNew.in(s) + `\s+` + urTask.in(s) + urSep + `(?<title>.*)$`
			}},
			// شامل کریں: <title>
			{FormExplicit, func(s Script) string {
				return `^` + urAddNow.in(s) + urSep + urTitle + `$`
			}},
			// <title> کو فہرست میں شامل کریں
			{FormSubjectFirst, func(s Script) string {
				return `^` + urLazy + `\s+(?:` + urKo.in(s) + `\s+)?(?:` + urList.in(s) + `\s+` + urInside.in(s) + `\s+)?` +
					urAddLater.in(s) + `$`
			}},
			// مجھے یاد دلائیں کہ <title>
			{FormImplicit, func(s Script) string {
				return `^(?:` + urMe.in(s) + `\s+)?` + urRemind.in(s) + `(?:\s+` + urThat.in(s) + `)?` + urSep + urTitle + `$`
			}},
			// مجھے <title> ہے
			{FormImplicit, func(s Script) string {
				return `^` + urMe.in(s) + `\s+` + urLazy + `\s+` + urNeed.in(s) + `$`
			}},
		},
		domain.CommandComplete: {
			// <title> مکمل ہو گیا
			{FormSubjectFirst, func(s Script) string {
				return `^` + urLazy + `\s+(?:` + urKo.in(s) + `\s+)?` + urDone.in(s) + `\s+` + urDoneVerb.in(s) +
					`(?:\s+` + urIs.in(s) + `)?$`
			}},
			// مکمل کریں: <title>
			{FormExplicit, func(s Script) string {
				return `^` + urDone[:2].in(s) + `(?:\s+` + urDo[:2].in(s) + `)?` + urColon + urTitle + `$`
			}},
			// میں نے <title> مکمل کر لیا
			{FormImplicit, func(s Script) string {
				return `^` + urIDid.in(s) + `\s+` + urLazy + `\s+` + urDone.in(s) + `\s+` + urDidVerb.in(s) +
					`(?:\s+` + urIs.in(s) + `)?$`
			}},
		},
	}

	patterns := make(map[domain.CommandKind][]Pattern, len(byKind))
	for kind, list := range byKind {
		for _, p := range list {
			patterns[kind] = append(patterns[kind],
				newPattern(p.form, ScriptArabic, p.expr(ScriptArabic)),
				newPattern(p.form, ScriptLatin, p.expr(ScriptLatin)))
		}
	}
	return newTable(patterns)
}
