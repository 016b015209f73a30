package intent

import "github.com/runoshun/vtodo/internal/domain"

// Shared English fragments.
const (
	enSep      = `\s*[:,;\-–]?\s*`
	enTaskWord = `(?:todo|to-do|to\s+do|task|item|reminder)`
	enTitle    = `(?<title>.+)`
	enLazy     = `(?<title>.+?)`

	enHigh   = `(?:(?:high|top)\s+priority|urgent|important)`
	enNormal = `(?:(?:normal|low|regular)\s+priority|not\s+urgent|not\s+important|unimportant)`
	enDone   = `(?:done|complete|completed|finished)`

	// notBefore rejects a lazily captured title that ends in a negation, so
	// "mark x as not urgent" is never read as "x as not" + "urgent". It is
	// anchored at the verb so a title that is just "not" stays a title.
	enNotBefore = `(?<!^(?:mark|set|make|flag)\s+.+\snot)`
)

func englishTable() Table {
	return newTable(map[domain.CommandKind][]Pattern{
		domain.CommandSetHighPriority: {
			// mark <title> as high priority / make <title> urgent
			newPattern(FormSubjectFirst, ScriptLatin,
				`^(?:mark|set|make|flag)\s+`+enLazy+enNotBefore+`\s+(?:as\s+|to\s+)?(?:an?\s+)?`+enHigh+`$`),
			// give <title> high priority
			newPattern(FormSubjectFirst, ScriptLatin,
				`^(?:give|assign)\s+`+enLazy+`\s+(?:a\s+)?(?:high|top)\s+priority$`),
			// mark high priority: <title>
			newPattern(FormExplicit, ScriptLatin,
				`^(?:mark|set|make|flag)\s+(?:as\s+)?(?:an?\s+)?`+enHigh+enSep+enTitle+`$`),
			// prioritize <title>
			newPattern(FormExplicit, ScriptLatin,
				`^(?:prioriti[sz]e|escalate)\b`+enSep+enTitle+`$`),
			// <title> is urgent
			newPattern(FormImplicit, ScriptLatin,
				`^`+enLazy+`\s+is\s+(?:now\s+)?(?:very\s+|really\s+|a\s+)?`+enHigh+`$`),
		},
		domain.CommandSetNormalPriority: {
			// mark <title> as normal priority / make <title> not urgent
			newPattern(FormSubjectFirst, ScriptLatin,
				`^(?:mark|set|make|flag)\s+`+enLazy+`\s+(?:as\s+|to\s+)?(?:an?\s+)?`+enNormal+`$`),
			// remove the priority from <title>
			newPattern(FormSubjectFirst, ScriptLatin,
				`^(?:remove|clear|unset|drop|lower)\s+(?:the\s+)?(?:high\s+)?priority\s+(?:from|for|on|of)\s+`+enTitle+`$`),
			// mark normal priority: <title>
			newPattern(FormExplicit, ScriptLatin,
				`^(?:mark|set|make|flag)\s+(?:as\s+)?(?:an?\s+)?`+enNormal+enSep+enTitle+`$`),
			// deprioritize <title>
			newPattern(FormExplicit, ScriptLatin,
				`^(?:de|un)prioriti[sz]e\b`+enSep+enTitle+`$`),
			// <title> is not urgent / <title> can wait
			newPattern(FormImplicit, ScriptLatin,
				`^`+enLazy+`\s+(?:is\s+(?:an?\s+)?`+enNormal+`|can\s+wait)$`),
		},
		domain.CommandCreate: {
			// add <title> to my todo list
			newPattern(FormSubjectFirst, ScriptLatin,
				`^(?:put|add|write)\s+`+enLazy+`\s+(?:on|to|onto|into|in)\s+(?:my\s+|the\s+)?(?:`+enTaskWord+`s?(?:\s+list)?|list)$`),
			// add todo: <title>  (an empty title falls through to the next pattern)
			newPattern(FormExplicit, ScriptLatin,
				`^(?:add|create|new|make)\s+(?:an?\s+)?(?:new\s+)?`+enTaskWord+`\b`+enSep+`(?<title>.*)$`),
			// add <title>, unless the rest is just a task word
			newPattern(FormExplicit, ScriptLatin,
				`^(?:add|create|new)\b`+enSep+`(?!\s*(?:an?\s+)?(?:new\s+)?`+enTaskWord+`s?`+enSep+`$)`+enTitle+`$`),
			// i need to <title> / remind me to <title>
			newPattern(FormImplicit, ScriptLatin,
				`^(?:i\s+(?:need|have|want|got)\s+to|i\s+must|i\s+should|i\s+gotta|remind\s+me\s+(?:to|about|of)|remember\s+to|don[’']?t\s+(?:let\s+me\s+)?forget\s+to|note\s+to\s+self)`+enSep+enTitle+`$`),
		},
		domain.CommandComplete: {
			// mark <title> as done
			newPattern(FormSubjectFirst, ScriptLatin,
				`^(?:mark|set|flag)\s+`+enLazy+`\s+(?:as\s+)?`+enDone+`$`),
			// <title> is done
			newPattern(FormSubjectFirst, ScriptLatin,
				`^`+enLazy+`\s+is\s+(?:now\s+)?`+enDone+`$`),
			// mark as done: <title>
			newPattern(FormExplicit, ScriptLatin,
				`^(?:mark|set)\s+(?:as\s+)?`+enDone+enSep+enTitle+`$`),
			// complete <title> / check off the task <title>
			newPattern(FormExplicit, ScriptLatin,
				`^(?:complete|finish(?:ed)?|done(?:\s+with)?|check\s+off|tick\s+off|cross\s+off)\b`+enSep+`(?:(?:the\s+)?(?:todo|task|item)\b`+enSep+`)?`+enTitle+`$`),
			// i finished <title> / i'm done with <title>
			newPattern(FormImplicit, ScriptLatin,
				`^(?:i\s+(?:have\s+|['’]ve\s+)?(?:finished|completed|done|did)|i(?:['’]m|\s+am)\s+(?:done|finished)\s+with)`+enSep+enTitle+`$`),
		},
	})
}
