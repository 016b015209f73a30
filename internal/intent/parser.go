package intent

import (
	"strings"
	"unicode"

	"github.com/runoshun/vtodo/internal/domain"
)

// Parse classifies a finalized transcript into exactly one Command.
// It is a pure function of (text, lang): surrounding whitespace and case are
// ignored while matching, and the captured title keeps its original case and
// punctuation. Transcripts matching no grammar yield domain.UnknownCommand.
func Parse(text string, lang domain.Language) domain.Command {
	input := trimSpace(text)
	if input == "" {
		return domain.UnknownCommand
	}

	for _, g := range tables[lang] {
		if title, ok := g.Match(input); ok {
			return domain.Command{Kind: g.Kind, Title: title}
		}
	}
	return domain.UnknownCommand
}

// trimSpace trims Unicode whitespace and invisible format characters
// (ZWNJ, bidi marks, BOM) that speech engines leave around Urdu text.
func trimSpace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.Is(unicode.Cf, r)
	})
}
