// Package resolve maps a spoken title fragment onto one of the caller's tasks.
package resolve

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"

	"github.com/runoshun/vtodo/internal/domain"
)

// Resolve returns the task the fragment refers to.
//
// Tiers are tried in order and the first hit wins:
//  1. a title equal to the fragment
//  2. a title containing the fragment
//  3. a title contained in the fragment
//
// Comparison is case-insensitive (Unicode case folding) and ignores
// surrounding whitespace. Within a tier the first task in list order wins.
// A blank fragment never matches.
func Resolve(tasks []domain.TaskRef, fragment string) (domain.TaskRef, bool) {
	// A Caser keeps state, so each call gets its own.
	caser := cases.Fold()
	needle := fold(caser, fragment)
	if needle == "" {
		return domain.TaskRef{}, false
	}

	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = fold(caser, t.Title)
	}

	for i, title := range titles {
		if title == needle {
			return tasks[i], true
		}
	}
	for i, title := range titles {
		if strings.Contains(title, needle) {
			return tasks[i], true
		}
	}
	for i, title := range titles {
		if title != "" && strings.Contains(needle, title) {
			return tasks[i], true
		}
	}
	return domain.TaskRef{}, false
}

// Suggest returns up to limit tasks whose titles approximately match the
// fragment, best match first. It is used to build a "did you mean" hint
// after Resolve finds nothing, never to pick a task on the caller's behalf.
func Suggest(tasks []domain.TaskRef, fragment string, limit int) []domain.TaskRef {
	caser := cases.Fold()
	needle := fold(caser, fragment)
	if needle == "" || limit <= 0 || len(tasks) == 0 {
		return nil
	}

	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = fold(caser, t.Title)
	}

	matches := fuzzy.Find(needle, titles)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]domain.TaskRef, 0, len(matches))
	for _, m := range matches {
		out = append(out, tasks[m.Index])
	}
	return out
}

func fold(caser cases.Caser, s string) string {
	return caser.String(strings.TrimSpace(s))
}
