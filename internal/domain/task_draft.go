package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TaskDraft represents a task parsed from Markdown input.
// Fields are ordered to minimize memory padding.
type TaskDraft struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"-"`
	Priority    Priority `yaml:"priority,omitempty"`
}

// frontmatterKeys are the keys that may open a task block.
var frontmatterKeys = []string{"title:", "priority:"}

// ParseTaskDrafts parses Markdown containing one or more task definitions.
// Each task starts with a YAML frontmatter block.
//
// Format:
//
//	---
//	title: Buy milk
//	priority: high
//	---
//	Semi-skimmed, two litres.
//
//	---
//	title: File taxes
//	---
//	Before the 30th.
func ParseTaskDrafts(content string) ([]TaskDraft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyFile
	}

	blocks := splitTaskBlocks(content)
	if len(blocks) == 0 {
		return nil, ErrNoTasksInFile
	}

	drafts := make([]TaskDraft, 0, len(blocks))
	for i, block := range blocks {
		draft, err := parseTaskBlock(block)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// ParseSingleTaskDraft parses Markdown holding exactly one task.
func ParseSingleTaskDraft(content string) (TaskDraft, error) {
	drafts, err := ParseTaskDrafts(content)
	if err != nil {
		return TaskDraft{}, err
	}
	if len(drafts) > 1 {
		return TaskDraft{}, fmt.Errorf("%w: found %d", ErrMultipleTasksInFile, len(drafts))
	}
	return drafts[0], nil
}

// splitTaskBlocks splits content into task blocks. A block holds the
// frontmatter lines, the closing "---" and the description.
func splitTaskBlocks(content string) []string {
	var (
		blocks  []string
		current []string
		started bool
	)
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	for i, line := range lines {
		if strings.TrimSpace(line) != "---" {
			if started {
				current = append(current, line)
			}
			continue
		}

		switch {
		case !started:
			started = true
			current = []string{}
		case !hasClosingDelimiter(current):
			// Closing delimiter of the frontmatter
			current = append(current, "---")
		case i+1 < len(lines) && isFrontmatterKey(lines[i+1]):
			blocks = append(blocks, strings.Join(current, "\n"))
			current = []string{}
		default:
			// Horizontal rule inside the description
			current = append(current, line)
		}
	}

	if started && len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

func hasClosingDelimiter(lines []string) bool {
	for _, l := range lines {
		if l == "---" {
			return true
		}
	}
	return false
}

func isFrontmatterKey(line string) bool {
	for _, key := range frontmatterKeys {
		if strings.HasPrefix(line, key) {
			return true
		}
	}
	return false
}

// parseTaskBlock decodes the frontmatter of one block and takes everything
// after it as the description.
func parseTaskBlock(block string) (TaskDraft, error) {
	front, desc, found := strings.Cut(block, "\n---")
	if !found {
		if strings.HasPrefix(block, "---") {
			front, desc = "", strings.TrimPrefix(block, "---")
		} else {
			return TaskDraft{}, ErrMissingFrontmatter
		}
	}

	var draft TaskDraft
	if err := yaml.Unmarshal([]byte(front), &draft); err != nil {
		return TaskDraft{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	draft.Title = NormalizeTitle(draft.Title)
	if draft.Title == "" {
		return TaskDraft{}, ErrEmptyTitle
	}
	priority, err := ParsePriority(strings.ToLower(string(draft.Priority)))
	if err != nil {
		return TaskDraft{}, err
	}
	draft.Priority = priority
	draft.Description = strings.TrimSpace(desc)

	return draft, nil
}

// ToMarkdown renders the task in the format read by ParseSingleTaskDraft.
func (t *Task) ToMarkdown() string {
	front, err := yaml.Marshal(TaskDraft{Title: t.Title, Priority: t.Priority.OrDefault()})
	if err != nil {
		// Plain strings always encode
		front = []byte("title: " + t.Title + "\n")
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n\n")
	b.WriteString(t.Description)
	if t.Description != "" && !strings.HasSuffix(t.Description, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}
