package service

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	"github.com/inkwell/inkwell-backend/internal/domain"
)

// CompareSnapshots computes the structural comparison between two blog
// snapshots: word-level diffs for title and summary, a line-level diff for
// the content body, and a plain equality check for the cover image URL.
// The function is pure and safe for concurrent use.
func CompareSnapshots(oldV, newV *domain.BlogVersion) *domain.DiffResult {
	return &domain.DiffResult{
		Title:   compareWords(oldV.Title, newV.Title),
		Summary: compareWords(derefString(oldV.Summary), derefString(newV.Summary)),
		Content: compareLines(oldV.Content, newV.Content),
		CoverImage: domain.CoverImageDiff{
			Old:     oldV.CoverImage,
			New:     newV.CoverImage,
			Changed: !stringPtrEqual(oldV.CoverImage, newV.CoverImage),
		},
	}
}

// GetChangeSummary returns a comma-joined list of the fields that changed,
// or "No changes" when the diff is empty.
func GetChangeSummary(diff *domain.DiffResult) string {
	var changed []string

	if hasChanges(diff.Title) {
		changed = append(changed, "title")
	}
	if hasChanges(diff.Summary) {
		changed = append(changed, "summary")
	}
	if hasChanges(diff.Content) {
		changed = append(changed, "content")
	}
	if diff.CoverImage.Changed {
		changed = append(changed, "cover image")
	}

	if len(changed) == 0 {
		return "No changes"
	}
	return "Changed: " + strings.Join(changed, ", ")
}

// CountChanges sums the character lengths of added and removed segments,
// for "+12 -3" style summaries.
func CountChanges(changes []domain.DiffChange) (additions, deletions int) {
	for _, change := range changes {
		if change.Added {
			additions += len(change.Value)
		} else if change.Removed {
			deletions += len(change.Value)
		}
	}
	return additions, deletions
}

func hasChanges(changes []domain.DiffChange) bool {
	for _, c := range changes {
		if c.Added || c.Removed {
			return true
		}
	}
	return false
}

// compareWords diffs two short texts at word granularity. A token is a run
// of non-whitespace characters plus its trailing whitespace, so a one-word
// edit never drags the rest of the sentence into the change set.
func compareWords(oldText, newText string) []domain.DiffChange {
	return diffSequences(splitWords(oldText), splitWords(newText))
}

// compareLines diffs two long texts at line granularity. Each line keeps
// its newline so concatenating segments reconstructs the input exactly.
func compareLines(oldText, newText string) []domain.DiffChange {
	return diffSequences(splitLines(oldText), splitLines(newText))
}

// diffSequences turns SequenceMatcher opcodes into ordered change segments.
// Adjacent tokens sharing an opcode collapse into one segment; a replace
// emits the removed segment before the added one. Walking opcodes in order
// guarantees the reconstruction property for both sides.
func diffSequences(a, b []string) []domain.DiffChange {
	changes := []domain.DiffChange{}
	if len(a) == 0 && len(b) == 0 {
		return changes
	}

	// Autojunk off: the popularity heuristic may drop common lines from
	// matching on large bodies, producing noisier scripts.
	matcher := difflib.NewMatcherWithJunk(a, b, false, nil)

	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			changes = append(changes, domain.DiffChange{
				Value: strings.Join(a[op.I1:op.I2], ""),
			})
		case 'd':
			changes = append(changes, domain.DiffChange{
				Value:   strings.Join(a[op.I1:op.I2], ""),
				Removed: true,
			})
		case 'i':
			changes = append(changes, domain.DiffChange{
				Value: strings.Join(b[op.J1:op.J2], ""),
				Added: true,
			})
		case 'r':
			changes = append(changes,
				domain.DiffChange{
					Value:   strings.Join(a[op.I1:op.I2], ""),
					Removed: true,
				},
				domain.DiffChange{
					Value: strings.Join(b[op.J1:op.J2], ""),
					Added: true,
				})
		}
	}

	return changes
}

// splitWords tokenizes on word boundaries, keeping each word's trailing
// whitespace with it. Leading whitespace becomes its own token. The tokens
// concatenate back to the input byte-for-byte.
func splitWords(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string
	start := 0
	i := 0
	for i < len(s) {
		for i < len(s) && !isSpaceByte(s[i]) {
			i++
		}
		for i < len(s) && isSpaceByte(s[i]) {
			i++
		}
		tokens = append(tokens, s[start:i])
		start = i
	}
	return tokens
}

// splitLines splits on newlines, keeping the newline with each line
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	// SplitAfter leaves a trailing empty element when s ends with "\n"
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// isSpaceByte reports ASCII whitespace. UTF-8 continuation bytes are never
// in this set, so multibyte runes stay intact inside word tokens.
func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
