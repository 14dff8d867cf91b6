package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell-backend/internal/domain"
)

func strPtr(s string) *string { return &s }

// reconstruct rebuilds the old and new texts from a change sequence. Old is
// every segment that was not added; new is every segment that was not removed.
func reconstruct(changes []domain.DiffChange) (oldText, newText string) {
	var oldB, newB strings.Builder
	for _, c := range changes {
		if !c.Added {
			oldB.WriteString(c.Value)
		}
		if !c.Removed {
			newB.WriteString(c.Value)
		}
	}
	return oldB.String(), newB.String()
}

func TestCompareWordsReconstruction(t *testing.T) {
	cases := []struct {
		name string
		old  string
		new  string
	}{
		{"single word change", "Hello World", "Hello Universe"},
		{"identical", "same text here", "same text here"},
		{"empty to text", "", "brand new title"},
		{"text to empty", "old title", ""},
		{"whitespace variants", "a  b\tc", "a b c"},
		{"multibyte runes", "café au lait", "café con leche"},
		{"full rewrite", "alpha beta gamma", "delta epsilon"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			changes := compareWords(tc.old, tc.new)
			gotOld, gotNew := reconstruct(changes)
			assert.Equal(t, tc.old, gotOld)
			assert.Equal(t, tc.new, gotNew)
		})
	}
}

func TestCompareLinesReconstruction(t *testing.T) {
	cases := []struct {
		name string
		old  string
		new  string
	}{
		{"line replaced", "line one\nline two\n", "line one\nline three\n"},
		{"no trailing newline", "line one\nline two", "line one\nline two\nline three"},
		{"empty to body", "", "first line\nsecond line\n"},
		{"identical", "a\nb\nc\n", "a\nb\nc\n"},
		{"insert in middle", "a\nc\n", "a\nb\nc\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			changes := compareLines(tc.old, tc.new)
			gotOld, gotNew := reconstruct(changes)
			assert.Equal(t, tc.old, gotOld)
			assert.Equal(t, tc.new, gotNew)
		})
	}
}

func TestCompareWordsSingleWordEdit(t *testing.T) {
	changes := compareWords("Hello World", "Hello Universe")

	require.Len(t, changes, 3)
	assert.Equal(t, domain.DiffChange{Value: "Hello "}, changes[0])
	assert.Equal(t, domain.DiffChange{Value: "World", Removed: true}, changes[1])
	assert.Equal(t, domain.DiffChange{Value: "Universe", Added: true}, changes[2])
}

func TestCompareLinesSingleLineEdit(t *testing.T) {
	changes := compareLines("line one\nline two\n", "line one\nline three\n")

	require.Len(t, changes, 3)
	assert.Equal(t, domain.DiffChange{Value: "line one\n"}, changes[0])
	assert.Equal(t, domain.DiffChange{Value: "line two\n", Removed: true}, changes[1])
	assert.Equal(t, domain.DiffChange{Value: "line three\n", Added: true}, changes[2])
}

func TestCompareSnapshotsIdentical(t *testing.T) {
	v := &domain.BlogVersion{
		Title:      "A Title",
		Content:    "line one\nline two\n",
		Summary:    strPtr("a summary"),
		CoverImage: strPtr("https://cdn.example.com/a.png"),
	}

	diff := CompareSnapshots(v, v)

	assert.False(t, hasChanges(diff.Title))
	assert.False(t, hasChanges(diff.Summary))
	assert.False(t, hasChanges(diff.Content))
	assert.False(t, diff.CoverImage.Changed)
	assert.Equal(t, "No changes", GetChangeSummary(diff))
}

func TestCompareSnapshotsCoverImage(t *testing.T) {
	cases := []struct {
		name    string
		old     *string
		new     *string
		changed bool
	}{
		{"both nil", nil, nil, false},
		{"both equal", strPtr("a.png"), strPtr("a.png"), false},
		{"set to nil", strPtr("a.png"), nil, true},
		{"nil to set", nil, strPtr("a.png"), true},
		{"different urls", strPtr("a.png"), strPtr("b.png"), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diff := CompareSnapshots(
				&domain.BlogVersion{Title: "t", Content: "c", CoverImage: tc.old},
				&domain.BlogVersion{Title: "t", Content: "c", CoverImage: tc.new},
			)
			assert.Equal(t, tc.changed, diff.CoverImage.Changed)
			assert.Equal(t, tc.old, diff.CoverImage.Old)
			assert.Equal(t, tc.new, diff.CoverImage.New)
			assert.False(t, hasChanges(diff.Title), "cover image change must not leak into other fields")
			assert.False(t, hasChanges(diff.Content))
		})
	}
}

func TestGetChangeSummary(t *testing.T) {
	t.Run("content only", func(t *testing.T) {
		diff := CompareSnapshots(
			&domain.BlogVersion{Title: "t", Content: "old body"},
			&domain.BlogVersion{Title: "t", Content: "new body"},
		)
		assert.Equal(t, "Changed: content", GetChangeSummary(diff))
	})

	t.Run("everything", func(t *testing.T) {
		diff := CompareSnapshots(
			&domain.BlogVersion{Title: "old", Content: "old", Summary: strPtr("old"), CoverImage: strPtr("a.png")},
			&domain.BlogVersion{Title: "new", Content: "new", Summary: strPtr("new"), CoverImage: strPtr("b.png")},
		)
		assert.Equal(t, "Changed: title, summary, content, cover image", GetChangeSummary(diff))
	})
}

func TestCountChanges(t *testing.T) {
	changes := []domain.DiffChange{
		{Value: "unchanged "},
		{Value: "abc", Removed: true},
		{Value: "defgh", Added: true},
		{Value: " tail"},
	}

	additions, deletions := CountChanges(changes)
	assert.Equal(t, 5, additions)
	assert.Equal(t, 3, deletions)
}

func TestSplitWords(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"one", []string{"one"}},
		{"one two", []string{"one ", "two"}},
		{"one  two ", []string{"one  ", "two "}},
		{"  leading", []string{"  ", "leading"}},
		{"tab\tsep", []string{"tab\t", "sep"}},
	}

	for _, tc := range cases {
		got := splitWords(tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		assert.Equal(t, tc.in, strings.Join(got, ""), "tokens must concatenate back to input")
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"one line", []string{"one line"}},
		{"a\nb\n", []string{"a\n", "b\n"}},
		{"a\nb", []string{"a\n", "b"}},
		{"\n\n", []string{"\n", "\n"}},
	}

	for _, tc := range cases {
		got := splitLines(tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		assert.Equal(t, tc.in, strings.Join(got, ""), "lines must concatenate back to input")
	}
}
