package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmatos/great-review/internal/core/annotate"
	"github.com/pmatos/great-review/internal/core/diff"
	"github.com/pmatos/great-review/internal/core/git"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeText(t *testing.T, m tea.Model, text string) tea.Model {
	t.Helper()
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func testFiles() []diff.File {
	return []diff.File{
		{
			Path:   "main.go",
			Status: diff.StatusModified,
			Hunks: []diff.Hunk{
				{
					Header:   "@@ -1,3 +1,3 @@",
					OldStart: 1, OldCount: 3, NewStart: 1, NewCount: 3,
					Lines: []diff.Line{
						{Content: "package main", Type: diff.LineContext, OldLineNo: 1, NewLineNo: 1},
						{Content: "old body", Type: diff.LineDeletion, OldLineNo: 2},
						{Content: "new body", Type: diff.LineAddition, NewLineNo: 2},
						{Content: "trailer", Type: diff.LineContext, OldLineNo: 3, NewLineNo: 3},
					},
				},
				{
					Header:   "@@ -10,2 +10,3 @@",
					OldStart: 10, OldCount: 2, NewStart: 10, NewCount: 3,
					Lines: []diff.Line{
						{Content: "ctx", Type: diff.LineContext, OldLineNo: 10, NewLineNo: 10},
						{Content: "added", Type: diff.LineAddition, NewLineNo: 11},
						{Content: "tail", Type: diff.LineContext, OldLineNo: 11, NewLineNo: 12},
					},
				},
			},
		},
		{
			Path:   "util.go",
			Status: diff.StatusAdded,
			Hunks: []diff.Hunk{
				{
					Header:   "@@ -0,0 +1,1 @@",
					NewStart: 1, NewCount: 1,
					Lines: []diff.Line{
						{Content: "package util", Type: diff.LineAddition, NewLineNo: 1},
					},
				},
			},
		},
	}
}

func testModel() Model {
	return New(Options{
		Files:     testFiles(),
		Repo:      git.RepoInfo{Name: "demo", Branch: "main"},
		Selection: "uncommitted changes",
		Store:     annotate.NewStore(),
	})
}

func TestModelStartsOnFirstHunk(t *testing.T) {
	m := testModel()

	key, ok := m.currentKey()
	require.True(t, ok)
	assert.Equal(t, annotate.Key{Path: "main.go", Hunk: 0}, key)
}

func TestModelApproveWholeHunk(t *testing.T) {
	m := testModel()

	next, _ := m.Update(keyMsg("a"))
	m = next.(Model)

	anns := m.store.Get(annotate.Key{Path: "main.go", Hunk: 0})
	require.Len(t, anns, 1)
	assert.Equal(t, annotate.DecisionApproved, anns[0].Decision)
	assert.Nil(t, anns[0].SelectedLines)
	assert.NotEmpty(t, anns[0].ID)
}

func TestModelScopedComment(t *testing.T) {
	m := testModel()

	var next tea.Model = m
	// Anchor a selection over the deletion and addition lines, then
	// open the comment modal and submit.
	next, _ = next.Update(keyMsg("j"))
	next, _ = next.Update(keyMsg("v"))
	next, _ = next.Update(keyMsg("j"))
	next, _ = next.Update(keyMsg("c"))
	next = typeText(t, next, "use the new helper")
	next, _ = next.Update(keyMsg("enter"))
	m = next.(Model)

	anns := m.store.Get(annotate.Key{Path: "main.go", Hunk: 0})
	require.Len(t, anns, 1)
	assert.Equal(t, annotate.DecisionCommented, anns[0].Decision)
	assert.Equal(t, "use the new helper", anns[0].Comment)
	require.NotNil(t, anns[0].SelectedLines)
	assert.Equal(t, annotate.LineRange{Start: 2, End: 2}, *anns[0].SelectedLines)
	assert.Equal(t, "old body\nnew body", anns[0].SelectedText)
	assert.False(t, m.hunkview.Selecting(), "selection should clear after annotating")
}

func TestModelCommentCancelAddsNothing(t *testing.T) {
	m := testModel()

	var next tea.Model = m
	next, _ = next.Update(keyMsg("c"))
	next = typeText(t, next, "never mind")
	next, _ = next.Update(keyMsg("esc"))
	m = next.(Model)

	assert.Equal(t, 0, m.store.Len())
}

func TestModelRejectWithModeToggle(t *testing.T) {
	m := testModel()

	var next tea.Model = m
	next, _ = next.Update(keyMsg("x"))
	next, _ = next.Update(keyMsg("tab"))
	next = typeText(t, next, "wrong approach")
	next, _ = next.Update(keyMsg("enter"))
	m = next.(Model)

	anns := m.store.Get(annotate.Key{Path: "main.go", Hunk: 0})
	require.Len(t, anns, 1)
	assert.Equal(t, annotate.DecisionRejected, anns[0].Decision)
	assert.Equal(t, annotate.RejectRequestPossibilities, anns[0].RejectMode)
	assert.Equal(t, "wrong approach", anns[0].Comment)
}

func TestModelBackspaceRemovesLastAnnotation(t *testing.T) {
	m := testModel()

	var next tea.Model = m
	next, _ = next.Update(keyMsg("a"))
	next, _ = next.Update(keyMsg("a"))
	m = next.(Model)
	require.Equal(t, 2, m.store.Count(annotate.Key{Path: "main.go", Hunk: 0}))

	next, _ = m.Update(keyMsg("backspace"))
	m = next.(Model)
	assert.Equal(t, 1, m.store.Count(annotate.Key{Path: "main.go", Hunk: 0}))
}

func TestModelClearHunk(t *testing.T) {
	m := testModel()

	var next tea.Model = m
	next, _ = next.Update(keyMsg("a"))
	next, _ = next.Update(keyMsg("u"))
	m = next.(Model)

	assert.Equal(t, 0, m.store.Count(annotate.Key{Path: "main.go", Hunk: 0}))
}

func TestModelNextHunkCrossesFiles(t *testing.T) {
	m := testModel()

	var next tea.Model = m
	next, _ = next.Update(keyMsg("n"))
	m = next.(Model)
	key, ok := m.currentKey()
	require.True(t, ok)
	assert.Equal(t, annotate.Key{Path: "main.go", Hunk: 1}, key)

	next, _ = m.Update(keyMsg("n"))
	m = next.(Model)
	key, ok = m.currentKey()
	require.True(t, ok)
	assert.Equal(t, annotate.Key{Path: "util.go", Hunk: 0}, key)
}

func TestModelNextHunkStopsAtLastRow(t *testing.T) {
	m := testModel()

	var next tea.Model = m
	next, _ = next.Update(keyMsg("tab")) // focus tree
	next, _ = next.Update(keyMsg("G"))
	m = next.(Model)
	_, hi := m.tree.Selected()
	require.GreaterOrEqual(t, hi, 0)

	// No hunk row exists past the last one; the cursor must stay put and
	// the selection must remain valid.
	next, _ = m.Update(keyMsg("n"))
	m = next.(Model)

	key, ok := m.currentKey()
	require.True(t, ok)
	assert.Equal(t, annotate.Key{Path: "util.go", Hunk: 0}, key)

	next, _ = m.Update(keyMsg("n"))
	m = next.(Model)
	key, ok = m.currentKey()
	require.True(t, ok)
	assert.Equal(t, annotate.Key{Path: "util.go", Hunk: 0}, key)
}

func TestModelNextHunkOnEmptyTree(t *testing.T) {
	tree := NewTree(nil, annotate.NewStore())

	assert.False(t, tree.MoveCursor("n"))
	_, hi := tree.Selected()
	assert.Equal(t, -1, hi)
}

func TestModelQuitWithoutFinalize(t *testing.T) {
	m := testModel()

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)

	require.NotNil(t, cmd)
	assert.False(t, m.Finalized())
}
