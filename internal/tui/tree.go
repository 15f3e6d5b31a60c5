package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pmatos/great-review/internal/core/annotate"
	"github.com/pmatos/great-review/internal/core/diff"
	"github.com/pmatos/great-review/internal/core/styles"
)

// treeItem is one row in the navigation tree: a file row (hunkIdx -1) or
// a hunk row beneath it.
type treeItem struct {
	fileIdx int
	hunkIdx int
}

// TreeModel is the left panel: every file with its hunks listed beneath
// it, annotated with per-hunk review state.
type TreeModel struct {
	files  []diff.File
	store  *annotate.Store
	items  []treeItem
	cursor int
	offset int
	width  int
	height int
}

// NewTree builds the tree for the parsed files.
func NewTree(files []diff.File, store *annotate.Store) TreeModel {
	var items []treeItem
	for fi, f := range files {
		items = append(items, treeItem{fileIdx: fi, hunkIdx: -1})
		for hi := range f.Hunks {
			items = append(items, treeItem{fileIdx: fi, hunkIdx: hi})
		}
	}

	t := TreeModel{files: files, store: store, items: items}
	// Start on the first hunk row rather than its file row.
	if first := t.nextHunkRow(0); first >= 0 {
		t.cursor = first
	}
	return t
}

// nextHunkRow returns the index of the first hunk row at or after start,
// or -1 when there is none.
func (t TreeModel) nextHunkRow(start int) int {
	for i := start; i < len(t.items); i++ {
		if t.items[i].hunkIdx >= 0 {
			return i
		}
	}
	return -1
}

// Selected returns the file and hunk index under the cursor; hunkIdx is
// -1 when a file row is selected.
func (t TreeModel) Selected() (fileIdx, hunkIdx int) {
	if len(t.items) == 0 {
		return 0, -1
	}
	item := t.items[t.cursor]
	return item.fileIdx, item.hunkIdx
}

// MoveCursor handles one navigation key and reports whether the selection
// changed.
func (t *TreeModel) MoveCursor(key string) bool {
	prev := t.cursor
	switch key {
	case "j", "down":
		if t.cursor < len(t.items)-1 {
			t.cursor++
		}
	case "k", "up":
		if t.cursor > 0 {
			t.cursor--
		}
	case "g":
		t.cursor = 0
	case "G":
		t.cursor = len(t.items) - 1
	case "n":
		if next := t.nextHunkRow(t.cursor + 1); next >= 0 {
			t.cursor = next
		}
	}
	t.scrollToCursor()
	return t.cursor != prev
}

func (t *TreeModel) scrollToCursor() {
	if t.height <= 0 {
		return
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.height {
		t.offset = t.cursor - t.height + 1
	}
}

// SetSize updates the panel dimensions.
func (t *TreeModel) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.scrollToCursor()
}

// View renders the visible window of tree rows.
func (t TreeModel) View() string {
	if len(t.items) == 0 {
		return styles.TextMutedStyle.Render("no changes")
	}

	end := min(t.offset+t.height, len(t.items))

	var b strings.Builder
	for i := t.offset; i < end; i++ {
		if i > t.offset {
			b.WriteString("\n")
		}
		b.WriteString(t.renderRow(i))
	}
	return b.String()
}

func (t TreeModel) renderRow(i int) string {
	item := t.items[i]
	file := t.files[item.fileIdx]

	var row string
	if item.hunkIdx < 0 {
		row = fmt.Sprintf("%s %s", statusGlyph(file.Status), file.Path)
		if file.OldPath != "" {
			row += " ← " + file.OldPath
		}
		if len(file.Hunks) == 0 {
			row += styles.TextMutedStyle.Render(" (no hunks)")
		}
	} else {
		key := annotate.Key{Path: file.Path, Hunk: item.hunkIdx}
		row = "  " + reviewGlyph(t.store, key) + " " + file.Hunks[item.hunkIdx].Header
	}

	row = truncate(row, t.width)
	if i == t.cursor {
		return styles.CursorLineStyle.Render(row)
	}
	return row
}

// statusGlyph maps a file status to its one-letter marker.
func statusGlyph(s diff.FileStatus) string {
	switch s {
	case diff.StatusAdded:
		return styles.TextSuccessStyle.Render("A")
	case diff.StatusDeleted:
		return styles.TextErrorStyle.Render("D")
	case diff.StatusRenamed:
		return styles.TextWarningStyle.Render("R")
	default:
		return styles.TextPrimaryStyle.Render("M")
	}
}

// reviewGlyph shows per-hunk review state: untouched, approved, or
// needing attention.
func reviewGlyph(store *annotate.Store, key annotate.Key) string {
	switch {
	case store.Count(key) == 0:
		return styles.TextMutedStyle.Render("·")
	case store.EffectivelyApproved(key):
		return styles.TextSuccessStyle.Render("✓")
	default:
		return styles.TextWarningStyle.Render("●")
	}
}

// truncate cuts a rendered row to the panel width, accounting for ANSI
// sequences via lipgloss width math.
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
