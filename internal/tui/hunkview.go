package tui

import (
	"fmt"
	"strings"

	"github.com/pmatos/great-review/internal/core/annotate"
	"github.com/pmatos/great-review/internal/core/diff"
	"github.com/pmatos/great-review/internal/core/styles"
)

// HunkViewModel is the right panel: the lines of the selected hunk with
// a cursor and an optional visual selection anchored with `v`.
type HunkViewModel struct {
	hunk   *diff.Hunk
	cursor int
	anchor int // -1 when no selection is active
	offset int
	width  int
	height int
}

// NewHunkView returns an empty hunk view; call SetHunk to load one.
func NewHunkView() HunkViewModel {
	return HunkViewModel{anchor: -1}
}

// SetHunk replaces the displayed hunk and resets cursor and selection.
func (h *HunkViewModel) SetHunk(hunk *diff.Hunk) {
	h.hunk = hunk
	h.cursor = 0
	h.anchor = -1
	h.offset = 0
}

// SetSize updates the panel dimensions.
func (h *HunkViewModel) SetSize(width, height int) {
	h.width = width
	h.height = height
	h.scrollToCursor()
}

// MoveCursor handles one navigation key.
func (h *HunkViewModel) MoveCursor(key string) {
	if h.hunk == nil || len(h.hunk.Lines) == 0 {
		return
	}
	switch key {
	case "j", "down":
		if h.cursor < len(h.hunk.Lines)-1 {
			h.cursor++
		}
	case "k", "up":
		if h.cursor > 0 {
			h.cursor--
		}
	case "g":
		h.cursor = 0
	case "G":
		h.cursor = len(h.hunk.Lines) - 1
	}
	h.scrollToCursor()
}

func (h *HunkViewModel) scrollToCursor() {
	if h.height <= 0 {
		return
	}
	if h.cursor < h.offset {
		h.offset = h.cursor
	}
	if h.cursor >= h.offset+h.height {
		h.offset = h.cursor - h.height + 1
	}
}

// ToggleSelection starts a visual selection at the cursor, or clears it
// when one is already active.
func (h *HunkViewModel) ToggleSelection() {
	if h.anchor >= 0 {
		h.anchor = -1
		return
	}
	h.anchor = h.cursor
}

// ClearSelection drops the active selection.
func (h *HunkViewModel) ClearSelection() {
	h.anchor = -1
}

// Selecting reports whether a visual selection is active.
func (h HunkViewModel) Selecting() bool {
	return h.anchor >= 0
}

// selectionBounds returns the selected line index span. Without an
// active selection both bounds are the cursor line.
func (h HunkViewModel) selectionBounds() (lo, hi int) {
	if h.anchor < 0 {
		return h.cursor, h.cursor
	}
	if h.anchor <= h.cursor {
		return h.anchor, h.cursor
	}
	return h.cursor, h.anchor
}

// Selection maps the active visual selection to a line range and the
// verbatim selected text. Returns nil when nothing is selected, so
// annotations made without a selection apply to the whole hunk.
func (h HunkViewModel) Selection() (*annotate.LineRange, string) {
	if h.hunk == nil || h.anchor < 0 {
		return nil, ""
	}

	lo, hi := h.selectionBounds()

	// Address each selected line the way the synthesizer will: new-side
	// number when present, old-side otherwise.
	start, end := 0, 0
	var parts []string
	for i := lo; i <= hi; i++ {
		line := h.hunk.Lines[i]
		parts = append(parts, line.Content)
		n := line.AddressLine()
		if n == 0 {
			continue
		}
		if start == 0 || n < start {
			start = n
		}
		if n > end {
			end = n
		}
	}

	if start == 0 {
		return nil, strings.Join(parts, "\n")
	}
	return &annotate.LineRange{Start: start, End: end}, strings.Join(parts, "\n")
}

// View renders the visible window of hunk lines with line-number gutters.
func (h HunkViewModel) View() string {
	if h.hunk == nil {
		return styles.TextMutedStyle.Render("select a hunk")
	}

	lo, hi := h.selectionBounds()
	end := min(h.offset+h.height, len(h.hunk.Lines))

	var b strings.Builder
	b.WriteString(styles.HunkHeaderStyle.Render(truncate(h.hunk.Header, h.width)))
	for i := h.offset; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(h.renderLine(i, h.anchor >= 0 && i >= lo && i <= hi))
	}
	return b.String()
}

func (h HunkViewModel) renderLine(i int, selected bool) string {
	line := h.hunk.Lines[i]

	gutter := fmt.Sprintf("%4s %4s ", gutterNo(line.OldLineNo), gutterNo(line.NewLineNo))
	text := string(line.Type.Marker()) + line.Content

	var style = styles.DiffContextStyle
	switch line.Type {
	case diff.LineAddition:
		style = styles.DiffAddStyle
	case diff.LineDeletion:
		style = styles.DiffDeleteStyle
	}

	row := styles.TextMutedStyle.Render(gutter) + style.Render(text)
	row = truncate(row, h.width)

	switch {
	case i == h.cursor:
		return styles.CursorLineStyle.Render(row)
	case selected:
		return styles.SelectionStyle.Render(row)
	default:
		return row
	}
}

func gutterNo(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}
