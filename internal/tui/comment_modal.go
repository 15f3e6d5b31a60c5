package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pmatos/great-review/internal/core/styles"
)

// CommentModal collects free-form comment text for the selected hunk or
// line range.
type CommentModal struct {
	input   textinput.Model
	scope   string
	active  bool
	confirm bool
}

// NewCommentModal creates an inactive comment modal.
func NewCommentModal() CommentModal {
	ti := textinput.New()
	ti.Placeholder = "what should change here?"
	ti.CharLimit = 500
	ti.Width = 56
	return CommentModal{input: ti}
}

// Open activates the modal. scope describes what the comment applies to
// ("whole hunk" or "lines 12-14").
func (m *CommentModal) Open(scope string) {
	m.scope = scope
	m.active = true
	m.confirm = false
	m.input.SetValue("")
	m.input.Focus()
}

// Active reports whether the modal is capturing input.
func (m CommentModal) Active() bool {
	return m.active
}

// Value returns the entered comment, trimmed.
func (m CommentModal) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Confirmed reports whether the modal was closed with enter rather than
// cancelled.
func (m CommentModal) Confirmed() bool {
	return m.confirm
}

// Update handles one key press. It returns true when the modal closed,
// either confirmed or cancelled.
func (m *CommentModal) Update(msg tea.KeyMsg) (closed bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.active = false
		m.input.Blur()
		return true, nil
	case "enter":
		if m.Value() == "" {
			return false, nil
		}
		m.active = false
		m.confirm = true
		m.input.Blur()
		return true, nil
	}

	m.input, cmd = m.input.Update(msg)
	return false, cmd
}

// View renders the modal body.
func (m CommentModal) View() string {
	var b strings.Builder
	b.WriteString(styles.TextPrimaryBoldStyle.Render("Comment"))
	b.WriteString(styles.TextMutedStyle.Render(" on " + m.scope))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.TextMutedStyle.Render("enter save · esc cancel"))
	return styles.ModalStyle.Render(b.String())
}
