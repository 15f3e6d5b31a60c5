package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/pmatos/great-review/internal/core/styles"
)

// FinalizeModal previews the synthesized review message before it is
// copied to the clipboard and the session ends.
type FinalizeModal struct {
	view    viewport.Model
	active  bool
	confirm bool
}

// NewFinalizeModal creates an inactive finalize modal.
func NewFinalizeModal() FinalizeModal {
	return FinalizeModal{view: viewport.New(0, 0)}
}

// Open activates the modal with the message to preview.
func (m *FinalizeModal) Open(message string, width, height int) {
	m.active = true
	m.confirm = false

	w := min(width-8, 100)
	if w < 20 {
		w = 20
	}
	h := height - 10
	if h < 5 {
		h = 5
	}
	m.view = viewport.New(w, h)
	m.view.SetContent(renderMarkdown(message, w))
	m.view.GotoTop()
}

// renderMarkdown pretty-prints the message; on failure the raw text is
// shown instead.
func renderMarkdown(message string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return message
	}
	out, err := r.Render(message)
	if err != nil {
		return message
	}
	return strings.TrimRight(out, "\n")
}

// Active reports whether the modal is open.
func (m FinalizeModal) Active() bool {
	return m.active
}

// Confirmed reports whether the modal was closed with enter rather than
// cancelled.
func (m FinalizeModal) Confirmed() bool {
	return m.confirm
}

// Update handles one key press; it returns true when the modal closed.
func (m *FinalizeModal) Update(msg tea.KeyMsg) (closed bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.active = false
		return true, nil
	case "enter":
		m.active = false
		m.confirm = true
		return true, nil
	}

	m.view, cmd = m.view.Update(msg)
	return false, cmd
}

// View renders the preview with its footer.
func (m FinalizeModal) View() string {
	var b strings.Builder
	b.WriteString(styles.TextPrimaryBoldStyle.Render("Finalize review"))
	b.WriteString("\n\n")
	b.WriteString(m.view.View())
	b.WriteString("\n\n")
	b.WriteString(styles.TextMutedStyle.Render("enter copy & quit · esc back · j/k scroll"))
	return styles.ModalStyle.Render(b.String())
}
