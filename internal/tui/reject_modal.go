package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pmatos/great-review/internal/core/annotate"
	"github.com/pmatos/great-review/internal/core/styles"
)

// RejectModal collects a rejection: the reason text plus the mode that
// tells the author what kind of followup is wanted.
type RejectModal struct {
	input   textinput.Model
	mode    annotate.RejectMode
	scope   string
	active  bool
	confirm bool
}

// NewRejectModal creates an inactive reject modal.
func NewRejectModal() RejectModal {
	ti := textinput.New()
	ti.Placeholder = "why is this wrong?"
	ti.CharLimit = 500
	ti.Width = 56
	return RejectModal{input: ti}
}

// Open activates the modal for the given scope description.
func (m *RejectModal) Open(scope string) {
	m.scope = scope
	m.active = true
	m.confirm = false
	m.mode = annotate.RejectProposeAlternative
	m.input.SetValue("")
	m.input.Focus()
}

// Active reports whether the modal is capturing input.
func (m RejectModal) Active() bool {
	return m.active
}

// Value returns the entered rejection reason, trimmed.
func (m RejectModal) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Mode returns the selected rejection mode.
func (m RejectModal) Mode() annotate.RejectMode {
	return m.mode
}

// Confirmed reports whether the modal was closed with enter rather than
// cancelled.
func (m RejectModal) Confirmed() bool {
	return m.confirm
}

// Update handles one key press. Tab flips between the two rejection
// modes; it returns true when the modal closed.
func (m *RejectModal) Update(msg tea.KeyMsg) (closed bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.active = false
		m.input.Blur()
		return true, nil
	case "tab":
		if m.mode == annotate.RejectProposeAlternative {
			m.mode = annotate.RejectRequestPossibilities
		} else {
			m.mode = annotate.RejectProposeAlternative
		}
		return false, nil
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
func (m RejectModal) View() string {
	var b strings.Builder
	b.WriteString(styles.TextErrorStyle.Render("Reject"))
	b.WriteString(styles.TextMutedStyle.Render(" " + m.scope))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderModes())
	b.WriteString("\n\n")
	b.WriteString(styles.TextMutedStyle.Render("tab mode · enter save · esc cancel"))
	return styles.ModalStyle.Render(b.String())
}

func (m RejectModal) renderModes() string {
	modes := []annotate.RejectMode{
		annotate.RejectProposeAlternative,
		annotate.RejectRequestPossibilities,
	}

	var parts []string
	for _, mode := range modes {
		label := mode.Label()
		if mode == m.mode {
			parts = append(parts, styles.TextPrimaryBoldStyle.Render("[x] "+label))
		} else {
			parts = append(parts, styles.TextMutedStyle.Render("[ ] "+label))
		}
	}
	return strings.Join(parts, "  ")
}
