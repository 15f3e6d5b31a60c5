package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmatos/great-review/internal/core/annotate"
)

func typeModal(update func(tea.KeyMsg) (bool, tea.Cmd), text string) {
	for _, r := range text {
		update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestCommentModalSubmit(t *testing.T) {
	m := NewCommentModal()
	m.Open("whole hunk")
	require.True(t, m.Active())

	typeModal(m.Update, "needs a nil check")
	closed, _ := m.Update(keyMsg("enter"))

	assert.True(t, closed)
	assert.True(t, m.Confirmed())
	assert.False(t, m.Active())
	assert.Equal(t, "needs a nil check", m.Value())
}

func TestCommentModalRejectsEmptySubmit(t *testing.T) {
	m := NewCommentModal()
	m.Open("whole hunk")

	closed, _ := m.Update(keyMsg("enter"))

	assert.False(t, closed)
	assert.True(t, m.Active())
}

func TestCommentModalCancel(t *testing.T) {
	m := NewCommentModal()
	m.Open("lines 3-5")
	typeModal(m.Update, "half a thought")

	closed, _ := m.Update(keyMsg("esc"))

	assert.True(t, closed)
	assert.False(t, m.Confirmed())
	assert.False(t, m.Active())
}

func TestCommentModalResetsBetweenOpens(t *testing.T) {
	m := NewCommentModal()
	m.Open("whole hunk")
	typeModal(m.Update, "first")
	_, _ = m.Update(keyMsg("enter"))

	m.Open("whole hunk")
	assert.Empty(t, m.Value())
	assert.False(t, m.Confirmed())
}

func TestRejectModalDefaultsToProposeAlternative(t *testing.T) {
	m := NewRejectModal()
	m.Open("whole hunk")

	assert.Equal(t, annotate.RejectProposeAlternative, m.Mode())
}

func TestRejectModalTabTogglesMode(t *testing.T) {
	m := NewRejectModal()
	m.Open("whole hunk")

	closed, _ := m.Update(keyMsg("tab"))
	assert.False(t, closed)
	assert.Equal(t, annotate.RejectRequestPossibilities, m.Mode())

	_, _ = m.Update(keyMsg("tab"))
	assert.Equal(t, annotate.RejectProposeAlternative, m.Mode())
}

func TestRejectModalSubmitKeepsMode(t *testing.T) {
	m := NewRejectModal()
	m.Open("line 7")
	_, _ = m.Update(keyMsg("tab"))
	typeModal(m.Update, "breaks the invariant")

	closed, _ := m.Update(keyMsg("enter"))

	require.True(t, closed)
	assert.True(t, m.Confirmed())
	assert.Equal(t, annotate.RejectRequestPossibilities, m.Mode())
	assert.Equal(t, "breaks the invariant", m.Value())
}

func TestFinalizeModalConfirmAndCancel(t *testing.T) {
	m := NewFinalizeModal()
	m.Open("I've reviewed your changes.", 80, 24)
	require.True(t, m.Active())

	closed, _ := m.Update(keyMsg("esc"))
	assert.True(t, closed)
	assert.False(t, m.Confirmed())

	m.Open("I've reviewed your changes.", 80, 24)
	closed, _ = m.Update(keyMsg("enter"))
	assert.True(t, closed)
	assert.True(t, m.Confirmed())
}
