package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/pmatos/great-review/internal/core/annotate"
	"github.com/pmatos/great-review/internal/core/diff"
	"github.com/pmatos/great-review/internal/core/git"
	"github.com/pmatos/great-review/internal/core/prompt"
	"github.com/pmatos/great-review/internal/core/styles"
)

type focusArea int

const (
	focusTree focusArea = iota
	focusHunk
)

// Options configures a review session.
type Options struct {
	Files     []diff.File
	Repo      git.RepoInfo
	Selection string
	Store     *annotate.Store
}

// Model is the root review TUI: a file/hunk tree on the left, the
// selected hunk on the right, and modals for comments, rejections, and
// the finalize preview.
type Model struct {
	files     []diff.File
	repo      git.RepoInfo
	selection string
	store     *annotate.Store

	tree     TreeModel
	hunkview HunkViewModel
	comment  CommentModal
	reject   RejectModal
	finalize FinalizeModal

	focus  focusArea
	width  int
	height int

	// Scope captured when a modal opens, so selection changes while the
	// modal is up cannot shift what the annotation applies to.
	pendingRange *annotate.LineRange
	pendingText  string

	finalized bool
	prompt    string
	copyErr   error
}

// New builds the review model over the parsed files.
func New(opts Options) Model {
	m := Model{
		files:     opts.Files,
		repo:      opts.Repo,
		selection: opts.Selection,
		store:     opts.Store,
		tree:      NewTree(opts.Files, opts.Store),
		hunkview:  NewHunkView(),
		comment:   NewCommentModal(),
		reject:    NewRejectModal(),
		finalize:  NewFinalizeModal(),
		focus:     focusHunk,
	}
	m.syncHunk()
	return m
}

// Finalized reports whether the session ended via the finalize flow
// rather than a plain quit.
func (m Model) Finalized() bool {
	return m.finalized
}

// Prompt returns the synthesized review message built at finalize time.
func (m Model) Prompt() string {
	return m.prompt
}

// CopyErr returns the clipboard error from finalizing, if any.
func (m Model) CopyErr() error {
	return m.copyErr
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// currentKey returns the annotation key for the hunk under the tree
// cursor; ok is false on a file row or an empty tree.
func (m Model) currentKey() (annotate.Key, bool) {
	fi, hi := m.tree.Selected()
	if hi < 0 || fi >= len(m.files) {
		return annotate.Key{}, false
	}
	return annotate.Key{Path: m.files[fi].Path, Hunk: hi}, true
}

// currentHunk returns the hunk under the tree cursor, or nil.
func (m Model) currentHunk() *diff.Hunk {
	fi, hi := m.tree.Selected()
	if hi < 0 || fi >= len(m.files) {
		return nil
	}
	return &m.files[fi].Hunks[hi]
}

func (m *Model) syncHunk() {
	m.hunkview.SetHunk(m.currentHunk())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) layout() {
	treeWidth := m.width * 3 / 10
	if treeWidth < 24 {
		treeWidth = min(24, m.width)
	}
	panelHeight := max(m.height-2, 1) // status bar and its separator
	m.tree.SetSize(treeWidth, panelHeight)
	m.hunkview.SetSize(m.width-treeWidth-1, panelHeight)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modals capture all input while open.
	switch {
	case m.comment.Active():
		closed, cmd := m.comment.Update(msg)
		if closed && m.comment.Confirmed() {
			m.addAnnotation(annotate.Annotation{
				Decision:      annotate.DecisionCommented,
				Comment:       m.comment.Value(),
				SelectedText:  m.pendingText,
				SelectedLines: m.pendingRange,
			})
		}
		return m, cmd
	case m.reject.Active():
		closed, cmd := m.reject.Update(msg)
		if closed && m.reject.Confirmed() {
			m.addAnnotation(annotate.Annotation{
				Decision:      annotate.DecisionRejected,
				Comment:       m.reject.Value(),
				RejectMode:    m.reject.Mode(),
				SelectedText:  m.pendingText,
				SelectedLines: m.pendingRange,
			})
		}
		return m, cmd
	case m.finalize.Active():
		closed, cmd := m.finalize.Update(msg)
		if closed && m.finalize.Confirmed() {
			return m.finish()
		}
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.focus == focusTree {
			m.focus = focusHunk
		} else {
			m.focus = focusTree
		}
		return m, nil
	case "j", "k", "g", "G", "down", "up", "n":
		if m.focus == focusTree || msg.String() == "n" {
			if m.tree.MoveCursor(msg.String()) {
				m.syncHunk()
			}
		} else {
			m.hunkview.MoveCursor(msg.String())
		}
		return m, nil
	case "v":
		m.hunkview.ToggleSelection()
		return m, nil
	case "esc":
		m.hunkview.ClearSelection()
		return m, nil
	case "a":
		m.captureScope()
		m.addAnnotation(annotate.Annotation{
			Decision:      annotate.DecisionApproved,
			SelectedText:  m.pendingText,
			SelectedLines: m.pendingRange,
		})
		return m, nil
	case "c":
		if _, ok := m.currentKey(); ok {
			m.captureScope()
			m.comment.Open(m.scopeLabel())
		}
		return m, nil
	case "x":
		if _, ok := m.currentKey(); ok {
			m.captureScope()
			m.reject.Open(m.scopeLabel())
		}
		return m, nil
	case "u":
		if key, ok := m.currentKey(); ok {
			m.store.Clear(key)
		}
		return m, nil
	case "backspace":
		m.removeLast()
		return m, nil
	case "f":
		m.finalize.Open(prompt.Synthesize(m.files, m.store), m.width, m.height)
		return m, nil
	}

	return m, nil
}

// captureScope snapshots the hunk view's selection for the annotation
// about to be created.
func (m *Model) captureScope() {
	if m.focus == focusHunk && m.hunkview.Selecting() {
		m.pendingRange, m.pendingText = m.hunkview.Selection()
	} else {
		m.pendingRange, m.pendingText = nil, ""
	}
}

func (m *Model) scopeLabel() string {
	switch {
	case m.pendingRange == nil:
		return "whole hunk"
	case m.pendingRange.Start == m.pendingRange.End:
		return fmt.Sprintf("line %d", m.pendingRange.Start)
	default:
		return fmt.Sprintf("lines %d-%d", m.pendingRange.Start, m.pendingRange.End)
	}
}

func (m *Model) addAnnotation(ann annotate.Annotation) {
	key, ok := m.currentKey()
	if !ok {
		return
	}
	stored := m.store.Add(key, ann)
	m.hunkview.ClearSelection()
	m.pendingRange, m.pendingText = nil, ""
	log.Debug().
		Str("path", key.Path).
		Int("hunk", key.Hunk).
		Str("id", stored.ID).
		Str("decision", stored.Decision.String()).
		Msg("annotation added")
}

// removeLast drops the most recent annotation on the current hunk.
func (m *Model) removeLast() {
	key, ok := m.currentKey()
	if !ok {
		return
	}
	anns := m.store.Get(key)
	if len(anns) == 0 {
		return
	}
	m.store.Remove(key, anns[len(anns)-1].ID)
}

// finish synthesizes the review message, copies it to the clipboard,
// and quits.
func (m Model) finish() (tea.Model, tea.Cmd) {
	m.prompt = prompt.Synthesize(m.files, m.store)
	m.copyErr = clipboard.WriteAll(m.prompt)
	m.finalized = true
	return m, tea.Quit
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	switch {
	case m.comment.Active():
		return m.overlay(m.comment.View())
	case m.reject.Active():
		return m.overlay(m.reject.View())
	case m.finalize.Active():
		return m.overlay(m.finalize.View())
	}

	treeWidth := m.width * 3 / 10
	if treeWidth < 24 {
		treeWidth = min(24, m.width)
	}
	panelHeight := max(m.height-2, 1)

	left := lipgloss.NewStyle().
		Width(treeWidth).
		Height(panelHeight).
		Render(m.tree.View())
	sep := lipgloss.NewStyle().
		Height(panelHeight).
		Foreground(styles.CurrentPalette.Muted).
		Render(strings.TrimRight(strings.Repeat("│\n", panelHeight), "\n"))
	right := lipgloss.NewStyle().
		Width(m.width - treeWidth - 1).
		Height(panelHeight).
		Render(m.hunkview.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)
	return body + "\n" + m.renderStatusBar()
}

func (m Model) overlay(modal string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m Model) renderStatusBar() string {
	total, touched := 0, 0
	for _, f := range m.files {
		for hi := range f.Hunks {
			total++
			if m.store.Count(annotate.Key{Path: f.Path, Hunk: hi}) > 0 {
				touched++
			}
		}
	}

	left := fmt.Sprintf(" %s (%s) · %s · %d/%d hunks reviewed",
		m.repo.Name, m.repo.Branch, m.selection, touched, total)

	help := "tab focus · v select · a approve · c comment · x reject · u undo hunk · f finalize · q quit"
	if m.hunkview.Selecting() {
		help = "a approve lines · c comment lines · x reject lines · esc cancel selection"
	}

	bar := left + "  " + styles.TextMutedStyle.Render(help)
	return styles.StatusBarStyle.Width(m.width).Render(truncate(bar, m.width))
}
