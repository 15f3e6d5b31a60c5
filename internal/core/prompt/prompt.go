// Package prompt synthesizes the review feedback message from a diff
// model and its annotations.
//
// Synthesize is total and deterministic: a fixed (files, store) pair
// always produces byte-identical output, so the message can be asserted
// against literally in tests and pasted back to the agent that produced
// the change.
package prompt

import (
	"fmt"
	"strings"

	"github.com/pmatos/great-review/internal/core/annotate"
	"github.com/pmatos/great-review/internal/core/diff"
)

// Synthesize builds the single text artifact handed back to the reviewer.
//
// Hunks with no annotations, or only approvals, count toward the approved
// total and are omitted from the detail section. If nothing needs
// attention the whole message collapses to a one-line summary. An empty
// file list yields the empty string.
func Synthesize(files []diff.File, store *annotate.Store) string {
	if len(files) == 0 {
		return ""
	}

	var (
		total    int
		approved int
		blocks   []string
	)

	for _, file := range files {
		for i, hunk := range file.Hunks {
			total++
			key := annotate.Key{Path: file.Path, Hunk: i}
			if store.EffectivelyApproved(key) {
				approved++
				continue
			}
			blocks = append(blocks, hunkBlock(file.Path, hunk, store.Get(key)))
		}
	}

	if len(blocks) == 0 {
		return fmt.Sprintf("I've reviewed your changes. All %d hunks approved as-is. Looks good!", total)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I've reviewed your changes. %d hunks approved as-is.\n\n", approved)
	b.WriteString("The following need attention:\n\n")
	b.WriteString(strings.Join(blocks, "\n\n"))
	return b.String()
}

// hunkBlock renders one actionable hunk: a heading, then the retained
// annotations in fixed group order regardless of creation order:
// unscoped-approval marker, scoped approvals, comments, rejections.
// Within each group insertion order is preserved.
func hunkBlock(path string, hunk diff.Hunk, anns []annotate.Annotation) string {
	var (
		hasUnscopedApproval bool
		scopedApprovals     []annotate.Annotation
		comments            []annotate.Annotation
		rejections          []annotate.Annotation
	)

	for _, ann := range anns {
		switch ann.Decision {
		case annotate.DecisionApproved:
			if ann.Scoped() {
				scopedApprovals = append(scopedApprovals, ann)
			} else {
				hasUnscopedApproval = true
			}
		case annotate.DecisionCommented:
			comments = append(comments, ann)
		case annotate.DecisionRejected:
			rejections = append(rejections, ann)
		}
	}

	parts := []string{fmt.Sprintf("%s — Hunk %s", path, hunk.Header)}

	if hasUnscopedApproval {
		parts = append(parts, "Hunk approved as-is")
	}

	for _, ann := range scopedApprovals {
		parts = append(parts, "Approved"+rangeSuffix(ann)+snippetSuffix(ann))
	}

	for _, ann := range comments {
		parts = append(parts, "Comment"+rangeSuffix(ann)+snippetSuffix(ann)+":\n"+ann.Comment)
	}

	for _, ann := range rejections {
		parts = append(parts, rejectionBlock(hunk, ann))
	}

	return strings.Join(parts, "\n")
}

// rejectionBlock renders a rejection: label, fenced diff reconstruction
// of the targeted lines, then the reviewer's comment. A range matching
// no lines has nothing to show, so the fence is omitted rather than
// emitted empty.
func rejectionBlock(hunk diff.Hunk, ann annotate.Annotation) string {
	var b strings.Builder
	b.WriteString("Rejected (" + ann.RejectMode.Label() + ")" + snippetSuffix(ann) + ":\n")
	if rec := Reconstruct(hunk, ann.SelectedLines); rec != "" {
		b.WriteString("```diff\n")
		b.WriteString(rec)
		b.WriteString("\n```\n")
	}
	b.WriteString(ann.Comment)
	return b.String()
}

// Reconstruct re-emits the hunk's lines with their one-character unified
// diff prefixes. When a range is given, only lines whose addressing line
// number (post-image preferred, else pre-image) falls inside it are
// emitted; a nil range reproduces the full hunk prefix-for-prefix.
func Reconstruct(hunk diff.Hunk, r *annotate.LineRange) string {
	var out []string
	for _, line := range hunk.Lines {
		if r != nil {
			addr := line.AddressLine()
			if addr < r.Start || addr > r.End {
				continue
			}
		}
		out = append(out, string(line.Type.Marker())+line.Content)
	}
	return strings.Join(out, "\n")
}

// rangeSuffix formats the " on line N" / " on lines A-B" fragment for a
// scoped annotation, or nothing for an unscoped one.
func rangeSuffix(ann annotate.Annotation) string {
	if !ann.Scoped() {
		return ""
	}
	r := ann.SelectedLines
	if r.Start == r.End {
		return fmt.Sprintf(" on line %d", r.Start)
	}
	return fmt.Sprintf(" on lines %d-%d", r.Start, r.End)
}

// snippetSuffix formats the optional selected-text snippet fragment.
func snippetSuffix(ann annotate.Annotation) string {
	if ann.SelectedText == "" {
		return ""
	}
	return " (`" + ann.SelectedText + "`)"
}
