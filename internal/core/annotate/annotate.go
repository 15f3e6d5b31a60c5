// Package annotate holds reviewer judgments attached to diff hunks.
//
// Annotations live only in memory for the duration of a review run; there
// is no persistence and no cross-run identity. Multiple independent
// annotations may coexist on the same hunk at different or overlapping
// scopes.
package annotate

// idLength is the length of generated annotation IDs.
const idLength = 8

// Decision is the reviewer's judgment on a hunk or line range.
type Decision int

const (
	// DecisionApproved accepts the change as-is.
	DecisionApproved Decision = iota
	// DecisionCommented attaches feedback without blocking the change.
	DecisionCommented
	// DecisionRejected blocks the change; RejectMode says what the
	// reviewer wants instead.
	DecisionRejected
)

// String returns the lowercase name of the decision.
func (d Decision) String() string {
	switch d {
	case DecisionCommented:
		return "commented"
	case DecisionRejected:
		return "rejected"
	default:
		return "approved"
	}
}

// RejectMode sub-classifies a rejection.
type RejectMode int

const (
	// RejectProposeAlternative means the reviewer is proposing a specific
	// alternative in the comment.
	RejectProposeAlternative RejectMode = iota
	// RejectRequestPossibilities asks for unconstrained alternative
	// approaches.
	RejectRequestPossibilities
)

// Label returns the human-readable label used in synthesized output.
func (m RejectMode) Label() string {
	switch m {
	case RejectRequestPossibilities:
		return "request other possibilities"
	default:
		return "propose alternative"
	}
}

// LineRange is an inclusive range in the unified line-number space: the
// post-image number of a line when it has one, else its pre-image number.
type LineRange struct {
	Start int
	End   int
}

// Annotation is one independent judgment attached to a hunk.
type Annotation struct {
	// ID is generated at creation and used only for removal.
	ID       string
	Decision Decision
	// Comment is required for commented/rejected, empty for approvals.
	Comment string
	// RejectMode is meaningful only when Decision is DecisionRejected.
	RejectMode RejectMode
	// SelectedText is an optional literal snippet the judgment refers
	// to; display-only.
	SelectedText string
	// SelectedLines scopes the judgment to a line range; nil means the
	// whole hunk.
	SelectedLines *LineRange
}

// Scoped reports whether the annotation targets a line range rather than
// the whole hunk.
func (a Annotation) Scoped() bool {
	return a.SelectedLines != nil
}

// Key addresses a hunk by file path and index within that file. The pair
// is positional: re-parsing a changed diff silently orphans annotations
// stored under old keys.
type Key struct {
	Path string
	Hunk int
}
