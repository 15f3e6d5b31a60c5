// Package diff parses unified diff text into a structured, navigable model.
//
// The model is produced once per diff snapshot and is immutable afterward.
// Hunks are addressed positionally by (file path, index within file); that
// pair is the only stable identifier used by the annotation layer, so a
// re-parse after the underlying diff changes invalidates prior addresses.
package diff

import "encoding/json"

// LineType classifies a physical line within a hunk.
type LineType int

const (
	// LineContext is an unchanged line present in both images.
	LineContext LineType = iota
	// LineAddition is a line present only in the post-image.
	LineAddition
	// LineDeletion is a line present only in the pre-image.
	LineDeletion
)

// String returns the lowercase name of the line type.
func (t LineType) String() string {
	switch t {
	case LineAddition:
		return "addition"
	case LineDeletion:
		return "deletion"
	default:
		return "context"
	}
}

// Marker returns the one-character unified diff prefix for the line type.
func (t LineType) Marker() byte {
	switch t {
	case LineAddition:
		return '+'
	case LineDeletion:
		return '-'
	default:
		return ' '
	}
}

// MarshalJSON encodes the line type as its lowercase name.
func (t LineType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// FileStatus classifies how a file changed.
type FileStatus int

const (
	// StatusModified is the default when no metadata marker says otherwise.
	StatusModified FileStatus = iota
	// StatusAdded marks a newly created file.
	StatusAdded
	// StatusDeleted marks a removed file.
	StatusDeleted
	// StatusRenamed marks a renamed file; OldPath carries the prior name.
	StatusRenamed
)

// String returns the lowercase name of the file status.
func (s FileStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	default:
		return "modified"
	}
}

// MarshalJSON encodes the file status as its lowercase name.
func (s FileStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Line is one physical diff line with its marker stripped.
//
// OldLineNo is set for deletions and context, NewLineNo for additions and
// context; zero means the number does not apply to this line class.
type Line struct {
	Content   string   `json:"content"`
	Type      LineType `json:"line_type"`
	OldLineNo int      `json:"old_line_no,omitempty"`
	NewLineNo int      `json:"new_line_no,omitempty"`
}

// AddressLine returns the line number used to address this line from an
// annotation range: the post-image number when present, otherwise the
// pre-image number (pure deletions).
func (l Line) AddressLine() int {
	if l.NewLineNo != 0 {
		return l.NewLineNo
	}
	return l.OldLineNo
}

// Hunk is one contiguous change region within a file.
type Hunk struct {
	// Header is the literal "@@ -a,b +c,d @@ ..." line, preserved verbatim
	// for display and addressing.
	Header   string `json:"header"`
	OldStart int    `json:"old_start"`
	OldCount int    `json:"old_count"`
	NewStart int    `json:"new_start"`
	NewCount int    `json:"new_count"`
	Lines    []Line `json:"lines"`
}

// File is one changed file in the diff, with its hunks in input order.
// Hunks is empty for binary files, pure renames, and mode-only changes.
type File struct {
	Path    string     `json:"path"`
	OldPath string     `json:"old_path,omitempty"`
	Status  FileStatus `json:"status"`
	Hunks   []Hunk     `json:"hunks"`
}
