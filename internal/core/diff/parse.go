package diff

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a hard parse failure scoped to one file. Header holds
// the offending hunk header when the failure occurred inside a hunk.
type ParseError struct {
	Path   string
	Header string
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Header != "" {
		return fmt.Sprintf("parse diff: file %s: hunk %q: %s", e.Path, e.Header, e.Msg)
	}
	return fmt.Sprintf("parse diff: file %s: %s", e.Path, e.Msg)
}

// Parse converts the full text of a unified diff into an ordered list of
// Files, preserving file and hunk order from the input.
//
// Segments without hunk content (binary files, pure renames, mode-only
// changes) yield a File with no hunks. A hunk header that does not match
// the @@ grammar, or a line walk that contradicts the header's declared
// counts, aborts the whole parse: downstream addressing depends on index
// stability, so a partially-correct model is worse than none.
func Parse(text string) ([]File, error) {
	lines := strings.Split(text, "\n")

	var files []File
	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(lines[i], "diff --git ") {
			i++
			continue
		}

		file, next, err := parseFileSegment(lines, i)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
		i = next
	}

	return files, nil
}

// parseFileSegment parses one per-file segment starting at the
// "diff --git" line. Returns the file and the index of the next segment.
func parseFileSegment(lines []string, start int) (File, int, error) {
	file := File{Status: StatusModified}

	// "diff --git a/old b/new" - take the b/ side; rename metadata below
	// overrides it when present.
	if pos := strings.LastIndex(lines[start], " b/"); pos != -1 {
		file.Path = lines[start][pos+3:]
	}

	i := start + 1
	binary := false
	for i < len(lines) && !strings.HasPrefix(lines[i], "diff --git ") {
		line := lines[i]

		switch {
		case binary:
			// Remainder of a binary segment carries no hunk content.

		case strings.HasPrefix(line, "new file mode"):
			file.Status = StatusAdded

		case strings.HasPrefix(line, "deleted file mode"):
			file.Status = StatusDeleted

		case strings.HasPrefix(line, "rename from "):
			file.OldPath = strings.TrimPrefix(line, "rename from ")
			file.Status = StatusRenamed

		case strings.HasPrefix(line, "rename to "):
			file.Path = strings.TrimPrefix(line, "rename to ")

		case strings.HasPrefix(line, "Binary files"):
			binary = true

		case strings.HasPrefix(line, "@@"):
			hunk, next, err := parseHunk(lines, i, file.Path)
			if err != nil {
				return File{}, 0, err
			}
			file.Hunks = append(file.Hunks, hunk)
			i = next
			continue
		}

		// Other metadata (index, mode, similarity, ---/+++ paths) is
		// already covered by the diff --git header.
		i++
	}

	return file, i, nil
}

// parseHunk parses a hunk header and its line block starting at index
// start. Returns the hunk and the index of the line after the block.
func parseHunk(lines []string, start int, path string) (Hunk, int, error) {
	header := lines[start]

	oldStart, oldCount, newStart, newCount, err := parseHunkHeader(header)
	if err != nil {
		return Hunk{}, 0, &ParseError{Path: path, Header: header, Msg: err.Error()}
	}

	hunk := Hunk{
		Header:   header,
		OldStart: oldStart,
		OldCount: oldCount,
		NewStart: newStart,
		NewCount: newCount,
	}

	var (
		oldNo, newNo     = oldStart, newStart
		oldUsed, newUsed int
	)

	i := start + 1
	for i < len(lines) {
		line := lines[i]

		if strings.HasPrefix(line, "diff --git ") || strings.HasPrefix(line, "@@") {
			break
		}

		// "\ No newline at end of file" markers and blank trailing lines
		// carry no image content and do not advance either counter.
		if line == "" || strings.HasPrefix(line, `\`) {
			i++
			continue
		}

		switch content := line[1:]; line[0] {
		case '+':
			if newUsed >= newCount {
				return Hunk{}, 0, &ParseError{Path: path, Header: header,
					Msg: fmt.Sprintf("post-image lines exceed declared count %d", newCount)}
			}
			hunk.Lines = append(hunk.Lines, Line{Content: content, Type: LineAddition, NewLineNo: newNo})
			newNo++
			newUsed++

		case '-':
			if oldUsed >= oldCount {
				return Hunk{}, 0, &ParseError{Path: path, Header: header,
					Msg: fmt.Sprintf("pre-image lines exceed declared count %d", oldCount)}
			}
			hunk.Lines = append(hunk.Lines, Line{Content: content, Type: LineDeletion, OldLineNo: oldNo})
			oldNo++
			oldUsed++

		default:
			// Anything else, including a bare leading space, is context
			// and consumes a line from both images.
			if oldUsed >= oldCount || newUsed >= newCount {
				return Hunk{}, 0, &ParseError{Path: path, Header: header,
					Msg: fmt.Sprintf("context lines exceed declared counts %d/%d", oldCount, newCount)}
			}
			hunk.Lines = append(hunk.Lines, Line{Content: content, Type: LineContext, OldLineNo: oldNo, NewLineNo: newNo})
			oldNo++
			newNo++
			oldUsed++
			newUsed++
		}

		i++
	}

	if oldUsed != oldCount || newUsed != newCount {
		return Hunk{}, 0, &ParseError{Path: path, Header: header,
			Msg: fmt.Sprintf("declared -%d,%d +%d,%d but walked %d pre-image and %d post-image lines",
				oldStart, oldCount, newStart, newCount, oldUsed, newUsed)}
	}

	return hunk, i, nil
}

// parseHunkHeader parses "@@ -<oldStart>[,<oldCount>] +<newStart>[,<newCount>] @@".
// A missing count defaults to 1. Text after the closing @@ is ignored.
func parseHunkHeader(line string) (oldStart, oldCount, newStart, newCount int, err error) {
	rest, ok := strings.CutPrefix(line, "@@ ")
	if !ok {
		return 0, 0, 0, 0, fmt.Errorf("missing \"@@ \" prefix")
	}

	end := strings.Index(rest, " @@")
	if end == -1 {
		return 0, 0, 0, 0, fmt.Errorf("missing closing \"@@\"")
	}

	ranges := strings.Fields(rest[:end])
	if len(ranges) != 2 {
		return 0, 0, 0, 0, fmt.Errorf("expected two ranges, got %d", len(ranges))
	}

	oldRange, ok := strings.CutPrefix(ranges[0], "-")
	if !ok {
		return 0, 0, 0, 0, fmt.Errorf("old range missing '-' prefix")
	}
	newRange, ok := strings.CutPrefix(ranges[1], "+")
	if !ok {
		return 0, 0, 0, 0, fmt.Errorf("new range missing '+' prefix")
	}

	oldStart, oldCount, err = parseRange(oldRange)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("old range: %w", err)
	}
	newStart, newCount, err = parseRange(newRange)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("new range: %w", err)
	}

	return oldStart, oldCount, newStart, newCount, nil
}

// parseRange parses "<start>[,<count>]"; a missing count means 1.
func parseRange(s string) (start, count int, err error) {
	startStr, countStr, hasCount := strings.Cut(s, ",")

	start, err = strconv.Atoi(startStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start %q", startStr)
	}

	if !hasCount {
		return start, 1, nil
	}

	count, err = strconv.Atoi(countStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid count %q", countStr)
	}

	return start, count, nil
}
