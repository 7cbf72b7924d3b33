package tree

import (
	"bytes"
	"sort"
)

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline, this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// BuildLines constructs line metadata from file content.
// It handles both LF and CRLF line endings. A trailing newline does not
// produce an empty final line.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	start := 0

	for start < len(content) {
		rel := bytes.IndexByte(content[start:], '\n')
		if rel < 0 {
			lines = append(lines, LineInfo{
				StartOffset:  start,
				NewlineStart: len(content),
				EndOffset:    len(content),
			})
			break
		}

		nlStart := start + rel
		if nlStart > start && content[nlStart-1] == '\r' {
			nlStart--
		}

		lines = append(lines, LineInfo{
			StartOffset:  start,
			NewlineStart: nlStart,
			EndOffset:    start + rel + 1,
		})
		start = start + rel + 1
	}

	return lines
}

// LineCount returns the number of lines in the snapshot.
func (s *Snapshot) LineCount() int {
	return len(s.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes. Returns (0, 0) if the offset is negative
// or the snapshot is empty.
func (s *Snapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(s.Lines) == 0 {
		return 0, 0
	}

	// Offsets at or past end of content map into the last line.
	if offset >= len(s.Content) {
		last := s.Lines[len(s.Lines)-1]
		return len(s.Lines), offset - last.StartOffset + 1
	}

	idx := sort.Search(len(s.Lines), func(i int) bool {
		return s.Lines[i].EndOffset > offset
	})
	if idx >= len(s.Lines) {
		idx = len(s.Lines) - 1
	}

	info := s.Lines[idx]
	if offset < info.StartOffset {
		return 0, 0
	}

	return idx + 1, offset - info.StartOffset + 1
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
// The column may point one past the end of the line for cursor positioning.
func (s *Snapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(s.Lines) || col < 1 {
		return 0, false
	}

	info := s.Lines[line-1]
	offset := info.StartOffset + col - 1
	if offset > info.EndOffset {
		return 0, false
	}

	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the
// newline. Returns nil if the line number is out of range.
func (s *Snapshot) LineContent(line int) []byte {
	if line < 1 || line > len(s.Lines) {
		return nil
	}

	info := s.Lines[line-1]
	return s.Content[info.StartOffset:info.NewlineStart]
}
