// Package cst provides the concrete syntax tree representation for beylint.
// It defines a lossless, immutable view of a C# file:
//   - FileSnapshot: content, line table, token stream, construct tree
//   - Token stream: every byte accounted for as token text or trivia
//   - Nodes: brace-owning constructs referencing token indices
package cst

// FileSnapshot is an immutable, lossless view of a C# file at parse time.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Tokens is the full token stream, terminated by a KindEOF token.
	Tokens []Token

	// Root is the construct tree root (NodeFile).
	Root *Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a FileSnapshot with the line index built.
// Tokens and Root are populated by a parser.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// BuildLines constructs line metadata from file content.
// It handles both LF and CRLF line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	if lineStart <= len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// LineContent returns the bytes of a 1-based line excluding the newline.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}

	lineInfo := f.Lines[line-1]
	return f.Content[lineInfo.StartOffset:lineInfo.NewlineStart]
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// EOF returns the index of the end-of-file token.
func (f *FileSnapshot) EOF() int {
	return len(f.Tokens) - 1
}

// IsEOF reports whether the token index refers to the end-of-file token.
func (f *FileSnapshot) IsEOF(idx int) bool {
	return idx < 0 || idx >= len(f.Tokens) || f.Tokens[idx].Kind == KindEOF
}
