package cst

import "sort"

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes. Returns (0, 0) if the offset is negative
// or the file is empty.
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(f.Content) {
		lastLine := f.Lines[len(f.Lines)-1]
		return len(f.Lines), offset - lastLine.StartOffset + 1
	}

	lineIdx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(f.Lines) {
		lineIdx = len(f.Lines) - 1
	}

	info := f.Lines[lineIdx]
	if offset < info.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - info.StartOffset + 1
}

// LineOf returns the 1-based line on which the token's text starts.
// The EOF token reports the line of the file end. Returns 0 for invalid
// indices.
func (f *FileSnapshot) LineOf(tokenIdx int) int {
	if tokenIdx < 0 || tokenIdx >= len(f.Tokens) {
		return 0
	}
	line, _ := f.LineAt(f.Tokens[tokenIdx].Start)
	return line
}

// ColumnOf returns the 1-based column of the token's first byte.
func (f *FileSnapshot) ColumnOf(tokenIdx int) int {
	if tokenIdx < 0 || tokenIdx >= len(f.Tokens) {
		return 0
	}
	_, col := f.LineAt(f.Tokens[tokenIdx].Start)
	return col
}

// SameLine reports whether two tokens start on the same line.
func (f *FileSnapshot) SameLine(a, b int) bool {
	la := f.LineOf(a)
	return la != 0 && la == f.LineOf(b)
}

// FirstTokenOnLine returns the index of the first token whose text starts on
// the same line as the given token. Missing tokens are skipped: a missing
// token occupies no bytes and cannot begin a line.
func (f *FileSnapshot) FirstTokenOnLine(tokenIdx int) int {
	line := f.LineOf(tokenIdx)
	first := tokenIdx
	for i := tokenIdx - 1; i >= 0; i-- {
		if f.Tokens[i].Missing {
			continue
		}
		if f.LineOf(i) != line {
			break
		}
		first = i
	}
	return first
}

// PrevToken returns the index of the nearest non-missing token before idx,
// or -1 if none exists.
func (f *FileSnapshot) PrevToken(idx int) int {
	for i := idx - 1; i >= 0; i-- {
		if !f.Tokens[i].Missing {
			return i
		}
	}
	return -1
}

// NextToken returns the index of the nearest non-missing token after idx.
// The EOF token terminates the stream, so a valid index is always returned
// for in-range input; -1 otherwise.
func (f *FileSnapshot) NextToken(idx int) int {
	for i := idx + 1; i < len(f.Tokens); i++ {
		if !f.Tokens[i].Missing {
			return i
		}
	}
	return -1
}

// TokenPosition returns the token's source position as line/column ranges.
func (f *FileSnapshot) TokenPosition(tokenIdx int) SourcePosition {
	if tokenIdx < 0 || tokenIdx >= len(f.Tokens) {
		return SourcePosition{}
	}
	t := f.Tokens[tokenIdx]
	sl, sc := f.LineAt(t.Start)
	el, ec := f.LineAt(t.End)
	return SourcePosition{StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec}
}
