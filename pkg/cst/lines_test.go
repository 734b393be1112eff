package cst_test

import (
	"testing"

	"github.com/beylint/beylint/pkg/cst"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []cst.LineInfo
	}{
		{
			name:     "empty content",
			content:  "",
			expected: []cst.LineInfo{},
		},
		{
			name:    "single line no newline",
			content: "class C",
			expected: []cst.LineInfo{
				{StartOffset: 0, NewlineStart: 7, EndOffset: 7},
			},
		},
		{
			name:    "single line with LF",
			content: "class C\n",
			expected: []cst.LineInfo{
				{StartOffset: 0, NewlineStart: 7, EndOffset: 8},
				{StartOffset: 8, NewlineStart: 8, EndOffset: 8},
			},
		},
		{
			name:    "single line with CRLF",
			content: "class C\r\n",
			expected: []cst.LineInfo{
				{StartOffset: 0, NewlineStart: 7, EndOffset: 9},
				{StartOffset: 9, NewlineStart: 9, EndOffset: 9},
			},
		},
		{
			name:    "multiple lines LF",
			content: "a\nbb\nccc",
			expected: []cst.LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 2},
				{StartOffset: 2, NewlineStart: 4, EndOffset: 5},
				{StartOffset: 5, NewlineStart: 8, EndOffset: 8},
			},
		},
		{
			name:    "mixed line endings",
			content: "a\r\nb\nc",
			expected: []cst.LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 3},
				{StartOffset: 3, NewlineStart: 4, EndOffset: 5},
				{StartOffset: 5, NewlineStart: 6, EndOffset: 6},
			},
		},
		{
			name:    "blank lines",
			content: "\n\n",
			expected: []cst.LineInfo{
				{StartOffset: 0, NewlineStart: 0, EndOffset: 1},
				{StartOffset: 1, NewlineStart: 1, EndOffset: 2},
				{StartOffset: 2, NewlineStart: 2, EndOffset: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cst.BuildLines([]byte(tt.content))

			if len(got) != len(tt.expected) {
				t.Fatalf("line count = %d, want %d", len(got), len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("line %d = %+v, want %+v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestFileSnapshot_LineAt(t *testing.T) {
	t.Parallel()

	f := cst.NewFileSnapshot("test.cs", []byte("class C\n{\n}\n"))

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{6, 1, 7},
		{7, 1, 8},  // the newline itself
		{8, 2, 1},  // '{'
		{10, 3, 1}, // '}'
		{12, 4, 1}, // EOF offset
		{-1, 0, 0},
	}

	for _, tt := range tests {
		line, col := f.LineAt(tt.offset)
		if line != tt.wantLine || col != tt.wantCol {
			t.Errorf("LineAt(%d) = (%d, %d), want (%d, %d)",
				tt.offset, line, col, tt.wantLine, tt.wantCol)
		}
	}
}

func TestFileSnapshot_LineContent(t *testing.T) {
	t.Parallel()

	f := cst.NewFileSnapshot("test.cs", []byte("class C\r\n{\r\n}\r\n"))

	if got := string(f.LineContent(1)); got != "class C" {
		t.Errorf("line 1 = %q", got)
	}
	if got := string(f.LineContent(2)); got != "{" {
		t.Errorf("line 2 = %q", got)
	}
	if f.LineContent(0) != nil {
		t.Error("line 0 should be nil")
	}
	if f.LineContent(99) != nil {
		t.Error("out-of-range line should be nil")
	}
	if f.LineCount() != 4 {
		t.Errorf("LineCount = %d, want 4", f.LineCount())
	}
}

func TestFileSnapshot_TokenNavigation(t *testing.T) {
	t.Parallel()

	// Hand-built stream: "if (x) {" / "}" with a missing token inserted.
	content := []byte("if (x) {\n}\n")
	f := cst.NewFileSnapshot("test.cs", content)
	f.Tokens = []cst.Token{
		{Kind: cst.KindKeyword, Text: "if", Start: 0, End: 2},
		{Kind: cst.KindOpenParen, Text: "(", Start: 3, End: 4},
		{Kind: cst.KindIdent, Text: "x", Start: 4, End: 5},
		{Kind: cst.KindCloseParen, Text: ")", Start: 5, End: 6},
		{Kind: cst.KindIdent, Text: "", Start: 7, End: 7, Missing: true},
		{Kind: cst.KindOpenBrace, Text: "{", Start: 7, End: 8},
		{Kind: cst.KindCloseBrace, Text: "}", Start: 9, End: 10},
		{Kind: cst.KindEOF, Start: 11, End: 11},
	}

	if !f.SameLine(0, 5) {
		t.Error("if and { should share line 1")
	}
	if f.SameLine(5, 6) {
		t.Error("{ and } are on different lines")
	}

	if got := f.FirstTokenOnLine(5); got != 0 {
		t.Errorf("FirstTokenOnLine({) = %d, want 0", got)
	}
	if got := f.FirstTokenOnLine(6); got != 6 {
		t.Errorf("FirstTokenOnLine(}) = %d, want 6", got)
	}

	// PrevToken and NextToken skip the missing token.
	if got := f.PrevToken(5); got != 3 {
		t.Errorf("PrevToken({) = %d, want 3", got)
	}
	if got := f.NextToken(3); got != 5 {
		t.Errorf("NextToken()) = %d, want 5", got)
	}
	if got := f.PrevToken(0); got != -1 {
		t.Errorf("PrevToken(first) = %d, want -1", got)
	}

	pos := f.TokenPosition(6)
	want := cst.SourcePosition{StartLine: 2, StartColumn: 1, EndLine: 2, EndColumn: 2}
	if pos != want {
		t.Errorf("TokenPosition(}) = %+v, want %+v", pos, want)
	}

	if f.LineOf(-1) != 0 || f.ColumnOf(99) != 0 {
		t.Error("out-of-range token indices should report 0")
	}
}
