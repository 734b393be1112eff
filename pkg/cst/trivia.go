package cst

import "strings"

// TriviaKind classifies a single piece of trivia attached to a token.
type TriviaKind uint8

// Trivia kinds cover every non-token byte in the source.
const (
	TriviaWhitespace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDirective // preprocessor line, e.g. "#pragma warning disable BEY0002"
)

// TriviaPiece is one contiguous run of non-token source text.
type TriviaPiece struct {
	Kind TriviaKind
	Text string
}

// IsComment returns true for line and block comments.
func (p TriviaPiece) IsComment() bool {
	return p.Kind == TriviaLineComment || p.Kind == TriviaBlockComment
}

// TriviaList is an ordered sequence of trivia pieces.
type TriviaList []TriviaPiece

// Render concatenates the trivia back into source text.
func (l TriviaList) Render() string {
	if len(l) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range l {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Len returns the rendered byte length of the trivia.
func (l TriviaList) Len() int {
	n := 0
	for _, p := range l {
		n += len(p.Text)
	}
	return n
}

// HasNewline returns true if any piece is a line break.
// Directives always occupy a full line and count as breaks.
func (l TriviaList) HasNewline() bool {
	for _, p := range l {
		if p.Kind == TriviaNewline || p.Kind == TriviaDirective {
			return true
		}
	}
	return false
}

// Comments returns only the comment pieces, in order.
func (l TriviaList) Comments() TriviaList {
	var out TriviaList
	for _, p := range l {
		if p.IsComment() {
			out = append(out, p)
		}
	}
	return out
}

// WithoutComments returns the trivia with comment pieces removed.
func (l TriviaList) WithoutComments() TriviaList {
	var out TriviaList
	for _, p := range l {
		if !p.IsComment() {
			out = append(out, p)
		}
	}
	return out
}

// IndentAfterLastNewline returns the whitespace text that follows the last
// line break in the trivia. For leading trivia this is the indentation of the
// owning token's line. Empty if the trivia contains no line break.
func (l TriviaList) IndentAfterLastNewline() (string, bool) {
	last := -1
	for i, p := range l {
		if p.Kind == TriviaNewline || p.Kind == TriviaDirective {
			last = i
		}
	}
	if last < 0 {
		return "", false
	}
	var sb strings.Builder
	for _, p := range l[last+1:] {
		if p.Kind == TriviaWhitespace {
			sb.WriteString(p.Text)
		}
	}
	return sb.String(), true
}

// Whitespace builds a whitespace trivia piece.
func Whitespace(text string) TriviaPiece {
	return TriviaPiece{Kind: TriviaWhitespace, Text: text}
}

// Newline builds a line-break trivia piece.
func Newline(text string) TriviaPiece {
	return TriviaPiece{Kind: TriviaNewline, Text: text}
}
