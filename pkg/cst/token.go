package cst

// TokenKind classifies the type of a token in the C# source.
type TokenKind uint8

// Token kinds. Keywords keep their text in Token.Text; the lexer does not
// distinguish contextual keywords from identifiers beyond KindKeyword.
const (
	KindEOF TokenKind = iota
	KindIdent
	KindKeyword
	KindNumber
	KindString
	KindChar

	KindOpenBrace    // '{'
	KindCloseBrace   // '}'
	KindOpenParen    // '('
	KindCloseParen   // ')'
	KindOpenBracket  // '['
	KindCloseBracket // ']'
	KindSemicolon    // ';'
	KindComma        // ','
	KindDot          // '.'
	KindColon        // ':'
	KindOperator     // every other operator/punctuator, including '='

	KindOther
)

// Token is an atomic lexical unit. The token text together with its leading
// and trailing trivia accounts for every byte between the previous token and
// the next one; rendering the full token stream reproduces the source.
//
// Tokens are immutable values. A fix never mutates a token in place; it
// produces a replacement carrying new trivia (see pkg/fix).
type Token struct {
	Kind TokenKind

	// Text is the literal token text. Fixes never change it.
	Text string

	// Leading is the trivia between the previous token and this one,
	// starting after the previous token's trailing trivia (i.e. at the
	// start of this token's first line).
	Leading TriviaList

	// Trailing is the trivia after the token up to and including the first
	// line break, or up to the next token on the same line.
	Trailing TriviaList

	// Start and End are byte offsets of Text within the file content.
	Start int
	End   int

	// FullStart and FullEnd are byte offsets including the trivia.
	FullStart int
	FullEnd   int

	// Missing marks a zero-width token synthesized for malformed input.
	// Missing tokens are never checked and never rewritten.
	Missing bool
}

// Is reports whether the token has the given kind and literal text.
func (t Token) Is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(text string) bool {
	return t.Kind == KindKeyword && t.Text == text
}

// Render returns leading trivia + text + trailing trivia.
func (t Token) Render() string {
	return t.Leading.Render() + t.Text + t.Trailing.Render()
}

// accessorKeywords are the keywords that introduce accessor bodies.
var accessorKeywords = map[string]bool{
	"get":    true,
	"set":    true,
	"init":   true,
	"add":    true,
	"remove": true,
}

// IsAccessorKeyword reports whether the token is get/set/init/add/remove.
func (t Token) IsAccessorKeyword() bool {
	return t.Kind == KindKeyword && accessorKeywords[t.Text]
}
