// Package csharp parses C# source into the full-fidelity CST used by the
// lint engine. The lexer attaches every non-token byte to a neighbouring
// token as trivia, so rendering the token stream reproduces the input
// exactly. The construct parser then classifies every brace pair.
//
// Parsing is tolerant: malformed input produces tokens and nodes with
// missing partners rather than errors.
package csharp

import (
	"github.com/beylint/beylint/pkg/cst"
)

// keywords is the set of C# keywords, including the contextual keywords the
// construct parser cares about (accessors, var, record, ...).
var keywords = map[string]bool{
	"abstract": true, "as": true, "base": true, "bool": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true, "checked": true,
	"class": true, "const": true, "continue": true, "decimal": true,
	"default": true, "delegate": true, "do": true, "double": true,
	"else": true, "enum": true, "event": true, "explicit": true,
	"extern": true, "false": true, "finally": true, "fixed": true,
	"float": true, "for": true, "foreach": true, "goto": true, "if": true,
	"implicit": true, "in": true, "int": true, "interface": true,
	"internal": true, "is": true, "lock": true, "long": true,
	"namespace": true, "new": true, "null": true, "object": true,
	"operator": true, "out": true, "override": true, "params": true,
	"private": true, "protected": true, "public": true, "readonly": true,
	"ref": true, "return": true, "sbyte": true, "sealed": true,
	"short": true, "sizeof": true, "stackalloc": true, "static": true,
	"string": true, "struct": true, "switch": true, "this": true,
	"throw": true, "true": true, "try": true, "typeof": true, "uint": true,
	"ulong": true, "unchecked": true, "unsafe": true, "ushort": true,
	"using": true, "virtual": true, "void": true, "volatile": true,
	"while": true,
	// Contextual keywords.
	"get": true, "set": true, "init": true, "add": true, "remove": true,
	"value": true, "var": true, "record": true, "partial": true,
	"when": true, "where": true, "yield": true, "async": true, "await": true,
	"with": true,
}

// multiCharOps lists multi-character operators longest-first so the lexer
// can match greedily.
var multiCharOps = []string{
	"<<=", ">>=", "??=", "...",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.",
	"++", "--", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"<<", ">>", "::", "->",
}

type lexer struct {
	src []byte
	pos int
}

// Lex tokenizes C# source. The returned stream always ends with a KindEOF
// token that carries any trailing trivia of the file.
func Lex(content []byte) []cst.Token {
	lx := &lexer{src: content}
	var tokens []cst.Token

	for {
		fullStart := lx.pos
		leading := lx.scanTrivia(true)

		if lx.pos >= len(lx.src) {
			tokens = append(tokens, cst.Token{
				Kind:      cst.KindEOF,
				Leading:   leading,
				Start:     lx.pos,
				End:       lx.pos,
				FullStart: fullStart,
				FullEnd:   lx.pos,
			})
			return tokens
		}

		tok := lx.scanToken()
		tok.Leading = leading
		tok.FullStart = fullStart
		tok.Trailing = lx.scanTrivia(false)
		tok.FullEnd = lx.pos
		tokens = append(tokens, tok)
	}
}

// scanTrivia consumes whitespace, comments, and preprocessor directives.
// In trailing mode it stops after consuming the first line break; everything
// past it belongs to the next token's leading trivia.
func (lx *lexer) scanTrivia(leading bool) cst.TriviaList {
	var out cst.TriviaList

	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]

		switch {
		case c == '\n' || (c == '\r' && lx.peek(1) == '\n'):
			start := lx.pos
			if c == '\r' {
				lx.pos += 2
			} else {
				lx.pos++
			}
			out = append(out, cst.TriviaPiece{Kind: cst.TriviaNewline, Text: string(lx.src[start:lx.pos])})
			if !leading {
				return out
			}

		case c == ' ' || c == '\t' || c == '\r':
			start := lx.pos
			for lx.pos < len(lx.src) {
				c := lx.src[lx.pos]
				if c != ' ' && c != '\t' {
					break
				}
				lx.pos++
			}
			if lx.pos == start {
				// Lone '\r' not followed by '\n'.
				lx.pos++
			}
			out = append(out, cst.TriviaPiece{Kind: cst.TriviaWhitespace, Text: string(lx.src[start:lx.pos])})

		case c == '/' && lx.peek(1) == '/':
			start := lx.pos
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				if lx.src[lx.pos] == '\r' && lx.peek(1) == '\n' {
					break
				}
				lx.pos++
			}
			out = append(out, cst.TriviaPiece{Kind: cst.TriviaLineComment, Text: string(lx.src[start:lx.pos])})

		case c == '/' && lx.peek(1) == '*':
			start := lx.pos
			lx.pos += 2
			for lx.pos < len(lx.src) {
				if lx.src[lx.pos] == '*' && lx.peek(1) == '/' {
					lx.pos += 2
					break
				}
				lx.pos++
			}
			text := string(lx.src[start:lx.pos])
			out = append(out, cst.TriviaPiece{Kind: cst.TriviaBlockComment, Text: text})
			// A block comment spanning lines ends the trailing run.
			if !leading && containsNewline(text) {
				return out
			}

		case c == '#' && leading && lx.atLineStart(out):
			start := lx.pos
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				if lx.src[lx.pos] == '\r' && lx.peek(1) == '\n' {
					break
				}
				lx.pos++
			}
			out = append(out, cst.TriviaPiece{Kind: cst.TriviaDirective, Text: string(lx.src[start:lx.pos])})

		default:
			return out
		}
	}

	return out
}

// atLineStart reports whether the current position begins a line, modulo
// horizontal whitespace already consumed into pending.
func (lx *lexer) atLineStart(pending cst.TriviaList) bool {
	for i := len(pending) - 1; i >= 0; i-- {
		switch pending[i].Kind {
		case cst.TriviaWhitespace:
			continue
		case cst.TriviaNewline, cst.TriviaDirective:
			return true
		default:
			return false
		}
	}
	// Start of trivia run: check the raw byte before it.
	off := lx.pos
	for _, p := range pending {
		off -= len(p.Text)
	}
	return off == 0 || lx.src[off-1] == '\n'
}

func (lx *lexer) scanToken() cst.Token {
	start := lx.pos
	c := lx.src[lx.pos]

	switch {
	case isIdentStart(c):
		// Interpolated/verbatim string prefixes.
		if (c == '@' || c == '$') && lx.isStringPrefix() {
			return lx.scanString(start)
		}
		lx.pos++
		for lx.pos < len(lx.src) && isIdentPart(lx.src[lx.pos]) {
			lx.pos++
		}
		text := string(lx.src[start:lx.pos])
		kind := cst.KindIdent
		if keywords[text] {
			kind = cst.KindKeyword
		}
		return lx.token(kind, start)

	case c >= '0' && c <= '9':
		return lx.scanNumber(start)

	case c == '"':
		return lx.scanString(start)

	case c == '\'':
		return lx.scanChar(start)

	case c == '.':
		if d := lx.peek(1); d >= '0' && d <= '9' {
			return lx.scanNumber(start)
		}
		lx.pos++
		return lx.token(cst.KindDot, start)
	}

	if kind, ok := singleCharKind(c); ok {
		lx.pos++
		return lx.token(kind, start)
	}

	for _, op := range multiCharOps {
		if lx.matches(op) {
			lx.pos += len(op)
			return lx.token(cst.KindOperator, start)
		}
	}

	lx.pos++
	switch c {
	case '=', '+', '-', '*', '/', '%', '<', '>', '!', '&', '|', '^', '~', '?':
		return lx.token(cst.KindOperator, start)
	}
	return lx.token(cst.KindOther, start)
}

func singleCharKind(c byte) (cst.TokenKind, bool) {
	switch c {
	case '{':
		return cst.KindOpenBrace, true
	case '}':
		return cst.KindCloseBrace, true
	case '(':
		return cst.KindOpenParen, true
	case ')':
		return cst.KindCloseParen, true
	case '[':
		return cst.KindOpenBracket, true
	case ']':
		return cst.KindCloseBracket, true
	case ';':
		return cst.KindSemicolon, true
	case ',':
		return cst.KindComma, true
	case ':':
		return cst.KindColon, true
	}
	return 0, false
}

// isStringPrefix reports whether the '@'/'$' run at the current position
// introduces a string literal ("@", "$", "@$", "$@" followed by a quote).
func (lx *lexer) isStringPrefix() bool {
	i := lx.pos
	for i < len(lx.src) && (lx.src[i] == '@' || lx.src[i] == '$') {
		i++
	}
	return i < len(lx.src) && lx.src[i] == '"' && i > lx.pos
}

// scanString consumes a string literal, including verbatim ("" escapes) and
// interpolated forms. Interpolation holes are consumed with brace balancing
// so the braces inside never reach the construct parser.
func (lx *lexer) scanString(start int) cst.Token {
	verbatim, interpolated := false, false
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '@':
			verbatim = true
			lx.pos++
			continue
		case '$':
			interpolated = true
			lx.pos++
			continue
		}
		break
	}

	if lx.pos < len(lx.src) && lx.src[lx.pos] == '"' {
		lx.pos++
		lx.scanStringBody(verbatim, interpolated)
	}
	return lx.token(cst.KindString, start)
}

func (lx *lexer) scanStringBody(verbatim, interpolated bool) {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '"':
			if verbatim && lx.peek(1) == '"' {
				lx.pos += 2
				continue
			}
			lx.pos++
			return
		case c == '\\' && !verbatim:
			lx.pos += 2
		case interpolated && c == '{':
			if lx.peek(1) == '{' {
				lx.pos += 2
				continue
			}
			lx.pos++
			lx.scanInterpolationHole()
		case interpolated && c == '}' && lx.peek(1) == '}':
			lx.pos += 2
		case c == '\n' && !verbatim:
			// Unterminated single-line string: stop at the line break.
			return
		default:
			lx.pos++
		}
	}
}

// scanInterpolationHole consumes a "{...}" interpolation, balancing nested
// braces and skipping nested string literals.
func (lx *lexer) scanInterpolationHole() {
	depth := 1
	for lx.pos < len(lx.src) && depth > 0 {
		switch lx.src[lx.pos] {
		case '{':
			depth++
			lx.pos++
		case '}':
			depth--
			lx.pos++
		case '"':
			lx.pos++
			lx.scanStringBody(false, false)
		case '\'':
			lx.scanCharBody()
		default:
			lx.pos++
		}
	}
}

func (lx *lexer) scanChar(start int) cst.Token {
	lx.scanCharBody()
	return lx.token(cst.KindChar, start)
}

func (lx *lexer) scanCharBody() {
	lx.pos++ // opening quote
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '\\':
			lx.pos += 2
		case '\'':
			lx.pos++
			return
		case '\n':
			return
		default:
			lx.pos++
		}
	}
}

func (lx *lexer) scanNumber(start int) cst.Token {
	if lx.src[lx.pos] == '0' && (lx.peek(1) == 'x' || lx.peek(1) == 'X' || lx.peek(1) == 'b' || lx.peek(1) == 'B') {
		lx.pos += 2
		for lx.pos < len(lx.src) && (isHexDigit(lx.src[lx.pos]) || lx.src[lx.pos] == '_') {
			lx.pos++
		}
	} else {
		seenDot := false
		for lx.pos < len(lx.src) {
			c := lx.src[lx.pos]
			switch {
			case c >= '0' && c <= '9' || c == '_':
				lx.pos++
			case c == '.' && !seenDot && lx.peek(1) >= '0' && lx.peek(1) <= '9':
				seenDot = true
				lx.pos++
			case c == 'e' || c == 'E':
				if d := lx.peek(1); d >= '0' && d <= '9' || d == '+' || d == '-' {
					lx.pos += 2
				} else {
					lx.pos++
				}
			default:
				goto suffix
			}
		}
	}

suffix:
	for lx.pos < len(lx.src) && isNumericSuffix(lx.src[lx.pos]) {
		lx.pos++
	}
	return lx.token(cst.KindNumber, start)
}

func (lx *lexer) token(kind cst.TokenKind, start int) cst.Token {
	return cst.Token{
		Kind:  kind,
		Text:  string(lx.src[start:lx.pos]),
		Start: start,
		End:   lx.pos,
	}
}

func (lx *lexer) peek(ahead int) byte {
	if lx.pos+ahead >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+ahead]
}

func (lx *lexer) matches(s string) bool {
	if lx.pos+len(s) > len(lx.src) {
		return false
	}
	return string(lx.src[lx.pos:lx.pos+len(s)]) == s
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '@' || c == '$' ||
		c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func isIdentPart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c >= 0x80
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isNumericSuffix(c byte) bool {
	switch c {
	case 'f', 'F', 'd', 'D', 'm', 'M', 'u', 'U', 'l', 'L':
		return true
	}
	return false
}

func containsNewline(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return true
		}
	}
	return false
}
