package rules

import (
	"github.com/beylint/beylint/pkg/config"
	"github.com/beylint/beylint/pkg/cst"
	"github.com/beylint/beylint/pkg/fix"
)

// rewriteBrace computes the replacements that move one violating brace onto
// its own line, recording them in the shared map. It returns the indices of
// every token whose trivia the rewrite touched, in the order touched.
//
// The required indentation of a close brace is always derived from the line
// of its matching open brace, never from the close brace's own position.
func rewriteBrace(
	rm *fix.ReplacementMap,
	f *cst.FileSnapshot,
	n *cst.Node,
	braceIdx int,
	s config.Settings,
) []int {
	if f.Tokens[braceIdx].Missing {
		return nil
	}

	// A single-line accessor body stays compact: the keyword keeps the
	// brace on its line, separated by a single space.
	if braceIdx == n.Open && n.Kind == cst.NodeAccessorBody && f.SameLine(n.Open, n.Close) {
		if prev := f.PrevToken(braceIdx); prev >= 0 && f.Tokens[prev].IsAccessorKeyword() {
			return compactAccessor(rm, braceIdx, prev, n.Close)
		}
	}

	nl := newlineText(f)
	steps := indentSteps(f, n.Open, s)
	var touched []int

	// Preceding token on the brace's line: break the line before the brace
	// and indent the brace to its construct's level.
	if prev := f.PrevToken(braceIdx); prev >= 0 && f.SameLine(prev, braceIdx) {
		prevR := rm.Get(prev)
		braceR := rm.Get(braceIdx)

		newPrevTrailing := trimTrailingSpace(prevR.Trailing)
		newBraceTrailing := braceR.Trailing

		// When the brace ended its line, comments that trailed it stay
		// on the original line; only the line break follows the brace.
		if braceR.Trailing.HasNewline() {
			for _, c := range braceR.Trailing.Comments() {
				newPrevTrailing = append(newPrevTrailing, cst.Whitespace(" "), c)
			}
			newBraceTrailing = cst.TriviaList{cst.Newline(lastLineBreak(braceR.Trailing, nl))}
		}

		rm.Set(prev, fix.Replacement{
			Leading:  prevR.Leading,
			Trailing: ensureLineBreak(newPrevTrailing, nl),
		})
		rm.Set(braceIdx, fix.Replacement{
			Leading:  indentTrivia(s, steps),
			Trailing: newBraceTrailing,
		})
		touched = append(touched, prev, braceIdx)
	}

	// Following token on the brace's line: break the line after the brace
	// and re-indent the follower relative to the brace.
	next := f.NextToken(braceIdx)
	if next >= 0 && f.SameLine(braceIdx, next) && !followingTokenExempt(f, n, braceIdx, next, s) {
		braceR := rm.Get(braceIdx)
		nextR := rm.Get(next)

		// Comments between the brace and the next token travel with the
		// next token to its new line.
		comments := braceR.Trailing.Comments()
		newBraceTrailing := ensureLineBreak(trimTrailingSpace(braceR.Trailing.WithoutComments()), nl)

		nextSteps := steps
		if braceIdx == n.Open {
			nextSteps = steps + 1
		} else if f.Tokens[next].Kind == cst.KindCloseBrace {
			nextSteps = max(steps-1, 0)
		}
		newNextLeading := indentTrivia(s, nextSteps)
		for _, c := range comments {
			newNextLeading = append(newNextLeading, c, cst.Whitespace(" "))
		}

		rm.Set(braceIdx, fix.Replacement{
			Leading:  braceR.Leading,
			Trailing: newBraceTrailing,
		})
		rm.Set(next, fix.Replacement{
			Leading:  newNextLeading,
			Trailing: nextR.Trailing,
		})
		touched = append(touched, braceIdx, next)
	}

	return touched
}

// compactAccessor rewrites "get\n{ ... }" into "get { ... }" by collapsing
// the whitespace between the accessor keyword and its open brace. Comments
// are kept: block comments stay inline between the keyword and the brace,
// line comments move behind the close brace so they cannot swallow the body.
func compactAccessor(rm *fix.ReplacementMap, braceIdx, keywordIdx, closeIdx int) []int {
	var lead cst.TriviaList
	var after cst.TriviaList
	for _, c := range rm.Get(keywordIdx).Trailing.Comments() {
		if c.Kind == cst.TriviaBlockComment {
			lead = append(lead, c, cst.Whitespace(" "))
		} else {
			after = append(after, cst.Whitespace(" "), c)
		}
	}
	rm.SetTrailing(keywordIdx, cst.TriviaList{cst.Whitespace(" ")})

	for _, c := range rm.Get(braceIdx).Leading.Comments() {
		lead = append(lead, c, cst.Whitespace(" "))
	}
	rm.SetLeading(braceIdx, lead)

	touched := []int{keywordIdx, braceIdx}
	if len(after) > 0 {
		rm.SetTrailing(closeIdx, append(after, rm.Get(closeIdx).Trailing...))
		touched = append(touched, closeIdx)
	}
	return touched
}

// trimTrailingSpace returns a copy of the trivia with trailing whitespace
// pieces removed.
func trimTrailingSpace(l cst.TriviaList) cst.TriviaList {
	end := len(l)
	for end > 0 && l[end-1].Kind == cst.TriviaWhitespace {
		end--
	}
	out := make(cst.TriviaList, end)
	copy(out, l[:end])
	return out
}

// ensureLineBreak appends a line break unless the trivia already ends with
// one. Repeated rewrites of the same token stay single-break.
func ensureLineBreak(l cst.TriviaList, nl string) cst.TriviaList {
	if len(l) > 0 {
		switch l[len(l)-1].Kind {
		case cst.TriviaNewline, cst.TriviaDirective:
			return l
		}
	}
	return append(l, cst.Newline(nl))
}

// lastLineBreak returns the text of the last line-break piece, or fallback.
func lastLineBreak(l cst.TriviaList, fallback string) string {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].Kind == cst.TriviaNewline {
			return l[i].Text
		}
	}
	return fallback
}

// newlineText returns the file's line-break text, detected from the first
// terminated line. Defaults to "\n" for single-line files.
func newlineText(f *cst.FileSnapshot) string {
	for _, ln := range f.Lines {
		if ln.EndOffset > ln.NewlineStart {
			return string(f.Content[ln.NewlineStart:ln.EndOffset])
		}
	}
	return "\n"
}
