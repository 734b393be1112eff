package rules

import (
	"strings"

	"github.com/beylint/beylint/pkg/config"
	"github.com/beylint/beylint/pkg/cst"
)

// indentText renders the given number of indentation steps as whitespace,
// using tabs or spaces per the settings.
func indentText(s config.Settings, steps int) string {
	if steps <= 0 {
		return ""
	}
	if s.UseTabs {
		return strings.Repeat("\t", steps)
	}
	return strings.Repeat(" ", steps*s.IndentationSize)
}

// indentTrivia renders indentation as a leading trivia list. Returns nil when
// the token sits at column one.
func indentTrivia(s config.Settings, steps int) cst.TriviaList {
	txt := indentText(s, steps)
	if txt == "" {
		return nil
	}
	return cst.TriviaList{cst.Whitespace(txt)}
}

// lineIndentWidth measures the display width of the leading whitespace on a
// 1-based line. Tabs advance to the next tab stop, so mixed tab/space
// indentation measures consistently even though this rule does not flag it.
func lineIndentWidth(f *cst.FileSnapshot, line int, tabSize int) int {
	if line < 1 || line > len(f.Lines) {
		return 0
	}
	info := f.Lines[line-1]

	width := 0
	for i := info.StartOffset; i < info.NewlineStart; i++ {
		switch f.Content[i] {
		case ' ':
			width++
		case '\t':
			width = (width/tabSize + 1) * tabSize
		default:
			return width
		}
	}
	return width
}

// indentSteps computes the indentation depth, in steps, of the line the
// token starts on. The line's leading whitespace width is measured from the
// raw content and converted to steps using the configured unit.
func indentSteps(f *cst.FileSnapshot, tokenIdx int, s config.Settings) int {
	line := f.LineOf(tokenIdx)
	if line == 0 || s.IndentationSize <= 0 {
		return 0
	}
	return lineIndentWidth(f, line, s.TabSize) / s.IndentationSize
}
