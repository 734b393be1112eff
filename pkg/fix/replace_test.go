package fix_test

import (
	"testing"

	"github.com/beylint/beylint/pkg/cst"
	"github.com/beylint/beylint/pkg/fix"
)

// braceSnapshot hand-builds a snapshot for "void M() {\n}\n" with the open
// brace cuddled onto the signature line.
func braceSnapshot() *cst.FileSnapshot {
	content := []byte("void M() {\n}\n")
	f := cst.NewFileSnapshot("test.cs", content)
	f.Tokens = []cst.Token{
		{Kind: cst.KindKeyword, Text: "void", Start: 0, End: 4, FullStart: 0, FullEnd: 5,
			Trailing: cst.TriviaList{cst.Whitespace(" ")}},
		{Kind: cst.KindIdent, Text: "M", Start: 5, End: 6, FullStart: 5, FullEnd: 6},
		{Kind: cst.KindOpenParen, Text: "(", Start: 6, End: 7, FullStart: 6, FullEnd: 7},
		{Kind: cst.KindCloseParen, Text: ")", Start: 7, End: 8, FullStart: 7, FullEnd: 9,
			Trailing: cst.TriviaList{cst.Whitespace(" ")}},
		{Kind: cst.KindOpenBrace, Text: "{", Start: 9, End: 10, FullStart: 9, FullEnd: 11,
			Trailing: cst.TriviaList{cst.Newline("\n")}},
		{Kind: cst.KindCloseBrace, Text: "}", Start: 11, End: 12, FullStart: 11, FullEnd: 13,
			Trailing: cst.TriviaList{cst.Newline("\n")}},
		{Kind: cst.KindIdent, Text: "", Start: 13, End: 13, FullStart: 13, FullEnd: 13, Missing: true},
		{Kind: cst.KindEOF, Start: 13, End: 13, FullStart: 13, FullEnd: 13},
	}
	return f
}

func TestReplacementMap_GetFallsBackToTokenTrivia(t *testing.T) {
	t.Parallel()

	m := fix.NewReplacementMap(braceSnapshot())

	r := m.Get(4) // open brace
	if r.Leading.Render() != "" || r.Trailing.Render() != "\n" {
		t.Errorf("Get fallback = %q / %q", r.Leading.Render(), r.Trailing.Render())
	}
	if m.Has(4) {
		t.Error("Get must not record a replacement")
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func TestReplacementMap_MergeKeepsFirstLeading(t *testing.T) {
	t.Parallel()

	m := fix.NewReplacementMap(braceSnapshot())

	m.Set(4, fix.Replacement{
		Leading:  cst.TriviaList{cst.Whitespace("    ")},
		Trailing: cst.TriviaList{cst.Newline("\n")},
	})
	m.Set(4, fix.Replacement{
		Leading:  cst.TriviaList{cst.Whitespace("\t\t")},
		Trailing: cst.TriviaList{cst.Whitespace(" ")},
	})

	r := m.Get(4)
	if r.Leading.Render() != "    " {
		t.Errorf("leading = %q, want first replacement's", r.Leading.Render())
	}
	if r.Trailing.Render() != " " {
		t.Errorf("trailing = %q, want second replacement's", r.Trailing.Render())
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestReplacementMap_IgnoresMissingAndOutOfRange(t *testing.T) {
	t.Parallel()

	m := fix.NewReplacementMap(braceSnapshot())

	m.Set(6, fix.Replacement{Trailing: cst.TriviaList{cst.Newline("\n")}}) // missing token
	m.Set(-1, fix.Replacement{})
	m.Set(99, fix.Replacement{})

	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func TestReplacementMap_SetLeadingAndTrailing(t *testing.T) {
	t.Parallel()

	m := fix.NewReplacementMap(braceSnapshot())

	m.SetLeading(4, cst.TriviaList{cst.Whitespace("  ")})
	r := m.Get(4)
	if r.Leading.Render() != "  " || r.Trailing.Render() != "\n" {
		t.Errorf("after SetLeading: %q / %q", r.Leading.Render(), r.Trailing.Render())
	}

	m.SetTrailing(3, cst.TriviaList{cst.Newline("\n")})
	r = m.Get(3)
	if r.Trailing.Render() != "\n" {
		t.Errorf("after SetTrailing: %q", r.Trailing.Render())
	}
}

func TestReplacementMap_EditsRenderFullSpans(t *testing.T) {
	t.Parallel()

	f := braceSnapshot()
	m := fix.NewReplacementMap(f)

	// Move the brace onto its own line: ")" drops its trailing space and
	// gains a line break, the brace keeps its trailing break.
	m.Set(3, fix.Replacement{Trailing: cst.TriviaList{cst.Newline("\n")}})
	m.Set(4, fix.Replacement{Trailing: cst.TriviaList{cst.Newline("\n")}})

	indices := m.TokenIndices()
	if len(indices) != 2 || indices[0] != 3 || indices[1] != 4 {
		t.Fatalf("TokenIndices = %v", indices)
	}

	edit := m.EditFor(3)
	want := fix.TextEdit{StartOffset: 7, EndOffset: 9, NewText: ")\n"}
	if edit != want {
		t.Errorf("EditFor(3) = %+v, want %+v", edit, want)
	}

	edits := m.Edits()
	fixed := fix.ApplyEdits(f.Content, edits)
	if string(fixed) != "void M()\n{\n}\n" {
		t.Errorf("fixed = %q", fixed)
	}
}
