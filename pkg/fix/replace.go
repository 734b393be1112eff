package fix

import (
	"sort"

	"github.com/beylint/beylint/pkg/cst"
)

// Replacement is a new trivia assignment for one token. The token's kind and
// literal text are never changed by a replacement; only the surrounding
// whitespace and comment material moves.
type Replacement struct {
	Leading  cst.TriviaList
	Trailing cst.TriviaList
}

// ReplacementMap accumulates token replacements for one batch fix against a
// single snapshot. Each token appears at most once: a second replacement for
// the same token merges deterministically, keeping the first replacement's
// leading material and taking the new replacement's trailing material. This
// is what makes a batch fix converge when two findings touch the same token
// (e.g. an "else" between two braces being fixed on both sides).
type ReplacementMap struct {
	file *cst.FileSnapshot
	repl map[int]Replacement
}

// NewReplacementMap creates an empty replacement map for the snapshot.
func NewReplacementMap(file *cst.FileSnapshot) *ReplacementMap {
	return &ReplacementMap{
		file: file,
		repl: make(map[int]Replacement),
	}
}

// Len returns the number of tokens with a pending replacement.
func (m *ReplacementMap) Len() int {
	return len(m.repl)
}

// Has reports whether the token already has a pending replacement.
func (m *ReplacementMap) Has(tokenIdx int) bool {
	_, ok := m.repl[tokenIdx]
	return ok
}

// Get returns the pending replacement for a token. When none is pending it
// returns the token's current trivia, so callers can build on prior fixes.
func (m *ReplacementMap) Get(tokenIdx int) Replacement {
	if r, ok := m.repl[tokenIdx]; ok {
		return r
	}
	t := m.file.Tokens[tokenIdx]
	return Replacement{Leading: t.Leading, Trailing: t.Trailing}
}

// Set records a replacement for a token. Missing tokens are ignored: they
// occupy no bytes and rewriting them could corrupt the tree. A second Set
// for the same token merges per the first-leading/new-trailing rule.
func (m *ReplacementMap) Set(tokenIdx int, r Replacement) {
	if tokenIdx < 0 || tokenIdx >= len(m.file.Tokens) {
		return
	}
	if m.file.Tokens[tokenIdx].Missing {
		return
	}
	if prev, ok := m.repl[tokenIdx]; ok {
		prev.Trailing = r.Trailing
		m.repl[tokenIdx] = prev
		return
	}
	m.repl[tokenIdx] = r
}

// SetLeading records a replacement that changes only the leading trivia.
// If the token already has a pending replacement, the merge rule keeps the
// earlier leading material and this call leaves it unchanged.
func (m *ReplacementMap) SetLeading(tokenIdx int, leading cst.TriviaList) {
	r := m.Get(tokenIdx)
	m.Set(tokenIdx, Replacement{Leading: leading, Trailing: r.Trailing})
}

// SetTrailing records a replacement that changes only the trailing trivia.
func (m *ReplacementMap) SetTrailing(tokenIdx int, trailing cst.TriviaList) {
	r := m.Get(tokenIdx)
	m.Set(tokenIdx, Replacement{Leading: r.Leading, Trailing: trailing})
}

// TokenIndices returns the replaced token indices in ascending order.
func (m *ReplacementMap) TokenIndices() []int {
	out := make([]int, 0, len(m.repl))
	for idx := range m.repl {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// EditFor renders the replacement for one token as a byte-range edit
// covering the token's full span (trivia included) in the original content.
func (m *ReplacementMap) EditFor(tokenIdx int) TextEdit {
	t := m.file.Tokens[tokenIdx]
	r := m.repl[tokenIdx]
	return TextEdit{
		StartOffset: t.FullStart,
		EndOffset:   t.FullEnd,
		NewText:     r.Leading.Render() + t.Text + r.Trailing.Render(),
	}
}

// Edits renders the whole map as sorted, non-overlapping text edits. Token
// spans never overlap, so the result applies in a single atomic pass.
func (m *ReplacementMap) Edits() []TextEdit {
	indices := m.TokenIndices()
	edits := make([]TextEdit, 0, len(indices))
	for _, idx := range indices {
		edits = append(edits, m.EditFor(idx))
	}
	return edits
}
