package rules

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/beylint/beylint/pkg/config"
	"github.com/beylint/beylint/pkg/cst"
	"github.com/beylint/beylint/pkg/fix"
	"github.com/beylint/beylint/pkg/lint"
)

const bracePlacementMessage = "Braces for multi-line statements must not share line"

// BracePlacementRule checks that braces owning a multi-line construct are
// placed on their own line.
type BracePlacementRule struct {
	lint.BaseRule
}

// NewBracePlacementRule creates a new brace placement rule.
func NewBracePlacementRule() *BracePlacementRule {
	return &BracePlacementRule{
		BaseRule: lint.NewBaseRule(
			"BEY0002",
			"braces-own-line",
			"Braces owning a multi-line construct must be placed on their own line",
			[]string{"layout", "braces"},
			true,
		),
	}
}

// verdict is the classifier's decision for one brace pair.
type verdict uint8

const (
	// verdictNone means the pair is exempt and produces no findings.
	verdictNone verdict = iota

	// verdictOpenOnly means only the open brace is checked. Used for
	// single-line constructs whose close brace placement belongs to a
	// different rule.
	verdictOpenOnly

	// verdictBoth means both braces are checked for line sharing.
	verdictBoth
)

// braceSite is one brace token selected for checking, with its owning node.
type braceSite struct {
	node     *cst.Node
	tokenIdx int
}

// Apply walks the construct tree, classifies each brace pair, and emits one
// diagnostic per violating brace token with a batch-consistent fix attached.
func (r *BracePlacementRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil || ctx.Root == nil {
		return nil, nil
	}

	f := ctx.File
	settings := ctx.Settings()
	settings.AllowDoWhileOnClosingBrace = ctx.OptionBool(
		"allow-do-while-on-closing-brace", settings.AllowDoWhileOnClosingBrace)

	var sites []braceSite
	seen := make(map[int]bool)
	cancelled := false

	addSite := func(n *cst.Node, tokenIdx int) {
		if seen[tokenIdx] {
			return
		}
		seen[tokenIdx] = true
		sites = append(sites, braceSite{node: n, tokenIdx: tokenIdx})
	}

	cst.Walk(ctx.Root, func(n *cst.Node) bool {
		if ctx.Cancelled() {
			cancelled = true
			return false
		}
		if n.Kind == cst.NodeFile {
			return true
		}
		if !n.HasBraces() {
			return true
		}

		switch classifyPair(f, n) {
		case verdictBoth:
			if braceViolates(f, n, n.Open, settings) {
				addSite(n, n.Open)
			}
			if braceViolates(f, n, n.Close, settings) {
				addSite(n, n.Close)
			}
		case verdictOpenOnly:
			if braceViolates(f, n, n.Open, settings) {
				addSite(n, n.Open)
			}
		}
		return true
	})

	if cancelled {
		return nil, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
	}
	if len(sites) == 0 {
		return nil, nil
	}

	// Fixes for all findings in a file are computed against one shared
	// replacement map so that fixes touching the same token merge instead
	// of conflicting. Processing in document order keeps the merge
	// deterministic.
	slices.SortFunc(sites, func(a, b braceSite) int {
		return cmp.Compare(a.tokenIdx, b.tokenIdx)
	})
	rm := fix.NewReplacementMap(f)
	claimed := make(map[int]int)
	for i, s := range sites {
		for _, tok := range rewriteBrace(rm, f, s.node, s.tokenIdx, settings) {
			if _, ok := claimed[tok]; !ok {
				claimed[tok] = i
			}
		}
	}

	editsBySite := make([][]fix.TextEdit, len(sites))
	for _, tok := range rm.TokenIndices() {
		i := claimed[tok]
		editsBySite[i] = append(editsBySite[i], rm.EditFor(tok))
	}

	diags := make([]lint.Diagnostic, 0, len(sites))
	for i, s := range sites {
		b := lint.NewDiagnosticAtToken(r.ID(), f, s.tokenIdx, bracePlacementMessage).
			WithSuggestion("Place the brace on its own line")
		for _, e := range editsBySite[i] {
			b = b.WithEdit(e)
		}
		diags = append(diags, b.Build())
	}
	return diags, nil
}

// classifyPair decides how a brace pair is checked. Pairs spanning multiple
// lines are always checked on both sides. Single-line pairs are exempt
// unless a kind-specific rule downgrades them to an open-brace-only check.
func classifyPair(f *cst.FileSnapshot, n *cst.Node) verdict {
	if !f.SameLine(n.Open, n.Close) {
		return verdictBoth
	}

	switch {
	case n.Kind.IsInitializer():
		// A genuinely single-line initializer is allowed when its owner
		// (new, stackalloc, the '=' of an assignment) shares the line.
		if n.Anchor >= 0 && f.SameLine(n.Anchor, n.Open) {
			return verdictNone
		}
		// A nested initializer sharing a line only because a sibling
		// element precedes it still gets its open brace checked. Its
		// close brace is another rule's business.
		if prev := f.PrevToken(n.Open); prev >= 0 && f.SameLine(prev, n.Open) {
			return verdictOpenOnly
		}
		return verdictNone

	case n.Kind == cst.NodeAccessorBody:
		// Single-line accessor expressions are fine, but the open brace
		// is still checked when the accessor keyword sits on an earlier
		// line.
		if n.Anchor >= 0 && !f.SameLine(n.Anchor, n.Open) {
			return verdictOpenOnly
		}
		return verdictNone

	default:
		// Same-line placement of other constructs is governed by
		// dedicated single-line rules, not this one.
		return verdictNone
	}
}

// braceViolates reports whether the brace token shares a line with an
// adjacent token in a way this rule flags. The preceding-token check wins;
// the following-token check only runs when the preceding side is clean.
func braceViolates(f *cst.FileSnapshot, n *cst.Node, braceIdx int, s config.Settings) bool {
	if f.Tokens[braceIdx].Missing {
		return false
	}
	if prev := f.PrevToken(braceIdx); prev >= 0 && f.SameLine(prev, braceIdx) {
		return true
	}
	next := f.NextToken(braceIdx)
	if next >= 0 && f.SameLine(braceIdx, next) && !followingTokenExempt(f, n, braceIdx, next, s) {
		return true
	}
	return false
}

// followingTokenExempt reports whether the token after a brace is allowed to
// share the brace's line.
func followingTokenExempt(f *cst.FileSnapshot, n *cst.Node, braceIdx, next int, s config.Settings) bool {
	// A close brace directly followed by ')', ',', ';', '.' or the end of
	// input is syntactically bound to the line; isolating it is pointless.
	switch f.Tokens[next].Kind {
	case cst.KindCloseParen, cst.KindComma, cst.KindSemicolon, cst.KindDot, cst.KindEOF:
		return true
	}

	if braceIdx != n.Close {
		return false
	}

	// "} while (cond);" of a do loop, when the configuration allows it.
	if s.AllowDoWhileOnClosingBrace &&
		n.Kind == cst.NodeBlock &&
		n.Anchor >= 0 && f.Tokens[n.Anchor].IsKeyword("do") &&
		f.Tokens[next].IsKeyword("while") {
		return true
	}

	// The close brace of an initializer nested directly inside another
	// initializer may share its line with the enclosing row, as in the
	// inner rows of a multi-dimensional array initializer.
	if n.Kind.IsInitializer() && n.Parent != nil && n.Parent.Kind.IsInitializer() {
		return true
	}

	return false
}
