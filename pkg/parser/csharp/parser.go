package csharp

import (
	"context"

	"github.com/beylint/beylint/pkg/cst"
)

// Parser builds FileSnapshots from C# source.
type Parser struct{}

// New creates a C# parser.
func New() *Parser {
	return &Parser{}
}

// Parse tokenizes content and builds the brace-construct tree. It never
// fails on malformed source; unmatched braces yield nodes with a missing
// partner which the analysis skips.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*cst.FileSnapshot, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	snapshot := cst.NewFileSnapshot(path, content)
	snapshot.Tokens = Lex(content)
	snapshot.Root = buildTree(snapshot)
	return snapshot, nil
}

// buildTree classifies every brace pair into a construct node. Constructs
// are recognized at the open brace from the surrounding tokens; the tree
// nests by brace matching.
func buildTree(f *cst.FileSnapshot) *cst.Node {
	root := &cst.Node{Kind: cst.NodeFile, Open: -1, Close: -1, Anchor: -1, File: f}
	stack := []*cst.Node{root}

	for i := range f.Tokens {
		switch f.Tokens[i].Kind {
		case cst.KindOpenBrace:
			parent := stack[len(stack)-1]
			kind, anchor := classifyOpenBrace(f, i, parent)
			node := &cst.Node{
				Kind:   kind,
				Parent: parent,
				Open:   i,
				Close:  -1,
				Anchor: anchor,
				File:   f,
			}
			parent.Children = append(parent.Children, node)
			stack = append(stack, node)

		case cst.KindCloseBrace:
			if len(stack) > 1 {
				stack[len(stack)-1].Close = i
				stack = stack[:len(stack)-1]
			}
			// A stray close brace at file level is dropped: there is no
			// construct to attach it to.
		}
	}

	return root
}

// classifyOpenBrace decides which construct kind an open brace introduces
// and which token anchors it. It inspects the token immediately before the
// brace, then scans backward through the current statement (skipping
// matched paren/bracket groups) for a deciding keyword.
func classifyOpenBrace(f *cst.FileSnapshot, braceIdx int, parent *cst.Node) (cst.NodeKind, int) {
	prev := f.PrevToken(braceIdx)
	if prev < 0 {
		return cst.NodeBlock, -1
	}
	pt := f.Tokens[prev]

	// Accessor body: get/set/init/add/remove immediately before the brace.
	if pt.IsAccessorKeyword() {
		return cst.NodeAccessorBody, prev
	}

	// "new {" is an anonymous object expression.
	if pt.IsKeyword("new") {
		return cst.NodeAnonymousObject, prev
	}

	// Nested initializer element: "{ {" or ", {" directly inside an
	// initializer construct. Inherits the parent's kind so the multi-dim
	// array exemption can key off the nesting.
	if (pt.Kind == cst.KindOpenBrace || pt.Kind == cst.KindComma) && parent.Kind.IsInitializer() {
		return parent.Kind, -1
	}

	if kind, anchor, ok := scanBackward(f, prev); ok {
		return kind, anchor
	}

	// Accessor list: the brace groups accessor declarations.
	if isAccessorListBrace(f, braceIdx) {
		return cst.NodeAccessorList, prev
	}

	// Plain block; anchor the owning keyword when one is visible.
	return cst.NodeBlock, blockAnchor(f, prev)
}

// maxLookback bounds the backward statement scan. Statement headers are
// short; the bound only guards against degenerate input.
const maxLookback = 200

// scanBackward walks from idx toward the statement start looking for a
// deciding token. Matched ")"/"]" groups are skipped wholesale so that
// condition and argument lists cannot confuse the classification.
func scanBackward(f *cst.FileSnapshot, idx int) (cst.NodeKind, int, bool) {
	depth := 0
	for n := 0; idx >= 0 && n < maxLookback; n++ {
		t := f.Tokens[idx]

		switch t.Kind {
		case cst.KindCloseParen, cst.KindCloseBracket:
			depth++
		case cst.KindOpenParen, cst.KindOpenBracket:
			if depth == 0 {
				// Unbalanced open: we walked out of the statement.
				return 0, 0, false
			}
			depth--
		}

		if depth == 0 {
			switch {
			case t.Kind == cst.KindSemicolon || t.Kind == cst.KindOpenBrace || t.Kind == cst.KindCloseBrace:
				return 0, 0, false
			case t.Is(cst.KindOperator, "=>"):
				// Lambda or expression body: a plain block follows.
				return 0, 0, false
			case t.Is(cst.KindOperator, "="):
				return cst.NodeArrayInitializer, idx, true
			case t.IsKeyword("new"), t.IsKeyword("stackalloc"):
				return initializerKind(f, idx), idx, true
			case t.IsKeyword("with"):
				// "x with { ... }" behaves like an object initializer.
				return cst.NodeObjectInitializer, idx, true
			case t.IsKeyword("switch"):
				return cst.NodeSwitchBody, idx, true
			case t.IsKeyword("namespace"):
				return cst.NodeNamespaceBody, idx, true
			case t.IsKeyword("class"), t.IsKeyword("struct"), t.IsKeyword("interface"),
				t.IsKeyword("enum"), t.IsKeyword("record"):
				return cst.NodeTypeBody, idx, true
			}
		}

		idx--
	}
	return 0, 0, false
}

// initializerKind distinguishes "new T[...] { ... }" (array) from
// "new T { ... }" / "new T() { ... }" (object/collection) by looking for a
// bracket between the keyword and the brace.
func initializerKind(f *cst.FileSnapshot, newIdx int) cst.NodeKind {
	for i := newIdx + 1; i < len(f.Tokens); i++ {
		switch f.Tokens[i].Kind {
		case cst.KindOpenBracket:
			return cst.NodeArrayInitializer
		case cst.KindOpenBrace, cst.KindSemicolon, cst.KindEOF:
			return cst.NodeObjectInitializer
		}
	}
	return cst.NodeObjectInitializer
}

// accessorModifiers may appear between an accessor-list brace and the first
// accessor keyword.
var accessorModifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true,
}

// isAccessorListBrace reports whether the first declaration inside the
// brace is an accessor, which marks the brace as an accessor list.
func isAccessorListBrace(f *cst.FileSnapshot, braceIdx int) bool {
	i := f.NextToken(braceIdx)
	for i >= 0 && i < len(f.Tokens) {
		t := f.Tokens[i]
		switch {
		case t.IsAccessorKeyword():
			return true
		case t.Kind == cst.KindKeyword && accessorModifiers[t.Text]:
			i = f.NextToken(i)
		case t.Kind == cst.KindOpenBracket:
			// Attribute list on the accessor: skip to the matching bracket.
			depth := 1
			for i = f.NextToken(i); i >= 0 && depth > 0; i = f.NextToken(i) {
				switch f.Tokens[i].Kind {
				case cst.KindOpenBracket:
					depth++
				case cst.KindCloseBracket:
					depth--
				case cst.KindEOF:
					return false
				}
			}
		default:
			return false
		}
	}
	return false
}

// blockAnchor finds the keyword owning a plain block: the keyword before
// the condition parens, or the bare keyword directly before the brace.
func blockAnchor(f *cst.FileSnapshot, prev int) int {
	t := f.Tokens[prev]

	if t.Kind == cst.KindCloseParen {
		depth := 0
		for i := prev; i >= 0; i-- {
			switch f.Tokens[i].Kind {
			case cst.KindCloseParen:
				depth++
			case cst.KindOpenParen:
				depth--
				if depth == 0 {
					if k := f.PrevToken(i); k >= 0 && f.Tokens[k].Kind == cst.KindKeyword {
						return k
					}
					return -1
				}
			}
		}
		return -1
	}

	if t.Kind == cst.KindKeyword {
		switch t.Text {
		case "do", "else", "try", "finally", "unsafe", "checked", "unchecked":
			return prev
		}
	}
	return -1
}
