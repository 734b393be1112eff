package cst

// NodeKind classifies a construct in the C# syntax tree. The tree only
// models brace-owning constructs; everything between braces that does not
// itself own braces stays in the flat token stream.
type NodeKind uint8

const (
	// NodeFile is the synthetic root covering the whole compilation unit.
	NodeFile NodeKind = iota

	// NodeBlock is a statement block: method/loop/if/try bodies, bare blocks.
	NodeBlock

	// NodeNamespaceBody is a block-scoped namespace body.
	NodeNamespaceBody

	// NodeTypeBody is a class/struct/interface/enum/record body.
	NodeTypeBody

	// NodeAccessorList is the brace pair that groups property/event accessors.
	NodeAccessorList

	// NodeAccessorBody is a get/set/init/add/remove body.
	NodeAccessorBody

	// NodeSwitchBody is the body of a switch statement or switch expression.
	NodeSwitchBody

	// NodeObjectInitializer is an object or collection initializer after new.
	NodeObjectInitializer

	// NodeArrayInitializer is an array or stackalloc initializer, including
	// the bare "= { ... }" form.
	NodeArrayInitializer

	// NodeAnonymousObject is a "new { ... }" anonymous object expression.
	NodeAnonymousObject
)

var nodeKindNames = map[NodeKind]string{
	NodeFile:              "File",
	NodeBlock:             "Block",
	NodeNamespaceBody:     "NamespaceBody",
	NodeTypeBody:          "TypeBody",
	NodeAccessorList:      "AccessorList",
	NodeAccessorBody:      "AccessorBody",
	NodeSwitchBody:        "SwitchBody",
	NodeObjectInitializer: "ObjectInitializer",
	NodeArrayInitializer:  "ArrayInitializer",
	NodeAnonymousObject:   "AnonymousObject",
}

func (k NodeKind) String() string {
	if s, ok := nodeKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// IsInitializer reports whether the kind is an initializer-family construct.
func (k NodeKind) IsInitializer() bool {
	switch k {
	case NodeObjectInitializer, NodeArrayInitializer, NodeAnonymousObject:
		return true
	default:
		return false
	}
}

// Node is one brace-owning construct. Token fields are indices into the
// owning FileSnapshot's token slice; -1 marks an absent token.
type Node struct {
	Kind NodeKind

	Parent   *Node
	Children []*Node

	// Open and Close are the '{' and '}' token indices. Either may be -1
	// when the source is malformed; such nodes are skipped by analysis.
	Open  int
	Close int

	// Anchor is the token that introduced the construct: the namespace or
	// type keyword, the accessor keyword, 'new', 'stackalloc', the '=' of
	// an array initializer, or the keyword owning a block ('if', 'do', a
	// method name, ...). -1 when nothing introduced it (bare block).
	Anchor int

	// File is a back-reference to the containing snapshot.
	File *FileSnapshot
}

// HasBraces reports whether both brace tokens are present and real.
func (n *Node) HasBraces() bool {
	if n.Open < 0 || n.Close < 0 || n.File == nil {
		return false
	}
	return !n.File.Tokens[n.Open].Missing && !n.File.Tokens[n.Close].Missing
}

// OpenToken returns the open brace token. Only valid when HasBraces.
func (n *Node) OpenToken() Token {
	return n.File.Tokens[n.Open]
}

// CloseToken returns the close brace token. Only valid when HasBraces.
func (n *Node) CloseToken() Token {
	return n.File.Tokens[n.Close]
}

// Walk visits n and all descendants in document order. The visitor returns
// false to skip a node's children.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, visit)
	}
}
