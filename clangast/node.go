// Package clangast runs clang over a header and decodes its JSON AST dump into a
// tree of Nodes.
package clangast

// Kind is the AST node kind exactly as clang spells it.
type Kind string

const (
	KindTranslationUnit  Kind = "TranslationUnitDecl"
	KindEnumDecl         Kind = "EnumDecl"
	KindEnumConstantDecl Kind = "EnumConstantDecl"
)

// Node is a read-only view of one clang AST node.
type Node struct {
	ID   string
	Kind Kind

	// Name is the declared identifier. It is empty for anonymous declarations
	// and for nodes that declare nothing.
	Name string

	// File is the file of the node's expansion location, as passed to clang.
	File string

	// PreviousDecl is the ID of the declaration this node redeclares, if any.
	PreviousDecl string

	Implicit bool
	Children []*Node
}

// Is reports whether n is of kind k.
func (n *Node) Is(k Kind) bool {
	return n != nil && n.Kind == k
}
