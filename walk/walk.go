// Package walk finds enum declarations and their constants in a clang AST.
package walk

import (
	"iter"
	"strings"

	"github.com/scylladb/go-set/strset"

	"github.com/rdeusser/enumstr/clangast"
)

// All yields root followed by every descendant in depth-first pre-order.
// Each iteration starts over from root.
func All(root *clangast.Node) iter.Seq[*clangast.Node] {
	return func(yield func(*clangast.Node) bool) {
		if root == nil {
			return
		}

		stack := []*clangast.Node{root}

		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(n) {
				return
			}

			// Push in reverse so the first child is visited first.
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, n.Children[i])
			}
		}
	}
}

// Enums yields the enum declarations of root whose file path contains target.
// Matching by substring lets a relative target match clang's absolute path.
func Enums(root *clangast.Node, target string) iter.Seq[*clangast.Node] {
	return func(yield func(*clangast.Node) bool) {
		for n := range All(root) {
			if n.Is(clangast.KindEnumDecl) && strings.Contains(n.File, target) {
				if !yield(n) {
					return
				}
			}
		}
	}
}

// Constants yields the enum constants found anywhere below enum, in
// declaration order.
func Constants(enum *clangast.Node) iter.Seq[*clangast.Node] {
	return func(yield func(*clangast.Node) bool) {
		for n := range All(enum) {
			if n.Is(clangast.KindEnumConstantDecl) {
				if !yield(n) {
					return
				}
			}
		}
	}
}

// Select keeps the enums named in allow. A nil or empty allow keeps every
// enum; otherwise anonymous enums are dropped.
func Select(enums iter.Seq[*clangast.Node], allow *strset.Set) iter.Seq[*clangast.Node] {
	if allow == nil || allow.IsEmpty() {
		return enums
	}

	return func(yield func(*clangast.Node) bool) {
		for n := range enums {
			if n.Name == "" || !allow.Has(n.Name) {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// Superseded returns the IDs of constant-less enum declarations in target
// that a later declaration of the same enum redeclares. NS_ENUM expands to
// such an opaque declaration followed by the definition.
func Superseded(root *clangast.Node, target string) *strset.Set {
	var (
		empty      = strset.New()
		redeclared = strset.New()
	)

	for n := range Enums(root, target) {
		if n.PreviousDecl != "" {
			redeclared.Add(n.PreviousDecl)
		}

		if !hasConstants(n) {
			empty.Add(n.ID)
		}
	}

	return strset.Intersection(empty, redeclared)
}

func hasConstants(enum *clangast.Node) bool {
	for range Constants(enum) {
		return true
	}
	return false
}
