package clangast

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
)

type rawLoc struct {
	Offset       *int    `json:"offset"`
	File         string  `json:"file"`
	SpellingLoc  *rawLoc `json:"spellingLoc"`
	ExpansionLoc *rawLoc `json:"expansionLoc"`
}

type rawRange struct {
	Begin rawLoc `json:"begin"`
	End   rawLoc `json:"end"`
}

type rawNode struct {
	ID           string     `json:"id"`
	Kind         string     `json:"kind"`
	Name         string     `json:"name"`
	PreviousDecl string     `json:"previousDecl"`
	IsImplicit   bool       `json:"isImplicit"`
	Loc          rawLoc     `json:"loc"`
	Range        rawRange   `json:"range"`
	Inner        []*rawNode `json:"inner"`
}

// fileTracker mirrors clang's JSON dumper, which only prints "file" when it
// differs from the file of the previously printed location.
type fileTracker struct {
	last string
}

// expansion returns the file of the expansion location of l.
func (t *fileTracker) expansion(l rawLoc) string {
	if l.SpellingLoc == nil && l.ExpansionLoc == nil {
		return t.bare(l)
	}

	if l.SpellingLoc != nil {
		t.bare(*l.SpellingLoc)
	}

	if l.ExpansionLoc == nil {
		return ""
	}

	return t.bare(*l.ExpansionLoc)
}

func (t *fileTracker) bare(l rawLoc) string {
	if l.Offset == nil && l.File == "" {
		// Invalid location, e.g. an implicit declaration.
		return ""
	}

	if l.File != "" {
		t.last = l.File
	}

	return t.last
}

// Decode reads a clang JSON AST dump (-Xclang -ast-dump=json) from r.
func Decode(r io.Reader) (*Node, error) {
	var raw rawNode

	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decoding clang AST")
	}

	if raw.Kind == "" {
		return nil, errors.New("decoding clang AST: root node has no kind")
	}

	return convert(&raw), nil
}

// convert builds the Node tree in the order clang printed it so that every
// location is resolved against the one printed before it.
func convert(raw *rawNode) *Node {
	type frame struct {
		raw    *rawNode
		parent *Node
	}

	var (
		tracker fileTracker
		root    *Node
		stack   = []frame{{raw: raw}}
	)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &Node{
			ID:           f.raw.ID,
			Kind:         Kind(f.raw.Kind),
			Name:         f.raw.Name,
			PreviousDecl: f.raw.PreviousDecl,
			Implicit:     f.raw.IsImplicit,
			File:         tracker.expansion(f.raw.Loc),
		}

		tracker.expansion(f.raw.Range.Begin)
		tracker.expansion(f.raw.Range.End)

		if f.parent == nil {
			root = n
		} else {
			f.parent.Children = append(f.parent.Children, n)
		}

		for i := len(f.raw.Inner) - 1; i >= 0; i-- {
			if f.raw.Inner[i] == nil {
				continue
			}
			stack = append(stack, frame{raw: f.raw.Inner[i], parent: n})
		}
	}

	return root
}
