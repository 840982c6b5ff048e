package walk

import (
	"iter"
	"slices"
	"testing"

	"github.com/scylladb/go-set/strset"
	"github.com/stretchr/testify/assert"

	"github.com/rdeusser/enumstr/clangast"
)

func node(id string, kind clangast.Kind, name, file string, children ...*clangast.Node) *clangast.Node {
	return &clangast.Node{ID: id, Kind: kind, Name: name, File: file, Children: children}
}

func enumDecl(id, name, file string, children ...*clangast.Node) *clangast.Node {
	return node(id, clangast.KindEnumDecl, name, file, children...)
}

func constant(name string) *clangast.Node {
	return node("c-"+name, clangast.KindEnumConstantDecl, name, "")
}

func names(seq iter.Seq[*clangast.Node]) []string {
	var out []string
	for n := range seq {
		out = append(out, n.Name)
	}
	return out
}

func ids(seq iter.Seq[*clangast.Node]) []string {
	var out []string
	for n := range seq {
		out = append(out, n.ID)
	}
	return out
}

// testTree mirrors a header with an NS_ENUM, a plain enum, an anonymous enum
// and an enum pulled in from another header.
func testTree() *clangast.Node {
	shapeOpaque := enumDecl("e1", "Shape", "/src/Shapes.h")
	shape := enumDecl("e2", "Shape", "/src/Shapes.h", constant("Circle"), constant("Square"))
	shape.PreviousDecl = "e1"

	return node("tu", clangast.KindTranslationUnit, "", "",
		node("t1", "TypedefDecl", "NSInteger", "/src/Shapes.h"),
		enumDecl("e0", "Other", "/sdk/Other.h", constant("X")),
		shapeOpaque,
		node("v1", "VarDecl", "Shape", "/src/Shapes.h"),
		shape,
		enumDecl("e3", "Color", "/src/Shapes.h",
			constant("Red"),
			node("w", "Wrapper", "", "", constant("Green"), node("w2", "Wrapper", "", "", constant("Blue"))),
		),
		enumDecl("e4", "", "/src/Shapes.h", constant("A"), constant("B")),
		enumDecl("e5", "Empty", "/src/Shapes.h"),
	)
}

func TestAll(t *testing.T) {
	root := node("a", "K", "", "",
		node("b", "K", "", "",
			node("c", "K", "", ""),
			node("d", "K", "", "")),
		node("e", "K", "", "",
			node("f", "K", "", "")),
	)

	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, ids(All(root)))
}

func TestAllRestartable(t *testing.T) {
	seq := All(testTree())

	first := ids(seq)
	second := ids(seq)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestAllStopsEarly(t *testing.T) {
	var visited []string

	for n := range All(testTree()) {
		visited = append(visited, n.ID)
		if n.ID == "e0" {
			break
		}
	}

	assert.Equal(t, []string{"tu", "t1", "e0"}, visited)
}

func TestAllNil(t *testing.T) {
	assert.Empty(t, ids(All(nil)))
}

func TestAllDeep(t *testing.T) {
	root := node("0", "K", "", "")
	cur := root
	for i := 0; i < 100000; i++ {
		next := node("", "K", "", "")
		cur.Children = []*clangast.Node{next}
		cur = next
	}
	cur.Kind = clangast.KindEnumConstantDecl
	cur.Name = "Deepest"

	assert.Equal(t, []string{"Deepest"}, names(Constants(root)))
}

func TestEnums(t *testing.T) {
	testCases := []struct {
		testName string
		target   string
		want     []string
	}{
		{"absolute path", "/src/Shapes.h", []string{"e1", "e2", "e3", "e4", "e5"}},
		{"relative path", "Shapes.h", []string{"e1", "e2", "e3", "e4", "e5"}},
		{"other header", "Other.h", []string{"e0"}},
		{"no match", "Missing.h", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Enums(testTree(), tc.target)))
		})
	}
}

func TestConstants(t *testing.T) {
	root := testTree()

	testCases := []struct {
		testName string
		id       string
		want     []string
	}{
		{"flat", "e2", []string{"Circle", "Square"}},
		{"nested under wrappers", "e3", []string{"Red", "Green", "Blue"}},
		{"anonymous", "e4", []string{"A", "B"}},
		{"empty", "e5", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			for n := range All(root) {
				if n.ID == tc.id {
					assert.Equal(t, tc.want, names(Constants(n)))
					return
				}
			}
			t.Fatalf("node %s not found", tc.id)
		})
	}
}

func TestSelect(t *testing.T) {
	testCases := []struct {
		testName string
		allow    *strset.Set
		want     []string
	}{
		{"nil allow list", nil, []string{"e1", "e2", "e3", "e4", "e5"}},
		{"empty allow list", strset.New(), []string{"e1", "e2", "e3", "e4", "e5"}},
		{"one name", strset.New("Color"), []string{"e3"}},
		{"redeclared name", strset.New("Shape"), []string{"e1", "e2"}},
		{"exact match only", strset.New("Col", "Shapes"), nil},
		{"missing name ignored", strset.New("Color", "Nope"), []string{"e3"}},
		{"anonymous never matches", strset.New(""), nil},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Select(Enums(testTree(), "Shapes.h"), tc.allow)))
		})
	}
}

func TestSuperseded(t *testing.T) {
	got := Superseded(testTree(), "Shapes.h")

	assert.True(t, got.IsEqual(strset.New("e1")), "got %v", got.List())

	// An empty enum that nothing redeclares is kept.
	assert.False(t, got.Has("e5"))
}

func TestSupersededIgnoresDefinitions(t *testing.T) {
	first := enumDecl("e1", "Shape", "a.h", constant("A"))
	second := enumDecl("e2", "Shape", "a.h", constant("B"))
	second.PreviousDecl = "e1"

	root := node("tu", clangast.KindTranslationUnit, "", "", first, second)

	assert.True(t, Superseded(root, "a.h").IsEmpty())
	assert.True(t, slices.Equal([]string{"e1", "e2"}, ids(Enums(root, "a.h"))))
}
