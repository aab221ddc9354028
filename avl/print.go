package avl

import (
	"fmt"
	"io"
	"strings"

	"github.com/emicklei/dot"
	"golang.org/x/exp/constraints"
)

// DefaultIndent is the per-level indent used by Print.
const DefaultIndent = 7

// Print writes the tree sideways to w using DefaultIndent.
func (t *Tree[K, V]) Print(w io.Writer) error {
	return t.Fprint(w, DefaultIndent)
}

// Fprint writes the tree sideways to w, one node per line, with the root
// at the left margin and the right subtree above it. Each line shows the
// node's value, height and height difference. Deeper levels are indented
// by indentBy more blanks.
func (t *Tree[K, V]) Fprint(w io.Writer, indentBy int) error {
	if indentBy < 0 {
		indentBy = 0
	}
	return printTree(w, t.root, "", strings.Repeat(" ", indentBy))
}

func printTree[K any, V constraints.Ordered](w io.Writer, n *node[K, V], indent, step string) error {
	if n == nil {
		return nil
	}
	if err := printTree(w, n.right, indent+step, step); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s AVL>%v ( %d %d )\n", indent, n.value, n.height, n.heightDiff()); err != nil {
		return err
	}
	return printTree(w, n.left, indent+step, step)
}

// String renders the pairs in pre-order as {key: value, ...}.
func (t *Tree[K, V]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	seq, _ := t.Traverse(PreOrder)
	first := true
	for k, v := range seq {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%#v: %#v", k, v)
	}
	sb.WriteByte('}')
	return sb.String()
}

// DotGraph renders the tree in Graphviz dot format.
func (t *Tree[K, V]) DotGraph() string {
	graph := dot.NewGraph(dot.Directed)
	if t.root == nil {
		return graph.String()
	}

	var traverse func(n *node[K, V], parent *dot.Node, direction string)
	traverse = func(n *node[K, V], parent *dot.Node, direction string) {
		label := fmt.Sprintf("V:%v K:%v\nH:%d D:%d", n.value, n.key, n.height, n.heightDiff())
		gn := graph.Node(fmt.Sprintf("%v", n.value)).Label(label)
		if parent != nil {
			parent.Edge(gn, direction)
		}
		if n.left != nil {
			traverse(n.left, &gn, "l")
		}
		if n.right != nil {
			traverse(n.right, &gn, "r")
		}
	}
	traverse(t.root, nil, "")

	return graph.String()
}
