package bench

import (
	"fmt"
	"io"
	"strings"

	"github.com/cosmos/avl-bench/avl"
	"github.com/cosmos/avl-bench/core"
)

// DemoValues are inserted by Demo when no values are given.
var DemoValues = []int64{10000001, 20000002, 30000003, 40000004, 50000005, 60000006, 70000007}

func banner(title string) string {
	pad := strings.Repeat("#", (70-len(title))/2)
	return "\n" + pad + " " + title + " " + pad + "\n"
}

// Demo walks an AVL tree through inserting values in order, traversing it
// and deleting them again, writing the tree and a balance check after
// every step. It returns core.ErrUnbalanced if any check fails.
func Demo(w io.Writer, values []int64) error {
	if len(values) == 0 {
		values = DemoValues
	}
	d := &demo{w: w, tree: avl.New[int, int64]()}

	d.printf("Check balance of empty tree before adding values:\n")
	d.checkBalance()

	d.printf("%s", banner("INSERTING"))
	for i, v := range values {
		d.printf("\nInserting %d returns %t\n", v, d.tree.Insert(i, v))
		d.printf("After inserting %d : %d the tree contains\n\n", i+1, v)
		d.print()
		d.checkBalance()
	}

	d.printf("%s", banner("TRAVERSING"))
	d.printf("Traversing the tree in-order:\n")
	seq, err := d.tree.Traverse(avl.InOrder)
	if err != nil {
		return err
	}
	for k, v := range seq {
		d.printf("key %d has value %d\n", k, v)
		d.printf("Balance Check:\n")
		d.checkBalance()
	}

	d.printf("%s", banner("DELETING"))
	for _, v := range values {
		d.checkBalance()
		deleted := d.tree.Delete(v)
		d.printf("\nDeleting %d returns %t\n", v, deleted)
		if deleted {
			d.printf("After deleting %d : the tree contains\n\n", v)
			d.print()
		}
	}

	d.printf("Check balance of empty tree after removing values:\n")
	d.checkBalance()

	if d.err != nil {
		return d.err
	}
	if d.unbalanced > 0 {
		return fmt.Errorf("%d failed checks: %w", d.unbalanced, core.ErrUnbalanced)
	}
	return nil
}

type demo struct {
	w          io.Writer
	tree       *avl.Tree[int, int64]
	unbalanced int
	err        error
}

func (d *demo) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

func (d *demo) print() {
	if d.err != nil {
		return
	}
	d.err = d.tree.Print(d.w)
}

func (d *demo) checkBalance() {
	if d.tree.IsBalanced() {
		d.printf("The tree is balanced\n")
		return
	}
	d.unbalanced++
	d.printf("Not balanced\n")
}
