package graph

import "github.com/irisgriv/fitc/pkg/squash"

// Sizes computes the output size of every node reachable from root for
// the given event count: observables evaluate to one value per event and
// derived nodes inherit the largest size among their children. Nodes
// independent of any observable stay scalar (size 1). The NLL reducer
// keeps the event-sized entry because the loop it owns runs over events.
func Sizes(root Node, events int) map[*squash.Symbol]int {
	sizes := make(map[*squash.Symbol]int)

	var walk func(n Node) int
	walk = func(n Node) int {
		if size, ok := sizes[n.Sym()]; ok {
			return size
		}
		size := 1
		if _, ok := n.(*Obs); ok {
			size = events
		}
		for _, k := range n.Children() {
			if ks := walk(k); ks > size {
				size = ks
			}
		}
		sizes[n.Sym()] = size
		return size
	}

	walk(root)
	return sizes
}
