package graph

import (
	"sync/atomic"

	"github.com/irisgriv/fitc/pkg/squash"
)

var listIDCounter uint64

// NodeList is an ordered node collection with a stable identity. The
// squash context caches materialized arrays by this identity, so two
// lists with equal contents still get separate array variables unless
// they are the same list instance.
type NodeList struct {
	id    uint64
	items []Node
}

// NewNodeList creates a list over the given nodes, in order.
func NewNodeList(items ...Node) *NodeList {
	return &NodeList{
		id:    atomic.AddUint64(&listIDCounter, 1),
		items: items,
	}
}

// ID returns the list's identity token.
func (l *NodeList) ID() uint64 { return l.id }

// Len returns the number of members.
func (l *NodeList) Len() int { return len(l.items) }

// Items returns the members in order.
func (l *NodeList) Items() []Node { return l.items }

// Nodes satisfies squash.List.
func (l *NodeList) Nodes() []squash.Node {
	out := make([]squash.Node, len(l.items))
	for i, n := range l.items {
		out[i] = n
	}
	return out
}
