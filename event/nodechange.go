package event

import "github.com/luxfi/membership/types"

// NodeChangeKind discriminates node-table mutations that Action records into
// its journal for test assertions — never consumed by TryNext, only
// observed.
type NodeChangeKind int

const (
	NodeAddWithState NodeChangeKind = iota
	NodeReplaceWith
	NodeStateChanged
	NodeRemove
	NodeElderChanged
)

type NodeChange struct {
	Kind    NodeChangeKind
	Name    types.Name
	Node    types.Node
	State   types.State
	IsElder bool
}

func (n NodeChange) ToEvent() Event { return Event{Kind: EventNodeChange, NodeChange: n} }

func NewNodeAddWithState(node types.Node, state types.State) NodeChange {
	return NodeChange{Kind: NodeAddWithState, Node: node, State: state}
}

func NewNodeReplaceWith(name types.Name, node types.Node, state types.State) NodeChange {
	return NodeChange{Kind: NodeReplaceWith, Name: name, Node: node, State: state}
}

func NewNodeStateChanged(node types.Node, state types.State) NodeChange {
	return NodeChange{Kind: NodeStateChanged, Node: node, State: state}
}

func NewNodeRemove(name types.Name) NodeChange {
	return NodeChange{Kind: NodeRemove, Name: name}
}

func NewNodeElderChanged(node types.Node, isElder bool) NodeChange {
	return NodeChange{Kind: NodeElderChanged, Node: node, IsElder: isElder}
}
