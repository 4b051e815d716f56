// Package action implements the single effect mediator every sub-machine
// threads through TryNext: the local node table, the section's merge/churn
// scratch state, and the journal of everything that happened during one
// step. The model is single-threaded and cooperative (only one sub-machine
// ever runs inside a TryNext call), so sharing is a plain *Action passed
// around directly, with no locking.
package action

import (
	"sort"

	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/internal/set"
	"github.com/luxfi/membership/types"
)

// innerAction is the node table and section scratch state a section's
// Action owns. It is never shared outside *Action.
type innerAction struct {
	ourAttributes types.Attributes
	ourSection    types.SectionInfo
	ourNodes      map[types.Name]types.NodeState

	ourEvents []event.Event

	shortestPrefix     types.Section
	hasShortestPrefix  bool
	sectionMembers     map[types.SectionInfo][]types.Node
	nextTargetInterval types.Name

	mergeInfo    types.SectionInfo
	hasMergeInfo bool
	churnNeeded  types.ChurnNeeded
	hasChurn     bool

	connected set.Set[types.Name]

	resourceProofsForElder map[types.Name]types.ProofSource
}

// newInnerAction seeds an empty node table for a node identified by attrs.
func newInnerAction(attrs types.Attributes) *innerAction {
	return &innerAction{
		ourAttributes:          attrs,
		ourNodes:               make(map[types.Name]types.NodeState),
		sectionMembers:         make(map[types.SectionInfo][]types.Node),
		connected:              set.New[types.Name](0),
		resourceProofsForElder: make(map[types.Name]types.ProofSource),
	}
}

// sortedNames returns the node table's keys in ascending order. Several
// lookups (GetNodeToRelocate, ResourceProofCandidate) are specified as
// "first match in name order", which a bare map range cannot provide.
func (a *innerAction) sortedNames() []types.Name {
	names := make([]types.Name, 0, len(a.ourNodes))
	for n := range a.ourNodes {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func (a *innerAction) addNode(state types.NodeState) {
	a.ourEvents = append(a.ourEvents, event.NewNodeAddWithState(state.Node, state.State).ToEvent())
	if _, exists := a.ourNodes[state.Node.Name()]; exists {
		panic("action: addNode: node already present")
	}
	a.ourNodes[state.Node.Name()] = state
}

func (a *innerAction) removeNode(name types.Name) {
	a.ourEvents = append(a.ourEvents, event.NewNodeRemove(name).ToEvent())
	if _, ok := a.ourNodes[name]; !ok {
		panic("action: removeNode: node not present")
	}
	delete(a.ourNodes, name)
}

func (a *innerAction) replaceNode(oldName types.Name, state types.NodeState) {
	a.ourEvents = append(a.ourEvents, event.NewNodeReplaceWith(oldName, state.Node, state.State).ToEvent())
	if _, ok := a.ourNodes[oldName]; !ok {
		panic("action: replaceNode: node not present")
	}
	delete(a.ourNodes, oldName)
	if _, exists := a.ourNodes[state.Node.Name()]; exists {
		panic("action: replaceNode: replacement name collides")
	}
	a.ourNodes[state.Node.Name()] = state
}

func (a *innerAction) setNodeState(name types.Name, state types.State) {
	node, ok := a.ourNodes[name]
	if !ok {
		panic("action: setNodeState: node not present")
	}
	node.State = state
	a.ourNodes[name] = node
	a.ourEvents = append(a.ourEvents, event.NewNodeStateChanged(node.Node, state).ToEvent())
}

func (a *innerAction) setElderState(name types.Name, isElder bool) {
	node, ok := a.ourNodes[name]
	if !ok {
		panic("action: setElderState: node not present")
	}
	node.IsElder = isElder
	a.ourNodes[name] = node
	a.ourEvents = append(a.ourEvents, event.NewNodeElderChanged(node.Node, isElder).ToEvent())
}

func (a *innerAction) setSectionInfo(info types.SectionInfo) {
	a.ourSection = info
	a.ourEvents = append(a.ourEvents, event.NewOurSectionChanged(info).ToEvent())
}

func (a *innerAction) storeMergeInfos(info types.SectionInfo) {
	a.mergeInfo = info
	a.hasMergeInfo = true
	a.ourEvents = append(a.ourEvents, event.NewMergeInfoStored(info).ToEvent())
}

func (a *innerAction) completeMerge() {
	a.ourEvents = append(a.ourEvents, event.NewCompleteMerge().ToEvent())
}

func (a *innerAction) completeSplit() {
	a.ourEvents = append(a.ourEvents, event.NewCompleteSplit().ToEvent())
}
