package event

import "github.com/luxfi/membership/types"

// TestEventKind discriminates harness-only injected events: they never occur
// on the wire and exist to force churn decisions or seed proof streams in
// scenario scripts.
type TestEventKind int

const (
	SetChurnNeeded TestEventKind = iota
	SetShortestPrefix
	SetWorkUnitEnoughToRelocate
	SetResourceProof
)

type TestEvent struct {
	Kind            TestEventKind
	ChurnNeeded     types.ChurnNeeded
	Section         types.Section
	HasSection      bool // false means SetShortestPrefix(None)
	Node            types.Node
	ResourceProofOf types.Name
	ProofSource     types.ProofSource
}

func (t TestEvent) ToEvent() Event { return Event{Kind: EventTest, Test: t} }

func NewSetChurnNeeded(c types.ChurnNeeded) TestEvent {
	return TestEvent{Kind: SetChurnNeeded, ChurnNeeded: c}
}

func NewSetShortestPrefix(section types.Section, present bool) TestEvent {
	return TestEvent{Kind: SetShortestPrefix, Section: section, HasSection: present}
}

func NewSetWorkUnitEnoughToRelocate(n types.Node) TestEvent {
	return TestEvent{Kind: SetWorkUnitEnoughToRelocate, Node: n}
}

func NewSetResourceProof(name types.Name, src types.ProofSource) TestEvent {
	return TestEvent{Kind: SetResourceProof, ResourceProofOf: name, ProofSource: src}
}
