package types

import "fmt"

// Section is a stand-in for a binary address prefix: in this model it is a
// single signed integer tag. Two sections are "siblings" (see
// Action.HasSiblingMergeInfo) when the arithmetic distance between their
// tags is 1 — a deliberate placeholder for real prefix adjacency, isolated
// here so the state machines never need to change when that's replaced.
type Section int64

func (s Section) String() string {
	return fmt.Sprintf("Section(%d)", int64(s))
}

// SectionInfo is a versioned snapshot of a Section's membership. Version
// strictly increases across elder changes (invariant 6 of the node table).
type SectionInfo struct {
	Section Section
	Version int64
}

// GenesisPfxInfo is the membership snapshot handed to a newly approved node
// (via Rpc.NodeApproval) and to a destination section's elders.
type GenesisPfxInfo struct {
	SectionInfo SectionInfo
}

// ChurnNeeded is injected by the test harness (TestEvent.SetChurnNeeded) to
// force a split or merge decision on the next CheckElder consensus.
type ChurnNeeded int

const (
	ChurnNone ChurnNeeded = iota
	ChurnSplit
	ChurnMerge
)

func (c ChurnNeeded) String() string {
	switch c {
	case ChurnSplit:
		return "Split"
	case ChurnMerge:
		return "Merge"
	default:
		return "None"
	}
}

// ChangeElder is the outcome of Action.CheckElder: the set of (node,
// new-is-elder) pairs to apply, paired with the SectionInfo that results
// once they are.
type ChangeElder struct {
	Changes    []ElderChange
	NewSection SectionInfo
}

// ElderChange names one member whose elder flag is about to flip.
type ElderChange struct {
	Node       Node
	NewIsElder bool
}
