package types

// State is the node-lifecycle tag stored per row of the local node table.
// Ordering is significant: Online sorts first so that an
// (state asc, age desc, name asc) sort over the table selects elders
// correctly (Online members always outrank anyone mid-relocation or
// mid-admission).
type State struct {
	kind          stateKind
	relocatedInfo RelocatedInfo // valid when kind is Relocated or WaitingCandidateInfo
}

type stateKind int

const (
	// Online orders first so elder selection prefers it.
	stateOnline stateKind = iota
	stateRelocatingAgeIncrease
	stateRelocatingHop
	stateRelocatingBackOnline
	stateRelocated
	stateWaitingCandidateInfo
	stateWaitingProofing
	stateOffline
)

var (
	Online                = State{kind: stateOnline}
	RelocatingAgeIncrease = State{kind: stateRelocatingAgeIncrease}
	RelocatingHop         = State{kind: stateRelocatingHop}
	RelocatingBackOnline  = State{kind: stateRelocatingBackOnline}
	WaitingProofing       = State{kind: stateWaitingProofing}
	Offline               = State{kind: stateOffline}
)

// Relocated builds the terminal "ticket received" state for a source-side
// relocating node.
func Relocated(info RelocatedInfo) State {
	return State{kind: stateRelocated, relocatedInfo: info}
}

// WaitingCandidateInfo builds the destination-side "ticket issued, waiting
// for the candidate to show up" state.
func WaitingCandidateInfo(info RelocatedInfo) State {
	return State{kind: stateWaitingCandidateInfo, relocatedInfo: info}
}

// rank orders kinds for the (state asc, age desc, name asc) elder sort;
// it is just stateKind's declaration order, named for readability at call
// sites.
func (s State) rank() int { return int(s.kind) }

// Less implements the "state asc" half of the elder-selection comparator.
func (s State) Less(other State) bool { return s.rank() < other.rank() }

func (s State) Equal(other State) bool {
	if s.kind != other.kind {
		return false
	}
	switch s.kind {
	case stateRelocated, stateWaitingCandidateInfo:
		return s.relocatedInfo == other.relocatedInfo
	default:
		return true
	}
}

// IsRelocating is true for the three Relocating* variants.
func (s State) IsRelocating() bool {
	switch s.kind {
	case stateRelocatingAgeIncrease, stateRelocatingHop, stateRelocatingBackOnline:
		return true
	default:
		return false
	}
}

// IsNotYetFullNode covers WaitingCandidateInfo | WaitingProofing |
// RelocatingHop — rows that do not yet count as an established member for
// the purposes of admission concurrency limiting.
func (s State) IsNotYetFullNode() bool {
	switch s.kind {
	case stateWaitingCandidateInfo, stateWaitingProofing, stateRelocatingHop:
		return true
	default:
		return false
	}
}

// WaitingCandidateInfoTicket returns the RelocatedInfo ticket if this state
// is WaitingCandidateInfo.
func (s State) WaitingCandidateInfoTicket() (RelocatedInfo, bool) {
	if s.kind == stateWaitingCandidateInfo {
		return s.relocatedInfo, true
	}
	return RelocatedInfo{}, false
}

// RelocatedTicket returns the RelocatedInfo ticket if this state is
// Relocated.
func (s State) RelocatedTicket() (RelocatedInfo, bool) {
	if s.kind == stateRelocated {
		return s.relocatedInfo, true
	}
	return RelocatedInfo{}, false
}

func (s State) String() string {
	switch s.kind {
	case stateOnline:
		return "Online"
	case stateRelocatingAgeIncrease:
		return "RelocatingAgeIncrease"
	case stateRelocatingHop:
		return "RelocatingHop"
	case stateRelocatingBackOnline:
		return "RelocatingBackOnline"
	case stateRelocated:
		return "Relocated(" + s.relocatedInfo.String() + ")"
	case stateWaitingCandidateInfo:
		return "WaitingCandidateInfo(" + s.relocatedInfo.String() + ")"
	case stateWaitingProofing:
		return "WaitingProofing"
	case stateOffline:
		return "Offline"
	default:
		return "Unknown"
	}
}

// NodeState is a section member's row in the local node table.
type NodeState struct {
	Node          Node
	WorkUnitsDone int64
	IsElder       bool
	State         State
}

// DefaultElder returns a zero-value NodeState marked as an elder; a
// convenience used heavily by scenario builders.
func DefaultElder() NodeState {
	return NodeState{State: Online, IsElder: true}
}

// DefaultAdult returns a zero-value, non-elder, Online NodeState.
func DefaultAdult() NodeState {
	return NodeState{State: Online}
}
