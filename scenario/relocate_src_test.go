package scenario

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/types"
)

// TestParsecCheckRelocateTriggerAgainNoRetry checks that CheckRelocate ticks
// following the one that sent ExpectCandidate stay quiet while the attempt
// counter is still below the retry limit.
func TestParsecCheckRelocateTriggerAgainNoRetry(t *testing.T) {
	start := arrange(t, initialStateOldElders(), []event.Event{
		SetWorkUnitEnoughToRelocate(YoungAdult205),
		WorkUnitIncrementVote(),
		CheckRelocateVote(),
	})
	runMember(t, start, []event.Event{CheckRelocateVote(), CheckRelocateVote()}, nil)
}

// TestParsecRelocationTriggerAgainUntilRetry checks that once the attempt
// counter reaches MaxRelocateAttempts the candidate is dropped from the
// in-flight set and the next CheckRelocate resends ExpectCandidate for it.
func TestParsecRelocationTriggerAgainUntilRetry(t *testing.T) {
	start := arrange(t, initialStateOldElders(), []event.Event{
		SetWorkUnitEnoughToRelocate(YoungAdult205),
		WorkUnitIncrementVote(),
		CheckRelocateVote(),
		CheckRelocateVote(),
		CheckRelocateVote(),
	})
	runMember(t, start, []event.Event{CheckRelocateVote()}, []event.Event{ExpectCandidateRpc(Candidate205)})
}

// TestParsecRelocationTriggerRefuseCandidateRpc checks that a RefuseCandidate
// RPC is simply voted on, not acted on directly.
func TestParsecRelocationTriggerRefuseCandidateRpc(t *testing.T) {
	start := arrange(t, initialStateOldElders(), []event.Event{
		SetWorkUnitEnoughToRelocate(YoungAdult205),
		WorkUnitIncrementVote(),
		CheckRelocateVote(),
	})
	runMember(t, start, []event.Event{RefuseCandidateRpc(Candidate205)},
		[]event.Event{event.NewVoteRefuseCandidate(Candidate205).ToEvent()})
}

// TestParsecRelocationTriggerRefuse checks that a consensused
// RefuseCandidate only clears the in-flight attempt, producing no journal
// events of its own.
func TestParsecRelocationTriggerRefuse(t *testing.T) {
	start := arrange(t, initialStateOldElders(), []event.Event{
		SetWorkUnitEnoughToRelocate(YoungAdult205),
		WorkUnitIncrementVote(),
		CheckRelocateVote(),
	})
	runMember(t, start, []event.Event{event.NewVoteRefuseCandidate(Candidate205).ToEvent()}, nil)
}

// TestParsecRelocationTriggerRefuseTriggerAgain checks that the next
// CheckRelocate after a consensused refusal resends ExpectCandidate
// immediately, without waiting out the retry window.
func TestParsecRelocationTriggerRefuseTriggerAgain(t *testing.T) {
	start := arrange(t, initialStateOldElders(), []event.Event{
		SetWorkUnitEnoughToRelocate(YoungAdult205),
		WorkUnitIncrementVote(),
		CheckRelocateVote(),
		event.NewVoteRefuseCandidate(Candidate205).ToEvent(),
	})
	runMember(t, start, []event.Event{CheckRelocateVote()}, []event.Event{ExpectCandidateRpc(Candidate205)})
}

// TestParsecWorkUnitIncrementNoEffectIfRelocatingNode checks that extra
// WorkUnitIncrement consensus does not start a second relocation while one
// node is already relocating.
func TestParsecWorkUnitIncrementNoEffectIfRelocatingNode(t *testing.T) {
	start := arrange(t, initialStateOldElders(), []event.Event{
		SetWorkUnitEnoughToRelocate(YoungAdult205),
		WorkUnitIncrementVote(),
		SetWorkUnitEnoughToRelocate(NodeElder130),
	})
	runMember(t, start,
		[]event.Event{WorkUnitIncrementVote()},
		[]event.Event{event.NewWorkUnitIncremented().ToEvent()})
}

// TestParsecGetNodeToRelocateUsesOnlineNodesOnly seeds one node per
// non-Online lifecycle state, each with enough work to relocate, and checks
// WorkUnitIncrement starts relocating none of them.
func TestParsecGetNodeToRelocateUsesOnlineNodesOnly(t *testing.T) {
	nonOnline := []types.State{
		types.RelocatingAgeIncrease,
		types.RelocatingHop,
		types.RelocatingBackOnline,
		types.Relocated(GetRelocatedInfo(Candidate1Old, SectionInfo1)),
		types.WaitingCandidateInfo(GetRelocatedInfo(Candidate2Old, SectionInfo2)),
		types.WaitingProofing,
		types.Offline,
	}

	age := Candidate1Old.Age
	states := make([]types.NodeState, len(nonOnline))
	for i, st := range nonOnline {
		states[i] = types.NodeState{
			Node:          types.NewNode(age, types.Name(1000+i)),
			WorkUnitsDone: int64(age),
			State:         st,
		}
	}
	a := NewActionYoungElders().ExtendCurrentNodes(states)
	start := NewMemberState(a, DefaultTestConfig())

	runMember(t, start,
		[]event.Event{WorkUnitIncrementVote()},
		[]event.Event{event.NewWorkUnitIncremented().ToEvent()})
}

// TestParsecCheckRelocateWithRelocatingHopAndBackOnline checks the full
// relocation-selection ordering: AgeIncrease first, then Hop, then
// BackOnline, ties broken by age then name, with the retry window
// eventually re-admitting the first pick.
func TestParsecCheckRelocateWithRelocatingHopAndBackOnline(t *testing.T) {
	a := NewActionOldElders().
		ExtendCurrentNodesWith(types.NodeState{State: types.RelocatingHop}, []types.Node{Node1Old}).
		ExtendCurrentNodesWith(types.NodeState{State: types.RelocatingBackOnline}, []types.Node{Node2, Node2Old, Node1})
	start := NewMemberState(a, DefaultTestConfig())

	runMember(t, start,
		[]event.Event{
			SetWorkUnitEnoughToRelocate(YoungAdult205),
			WorkUnitIncrementVote(),
			CheckRelocateVote(),
			CheckRelocateVote(),
			CheckRelocateVote(),
			CheckRelocateVote(),
		},
		[]event.Event{
			event.NewWorkUnitIncremented().ToEvent(),
			event.NewNodeStateChanged(YoungAdult205, types.RelocatingAgeIncrease).ToEvent(),
			ExpectCandidateRpc(Candidate205),
			ExpectCandidateRpc(Candidate1Old),
			ExpectCandidateRpc(Candidate2),
			ExpectCandidateRpc(Candidate205),
		})
}

// TestParsecRelocateTriggerElderChange checks an elder that earned
// relocation is voted out of the elder set before any ExpectCandidate is
// sent for it.
func TestParsecRelocateTriggerElderChange(t *testing.T) {
	runMember(t, initialStateOldElders(),
		[]event.Event{
			SetWorkUnitEnoughToRelocate(NodeElder130),
			WorkUnitIncrementVote(),
			CheckRelocateVote(),
			CheckElderVote(),
		},
		[]event.Event{
			event.NewWorkUnitIncremented().ToEvent(),
			event.NewNodeStateChanged(NodeElder130, types.RelocatingAgeIncrease).ToEvent(),
			AddElderNodeVote(YoungAdult205),
			RemoveElderNodeVote(NodeElder130),
			NewSectionInfoVote(SectionInfo1),
		})
}

// TestParsecRelocateTriggerElderChangeComplete checks the demoted elder is
// relocated on the first CheckRelocate after its elder change completes.
func TestParsecRelocateTriggerElderChangeComplete(t *testing.T) {
	start := arrange(t, initialStateOldElders(), []event.Event{
		SetWorkUnitEnoughToRelocate(NodeElder130),
		WorkUnitIncrementVote(),
		CheckElderVote(),
	})
	runMember(t, start,
		[]event.Event{
			RemoveElderNodeVote(NodeElder130),
			AddElderNodeVote(YoungAdult205),
			NewSectionInfoVote(SectionInfo1),
			CheckRelocateVote(),
		},
		[]event.Event{
			event.NewNodeElderChanged(YoungAdult205, true).ToEvent(),
			event.NewNodeElderChanged(NodeElder130, false).ToEvent(),
			event.NewOurSectionChanged(SectionInfo1).ToEvent(),
			Scheduled(event.TimeoutCheckElder),
			ExpectCandidateRpc(Candidate130),
		})
}

// TestParsecRelocationTriggerRelocateResponseRpc checks a RelocateResponse
// RPC is voted on, not acted on directly.
func TestParsecRelocationTriggerRelocateResponseRpc(t *testing.T) {
	info := GetRelocatedInfo(Candidate205, DstSectionInfo200)
	start := arrange(t, initialStateOldElders(), []event.Event{
		SetWorkUnitEnoughToRelocate(YoungAdult205),
		WorkUnitIncrementVote(),
		CheckRelocateVote(),
	})
	runMember(t, start,
		[]event.Event{RelocateResponseRpc(info)},
		[]event.Event{RelocateResponseVote(info)})
}

// TestParsecRelocationTriggerAccept drives a source-side relocation to
// completion: RelocateResponse marks the node Relocated and votes
// RelocatedInfo; its consensus sends the RPC and drops the node.
func TestParsecRelocationTriggerAccept(t *testing.T) {
	info := GetRelocatedInfo(Candidate205, DstSectionInfo200)
	start := arrange(t, initialStateOldElders(), []event.Event{
		SetWorkUnitEnoughToRelocate(YoungAdult205),
		WorkUnitIncrementVote(),
		CheckRelocateVote(),
	})
	runMember(t, start,
		[]event.Event{
			RelocateResponseVote(info),
			RelocatedInfoVote(info),
		},
		[]event.Event{
			event.NewNodeStateChanged(YoungAdult205, types.Relocated(info)).ToEvent(),
			RelocatedInfoVote(info),
			event.NewRelocatedInfo(info).ToEvent(),
			event.NewNodeRemove(YoungAdult205.Name()).ToEvent(),
		})

	_, ok := start.Action.NodeState(YoungAdult205.Name())
	require.False(t, ok)
}

// TestParsecRelocationElderChangeRefuseTriggerAgain checks a refused
// ex-elder is retried on the next CheckRelocate.
func TestParsecRelocationElderChangeRefuseTriggerAgain(t *testing.T) {
	start := arrange(t, initialStateOldElders(), []event.Event{
		SetWorkUnitEnoughToRelocate(NodeElder130),
		WorkUnitIncrementVote(),
		CheckElderVote(),
		RemoveElderNodeVote(NodeElder130),
		AddElderNodeVote(YoungAdult205),
		NewSectionInfoVote(SectionInfo1),
		CheckRelocateVote(),
		event.NewVoteRefuseCandidate(Candidate130).ToEvent(),
	})
	runMember(t, start,
		[]event.Event{CheckRelocateVote()},
		[]event.Event{ExpectCandidateRpc(Candidate130)})
}

// TestUnexpectedRefuseOrAcceptCandidate checks responses we never asked
// for are still voted on, since our replica may be lagging.
func TestUnexpectedRefuseOrAcceptCandidate(t *testing.T) {
	info := GetRelocatedInfo(Candidate205, DstSectionInfo200)
	runMember(t, initialStateOldElders(),
		[]event.Event{
			RefuseCandidateRpc(Candidate205),
			RelocateResponseRpc(info),
		},
		[]event.Event{
			event.NewVoteRefuseCandidate(Candidate205).ToEvent(),
			RelocateResponseVote(info),
		})
}
