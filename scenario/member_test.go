package scenario

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/internal/member"
	"github.com/luxfi/membership/types"
)

func runMember(t *testing.T, start *member.MemberState, events []event.Event, want []event.Event) {
	t.Helper()
	got, failure := Outcome(start, events)
	require.Nil(t, failure, "unexpected failure event")
	require.Equal(t, want, got.ActionEvents)
}

func arrange(t *testing.T, start *member.MemberState, events []event.Event) *member.MemberState {
	t.Helper()
	return ArrangeInitialState(start, events)
}

func TestRpcMerge(t *testing.T) {
	runMember(t, initialStateOldElders(),
		[]event.Event{MergeRpc(OtherSectionInfo)},
		[]event.Event{NeighbourMergeVote(OtherSectionInfo)})
}

func TestParsecNeighbourMerge(t *testing.T) {
	runMember(t, initialStateOldElders(),
		[]event.Event{NeighbourMergeVote(OtherSectionInfo)},
		[]event.Event{event.NewMergeInfoStored(OtherSectionInfo).ToEvent()})
}

func TestParsecNeighbourMergeThenCheckElder(t *testing.T) {
	start := arrange(t, initialStateOldElders(), []event.Event{NeighbourMergeVote(OtherSectionInfo)})
	runMember(t, start,
		[]event.Event{CheckElderVote()},
		[]event.Event{
			MergeRpc(types.SectionInfo{Section: OurSection, Version: 0}),
			NewSectionInfoVote(MergedSectionInfo),
		})
}

// TestParsecNewSectionCompletesMergeAndRechecksElder checks that finishing
// a merge re-runs the elder-selection rule against the merged membership
// before falling back to just rearming the elder timer.
func TestParsecNewSectionCompletesMergeAndRechecksElder(t *testing.T) {
	start := arrange(t, initialStateOldElders(), []event.Event{
		NeighbourMergeVote(OtherSectionInfo),
		CheckElderVote(),
	})
	runMember(t, start,
		[]event.Event{NewSectionInfoVote(MergedSectionInfo)},
		[]event.Event{
			event.NewCompleteMerge().ToEvent(),
			event.NewScheduled(event.Simple(event.TimeoutCheckElder)).ToEvent(),
		})
}

func TestParsecMergeNeeded(t *testing.T) {
	runMember(t, initialStateOldElders(),
		[]event.Event{SetChurnNeeded(types.ChurnMerge), CheckElderVote()},
		[]event.Event{MergeRpc(types.SectionInfo{Section: OurSection, Version: 0})})
}

func TestParsecMergeSibling(t *testing.T) {
	start := arrange(t, initialStateOldElders(),
		[]event.Event{SetChurnNeeded(types.ChurnMerge), CheckElderVote()})
	runMember(t, start,
		[]event.Event{NeighbourMergeVote(OtherSectionInfo)},
		[]event.Event{
			event.NewMergeInfoStored(OtherSectionInfo).ToEvent(),
			NewSectionInfoVote(MergedSectionInfo),
		})
}

// TestParsecMergeNonSibling checks merge info from a non-adjacent section
// is stored but never combined into a new section vote.
func TestParsecMergeNonSibling(t *testing.T) {
	start := arrange(t, initialStateOldElders(),
		[]event.Event{SetChurnNeeded(types.ChurnMerge), CheckElderVote()})
	runMember(t, start,
		[]event.Event{NeighbourMergeVote(RemoteOtherSection)},
		[]event.Event{event.NewMergeInfoStored(RemoteOtherSection).ToEvent()})
}

func TestParsecSplitComplete(t *testing.T) {
	start := arrange(t, initialStateOldElders(),
		[]event.Event{SetChurnNeeded(types.ChurnSplit), CheckElderVote()})
	runMember(t, start,
		[]event.Event{
			NewSectionInfoVote(SplitSectionInfo1),
			NewSectionInfoVote(SplitSectionInfo2),
		},
		[]event.Event{
			event.NewCompleteSplit().ToEvent(),
			event.NewScheduled(event.Simple(event.TimeoutCheckElder)).ToEvent(),
		})
}

func TestParsecSplitNeeded(t *testing.T) {
	runMember(t, initialStateOldElders(),
		[]event.Event{SetChurnNeeded(types.ChurnSplit), CheckElderVote()},
		[]event.Event{
			NewSectionInfoVote(SplitSectionInfo1),
			NewSectionInfoVote(SplitSectionInfo2),
		})
}

func TestLocalEventsOfflineBackOnlineDifferentNodes(t *testing.T) {
	runMember(t, initialStateOldElders(),
		[]event.Event{NodeDetectedOffline(NodeElder130), NodeDetectedBackOnline(NodeElder131)},
		[]event.Event{OfflineVote(NodeElder130), BackOnlineVote(NodeElder131)})
}

func TestParsecOffline(t *testing.T) {
	runMember(t, initialStateOldElders(),
		[]event.Event{OfflineVote(NodeElder130)},
		[]event.Event{event.NewNodeStateChanged(NodeElder130, types.Offline).ToEvent()})
}

// TestParsecOfflineThenCheckElder checks the next CheckElder starts
// voting the offline elder out of the section info.
func TestParsecOfflineThenCheckElder(t *testing.T) {
	start := arrange(t, initialStateOldElders(), []event.Event{OfflineVote(NodeElder130)})
	runMember(t, start,
		[]event.Event{CheckElderVote()},
		[]event.Event{
			AddElderNodeVote(YoungAdult205),
			RemoveElderNodeVote(NodeElder130),
			NewSectionInfoVote(SectionInfo1),
		})
}

func TestParsecOfflineThenParsecOnline(t *testing.T) {
	start := arrange(t, initialStateOldElders(), []event.Event{OfflineVote(NodeElder130)})
	runMember(t, start,
		[]event.Event{BackOnlineVote(NodeElder130)},
		[]event.Event{event.NewNodeStateChanged(NodeElder130, types.RelocatingBackOnline).ToEvent()})
}

func TestLocalEventTimeoutWorkUnit(t *testing.T) {
	runMember(t, initialStateOldElders(),
		[]event.Event{event.Simple(event.TimeoutWorkUnit).ToEvent()},
		[]event.Event{
			WorkUnitIncrementVote(),
			event.NewScheduled(event.Simple(event.TimeoutWorkUnit)).ToEvent(),
		})
}

func TestStartRelocation(t *testing.T) {
	runMember(t, initialStateOldElders(),
		[]event.Event{
			SetWorkUnitEnoughToRelocate(YoungAdult205),
			WorkUnitIncrementVote(),
			CheckRelocateVote(),
		},
		[]event.Event{
			event.NewWorkUnitIncremented().ToEvent(),
			event.NewNodeStateChanged(YoungAdult205, types.RelocatingAgeIncrease).ToEvent(),
			ExpectCandidateRpc(Candidate205),
		})
}
