package action

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/types"
)

var (
	ourAttributes = types.Attributes{Age: 32, Name: 132}

	elder130 = types.NewNode(30, 130)
	elder131 = types.NewNode(31, 131)
	elder132 = types.NewNode(32, 132)
	adult205 = types.NewNode(5, 205)
)

func newTestAction() *Action {
	return New(ourAttributes, nil, nil).
		WithNextTargetInterval(1234).
		ExtendCurrentNodesWith(types.DefaultElder(), []types.Node{elder130, elder131, elder132}).
		ExtendCurrentNodesWith(types.DefaultAdult(), []types.Node{adult205})
}

func TestAddNodeWaitingCandidateInfoAllocatesMonotonicTargets(t *testing.T) {
	a := newTestAction()

	first := a.AddNodeWaitingCandidateInfo(types.NewCandidate(9, 1001))
	second := a.AddNodeWaitingCandidateInfo(types.NewCandidate(9, 1002))

	require.Equal(t, types.Name(1234), first.TargetIntervalCentre)
	require.Equal(t, types.Name(1235), second.TargetIntervalCentre)
	require.Equal(t, types.Age(10), first.ExpectedAge)

	// The inserted row is keyed by the allocated target name, in
	// WaitingCandidateInfo holding its own ticket.
	state, ok := a.NodeState(first.TargetIntervalCentre)
	require.True(t, ok)
	ticket, isWaiting := state.State.WaitingCandidateInfoTicket()
	require.True(t, isWaiting)
	require.Equal(t, first, ticket)
	require.Equal(t, state.Node.Name(), ticket.TargetIntervalCentre)
}

func TestAddNodePanicsOnDuplicateName(t *testing.T) {
	a := newTestAction()
	require.Panics(t, func() {
		a.ExtendCurrentNodes([]types.NodeState{{Node: elder130, State: types.Online}})
	})
}

func TestPurgeNodeInfoPanicsWhenAbsent(t *testing.T) {
	a := newTestAction()
	require.Panics(t, func() { a.PurgeNodeInfo(9999) })
}

func TestCheckElderNoChangeWhenRankingMatchesFlags(t *testing.T) {
	a := newTestAction()
	_, ok := a.CheckElder(3)
	require.False(t, ok)
}

func TestCheckElderDemotesOfflineElder(t *testing.T) {
	a := newTestAction()
	a.SetNodeOfflineState(elder130)

	change, ok := a.CheckElder(3)
	require.True(t, ok)
	require.Equal(t, []types.ElderChange{
		{Node: adult205, NewIsElder: true},
		{Node: elder130, NewIsElder: false},
	}, change.Changes)
	require.Equal(t, types.SectionInfo{Section: 0, Version: 1}, change.NewSection)

	votes := a.GetElderChangeVotes(change)
	require.Equal(t, []event.ParsecVote{
		event.NewVoteAddElderNode(adult205),
		event.NewVoteRemoveElderNode(elder130),
		event.NewVoteNewSectionInfo(change.NewSection),
	}, votes)
}

func TestMarkElderChangeAdvancesSectionVersion(t *testing.T) {
	a := newTestAction()
	a.SetNodeOfflineState(elder130)

	change, ok := a.CheckElder(3)
	require.True(t, ok)
	a.MarkElderChange(change)

	require.Equal(t, int64(1), a.OurSection().Version)
	state, _ := a.NodeState(adult205.Name())
	require.True(t, state.IsElder)
	state, _ = a.NodeState(elder130.Name())
	require.False(t, state.IsElder)

	// A second pass over the same table finds nothing left to change.
	_, ok = a.CheckElder(3)
	require.False(t, ok)
}

func TestGetNodeToRelocatePicksFirstEligibleOnlineByName(t *testing.T) {
	a := newTestAction()

	_, ok := a.GetNodeToRelocate()
	require.False(t, ok, "nobody has done enough work yet")

	a.ApplyTestEvent(event.NewSetWorkUnitEnoughToRelocate(adult205))
	a.ApplyTestEvent(event.NewSetWorkUnitEnoughToRelocate(elder131))

	candidate, ok := a.GetNodeToRelocate()
	require.True(t, ok)
	require.Equal(t, elder131.Name(), candidate.Name(), "name order decides between eligible nodes")
}

func TestGetBestRelocatingNodeOrdering(t *testing.T) {
	hop := types.NewNode(9, 1001)
	backOnline1 := types.NewNode(10, 1)
	backOnline2 := types.NewNode(10, 2)

	a := newTestAction().
		ExtendCurrentNodesWith(types.NodeState{State: types.RelocatingHop}, []types.Node{hop}).
		ExtendCurrentNodesWith(types.NodeState{State: types.RelocatingBackOnline}, []types.Node{backOnline1, backOnline2})
	a.SetCandidateRelocatingState(types.CandidateOf(adult205))

	tracked := map[types.Candidate]int{}

	candidate, _, ok := a.GetBestRelocatingNodeAndTarget(tracked)
	require.True(t, ok)
	require.Equal(t, adult205.Name(), candidate.Name(), "AgeIncrease outranks Hop and BackOnline")
	tracked[candidate] = 0

	candidate, _, ok = a.GetBestRelocatingNodeAndTarget(tracked)
	require.True(t, ok)
	require.Equal(t, hop.Name(), candidate.Name(), "Hop outranks BackOnline")
	tracked[candidate] = 0

	candidate, _, ok = a.GetBestRelocatingNodeAndTarget(tracked)
	require.True(t, ok)
	require.Equal(t, backOnline2.Name(), candidate.Name(), "equal state and age break ties by name")
	tracked[candidate] = 0

	candidate, _, ok = a.GetBestRelocatingNodeAndTarget(tracked)
	require.True(t, ok)
	require.Equal(t, backOnline1.Name(), candidate.Name())
	tracked[candidate] = 0

	_, _, ok = a.GetBestRelocatingNodeAndTarget(tracked)
	require.False(t, ok, "elders and non-relocating nodes are never picked")
}

func TestGetBestRelocatingNodeSkipsElders(t *testing.T) {
	a := newTestAction()
	a.SetCandidateRelocatingState(types.CandidateOf(elder130))

	_, _, ok := a.GetBestRelocatingNodeAndTarget(map[types.Candidate]int{})
	require.False(t, ok)
}

func TestCountWaitingProofingOrHop(t *testing.T) {
	a := newTestAction()
	require.Zero(t, a.CountWaitingProofingOrHop())

	a.AddNodeWaitingCandidateInfo(types.NewCandidate(9, 1001))
	require.Equal(t, 1, a.CountWaitingProofingOrHop())
}

func TestSetCandidateOnlineStateRekeysRow(t *testing.T) {
	a := newTestAction()
	info := a.AddNodeWaitingCandidateInfo(types.NewCandidate(9, 1001))

	newID := types.NewCandidate(10, 1)
	a.SetCandidateOnlineState(info.TargetIntervalCentre, newID)

	_, ok := a.NodeState(info.TargetIntervalCentre)
	require.False(t, ok, "waiting row is gone")
	state, ok := a.NodeState(newID.Name())
	require.True(t, ok)
	require.Equal(t, types.Online, state.State)
}

func TestSiblingMergeInfo(t *testing.T) {
	a := newTestAction()
	require.False(t, a.HasMergeInfos())
	require.False(t, a.HasSiblingMergeInfo())

	a.StoreMergeInfos(types.SectionInfo{Section: 2})
	require.True(t, a.HasMergeInfos())
	require.False(t, a.HasSiblingMergeInfo(), "distance 2 is not a sibling")

	a.StoreMergeInfos(types.SectionInfo{Section: 1})
	require.True(t, a.HasSiblingMergeInfo())

	merged := a.MergeSiblingInfoToNewSection()
	require.Equal(t, types.Section(2), merged.Section)
	require.False(t, a.HasMergeInfos(), "combining consumes the stored info")
}

func TestEventsJournalLifecycle(t *testing.T) {
	a := newTestAction()
	require.Nil(t, a.Events(), "seeding leaves no journal behind")

	a.SendRpc(event.NewRefuseCandidate(types.NewCandidate(9, 1001)))
	a.VoteParsec(event.NewVoteCheckElder())
	require.Len(t, a.Events(), 2)

	a.RemoveProcessedState()
	require.Nil(t, a.Events())
}

func TestScheduleAndKillScheduledEvent(t *testing.T) {
	a := newTestAction()

	a.ScheduleEvent(event.Simple(event.TimeoutCheckElder))
	a.KillScheduledEvent(event.Simple(event.TimeoutCheckElder))

	require.Equal(t, []event.Event{
		event.NewScheduled(event.Simple(event.TimeoutCheckElder)).ToEvent(),
		event.NewKilled(event.Simple(event.TimeoutCheckElder)).ToEvent(),
	}, a.Events())
}

func TestShortestPrefixTestEvent(t *testing.T) {
	a := newTestAction()
	_, ok := a.CheckShortestPrefix()
	require.False(t, ok)

	a.ApplyTestEvent(event.NewSetShortestPrefix(types.Section(1), true))
	section, ok := a.CheckShortestPrefix()
	require.True(t, ok)
	require.Equal(t, types.Section(1), section)

	a.ApplyTestEvent(event.NewSetShortestPrefix(types.Section(0), false))
	_, ok = a.CheckShortestPrefix()
	require.False(t, ok)
}
