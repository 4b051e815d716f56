package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateOrderingPutsOnlineFirst(t *testing.T) {
	ticket := RelocatedInfo{Candidate: NewCandidate(9, 1001)}
	others := []State{
		RelocatingAgeIncrease,
		RelocatingHop,
		RelocatingBackOnline,
		Relocated(ticket),
		WaitingCandidateInfo(ticket),
		WaitingProofing,
		Offline,
	}

	for _, other := range others {
		require.True(t, Online.Less(other), "Online must order before %v", other)
		require.False(t, other.Less(Online))
	}
}

func TestStateIsRelocating(t *testing.T) {
	require.True(t, RelocatingAgeIncrease.IsRelocating())
	require.True(t, RelocatingHop.IsRelocating())
	require.True(t, RelocatingBackOnline.IsRelocating())

	require.False(t, Online.IsRelocating())
	require.False(t, Offline.IsRelocating())
	require.False(t, WaitingProofing.IsRelocating())
	require.False(t, Relocated(RelocatedInfo{}).IsRelocating())
}

func TestStateIsNotYetFullNode(t *testing.T) {
	require.True(t, WaitingCandidateInfo(RelocatedInfo{}).IsNotYetFullNode())
	require.True(t, WaitingProofing.IsNotYetFullNode())
	require.True(t, RelocatingHop.IsNotYetFullNode())

	require.False(t, Online.IsNotYetFullNode())
	require.False(t, RelocatingAgeIncrease.IsNotYetFullNode())
	require.False(t, Offline.IsNotYetFullNode())
}

func TestStateTickets(t *testing.T) {
	ticket := RelocatedInfo{
		Candidate:            NewCandidate(9, 1001),
		ExpectedAge:          10,
		TargetIntervalCentre: 1234,
	}

	got, ok := WaitingCandidateInfo(ticket).WaitingCandidateInfoTicket()
	require.True(t, ok)
	require.Equal(t, ticket, got)

	_, ok = Online.WaitingCandidateInfoTicket()
	require.False(t, ok)

	got, ok = Relocated(ticket).RelocatedTicket()
	require.True(t, ok)
	require.Equal(t, ticket, got)

	_, ok = WaitingProofing.RelocatedTicket()
	require.False(t, ok)
}

func TestStateEqualComparesTickets(t *testing.T) {
	a := RelocatedInfo{Candidate: NewCandidate(9, 1001)}
	b := RelocatedInfo{Candidate: NewCandidate(9, 1002)}

	require.True(t, Relocated(a).Equal(Relocated(a)))
	require.False(t, Relocated(a).Equal(Relocated(b)))
	require.False(t, Relocated(a).Equal(WaitingCandidateInfo(a)))
	require.True(t, Online.Equal(Online))
}

func TestAttributesLess(t *testing.T) {
	older := Attributes{Age: 30, Name: 130}
	younger := Attributes{Age: 5, Name: 205}
	require.True(t, older.Less(younger), "older nodes rank ahead")

	left := Attributes{Age: 10, Name: 1}
	right := Attributes{Age: 10, Name: 110}
	require.True(t, left.Less(right), "equal ages break ties by name")
}
