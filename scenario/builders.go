package scenario

import (
	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/types"
)

// Events concatenates its arguments into a single script, so tests can
// build arrange/act sequences out of small named pieces.
func Events(groups ...[]event.Event) []event.Event {
	var out []event.Event
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func SetChurnNeeded(c types.ChurnNeeded) event.Event {
	return event.NewSetChurnNeeded(c).ToEvent()
}

func SetWorkUnitEnoughToRelocate(n types.Node) event.Event {
	return event.NewSetWorkUnitEnoughToRelocate(n).ToEvent()
}

func SetShortestPrefix(s types.Section) event.Event {
	return event.NewSetShortestPrefix(s, true).ToEvent()
}

func SetResourceProof(name types.Name, parts int64) event.Event {
	return event.NewSetResourceProof(name, types.NewProofSource(parts)).ToEvent()
}

func CheckElderVote() event.Event         { return event.NewVoteCheckElder().ToEvent() }
func CheckRelocateVote() event.Event      { return event.NewVoteCheckRelocate().ToEvent() }
func WorkUnitIncrementVote() event.Event  { return event.NewVoteWorkUnitIncrement().ToEvent() }
func CheckResourceProofVote() event.Event { return event.NewVoteCheckResourceProof().ToEvent() }

func NeighbourMergeVote(info types.SectionInfo) event.Event {
	return event.NewVoteNeighbourMerge(info).ToEvent()
}

func NewSectionInfoVote(info types.SectionInfo) event.Event {
	return event.NewVoteNewSectionInfo(info).ToEvent()
}

func MergeRpc(info types.SectionInfo) event.Event {
	return event.NewMerge(info).ToEvent()
}

func OfflineVote(n types.Node) event.Event    { return event.NewVoteOffline(n).ToEvent() }
func BackOnlineVote(n types.Node) event.Event { return event.NewVoteBackOnline(n).ToEvent() }

func NodeDetectedOffline(n types.Node) event.Event {
	return event.NewNodeDetectedOffline(n).ToEvent()
}

func NodeDetectedBackOnline(n types.Node) event.Event {
	return event.NewNodeDetectedBackOnline(n).ToEvent()
}

func ExpectCandidateRpc(c types.Candidate) event.Event {
	return event.NewExpectCandidate(c).ToEvent()
}

func RefuseCandidateRpc(c types.Candidate) event.Event {
	return event.NewRefuseCandidate(c).ToEvent()
}

func RelocateResponseRpc(info types.RelocatedInfo) event.Event {
	return event.NewRelocateResponse(info).ToEvent()
}

func ExpectCandidateVote(c types.Candidate) event.Event {
	return event.NewVoteExpectCandidate(c).ToEvent()
}

func OnlineVote(oldID, newID types.Candidate) event.Event {
	return event.NewVoteOnline(oldID, newID).ToEvent()
}

func PurgeCandidateVote(c types.Candidate) event.Event {
	return event.NewVotePurgeCandidate(c).ToEvent()
}

func AddElderNodeVote(n types.Node) event.Event {
	return event.NewVoteAddElderNode(n).ToEvent()
}

func RemoveElderNodeVote(n types.Node) event.Event {
	return event.NewVoteRemoveElderNode(n).ToEvent()
}

func RelocateResponseVote(info types.RelocatedInfo) event.Event {
	return event.NewVoteRelocateResponse(info).ToEvent()
}

func RelocatedInfoVote(info types.RelocatedInfo) event.Event {
	return event.NewVoteRelocatedInfo(info).ToEvent()
}

func CandidateInfoRpc(info types.CandidateInfo) event.Event {
	return event.NewCandidateInfo(info).ToEvent()
}

func ResourceProofResponseRpc(candidate types.Candidate, destination types.Name, proof types.Proof) event.Event {
	return event.NewResourceProofResponse(candidate, destination, proof).ToEvent()
}

func Scheduled(kind event.LocalEventKind) event.Event {
	return event.NewScheduled(event.Simple(kind)).ToEvent()
}

func LocalEvt(kind event.LocalEventKind) event.Event {
	return event.Simple(kind).ToEvent()
}
