package event

import "github.com/luxfi/membership/types"

// ParsecVoteKind discriminates the ParsecVote sum type: every value a node
// casts through the consensus layer and later observes as decided.
type ParsecVoteKind int

const (
	VoteExpectCandidate ParsecVoteKind = iota
	VoteOnline
	VotePurgeCandidate
	VoteCheckResourceProof
	VoteAddElderNode
	VoteRemoveElderNode
	VoteNewSectionInfo
	VoteWorkUnitIncrement
	VoteCheckRelocate
	VoteRefuseCandidate
	VoteRelocateResponse
	VoteRelocatedInfo
	VoteCheckElder
	VoteOffline
	VoteBackOnline
	VoteNeighbourMerge
)

func (k ParsecVoteKind) String() string {
	names := [...]string{
		"ExpectCandidate", "Online", "PurgeCandidate", "CheckResourceProof",
		"AddElderNode", "RemoveElderNode", "NewSectionInfo", "WorkUnitIncrement",
		"CheckRelocate", "RefuseCandidate", "RelocateResponse", "RelocatedInfo",
		"CheckElder", "Offline", "BackOnline", "NeighbourMerge",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// ParsecVote is a decided consensus event.
type ParsecVote struct {
	Kind          ParsecVoteKind
	Candidate     types.Candidate
	RelocatedCand types.Candidate // second candidate arg of Online(candidate, relocated_node)
	Node          types.Node
	SectionInfo   types.SectionInfo
	RelocatedInfo types.RelocatedInfo
}

func (v ParsecVote) ToEvent() Event { return Event{Kind: EventParsecConsensus, ParsecVote: v} }

func NewVoteExpectCandidate(c types.Candidate) ParsecVote {
	return ParsecVote{Kind: VoteExpectCandidate, Candidate: c}
}

func NewVoteOnline(candidate, relocatedCandidate types.Candidate) ParsecVote {
	return ParsecVote{Kind: VoteOnline, Candidate: candidate, RelocatedCand: relocatedCandidate}
}

func NewVotePurgeCandidate(c types.Candidate) ParsecVote {
	return ParsecVote{Kind: VotePurgeCandidate, Candidate: c}
}

func NewVoteCheckResourceProof() ParsecVote { return ParsecVote{Kind: VoteCheckResourceProof} }

func NewVoteAddElderNode(n types.Node) ParsecVote {
	return ParsecVote{Kind: VoteAddElderNode, Node: n}
}

func NewVoteRemoveElderNode(n types.Node) ParsecVote {
	return ParsecVote{Kind: VoteRemoveElderNode, Node: n}
}

func NewVoteNewSectionInfo(info types.SectionInfo) ParsecVote {
	return ParsecVote{Kind: VoteNewSectionInfo, SectionInfo: info}
}

func NewVoteWorkUnitIncrement() ParsecVote { return ParsecVote{Kind: VoteWorkUnitIncrement} }

func NewVoteCheckRelocate() ParsecVote { return ParsecVote{Kind: VoteCheckRelocate} }

func NewVoteRefuseCandidate(c types.Candidate) ParsecVote {
	return ParsecVote{Kind: VoteRefuseCandidate, Candidate: c}
}

func NewVoteRelocateResponse(info types.RelocatedInfo) ParsecVote {
	return ParsecVote{Kind: VoteRelocateResponse, RelocatedInfo: info, Candidate: info.Candidate}
}

func NewVoteRelocatedInfo(info types.RelocatedInfo) ParsecVote {
	return ParsecVote{Kind: VoteRelocatedInfo, RelocatedInfo: info}
}

func NewVoteCheckElder() ParsecVote { return ParsecVote{Kind: VoteCheckElder} }

func NewVoteOffline(n types.Node) ParsecVote { return ParsecVote{Kind: VoteOffline, Node: n} }

func NewVoteBackOnline(n types.Node) ParsecVote { return ParsecVote{Kind: VoteBackOnline, Node: n} }

func NewVoteNeighbourMerge(info types.SectionInfo) ParsecVote {
	return ParsecVote{Kind: VoteNeighbourMerge, SectionInfo: info}
}

// CandidateName returns the candidate this vote concerns, if any — used to
// filter consensus about a candidate that is no longer current.
func (v ParsecVote) CandidateName() (types.Candidate, bool) {
	switch v.Kind {
	case VoteExpectCandidate, VoteOnline, VotePurgeCandidate, VoteRefuseCandidate:
		return v.Candidate, true
	case VoteRelocateResponse:
		return v.RelocatedInfo.Candidate, true
	default:
		return types.Candidate{}, false
	}
}
