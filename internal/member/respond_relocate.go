package member

import (
	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/types"
)

// RespondToRelocateRequests is the destination-side admission gate: it
// decides, for every ExpectCandidate consensus, whether to admit the
// incoming node, resend an already-issued ticket, or refuse it outright.
// Lowest dispatch priority — everything else gets first refusal on an
// event before this sees it.
type RespondToRelocateRequests struct{ s *MemberState }

func (s *MemberState) AsRespondToRelocateRequests() RespondToRelocateRequests {
	return RespondToRelocateRequests{s}
}

func (r RespondToRelocateRequests) TryNext(e event.WaitedEvent) event.TryResult {
	switch e.Kind {
	case event.WaitedRpc:
		return r.tryRpc(e.Rpc)
	case event.WaitedParsecConsensus:
		return r.tryConsensus(e.ParsecVote)
	default:
		return event.Unhandled
	}
}

func (r RespondToRelocateRequests) tryRpc(rpc event.Rpc) event.TryResult {
	if rpc.Kind != event.RpcExpectCandidate {
		return event.Unhandled
	}
	r.s.Action.VoteParsec(event.NewVoteExpectCandidate(rpc.Candidate))
	return event.Handled
}

func (r RespondToRelocateRequests) tryConsensus(vote event.ParsecVote) event.TryResult {
	if vote.Kind != event.VoteExpectCandidate {
		return event.Unhandled
	}
	r.consensusedExpectCandidate(vote.Candidate)
	return event.Handled
}

func (r RespondToRelocateRequests) consensusedExpectCandidate(candidate types.Candidate) {
	if _, ok := r.s.Action.CheckShortestPrefix(); ok {
		r.s.Action.SendRpc(event.NewExpectCandidate(candidate))
		return
	}

	if info, ok := r.s.Action.GetWaitingCandidateInfo(candidate); ok {
		r.s.Action.SendRelocateResponseRpc(info)
		return
	}

	if r.s.Action.CountWaitingProofingOrHop() == 0 {
		info := r.s.Action.AddNodeWaitingCandidateInfo(candidate)
		r.s.Action.SendRelocateResponseRpc(info)
		return
	}

	r.s.Action.SendRpc(event.NewRefuseCandidate(candidate))
}
