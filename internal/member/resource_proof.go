package member

import (
	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/types"
)

// StartResourceProof drives one candidate at a time through the
// multi-part resource-proof challenge once it has connected, ending in a
// vote to admit it (or a purge if it fails to connect in time).
type StartResourceProof struct{ s *MemberState }

func (s *MemberState) AsStartResourceProof() StartResourceProof {
	return StartResourceProof{s}
}

// StartEventLoop schedules the first resource-proof poll.
func (r StartResourceProof) StartEventLoop() {
	r.s.Action.ScheduleEvent(event.Simple(event.CheckResourceProofTimeout))
}

func (r StartResourceProof) TryNext(e event.WaitedEvent) event.TryResult {
	switch e.Kind {
	case event.WaitedRpc:
		return r.tryRpc(e.Rpc)
	case event.WaitedParsecConsensus:
		return r.tryConsensus(e.ParsecVote)
	default:
		return r.tryLocalEvent(e.Local)
	}
}

func (r StartResourceProof) tryRpc(rpc event.Rpc) event.TryResult {
	switch rpc.Kind {
	case event.RpcResourceProofResponse:
		r.rpcProof(rpc.Candidate, rpc.Proof)
		return event.Handled
	case event.RpcCandidateInfo:
		r.rpcInfo(rpc.CandidateInfo)
		return event.Handled
	default:
		return event.Unhandled
	}
}

func (r StartResourceProof) tryConsensus(vote event.ParsecVote) event.TryResult {
	cand, hasCand := vote.CandidateName()
	forCandidate := r.hasCandidate() && hasCand && cand == r.candidate()

	switch vote.Kind {
	case event.VoteCheckResourceProof:
		r.setResourceProofCandidate()
		r.checkRequestResourceProof()
		return event.Handled
	case event.VoteOnline:
		if forCandidate {
			r.makeNodeOnline(vote.RelocatedCand)
		} else {
			r.discard()
		}
		return event.Handled
	case event.VotePurgeCandidate:
		if forCandidate {
			r.purgeNodeInfo()
		} else {
			r.discard()
		}
		return event.Handled
	default:
		return event.Unhandled
	}
}

func (r StartResourceProof) tryLocalEvent(local event.LocalEvent) event.TryResult {
	switch local.Kind {
	case event.TimeoutAccept:
		r.s.Action.VoteParsec(event.NewVotePurgeCandidate(r.candidate()))
		return event.Handled
	case event.CheckResourceProofTimeout:
		r.s.Action.VoteParsec(event.NewVoteCheckResourceProof())
		return event.Handled
	default:
		return event.Unhandled
	}
}

func (r StartResourceProof) rpcInfo(info types.CandidateInfo) {
	if r.hasCandidate() && r.candidate() == info.OldPublicID && r.s.Action.IsValidWaitedInfo(info) {
		r.s.StartResourceProof.HasCandidateInfo = true
		r.s.StartResourceProof.CandidateInfo = info
		r.s.Action.SendCandidateProofRequest(r.newCandidate())
		return
	}
	r.discard()
}

func (r StartResourceProof) rpcProof(candidate types.Candidate, proof types.Proof) {
	fromCandidate := r.s.StartResourceProof.HasCandidateInfo && candidate == r.newCandidate()

	if fromCandidate && !r.s.StartResourceProof.VotedOnline && proof.IsValid() {
		if proof == types.ValidEnd {
			r.s.StartResourceProof.VotedOnline = true
			r.s.Action.VoteParsec(event.NewVoteOnline(r.candidate(), r.newCandidate()))
		}
		r.s.Action.SendCandidateProofReceipt(r.newCandidate())
		return
	}
	r.discard()
}

func (r StartResourceProof) discard() {}

func (r StartResourceProof) setResourceProofCandidate() {
	name, cand, ok := r.s.Action.ResourceProofCandidate()
	r.s.StartResourceProof.HasCandidate = ok
	r.s.StartResourceProof.WaitingCandidateName = name
	r.s.StartResourceProof.Candidate = cand
}

func (r StartResourceProof) makeNodeOnline(newPublicID types.Candidate) {
	r.s.Action.SetCandidateOnlineState(r.s.StartResourceProof.WaitingCandidateName, newPublicID)
	r.s.Action.SendNodeApprovalRpc(newPublicID)
	r.finishResourceProof()
}

func (r StartResourceProof) purgeNodeInfo() {
	r.s.Action.PurgeNodeInfo(r.s.StartResourceProof.WaitingCandidateName)
	r.finishResourceProof()
}

func (r StartResourceProof) finishResourceProof() {
	r.s.StartResourceProof.HasCandidate = false
	r.s.StartResourceProof.HasCandidateInfo = false
	r.s.StartResourceProof.VotedOnline = false
	r.s.Action.ScheduleEvent(event.Simple(event.CheckResourceProofTimeout))
}

func (r StartResourceProof) checkRequestResourceProof() {
	if r.hasCandidate() {
		r.s.Action.ScheduleEvent(event.Simple(event.TimeoutAccept))
	} else {
		r.finishResourceProof()
	}
}

func (r StartResourceProof) candidate() types.Candidate { return r.s.StartResourceProof.Candidate }

func (r StartResourceProof) hasCandidate() bool { return r.s.StartResourceProof.HasCandidate }

func (r StartResourceProof) newCandidate() types.Candidate {
	return r.s.StartResourceProof.CandidateInfo.NewPublicID
}
