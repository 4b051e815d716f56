package member

import (
	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/types"
)

// StartRelocateSrc is the source-side half of relocation: on every
// CheckRelocate tick it picks the best relocating candidate not already in
// flight, asks the destination to admit it, and tracks the outstanding
// attempt until a RelocateResponse or RefuseCandidate resolves it.
type StartRelocateSrc struct{ s *MemberState }

func (s *MemberState) AsStartRelocateSrc() StartRelocateSrc { return StartRelocateSrc{s} }

func (r StartRelocateSrc) StartEventLoop() {
	r.startCheckRelocateTimeout()
}

func (r StartRelocateSrc) TryNext(e event.WaitedEvent) event.TryResult {
	switch e.Kind {
	case event.WaitedLocalEvent:
		return r.tryLocalEvent(e.Local)
	case event.WaitedRpc:
		return r.tryRpc(e.Rpc)
	case event.WaitedParsecConsensus:
		return r.tryConsensus(e.ParsecVote)
	default:
		return event.Unhandled
	}
}

func (r StartRelocateSrc) tryLocalEvent(local event.LocalEvent) event.TryResult {
	if local.Kind != event.TimeoutCheckRelocate {
		return event.Unhandled
	}
	r.s.Action.VoteParsec(event.NewVoteCheckRelocate())
	r.startCheckRelocateTimeout()
	return event.Handled
}

func (r StartRelocateSrc) tryRpc(rpc event.Rpc) event.TryResult {
	switch rpc.Kind {
	case event.RpcRefuseCandidate:
		r.s.Action.VoteParsec(event.NewVoteRefuseCandidate(rpc.Candidate))
		return event.Handled
	case event.RpcRelocateResponse:
		r.s.Action.VoteParsec(event.NewVoteRelocateResponse(rpc.RelocatedInfo))
		return event.Handled
	default:
		return event.Unhandled
	}
}

func (r StartRelocateSrc) tryConsensus(vote event.ParsecVote) event.TryResult {
	switch vote.Kind {
	case event.VoteCheckRelocate:
		r.checkNeedRelocate()
		r.updateWaitAndAllowResend()
		return event.Handled
	case event.VoteRefuseCandidate:
		r.checkIsOurRelocatingNode(vote, vote.Candidate)
		return event.Handled
	case event.VoteRelocateResponse:
		r.checkIsOurRelocatingNode(vote, vote.RelocatedInfo.Candidate)
		return event.Handled
	case event.VoteRelocatedInfo:
		r.s.Action.SendRpc(event.NewRelocatedInfo(vote.RelocatedInfo))
		r.s.Action.PurgeNodeInfo(vote.RelocatedInfo.Candidate.Name())
		return event.Handled
	default:
		return event.Unhandled
	}
}

func (r StartRelocateSrc) checkNeedRelocate() {
	candidate, _, ok := r.s.Action.GetBestRelocatingNodeAndTarget(r.s.StartRelocateSrc.AlreadyRelocating)
	if !ok {
		return
	}
	r.s.Action.SendRpc(event.NewExpectCandidate(candidate))
	if _, already := r.s.StartRelocateSrc.AlreadyRelocating[candidate]; already {
		panic("member: checkNeedRelocate: candidate already tracked")
	}
	r.s.StartRelocateSrc.AlreadyRelocating[candidate] = 0
}

func (r StartRelocateSrc) updateWaitAndAllowResend() {
	next := make(map[types.Candidate]int, len(r.s.StartRelocateSrc.AlreadyRelocating))
	for candidate, count := range r.s.StartRelocateSrc.AlreadyRelocating {
		count++
		if count < r.s.Config.MaxRelocateAttempts {
			next[candidate] = count
		}
	}
	r.s.StartRelocateSrc.AlreadyRelocating = next
}

func (r StartRelocateSrc) checkIsOurRelocatingNode(vote event.ParsecVote, candidate types.Candidate) {
	if !r.s.Action.IsOurRelocatingNode(candidate) {
		return
	}
	switch vote.Kind {
	case event.VoteRefuseCandidate:
		delete(r.s.StartRelocateSrc.AlreadyRelocating, candidate)
	case event.VoteRelocateResponse:
		info := vote.RelocatedInfo
		r.s.Action.SetCandidateRelocatedState(info)
		r.s.Action.VoteParsec(event.NewVoteRelocatedInfo(info))
	}
}

func (r StartRelocateSrc) startCheckRelocateTimeout() {
	r.s.Action.ScheduleEvent(event.Simple(event.TimeoutCheckRelocate))
}
