package member

import (
	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/types"
)

// StartMergeSplitAndChangeElders is the elder-churn top level: on every
// CheckElder tick it decides whether the section should merge, split, or
// just re-rank its elder set, and hands off to whichever of the three
// sub-routines below applies.
type StartMergeSplitAndChangeElders struct{ s *MemberState }

func (s *MemberState) AsStartMergeSplitAndChangeElders() StartMergeSplitAndChangeElders {
	return StartMergeSplitAndChangeElders{s}
}

func (m StartMergeSplitAndChangeElders) StartEventLoop() {
	m.startCheckElderTimeout()
}

func (m StartMergeSplitAndChangeElders) TryNext(e event.WaitedEvent) event.TryResult {
	switch e.Kind {
	case event.WaitedParsecConsensus:
		return m.tryConsensus(e.ParsecVote)
	case event.WaitedRpc:
		return m.tryRpc(e.Rpc)
	case event.WaitedLocalEvent:
		if e.Local.Kind == event.TimeoutCheckElder {
			m.s.Action.VoteParsec(event.NewVoteCheckElder())
			return event.Handled
		}
		return event.Unhandled
	default:
		return event.Unhandled
	}
}

func (m StartMergeSplitAndChangeElders) tryConsensus(vote event.ParsecVote) event.TryResult {
	switch vote.Kind {
	case event.VoteNeighbourMerge:
		m.s.Action.StoreMergeInfos(vote.SectionInfo)
		return event.Handled
	case event.VoteCheckElder:
		m.checkMerge()
		return event.Handled
	default:
		return event.Unhandled
	}
}

func (m StartMergeSplitAndChangeElders) tryRpc(rpc event.Rpc) event.TryResult {
	if rpc.Kind != event.RpcMerge {
		return event.Unhandled
	}
	m.s.Action.VoteParsec(event.NewVoteNeighbourMerge(rpc.SectionInfo))
	return event.Handled
}

func (m StartMergeSplitAndChangeElders) checkMerge() {
	if m.s.Action.HasMergeInfos() || m.s.Action.MergeNeeded() {
		m.s.AsProcessMerge().StartEventLoop()
		return
	}
	m.checkElder()
}

func (m StartMergeSplitAndChangeElders) checkElder() {
	if change, ok := m.s.Action.CheckElder(m.s.Config.ElderSize); ok {
		m.s.AsProcessElderChange().StartEventLoop(change)
		return
	}
	if m.s.Action.SplitNeeded() {
		m.s.AsProcessSplit().StartEventLoop()
		return
	}
	m.startCheckElderTimeout()
}

func (m StartMergeSplitAndChangeElders) transitionExitProcessElderChange() {
	m.startCheckElderTimeout()
}

func (m StartMergeSplitAndChangeElders) transitionExitProcessSplit() {
	m.startCheckElderTimeout()
}

func (m StartMergeSplitAndChangeElders) startCheckElderTimeout() {
	m.s.Action.ScheduleEvent(event.Simple(event.TimeoutCheckElder))
}

// ProcessElderChange applies a decided elder-set change once every
// AddElderNode/RemoveElderNode/NewSectionInfo vote it requested has come
// back.
type ProcessElderChange struct{ s *MemberState }

func (s *MemberState) AsProcessElderChange() ProcessElderChange { return ProcessElderChange{s} }

func (p ProcessElderChange) StartEventLoop(change types.ChangeElder) {
	p.s.StartMergeSplitAndChangeElders.ProcessElderChange.IsActive = true
	p.s.StartMergeSplitAndChangeElders.ProcessElderChange.ChangeElder = change
	p.s.StartMergeSplitAndChangeElders.ProcessElderChange.HasChangeElder = true
	p.voteForElderChange(change)
}

func (p ProcessElderChange) exitEventLoop() {
	p.s.StartMergeSplitAndChangeElders.ProcessElderChange.IsActive = false
	p.s.StartMergeSplitAndChangeElders.ProcessElderChange.HasChangeElder = false
	p.s.AsStartMergeSplitAndChangeElders().transitionExitProcessElderChange()
}

func (p ProcessElderChange) TryNext(e event.WaitedEvent) event.TryResult {
	if e.Kind != event.WaitedParsecConsensus {
		return event.Unhandled
	}
	return p.tryConsensus(e.ParsecVote)
}

func (p ProcessElderChange) tryConsensus(vote event.ParsecVote) event.TryResult {
	votes := p.s.StartMergeSplitAndChangeElders.ProcessElderChange.WaitVotes
	idx := indexOfVote(votes, vote)
	if idx < 0 {
		return event.Unhandled
	}

	votes = removeVoteAt(votes, idx)
	p.s.StartMergeSplitAndChangeElders.ProcessElderChange.WaitVotes = votes

	if len(votes) == 0 {
		p.markElderChange()
		p.exitEventLoop()
	}
	return event.Handled
}

func (p ProcessElderChange) voteForElderChange(change types.ChangeElder) {
	votes := p.s.Action.GetElderChangeVotes(change)
	p.s.StartMergeSplitAndChangeElders.ProcessElderChange.ChangeElder = change
	p.s.StartMergeSplitAndChangeElders.ProcessElderChange.WaitVotes = votes
	for _, v := range votes {
		p.s.Action.VoteParsec(v)
	}
}

func (p ProcessElderChange) markElderChange() {
	change := p.s.StartMergeSplitAndChangeElders.ProcessElderChange.ChangeElder
	p.s.Action.MarkElderChange(change)
}

// ProcessMerge runs a section merge to completion: it announces itself to
// its sibling, combines merge info once both sides have reported, and
// exits once a new SectionInfo is voted in.
type ProcessMerge struct{ s *MemberState }

func (s *MemberState) AsProcessMerge() ProcessMerge { return ProcessMerge{s} }

func (p ProcessMerge) StartEventLoop() {
	p.setIsActive(true)
	p.s.Action.SendMergeRpc()
	p.checkSiblingMergeInfo()
}

func (p ProcessMerge) setIsActive(active bool) {
	p.s.StartMergeSplitAndChangeElders.ProcessMergeActive = active
}

func (p ProcessMerge) checkSiblingMergeInfo() {
	if p.s.Action.HasSiblingMergeInfo() {
		newSection := p.s.Action.MergeSiblingInfoToNewSection()
		p.s.Action.VoteParsec(event.NewVoteNewSectionInfo(newSection))
	}
}

func (p ProcessMerge) TryNext(e event.WaitedEvent) event.TryResult {
	if e.Kind != event.WaitedParsecConsensus {
		return event.Unhandled
	}
	return p.tryConsensus(e.ParsecVote)
}

func (p ProcessMerge) tryConsensus(vote event.ParsecVote) event.TryResult {
	switch vote.Kind {
	case event.VoteNewSectionInfo:
		p.s.Action.CompleteMerge()
		p.setIsActive(false)
		p.s.AsStartMergeSplitAndChangeElders().checkElder()
		return event.Handled
	case event.VoteNeighbourMerge:
		p.s.Action.StoreMergeInfos(vote.SectionInfo)
		p.checkSiblingMergeInfo()
		return event.Handled
	default:
		return event.Unhandled
	}
}

// ProcessSplit runs a section split to completion: it votes for the two
// new section tags and exits once both are decided.
type ProcessSplit struct{ s *MemberState }

func (s *MemberState) AsProcessSplit() ProcessSplit { return ProcessSplit{s} }

func (p ProcessSplit) StartEventLoop() {
	p.s.StartMergeSplitAndChangeElders.ProcessSplit.IsActive = true
	p.voteForSplitSections()
}

func (p ProcessSplit) exitEventLoop() {
	p.s.StartMergeSplitAndChangeElders.ProcessSplit.IsActive = false
	p.s.AsStartMergeSplitAndChangeElders().transitionExitProcessSplit()
}

func (p ProcessSplit) TryNext(e event.WaitedEvent) event.TryResult {
	if e.Kind != event.WaitedParsecConsensus {
		return event.Unhandled
	}
	return p.tryConsensus(e.ParsecVote)
}

func (p ProcessSplit) tryConsensus(vote event.ParsecVote) event.TryResult {
	votes := p.s.StartMergeSplitAndChangeElders.ProcessSplit.WaitVotes
	idx := indexOfVote(votes, vote)
	if idx < 0 {
		return event.Unhandled
	}

	votes = removeVoteAt(votes, idx)
	p.s.StartMergeSplitAndChangeElders.ProcessSplit.WaitVotes = votes

	if len(votes) == 0 {
		p.s.Action.CompleteSplit()
		p.exitEventLoop()
	}
	return event.Handled
}

func (p ProcessSplit) voteForSplitSections() {
	votes := p.s.Action.GetSectionSplitVotes()
	p.s.StartMergeSplitAndChangeElders.ProcessSplit.WaitVotes = votes
	for _, v := range votes {
		p.s.Action.VoteParsec(v)
	}
}

func indexOfVote(votes []event.ParsecVote, vote event.ParsecVote) int {
	for i, v := range votes {
		if v == vote {
			return i
		}
	}
	return -1
}

func removeVoteAt(votes []event.ParsecVote, idx int) []event.ParsecVote {
	out := make([]event.ParsecVote, 0, len(votes)-1)
	out = append(out, votes[:idx]...)
	out = append(out, votes[idx+1:]...)
	return out
}
