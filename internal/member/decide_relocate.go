package member

import "github.com/luxfi/membership/event"

// DecideRelocate journals a WorkUnitIncremented marker on each
// WorkUnitIncrement consensus (no node's work counter changes), then checks
// whether any Online node has done enough work to start relocating.
type DecideRelocate struct{ s *MemberState }

func (s *MemberState) AsDecideRelocate() DecideRelocate { return DecideRelocate{s} }

func (d DecideRelocate) StartEventLoop() {
	d.startWorkUnitTimeout()
}

func (d DecideRelocate) TryNext(e event.WaitedEvent) event.TryResult {
	switch e.Kind {
	case event.WaitedLocalEvent:
		return d.tryLocalEvent(e.Local)
	case event.WaitedParsecConsensus:
		return d.tryConsensus(e.ParsecVote)
	default:
		return event.Unhandled
	}
}

func (d DecideRelocate) tryLocalEvent(local event.LocalEvent) event.TryResult {
	if local.Kind != event.TimeoutWorkUnit {
		return event.Unhandled
	}
	d.s.Action.VoteParsec(event.NewVoteWorkUnitIncrement())
	d.startWorkUnitTimeout()
	return event.Handled
}

func (d DecideRelocate) tryConsensus(vote event.ParsecVote) event.TryResult {
	if vote.Kind != event.VoteWorkUnitIncrement {
		return event.Unhandled
	}
	d.s.Action.IncrementNodesWorkUnits()
	d.checkGetNodeToRelocate()
	return event.Handled
}

func (d DecideRelocate) checkGetNodeToRelocate() {
	if d.s.Action.HasRelocatingNode() {
		return
	}
	if candidate, ok := d.s.Action.GetNodeToRelocate(); ok {
		d.s.Action.SetCandidateRelocatingState(candidate)
	}
}

func (d DecideRelocate) startWorkUnitTimeout() {
	d.s.Action.ScheduleEvent(event.Simple(event.TimeoutWorkUnit))
}
