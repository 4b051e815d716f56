package member

import "github.com/luxfi/membership/event"

// CheckOnlineOffline tracks member connectivity churn: it turns a locally
// detected disconnect/reconnect into a vote, then applies the decided vote
// to the node table. Highest dispatch priority — it never defers to
// anything else.
type CheckOnlineOffline struct{ s *MemberState }

func (s *MemberState) AsCheckOnlineOffline() CheckOnlineOffline { return CheckOnlineOffline{s} }

func (c CheckOnlineOffline) TryNext(e event.WaitedEvent) event.TryResult {
	switch e.Kind {
	case event.WaitedParsecConsensus:
		return c.tryConsensus(e.ParsecVote)
	case event.WaitedLocalEvent:
		return c.tryLocalEvent(e.Local)
	default:
		return event.Unhandled
	}
}

func (c CheckOnlineOffline) tryConsensus(vote event.ParsecVote) event.TryResult {
	switch vote.Kind {
	case event.VoteOffline:
		c.s.Action.SetNodeOfflineState(vote.Node)
		return event.Handled
	case event.VoteBackOnline:
		c.s.Action.SetNodeBackOnlineState(vote.Node)
		return event.Handled
	default:
		return event.Unhandled
	}
}

func (c CheckOnlineOffline) tryLocalEvent(local event.LocalEvent) event.TryResult {
	switch local.Kind {
	case event.NodeDetectedOffline:
		c.s.Action.VoteParsec(event.NewVoteOffline(local.Node))
		return event.Handled
	case event.NodeDetectedBackOnline:
		c.s.Action.VoteParsec(event.NewVoteBackOnline(local.Node))
		return event.Handled
	default:
		return event.Unhandled
	}
}
