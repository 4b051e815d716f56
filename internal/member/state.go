// Package member implements the elder-side membership state machine: the
// top-level dispatcher (MemberState) and the nine cooperative sub-machines
// it offers every event to, in a fixed priority order. Exactly one
// sub-machine ever claims a given event; the rest never see it.
package member

import (
	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/internal/action"
	"github.com/luxfi/membership/internal/config"
	"github.com/luxfi/membership/types"
)

// ProcessElderChangeState tracks an in-flight elder-set change: the votes
// still outstanding before MarkElderChange can apply it.
type ProcessElderChangeState struct {
	IsActive       bool
	WaitVotes      []event.ParsecVote
	ChangeElder    types.ChangeElder
	HasChangeElder bool
}

// ProcessSplitState tracks an in-flight section split.
type ProcessSplitState struct {
	IsActive  bool
	WaitVotes []event.ParsecVote
}

// StartMergeSplitAndChangeEldersState nests the three churn sub-routines
// that can run concurrently with each other (but not with themselves).
type StartMergeSplitAndChangeEldersState struct {
	ProcessSplit       ProcessSplitState
	ProcessElderChange ProcessElderChangeState
	ProcessMergeActive bool
}

// StartResourceProofState tracks the single in-flight admission a section
// is running a resource proof for.
type StartResourceProofState struct {
	HasCandidate         bool
	WaitingCandidateName types.Name
	Candidate            types.Candidate

	HasCandidateInfo bool
	CandidateInfo    types.CandidateInfo

	VotedOnline bool
}

// StartRelocateSrcState tracks relocation attempts this section has
// initiated as a source, with a retry counter per candidate.
type StartRelocateSrcState struct {
	AlreadyRelocating map[types.Candidate]int
}

// MemberState is the root of the elder-side model: one Action, plus the
// scratch state every sub-machine needs to resume where it left off.
type MemberState struct {
	Action  *action.Action
	Config  config.Config
	Failure *event.Event

	StartResourceProof             StartResourceProofState
	StartRelocateSrc               StartRelocateSrcState
	StartMergeSplitAndChangeElders StartMergeSplitAndChangeEldersState
}

// New builds a MemberState ready to dispatch events.
func New(a *action.Action, cfg config.Config) *MemberState {
	return &MemberState{
		Action: a,
		Config: cfg,
		StartRelocateSrc: StartRelocateSrcState{
			AlreadyRelocating: make(map[types.Candidate]int),
		},
	}
}

// TryNext offers event to every sub-machine in priority order, stopping at
// the first one that claims it.
func (s *MemberState) TryNext(e event.Event) event.TryResult {
	if te, ok := e.ToTestEvent(); ok {
		s.Action.ApplyTestEvent(te)
		return event.Handled
	}

	we, ok := e.ToWaited()
	if !ok {
		// NodeChange / ActionTriggered are journal-only and never offered
		// to TryNext.
		return event.Unhandled
	}

	if s.AsCheckOnlineOffline().TryNext(we) == event.Handled {
		return event.Handled
	}
	if s.StartMergeSplitAndChangeElders.ProcessSplit.IsActive {
		if s.AsProcessSplit().TryNext(we) == event.Handled {
			return event.Handled
		}
	}
	if s.StartMergeSplitAndChangeElders.ProcessMergeActive {
		if s.AsProcessMerge().TryNext(we) == event.Handled {
			return event.Handled
		}
	}
	if s.StartMergeSplitAndChangeElders.ProcessElderChange.IsActive {
		if s.AsProcessElderChange().TryNext(we) == event.Handled {
			return event.Handled
		}
	}
	if s.AsStartMergeSplitAndChangeElders().TryNext(we) == event.Handled {
		return event.Handled
	}
	if s.AsStartRelocateSrc().TryNext(we) == event.Handled {
		return event.Handled
	}
	if s.AsDecideRelocate().TryNext(we) == event.Handled {
		return event.Handled
	}
	if s.AsStartResourceProof().TryNext(we) == event.Handled {
		return event.Handled
	}
	if s.AsRespondToRelocateRequests().TryNext(we) == event.Handled {
		return event.Handled
	}

	switch {
	case we.Kind == event.WaitedRpc && we.Rpc.Kind == event.RpcConnectionInfoResponse:
		s.Action.ActionTriggered(event.NewNotYetImplementedError())
		return event.Handled
	case we.Kind == event.WaitedParsecConsensus &&
		(we.ParsecVote.Kind == event.VoteRemoveElderNode ||
			we.ParsecVote.Kind == event.VoteAddElderNode ||
			we.ParsecVote.Kind == event.VoteNewSectionInfo):
		s.Action.ActionTriggered(event.NewUnexpectedEventError())
		return event.Handled
	default:
		return event.Unhandled
	}
}

func (s *MemberState) FailureEvent(e event.Event) { s.Failure = &e }
