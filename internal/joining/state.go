// Package joining implements the candidate-side half of relocation: the
// single-member state machine a node runs from the moment it is relocated
// until the destination section approves it.
package joining

import (
	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/internal/action"
	"github.com/luxfi/membership/internal/set"
	"github.com/luxfi/membership/types"
)

// JoinRoutineState tracks an in-flight join attempt: the ticket that
// authorizes it, which destination elders it has reached, and which ones
// still owe it a resent resource-proof response.
type JoinRoutineState struct {
	HasRelocatedInfo bool
	RelocatedInfo    types.RelocatedInfo
	Connected        bool
	NeedResendProofs set.Set[types.Name]

	HasRoutineCompleteOutput bool
	RoutineCompleteOutput    types.GenesisPfxInfo
}

// JoiningState is the root of the candidate-side model.
type JoiningState struct {
	Action      *action.Action
	Failure     *event.Event
	JoinRoutine JoinRoutineState
}

// New builds a JoiningState ready to start once relocated.
func New(a *action.Action) *JoiningState {
	return &JoiningState{Action: a}
}

// Start begins the join attempt for the given relocation ticket.
func (s *JoiningState) Start(info types.RelocatedInfo) {
	s.AsJoiningRelocateCandidate().StartEventLoop(info)
}

// TryNext offers event to the (sole) sub-machine this state runs.
func (s *JoiningState) TryNext(e event.Event) event.TryResult {
	if te, ok := e.ToTestEvent(); ok {
		s.Action.ApplyTestEvent(te)
		return event.Handled
	}

	we, ok := e.ToWaited()
	if !ok {
		return event.Unhandled
	}

	if s.AsJoiningRelocateCandidate().TryNext(we) == event.Handled {
		return event.Handled
	}
	return event.Unhandled
}

func (s *JoiningState) AsJoiningRelocateCandidate() JoiningRelocateCandidate {
	return JoiningRelocateCandidate{s}
}

func (s *JoiningState) FailureEvent(e event.Event) { s.Failure = &e }
