package scenario

import (
	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/internal/member"
)

// AssertState is the subset of a run's outcome tests compare against: the
// events the Action journaled while the script ran. A non-nil Failure on
// the returned State is always compared separately and expected to be nil
// unless a test explicitly arranges for a rejected event.
type AssertState struct {
	ActionEvents []event.Event
}

// ProcessEvents feeds events to state in order, stopping as soon as one is
// Unhandled (recording it as the failure) or the state already carries a
// failure from an earlier run. It mutates and returns the same state.
func ProcessEvents(state *member.MemberState, events []event.Event) *member.MemberState {
	for _, e := range events {
		if state.TryNext(e) == event.Unhandled {
			state.FailureEvent(e)
		}
		if state.Failure != nil {
			break
		}
	}
	return state
}

// ArrangeInitialState runs setup events against state and discards the
// journal they produced, so a test's asserted events start from a clean
// slate. Panics if the setup itself fails, since a broken fixture is a bug
// in the test, not in the code under test.
func ArrangeInitialState(state *member.MemberState, events []event.Event) *member.MemberState {
	state = ProcessEvents(state, events)
	if state.Failure != nil {
		panic("scenario: ArrangeInitialState: setup event was unhandled")
	}
	state.Action.RemoveProcessedState()
	return state
}

// Outcome runs events against state and returns the journaled events plus
// whatever failure (if any) resulted, ready to compare against an expected
// AssertState.
func Outcome(state *member.MemberState, events []event.Event) (AssertState, *event.Event) {
	state = ProcessEvents(state, events)
	return AssertState{ActionEvents: state.Action.Events()}, state.Failure
}
