package scenario

import (
	"fmt"

	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/types"
)

// Script is a named, runnable end-to-end scenario: it builds its own
// starting state and returns the events the journal recorded while running
// it, for cmd/membersim to print.
type Script struct {
	Name        string
	Description string
	Run         func() ([]event.Event, error)
}

var scripts = []Script{
	{
		Name:        "merge",
		Description: "after a consensused neighbour merge, CheckElder sends a Merge RPC and votes the merged section info",
		Run: func() ([]event.Event, error) {
			start := ArrangeInitialState(initialStateOldElders(),
				[]event.Event{NeighbourMergeVote(OtherSectionInfo)})
			got, failure := Outcome(start, []event.Event{CheckElderVote()})
			if failure != nil {
				return nil, fmt.Errorf("scenario merge: event %v was not handled", *failure)
			}
			return got.ActionEvents, nil
		},
	},
	{
		Name:        "split",
		Description: "with a split forced by SetChurnNeeded, CheckElder votes the two new section infos",
		Run: func() ([]event.Event, error) {
			got, failure := Outcome(initialStateOldElders(),
				[]event.Event{SetChurnNeeded(types.ChurnSplit), CheckElderVote()})
			if failure != nil {
				return nil, fmt.Errorf("scenario split: event %v was not handled", *failure)
			}
			return got.ActionEvents, nil
		},
	},
	{
		Name:        "offline-back-online",
		Description: "a node detected offline, then back online, is marked for relocation",
		Run: func() ([]event.Event, error) {
			start := ArrangeInitialState(initialStateOldElders(),
				[]event.Event{OfflineVote(NodeElder130)})
			got, failure := Outcome(start, []event.Event{BackOnlineVote(NodeElder130)})
			if failure != nil {
				return nil, fmt.Errorf("scenario offline-back-online: event %v was not handled", *failure)
			}
			return got.ActionEvents, nil
		},
	},
	{
		Name:        "relocate",
		Description: "a node that has done enough work starts relocating and CheckRelocate sends ExpectCandidate for it",
		Run: func() ([]event.Event, error) {
			got, failure := Outcome(initialStateOldElders(), []event.Event{
				SetWorkUnitEnoughToRelocate(YoungAdult205),
				WorkUnitIncrementVote(),
				CheckRelocateVote(),
			})
			if failure != nil {
				return nil, fmt.Errorf("scenario relocate: event %v was not handled", *failure)
			}
			return got.ActionEvents, nil
		},
	},
	{
		Name:        "admission",
		Description: "a candidate is admitted end to end: ticket, resource proof, approval, elder check",
		Run: func() ([]event.Event, error) {
			got, failure := Outcome(initialStateOldElders(), []event.Event{
				ExpectCandidateVote(Candidate1Old),
				CheckResourceProofVote(),
				CandidateInfoRpc(CandidateInfoValid1),
				ResourceProofResponseRpc(Candidate1, OurName, types.ValidEnd),
				OnlineVote(Candidate1Old, Candidate1),
				CheckElderVote(),
			})
			if failure != nil {
				return nil, fmt.Errorf("scenario admission: event %v was not handled", *failure)
			}
			return got.ActionEvents, nil
		},
	},
	{
		Name:        "joining",
		Description: "a relocated candidate connects to its destination section's elders",
		Run: func() ([]event.Event, error) {
			start := initialJoiningStateWithDst200()
			start.Start(CandidateRelocatedInfo132)
			if start.Failure != nil {
				return nil, fmt.Errorf("scenario joining: event %v was not handled", *start.Failure)
			}
			return start.Action.Events(), nil
		},
	},
}

// Scripts returns every named scenario membersim can run, in registration
// order.
func Scripts() []Script {
	out := make([]Script, len(scripts))
	copy(out, scripts)
	return out
}

// Lookup finds a Script by name.
func Lookup(name string) (Script, bool) {
	for _, s := range scripts {
		if s.Name == name {
			return s, true
		}
	}
	return Script{}, false
}
