package event

import "github.com/luxfi/membership/types"

// ActionTriggeredKind discriminates the side-effect log Action appends to
// its journal every time a sub-machine calls one of its methods — the
// assertion surface scenario tests replay against.
type ActionTriggeredKind int

const (
	WorkUnitIncremented ActionTriggeredKind = iota
	MergeInfoStored
	OurSectionChanged
	CompleteMerge
	CompleteSplit
	Scheduled
	Killed
	ComputeResourceProofForElder
	NotYetImplementedError
	UnexpectedEventError
)

type ActionTriggered struct {
	Kind        ActionTriggeredKind
	SectionInfo types.SectionInfo
	Local       LocalEvent
	Name        types.Name
}

func (a ActionTriggered) ToEvent() Event { return Event{Kind: EventActionTriggered, Action: a} }

func NewWorkUnitIncremented() ActionTriggered {
	return ActionTriggered{Kind: WorkUnitIncremented}
}

func NewMergeInfoStored(info types.SectionInfo) ActionTriggered {
	return ActionTriggered{Kind: MergeInfoStored, SectionInfo: info}
}

func NewOurSectionChanged(info types.SectionInfo) ActionTriggered {
	return ActionTriggered{Kind: OurSectionChanged, SectionInfo: info}
}

func NewCompleteMerge() ActionTriggered { return ActionTriggered{Kind: CompleteMerge} }

func NewCompleteSplit() ActionTriggered { return ActionTriggered{Kind: CompleteSplit} }

func NewScheduled(l LocalEvent) ActionTriggered {
	return ActionTriggered{Kind: Scheduled, Local: l}
}

func NewKilled(l LocalEvent) ActionTriggered {
	return ActionTriggered{Kind: Killed, Local: l}
}

func NewComputeResourceProofForElder(n types.Name) ActionTriggered {
	return ActionTriggered{Kind: ComputeResourceProofForElder, Name: n}
}

func NewNotYetImplementedError() ActionTriggered {
	return ActionTriggered{Kind: NotYetImplementedError}
}

func NewUnexpectedEventError() ActionTriggered {
	return ActionTriggered{Kind: UnexpectedEventError}
}
