package event

import "github.com/luxfi/membership/types"

// LocalEventKind discriminates locally-fired events: timer expiries and
// locally-detected churn, none of which travel the wire.
type LocalEventKind int

const (
	TimeoutAccept LocalEventKind = iota
	CheckResourceProofTimeout
	TimeoutWorkUnit
	TimeoutCheckRelocate
	TimeoutCheckElder
	JoiningTimeoutResendInfo
	JoiningTimeoutConnectRefused
	JoiningTimeoutProofRefused
	ResourceProofForElderReady
	NodeDetectedOffline
	NodeDetectedBackOnline
)

func (k LocalEventKind) String() string {
	names := [...]string{
		"TimeoutAccept", "CheckResourceProofTimeout", "TimeoutWorkUnit",
		"TimeoutCheckRelocate", "TimeoutCheckElder", "JoiningTimeoutResendInfo",
		"JoiningTimeoutConnectRefused", "JoiningTimeoutProofRefused",
		"ResourceProofForElderReady", "NodeDetectedOffline", "NodeDetectedBackOnline",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

type LocalEvent struct {
	Kind LocalEventKind
	Name types.Name // ResourceProofForElderReady
	Node types.Node // NodeDetectedOffline / NodeDetectedBackOnline
}

func (l LocalEvent) ToEvent() Event { return Event{Kind: EventLocal, Local: l} }

func NewResourceProofForElderReady(n types.Name) LocalEvent {
	return LocalEvent{Kind: ResourceProofForElderReady, Name: n}
}

func NewNodeDetectedOffline(n types.Node) LocalEvent {
	return LocalEvent{Kind: NodeDetectedOffline, Node: n}
}

func NewNodeDetectedBackOnline(n types.Node) LocalEvent {
	return LocalEvent{Kind: NodeDetectedBackOnline, Node: n}
}

func Simple(kind LocalEventKind) LocalEvent { return LocalEvent{Kind: kind} }
