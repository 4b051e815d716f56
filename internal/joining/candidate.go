package joining

import (
	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/types"
)

// JoiningRelocateCandidate drives a relocated node's side of admission: it
// connects to (or re-announces itself to) the destination elders, answers
// resource-proof challenges, and exits once NodeApproval arrives. Any event
// it can't place is discarded.
type JoiningRelocateCandidate struct{ s *JoiningState }

func (r JoiningRelocateCandidate) StartEventLoop(info types.RelocatedInfo) {
	r.s.JoinRoutine.HasRelocatedInfo = true
	r.s.JoinRoutine.RelocatedInfo = info

	r.connectOrSendCandidateInfo()
	r.startRefusedTimeout()
}

// TryNext always reports Handled: an event this candidate doesn't
// recognize is treated as a discarded no-op, not as a signal to defer to
// some other sub-machine (there is none).
func (r JoiningRelocateCandidate) TryNext(e event.WaitedEvent) event.TryResult {
	result := event.Unhandled
	switch e.Kind {
	case event.WaitedRpc:
		result = r.tryRpc(e.Rpc)
	case event.WaitedLocalEvent:
		result = r.tryLocalEvent(e.Local)
	}

	if result == event.Unhandled {
		r.discard()
	}
	return event.Handled
}

func (r JoiningRelocateCandidate) tryRpc(rpc event.Rpc) event.TryResult {
	destination, ok := rpc.Destination()
	if !ok || !r.s.Action.IsOurName(destination) {
		return event.Unhandled
	}

	switch rpc.Kind {
	case event.RpcNodeApproval:
		r.exit(rpc.Genesis)
		return event.Handled
	case event.RpcConnectionInfoRequest:
		r.s.Action.SendConnectionInfoResponse(rpc.Source)
		return event.Handled
	case event.RpcConnectionInfoResponse:
		r.sendCandidateInfo(rpc.Source)
		return event.Handled
	case event.RpcResourceProof:
		r.startComputeResourceProof(rpc.Source, rpc.ProofRequest)
		return event.Handled
	case event.RpcResourceProofReceipt:
		r.sendNextProofResponse(rpc.Source)
		return event.Handled
	default:
		return event.Unhandled
	}
}

func (r JoiningRelocateCandidate) tryLocalEvent(local event.LocalEvent) event.TryResult {
	switch local.Kind {
	case event.ResourceProofForElderReady:
		r.sendNextProofResponse(local.Name)
		return event.Handled
	case event.JoiningTimeoutResendInfo:
		r.connectOrSendCandidateInfo()
		return event.Handled
	default:
		return event.Unhandled
	}
}

func (r JoiningRelocateCandidate) exit(info types.GenesisPfxInfo) {
	r.s.Action.KillScheduledEvent(event.Simple(event.JoiningTimeoutResendInfo))
	r.s.Action.KillScheduledEvent(event.Simple(event.JoiningTimeoutProofRefused))

	r.s.JoinRoutine.HasRoutineCompleteOutput = true
	r.s.JoinRoutine.RoutineCompleteOutput = info
}

func (r JoiningRelocateCandidate) discard() {}

func (r JoiningRelocateCandidate) sendNextProofResponse(source types.Name) {
	if next, ok := r.s.Action.GetNextResourceProofPart(source); ok {
		r.s.Action.SendResourceProofResponse(source, next)
	}
}

func (r JoiningRelocateCandidate) sendCandidateInfo(destination types.Name) {
	r.s.Action.SendCandidateInfo(destination, r.s.JoinRoutine.RelocatedInfo)
}

func (r JoiningRelocateCandidate) connectOrSendCandidateInfo() {
	info := r.s.JoinRoutine.RelocatedInfo

	connected, unconnected := r.s.Action.GetConnectedAndUnconnected(info)

	for _, name := range unconnected {
		r.s.Action.SendConnectionInfoRequest(name)
	}
	for _, name := range connected {
		r.s.Action.SendCandidateInfo(name, info)
	}

	r.s.Action.ScheduleEvent(event.Simple(event.JoiningTimeoutResendInfo))
}

func (r JoiningRelocateCandidate) startRefusedTimeout() {
	r.s.Action.ScheduleEvent(event.Simple(event.JoiningTimeoutProofRefused))
}

func (r JoiningRelocateCandidate) startComputeResourceProof(source types.Name, proof types.ProofRequest) {
	r.s.Action.StartComputeResourceProof(source, proof)
}
