package event

import "github.com/luxfi/membership/types"

// RpcKind discriminates the Rpc sum type.
type RpcKind int

const (
	RpcRefuseCandidate RpcKind = iota
	RpcRelocateResponse
	RpcRelocatedInfo
	RpcExpectCandidate
	RpcNodeConnected
	RpcResourceProof
	RpcResourceProofReceipt
	RpcNodeApproval
	RpcResourceProofResponse
	RpcCandidateInfo
	RpcConnectionInfoRequest
	RpcConnectionInfoResponse
	RpcMerge
)

func (k RpcKind) String() string {
	switch k {
	case RpcRefuseCandidate:
		return "RefuseCandidate"
	case RpcRelocateResponse:
		return "RelocateResponse"
	case RpcRelocatedInfo:
		return "RelocatedInfo"
	case RpcExpectCandidate:
		return "ExpectCandidate"
	case RpcNodeConnected:
		return "NodeConnected"
	case RpcResourceProof:
		return "ResourceProof"
	case RpcResourceProofReceipt:
		return "ResourceProofReceipt"
	case RpcNodeApproval:
		return "NodeApproval"
	case RpcResourceProofResponse:
		return "ResourceProofResponse"
	case RpcCandidateInfo:
		return "CandidateInfo"
	case RpcConnectionInfoRequest:
		return "ConnectionInfoRequest"
	case RpcConnectionInfoResponse:
		return "ConnectionInfoResponse"
	case RpcMerge:
		return "Merge"
	default:
		return "Unknown"
	}
}

// Rpc is a message exchanged between sections or between a candidate and a
// section. It is a flat sum type: only the fields relevant to Kind are
// meaningful.
type Rpc struct {
	Kind           RpcKind
	Candidate      types.Candidate
	RelocatedInfo  types.RelocatedInfo
	Genesis        types.GenesisPfxInfo
	Source         types.Name
	Destination_   types.Name
	ProofRequest   types.ProofRequest
	Proof          types.Proof
	CandidateInfo  types.CandidateInfo
	ConnectionInfo int64
	SectionInfo    types.SectionInfo
}

func (r Rpc) ToEvent() Event { return Event{Kind: EventRpc, Rpc: r} }

func NewRefuseCandidate(c types.Candidate) Rpc {
	return Rpc{Kind: RpcRefuseCandidate, Candidate: c}
}

func NewRelocateResponse(info types.RelocatedInfo) Rpc {
	return Rpc{Kind: RpcRelocateResponse, RelocatedInfo: info}
}

func NewRelocatedInfo(info types.RelocatedInfo) Rpc {
	return Rpc{Kind: RpcRelocatedInfo, RelocatedInfo: info}
}

func NewExpectCandidate(c types.Candidate) Rpc {
	return Rpc{Kind: RpcExpectCandidate, Candidate: c}
}

func NewNodeConnected(c types.Candidate, genesis types.GenesisPfxInfo) Rpc {
	return Rpc{Kind: RpcNodeConnected, Candidate: c, Genesis: genesis}
}

func NewResourceProof(candidate types.Candidate, source types.Name, proof types.ProofRequest) Rpc {
	return Rpc{Kind: RpcResourceProof, Candidate: candidate, Source: source, ProofRequest: proof}
}

func NewResourceProofReceipt(candidate types.Candidate, source types.Name) Rpc {
	return Rpc{Kind: RpcResourceProofReceipt, Candidate: candidate, Source: source}
}

func NewNodeApproval(c types.Candidate, genesis types.GenesisPfxInfo) Rpc {
	return Rpc{Kind: RpcNodeApproval, Candidate: c, Genesis: genesis}
}

func NewResourceProofResponse(candidate types.Candidate, destination types.Name, proof types.Proof) Rpc {
	return Rpc{Kind: RpcResourceProofResponse, Candidate: candidate, Destination_: destination, Proof: proof}
}

func NewCandidateInfo(info types.CandidateInfo) Rpc {
	return Rpc{Kind: RpcCandidateInfo, CandidateInfo: info, Destination_: info.Destination}
}

func NewConnectionInfoRequest(source, destination types.Name, connectionInfo int64) Rpc {
	return Rpc{Kind: RpcConnectionInfoRequest, Source: source, Destination_: destination, ConnectionInfo: connectionInfo}
}

func NewConnectionInfoResponse(source, destination types.Name, connectionInfo int64) Rpc {
	return Rpc{Kind: RpcConnectionInfoResponse, Source: source, Destination_: destination, ConnectionInfo: connectionInfo}
}

func NewMerge(info types.SectionInfo) Rpc {
	return Rpc{Kind: RpcMerge, SectionInfo: info}
}

// Destination returns the name this Rpc should be routed to, if any.
func (r Rpc) Destination() (types.Name, bool) {
	switch r.Kind {
	case RpcRefuseCandidate, RpcRelocateResponse, RpcRelocatedInfo, RpcExpectCandidate, RpcMerge:
		return 0, false
	case RpcNodeApproval, RpcNodeConnected, RpcResourceProof, RpcResourceProofReceipt:
		return r.Candidate.Name(), true
	case RpcResourceProofResponse, RpcCandidateInfo, RpcConnectionInfoRequest, RpcConnectionInfoResponse:
		return r.Destination_, true
	default:
		return 0, false
	}
}
