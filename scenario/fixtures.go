// Package scenario builds small, fully-specified membership deployments and
// drives them through a scripted event sequence, for use in package tests
// and the membersim CLI.
package scenario

import (
	"github.com/luxfi/membership/internal/action"
	"github.com/luxfi/membership/internal/config"
	"github.com/luxfi/membership/internal/joining"
	"github.com/luxfi/membership/internal/member"
	"github.com/luxfi/membership/internal/rlog"
	"github.com/luxfi/membership/types"
)

var (
	Attributes1Old = types.Attributes{Name: 1001, Age: 9}
	Attributes1    = types.Attributes{Name: 1, Age: 10}
	Attributes2Old = types.Attributes{Name: 1002, Age: 9}
	Attributes2    = types.Attributes{Name: 2, Age: 10}

	Attributes132Old = types.Attributes{Name: 132, Age: 31}
	Attributes132    = types.Attributes{Name: 132, Age: 32}

	Candidate1Old = types.Candidate{Attributes: Attributes1Old}
	Candidate1    = types.Candidate{Attributes: Attributes1}
	Candidate2Old = types.Candidate{Attributes: Attributes2Old}
	Candidate2    = types.Candidate{Attributes: Attributes2}
	Candidate130  = types.Candidate{Attributes: types.Attributes{Name: 130, Age: 30}}
	Candidate205  = types.Candidate{Attributes: types.Attributes{Name: 205, Age: 5}}

	OtherSection1  = types.Section(1)
	OtherSection2  = types.Section(2)
	DstSection200  = types.Section(200)
	MergedSection2 = types.Section(2)

	Node1Old = types.Node{Attributes: Attributes1Old}
	Node1    = types.Node{Attributes: Attributes1}
	Node2Old = types.Node{Attributes: Attributes2Old}
	Node2    = types.Node{Attributes: Attributes2}

	NodeElder109 = types.Node{Attributes: types.Attributes{Name: 109, Age: 9}}
	NodeElder110 = types.Node{Attributes: types.Attributes{Name: 110, Age: 10}}
	NodeElder111 = types.Node{Attributes: types.Attributes{Name: 111, Age: 11}}
	NodeElder130 = types.Node{Attributes: types.Attributes{Name: 130, Age: 30}}
	NodeElder131 = types.Node{Attributes: types.Attributes{Name: 131, Age: 31}}
	NodeElder132 = types.Node{Attributes: Attributes132}

	YoungAdult205 = types.Node{Attributes: types.Attributes{Name: 205, Age: 5}}

	TargetInterval1 = types.Name(1234)
	TargetInterval2 = types.Name(1235)

	OurSection            = types.Section(0)
	OurNodeOld            = types.Node{Attributes: Attributes132Old}
	OurNode               = types.Node{Attributes: Attributes132}
	OurName               = OurNode.Name()
	OurNodeCandidate      = types.Candidate{Attributes: OurNode.Attributes}
	OurNodeCandidateOld   = types.Candidate{Attributes: OurNodeOld.Attributes}
	OurProofRequest       = types.ProofRequest{Value: int64(OurName)}
	OurInitialSectionInfo = types.SectionInfo{Section: OurSection, Version: 0}
	OurGenesisInfo        = types.GenesisPfxInfo{SectionInfo: OurInitialSectionInfo}

	SectionInfo1       = types.SectionInfo{Section: OurSection, Version: 1}
	SectionInfo2       = types.SectionInfo{Section: OurSection, Version: 2}
	DstSectionInfo200  = types.SectionInfo{Section: DstSection200, Version: 0}
	OtherSectionInfo   = types.SectionInfo{Section: OtherSection1, Version: 0}
	RemoteOtherSection = types.SectionInfo{Section: OtherSection2, Version: 0}
	MergedSectionInfo  = types.SectionInfo{Section: MergedSection2, Version: 0}
	SplitSectionInfo1  = types.SectionInfo{Section: types.Section(1), Version: 0}
	SplitSectionInfo2  = types.SectionInfo{Section: types.Section(2), Version: 0}

	CandidateInfoValid1 = types.CandidateInfo{
		OldPublicID:          Candidate1Old,
		NewPublicID:          Candidate1,
		Destination:          TargetInterval1,
		WaitingCandidateName: TargetInterval1,
		Valid:                true,
	}

	CandidateRelocatedInfo1 = types.RelocatedInfo{
		Candidate:            Candidate1Old,
		ExpectedAge:          Candidate1Old.Age.IncrementByOne(),
		TargetIntervalCentre: TargetInterval1,
		SectionInfo:          OurInitialSectionInfo,
	}

	CandidateRelocatedInfo132 = types.RelocatedInfo{
		Candidate:            OurNodeCandidateOld,
		ExpectedAge:          OurNode.Age,
		TargetIntervalCentre: TargetInterval1,
		SectionInfo:          DstSectionInfo200,
	}
)

// NewInnerAction132 builds a bare Action for OurNode, seeded with
// TargetInterval1 as its next relocation target — the common base every
// other fixture below extends.
func NewInnerAction132() *action.Action {
	return action.New(OurNode.Attributes, rlog.NoOp(), nil).
		WithNextTargetInterval(TargetInterval1)
}

// NewActionYoungElders is a 4-member section where OurNode is the youngest
// elder and a single young adult is not yet eligible for elder status.
func NewActionYoungElders() *action.Action {
	return NewInnerAction132().
		ExtendCurrentNodesWith(types.DefaultElder(), []types.Node{NodeElder109, NodeElder110, NodeElder132}).
		ExtendCurrentNodesWith(types.DefaultAdult(), []types.Node{YoungAdult205})
}

// NewActionOldElders mirrors NewActionYoungElders but with an elder set old
// enough that OurNode would be displaced by elder re-ranking.
func NewActionOldElders() *action.Action {
	return NewInnerAction132().
		ExtendCurrentNodesWith(types.DefaultElder(), []types.Node{NodeElder130, NodeElder131, NodeElder132}).
		ExtendCurrentNodesWith(types.DefaultAdult(), []types.Node{YoungAdult205})
}

// NewActionYoungEldersWithWaitingElder is a 4-elder-eligible section where
// NodeElder130 is waiting to be promoted in place of OurNode.
func NewActionYoungEldersWithWaitingElder() *action.Action {
	return NewInnerAction132().
		ExtendCurrentNodesWith(types.DefaultElder(), []types.Node{NodeElder109, NodeElder110, NodeElder111}).
		ExtendCurrentNodesWith(types.DefaultAdult(), []types.Node{NodeElder130})
}

// NewActionWithDstSection200 records a foreign section's elder roster, for
// scenarios where OurNode's section is relocating a candidate there.
func NewActionWithDstSection200() *action.Action {
	return NewInnerAction132().
		WithSectionMembers(DstSectionInfo200, []types.Node{NodeElder109, NodeElder110, NodeElder111})
}

// NewMemberState wraps a (builder-configured) Action into a ready-to-run
// MemberState under cfg, and drains the construction journal so the first
// scripted event's Events() reflects only what the script itself triggers.
func NewMemberState(a *action.Action, cfg config.Config) *member.MemberState {
	s := member.New(a, cfg)
	a.RemoveProcessedState()
	return s
}

// DefaultTestConfig is config.LocalConfig with the elder size pinned to 3,
// matching every fixture's hand-built 3-elder sections.
func DefaultTestConfig() config.Config {
	cfg := config.LocalConfig()
	cfg.ElderSize = 3
	return cfg
}

// GetRelocatedInfo builds the ticket a destination at sectionInfo would
// issue for candidate, using the fixtures' shared first target interval.
func GetRelocatedInfo(candidate types.Candidate, sectionInfo types.SectionInfo) types.RelocatedInfo {
	return types.RelocatedInfo{
		Candidate:            candidate,
		ExpectedAge:          candidate.Age.IncrementByOne(),
		TargetIntervalCentre: TargetInterval1,
		SectionInfo:          sectionInfo,
	}
}

// initialStateOldElders is the most commonly reused starting point: a
// 3-elder section old enough that OurNode would be displaced by elder
// re-ranking, with one young adult waiting in the wings.
func initialStateOldElders() *member.MemberState {
	return NewMemberState(NewActionOldElders(), DefaultTestConfig())
}

// initialStateYoungElders is the elder-change-prone variant: admitting any
// node aged 10 or more displaces NodeElder109 from the elder set.
func initialStateYoungElders() *member.MemberState {
	return NewMemberState(NewActionYoungElders(), DefaultTestConfig())
}

// initialJoiningStateWithDst200 starts a candidate's join attempt against
// the foreign section fixture recorded by NewActionWithDstSection200.
func initialJoiningStateWithDst200() *joining.JoiningState {
	return joining.New(NewActionWithDstSection200())
}
