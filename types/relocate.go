package types

import "fmt"

// RelocatedInfo is the destination-signed ticket admitting a specific
// candidate at a specific target name and age. ExpectedAge is always the
// candidate's pre-relocation age plus one; TargetIntervalCentre is the
// name the destination section allocated for it.
type RelocatedInfo struct {
	Candidate            Candidate
	ExpectedAge          Age
	TargetIntervalCentre Name
	SectionInfo          SectionInfo
}

func (r RelocatedInfo) String() string {
	return fmt.Sprintf("RelocatedInfo{candidate: %v, expected_age: %v, target: %v, section: %v}",
		r.Candidate, r.ExpectedAge, r.TargetIntervalCentre, r.SectionInfo)
}

// OldPublicID returns the candidate identity this ticket was issued for,
// i.e. its pre-relocation attributes.
func (r RelocatedInfo) OldPublicID() Candidate { return r.Candidate }

// Matches reports whether a later-observed candidate (by name and age) is
// the one this ticket was issued for — used by
// Action.GetWaitingCandidateInfo to find the WaitingCandidateInfo row
// holding that candidate's ticket.
func (r RelocatedInfo) Matches(c Candidate) bool {
	return r.Candidate == c
}

// CandidateInfo is what a joining candidate sends a destination elder once
// connected: its pre- and post-relocation identities, the row in the
// destination's table it claims to be ("WaitingCandidateName"), and the
// elder it's addressed to.
type CandidateInfo struct {
	OldPublicID         Candidate
	NewPublicID         Candidate
	Destination         Name
	WaitingCandidateName Name
	Valid               bool
}
