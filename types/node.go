package types

// Node wraps Attributes and represents an established network participant.
type Node struct {
	Attributes
}

// NewNode is a convenience constructor matching the Candidate one below.
func NewNode(age Age, name Name) Node {
	return Node{Attributes{Age: age, Name: name}}
}

// Name returns the node's current section-address.
func (n Node) Name() Name { return n.Attributes.Name }

// Candidate wraps Attributes and denotes a node in the process of joining
// (destination view) or leaving (source view) the holder's section. A
// candidate's identity may be its pre-relocation ("old_public_id") or
// post-relocation ("new_public_id") form depending on which side of the
// rename a given reference was captured on.
type Candidate struct {
	Attributes
}

// NewCandidate builds a Candidate from raw attributes.
func NewCandidate(age Age, name Name) Candidate {
	return Candidate{Attributes{Age: age, Name: name}}
}

// CandidateOf promotes a Node to a Candidate view of the same attributes.
func CandidateOf(n Node) Candidate { return Candidate{n.Attributes} }

// NodeOf demotes a Candidate to a Node view of the same attributes.
func NodeOf(c Candidate) Node { return Node{c.Attributes} }

// Name returns the candidate's current section-address.
func (c Candidate) Name() Name { return c.Attributes.Name }
