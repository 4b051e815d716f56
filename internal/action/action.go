package action

import (
	"sort"

	"github.com/luxfi/membership/event"
	"github.com/luxfi/membership/internal/rlog"
	"github.com/luxfi/membership/internal/rmetrics"
	"github.com/luxfi/membership/types"
)

// Action is the effect mediator every sub-machine's TryNext call is given:
// it owns the node table, records every side effect into a per-step
// journal, and exposes the read/write operations the flow tables call.
// Exactly one sub-machine runs at a time, so Action is plain mutable state
// behind a pointer — no locking, no reference counting.
type Action struct {
	inner   *innerAction
	Log     rlog.Logger
	Metrics *rmetrics.Metrics
}

// New builds an Action for a node identified by attrs. log and metrics may
// be nil-ish zero values; pass rlog.NoOp() and a nil *rmetrics.Metrics from
// scenario scripts that don't care about observability.
func New(attrs types.Attributes, log rlog.Logger, metrics *rmetrics.Metrics) *Action {
	if log == nil {
		log = rlog.NoOp()
	}
	return &Action{inner: newInnerAction(attrs), Log: log, Metrics: metrics}
}

// --- scenario-construction builders ---

// ExtendCurrentNodes adds every given NodeState to the table, keyed by its
// node name. Panics if a name collides.
func (a *Action) ExtendCurrentNodes(states []types.NodeState) *Action {
	for _, s := range states {
		a.inner.addNode(s)
	}
	a.inner.ourEvents = nil // table seeding isn't itself a journalled step
	return a
}

// ExtendCurrentNodesWith adds one NodeState per given Node, using value as
// the template for every other field.
func (a *Action) ExtendCurrentNodesWith(value types.NodeState, nodes []types.Node) *Action {
	states := make([]types.NodeState, len(nodes))
	for i, n := range nodes {
		st := value
		st.Node = n
		states[i] = st
	}
	return a.ExtendCurrentNodes(states)
}

// WithSectionMembers records the full membership of a (possibly foreign)
// section, looked up later by GetSectionElders.
func (a *Action) WithSectionMembers(section types.SectionInfo, nodes []types.Node) *Action {
	if _, exists := a.inner.sectionMembers[section]; exists {
		panic("action: WithSectionMembers: section already recorded")
	}
	cp := make([]types.Node, len(nodes))
	copy(cp, nodes)
	a.inner.sectionMembers[section] = cp
	return a
}

// WithNextTargetInterval seeds the monotonic relocation-target counter.
func (a *Action) WithNextTargetInterval(target types.Name) *Action {
	a.inner.nextTargetInterval = target
	return a
}

// WithOurSection seeds the section this Action's node belongs to.
func (a *Action) WithOurSection(info types.SectionInfo) *Action {
	a.inner.ourSection = info
	return a
}

// --- per-step journal ---

// Events returns every event recorded since the last RemoveProcessedState,
// or nil if the journal is empty.
func (a *Action) Events() []event.Event {
	if len(a.inner.ourEvents) == 0 {
		return nil
	}
	out := make([]event.Event, len(a.inner.ourEvents))
	copy(out, a.inner.ourEvents)
	return out
}

// RemoveProcessedState clears the journal; the harness calls this once it
// has drained and asserted on a step's events.
func (a *Action) RemoveProcessedState() {
	a.inner.ourEvents = nil
}

// ApplyTestEvent applies one of the four harness-only TestEvent variants.
func (a *Action) ApplyTestEvent(e event.TestEvent) {
	switch e.Kind {
	case event.SetChurnNeeded:
		a.inner.churnNeeded = e.ChurnNeeded
		a.inner.hasChurn = true
	case event.SetShortestPrefix:
		a.inner.shortestPrefix = e.Section
		a.inner.hasShortestPrefix = e.HasSection
	case event.SetWorkUnitEnoughToRelocate:
		name := e.Node.Name()
		if st, ok := a.inner.ourNodes[name]; ok {
			st.WorkUnitsDone = int64(st.Node.Age)
			a.inner.ourNodes[name] = st
		}
	case event.SetResourceProof:
		a.inner.resourceProofsForElder[e.ResourceProofOf] = e.ProofSource
	}
}

func (a *Action) VoteParsec(vote event.ParsecVote) {
	a.inner.ourEvents = append(a.inner.ourEvents, vote.ToEvent())
}

func (a *Action) SendRpc(rpc event.Rpc) {
	a.inner.ourEvents = append(a.inner.ourEvents, rpc.ToEvent())
}

func (a *Action) ScheduleEvent(e event.LocalEvent) {
	a.ActionTriggered(event.NewScheduled(e))
}

// KillScheduledEvent cancels a previously scheduled timer. Journal-only,
// like ScheduleEvent: the harness owns time and is expected to honour the
// Killed marker by never firing the event.
func (a *Action) KillScheduledEvent(e event.LocalEvent) {
	a.ActionTriggered(event.NewKilled(e))
}

func (a *Action) ActionTriggered(t event.ActionTriggered) {
	a.inner.ourEvents = append(a.inner.ourEvents, t.ToEvent())
}

// --- node table mutation surface ---

// AddNodeWaitingCandidateInfo allocates the next relocation target name and
// records a WaitingCandidateInfo row for the incoming candidate, returning
// the ticket the destination elder will later hand the candidate.
func (a *Action) AddNodeWaitingCandidateInfo(candidate types.Candidate) types.RelocatedInfo {
	target := a.inner.nextTargetInterval
	a.inner.nextTargetInterval++

	info := types.RelocatedInfo{
		Candidate:            candidate,
		ExpectedAge:          candidate.Age.IncrementByOne(),
		TargetIntervalCentre: target,
		SectionInfo:          a.inner.ourSection,
	}

	state := types.NodeState{
		Node:  types.NewNode(info.ExpectedAge, info.TargetIntervalCentre),
		State: types.WaitingCandidateInfo(info),
	}
	a.inner.addNode(state)
	return info
}

func (a *Action) SetCandidateOnlineState(candidateName types.Name, newPublicID types.Candidate) {
	a.inner.replaceNode(candidateName, types.NodeState{
		Node:  types.NodeOf(newPublicID),
		State: types.Online,
	})
}

func (a *Action) SetNodeOfflineState(n types.Node) {
	a.inner.setNodeState(n.Name(), types.Offline)
}

func (a *Action) SetNodeBackOnlineState(n types.Node) {
	a.inner.setNodeState(n.Name(), types.RelocatingBackOnline)
}

func (a *Action) SetCandidateRelocatingState(c types.Candidate) {
	a.inner.setNodeState(c.Name(), types.RelocatingAgeIncrease)
}

func (a *Action) SetCandidateRelocatedState(info types.RelocatedInfo) {
	a.inner.setNodeState(info.Candidate.Name(), types.Relocated(info))
}

func (a *Action) PurgeNodeInfo(name types.Name) {
	a.inner.removeNode(name)
}

func (a *Action) CheckShortestPrefix() (types.Section, bool) {
	return a.inner.shortestPrefix, a.inner.hasShortestPrefix
}

// CheckElder recomputes the (state asc, age desc, name asc)-ranked elder
// set and returns the membership delta, or ok=false if nothing changes.
func (a *Action) CheckElder(elderSize int) (types.ChangeElder, bool) {
	values := make([]types.NodeState, 0, len(a.inner.ourNodes))
	for _, name := range a.inner.sortedNames() {
		values = append(values, a.inner.ourNodes[name])
	}
	sort.SliceStable(values, func(i, j int) bool {
		l, r := values[i], values[j]
		switch {
		case l.State.Less(r.State):
			return true
		case r.State.Less(l.State):
			return false
		}
		if l.Node.Age != r.Node.Age {
			return l.Node.Age > r.Node.Age
		}
		return l.Node.Name() < r.Node.Name()
	})

	if elderSize > len(values) {
		elderSize = len(values)
	}
	elders, adults := values[:elderSize], values[elderSize:]

	var changes []types.ElderChange
	for _, e := range elders {
		if !e.IsElder {
			changes = append(changes, types.ElderChange{Node: e.Node, NewIsElder: true})
		}
	}
	for _, e := range adults {
		if e.IsElder {
			changes = append(changes, types.ElderChange{Node: e.Node, NewIsElder: false})
		}
	}

	if len(changes) == 0 {
		return types.ChangeElder{}, false
	}
	return types.ChangeElder{
		Changes:    changes,
		NewSection: types.SectionInfo{Section: a.inner.ourSection.Section, Version: a.inner.ourSection.Version + 1},
	}, true
}

func (a *Action) GetElderChangeVotes(c types.ChangeElder) []event.ParsecVote {
	votes := make([]event.ParsecVote, 0, len(c.Changes)+1)
	for _, change := range c.Changes {
		if change.NewIsElder {
			votes = append(votes, event.NewVoteAddElderNode(change.Node))
		} else {
			votes = append(votes, event.NewVoteRemoveElderNode(change.Node))
		}
	}
	votes = append(votes, event.NewVoteNewSectionInfo(c.NewSection))
	return votes
}

func (a *Action) MarkElderChange(c types.ChangeElder) {
	for _, change := range c.Changes {
		a.inner.setElderState(change.Node.Name(), change.NewIsElder)
	}
	a.inner.setSectionInfo(c.NewSection)
	if a.Metrics != nil {
		elders, members := 0, len(a.inner.ourNodes)
		for _, ns := range a.inner.ourNodes {
			if ns.IsElder {
				elders++
			}
		}
		a.Metrics.SetElders(elders)
		a.Metrics.SetMembers(members)
	}
}

// GetSectionSplitVotes picks two new section tags by a simple arithmetic
// rule over our current tag — a placeholder for real prefix derivation,
// isolated here per Section's doc comment.
func (a *Action) GetSectionSplitVotes() []event.ParsecVote {
	base := int64(a.inner.ourSection.Section)
	votes := make([]event.ParsecVote, 0, 2)
	for offset := int64(1); offset < 3; offset++ {
		votes = append(votes, event.NewVoteNewSectionInfo(types.SectionInfo{Section: types.Section(base + offset)}))
	}
	return votes
}

// GetNodeToRelocate returns the first Online node (in name order) whose
// accumulated work has reached its age, if any.
func (a *Action) GetNodeToRelocate() (types.Candidate, bool) {
	for _, name := range a.inner.sortedNames() {
		st := a.inner.ourNodes[name]
		if st.State.Equal(types.Online) && st.WorkUnitsDone >= int64(st.Node.Age) {
			return types.CandidateOf(st.Node), true
		}
	}
	return types.Candidate{}, false
}

func (a *Action) HasRelocatingNode() bool {
	for _, st := range a.inner.ourNodes {
		if st.State.Equal(types.RelocatingAgeIncrease) {
			return true
		}
	}
	return false
}

// GetBestRelocatingNodeAndTarget picks the relocating, non-elder node
// ranked highest by (isAgeIncrease, isHop, isBackOnline, age, name), among
// those not already being relocated by a caller-tracked attempt count.
func (a *Action) GetBestRelocatingNodeAndTarget(alreadyRelocating map[types.Candidate]int) (types.Candidate, types.Section, bool) {
	type ranked struct {
		candidate types.Candidate
		key       [3]bool
		age       types.Age
		name      types.Name
	}
	var best *ranked
	for _, name := range a.inner.sortedNames() {
		st := a.inner.ourNodes[name]
		cand := types.CandidateOf(st.Node)
		if _, tracked := alreadyRelocating[cand]; tracked {
			continue
		}
		if !st.State.IsRelocating() || st.IsElder {
			continue
		}
		r := ranked{
			candidate: cand,
			key: [3]bool{
				st.State.Equal(types.RelocatingAgeIncrease),
				st.State.Equal(types.RelocatingHop),
				st.State.Equal(types.RelocatingBackOnline),
			},
			age:  st.Node.Age,
			name: st.Node.Name(),
		}
		if best == nil || rankedLess(*best, r) {
			best = &r
		}
	}
	if best == nil {
		return types.Candidate{}, types.Section(0), false
	}
	return best.candidate, types.Section(0), true
}

func rankedLess(a, b struct {
	candidate types.Candidate
	key       [3]bool
	age       types.Age
	name      types.Name
}) bool {
	for i := range a.key {
		if a.key[i] != b.key[i] {
			return !a.key[i] && b.key[i]
		}
	}
	if a.age != b.age {
		return a.age < b.age
	}
	return a.name < b.name
}

func (a *Action) IsOurRelocatingNode(c types.Candidate) bool {
	st, ok := a.inner.ourNodes[c.Name()]
	return ok && st.State.IsRelocating()
}

func (a *Action) GetWaitingCandidateInfo(c types.Candidate) (types.RelocatedInfo, bool) {
	for _, name := range a.inner.sortedNames() {
		st := a.inner.ourNodes[name]
		if info, ok := st.State.WaitingCandidateInfoTicket(); ok && info.Matches(c) {
			return info, true
		}
	}
	return types.RelocatedInfo{}, false
}

func (a *Action) CountWaitingProofingOrHop() int {
	n := 0
	for _, st := range a.inner.ourNodes {
		if st.State.IsNotYetFullNode() {
			n++
		}
	}
	return n
}

func (a *Action) ResourceProofCandidate() (types.Name, types.Candidate, bool) {
	for _, name := range a.inner.sortedNames() {
		st := a.inner.ourNodes[name]
		if info, ok := st.State.WaitingCandidateInfoTicket(); ok {
			return name, info.OldPublicID(), true
		}
	}
	return 0, types.Candidate{}, false
}

func (a *Action) IsValidWaitedInfo(info types.CandidateInfo) bool {
	if !info.Valid {
		return false
	}
	st, ok := a.inner.ourNodes[info.WaitingCandidateName]
	if !ok {
		return false
	}
	_, isWaiting := st.State.WaitingCandidateInfoTicket()
	return isWaiting
}

func (a *Action) IsOurName(name types.Name) bool { return a.OurName() == name }

func (a *Action) OurName() types.Name { return a.inner.ourAttributes.Name }

func (a *Action) NodeState(name types.Name) (types.NodeState, bool) {
	st, ok := a.inner.ourNodes[name]
	return st, ok
}

func (a *Action) OurSection() types.SectionInfo { return a.inner.ourSection }

func (a *Action) SendNodeApprovalRpc(c types.Candidate) {
	a.SendRpc(event.NewNodeApproval(c, types.GenesisPfxInfo{SectionInfo: a.inner.ourSection}))
}

func (a *Action) SendRelocateResponseRpc(info types.RelocatedInfo) {
	a.SendRpc(event.NewRelocateResponse(info))
}

func (a *Action) SendCandidateProofRequest(candidate types.Candidate) {
	source := a.OurName()
	a.SendRpc(event.NewResourceProof(candidate, source, types.ProofRequest{Value: int64(source)}))
}

func (a *Action) SendCandidateProofReceipt(candidate types.Candidate) {
	a.SendRpc(event.NewResourceProofReceipt(candidate, a.OurName()))
}

func (a *Action) StartComputeResourceProof(source types.Name, _ types.ProofRequest) {
	a.ActionTriggered(event.NewComputeResourceProofForElder(source))
}

func (a *Action) GetConnectedAndUnconnected(info types.RelocatedInfo) (connected, unconnected []types.Name) {
	for _, n := range a.GetSectionElders(info.SectionInfo) {
		if a.inner.connected.Contains(n.Name()) {
			connected = append(connected, n.Name())
		} else {
			unconnected = append(unconnected, n.Name())
		}
	}
	return connected, unconnected
}

func (a *Action) GetSectionElders(info types.SectionInfo) []types.Node {
	nodes, ok := a.inner.sectionMembers[info]
	if !ok {
		panic("action: GetSectionElders: unknown section")
	}
	return nodes
}

func (a *Action) GetNextResourceProofPart(source types.Name) (types.Proof, bool) {
	src, ok := a.inner.resourceProofsForElder[source]
	if !ok {
		return types.Invalid, false
	}
	proof, ok := src.Next()
	a.inner.resourceProofsForElder[source] = src
	return proof, ok
}

func (a *Action) SendConnectionInfoRequest(destination types.Name) {
	source := a.OurName()
	a.SendRpc(event.NewConnectionInfoRequest(source, destination, int64(source)))
}

func (a *Action) SendConnectionInfoResponse(destination types.Name) {
	source := a.OurName()
	a.SendRpc(event.NewConnectionInfoResponse(source, destination, int64(source)))
}

func (a *Action) SendCandidateInfo(destination types.Name, relocated types.RelocatedInfo) {
	a.inner.connected.Add(destination)
	newPublicID := types.NewCandidate(a.inner.ourAttributes.Age, a.inner.ourAttributes.Name)
	a.SendRpc(event.NewCandidateInfo(types.CandidateInfo{
		OldPublicID:          relocated.Candidate,
		NewPublicID:          newPublicID,
		Destination:          destination,
		WaitingCandidateName: relocated.TargetIntervalCentre,
		Valid:                true,
	}))
}

func (a *Action) SendResourceProofResponse(destination types.Name, proof types.Proof) {
	candidate := types.NewCandidate(a.inner.ourAttributes.Age, a.inner.ourAttributes.Name)
	a.SendRpc(event.NewResourceProofResponse(candidate, destination, proof))
}

func (a *Action) SendMergeRpc() {
	a.SendRpc(event.NewMerge(a.OurSection()))
}

func (a *Action) IncrementNodesWorkUnits() {
	a.ActionTriggered(event.NewWorkUnitIncremented())
}

func (a *Action) StoreMergeInfos(info types.SectionInfo) {
	a.inner.storeMergeInfos(info)
}

func (a *Action) HasMergeInfos() bool { return a.inner.hasMergeInfo }

func (a *Action) MergeNeeded() bool {
	return a.inner.hasChurn && a.inner.churnNeeded == types.ChurnMerge
}

func (a *Action) SplitNeeded() bool {
	return a.inner.hasChurn && a.inner.churnNeeded == types.ChurnSplit
}

func (a *Action) CompleteMerge() {
	a.inner.completeMerge()
	if a.Metrics != nil {
		a.Metrics.IncChurn("merge")
	}
}

// HasSiblingMergeInfo reports whether the stored merge section is our
// section's sibling — currently "arithmetic distance 1" over the raw
// section tag, a placeholder for real prefix adjacency (see Section).
func (a *Action) HasSiblingMergeInfo() bool {
	if !a.inner.hasMergeInfo {
		return false
	}
	diff := int64(a.OurSection().Section) - int64(a.inner.mergeInfo.Section)
	if diff < 0 {
		diff = -diff
	}
	return diff == 1
}

func (a *Action) MergeSiblingInfoToNewSection() types.SectionInfo {
	if !a.inner.hasMergeInfo {
		panic("action: MergeSiblingInfoToNewSection: merge infos missing")
	}
	their := a.inner.mergeInfo.Section
	a.inner.hasMergeInfo = false
	our := a.OurSection().Section
	return types.SectionInfo{Section: types.Section(int64(our) + int64(their) + 1)}
}

func (a *Action) CompleteSplit() {
	a.inner.completeSplit()
	if a.Metrics != nil {
		a.Metrics.IncChurn("split")
	}
}
