package detector

import (
	"fmt"

	"github.com/iai-group/breakdowns/dialogue"
	"github.com/iai-group/breakdowns/flow"
)

// ConversationFlowDetector checks every turn boundary against the interaction
// model. A boundary is legal when at least one (previous act, current act)
// pairing has an edge; an illegal boundary yields exactly one finding, so
// multi-act turns do not inflate counts. Illegal boundaries that instead match
// an earlier turn are classified as delayed replies by the configured signal.
//
// Act labels absent from the model have no edges, so transitions through them
// are flagged like any other illegal transition; that is a detection result,
// not an engine error.
type ConversationFlowDetector struct {
	model   *flow.Model
	qualify bool
	signal  ReplySignal
}

// ReplySignal decides whether the turn at index cur answers a turn at least
// two positions back instead of its immediate predecessor. It returns the
// index of the answered turn, or -1 when no earlier turn matches. The exact
// correspondence criterion is a pluggable policy.
type ReplySignal interface {
	EarlierTarget(d *dialogue.Dialogue, cur int) int
}

func NewConversationFlowDetector(m *flow.Model, opts Options) *ConversationFlowDetector {
	cd := &ConversationFlowDetector{model: m, qualify: opts.QualifyActs, signal: opts.Signal}
	if cd.signal == nil {
		cd.signal = &TransitionSignal{Model: m, Qualify: opts.QualifyActs}
	}
	return cd
}

func (*ConversationFlowDetector) Name() string { return NameConversationFlow }

func (cd *ConversationFlowDetector) Detect(d *dialogue.Dialogue) ([]Finding, error) {
	var findings []Finding
	for i := 1; i < len(d.Turns); i++ {
		prev, cur := d.Turns[i-1], d.Turns[i]
		if legalBoundary(cd.model, cd.qualify, prev, cur) {
			continue
		}

		if j := cd.signal.EarlierTarget(d, i); j >= 0 {
			findings = append(findings, Finding{
				Type:       DelayedReply,
				DialogueID: d.ID,
				Turn:       cur.Position,
				RefTurn:    j,
				Explanation: fmt.Sprintf("turn %d does not follow turn %d but answers turn %d (%d turns back)",
					cur.Position, prev.Position, j, cur.Position-j),
				ActPath: d.ActPath(cur.Position),
			})
			continue
		}

		findings = append(findings, Finding{
			Type:       UnexpectedTransition,
			DialogueID: d.ID,
			Turn:       cur.Position,
			RefTurn:    prev.Position,
			Explanation: fmt.Sprintf("no legal transition %v -> %v at boundary %d->%d",
				prev.Acts, cur.Acts, prev.Position, cur.Position),
			ActPath: d.ActPath(cur.Position),
		})
	}
	return findings, nil
}

// legalBoundary reports whether any act pairing across the boundary has an
// edge in the model.
func legalBoundary(m *flow.Model, qualify bool, prev, cur dialogue.Turn) bool {
	for _, pa := range prev.Acts {
		for _, ca := range cur.Acts {
			if m.IsLegal(lookup(pa, prev, qualify), lookup(ca, cur, qualify)) {
				return true
			}
		}
	}
	return false
}

func lookup(a dialogue.Act, t dialogue.Turn, qualify bool) string {
	if qualify {
		return a.Qualified(t.Speaker())
	}
	return string(a)
}

// TransitionSignal is the default delayed-reply proxy: the current turn's act
// would have been a legal direct response to some turn more than one step
// back, per the interaction model, while being illegal after the immediate
// predecessor. The most recent matching turn wins.
type TransitionSignal struct {
	Model   *flow.Model
	Qualify bool
}

func (s *TransitionSignal) EarlierTarget(d *dialogue.Dialogue, cur int) int {
	for j := cur - 2; j >= 0; j-- {
		if legalBoundary(s.Model, s.Qualify, d.Turns[j], d.Turns[cur]) {
			return j
		}
	}
	return -1
}

// SlotSignal is the annotation-based delayed-reply proxy: the current turn
// shares a slot-value annotation with an earlier turn while sharing none with
// its immediate predecessor.
type SlotSignal struct{}

func (SlotSignal) EarlierTarget(d *dialogue.Dialogue, cur int) int {
	turn := d.Turns[cur]
	if len(turn.Utterance.Slots) == 0 {
		return -1
	}
	if sharesSlot(turn, d.Turns[cur-1]) {
		return -1
	}
	for j := cur - 2; j >= 0; j-- {
		if sharesSlot(turn, d.Turns[j]) {
			return j
		}
	}
	return -1
}

func sharesSlot(a, b dialogue.Turn) bool {
	for k, v := range a.Utterance.Slots {
		if bv, ok := b.Utterance.Slots[k]; ok && bv == v {
			return true
		}
	}
	return false
}
