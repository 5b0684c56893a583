// Package detector implements the breakdown detectors. Each detector is a
// pure function of its inputs: it receives a read-only dialogue (and, for
// model-dependent detectors, the interaction model fixed at construction) and
// returns a fresh list of findings in transcript turn order.
package detector

import (
	"fmt"
	"sort"

	"github.com/iai-group/breakdowns/dialogue"
	"github.com/iai-group/breakdowns/flow"
)

// Type names a breakdown category.
type Type string

const (
	SystemFailure        Type = "system_failure"
	DialogueOfTheDeaf    Type = "dialogue_of_the_deaf"
	UnexpectedTransition Type = "unexpected_transition"
	DelayedReply         Type = "delayed_reply"

	// DetectorError marks a (dialogue, detector) pair whose evaluation failed;
	// recorded by the orchestrator so one bad dialogue cannot hide the rest of
	// the batch.
	DetectorError Type = "detector_error"
)

// Finding is one detected breakdown. Turn anchors the finding in the
// transcript; RefTurn is the other end of the range when the breakdown spans
// two turns (the earlier twin of a repeated pair, the boundary predecessor of
// an illegal transition, the turn a delayed reply actually answers), or -1.
type Finding struct {
	Type        Type     `json:"type"`
	DialogueID  string   `json:"dialogue_id"`
	Turn        int      `json:"turn"`
	RefTurn     int      `json:"ref_turn"`
	Explanation string   `json:"explanation"`
	ActPath     []string `json:"act_path,omitempty"`
}

// Detector is the capability shared by all breakdown detectors.
type Detector interface {
	Name() string
	Detect(d *dialogue.Dialogue) ([]Finding, error)
}

// Options carries the tunables shared across detector constructors.
type Options struct {
	// Role is the speaker whose repeated turns the deaf detector scans.
	Role dialogue.Speaker
	// QualifyActs makes model lookups use role-qualified labels ("A_request"),
	// for interaction models whose nodes carry speaker prefixes.
	QualifyActs bool
	// Signal classifies illegal transitions as delayed replies. Nil selects
	// the transition-based signal.
	Signal ReplySignal
}

func (o Options) role() dialogue.Speaker {
	if o.Role == "" {
		return dialogue.Agent
	}
	return o.Role
}

type factory struct {
	needsModel bool
	build      func(m *flow.Model, o Options) Detector
}

var registry = map[string]factory{
	NameSystemFailure: {
		build: func(*flow.Model, Options) Detector { return NewSystemFailureDetector() },
	},
	NameDialogueOfTheDeaf: {
		build: func(_ *flow.Model, o Options) Detector { return NewDialogueOfTheDeafDetector(o.role()) },
	},
	NameConversationFlow: {
		needsModel: true,
		build:      func(m *flow.Model, o Options) Detector { return NewConversationFlowDetector(m, o) },
	},
}

// Detector identifiers accepted on the selection interface.
const (
	NameSystemFailure     = "system_failure"
	NameDialogueOfTheDeaf = "dialogue_of_the_deaf"
	NameConversationFlow  = "conversation_flow"
)

// Known returns the registered detector identifiers, sorted.
func Known() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New instantiates a detector by identifier. An unknown identifier, or a nil
// model for a model-dependent detector, is a configuration error surfaced
// before any detection runs.
func New(name string, model *flow.Model, opts Options) (Detector, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown breakdown detector %q (known: %v)", name, Known())
	}
	if f.needsModel && model == nil {
		return nil, fmt.Errorf("detector %q requires an interaction model", name)
	}
	return f.build(model, opts), nil
}
