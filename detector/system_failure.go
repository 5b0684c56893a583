package detector

import (
	"fmt"

	"github.com/iai-group/breakdowns/dialogue"
)

// SystemFailureDetector flags dialogues whose generation was aborted by a
// recorded system error. It only inspects the metadata flag, never the turn
// content, and a missing flag means no failure.
type SystemFailureDetector struct{}

func NewSystemFailureDetector() *SystemFailureDetector { return &SystemFailureDetector{} }

func (*SystemFailureDetector) Name() string { return NameSystemFailure }

// Detect returns at most one finding, anchored at the truncation turn.
// RecursionError is not a system failure: it signals an infinite loop in the
// dialogue policy, which the dialogue-of-the-deaf detector covers.
func (*SystemFailureDetector) Detect(d *dialogue.Dialogue) ([]Finding, error) {
	if d.Err == nil || d.Err.Type == "RecursionError" {
		return nil, nil
	}

	anchor := d.Err.Turn
	if anchor < 0 || anchor >= len(d.Turns) {
		anchor = len(d.Turns) - 1
	}
	if anchor < 0 {
		anchor = 0
	}

	return []Finding{{
		Type:        SystemFailure,
		DialogueID:  d.ID,
		Turn:        anchor,
		RefTurn:     -1,
		Explanation: fmt.Sprintf("generation aborted by %s at turn %d", d.Err.Type, anchor),
		ActPath:     d.ActPath(anchor),
	}}, nil
}
