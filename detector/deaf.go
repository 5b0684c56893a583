package detector

import (
	"fmt"
	"strings"

	"github.com/iai-group/breakdowns/dialogue"
)

// DialogueOfTheDeafDetector flags consecutive turns by one speaker role that
// repeat both the surface text and the full dialogue-act set, a sign the
// conversation has stalled in a policy loop it cannot escape.
type DialogueOfTheDeafDetector struct {
	role dialogue.Speaker
}

func NewDialogueOfTheDeafDetector(role dialogue.Speaker) *DialogueOfTheDeafDetector {
	return &DialogueOfTheDeafDetector{role: role}
}

func (*DialogueOfTheDeafDetector) Name() string { return NameDialogueOfTheDeaf }

// Detect scans the role's turns in transcript order and emits one finding per
// repeated-turn transition, anchored at the later turn of each pair. A run of
// k identical consecutive turns therefore yields k-1 findings, counting how
// many times progress stalled.
func (dd *DialogueOfTheDeafDetector) Detect(d *dialogue.Dialogue) ([]Finding, error) {
	turns := d.TurnsBy(dd.role)

	var findings []Finding
	for i := 1; i < len(turns); i++ {
		prev, cur := turns[i-1], turns[i]
		if normalize(prev.Utterance.Text) != normalize(cur.Utterance.Text) {
			continue
		}
		if !sameActSet(prev.Acts, cur.Acts) {
			continue
		}
		findings = append(findings, Finding{
			Type:       DialogueOfTheDeaf,
			DialogueID: d.ID,
			Turn:       cur.Position,
			RefTurn:    prev.Position,
			Explanation: fmt.Sprintf("%s repeated turn %d verbatim at turn %d (acts %v)",
				dd.role, prev.Position, cur.Position, cur.Acts),
			ActPath: d.ActPath(cur.Position),
		})
	}
	return findings, nil
}

// normalize lowercases and collapses runs of whitespace, so repeats differing
// only in casing or spacing still count as identical.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// sameActSet compares act labels as sets, ignoring order and duplicates.
func sameActSet(a, b []dialogue.Act) bool {
	set := func(acts []dialogue.Act) map[dialogue.Act]struct{} {
		m := make(map[dialogue.Act]struct{}, len(acts))
		for _, x := range acts {
			m[x] = struct{}{}
		}
		return m
	}
	sa, sb := set(a), set(b)
	if len(sa) != len(sb) {
		return false
	}
	for x := range sa {
		if _, ok := sb[x]; !ok {
			return false
		}
	}
	return true
}
