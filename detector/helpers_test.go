package detector_test

import (
	"github.com/iai-group/breakdowns/dialogue"
)

func turn(pos int, sp dialogue.Speaker, text string, acts ...dialogue.Act) dialogue.Turn {
	return dialogue.Turn{
		Position:  pos,
		Utterance: dialogue.Utterance{Text: text, Speaker: sp},
		Acts:      acts,
	}
}

func slotTurn(pos int, sp dialogue.Speaker, text string, slots map[string]string, acts ...dialogue.Act) dialogue.Turn {
	t := turn(pos, sp, text, acts...)
	t.Utterance.Slots = slots
	return t
}

func dlg(id string, turns ...dialogue.Turn) *dialogue.Dialogue {
	return &dialogue.Dialogue{ID: id, Turns: turns}
}
