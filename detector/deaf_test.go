package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iai-group/breakdowns/detector"
	"github.com/iai-group/breakdowns/dialogue"
)

func TestDeaf_RepeatedPair(t *testing.T) {
	det := detector.NewDialogueOfTheDeafDetector(dialogue.Agent)
	d := dlg("d1",
		turn(0, dialogue.Agent, "Sorry, I didn't understand", "clarify"),
		turn(1, dialogue.Agent, "Sorry, I didn't understand", "clarify"),
		turn(2, dialogue.User, "ok", "inform"),
	)

	findings, err := det.Detect(d)
	require.NoError(t, err)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, detector.DialogueOfTheDeaf, f.Type)
	assert.Equal(t, 1, f.Turn, "finding is anchored at the later turn of the pair")
	assert.Equal(t, 0, f.RefTurn)
}

func TestDeaf_RunOfIdenticalTurns(t *testing.T) {
	det := detector.NewDialogueOfTheDeafDetector(dialogue.Agent)
	d := dlg("d1",
		turn(0, dialogue.Agent, "please rephrase", "clarify"),
		turn(1, dialogue.User, "action movie", "inform"),
		turn(2, dialogue.Agent, "please rephrase", "clarify"),
		turn(3, dialogue.User, "ACTION", "inform"),
		turn(4, dialogue.Agent, "please rephrase", "clarify"),
	)

	findings, err := det.Detect(d)
	require.NoError(t, err)
	require.Len(t, findings, 2, "k identical consecutive turns yield k-1 findings")
	assert.Equal(t, 2, findings[0].Turn)
	assert.Equal(t, 0, findings[0].RefTurn)
	assert.Equal(t, 4, findings[1].Turn)
	assert.Equal(t, 2, findings[1].RefTurn)
}

func TestDeaf_Normalization(t *testing.T) {
	det := detector.NewDialogueOfTheDeafDetector(dialogue.Agent)
	d := dlg("d1",
		turn(0, dialogue.Agent, "Sorry,  I didn't\tunderstand", "clarify"),
		turn(1, dialogue.Agent, "sorry, i didn't understand", "clarify"),
	)

	findings, err := det.Detect(d)
	require.NoError(t, err)
	assert.Len(t, findings, 1, "case and whitespace differences do not break a repeat")
}

func TestDeaf_ActSetOrderIndependent(t *testing.T) {
	det := detector.NewDialogueOfTheDeafDetector(dialogue.Agent)
	d := dlg("d1",
		turn(0, dialogue.Agent, "here you go", "recommend", "inform"),
		turn(1, dialogue.Agent, "here you go", "inform", "recommend"),
	)

	findings, err := det.Detect(d)
	require.NoError(t, err)
	assert.Len(t, findings, 1)
}

func TestDeaf_NoFindingCases(t *testing.T) {
	det := detector.NewDialogueOfTheDeafDetector(dialogue.Agent)

	tests := []struct {
		name string
		d    *dialogue.Dialogue
	}{
		{
			"same text different acts",
			dlg("d1",
				turn(0, dialogue.Agent, "okay", "confirm"),
				turn(1, dialogue.Agent, "okay", "bye"),
			),
		},
		{
			"same acts different text",
			dlg("d2",
				turn(0, dialogue.Agent, "what genre?", "request"),
				turn(1, dialogue.Agent, "which director?", "request"),
			),
		},
		{
			"repeat by the other role",
			dlg("d3",
				turn(0, dialogue.User, "hello?", "greeting"),
				turn(1, dialogue.User, "hello?", "greeting"),
			),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			findings, err := det.Detect(tc.d)
			require.NoError(t, err)
			assert.Empty(t, findings)
		})
	}
}

func TestDeaf_UserRole(t *testing.T) {
	det := detector.NewDialogueOfTheDeafDetector(dialogue.User)
	d := dlg("d1",
		turn(0, dialogue.User, "hello?", "greeting"),
		turn(1, dialogue.Agent, "hi there", "greeting"),
		turn(2, dialogue.User, "hello?", "greeting"),
	)

	findings, err := det.Detect(d)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, 2, findings[0].Turn)
	assert.Equal(t, 0, findings[0].RefTurn)
}

func TestDeaf_Idempotent(t *testing.T) {
	det := detector.NewDialogueOfTheDeafDetector(dialogue.Agent)
	d := dlg("d1",
		turn(0, dialogue.Agent, "please rephrase", "clarify"),
		turn(1, dialogue.Agent, "please rephrase", "clarify"),
	)

	first, err := det.Detect(d)
	require.NoError(t, err)
	second, err := det.Detect(d)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
