package report_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iai-group/breakdowns/detector"
	"github.com/iai-group/breakdowns/dialogue"
	"github.com/iai-group/breakdowns/orchestrator"
	"github.com/iai-group/breakdowns/report"
)

func sampleReport(t *testing.T) *orchestrator.Report {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	det, err := detector.New(detector.NameDialogueOfTheDeaf, nil, detector.Options{})
	require.NoError(t, err)
	runner := orchestrator.New([]detector.Detector{det}, log)

	d := dialogue.Dialogue{ID: "d1", Turns: []dialogue.Turn{
		{Position: 0, Utterance: dialogue.Utterance{Text: "pardon?", Speaker: dialogue.Agent}, Acts: []dialogue.Act{"clarify"}},
		{Position: 1, Utterance: dialogue.Utterance{Text: "pardon?", Speaker: dialogue.Agent}, Acts: []dialogue.Act{"clarify"}},
	}}
	rep, err := runner.Run([]dialogue.Dialogue{d})
	require.NoError(t, err)
	return rep
}

func TestWriteExcel(t *testing.T) {
	rep := sampleReport(t)
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, report.WriteExcel(rep, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := string(detector.DialogueOfTheDeaf)
	assert.Contains(t, f.GetSheetList(), sheet)
	assert.NotContains(t, f.GetSheetList(), "Sheet1", "default sheet is dropped")

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one finding")
	assert.Equal(t, "Dialogue", rows[0][0])
	assert.Equal(t, "d1", rows[1][0])
	assert.Equal(t, "1", rows[1][1], "finding anchored at the repeated turn")
}

func TestRenderConsole_EmptyReport(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	runner := orchestrator.New(nil, log)
	rep, err := runner.Run(nil)
	require.NoError(t, err)

	assert.NoError(t, report.RenderConsole(rep, 3))
}
