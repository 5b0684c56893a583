// Package report renders a completed detection report for human consumption:
// console tables and bar chart, or an Excel workbook with one sheet per
// breakdown type.
package report

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/iai-group/breakdowns/orchestrator"
)

// RenderConsole prints per-dialogue findings, the recurring act patterns per
// breakdown type, and a summary bar chart of counts per type.
func RenderConsole(rep *orchestrator.Report, patternLen int) error {
	if rep.Total() == 0 {
		pterm.Success.Println("No breakdowns detected")
		return nil
	}

	if err := renderFindings(rep); err != nil {
		return err
	}
	if err := renderPatterns(rep, patternLen); err != nil {
		return err
	}
	return renderSummary(rep)
}

func renderFindings(rep *orchestrator.Report) error {
	pterm.DefaultSection.Println("Detected breakdowns")

	data := pterm.TableData{{"Dialogue", "Turn", "Type", "Explanation"}}
	for _, id := range rep.Order {
		for _, f := range rep.Findings[id] {
			data = append(data, []string{
				f.DialogueID,
				strconv.Itoa(f.Turn),
				string(f.Type),
				f.Explanation,
			})
		}
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderPatterns(rep *orchestrator.Report, patternLen int) error {
	for _, typ := range rep.Types() {
		patterns := rep.Patterns(typ, patternLen)
		if len(patterns) == 0 {
			continue
		}
		pterm.DefaultSection.Printf("Conversational patterns: %s\n", typ)

		data := pterm.TableData{{"Sequence of acts", "Length", "Count"}}
		for _, p := range patterns {
			data = append(data, []string{p.Sequence, strconv.Itoa(p.Length), strconv.Itoa(p.Count)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
	}
	return nil
}

func renderSummary(rep *orchestrator.Report) error {
	pterm.DefaultSection.Println("Breakdowns per type")

	bars := make([]pterm.Bar, 0, len(rep.Counts))
	for _, typ := range rep.Types() {
		bars = append(bars, pterm.Bar{Label: string(typ), Value: rep.Counts[typ]})
	}
	if err := pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(bars).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("%d findings across %d dialogues\n", rep.Total(), len(rep.Order))
	fmt.Println()
	return nil
}
