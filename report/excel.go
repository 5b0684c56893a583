package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iai-group/breakdowns/orchestrator"
)

var excelHeader = []interface{}{"Dialogue", "Turn", "Ref turn", "Explanation", "Sequence of acts"}

// WriteExcel saves the report as a workbook with one sheet per breakdown
// type, each listing that type's findings in batch order.
func WriteExcel(rep *orchestrator.Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, typ := range rep.Types() {
		sheet := string(typ)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, "A1", &excelHeader); err != nil {
			return err
		}

		row := 2
		for _, id := range rep.Order {
			for _, finding := range rep.Findings[id] {
				if finding.Type != typ {
					continue
				}
				cell := fmt.Sprintf("A%d", row)
				values := []interface{}{
					finding.DialogueID,
					finding.Turn,
					finding.RefTurn,
					finding.Explanation,
					strings.Join(finding.ActPath, " "),
				}
				if err := f.SetSheetRow(sheet, cell, &values); err != nil {
					return err
				}
				row++
			}
		}
	}

	// Drop the implicit default sheet so only breakdown sheets remain.
	if len(rep.Types()) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
