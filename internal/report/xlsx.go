package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/lighthouise/engine/internal/model"
)

// WriteXLSX writes engagement findings to an XLSX workbook at path:
// a summary sheet plus one sheet per assessed process.
func WriteXLSX(f *model.EngagementFindings, path string) error {
	wb := xlsx.NewFile()

	summary, err := wb.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}
	writeSummarySheet(summary, f)

	for _, id := range sortedProcessIDs(f.FindingsByProcess) {
		pf := f.FindingsByProcess[id]
		sheet, err := wb.AddSheet(pf.ProcessName)
		if err != nil {
			return eris.Wrapf(err, "report: add sheet %q", pf.ProcessName)
		}
		writeProcessSheet(sheet, pf)
	}

	if err := wb.Save(path); err != nil {
		return eris.Wrapf(err, "report: save workbook %s", path)
	}
	return nil
}

func writeSummarySheet(sheet *xlsx.Sheet, f *model.EngagementFindings) {
	addRow(sheet, "Company", f.Context.CompanyName)
	addRow(sheet, "Industry", f.Context.Industry)
	addRow(sheet, "Size", string(f.Context.CompanySize))
	addRow(sheet, "Archetype", f.Diagnostic.CompanyArchetype)
	addRow(sheet)
	addRow(sheet, "Process", "Assessed", "Total Steps", "Low", "Mid", "High")
	for _, id := range sortedProcessIDs(f.FindingsByProcess) {
		pf := f.FindingsByProcess[id]
		row := sheet.AddRow()
		row.AddCell().SetString(pf.ProcessName)
		row.AddCell().SetInt(pf.AssessedStepCount)
		row.AddCell().SetInt(pf.TotalStepCount)
		row.AddCell().SetFloat(pf.TotalSavings.Low)
		row.AddCell().SetFloat(pf.TotalSavings.Mid)
		row.AddCell().SetFloat(pf.TotalSavings.High)
	}
	addRow(sheet)
	row := sheet.AddRow()
	row.AddCell().SetString("Grand Total")
	row.AddCell().SetString("")
	row.AddCell().SetString("")
	row.AddCell().SetFloat(f.GrandTotal.Low)
	row.AddCell().SetFloat(f.GrandTotal.Mid)
	row.AddCell().SetFloat(f.GrandTotal.High)
}

func writeProcessSheet(sheet *xlsx.Sheet, pf *model.ProcessFindings) {
	addRow(sheet, "Step", "Title", "Maturity", "Capacity Weight", "Potential", "Low", "Mid", "High", "Top Tool", "Fit Score")
	for _, est := range pf.StepEstimates {
		row := sheet.AddRow()
		row.AddCell().SetInt(est.StepNumber)
		row.AddCell().SetString(est.StepTitle)
		row.AddCell().SetString(string(est.Maturity))
		row.AddCell().SetFloat(est.CapacityWeight)
		row.AddCell().SetFloat(est.AutomationPotential)
		row.AddCell().SetFloat(est.Savings.Low)
		row.AddCell().SetFloat(est.Savings.Mid)
		row.AddCell().SetFloat(est.Savings.High)
		if est.TopTool != nil {
			row.AddCell().SetString(est.TopTool.Name)
			row.AddCell().SetInt(est.TopTool.FitScore)
		}
	}
}

func addRow(sheet *xlsx.Sheet, cells ...string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().SetString(c)
	}
}
