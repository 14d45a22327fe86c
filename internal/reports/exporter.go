package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/yururi-apps/schedule-coordination-backend/internal/participation"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// AttendanceData is everything an export of one event needs
type AttendanceData struct {
	EventTitle string
	Dates      []participation.DateSummary
	Roster     []participation.RosterEntry
	Matrix     map[string]map[string]participation.Response
	VenueVotes map[string]int
	VenueNames map[string]string // venue option ID -> display name
}

// Exporter renders the attendance matrix in a downloadable format
type Exporter interface {
	Export(format string, data AttendanceData) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

func (e *exporter) Export(format string, data AttendanceData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		out, err := e.exportCSV(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("attendance_%s.csv", timestamp)
		return out, filename, "text/csv", nil

	case FormatExcel:
		out, err := e.exportExcel(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("attendance_%s.xlsx", timestamp)
		return out, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		out, err := e.exportPDF(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("attendance_%s.pdf", timestamp)
		return out, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported export format: %s", format)
	}
}

func (e *exporter) headerRow(data AttendanceData) []string {
	headers := []string{"Participant", "Email"}
	for _, d := range data.Dates {
		headers = append(headers, d.Label)
	}
	return headers
}

func (e *exporter) participantRow(data AttendanceData, entry participation.RosterEntry) []string {
	record := []string{entry.Name, entry.Email}
	cells := data.Matrix[entry.Email]
	for _, d := range data.Dates {
		record = append(record, cells[d.ID].Symbol())
	}
	return record
}

func (e *exporter) tallyRows(data AttendanceData) [][]string {
	yes := []string{"Yes", ""}
	no := []string{"No", ""}
	maybe := []string{"Maybe", ""}
	for _, d := range data.Dates {
		yes = append(yes, fmt.Sprint(d.Tally.Yes))
		no = append(no, fmt.Sprint(d.Tally.No))
		maybe = append(maybe, fmt.Sprint(d.Tally.Maybe))
	}
	return [][]string{yes, no, maybe}
}

// ===========================
// CSV
// ===========================

func (e *exporter) exportCSV(data AttendanceData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{data.EventTitle}); err != nil {
		return nil, err
	}
	if err := w.Write(e.headerRow(data)); err != nil {
		return nil, err
	}
	for _, entry := range data.Roster {
		if err := w.Write(e.participantRow(data, entry)); err != nil {
			return nil, err
		}
	}
	for _, row := range e.tallyRows(data) {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	if len(data.VenueVotes) > 0 {
		if err := w.Write([]string{}); err != nil {
			return nil, err
		}
		if err := w.Write([]string{"Venue", "Votes"}); err != nil {
			return nil, err
		}
		for id, name := range data.VenueNames {
			if err := w.Write([]string{name, fmt.Sprint(data.VenueVotes[id])}); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ===========================
// Excel
// ===========================

func (e *exporter) exportExcel(data AttendanceData) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Attendance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	f.SetCellValue(sheet, "A1", data.EventTitle)

	for i, h := range e.headerRow(data) {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	row := 3
	for _, entry := range data.Roster {
		for i, v := range e.participantRow(data, entry) {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}
	for _, tally := range e.tallyRows(data) {
		for i, v := range tally {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	if len(data.VenueVotes) > 0 {
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Venue")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Votes")
		row++
		for id, name := range data.VenueNames {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), name)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), data.VenueVotes[id])
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ===========================
// PDF
// ===========================

func (e *exporter) exportPDF(data AttendanceData) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, data.EventTitle)
	pdf.Ln(10)

	nameWidth := 40.0
	emailWidth := 60.0
	dateWidth := 30.0
	if n := len(data.Dates); n > 0 {
		// landscape A4 is 297mm wide; keep the table inside the margins
		avail := 277.0 - nameWidth - emailWidth
		if w := avail / float64(n); w < dateWidth {
			dateWidth = w
		}
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(nameWidth, 8, "Participant", "1", 0, "L", false, 0, "")
	pdf.CellFormat(emailWidth, 8, "Email", "1", 0, "L", false, 0, "")
	for _, d := range data.Dates {
		pdf.CellFormat(dateWidth, 8, d.Label, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	for _, entry := range data.Roster {
		pdf.CellFormat(nameWidth, 7, entry.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(emailWidth, 7, entry.Email, "1", 0, "L", false, 0, "")
		cells := data.Matrix[entry.Email]
		for _, d := range data.Dates {
			// the circle/cross glyphs are outside gofpdf's core fonts
			pdf.CellFormat(dateWidth, 7, asciiSymbol(cells[d.ID]), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(7)
	}

	labels := []string{"Yes", "No", "Maybe"}
	counts := func(d participation.DateSummary, i int) int {
		switch i {
		case 0:
			return d.Tally.Yes
		case 1:
			return d.Tally.No
		default:
			return d.Tally.Maybe
		}
	}
	pdf.SetFont("Arial", "B", 9)
	for i, label := range labels {
		pdf.CellFormat(nameWidth+emailWidth, 7, label, "1", 0, "L", false, 0, "")
		for _, d := range data.Dates {
			pdf.CellFormat(dateWidth, 7, fmt.Sprint(counts(d, i)), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(7)
	}

	if len(data.VenueVotes) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(40, 8, "Venue votes")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 9)
		for id, name := range data.VenueNames {
			pdf.CellFormat(100, 7, name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprint(data.VenueVotes[id]), "1", 0, "C", false, 0, "")
			pdf.Ln(7)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func asciiSymbol(r participation.Response) string {
	switch r {
	case participation.ResponseYes:
		return "O"
	case participation.ResponseNo:
		return "X"
	case participation.ResponseMaybe:
		return "?"
	default:
		return "-"
	}
}
