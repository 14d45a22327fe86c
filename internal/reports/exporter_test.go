package reports

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/yururi-apps/schedule-coordination-backend/internal/participation"
)

func sampleData() AttendanceData {
	return AttendanceData{
		EventTitle: "Team dinner",
		Dates: []participation.DateSummary{
			{ID: "d1", Label: "2026-09-01 19:00-21:00", Tally: participation.DateTally{Yes: 1}},
			{ID: "d2", Label: "2026-09-02 19:00-21:00", Tally: participation.DateTally{Maybe: 1}},
		},
		Roster: []participation.RosterEntry{
			{Email: "hanako@example.com", Name: "Hanako"},
		},
		Matrix: map[string]map[string]participation.Response{
			"hanako@example.com": {
				"d1": participation.ResponseYes,
				"d2": participation.ResponseMaybe,
			},
		},
		VenueVotes: map[string]int{"v1": 1},
		VenueNames: map[string]string{"v1": "Izakaya Torikizoku"},
	}
}

func TestExportCSV(t *testing.T) {
	e := NewExporter()

	out, filename, contentType, err := e.Export(FormatCSV, sampleData())
	if err != nil {
		t.Fatalf("Export(csv) error: %v", err)
	}
	if contentType != "text/csv" {
		t.Errorf("content type = %q, want text/csv", contentType)
	}
	if !strings.HasSuffix(filename, ".csv") {
		t.Errorf("filename = %q, want .csv suffix", filename)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	// title row, header row, one participant, three tally rows
	if len(records) < 6 {
		t.Fatalf("got %d CSV rows, want at least 6", len(records))
	}
	if records[0][0] != "Team dinner" {
		t.Errorf("title row = %v", records[0])
	}
	header := records[1]
	if header[0] != "Participant" || header[2] != "2026-09-01 19:00-21:00" {
		t.Errorf("header row = %v", header)
	}
	row := records[2]
	if row[1] != "hanako@example.com" || row[2] != "○" || row[3] != "△" {
		t.Errorf("participant row = %v", row)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	e := NewExporter()
	if _, _, _, err := e.Export("docx", sampleData()); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestExportPDFAndExcelProduceOutput(t *testing.T) {
	e := NewExporter()
	for _, format := range []string{FormatExcel, FormatPDF} {
		out, _, _, err := e.Export(format, sampleData())
		if err != nil {
			t.Fatalf("Export(%s) error: %v", format, err)
		}
		if len(out) == 0 {
			t.Fatalf("Export(%s) produced empty output", format)
		}
	}
}
