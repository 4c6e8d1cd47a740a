package service

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kashafah/scouthub/internal/model"
)

func sampleReports() []model.Report {
	return []model.Report{
		{
			ID:          1,
			Type:        model.ReportTypeBudget,
			Title:       "Q1 budget",
			Content:     "spending summary",
			Data:        json.RawMessage(`{"total":1200}`),
			CreatedBy:   7,
			CreatorName: "layla",
			IsActive:    true,
			Ctime:       1700000000,
			Mtime:       1700003600,
		},
		{
			ID:          2,
			Type:        model.ReportTypeIssue,
			Title:       "tent damage",
			CreatedBy:   7,
			CreatorName: "layla",
			IsActive:    true,
			Ctime:       1700010000,
			Mtime:       1700010000,
		},
	}
}

func TestEncodeReportsJSON(t *testing.T) {
	out := encodeReportsJSON(sampleReports(), true)

	var decoded []map[string]interface{}
	assert.NoError(t, json.Unmarshal(out, &decoded))
	assert.Len(t, decoded, 2)
	assert.EqualValues(t, 1, decoded[0]["id"])
	assert.Equal(t, "Q1 budget", decoded[0]["title"])
	assert.Equal(t, "budget", decoded[0]["type"])
	assert.Equal(t, "layla", decoded[0]["creator"])
	assert.Contains(t, decoded[0], "data")
	// the second report has no structured data at all
	assert.NotContains(t, decoded[1], "data")
}

func TestEncodeReportsJSONExcludesData(t *testing.T) {
	out := encodeReportsJSON(sampleReports(), false)

	var decoded []map[string]interface{}
	assert.NoError(t, json.Unmarshal(out, &decoded))
	assert.NotContains(t, decoded[0], "data")
}

func TestEncodeReportsCSV(t *testing.T) {
	out := encodeReportsCSV(sampleReports())

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Type", "Title", "Content", "Creator", "Created At", "Updated At"}, rows[0])
	assert.Equal(t, "1", rows[1][0])
	// optional fields render as empty strings, never a null marker
	assert.Equal(t, "", rows[2][3])
}

func TestEncodeReportsTXT(t *testing.T) {
	out := string(encodeReportsTXT(sampleReports()))

	assert.True(t, strings.HasPrefix(out, "تقرير #1\n"))
	assert.Contains(t, out, "النوع: budget\nالعنوان: Q1 budget\n")
	assert.Contains(t, out, "المنشئ: layla\n")
	assert.Contains(t, out, "تاريخ الإنشاء: 2023-11-14 22:13\n")
	assert.Contains(t, out, "\nالمحتوى:\nspending summary\n")
	// the rule separates entries, it does not open the document
	separator := "\n" + strings.Repeat("=", 50) + "\n\n"
	assert.Equal(t, 1, strings.Count(out, separator))
	assert.Contains(t, out, separator+"تقرير #2\n")
	// a report without body content gets an explicit placeholder
	assert.Contains(t, out, "\nالمحتوى:\nلا يوجد محتوى\n")
}

func TestEncodeReportsTXTFallbacks(t *testing.T) {
	out := string(encodeReportsTXT([]model.Report{{ID: 9, Type: model.ReportTypeIssue, Title: "torn flag"}}))

	assert.Contains(t, out, "المنشئ: غير معروف\n")
	assert.Contains(t, out, "تاريخ الإنشاء: غير محدد\n")
}

func TestEncodeParticipantsCSVAge(t *testing.T) {
	participants := []model.Participant{
		{ID: 1, Name: "omar", Age: 14},
		{ID: 2, Name: "sara"},
	}

	rows, err := csv.NewReader(strings.NewReader(string(encodeParticipantsCSV(participants, false)))).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, "14", rows[1][4])
	// an unset age stays blank instead of rendering as zero
	assert.Equal(t, "", rows[2][4])
}

func TestEncodeParticipantsCSVMedicalFlag(t *testing.T) {
	participants := []model.Participant{
		{ID: 1, Name: "omar", Age: 14, MedicalInfo: "asthma"},
	}

	withOut := encodeParticipantsCSV(participants, true)
	rows, err := csv.NewReader(strings.NewReader(string(withOut))).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, "Medical Info", rows[0][len(rows[0])-1])
	assert.Equal(t, "asthma", rows[1][len(rows[1])-1])

	withoutOut := encodeParticipantsCSV(participants, false)
	rows, err = csv.NewReader(strings.NewReader(string(withoutOut))).ReadAll()
	assert.NoError(t, err)
	assert.NotContains(t, rows[0], "Medical Info")
	assert.NotContains(t, string(withoutOut), "asthma")
}

func TestEncodeParticipantsJSONMedicalFlag(t *testing.T) {
	participants := []model.Participant{
		{ID: 1, Name: "omar", MedicalInfo: "asthma"},
	}

	var decoded []map[string]interface{}
	assert.NoError(t, json.Unmarshal(encodeParticipantsJSON(participants, false), &decoded))
	assert.NotContains(t, decoded[0], "medical_info")

	assert.NoError(t, json.Unmarshal(encodeParticipantsJSON(participants, true), &decoded))
	assert.Equal(t, "asthma", decoded[0]["medical_info"])
}

func TestExportDocumentFilename(t *testing.T) {
	svc := NewExportService(nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) }

	doc, err := svc.document(nil, "text/csv; charset=utf-8", "reports", "csv")
	assert.NoError(t, err)
	assert.Equal(t, "reports_20240315_093000.csv", doc.Filename)
}

func TestFormatUnix(t *testing.T) {
	assert.Equal(t, "", formatUnix(0))
	assert.Equal(t, "2023-11-14 22:13:20", formatUnix(1700000000))
	assert.Equal(t, "", formatUnixMinute(0))
	assert.Equal(t, "2023-11-14 22:13", formatUnixMinute(1700000000))
}
