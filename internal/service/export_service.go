package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kashafah/scouthub/internal/model"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
)

const (
	ExportFormatJSON = "json"
	ExportFormatCSV  = "csv"
	ExportFormatTXT  = "txt"
)

// ExportDocument is a ready-to-download payload.
type ExportDocument struct {
	Content     []byte
	ContentType string
	Filename    string
}

type ExportService struct {
	reports      *ReportService
	participants *ParticipantService
	now          func() time.Time
}

func NewExportService(reports *ReportService, participants *ParticipantService) *ExportService {
	return &ExportService{reports: reports, participants: participants, now: time.Now}
}

type ReportExportInput struct {
	Format      string
	ReportIDs   []int64
	IncludeData bool
}

func (s *ExportService) ExportReports(ctx context.Context, user *model.User, input ReportExportInput) (*ExportDocument, error) {
	reports, err := s.reports.ListForExport(ctx, user, input.ReportIDs)
	if err != nil {
		return nil, err
	}
	switch input.Format {
	case ExportFormatJSON:
		return s.document(encodeReportsJSON(reports, input.IncludeData), "application/json; charset=utf-8", "reports", "json")
	case ExportFormatCSV:
		return s.document(encodeReportsCSV(reports), "text/csv; charset=utf-8", "reports", "csv")
	case ExportFormatTXT:
		return s.document(encodeReportsTXT(reports), "text/plain; charset=utf-8", "reports", "txt")
	default:
		return nil, appErr.ErrBadFormat
	}
}

type ParticipantExportInput struct {
	Format         string
	IncludeMedical bool
}

func (s *ExportService) ExportParticipants(ctx context.Context, input ParticipantExportInput) (*ExportDocument, error) {
	participants, err := s.participants.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	switch input.Format {
	case ExportFormatJSON:
		return s.document(encodeParticipantsJSON(participants, input.IncludeMedical), "application/json; charset=utf-8", "participants", "json")
	case ExportFormatCSV:
		return s.document(encodeParticipantsCSV(participants, input.IncludeMedical), "text/csv; charset=utf-8", "participants", "csv")
	default:
		return nil, appErr.ErrBadFormat
	}
}

func (s *ExportService) document(content []byte, contentType, kind, ext string) (*ExportDocument, error) {
	return &ExportDocument{
		Content:     content,
		ContentType: contentType,
		Filename:    fmt.Sprintf("%s_%s.%s", kind, s.now().UTC().Format("20060102_150405"), ext),
	}, nil
}

// reportExportView fixes the key order of exported reports; field order here
// is the canonical one, do not reorder.
type reportExportView struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Data      json.RawMessage `json:"data,omitempty"`
	Creator   string          `json:"creator"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

func encodeReportsJSON(reports []model.Report, includeData bool) []byte {
	views := make([]reportExportView, 0, len(reports))
	for _, r := range reports {
		v := reportExportView{
			ID:        r.ID,
			Type:      r.Type,
			Title:     r.Title,
			Content:   r.Content,
			Creator:   r.CreatorName,
			CreatedAt: formatUnix(r.Ctime),
			UpdatedAt: formatUnix(r.Mtime),
		}
		if includeData {
			v.Data = r.Data
		}
		views = append(views, v)
	}
	buf, _ := json.MarshalIndent(views, "", "  ")
	return buf
}

func encodeReportsCSV(reports []model.Report) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "Type", "Title", "Content", "Creator", "Created At", "Updated At"})
	for _, r := range reports {
		_ = w.Write([]string{
			strconv.FormatInt(r.ID, 10),
			r.Type,
			r.Title,
			r.Content,
			r.CreatorName,
			formatUnix(r.Ctime),
			formatUnix(r.Mtime),
		})
	}
	w.Flush()
	return buf.Bytes()
}

func encodeReportsTXT(reports []model.Report) []byte {
	var b strings.Builder
	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n" + strings.Repeat("=", 50) + "\n\n")
		}
		b.WriteString(fmt.Sprintf("تقرير #%d\n", r.ID))
		b.WriteString("النوع: " + r.Type + "\n")
		b.WriteString("العنوان: " + r.Title + "\n")
		creator := r.CreatorName
		if creator == "" {
			creator = "غير معروف"
		}
		b.WriteString("المنشئ: " + creator + "\n")
		created := formatUnixMinute(r.Ctime)
		if created == "" {
			created = "غير محدد"
		}
		b.WriteString("تاريخ الإنشاء: " + created + "\n")
		content := r.Content
		if content == "" {
			content = "لا يوجد محتوى"
		}
		b.WriteString("\nالمحتوى:\n" + content + "\n")
	}
	return []byte(b.String())
}

type participantExportView struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Age              int    `json:"age"`
	Role             string `json:"role"`
	JoinDate         string `json:"join_date"`
	EmergencyContact string `json:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone"`
	MedicalInfo      string `json:"medical_info,omitempty"`
}

func encodeParticipantsJSON(participants []model.Participant, includeMedical bool) []byte {
	views := make([]participantExportView, 0, len(participants))
	for _, p := range participants {
		v := participantExportView{
			ID:               p.ID,
			Name:             p.Name,
			Email:            p.Email,
			Phone:            p.Phone,
			Age:              p.Age,
			Role:             p.Role,
			JoinDate:         p.JoinDate,
			EmergencyContact: p.EmergencyContact,
			EmergencyPhone:   p.EmergencyPhone,
		}
		if includeMedical {
			v.MedicalInfo = p.MedicalInfo
		}
		views = append(views, v)
	}
	buf, _ := json.MarshalIndent(views, "", "  ")
	return buf
}

func encodeParticipantsCSV(participants []model.Participant, includeMedical bool) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"ID", "Name", "Email", "Phone", "Age", "Role", "Join Date", "Emergency Contact", "Emergency Phone"}
	if includeMedical {
		header = append(header, "Medical Info")
	}
	_ = w.Write(header)
	for _, p := range participants {
		row := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Email,
			p.Phone,
			formatAge(p.Age),
			p.Role,
			p.JoinDate,
			p.EmergencyContact,
			p.EmergencyPhone,
		}
		if includeMedical {
			row = append(row, p.MedicalInfo)
		}
		_ = w.Write(row)
	}
	w.Flush()
	return buf.Bytes()
}

// formatAge leaves the cell empty when the age was never recorded.
func formatAge(age int) string {
	if age == 0 {
		return ""
	}
	return strconv.Itoa(age)
}

func formatUnix(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04:05")
}

// formatUnixMinute is the plain-text export timestamp; it drops seconds.
func formatUnixMinute(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04")
}
