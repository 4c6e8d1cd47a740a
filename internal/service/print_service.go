package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/yuin/goldmark"

	"github.com/kashafah/scouthub/internal/model"
	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
)

// PrintDocument is a self-contained HTML page ready for the browser's print
// dialog.
type PrintDocument struct {
	HTML        string
	ContentType string
}

const printContentType = "text/html; charset=utf-8"

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html dir="rtl" lang="ar">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: "Segoe UI", Tahoma, sans-serif; margin: 40px; color: #222; }
h1 { border-bottom: 2px solid #2c5530; padding-bottom: 8px; }
.meta { color: #666; font-size: 0.9em; margin-bottom: 24px; }
.content { line-height: 1.7; }
.footer { margin-top: 48px; border-top: 1px solid #ccc; padding-top: 8px; color: #999; font-size: 0.8em; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">
<div>النوع: {{.Type}}</div>
<div>المنشئ: {{.Creator}}</div>
<div>تاريخ الإنشاء: {{.CreatedAt}}</div>
</div>
<div class="content">{{.Body}}</div>
<div class="footer">تم إنشاء هذا المستند في {{.GeneratedAt}}</div>
</body>
</html>
`))

type printData struct {
	Title       string
	Type        string
	Creator     string
	CreatedAt   string
	Body        template.HTML
	GeneratedAt string
}

type PrintService struct {
	reports *ReportService
	md      goldmark.Markdown
	cache   *expirable.LRU[string, string]
	now     func() time.Time
}

func NewPrintService(reports *ReportService) *PrintService {
	return &PrintService{
		reports: reports,
		md:      goldmark.New(),
		cache:   expirable.NewLRU[string, string](128, nil, time.Hour),
		now:     time.Now,
	}
}

// Render produces the print page for one report. Only the report's owner may
// print it, admins excepted. Rendered pages are cached keyed by (id, mtime),
// so an edited report never serves a stale page.
func (s *PrintService) Render(ctx context.Context, user *model.User, reportID int64) (*PrintDocument, error) {
	report, err := s.reports.Get(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !canManageReport(user, report) {
		return nil, appErr.ErrForbidden
	}
	key := fmt.Sprintf("%d:%d", report.ID, report.Mtime)
	if page, ok := s.cache.Get(key); ok {
		return &PrintDocument{HTML: page, ContentType: printContentType}, nil
	}
	page, err := s.render(report)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, page)
	return &PrintDocument{HTML: page, ContentType: printContentType}, nil
}

func (s *PrintService) render(report *model.Report) (string, error) {
	body, err := s.renderBody(report.Content)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	err = printTemplate.Execute(&buf, printData{
		Title:       report.Title,
		Type:        report.Type,
		Creator:     report.CreatorName,
		CreatedAt:   formatUnix(report.Ctime),
		Body:        body,
		GeneratedAt: formatUnix(s.now().UTC().Unix()),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *PrintService) renderBody(content string) (template.HTML, error) {
	if content == "" {
		return template.HTML("<p>لا يوجد محتوى</p>"), nil
	}
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
