package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kashafah/scouthub/internal/model"
)

func TestPrintRender(t *testing.T) {
	svc := NewPrintService(nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) }

	page, err := svc.render(&model.Report{
		ID:          1,
		Type:        model.ReportTypeSchedule,
		Title:       "summer camp plan",
		Content:     "## Week 1\n\nhiking and **knots**",
		CreatorName: "layla",
		Ctime:       1700000000,
	})
	assert.NoError(t, err)
	assert.Contains(t, page, `dir="rtl"`)
	assert.Contains(t, page, "<title>summer camp plan</title>")
	assert.Contains(t, page, "layla")
	// markdown body comes through as markup, not escaped text
	assert.Contains(t, page, "<h2>Week 1</h2>")
	assert.Contains(t, page, "<strong>knots</strong>")
	assert.Contains(t, page, "2024-03-15 09:30:00")
}

func TestPrintRenderEmptyContent(t *testing.T) {
	svc := NewPrintService(nil)

	page, err := svc.render(&model.Report{ID: 2, Title: "empty", CreatorName: "omar"})
	assert.NoError(t, err)
	assert.Contains(t, page, "لا يوجد محتوى")
}

func TestPrintRenderEscapesTitle(t *testing.T) {
	svc := NewPrintService(nil)

	page, err := svc.render(&model.Report{ID: 3, Title: `<script>alert("x")</script>`, CreatorName: "omar"})
	assert.NoError(t, err)
	assert.NotContains(t, page, `<script>alert`)
}
