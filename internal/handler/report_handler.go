package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kashafah/scouthub/internal/pkg/response"
	"github.com/kashafah/scouthub/internal/service"
)

type ReportHandler struct {
	reports *service.ReportService
	export  *service.ExportService
	print   *service.PrintService
}

func NewReportHandler(reports *service.ReportService, export *service.ExportService, print *service.PrintService) *ReportHandler {
	return &ReportHandler{reports: reports, export: export, print: print}
}

type reportCreateRequest struct {
	Type    string          `json:"type"`
	Title   string          `json:"title"`
	Content string          `json:"content"`
	Data    json.RawMessage `json:"data"`
}

func (h *ReportHandler) Create(c *gin.Context) {
	var req reportCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	report, err := h.reports.Create(c.Request.Context(), getUserID(c), service.ReportCreateInput{
		Type:    req.Type,
		Title:   req.Title,
		Content: req.Content,
		Data:    req.Data,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"report": report})
}

func (h *ReportHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	reports, err := h.reports.List(c.Request.Context(), user)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"reports": reports})
}

func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	report, err := h.reports.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"report": report})
}

type reportUpdateRequest struct {
	Type    *string         `json:"type"`
	Title   *string         `json:"title"`
	Content *string         `json:"content"`
	Data    json.RawMessage `json:"data"`
}

func (h *ReportHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req reportUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	report, err := h.reports.Update(c.Request.Context(), user, id, service.ReportUpdateInput{
		Type:    req.Type,
		Title:   req.Title,
		Content: req.Content,
		Data:    req.Data,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"report": report})
}

func (h *ReportHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.reports.Delete(c.Request.Context(), user, id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type reportExportRequest struct {
	Format      string  `json:"format"`
	ReportIDs   []int64 `json:"report_ids"`
	IncludeData bool    `json:"include_data"`
}

func (h *ReportHandler) Export(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req reportExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	doc, err := h.export.ExportReports(c.Request.Context(), user, service.ReportExportInput{
		Format:      req.Format,
		ReportIDs:   req.ReportIDs,
		IncludeData: req.IncludeData,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	serveDocument(c, doc)
}

func (h *ReportHandler) Print(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}
	doc, err := h.print.Render(c.Request.Context(), user, id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(http.StatusOK, doc.ContentType, []byte(doc.HTML))
}

type emailReportRequest struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Message    string   `json:"message"`
}

// Email is a stub; delivery is not wired up yet, callers get an explicit
// acknowledgment instead of a silent drop.
func (h *ReportHandler) Email(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req emailReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	if _, err := h.reports.Get(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"sent":       false,
		"status":     "not_implemented",
		"recipients": req.Recipients,
		"subject":    req.Subject,
	})
}

func serveDocument(c *gin.Context, doc *service.ExportDocument) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}
