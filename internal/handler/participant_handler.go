package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kashafah/scouthub/internal/pkg/response"
	"github.com/kashafah/scouthub/internal/service"
)

type ParticipantHandler struct {
	participants *service.ParticipantService
	export       *service.ExportService
}

func NewParticipantHandler(participants *service.ParticipantService, export *service.ExportService) *ParticipantHandler {
	return &ParticipantHandler{participants: participants, export: export}
}

type participantRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Age              int    `json:"age"`
	JoinDate         string `json:"join_date"`
	Status           string `json:"status"`
	Role             string `json:"role"`
	Notes            string `json:"notes"`
	EmergencyContact string `json:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone"`
	MedicalInfo      string `json:"medical_info"`
}

func (h *ParticipantHandler) Create(c *gin.Context) {
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	participant, err := h.participants.Create(c.Request.Context(), getUserID(c), service.ParticipantInput{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Age:              req.Age,
		JoinDate:         req.JoinDate,
		Status:           req.Status,
		Role:             req.Role,
		Notes:            req.Notes,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		MedicalInfo:      req.MedicalInfo,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"participant": participant})
}

func (h *ParticipantHandler) List(c *gin.Context) {
	participants, err := h.participants.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"participants": participants})
}

func (h *ParticipantHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	participant, err := h.participants.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"participant": participant})
}

type participantUpdateRequest struct {
	Name             *string `json:"name"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	Age              *int    `json:"age"`
	JoinDate         *string `json:"join_date"`
	Role             *string `json:"role"`
	Notes            *string `json:"notes"`
	EmergencyContact *string `json:"emergency_contact"`
	EmergencyPhone   *string `json:"emergency_phone"`
	MedicalInfo      *string `json:"medical_info"`
}

func (h *ParticipantHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req participantUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	update := map[string]interface{}{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Email != nil {
		update["email"] = *req.Email
	}
	if req.Phone != nil {
		update["phone"] = *req.Phone
	}
	if req.Age != nil {
		update["age"] = *req.Age
	}
	if req.JoinDate != nil {
		update["join_date"] = *req.JoinDate
	}
	if req.Role != nil {
		update["role"] = *req.Role
	}
	if req.Notes != nil {
		update["notes"] = *req.Notes
	}
	if req.EmergencyContact != nil {
		update["emergency_contact"] = *req.EmergencyContact
	}
	if req.EmergencyPhone != nil {
		update["emergency_phone"] = *req.EmergencyPhone
	}
	if req.MedicalInfo != nil {
		update["medical_info"] = *req.MedicalInfo
	}
	participant, err := h.participants.Update(c.Request.Context(), id, update)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"participant": participant})
}

type participantStatusRequest struct {
	Status string `json:"status"`
}

func (h *ParticipantHandler) SetStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req participantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	participant, err := h.participants.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"participant": participant})
}

type participantExportRequest struct {
	Format         string `json:"format"`
	IncludeMedical bool   `json:"include_medical"`
}

func (h *ParticipantHandler) Export(c *gin.Context) {
	var req participantExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	doc, err := h.export.ExportParticipants(c.Request.Context(), service.ParticipantExportInput{
		Format:         req.Format,
		IncludeMedical: req.IncludeMedical,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	serveDocument(c, doc)
}
