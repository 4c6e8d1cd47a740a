package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kashafah/scouthub/internal/pkg/response"
	"github.com/kashafah/scouthub/internal/service"
)

type ActivityHandler struct {
	activities *service.ActivityService
}

func NewActivityHandler(activities *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

type activityRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Location        string `json:"location"`
	MaxParticipants int    `json:"max_participants"`
	Status          string `json:"status"`
}

func (h *ActivityHandler) Create(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	activity, err := h.activities.Create(c.Request.Context(), getUserID(c), service.ActivityInput{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
		Status:          req.Status,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"activity": activity})
}

func (h *ActivityHandler) List(c *gin.Context) {
	activities, err := h.activities.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"activities": activities})
}

func (h *ActivityHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	activity, err := h.activities.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"activity": activity})
}

type activityUpdateRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	Location        *string `json:"location"`
	MaxParticipants *int    `json:"max_participants"`
	Status          *string `json:"status"`
}

func (h *ActivityHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req activityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	update := map[string]interface{}{}
	if req.Title != nil {
		update["title"] = *req.Title
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Date != nil {
		update["date"] = *req.Date
	}
	if req.Time != nil {
		update["time"] = *req.Time
	}
	if req.Location != nil {
		update["location"] = *req.Location
	}
	if req.MaxParticipants != nil {
		update["max_participants"] = *req.MaxParticipants
	}
	if req.Status != nil {
		update["status"] = *req.Status
	}
	activity, err := h.activities.Update(c.Request.Context(), id, update)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"activity": activity})
}

type attendanceRequest struct {
	ParticipantID int64  `json:"participant_id"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
}

func (h *ActivityHandler) RecordAttendance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	record, err := h.activities.RecordAttendance(c.Request.Context(), getUserID(c), id, service.AttendanceInput{
		ParticipantID: req.ParticipantID,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"attendance": record})
}

func (h *ActivityHandler) ListAttendance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	records, err := h.activities.ListAttendance(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"attendance": records})
}
