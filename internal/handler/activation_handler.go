package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kashafah/scouthub/internal/pkg/response"
	"github.com/kashafah/scouthub/internal/service"
)

// ActivationHandler covers admin management of activation codes; redeeming a
// code lives on the auth handler.
type ActivationHandler struct {
	activation *service.ActivationService
}

func NewActivationHandler(activation *service.ActivationService) *ActivationHandler {
	return &ActivationHandler{activation: activation}
}

type activationCodeRequest struct {
	Description string `json:"description"`
	MaxUses     int    `json:"max_uses"`
	ExpiresAt   int64  `json:"expires_at"`
}

func (h *ActivationHandler) Create(c *gin.Context) {
	var req activationCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	code, err := h.activation.CreateCode(c.Request.Context(), getUserID(c), service.ActivationCodeInput{
		Description: req.Description,
		MaxUses:     req.MaxUses,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"activation_code": code})
}

func (h *ActivationHandler) List(c *gin.Context) {
	codes, err := h.activation.ListCodes(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"activation_codes": codes})
}

func (h *ActivationHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.activation.DeactivateCode(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *ActivationHandler) ListActivations(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	activations, err := h.activation.ListActivations(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"activations": activations})
}
