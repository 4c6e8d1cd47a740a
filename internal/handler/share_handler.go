package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
	"github.com/kashafah/scouthub/internal/pkg/response"
	"github.com/kashafah/scouthub/internal/service"
)

type ShareHandler struct {
	shares *service.ShareService
}

func NewShareHandler(shares *service.ShareService) *ShareHandler {
	return &ShareHandler{shares: shares}
}

type createShareRequest struct {
	ExpiresInHours int    `json:"expires_in_hours"`
	Password       string `json:"password"`
	MaxAccess      int    `json:"max_access"`
}

func (h *ShareHandler) Create(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req createShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	link, err := h.shares.CreateReportLink(c.Request.Context(), user, id, service.ShareLinkInput{
		ExpiresInHours: req.ExpiresInHours,
		Password:       req.Password,
		MaxAccess:      req.MaxAccess,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, link)
}

type accessShareRequest struct {
	Password *string `json:"password"`
}

// PublicGet probes a link without a password. A gated link answers 200 with a
// password_required flag so the page can prompt; everything else behaves like
// a consume.
func (h *ShareHandler) PublicGet(c *gin.Context) {
	h.access(c, nil)
}

func (h *ShareHandler) PublicPost(c *gin.Context) {
	// body is optional; a bare POST counts as an empty password attempt
	var req accessShareRequest
	_ = c.ShouldBindJSON(&req)
	password := req.Password
	if password == nil {
		empty := ""
		password = &empty
	}
	h.access(c, password)
}

func (h *ShareHandler) access(c *gin.Context, password *string) {
	result, err := h.shares.Access(c.Request.Context(), c.Param("token"), password)
	if errors.Is(err, appErr.ErrPasswordNeeded) {
		response.Success(c, gin.H{"password_required": true})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *ShareHandler) List(c *gin.Context) {
	response.Success(c, gin.H{"share_links": h.shares.List(getUserID(c))})
}

func (h *ShareHandler) Delete(c *gin.Context) {
	if err := h.shares.Delete(getUserID(c), c.Param("token")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
