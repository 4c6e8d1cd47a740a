package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/kashafah/scouthub/internal/config"
	"github.com/kashafah/scouthub/internal/middleware"
	"github.com/kashafah/scouthub/internal/service"
	"github.com/kashafah/scouthub/internal/share"
)

type stubResolver struct{}

func (stubResolver) Resolve(ctx context.Context, contentType string, contentID int64) (*share.ContentView, error) {
	return &share.ContentView{Type: contentType, Data: map[string]interface{}{"id": contentID, "title": "camp plan"}}, nil
}

func newShareTestRouter(t *testing.T, callerID int64) (*gin.Engine, *share.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := share.NewRegistry(share.NewMemoryStore(), stubResolver{})
	shares := NewShareHandler(service.NewShareService(registry, nil, "http://scouthub.local", config.ShareConfig{ExpiresInHours: 24, MaxAccess: 100}))

	router := gin.New()
	router.GET("/api/shared/:token", shares.PublicGet)
	router.POST("/api/shared/:token", shares.PublicPost)

	authed := router.Group("", func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, callerID)
	})
	authed.GET("/api/share-links", shares.List)
	authed.DELETE("/api/share-links/:token", shares.Delete)
	return router, registry
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		buf, _ := json.Marshal(body)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSharedAccessOpenLink(t *testing.T) {
	router, registry := newShareTestRouter(t, 1)
	rec, err := registry.Create(share.CreateInput{ContentType: share.ContentTypeReport, ContentID: 5, CreatedBy: 1})
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/api/shared/"+rec.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Data struct {
				Type string `json:"type"`
			} `json:"data"`
			Access struct {
				AccessCount int `json:"access_count"`
				MaxAccess   int `json:"max_access"`
			} `json:"access_info"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, share.ContentTypeReport, resp.Data.Data.Type)
	require.Equal(t, 1, resp.Data.Access.AccessCount)
	require.Equal(t, 100, resp.Data.Access.MaxAccess)
}

func TestSharedAccessUnknownToken(t *testing.T) {
	router, _ := newShareTestRouter(t, 1)

	w := doRequest(router, http.MethodGet, "/api/shared/deadbeef", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSharedAccessPasswordGate(t *testing.T) {
	router, registry := newShareTestRouter(t, 1)
	rec, err := registry.Create(share.CreateInput{ContentType: share.ContentTypeReport, ContentID: 5, CreatedBy: 1, Password: "s3cret"})
	require.NoError(t, err)

	// a GET without a password is not an error, the page needs to prompt
	w := doRequest(router, http.MethodGet, "/api/shared/"+rec.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"password_required":true`)

	// a POST without a password field counts as an empty-password attempt
	w = doRequest(router, http.MethodPost, "/api/shared/"+rec.Token, gin.H{})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodPost, "/api/shared/"+rec.Token, gin.H{"password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodPost, "/api/shared/"+rec.Token, gin.H{"password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSharedAccessLimitExceeded(t *testing.T) {
	router, registry := newShareTestRouter(t, 1)
	rec, err := registry.Create(share.CreateInput{ContentType: share.ContentTypeReport, ContentID: 5, CreatedBy: 1, MaxAccess: 1})
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/api/shared/"+rec.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/shared/"+rec.Token, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestShareLinksListAndDelete(t *testing.T) {
	router, registry := newShareTestRouter(t, 1)
	rec, err := registry.Create(share.CreateInput{ContentType: share.ContentTypeReport, ContentID: 5, CreatedBy: 1, Password: "s3cret"})
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/api/share-links", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), rec.Token)
	require.Contains(t, w.Body.String(), `"password_protected":true`)
	// the password itself never leaves the registry
	require.NotContains(t, w.Body.String(), "s3cret")

	w = doRequest(router, http.MethodDelete, "/api/share-links/"+rec.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/shared/"+rec.Token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestShareLinkDeleteForbiddenForOtherUser(t *testing.T) {
	router, registry := newShareTestRouter(t, 2)
	rec, err := registry.Create(share.CreateInput{ContentType: share.ContentTypeReport, ContentID: 5, CreatedBy: 1})
	require.NoError(t, err)

	w := doRequest(router, http.MethodDelete, "/api/share-links/"+rec.Token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}
