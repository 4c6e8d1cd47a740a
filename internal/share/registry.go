package share

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
)

const (
	DefaultExpiresInHours = 24
	DefaultMaxAccess      = 100
)

// ContentView is the resolved payload behind a share link.
type ContentView struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Resolver fetches the content a record points at. Implementations return
// ErrNotFound for missing or inactive content and ErrBadContentType for
// kinds they do not know.
type Resolver interface {
	Resolve(ctx context.Context, contentType string, contentID int64) (*ContentView, error)
}

type Registry struct {
	store    Store
	resolver Resolver
	now      func() time.Time
}

func NewRegistry(store Store, resolver Resolver) *Registry {
	return &Registry{store: store, resolver: resolver, now: time.Now}
}

type CreateInput struct {
	ContentType    string
	ContentID      int64
	CreatedBy      int64
	ExpiresInHours int
	Password       string
	MaxAccess      int
}

// Create issues a new share record. Content existence is not checked here;
// the consume path reports NotFound if the content is gone by then.
// Permission and ownership checks belong to the caller since ownership is
// content-type-specific.
func (r *Registry) Create(input CreateInput) (*Record, error) {
	if input.ContentType == "" || input.ContentID == 0 {
		return nil, appErr.ErrInvalid
	}
	hours := input.ExpiresInHours
	if hours <= 0 {
		hours = DefaultExpiresInHours
	}
	maxAccess := input.MaxAccess
	if maxAccess <= 0 {
		maxAccess = DefaultMaxAccess
	}
	now := r.now()
	rec := Record{
		ContentType: input.ContentType,
		ContentID:   input.ContentID,
		CreatedBy:   input.CreatedBy,
		ExpiresAt:   now.Add(time.Duration(hours) * time.Hour),
		Password:    input.Password,
		MaxAccess:   maxAccess,
		Ctime:       now,
	}
	for attempt := 0; attempt < 5; attempt++ {
		rec.Token = newToken()
		if r.store.Put(rec) {
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("share token generation kept colliding: %w", appErr.ErrInternal)
}

type AccessInfo struct {
	AccessCount int       `json:"access_count"`
	MaxAccess   int       `json:"max_access"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type AccessResult struct {
	Content *ContentView `json:"data"`
	Access  AccessInfo   `json:"access_info"`
}

// ResolveAndConsume walks the terminal outcomes in a fixed order: absent,
// expired (record purged), limit reached (record kept), password missing,
// password wrong, then success. Expiry is checked before the password on
// purpose, so even a gated link reports "expired" to an unauthenticated
// caller; this mirrors how links have always behaved here.
func (r *Registry) ResolveAndConsume(ctx context.Context, token string, suppliedPassword *string) (*AccessResult, error) {
	rec, ok := r.store.Get(token)
	if !ok {
		return nil, appErr.ErrNotFound
	}
	if r.now().After(rec.ExpiresAt) {
		r.store.Delete(token)
		return nil, appErr.ErrExpired
	}
	if rec.AccessCount >= rec.MaxAccess {
		return nil, appErr.ErrLimitExceeded
	}
	if rec.Password != "" {
		if suppliedPassword == nil {
			return nil, appErr.ErrPasswordNeeded
		}
		if *suppliedPassword != rec.Password {
			return nil, appErr.ErrInvalidPassword
		}
	}
	// The store enforces the ceiling again here, so two consumers racing on
	// the last slot cannot both get through.
	count, err := r.store.Increment(token)
	if err != nil {
		return nil, err
	}
	view, err := r.resolver.Resolve(ctx, rec.ContentType, rec.ContentID)
	if err != nil {
		return nil, err
	}
	return &AccessResult{
		Content: view,
		Access: AccessInfo{
			AccessCount: count,
			MaxAccess:   rec.MaxAccess,
			ExpiresAt:   rec.ExpiresAt,
		},
	}, nil
}

type Summary struct {
	Token             string    `json:"token"`
	Type              string    `json:"type"`
	ExpiresAt         time.Time `json:"expires_at"`
	AccessCount       int       `json:"access_count"`
	MaxAccess         int       `json:"max_access"`
	PasswordProtected bool      `json:"password_protected"`
}

func (r *Registry) List(userID int64) []Summary {
	records := r.store.ListByCreator(userID)
	items := make([]Summary, 0, len(records))
	for _, rec := range records {
		items = append(items, Summary{
			Token:             rec.Token,
			Type:              rec.ContentType,
			ExpiresAt:         rec.ExpiresAt,
			AccessCount:       rec.AccessCount,
			MaxAccess:         rec.MaxAccess,
			PasswordProtected: rec.PasswordProtected(),
		})
	}
	return items
}

// Delete removes the caller's own link. Only the creator may delete; there is
// no admin override here, unlike link creation.
func (r *Registry) Delete(userID int64, token string) error {
	rec, ok := r.store.Get(token)
	if !ok {
		return appErr.ErrNotFound
	}
	if rec.CreatedBy != userID {
		return appErr.ErrForbidden
	}
	r.store.Delete(token)
	return nil
}

func newToken() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
