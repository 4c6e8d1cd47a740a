package share

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
)

type stubResolver struct {
	lastType string
	lastID   int64
	err      error
}

func (s *stubResolver) Resolve(_ context.Context, contentType string, contentID int64) (*ContentView, error) {
	s.lastType = contentType
	s.lastID = contentID
	if s.err != nil {
		return nil, s.err
	}
	return &ContentView{Type: contentType, Data: map[string]interface{}{"id": contentID}}, nil
}

func newTestRegistry(t *testing.T) (*Registry, *stubResolver) {
	t.Helper()
	resolver := &stubResolver{}
	return NewRegistry(NewMemoryStore(), resolver), resolver
}

func TestCreateAppliesDefaults(t *testing.T) {
	registry, _ := newTestRegistry(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return base }

	rec, err := registry.Create(CreateInput{ContentType: ContentTypeReport, ContentID: 7, CreatedBy: 1})
	require.NoError(t, err)
	require.NotEmpty(t, rec.Token)
	require.Equal(t, base.Add(24*time.Hour), rec.ExpiresAt)
	require.Equal(t, 100, rec.MaxAccess)
	require.Equal(t, 0, rec.AccessCount)
	require.False(t, rec.PasswordProtected())
}

func TestCreateRejectsMissingContent(t *testing.T) {
	registry, _ := newTestRegistry(t)
	_, err := registry.Create(CreateInput{ContentType: "", ContentID: 7})
	require.ErrorIs(t, err, appErr.ErrInvalid)
	_, err = registry.Create(CreateInput{ContentType: ContentTypeReport})
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestResolveAndConsumeIncrementsByOne(t *testing.T) {
	registry, resolver := newTestRegistry(t)
	rec, err := registry.Create(CreateInput{ContentType: ContentTypeReport, ContentID: 7, CreatedBy: 1})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		result, err := registry.ResolveAndConsume(context.Background(), rec.Token, nil)
		require.NoError(t, err)
		require.Equal(t, i, result.Access.AccessCount)
		require.Equal(t, 100, result.Access.MaxAccess)
	}
	require.Equal(t, ContentTypeReport, resolver.lastType)
	require.Equal(t, int64(7), resolver.lastID)
}

func TestResolveAndConsumeUnknownToken(t *testing.T) {
	registry, _ := newTestRegistry(t)
	_, err := registry.ResolveAndConsume(context.Background(), "nope", nil)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestExpiredLinkIsPurged(t *testing.T) {
	registry, _ := newTestRegistry(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return base }
	rec, err := registry.Create(CreateInput{ContentType: ContentTypeReport, ContentID: 7, CreatedBy: 1, ExpiresInHours: 1})
	require.NoError(t, err)

	registry.now = func() time.Time { return base.Add(61 * time.Minute) }
	_, err = registry.ResolveAndConsume(context.Background(), rec.Token, nil)
	require.ErrorIs(t, err, appErr.ErrExpired)

	// gone for good: second access no longer distinguishes it from a bad token
	_, err = registry.ResolveAndConsume(context.Background(), rec.Token, nil)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestExpiryCheckedBeforePassword(t *testing.T) {
	registry, _ := newTestRegistry(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return base }
	rec, err := registry.Create(CreateInput{ContentType: ContentTypeReport, ContentID: 7, CreatedBy: 1, ExpiresInHours: 1, Password: "secret"})
	require.NoError(t, err)

	registry.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, err = registry.ResolveAndConsume(context.Background(), rec.Token, nil)
	require.ErrorIs(t, err, appErr.ErrExpired)
}

func TestAccessLimit(t *testing.T) {
	registry, _ := newTestRegistry(t)
	rec, err := registry.Create(CreateInput{ContentType: ContentTypeReport, ContentID: 7, CreatedBy: 1, ExpiresInHours: 1, MaxAccess: 2})
	require.NoError(t, err)

	first, err := registry.ResolveAndConsume(context.Background(), rec.Token, nil)
	require.NoError(t, err)
	require.Equal(t, 1, first.Access.AccessCount)
	second, err := registry.ResolveAndConsume(context.Background(), rec.Token, nil)
	require.NoError(t, err)
	require.Equal(t, 2, second.Access.AccessCount)

	_, err = registry.ResolveAndConsume(context.Background(), rec.Token, nil)
	require.ErrorIs(t, err, appErr.ErrLimitExceeded)

	// limit is permanent, record sticks around and the counter stays put
	stored, ok := registry.store.Get(rec.Token)
	require.True(t, ok)
	require.Equal(t, 2, stored.AccessCount)
}

func TestLimitCheckedBeforePassword(t *testing.T) {
	registry, _ := newTestRegistry(t)
	rec, err := registry.Create(CreateInput{ContentType: ContentTypeReport, ContentID: 7, CreatedBy: 1, Password: "secret", MaxAccess: 1})
	require.NoError(t, err)

	pw := "secret"
	_, err = registry.ResolveAndConsume(context.Background(), rec.Token, &pw)
	require.NoError(t, err)

	// no password supplied: the limit error still wins over the password gate
	_, err = registry.ResolveAndConsume(context.Background(), rec.Token, nil)
	require.ErrorIs(t, err, appErr.ErrLimitExceeded)
}

func TestPasswordGate(t *testing.T) {
	registry, _ := newTestRegistry(t)
	rec, err := registry.Create(CreateInput{ContentType: ContentTypeReport, ContentID: 7, CreatedBy: 1, Password: "x"})
	require.NoError(t, err)

	_, err = registry.ResolveAndConsume(context.Background(), rec.Token, nil)
	require.ErrorIs(t, err, appErr.ErrPasswordNeeded)

	wrong := "y"
	_, err = registry.ResolveAndConsume(context.Background(), rec.Token, &wrong)
	require.ErrorIs(t, err, appErr.ErrInvalidPassword)

	right := "x"
	result, err := registry.ResolveAndConsume(context.Background(), rec.Token, &right)
	require.NoError(t, err)
	require.Equal(t, 1, result.Access.AccessCount)

	// the retry signal and the wrong guess never consumed an access
	stored, _ := registry.store.Get(rec.Token)
	require.Equal(t, 1, stored.AccessCount)
}

func TestResolverErrorPropagates(t *testing.T) {
	registry, resolver := newTestRegistry(t)
	resolver.err = appErr.ErrNotFound
	rec, err := registry.Create(CreateInput{ContentType: ContentTypeReport, ContentID: 404, CreatedBy: 1})
	require.NoError(t, err)

	_, err = registry.ResolveAndConsume(context.Background(), rec.Token, nil)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestListOmitsPassword(t *testing.T) {
	registry, _ := newTestRegistry(t)
	_, err := registry.Create(CreateInput{ContentType: ContentTypeReport, ContentID: 1, CreatedBy: 1, Password: "x"})
	require.NoError(t, err)
	_, err = registry.Create(CreateInput{ContentType: ContentTypeReport, ContentID: 2, CreatedBy: 2})
	require.NoError(t, err)

	items := registry.List(1)
	require.Len(t, items, 1)
	require.True(t, items[0].PasswordProtected)
	require.Equal(t, ContentTypeReport, items[0].Type)
}

func TestDeleteOnlyByCreator(t *testing.T) {
	registry, _ := newTestRegistry(t)
	rec, err := registry.Create(CreateInput{ContentType: ContentTypeReport, ContentID: 7, CreatedBy: 1})
	require.NoError(t, err)

	// not even an admin identity gets an override on delete
	require.ErrorIs(t, registry.Delete(99, rec.Token), appErr.ErrForbidden)
	require.NoError(t, registry.Delete(1, rec.Token))
	require.ErrorIs(t, registry.Delete(1, rec.Token), appErr.ErrNotFound)

	_, err = registry.ResolveAndConsume(context.Background(), rec.Token, nil)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestCreateThenConsumeScenario(t *testing.T) {
	// leader shares report 7 for one hour with two accesses
	registry, _ := newTestRegistry(t)
	rec, err := registry.Create(CreateInput{ContentType: ContentTypeReport, ContentID: 7, CreatedBy: 3, ExpiresInHours: 1, MaxAccess: 2})
	require.NoError(t, err)

	first, err := registry.ResolveAndConsume(context.Background(), rec.Token, nil)
	require.NoError(t, err)
	require.Equal(t, 1, first.Access.AccessCount)
	second, err := registry.ResolveAndConsume(context.Background(), rec.Token, nil)
	require.NoError(t, err)
	require.Equal(t, 2, second.Access.AccessCount)
	_, err = registry.ResolveAndConsume(context.Background(), rec.Token, nil)
	require.ErrorIs(t, err, appErr.ErrLimitExceeded)
}
