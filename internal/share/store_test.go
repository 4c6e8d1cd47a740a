package share

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
)

func TestMemoryStorePutRejectsDuplicateToken(t *testing.T) {
	store := NewMemoryStore()
	rec := Record{Token: "t1", ContentType: ContentTypeReport, ContentID: 1, MaxAccess: 10}
	require.True(t, store.Put(rec))
	require.False(t, store.Put(rec))
}

func TestMemoryStoreGetReturnsSnapshot(t *testing.T) {
	store := NewMemoryStore()
	require.True(t, store.Put(Record{Token: "t1", ContentID: 1, MaxAccess: 10}))

	snapshot, ok := store.Get("t1")
	require.True(t, ok)
	snapshot.AccessCount = 99

	fresh, _ := store.Get("t1")
	require.Equal(t, 0, fresh.AccessCount)
}

func TestMemoryStoreIncrementStopsAtCeiling(t *testing.T) {
	store := NewMemoryStore()
	require.True(t, store.Put(Record{Token: "t1", ContentID: 1, MaxAccess: 2}))

	count, err := store.Increment("t1")
	require.NoError(t, err)
	require.Equal(t, 1, count)
	count, err = store.Increment("t1")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	_, err = store.Increment("t1")
	require.ErrorIs(t, err, appErr.ErrLimitExceeded)
	_, err = store.Increment("missing")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestMemoryStoreIncrementIsAtomic(t *testing.T) {
	store := NewMemoryStore()
	const max = 50
	require.True(t, store.Put(Record{Token: "t1", ContentID: 1, MaxAccess: max, ExpiresAt: time.Now().Add(time.Hour)}))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Increment("t1")
		}()
	}
	wg.Wait()

	rec, ok := store.Get("t1")
	require.True(t, ok)
	require.Equal(t, max, rec.AccessCount)
}

func TestMemoryStoreListByCreator(t *testing.T) {
	store := NewMemoryStore()
	require.True(t, store.Put(Record{Token: "a", CreatedBy: 1, MaxAccess: 1}))
	require.True(t, store.Put(Record{Token: "b", CreatedBy: 2, MaxAccess: 1}))
	require.True(t, store.Put(Record{Token: "c", CreatedBy: 1, MaxAccess: 1}))

	items := store.ListByCreator(1)
	require.Len(t, items, 2)
	require.Empty(t, store.ListByCreator(3))
}
