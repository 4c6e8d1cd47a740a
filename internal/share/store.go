package share

import (
	"sync"
	"time"

	appErr "github.com/kashafah/scouthub/internal/pkg/errors"
)

const ContentTypeReport = "report"

// Record is a share link entry. Password never leaves the registry; callers
// only see the password_protected flag on summaries.
type Record struct {
	Token       string    `json:"token"`
	ContentType string    `json:"content_type"`
	ContentID   int64     `json:"content_id"`
	CreatedBy   int64     `json:"created_by"`
	ExpiresAt   time.Time `json:"expires_at"`
	Password    string    `json:"-"`
	AccessCount int       `json:"access_count"`
	MaxAccess   int       `json:"max_access"`
	Ctime       time.Time `json:"ctime"`
}

func (r *Record) PasswordProtected() bool {
	return r.Password != ""
}

// Store holds share records keyed by token. Implementations must make each
// method atomic per token; Increment must never push AccessCount past
// MaxAccess even under concurrent consumers. The registry owns all record
// lifecycle decisions, the store only keeps state, so a durable backend can
// be swapped in without touching registry logic.
type Store interface {
	Get(token string) (Record, bool)
	Put(rec Record) bool
	Delete(token string) bool
	Increment(token string) (int, error)
	ListByCreator(userID int64) []Record
}

type memoryStore struct {
	mu      sync.Mutex
	records map[string]*Record
}

// NewMemoryStore returns the process-lifetime in-memory store. Records are
// deliberately not persisted anywhere.
func NewMemoryStore() Store {
	return &memoryStore{records: make(map[string]*Record)}
}

func (s *memoryStore) Get(token string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[token]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Put inserts the record and reports false when the token is already taken.
func (s *memoryStore) Put(rec Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.Token]; exists {
		return false
	}
	s.records[rec.Token] = &rec
	return true
}

func (s *memoryStore) Delete(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[token]; !ok {
		return false
	}
	delete(s.records, token)
	return true
}

// Increment bumps the access counter, refusing to cross MaxAccess.
func (s *memoryStore) Increment(token string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[token]
	if !ok {
		return 0, appErr.ErrNotFound
	}
	if rec.AccessCount >= rec.MaxAccess {
		return rec.AccessCount, appErr.ErrLimitExceeded
	}
	rec.AccessCount++
	return rec.AccessCount, nil
}

func (s *memoryStore) ListByCreator(userID int64) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Record, 0)
	for _, rec := range s.records {
		if rec.CreatedBy == userID {
			items = append(items, *rec)
		}
	}
	return items
}
