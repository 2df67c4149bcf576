package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/bookshelf/svc/auth"
)

// MemoryStore keeps identities in process memory. Data is lost on restart.
type MemoryStore struct {
	mu         sync.RWMutex
	identities map[string]*auth.Identity
	byEmail    map[string]string
	byUsername map[string]string
	now        func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		identities: make(map[string]*auth.Identity),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
		now:        time.Now,
	}
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*auth.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}
	return cloneIdentity(s.identities[id]), nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*auth.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.identities[id]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}
	return cloneIdentity(identity), nil
}

func (s *MemoryStore) Create(_ context.Context, identity *auth.Identity) (*auth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(identity.Email)
	if _, taken := s.byEmail[email]; taken {
		return nil, auth.ErrIdentityExists
	}
	if _, taken := s.byUsername[identity.Username]; taken {
		return nil, auth.ErrIdentityExists
	}

	stored := cloneIdentity(identity)
	stored.ID = uuid.NewString()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now().UTC()
	}

	s.identities[stored.ID] = stored
	s.byEmail[email] = stored.ID
	s.byUsername[stored.Username] = stored.ID

	return cloneIdentity(stored), nil
}

func (s *MemoryStore) AddBook(_ context.Context, identityID string, book auth.Book) (*auth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity, ok := s.identities[identityID]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}
	if !identity.HasBook(book.BookID) {
		book.Authors = slices.Clone(book.Authors)
		identity.SavedBooks = append(identity.SavedBooks, book)
	}
	return cloneIdentity(identity), nil
}

func (s *MemoryStore) RemoveBook(_ context.Context, identityID, bookID string) (*auth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity, ok := s.identities[identityID]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}
	identity.SavedBooks = slices.DeleteFunc(identity.SavedBooks, func(b auth.Book) bool {
		return b.BookID == bookID
	})
	return cloneIdentity(identity), nil
}

// Ping always succeeds; it lets the memory store serve the readiness probe.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func cloneIdentity(i *auth.Identity) *auth.Identity {
	c := *i
	c.SavedBooks = make([]auth.Book, len(i.SavedBooks))
	for n, b := range i.SavedBooks {
		b.Authors = slices.Clone(b.Authors)
		c.SavedBooks[n] = b
	}
	return &c
}
