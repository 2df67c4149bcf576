package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bookshelf/repository"
	"github.com/dmitrymomot/bookshelf/svc/auth"
)

var storeSeq struct {
	sync.Mutex
	n int
}

// uniqueName keeps identities apart when tests share a database.
func uniqueName(prefix string) string {
	storeSeq.Lock()
	defer storeSeq.Unlock()
	storeSeq.n++
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), storeSeq.n)
}

func newIdentity() *auth.Identity {
	name := uniqueName("reader")
	return &auth.Identity{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "$2a$10$hash",
		SavedBooks:   []auth.Book{},
		CreatedAt:    time.Date(2025, time.May, 4, 10, 0, 0, 0, time.UTC),
	}
}

// runStoreTests exercises the behavior every repository.Store must share.
func runStoreTests(t *testing.T, store repository.Store) {
	ctx := context.Background()

	t.Run("create assigns id", func(t *testing.T) {
		in := newIdentity()
		created, err := store.Create(ctx, in)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Empty(t, in.ID, "input must not be modified")
		assert.Equal(t, in.Username, created.Username)
		assert.Empty(t, created.SavedBooks)

		byEmail, err := store.FindByEmail(ctx, in.Email)
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)
		assert.Equal(t, in.PasswordHash, byEmail.PasswordHash)

		byID, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, in.Email, byID.Email)
	})

	t.Run("duplicate email or username", func(t *testing.T) {
		first := newIdentity()
		_, err := store.Create(ctx, first)
		require.NoError(t, err)

		sameEmail := newIdentity()
		sameEmail.Email = first.Email
		_, err = store.Create(ctx, sameEmail)
		assert.ErrorIs(t, err, auth.ErrIdentityExists)

		sameName := newIdentity()
		sameName.Username = first.Username
		_, err = store.Create(ctx, sameName)
		assert.ErrorIs(t, err, auth.ErrIdentityExists)
	})

	t.Run("unknown identity", func(t *testing.T) {
		_, err := store.FindByEmail(ctx, "nobody-"+uniqueName("x")+"@example.com")
		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)

		for _, id := range []string{"", "not-an-id", "665f1b2c9d3e4a0012345678", "0b7c2b0e-8f5d-4f43-9d0e-3b8f7f1f3a11"} {
			_, err = store.FindByID(ctx, id)
			assert.ErrorIs(t, err, auth.ErrIdentityNotFound, "id %q", id)

			_, err = store.AddBook(ctx, id, auth.Book{BookID: "B1", Title: "T"})
			assert.ErrorIs(t, err, auth.ErrIdentityNotFound, "id %q", id)

			_, err = store.RemoveBook(ctx, id, "B1")
			assert.ErrorIs(t, err, auth.ErrIdentityNotFound, "id %q", id)
		}
	})

	t.Run("saved books", func(t *testing.T) {
		created, err := store.Create(ctx, newIdentity())
		require.NoError(t, err)

		dune := auth.Book{
			BookID:      "B1",
			Authors:     []string{"Frank Herbert"},
			Title:       "Dune",
			Description: "Spice.",
			Image:       "https://books.example.com/B1.jpg",
			Link:        "https://books.example.com/B1",
		}

		updated, err := store.AddBook(ctx, created.ID, dune)
		require.NoError(t, err)
		require.Len(t, updated.SavedBooks, 1)
		assert.Equal(t, dune, updated.SavedBooks[0])

		// Adding the same id again is a no-op, even with different metadata.
		again := dune
		again.Title = "Dune (reprint)"
		updated, err = store.AddBook(ctx, created.ID, again)
		require.NoError(t, err)
		require.Len(t, updated.SavedBooks, 1)
		assert.Equal(t, "Dune", updated.SavedBooks[0].Title)

		updated, err = store.AddBook(ctx, created.ID, auth.Book{BookID: "B2", Title: "Emma", Authors: []string{}})
		require.NoError(t, err)
		assert.Equal(t, []string{"B1", "B2"}, bookIDs(updated))

		updated, err = store.RemoveBook(ctx, created.ID, "B1")
		require.NoError(t, err)
		assert.Equal(t, []string{"B2"}, bookIDs(updated))

		updated, err = store.RemoveBook(ctx, created.ID, "missing")
		require.NoError(t, err)
		assert.Equal(t, []string{"B2"}, bookIDs(updated))

		loaded, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"B2"}, bookIDs(loaded))
	})

	t.Run("concurrent adds keep one copy", func(t *testing.T) {
		created, err := store.Create(ctx, newIdentity())
		require.NoError(t, err)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.AddBook(ctx, created.ID, auth.Book{BookID: "B1", Title: "T", Authors: []string{}})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		loaded, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"B1"}, bookIDs(loaded))
	})
}

func bookIDs(i *auth.Identity) []string {
	ids := make([]string, 0, len(i.SavedBooks))
	for _, b := range i.SavedBooks {
		ids = append(ids, b.BookID)
	}
	return ids
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	runStoreTests(t, repository.NewMemoryStore())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := repository.NewMemoryStore()

	created, err := store.Create(ctx, newIdentity())
	require.NoError(t, err)

	updated, err := store.AddBook(ctx, created.ID, auth.Book{BookID: "B1", Title: "T", Authors: []string{"A"}})
	require.NoError(t, err)
	updated.SavedBooks[0].Authors[0] = "mutated"
	updated.SavedBooks = nil

	loaded, err := store.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.SavedBooks, 1)
	assert.Equal(t, []string{"A"}, loaded.SavedBooks[0].Authors)
}
