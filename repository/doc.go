// Package repository holds the identity stores behind auth.Store and
// books.Store: an in-memory store for tests and local runs, a MongoDB store
// and a PostgreSQL store.
//
// All stores keep username and email unique, keep BookID unique within one
// identity and apply saved-book changes atomically per identity.
package repository

import (
	"github.com/dmitrymomot/bookshelf/svc/auth"
	"github.com/dmitrymomot/bookshelf/svc/books"
)

// Store is the full identity store used by the application.
type Store interface {
	auth.Store
	books.Store
}
