package auth

import "time"

// Identity is a registered account together with its saved books.
type Identity struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	SavedBooks   []Book    `json:"savedBooks"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BookCount returns the number of saved books.
func (i *Identity) BookCount() int {
	return len(i.SavedBooks)
}

// HasBook reports whether a book with the given id is already saved.
func (i *Identity) HasBook(bookID string) bool {
	for _, b := range i.SavedBooks {
		if b.BookID == bookID {
			return true
		}
	}
	return false
}

// Book is a snapshot of an external catalog entry saved to an identity's list.
// BookID is the catalog identifier and is unique within one identity.
type Book struct {
	BookID      string   `json:"bookId"`
	Authors     []string `json:"authors"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Link        string   `json:"link"`
}

// Payload is the identity data embedded into tokens and carried by an
// authenticated request context.
type Payload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	ID       string `json:"_id"`
}

// PayloadOf extracts the token payload fields from an identity.
func PayloadOf(identity *Identity) Payload {
	return Payload{
		Username: identity.Username,
		Email:    identity.Email,
		ID:       identity.ID,
	}
}

// Session is returned by signup and login: a fresh token and the identity it was issued for.
type Session struct {
	Token    string    `json:"token"`
	Identity *Identity `json:"user"`
}
