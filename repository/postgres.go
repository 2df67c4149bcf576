package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/bookshelf/pkg/pg"
	"github.com/dmitrymomot/bookshelf/svc/auth"
)

// PostgresStore keeps identities in the users table and saved books in the
// saved_books table. Apply the embedded migrations before use.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresStore returns a store over the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, now: time.Now}
}

const (
	selectIdentityByEmail = `SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`
	selectIdentityByID    = `SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`
	insertIdentity        = `INSERT INTO users (id, username, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`
	selectSavedBooks      = `SELECT book_id, authors, title, description, image, link FROM saved_books WHERE user_id = $1 ORDER BY position`
	insertSavedBook       = `INSERT INTO saved_books (user_id, book_id, authors, title, description, image, link)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, book_id) DO NOTHING`
	deleteSavedBook = `DELETE FROM saved_books WHERE user_id = $1 AND book_id = $2`
)

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*auth.Identity, error) {
	return s.load(ctx, selectIdentityByEmail, email)
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*auth.Identity, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, auth.ErrIdentityNotFound
	}
	return s.load(ctx, selectIdentityByID, uid)
}

func (s *PostgresStore) Create(ctx context.Context, identity *auth.Identity) (*auth.Identity, error) {
	created := *identity
	created.ID = uuid.NewString()
	created.SavedBooks = []auth.Book{}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = s.now().UTC()
	}

	_, err := s.pool.Exec(ctx, insertIdentity,
		created.ID, created.Username, created.Email, created.PasswordHash, created.CreatedAt)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return nil, auth.ErrIdentityExists
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) AddBook(ctx context.Context, identityID string, book auth.Book) (*auth.Identity, error) {
	uid, err := uuid.Parse(identityID)
	if err != nil {
		return nil, auth.ErrIdentityNotFound
	}

	authors := book.Authors
	if authors == nil {
		authors = []string{}
	}

	_, err = s.pool.Exec(ctx, insertSavedBook,
		uid, book.BookID, authors, book.Title, book.Description, book.Image, book.Link)
	if err != nil {
		if pg.IsForeignKeyViolationError(err) {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("insert saved book: %w", err)
	}
	return s.load(ctx, selectIdentityByID, uid)
}

func (s *PostgresStore) RemoveBook(ctx context.Context, identityID, bookID string) (*auth.Identity, error) {
	uid, err := uuid.Parse(identityID)
	if err != nil {
		return nil, auth.ErrIdentityNotFound
	}

	if _, err := s.pool.Exec(ctx, deleteSavedBook, uid, bookID); err != nil {
		return nil, fmt.Errorf("delete saved book: %w", err)
	}
	return s.load(ctx, selectIdentityByID, uid)
}

// load reads one identity row and its saved books from a single snapshot.
func (s *PostgresStore) load(ctx context.Context, query string, arg any) (*auth.Identity, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin read: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		identity auth.Identity
		id       uuid.UUID
	)
	err = tx.QueryRow(ctx, query, arg).Scan(
		&id, &identity.Username, &identity.Email, &identity.PasswordHash, &identity.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("select identity: %w", err)
	}
	identity.ID = id.String()

	rows, err := tx.Query(ctx, selectSavedBooks, id)
	if err != nil {
		return nil, fmt.Errorf("select saved books: %w", err)
	}
	identity.SavedBooks, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (auth.Book, error) {
		var b auth.Book
		err := row.Scan(&b.BookID, &b.Authors, &b.Title, &b.Description, &b.Image, &b.Link)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan saved books: %w", err)
	}
	if identity.SavedBooks == nil {
		identity.SavedBooks = []auth.Book{}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit read: %w", err)
	}
	return &identity, nil
}
