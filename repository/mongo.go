package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/bookshelf/svc/auth"
)

// IdentitiesCollection is the collection that holds identity documents.
const IdentitiesCollection = "users"

type bookDocument struct {
	BookID      string   `bson:"bookId"`
	Authors     []string `bson:"authors"`
	Title       string   `bson:"title"`
	Description string   `bson:"description"`
	Image       string   `bson:"image"`
	Link        string   `bson:"link"`
}

type identityDocument struct {
	ID           bson.ObjectID  `bson:"_id,omitempty"`
	Username     string         `bson:"username"`
	Email        string         `bson:"email"`
	PasswordHash string         `bson:"password"`
	SavedBooks   []bookDocument `bson:"savedBooks"`
	CreatedAt    time.Time      `bson:"createdAt"`
}

// MongoStore keeps one document per identity with saved books embedded.
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoStore returns a store over the identities collection of db.
// Call EnsureIndexes once at startup.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		coll: db.Collection(IdentitiesCollection),
		now:  time.Now,
	}
}

// EnsureIndexes creates the unique email and username indexes.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("create identity indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*auth.Identity, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*auth.Identity, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, auth.ErrIdentityNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoStore) Create(ctx context.Context, identity *auth.Identity) (*auth.Identity, error) {
	doc := toIdentityDocument(identity)
	doc.ID = bson.NilObjectID
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = s.now().UTC()
	}

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, auth.ErrIdentityExists
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert identity: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toIdentity(), nil
}

// AddBook pushes the book only when no saved book has the same id, in one
// atomic update. A filter miss means either the book is already saved or the
// identity does not exist; the follow-up read tells them apart.
func (s *MongoStore) AddBook(ctx context.Context, identityID string, book auth.Book) (*auth.Identity, error) {
	oid, err := bson.ObjectIDFromHex(identityID)
	if err != nil {
		return nil, auth.ErrIdentityNotFound
	}

	filter := bson.M{
		"_id":               oid,
		"savedBooks.bookId": bson.M{"$ne": book.BookID},
	}
	update := bson.M{"$push": bson.M{"savedBooks": toBookDocument(book)}}

	identity, err := s.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, auth.ErrIdentityNotFound) {
		return s.FindByID(ctx, identityID)
	}
	return identity, err
}

func (s *MongoStore) RemoveBook(ctx context.Context, identityID, bookID string) (*auth.Identity, error) {
	oid, err := bson.ObjectIDFromHex(identityID)
	if err != nil {
		return nil, auth.ErrIdentityNotFound
	}

	update := bson.M{"$pull": bson.M{"savedBooks": bson.M{"bookId": bookID}}}
	return s.findOneAndUpdate(ctx, bson.M{"_id": oid}, update)
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*auth.Identity, error) {
	var doc identityDocument
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}
	return doc.toIdentity(), nil
}

func (s *MongoStore) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*auth.Identity, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc identityDocument
	if err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("update identity: %w", err)
	}
	return doc.toIdentity(), nil
}

func toIdentityDocument(i *auth.Identity) identityDocument {
	books := make([]bookDocument, 0, len(i.SavedBooks))
	for _, b := range i.SavedBooks {
		books = append(books, toBookDocument(b))
	}
	return identityDocument{
		Username:     i.Username,
		Email:        i.Email,
		PasswordHash: i.PasswordHash,
		SavedBooks:   books,
		CreatedAt:    i.CreatedAt,
	}
}

func toBookDocument(b auth.Book) bookDocument {
	authors := b.Authors
	if authors == nil {
		authors = []string{}
	}
	return bookDocument{
		BookID:      b.BookID,
		Authors:     authors,
		Title:       b.Title,
		Description: b.Description,
		Image:       b.Image,
		Link:        b.Link,
	}
}

func (d identityDocument) toIdentity() *auth.Identity {
	books := make([]auth.Book, 0, len(d.SavedBooks))
	for _, b := range d.SavedBooks {
		books = append(books, auth.Book{
			BookID:      b.BookID,
			Authors:     b.Authors,
			Title:       b.Title,
			Description: b.Description,
			Image:       b.Image,
			Link:        b.Link,
		})
	}
	return &auth.Identity{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		SavedBooks:   books,
		CreatedAt:    d.CreatedAt,
	}
}
