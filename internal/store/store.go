package store

import (
	"context"
	"errors"
	"fmt"

	"jobmatch/internal/observability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicate           = errors.New("duplicate document")
	ErrInvalidID           = errors.New("invalid id")
	ErrDatabaseUnavailable = errors.New("database unavailable")
)

const (
	usersCollection        = "users"
	jobsCollection         = "jobs"
	applicationsCollection = "applications"
)

// Store is the repository over the document store. A Store built with a nil
// client serves degraded mode: every operation fails with ErrDatabaseUnavailable.
type Store struct {
	db     *mongo.Database
	logger *observability.Logger
}

func New(client *mongo.Client, databaseName string, logger *observability.Logger) *Store {
	s := &Store{logger: logger}
	if client != nil {
		s.db = client.Database(databaseName)
	}
	return s
}

// Available reports whether the store has a live client.
func (s *Store) Available() bool {
	return s != nil && s.db != nil
}

func (s *Store) collection(name string) (*mongo.Collection, error) {
	if !s.Available() {
		return nil, ErrDatabaseUnavailable
	}
	return s.db.Collection(name), nil
}

// EnsureIndexes creates the indexes the repositories rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if !s.Available() {
		return ErrDatabaseUnavailable
	}
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		jobsCollection: {
			{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}},
			{Keys: bson.D{{Key: "posted_by", Value: 1}}},
		},
		applicationsCollection: {
			{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "applicant_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "applicant_id", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			s.logger.Error(ctx, "failed to create indexes", err, observability.Field{Key: "collection", Value: name})
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}
	return nil
}

// ParseID converts a hex string into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return oid, nil
}

// translate maps driver errors onto store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
