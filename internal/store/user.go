package store

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateUser inserts a new user. Emails are stored lower-cased.
func (s *Store) CreateUser(ctx context.Context, user User) (User, error) {
	coll, err := s.collection(usersCollection)
	if err != nil {
		return User{}, err
	}
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = now
	user.UpdatedAt = now
	if _, err := coll.InsertOne(ctx, user); err != nil {
		return User{}, translate(err)
	}
	return user, nil
}

// GetUserByEmail looks a user up by (case-insensitive) email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	coll, err := s.collection(usersCollection)
	if err != nil {
		return User{}, err
	}
	var user User
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return User{}, translate(err)
	}
	return user, nil
}

// GetUserByID looks a user up by id.
func (s *Store) GetUserByID(ctx context.Context, id primitive.ObjectID) (User, error) {
	coll, err := s.collection(usersCollection)
	if err != nil {
		return User{}, err
	}
	var user User
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return User{}, translate(err)
	}
	return user, nil
}

// UpdateUserProfile applies the non-nil fields and returns the updated user.
func (s *Store) UpdateUserProfile(ctx context.Context, id primitive.ObjectID, params UpdateProfileParams) (User, error) {
	coll, err := s.collection(usersCollection)
	if err != nil {
		return User{}, err
	}
	set := bson.M{"updated_at": time.Now().UTC()}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.Headline != nil {
		set["headline"] = *params.Headline
	}
	if params.Location != nil {
		set["location"] = *params.Location
	}
	if params.Skills != nil {
		set["skills"] = params.Skills
	}
	if params.ResumePath != nil {
		set["resume_path"] = *params.ResumePath
	}

	var user User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user); err != nil {
		return User{}, translate(err)
	}
	return user, nil
}
