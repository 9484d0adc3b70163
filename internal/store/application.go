package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateApplication inserts an application. A second application by the same
// applicant to the same job fails with ErrDuplicate.
func (s *Store) CreateApplication(ctx context.Context, app Application) (Application, error) {
	coll, err := s.collection(applicationsCollection)
	if err != nil {
		return Application{}, err
	}
	now := time.Now().UTC()
	app.ID = primitive.NewObjectID()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = ApplicationPending
	}
	if _, err := coll.InsertOne(ctx, app); err != nil {
		return Application{}, translate(err)
	}
	return app, nil
}

// GetApplicationByID looks an application up by id.
func (s *Store) GetApplicationByID(ctx context.Context, id primitive.ObjectID) (Application, error) {
	coll, err := s.collection(applicationsCollection)
	if err != nil {
		return Application{}, err
	}
	var app Application
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		return Application{}, translate(err)
	}
	return app, nil
}

// ListApplicationsByApplicant returns the applicant's applications, newest first.
func (s *Store) ListApplicationsByApplicant(ctx context.Context, applicantID primitive.ObjectID) ([]Application, error) {
	return s.listApplications(ctx, bson.M{"applicant_id": applicantID})
}

// ListApplicationsByJob returns all applications to a job, newest first.
func (s *Store) ListApplicationsByJob(ctx context.Context, jobID primitive.ObjectID) ([]Application, error) {
	return s.listApplications(ctx, bson.M{"job_id": jobID})
}

func (s *Store) listApplications(ctx context.Context, filter bson.M) ([]Application, error) {
	coll, err := s.collection(applicationsCollection)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, translate(err)
	}
	apps := []Application{}
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, translate(err)
	}
	return apps, nil
}

// UpdateApplicationStatus sets the status and returns the updated application.
func (s *Store) UpdateApplicationStatus(ctx context.Context, id primitive.ObjectID, status string) (Application, error) {
	coll, err := s.collection(applicationsCollection)
	if err != nil {
		return Application{}, err
	}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	var app Application
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&app); err != nil {
		return Application{}, translate(err)
	}
	return app, nil
}
