package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"

	"jobmatch/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store defines the database operations required by ApplicationProcessor
type Store interface {
	GetJobByID(ctx context.Context, id primitive.ObjectID) (store.Job, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (store.User, error)
	CreateApplication(ctx context.Context, app store.Application) (store.Application, error)
	GetApplicationByID(ctx context.Context, id primitive.ObjectID) (store.Application, error)
	ListApplicationsByApplicant(ctx context.Context, applicantID primitive.ObjectID) ([]store.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID primitive.ObjectID) ([]store.Application, error)
	UpdateApplicationStatus(ctx context.Context, id primitive.ObjectID, status string) (store.Application, error)
}

// Notifier sends best effort emails about application activity
type Notifier interface {
	ApplicationReceived(ctx context.Context, employer store.User, job store.Job, applicant store.User) error
	ApplicationStatusChanged(ctx context.Context, applicant store.User, job store.Job, status string) error
}
