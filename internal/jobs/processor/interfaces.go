package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"

	"jobmatch/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store defines the database operations required by JobProcessor
type Store interface {
	CreateJob(ctx context.Context, job store.Job) (store.Job, error)
	GetJobByID(ctx context.Context, id primitive.ObjectID) (store.Job, error)
	ListJobs(ctx context.Context, params store.ListJobsParams) (store.ListJobsResult, error)
	UpdateJob(ctx context.Context, id primitive.ObjectID, params store.UpdateJobParams) (store.Job, error)
	DeleteJob(ctx context.Context, id primitive.ObjectID) error
}
