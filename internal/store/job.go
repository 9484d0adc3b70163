package store

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateJob inserts a job posting.
func (s *Store) CreateJob(ctx context.Context, job Job) (Job, error) {
	coll, err := s.collection(jobsCollection)
	if err != nil {
		return Job{}, err
	}
	now := time.Now().UTC()
	job.ID = primitive.NewObjectID()
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = JobStatusOpen
	}
	if _, err := coll.InsertOne(ctx, job); err != nil {
		return Job{}, translate(err)
	}
	return job, nil
}

// GetJobByID looks a job up by id.
func (s *Store) GetJobByID(ctx context.Context, id primitive.ObjectID) (Job, error) {
	coll, err := s.collection(jobsCollection)
	if err != nil {
		return Job{}, err
	}
	var job Job
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		return Job{}, translate(err)
	}
	return job, nil
}

// ListJobs returns one page of postings, newest first.
func (s *Store) ListJobs(ctx context.Context, params ListJobsParams) (ListJobsResult, error) {
	coll, err := s.collection(jobsCollection)
	if err != nil {
		return ListJobsResult{}, err
	}

	filter := jobsFilter(params)
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return ListJobsResult{}, translate(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(pageSkip(params.Page, params.Limit)).
		SetLimit(int64(params.Limit))
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return ListJobsResult{}, translate(err)
	}
	jobs := make([]Job, 0, params.Limit)
	if err := cursor.All(ctx, &jobs); err != nil {
		return ListJobsResult{}, translate(err)
	}

	return ListJobsResult{Jobs: jobs, TotalCount: total, Page: params.Page, Limit: params.Limit}, nil
}

func jobsFilter(params ListJobsParams) bson.M {
	filter := bson.M{}
	if params.Query != "" {
		filter["$text"] = bson.M{"$search": params.Query}
	}
	if params.Location != "" {
		filter["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(params.Location), Options: "i"}
	}
	if params.Skill != "" {
		filter["skills"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(params.Skill) + "$", Options: "i"}
	}
	if params.Status != "" {
		filter["status"] = params.Status
	}
	return filter
}

// UpdateJob applies the non-nil fields and returns the updated job.
func (s *Store) UpdateJob(ctx context.Context, id primitive.ObjectID, params UpdateJobParams) (Job, error) {
	coll, err := s.collection(jobsCollection)
	if err != nil {
		return Job{}, err
	}
	set := bson.M{"updated_at": time.Now().UTC()}
	setString := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	setString("title", params.Title)
	setString("company", params.Company)
	setString("description", params.Description)
	setString("location", params.Location)
	setString("employment_type", params.EmploymentType)
	setString("status", params.Status)
	if params.Skills != nil {
		set["skills"] = params.Skills
	}
	if params.SalaryMin != nil {
		set["salary_min"] = *params.SalaryMin
	}
	if params.SalaryMax != nil {
		set["salary_max"] = *params.SalaryMax
	}

	var job Job
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&job); err != nil {
		return Job{}, translate(err)
	}
	return job, nil
}

// DeleteJob removes a job and its applications.
func (s *Store) DeleteJob(ctx context.Context, id primitive.ObjectID) error {
	coll, err := s.collection(jobsCollection)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	if _, err := s.db.Collection(applicationsCollection).DeleteMany(ctx, bson.M{"job_id": id}); err != nil {
		return translate(err)
	}
	return nil
}

// pageSkip returns the documents to skip before page, computed in int64 so
// large pages cannot wrap negative.
func pageSkip(page, limit int) int64 {
	if page < 1 || limit < 1 {
		return 0
	}
	skip := (int64(page) - 1) * int64(limit)
	if skip < 0 {
		return 0
	}
	return skip
}
