package processor

import (
	"context"
	"errors"
	"strings"

	"jobmatch/internal/observability"
	"jobmatch/internal/store"
)

var (
	ErrJobNotFound        = errors.New("job not found")
	ErrInvalidJobID       = errors.New("invalid job id")
	ErrNotJobOwner        = errors.New("job belongs to another employer")
	ErrInvalidSalaryRange = errors.New("salary_min must not exceed salary_max")
	ErrInvalidStatus      = errors.New("invalid job status")
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage bounds how deep a listing can page.
	MaxPage = 10000
)

type JobProcessor struct {
	store  Store
	logger *observability.Logger
}

func New(store Store, logger *observability.Logger) JobProcessor {
	return JobProcessor{store: store, logger: logger}
}

// CreateJobParams represents parameters for posting a job
type CreateJobParams struct {
	Title          string
	Company        string
	Description    string
	Location       string
	EmploymentType string
	Skills         []string
	SalaryMin      *int
	SalaryMax      *int
}

// ListJobs returns a page of jobs. Page and limit are clamped to sane values
// and only open jobs are listed unless a status is given.
func (p *JobProcessor) ListJobs(ctx context.Context, params store.ListJobsParams) (store.ListJobsResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Page > MaxPage {
		params.Page = MaxPage
	}
	if params.Limit < 1 {
		params.Limit = DefaultPageSize
	}
	if params.Limit > MaxPageSize {
		params.Limit = MaxPageSize
	}
	if params.Status == "" {
		params.Status = store.JobStatusOpen
	} else if !validStatus(params.Status) {
		return store.ListJobsResult{}, ErrInvalidStatus
	}

	result, err := p.store.ListJobs(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to list jobs", err)
		return store.ListJobsResult{}, err
	}
	return result, nil
}

func (p *JobProcessor) GetJob(ctx context.Context, jobID string) (store.Job, error) {
	id, err := store.ParseID(jobID)
	if err != nil {
		return store.Job{}, ErrInvalidJobID
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "job_id", Value: jobID})

	job, err := p.store.GetJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Job{}, ErrJobNotFound
		}
		p.logger.Error(ctx, "failed to get job", err)
		return store.Job{}, err
	}
	return job, nil
}

func (p *JobProcessor) CreateJob(ctx context.Context, employerID string, params CreateJobParams) (store.Job, error) {
	postedBy, err := store.ParseID(employerID)
	if err != nil {
		return store.Job{}, err
	}
	if !validSalaryRange(params.SalaryMin, params.SalaryMax) {
		return store.Job{}, ErrInvalidSalaryRange
	}

	job, err := p.store.CreateJob(ctx, store.Job{
		Title:          strings.TrimSpace(params.Title),
		Company:        strings.TrimSpace(params.Company),
		Description:    params.Description,
		Location:       strings.TrimSpace(params.Location),
		EmploymentType: params.EmploymentType,
		Skills:         normalizeSkills(params.Skills),
		SalaryMin:      params.SalaryMin,
		SalaryMax:      params.SalaryMax,
		Status:         store.JobStatusOpen,
		PostedBy:       postedBy,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create job", err)
		return store.Job{}, err
	}

	p.logger.Info(ctx, "job created", observability.Field{Key: "job_id", Value: job.ID.Hex()})
	return job, nil
}

func (p *JobProcessor) UpdateJob(ctx context.Context, employerID string, jobID string, params store.UpdateJobParams) (store.Job, error) {
	job, err := p.ownedJob(ctx, employerID, jobID)
	if err != nil {
		return store.Job{}, err
	}
	if params.Status != nil && !validStatus(*params.Status) {
		return store.Job{}, ErrInvalidStatus
	}

	salaryMin, salaryMax := job.SalaryMin, job.SalaryMax
	if params.SalaryMin != nil {
		salaryMin = params.SalaryMin
	}
	if params.SalaryMax != nil {
		salaryMax = params.SalaryMax
	}
	if !validSalaryRange(salaryMin, salaryMax) {
		return store.Job{}, ErrInvalidSalaryRange
	}
	if params.Skills != nil {
		params.Skills = normalizeSkills(params.Skills)
	}

	updated, err := p.store.UpdateJob(ctx, job.ID, params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Job{}, ErrJobNotFound
		}
		p.logger.Error(ctx, "failed to update job", err)
		return store.Job{}, err
	}
	return updated, nil
}

func (p *JobProcessor) DeleteJob(ctx context.Context, employerID string, jobID string) error {
	job, err := p.ownedJob(ctx, employerID, jobID)
	if err != nil {
		return err
	}
	if err := p.store.DeleteJob(ctx, job.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrJobNotFound
		}
		p.logger.Error(ctx, "failed to delete job", err)
		return err
	}
	p.logger.Info(ctx, "job deleted", observability.Field{Key: "job_id", Value: jobID})
	return nil
}

// ownedJob loads a job and checks that employerID posted it.
func (p *JobProcessor) ownedJob(ctx context.Context, employerID string, jobID string) (store.Job, error) {
	job, err := p.GetJob(ctx, jobID)
	if err != nil {
		return store.Job{}, err
	}
	if job.PostedBy.Hex() != employerID {
		return store.Job{}, ErrNotJobOwner
	}
	return job, nil
}

func validStatus(status string) bool {
	return status == store.JobStatusOpen || status == store.JobStatusClosed
}

func validSalaryRange(min, max *int) bool {
	if min != nil && *min < 0 || max != nil && *max < 0 {
		return false
	}
	return min == nil || max == nil || *min <= *max
}

func normalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
