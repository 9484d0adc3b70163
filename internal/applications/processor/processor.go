package processor

import (
	"context"
	"errors"

	"jobmatch/internal/observability"
	"jobmatch/internal/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidID           = errors.New("invalid id")
	ErrJobClosed           = errors.New("job is not accepting applications")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrNotJobOwner         = errors.New("job belongs to another employer")
	ErrInvalidStatus       = errors.New("invalid application status")
)

type ApplicationProcessor struct {
	store    Store
	notifier Notifier
	logger   *observability.Logger
}

// New builds the processor. notifier may be nil, in which case no emails are sent.
func New(store Store, notifier Notifier, logger *observability.Logger) ApplicationProcessor {
	return ApplicationProcessor{store: store, notifier: notifier, logger: logger}
}

// Apply creates a pending application. The applicant's profile resume is
// attached when present.
func (p *ApplicationProcessor) Apply(ctx context.Context, applicantID string, jobID string, coverLetter string) (store.Application, error) {
	applicant, err := store.ParseID(applicantID)
	if err != nil {
		return store.Application{}, ErrInvalidID
	}
	job, err := p.getJob(ctx, jobID)
	if err != nil {
		return store.Application{}, err
	}
	if job.Status != store.JobStatusOpen {
		return store.Application{}, ErrJobClosed
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "job_id", Value: jobID},
		observability.Field{Key: "applicant_id", Value: applicantID},
	)

	var resumePath string
	user, err := p.store.GetUserByID(ctx, applicant)
	switch {
	case err == nil:
		resumePath = user.ResumePath
	case errors.Is(err, store.ErrNotFound):
		p.logger.Warn(ctx, "applicant profile not found")
	default:
		p.logger.Error(ctx, "failed to load applicant profile", err)
		return store.Application{}, err
	}

	app, err := p.store.CreateApplication(ctx, store.Application{
		JobID:       job.ID,
		ApplicantID: applicant,
		CoverLetter: coverLetter,
		ResumePath:  resumePath,
		Status:      store.ApplicationPending,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return store.Application{}, ErrAlreadyApplied
		}
		p.logger.Error(ctx, "failed to create application", err)
		return store.Application{}, err
	}

	p.logger.Info(ctx, "application submitted", observability.Field{Key: "application_id", Value: app.ID.Hex()})
	if p.notifier != nil {
		p.notifyReceived(ctx, job, user)
	}
	return app, nil
}

func (p *ApplicationProcessor) ListMine(ctx context.Context, applicantID string) ([]store.Application, error) {
	applicant, err := store.ParseID(applicantID)
	if err != nil {
		return nil, ErrInvalidID
	}
	apps, err := p.store.ListApplicationsByApplicant(ctx, applicant)
	if err != nil {
		p.logger.Error(ctx, "failed to list applications", err)
		return nil, err
	}
	return apps, nil
}

// ListForJob returns the applications to a job posted by employerID.
func (p *ApplicationProcessor) ListForJob(ctx context.Context, employerID string, jobID string) ([]store.Application, error) {
	job, err := p.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.PostedBy.Hex() != employerID {
		return nil, ErrNotJobOwner
	}
	apps, err := p.store.ListApplicationsByJob(ctx, job.ID)
	if err != nil {
		p.logger.Error(ctx, "failed to list job applications", err)
		return nil, err
	}
	return apps, nil
}

func (p *ApplicationProcessor) UpdateStatus(ctx context.Context, employerID string, applicationID string, status string) (store.Application, error) {
	if !validStatus(status) {
		return store.Application{}, ErrInvalidStatus
	}
	id, err := store.ParseID(applicationID)
	if err != nil {
		return store.Application{}, ErrInvalidID
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "application_id", Value: applicationID})

	app, err := p.store.GetApplicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Application{}, ErrApplicationNotFound
		}
		p.logger.Error(ctx, "failed to get application", err)
		return store.Application{}, err
	}
	job, err := p.loadJob(ctx, app.JobID)
	if err != nil {
		return store.Application{}, err
	}
	if job.PostedBy.Hex() != employerID {
		return store.Application{}, ErrNotJobOwner
	}

	updated, err := p.store.UpdateApplicationStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Application{}, ErrApplicationNotFound
		}
		p.logger.Error(ctx, "failed to update application status", err)
		return store.Application{}, err
	}
	p.logger.Info(ctx, "application status updated", observability.Field{Key: "status", Value: status})
	if p.notifier != nil && status != app.Status {
		p.notifyStatus(ctx, job, app.ApplicantID, status)
	}
	return updated, nil
}

// Notification failures are logged and never fail the request.
func (p *ApplicationProcessor) notifyReceived(ctx context.Context, job store.Job, applicant store.User) {
	employer, err := p.store.GetUserByID(ctx, job.PostedBy)
	if err != nil {
		p.logger.Warn(ctx, "skipping application email, employer lookup failed",
			observability.Field{Key: "error", Value: err.Error()})
		return
	}
	if err := p.notifier.ApplicationReceived(ctx, employer, job, applicant); err != nil {
		p.logger.Error(ctx, "failed to send application received email", err)
	}
}

func (p *ApplicationProcessor) notifyStatus(ctx context.Context, job store.Job, applicantID primitive.ObjectID, status string) {
	applicant, err := p.store.GetUserByID(ctx, applicantID)
	if err != nil {
		p.logger.Warn(ctx, "skipping status email, applicant lookup failed",
			observability.Field{Key: "error", Value: err.Error()})
		return
	}
	if err := p.notifier.ApplicationStatusChanged(ctx, applicant, job, status); err != nil {
		p.logger.Error(ctx, "failed to send status email", err)
	}
}

func (p *ApplicationProcessor) getJob(ctx context.Context, jobID string) (store.Job, error) {
	id, err := store.ParseID(jobID)
	if err != nil {
		return store.Job{}, ErrInvalidID
	}
	return p.loadJob(ctx, id)
}

func (p *ApplicationProcessor) loadJob(ctx context.Context, id primitive.ObjectID) (store.Job, error) {
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

func validStatus(status string) bool {
	switch status {
	case store.ApplicationPending, store.ApplicationReviewed, store.ApplicationAccepted, store.ApplicationRejected:
		return true
	}
	return false
}
