package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleSeeker   = "seeker"
	RoleEmployer = "employer"
)

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

const (
	ApplicationPending  = "pending"
	ApplicationReviewed = "reviewed"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// User is a registered account with its public profile.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Headline     string             `bson:"headline,omitempty" json:"headline,omitempty"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	Skills       []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	ResumePath   string             `bson:"resume_path,omitempty" json:"resume_path,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// UpdateProfileParams carries optional profile changes; nil means unchanged.
type UpdateProfileParams struct {
	Name       *string
	Headline   *string
	Location   *string
	Skills     []string
	ResumePath *string
}

// Job is a job posting.
type Job struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Company        string             `bson:"company" json:"company"`
	Description    string             `bson:"description" json:"description"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	EmploymentType string             `bson:"employment_type,omitempty" json:"employment_type,omitempty"`
	Skills         []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	SalaryMin      *int               `bson:"salary_min,omitempty" json:"salary_min,omitempty"`
	SalaryMax      *int               `bson:"salary_max,omitempty" json:"salary_max,omitempty"`
	Status         string             `bson:"status" json:"status"`
	PostedBy       primitive.ObjectID `bson:"posted_by" json:"posted_by"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// ListJobsParams filters job listings.
type ListJobsParams struct {
	Query    string
	Location string
	Skill    string
	Status   string
	Page     int
	Limit    int
}

// ListJobsResult is one page of job listings.
type ListJobsResult struct {
	Jobs       []Job
	TotalCount int64
	Page       int
	Limit      int
}

// UpdateJobParams carries optional job changes; nil means unchanged.
type UpdateJobParams struct {
	Title          *string
	Company        *string
	Description    *string
	Location       *string
	EmploymentType *string
	Skills         []string
	SalaryMin      *int
	SalaryMax      *int
	Status         *string
}

// Application is a seeker's application to a job.
type Application struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JobID       primitive.ObjectID `bson:"job_id" json:"job_id"`
	ApplicantID primitive.ObjectID `bson:"applicant_id" json:"applicant_id"`
	CoverLetter string             `bson:"cover_letter,omitempty" json:"cover_letter,omitempty"`
	ResumePath  string             `bson:"resume_path,omitempty" json:"resume_path,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
