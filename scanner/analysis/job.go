package analysis

import (
	"time"

	"github.com/lakshraina2/resume-scanner/pkg/kernel"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

type ProcessingStep string

const (
	StepExtracting ProcessingStep = "extracting"
	StepMatching   ProcessingStep = "matching"
	StepRanking    ProcessingStep = "ranking"
	StepSaving     ProcessingStep = "saving"
)

// BatchDocumentRef points at one uploaded resume awaiting ranking
type BatchDocumentRef struct {
	Name     string `json:"name"`
	FilePath string `json:"file_path"`
	FileType string `json:"file_type"`
}

// RankingJob is the persisted lifecycle record of an asynchronous batch
// ranking request
type RankingJob struct {
	ID       kernel.BatchJobID `db:"id" json:"id"`
	TenantID kernel.TenantID   `db:"tenant_id" json:"tenant_id"`

	Status         JobStatus          `db:"status" json:"status"`
	JobDescription string             `db:"job_description" json:"job_description"`
	Documents      []BatchDocumentRef `db:"documents" json:"documents"`

	AttemptCount int `db:"attempt_count" json:"attempt_count"`
	MaxAttempts  int `db:"max_attempts" json:"max_attempts"`

	ErrorMessage string         `db:"error_message" json:"error_message,omitempty"`
	ErrorDetails map[string]any `db:"error_details" json:"error_details,omitempty"`

	CurrentStep        *ProcessingStep `db:"current_step" json:"current_step,omitempty"`
	ProgressPercentage int             `db:"progress_percentage" json:"progress_percentage"`

	Rankings []RankingEntry `db:"rankings" json:"rankings,omitempty"`

	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	StartedAt   *time.Time `db:"started_at" json:"started_at,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	FailedAt    *time.Time `db:"failed_at" json:"failed_at,omitempty"`
	NextRetryAt *time.Time `db:"next_retry_at" json:"next_retry_at,omitempty"`
}

// CanRetry reports whether a failed job has attempts left
func (j *RankingJob) CanRetry() bool {
	return j.AttemptCount < j.MaxAttempts
}

// JobStatusResponse - Response for ranking job status queries
type JobStatusResponse struct {
	JobID       kernel.BatchJobID `json:"job_id"`
	TenantID    kernel.TenantID   `json:"tenant_id"`
	Status      JobStatus         `json:"status"`
	Message     string            `json:"message"`
	Progress    int               `json:"progress"`
	CurrentStep *ProcessingStep   `json:"current_step,omitempty"`
	Rankings    []RankingEntry    `json:"rankings,omitempty"`
	Error       *JobError         `json:"error,omitempty"`

	AttemptCount int        `json:"attempt_count,omitempty"`
	NextRetryAt  *time.Time `json:"next_retry_at,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
}

// JobError - Error details for failed jobs
type JobError struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
