package analysis

import (
	"context"
	"time"

	"github.com/lakshraina2/resume-scanner/pkg/kernel"
)

// TextExtractor turns an uploaded document into raw text.
// An empty string with a nil error means the document had no usable text.
type TextExtractor interface {
	Extract(data []byte, extension string) (string, error)
}

// EntityRecognizer finds named entities in free text. Implementations
// degrade to an all-empty EntityMap rather than failing.
type EntityRecognizer interface {
	Recognize(text string) EntityMap
}

// RichParser is an optional external parser that produces a
// higher-priority structured record for merging. A nil result with a
// nil error means the parser is unconfigured.
type RichParser interface {
	Parse(ctx context.Context, resumeText string) (*RawRecord, error)
}

// RawRecord is an external parse result before normalization. Fields
// may arrive as a single string or a list, so they use FieldValue.
type RawRecord struct {
	Name            string     `json:"name"`
	Email           FieldValue `json:"email"`
	MobileNumber    string     `json:"mobile_number"`
	Phone           FieldValue `json:"phone"`
	Skills          FieldValue `json:"skills"`
	CollegeName     FieldValue `json:"college_name"`
	Degree          FieldValue `json:"degree"`
	Designation     FieldValue `json:"designation"`
	CompanyNames    FieldValue `json:"company_names"`
	Experience      FieldValue `json:"experience"`
	TotalExperience int        `json:"total_experience"`
	NoOfPages       int        `json:"no_of_pages"`
}

// SkillConfigRepository loads the active skill configuration
type SkillConfigRepository interface {
	Load(ctx context.Context) (SkillConfig, error)
}

// JobRepository persists ranking job lifecycle records
type JobRepository interface {
	Create(ctx context.Context, job *RankingJob) error
	Update(ctx context.Context, job *RankingJob) error
	GetByID(ctx context.Context, jobID kernel.BatchJobID) (*RankingJob, error)
	GetByTenantID(ctx context.Context, tenantID kernel.TenantID, pagination kernel.PaginationOptions) (*kernel.Paginated[RankingJob], error)

	MarkAsProcessing(ctx context.Context, jobID kernel.BatchJobID) error
	MarkAsCompleted(ctx context.Context, jobID kernel.BatchJobID, rankings []RankingEntry) error
	MarkAsFailed(ctx context.Context, jobID kernel.BatchJobID, errorMsg string, errorDetails map[string]any) error
	UpdateProgress(ctx context.Context, jobID kernel.BatchJobID, step ProcessingStep, percentage int) error
}

// JobQueue defines the interface for ranking job queue operations
type JobQueue interface {
	// Enqueue adds a job to the queue
	Enqueue(ctx context.Context, jobID kernel.BatchJobID, payload any) error

	// Dequeue gets a job from the queue (blocking with timeout)
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// EnqueueDelayed schedules a job for later processing (for retries)
	EnqueueDelayed(ctx context.Context, jobID kernel.BatchJobID, payload any, delay time.Duration) error

	// MoveDelayedToReady moves delayed jobs that are ready to the main queue
	MoveDelayedToReady(ctx context.Context) (int, error)

	// GetQueueSize returns the number of jobs in the queue
	GetQueueSize(ctx context.Context) (int64, error)

	// GetDelayedQueueSize returns the number of delayed jobs
	GetDelayedQueueSize(ctx context.Context) (int64, error)
}
