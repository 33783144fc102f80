package analysisinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lakshraina2/resume-scanner/pkg/kernel"
	"github.com/lakshraina2/resume-scanner/pkg/logx"
	"github.com/lakshraina2/resume-scanner/scanner/analysis"
)

type PostgresJobRepository struct {
	db *sqlx.DB
}

func NewPostgresJobRepository(db *sqlx.DB) analysis.JobRepository {
	return &PostgresJobRepository{db: db}
}

// dbJob is the database model with proper JSON handling
type dbJob struct {
	ID       string `db:"id"`
	TenantID string `db:"tenant_id"`

	Status         string `db:"status"`
	JobDescription string `db:"job_description"`
	Documents      string `db:"documents"`

	AttemptCount int `db:"attempt_count"`
	MaxAttempts  int `db:"max_attempts"`

	ErrorMessage string         `db:"error_message"`
	ErrorDetails sql.NullString `db:"error_details"`

	CurrentStep        *string `db:"current_step"`
	ProgressPercentage int     `db:"progress_percentage"`

	Rankings sql.NullString `db:"rankings"`

	CreatedAt   time.Time  `db:"created_at"`
	StartedAt   *time.Time `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
	FailedAt    *time.Time `db:"failed_at"`
	NextRetryAt *time.Time `db:"next_retry_at"`
}

// Create creates a new ranking job record
func (r *PostgresJobRepository) Create(ctx context.Context, job *analysis.RankingJob) error {
	query := `
		INSERT INTO ranking_jobs (
			id, tenant_id, status, job_description, documents,
			attempt_count, max_attempts, error_message, error_details,
			current_step, progress_percentage, rankings,
			created_at, started_at, completed_at, failed_at, next_retry_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12,
			$13, $14, $15, $16, $17
		)
	`

	dbJob, err := r.toDBJob(job)
	if err != nil {
		return fmt.Errorf("convert to db job: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		dbJob.ID, dbJob.TenantID, dbJob.Status, dbJob.JobDescription, dbJob.Documents,
		dbJob.AttemptCount, dbJob.MaxAttempts, dbJob.ErrorMessage, dbJob.ErrorDetails,
		dbJob.CurrentStep, dbJob.ProgressPercentage, dbJob.Rankings,
		dbJob.CreatedAt, dbJob.StartedAt, dbJob.CompletedAt, dbJob.FailedAt, dbJob.NextRetryAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("job already exists: %w", err)
		}
		return fmt.Errorf("create job: %w", err)
	}

	logx.Infof("Created ranking job: %s", job.ID)
	return nil
}

// Update updates an existing job
func (r *PostgresJobRepository) Update(ctx context.Context, job *analysis.RankingJob) error {
	query := `
		UPDATE ranking_jobs SET
			status = $2,
			attempt_count = $3,
			error_message = $4,
			error_details = $5,
			current_step = $6,
			progress_percentage = $7,
			rankings = $8,
			started_at = $9,
			completed_at = $10,
			failed_at = $11,
			next_retry_at = $12
		WHERE id = $1
	`

	dbJob, err := r.toDBJob(job)
	if err != nil {
		return fmt.Errorf("convert to db job: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query,
		dbJob.ID,
		dbJob.Status,
		dbJob.AttemptCount,
		dbJob.ErrorMessage,
		dbJob.ErrorDetails,
		dbJob.CurrentStep,
		dbJob.ProgressPercentage,
		dbJob.Rankings,
		dbJob.StartedAt,
		dbJob.CompletedAt,
		dbJob.FailedAt,
		dbJob.NextRetryAt,
	)

	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}

	return requireRow(result, job.ID.String())
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, jobID kernel.BatchJobID) (*analysis.RankingJob, error) {
	query := `
		SELECT
			id, tenant_id, status, job_description, documents,
			attempt_count, max_attempts, error_message, error_details,
			current_step, progress_percentage, rankings,
			created_at, started_at, completed_at, failed_at, next_retry_at
		FROM ranking_jobs
		WHERE id = $1
	`

	var dbJob dbJob
	err := r.db.GetContext(ctx, &dbJob, query, jobID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("job not found: %s", jobID)
		}
		return nil, fmt.Errorf("get job: %w", err)
	}

	return r.toDomainJob(&dbJob)
}

// GetByTenantID retrieves all jobs for a tenant with pagination
func (r *PostgresJobRepository) GetByTenantID(
	ctx context.Context,
	tenantID kernel.TenantID,
	pagination kernel.PaginationOptions,
) (*kernel.Paginated[analysis.RankingJob], error) {
	countQuery := `SELECT COUNT(*) FROM ranking_jobs WHERE tenant_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, tenantID.String()); err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	query := `
		SELECT
			id, tenant_id, status, job_description, documents,
			attempt_count, max_attempts, error_message, error_details,
			current_step, progress_percentage, rankings,
			created_at, started_at, completed_at, failed_at, next_retry_at
		FROM ranking_jobs
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var dbJobs []dbJob
	if err := r.db.SelectContext(ctx, &dbJobs, query, tenantID.String(), pagination.Limit, pagination.Offset); err != nil {
		return nil, fmt.Errorf("get jobs: %w", err)
	}

	jobs := make([]analysis.RankingJob, 0, len(dbJobs))
	for _, dbJob := range dbJobs {
		job, err := r.toDomainJob(&dbJob)
		if err != nil {
			logx.Errorf("Failed to convert job %s: %v", dbJob.ID, err)
			continue
		}
		jobs = append(jobs, *job)
	}

	paginated := kernel.NewPaginated(jobs, total, pagination)
	return &paginated, nil
}

// MarkAsProcessing marks a pending job as processing
func (r *PostgresJobRepository) MarkAsProcessing(ctx context.Context, jobID kernel.BatchJobID) error {
	query := `
		UPDATE ranking_jobs
		SET status = $2, started_at = $3
		WHERE id = $1 AND status = $4
	`

	result, err := r.db.ExecContext(ctx, query,
		jobID.String(),
		string(analysis.JobStatusProcessing),
		time.Now(),
		string(analysis.JobStatusPending),
	)
	if err != nil {
		return fmt.Errorf("mark as processing: %w", err)
	}

	if err := requireRow(result, jobID.String()); err != nil {
		return fmt.Errorf("job not in pending status: %w", err)
	}

	logx.Infof("Marked ranking job as processing: %s", jobID)
	return nil
}

// MarkAsCompleted marks a job as completed and stores its rankings
func (r *PostgresJobRepository) MarkAsCompleted(ctx context.Context, jobID kernel.BatchJobID, rankings []analysis.RankingEntry) error {
	rankingsJSON, err := json.Marshal(rankings)
	if err != nil {
		return fmt.Errorf("marshal rankings: %w", err)
	}

	query := `
		UPDATE ranking_jobs
		SET
			status = $2,
			rankings = $3,
			completed_at = $4,
			progress_percentage = 100,
			error_message = '',
			error_details = NULL,
			next_retry_at = NULL
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		jobID.String(),
		string(analysis.JobStatusCompleted),
		string(rankingsJSON),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("mark as completed: %w", err)
	}

	if err := requireRow(result, jobID.String()); err != nil {
		return err
	}

	logx.Infof("Marked ranking job as completed: %s, Rankings: %d", jobID, len(rankings))
	return nil
}

// MarkAsFailed marks a job as failed
func (r *PostgresJobRepository) MarkAsFailed(
	ctx context.Context,
	jobID kernel.BatchJobID,
	errorMsg string,
	errorDetails map[string]any,
) error {
	var errorDetailsJSON sql.NullString
	if len(errorDetails) > 0 {
		jsonBytes, err := json.Marshal(errorDetails)
		if err != nil {
			logx.Warnf("Failed to marshal error details: %v", err)
		} else {
			errorDetailsJSON = sql.NullString{
				String: string(jsonBytes),
				Valid:  true,
			}
		}
	}

	query := `
		UPDATE ranking_jobs
		SET
			status = $2,
			failed_at = $3,
			error_message = $4,
			error_details = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		jobID.String(),
		string(analysis.JobStatusFailed),
		time.Now(),
		errorMsg,
		errorDetailsJSON,
	)
	if err != nil {
		return fmt.Errorf("mark as failed: %w", err)
	}

	if err := requireRow(result, jobID.String()); err != nil {
		return err
	}

	logx.Warnf("Marked ranking job as failed: %s, Error: %s", jobID, errorMsg)
	return nil
}

// UpdateProgress updates the progress of a job
func (r *PostgresJobRepository) UpdateProgress(
	ctx context.Context,
	jobID kernel.BatchJobID,
	step analysis.ProcessingStep,
	percentage int,
) error {
	query := `
		UPDATE ranking_jobs
		SET
			current_step = $2,
			progress_percentage = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		jobID.String(),
		string(step),
		percentage,
	)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}

	return requireRow(result, jobID.String())
}

// ============================================================================
// Helper Methods
// ============================================================================

func requireRow(result sql.Result, jobID string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}
	return nil
}

// toDBJob converts domain model to database model
func (r *PostgresJobRepository) toDBJob(job *analysis.RankingJob) (*dbJob, error) {
	documentsJSON, err := json.Marshal(job.Documents)
	if err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}

	var errorDetails sql.NullString
	if len(job.ErrorDetails) > 0 {
		errorDetailsJSON, err := json.Marshal(job.ErrorDetails)
		if err != nil {
			logx.Warnf("Failed to marshal error details: %v", err)
		} else {
			errorDetails = sql.NullString{
				String: string(errorDetailsJSON),
				Valid:  true,
			}
		}
	}

	var rankings sql.NullString
	if len(job.Rankings) > 0 {
		rankingsJSON, err := json.Marshal(job.Rankings)
		if err != nil {
			return nil, fmt.Errorf("marshal rankings: %w", err)
		}
		rankings = sql.NullString{
			String: string(rankingsJSON),
			Valid:  true,
		}
	}

	var currentStep *string
	if job.CurrentStep != nil {
		stepStr := string(*job.CurrentStep)
		currentStep = &stepStr
	}

	return &dbJob{
		ID:                 job.ID.String(),
		TenantID:           job.TenantID.String(),
		Status:             string(job.Status),
		JobDescription:     job.JobDescription,
		Documents:          string(documentsJSON),
		AttemptCount:       job.AttemptCount,
		MaxAttempts:        job.MaxAttempts,
		ErrorMessage:       job.ErrorMessage,
		ErrorDetails:       errorDetails,
		CurrentStep:        currentStep,
		ProgressPercentage: job.ProgressPercentage,
		Rankings:           rankings,
		CreatedAt:          job.CreatedAt,
		StartedAt:          job.StartedAt,
		CompletedAt:        job.CompletedAt,
		FailedAt:           job.FailedAt,
		NextRetryAt:        job.NextRetryAt,
	}, nil
}

// toDomainJob converts database model to domain model
func (r *PostgresJobRepository) toDomainJob(dbJob *dbJob) (*analysis.RankingJob, error) {
	var documents []analysis.BatchDocumentRef
	if err := json.Unmarshal([]byte(dbJob.Documents), &documents); err != nil {
		return nil, fmt.Errorf("unmarshal documents: %w", err)
	}

	var errorDetails map[string]any
	if dbJob.ErrorDetails.Valid && dbJob.ErrorDetails.String != "" {
		if err := json.Unmarshal([]byte(dbJob.ErrorDetails.String), &errorDetails); err != nil {
			logx.Warnf("Failed to unmarshal error details for job %s: %v", dbJob.ID, err)
			errorDetails = nil
		}
	}

	var rankings []analysis.RankingEntry
	if dbJob.Rankings.Valid && dbJob.Rankings.String != "" {
		if err := json.Unmarshal([]byte(dbJob.Rankings.String), &rankings); err != nil {
			logx.Warnf("Failed to unmarshal rankings for job %s: %v", dbJob.ID, err)
			rankings = nil
		}
	}

	var currentStep *analysis.ProcessingStep
	if dbJob.CurrentStep != nil {
		step := analysis.ProcessingStep(*dbJob.CurrentStep)
		currentStep = &step
	}

	return &analysis.RankingJob{
		ID:                 kernel.BatchJobID(dbJob.ID),
		TenantID:           kernel.TenantID(dbJob.TenantID),
		Status:             analysis.JobStatus(dbJob.Status),
		JobDescription:     dbJob.JobDescription,
		Documents:          documents,
		AttemptCount:       dbJob.AttemptCount,
		MaxAttempts:        dbJob.MaxAttempts,
		ErrorMessage:       dbJob.ErrorMessage,
		ErrorDetails:       errorDetails,
		CurrentStep:        currentStep,
		ProgressPercentage: dbJob.ProgressPercentage,
		Rankings:           rankings,
		CreatedAt:          dbJob.CreatedAt,
		StartedAt:          dbJob.StartedAt,
		CompletedAt:        dbJob.CompletedAt,
		FailedAt:           dbJob.FailedAt,
		NextRetryAt:        dbJob.NextRetryAt,
	}, nil
}
