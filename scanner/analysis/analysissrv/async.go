package analysissrv

import (
	"context"
	"fmt"
	"time"

	"github.com/lakshraina2/resume-scanner/pkg/kernel"
	"github.com/lakshraina2/resume-scanner/pkg/logx"
	"github.com/lakshraina2/resume-scanner/scanner/analysis"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/match"
)

// RankAsync - Queue a batch ranking for background processing
func (s *Service) RankAsync(ctx context.Context, req analysis.RankRequest) (*analysis.JobStatusResponse, error) {
	if err := s.validateRankRequest(req); err != nil {
		return nil, err
	}

	logx.Infof("Queueing ranking batch for async processing: TenantID=%s, Documents=%d", req.TenantID, len(req.Documents))

	jobID := kernel.NewBatchJobID()
	job := &analysis.RankingJob{
		ID:                 jobID,
		TenantID:           req.TenantID,
		Status:             analysis.JobStatusPending,
		JobDescription:     req.JobDescription,
		Documents:          req.Documents,
		AttemptCount:       0,
		MaxAttempts:        3,
		ProgressPercentage: 0,
		CreatedAt:          time.Now(),
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, analysis.ErrJobCreationFailed().
			WithDetail("tenant_id", req.TenantID).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	if err := s.queue.Enqueue(ctx, jobID, job); err != nil {
		// Mark job as failed if we can't queue it
		_ = s.jobRepo.MarkAsFailed(ctx, jobID, "failed to enqueue", map[string]any{
			"error": err.Error(),
		})

		return nil, analysis.ErrQueueEnqueueFailed().
			WithDetail("job_id", jobID).
			WithDetail("tenant_id", req.TenantID).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	logx.Infof("Ranking job queued successfully: JobID=%s", jobID)

	return &analysis.JobStatusResponse{
		JobID:     jobID,
		TenantID:  req.TenantID,
		Status:    analysis.JobStatusPending,
		Message:   "Batch queued for ranking",
		Progress:  0,
		CreatedAt: job.CreatedAt,
	}, nil
}

// ProcessRankingJob - Worker function to process a queued ranking job
func (s *Service) ProcessRankingJob(ctx context.Context, job *analysis.RankingJob) error {
	logx.Infof("Processing ranking job: JobID=%s, Attempt=%d/%d", job.ID, job.AttemptCount+1, job.MaxAttempts)

	if err := s.jobRepo.MarkAsProcessing(ctx, job.ID); err != nil {
		return analysis.ErrJobUpdateFailed().
			WithDetail("job_id", job.ID).
			WithDetail("status", "processing").
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, analysis.StepExtracting, 25)

	documents := make([]match.Document, 0, len(job.Documents))
	for _, ref := range job.Documents {
		text, _, err := s.loadDocument(ctx, ref.FilePath, ref.FileType)
		if err != nil {
			return s.handleJobError(ctx, job, fmt.Sprintf("extraction_failed:%s", ref.Name), err)
		}
		documents = append(documents, match.Document{Name: ref.Name, Text: text})
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, analysis.StepMatching, 50)

	rankings := s.ranker.Rank(documents, job.JobDescription)

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, analysis.StepRanking, 75)

	if err := s.jobRepo.MarkAsCompleted(ctx, job.ID, rankings); err != nil {
		return s.handleJobError(ctx, job, "save_failed", err)
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, analysis.StepSaving, 100)

	logx.Infof("Ranking job completed: JobID=%s, Documents=%d", job.ID, len(rankings))
	return nil
}

// handleJobError handles job processing errors with retry logic
func (s *Service) handleJobError(ctx context.Context, job *analysis.RankingJob, errorType string, err error) error {
	job.AttemptCount++

	errorDetails := map[string]any{
		"error":        err.Error(),
		"error_type":   errorType,
		"attempt":      job.AttemptCount,
		"max_attempts": job.MaxAttempts,
	}

	if job.CanRetry() {
		// Exponential backoff: 2^attempt minutes
		retryDelay := time.Duration(1<<uint(job.AttemptCount)) * time.Minute
		nextRetry := time.Now().Add(retryDelay)
		job.NextRetryAt = &nextRetry

		logx.Warnf("Ranking job failed, will retry: JobID=%s, Attempt=%d/%d, NextRetry=%v, Error=%s",
			job.ID, job.AttemptCount, job.MaxAttempts, nextRetry, errorType)

		if queueErr := s.queue.EnqueueDelayed(ctx, job.ID, job, retryDelay); queueErr != nil {
			logx.Errorf("Failed to enqueue ranking job for retry: %v", queueErr)

			_ = s.jobRepo.MarkAsFailed(ctx, job.ID,
				fmt.Sprintf("%s (retry enqueue failed)", errorType),
				errorDetails)

			return analysis.ErrQueueEnqueueFailed().
				WithDetail("job_id", job.ID).
				WithDetail("error_type", errorType).
				WithDetails(errorDetails)
		}

		job.ErrorMessage = fmt.Sprintf("%s (will retry)", errorType)
		job.ErrorDetails = errorDetails
		job.Status = analysis.JobStatusPending

		if updateErr := s.jobRepo.Update(ctx, job); updateErr != nil {
			logx.Errorf("Failed to update ranking job for retry: %v", updateErr)
		}

		return analysis.ErrJobUpdateFailed().
			WithDetail("job_id", job.ID).
			WithDetail("error_type", errorType).
			WithDetail("will_retry", true).
			WithDetail("next_retry_at", nextRetry).
			WithDetails(errorDetails)
	}

	logx.Errorf("Ranking job permanently failed: JobID=%s, Error=%s, Attempts=%d/%d",
		job.ID, errorType, job.AttemptCount, job.MaxAttempts)

	_ = s.jobRepo.MarkAsFailed(ctx, job.ID, errorType, errorDetails)

	return analysis.ErrJobMaxRetries().
		WithDetail("job_id", job.ID).
		WithDetail("error_type", errorType).
		WithDetail("final_attempt", job.AttemptCount).
		WithDetails(errorDetails)
}

// GetJobStatus retrieves the current status of a ranking job
func (s *Service) GetJobStatus(ctx context.Context, jobID kernel.BatchJobID) (*analysis.JobStatusResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, analysis.ErrJobNotFound().
			WithDetail("job_id", jobID)
	}

	response := &analysis.JobStatusResponse{
		JobID:     job.ID,
		TenantID:  job.TenantID,
		Status:    job.Status,
		Progress:  job.ProgressPercentage,
		CreatedAt: job.CreatedAt,
	}

	switch job.Status {
	case analysis.JobStatusPending:
		if job.AttemptCount > 0 {
			response.Message = fmt.Sprintf("Job pending retry (attempt %d/%d)", job.AttemptCount, job.MaxAttempts)
		} else {
			response.Message = "Job queued and waiting to be processed"
		}
		if job.NextRetryAt != nil {
			response.NextRetryAt = job.NextRetryAt
		}

	case analysis.JobStatusProcessing:
		response.Message = fmt.Sprintf("Ranking batch: %v", job.CurrentStep)
		response.CurrentStep = job.CurrentStep
		response.StartedAt = job.StartedAt

	case analysis.JobStatusCompleted:
		response.Message = "Batch ranked successfully"
		response.Rankings = job.Rankings
		response.CompletedAt = job.CompletedAt

	case analysis.JobStatusFailed:
		response.Message = job.ErrorMessage
		response.Error = &analysis.JobError{
			Message: job.ErrorMessage,
			Details: job.ErrorDetails,
		}
		response.FailedAt = job.FailedAt
		response.AttemptCount = job.AttemptCount
	}

	return response, nil
}

// ListJobsByTenant retrieves all ranking jobs for a tenant
func (s *Service) ListJobsByTenant(ctx context.Context, tenantID kernel.TenantID, pagination kernel.PaginationOptions) (*kernel.Paginated[analysis.RankingJob], error) {
	jobs, err := s.jobRepo.GetByTenantID(ctx, tenantID, pagination)
	if err != nil {
		return nil, analysis.ErrRegistry.NewWithCause(analysis.CodeJobNotFound, err).
			WithDetail("tenant_id", tenantID)
	}

	return jobs, nil
}
