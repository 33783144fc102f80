package analysissrv

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshraina2/resume-scanner/pkg/errx"
	"github.com/lakshraina2/resume-scanner/pkg/kernel"
	"github.com/lakshraina2/resume-scanner/scanner/analysis"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/textproc"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeFileReader struct {
	files map[string][]byte
	err   error
}

func (f *fakeFileReader) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.files[path]
	if !ok {
		return nil, errors.New("file not found")
	}
	return data, nil
}

func (f *fakeFileReader) ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error) {
	data, err := f.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type passthroughExtractor struct{}

func (passthroughExtractor) Extract(data []byte, extension string) (string, error) {
	if extension != "txt" {
		return "", analysis.ErrUnsupportedFormat().WithDetail("extension", extension)
	}
	return string(data), nil
}

type fakeRichParser struct {
	record *analysis.RawRecord
	err    error
	calls  int
}

func (f *fakeRichParser) Parse(ctx context.Context, resumeText string) (*analysis.RawRecord, error) {
	f.calls++
	return f.record, f.err
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[kernel.BatchJobID]*analysis.RankingJob

	createErr error
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[kernel.BatchJobID]*analysis.RankingJob)}
}

func (f *fakeJobRepo) Create(ctx context.Context, job *analysis.RankingJob) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *job
	f.jobs[job.ID] = &clone
	return nil
}

func (f *fakeJobRepo) Update(ctx context.Context, job *analysis.RankingJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *job
	f.jobs[job.ID] = &clone
	return nil
}

func (f *fakeJobRepo) GetByID(ctx context.Context, jobID kernel.BatchJobID) (*analysis.RankingJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, errors.New("not found")
	}
	clone := *job
	return &clone, nil
}

func (f *fakeJobRepo) GetByTenantID(ctx context.Context, tenantID kernel.TenantID, pagination kernel.PaginationOptions) (*kernel.Paginated[analysis.RankingJob], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := []analysis.RankingJob{}
	for _, job := range f.jobs {
		if job.TenantID == tenantID {
			items = append(items, *job)
		}
	}
	paginated := kernel.NewPaginated(items, len(items), pagination)
	return &paginated, nil
}

func (f *fakeJobRepo) MarkAsProcessing(ctx context.Context, jobID kernel.BatchJobID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job, ok := f.jobs[jobID]; ok {
		now := time.Now()
		job.Status = analysis.JobStatusProcessing
		job.StartedAt = &now
	}
	return nil
}

func (f *fakeJobRepo) MarkAsCompleted(ctx context.Context, jobID kernel.BatchJobID, rankings []analysis.RankingEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job, ok := f.jobs[jobID]; ok {
		now := time.Now()
		job.Status = analysis.JobStatusCompleted
		job.Rankings = rankings
		job.CompletedAt = &now
		job.ProgressPercentage = 100
	}
	return nil
}

func (f *fakeJobRepo) MarkAsFailed(ctx context.Context, jobID kernel.BatchJobID, errorMsg string, errorDetails map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job, ok := f.jobs[jobID]; ok {
		now := time.Now()
		job.Status = analysis.JobStatusFailed
		job.ErrorMessage = errorMsg
		job.ErrorDetails = errorDetails
		job.FailedAt = &now
	}
	return nil
}

func (f *fakeJobRepo) UpdateProgress(ctx context.Context, jobID kernel.BatchJobID, step analysis.ProcessingStep, percentage int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job, ok := f.jobs[jobID]; ok {
		job.CurrentStep = &step
		job.ProgressPercentage = percentage
	}
	return nil
}

type fakeQueue struct {
	mu      sync.Mutex
	ready   []kernel.BatchJobID
	delayed []kernel.BatchJobID

	enqueueErr error
}

func (f *fakeQueue) Enqueue(ctx context.Context, jobID kernel.BatchJobID, payload any) error {
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ready = append(f.ready, jobID)
	return nil
}

func (f *fakeQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	return nil, nil
}

func (f *fakeQueue) EnqueueDelayed(ctx context.Context, jobID kernel.BatchJobID, payload any, delay time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delayed = append(f.delayed, jobID)
	return nil
}

func (f *fakeQueue) MoveDelayedToReady(ctx context.Context) (int, error) { return 0, nil }
func (f *fakeQueue) GetQueueSize(ctx context.Context) (int64, error)     { return int64(len(f.ready)), nil }
func (f *fakeQueue) GetDelayedQueueSize(ctx context.Context) (int64, error) {
	return int64(len(f.delayed)), nil
}

// ============================================================================
// Helpers
// ============================================================================

const resumeText = "Jane Doe\njane@example.com\n555-123-4567\n" +
	"Skills\npython, sql, aws, docker, git and leadership\n" +
	"Education\nBachelor of Science in Computer Science, State University\n" +
	"Worked 5 years building services, developed and improved pipelines by 40%.\n"

func newTestService(reader *fakeFileReader, richParser analysis.RichParser, repo *fakeJobRepo, queue *fakeQueue) *Service {
	proc := textproc.NewProcessor(textproc.NewRegexRecognizer())
	return NewService(proc, analysis.DefaultSkillConfig(), passthroughExtractor{}, richParser, reader, repo, queue)
}

func testReader() *fakeFileReader {
	return &fakeFileReader{files: map[string][]byte{
		"tenants/t1/resume.txt":  []byte(resumeText),
		"tenants/t1/second.txt":  []byte("John Smith\njohn@example.com\njava and kubernetes skills, 2 years of experience"),
		"tenants/t1/empty.txt":   []byte("   \n  "),
		"tenants/t1/resume.docx": []byte("binary"),
	}}
}

// ============================================================================
// Score
// ============================================================================

func TestScore(t *testing.T) {
	svc := newTestService(testReader(), nil, newFakeJobRepo(), &fakeQueue{})

	t.Run("scores a stored resume", func(t *testing.T) {
		resp, err := svc.Score(context.Background(), analysis.ScoreRequest{
			TenantID: "t1",
			FileName: "resume.txt",
			FilePath: "tenants/t1/resume.txt",
			FileType: "txt",
		})
		require.NoError(t, err)

		assert.Greater(t, resp.Score.OverallScore, 0.0)
		assert.NotEmpty(t, resp.Score.Grade)
		assert.Len(t, resp.Score.CategoryScores, 5)
		assert.Equal(t, "Jane Doe", resp.Resume.Name)
		assert.True(t, resp.Resume.ContactInfoComplete)
		assert.Greater(t, resp.Statistics.WordCount, 0)
		assert.NotEmpty(t, resp.WordFrequencies)
		assert.False(t, resp.Degraded)

		// no job description, so no match analysis
		assert.Nil(t, resp.Similarity)
		assert.Nil(t, resp.SkillGaps)
		assert.Empty(t, resp.JobCategory)
	})

	t.Run("job description adds match analysis", func(t *testing.T) {
		resp, err := svc.Score(context.Background(), analysis.ScoreRequest{
			TenantID:       "t1",
			FilePath:       "tenants/t1/resume.txt",
			FileType:       "txt",
			JobDescription: "python developer with sql and aws experience",
		})
		require.NoError(t, err)

		require.NotNil(t, resp.Similarity)
		require.NotNil(t, resp.SkillGaps)
		assert.Greater(t, resp.Similarity.OverallScore, 0.0)
		assert.Contains(t, resp.SkillGaps.MatchingSkills, "python")
		assert.NotEmpty(t, resp.JobCategory)
	})

	t.Run("empty document is rejected", func(t *testing.T) {
		_, err := svc.Score(context.Background(), analysis.ScoreRequest{
			TenantID: "t1",
			FilePath: "tenants/t1/empty.txt",
			FileType: "txt",
		})
		require.Error(t, err)

		var appErr *errx.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "ANALYSIS:EMPTY_DOCUMENT", string(appErr.Code))
	})

	t.Run("unreadable file reports extraction failure", func(t *testing.T) {
		broken := &fakeFileReader{err: errors.New("connection reset")}
		svc := newTestService(broken, nil, newFakeJobRepo(), &fakeQueue{})

		_, err := svc.Score(context.Background(), analysis.ScoreRequest{
			TenantID: "t1",
			FilePath: "tenants/t1/resume.txt",
			FileType: "txt",
		})
		require.Error(t, err)

		var appErr *errx.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "ANALYSIS:EXTRACTION_FAILED", string(appErr.Code))
	})
}

func TestScoreRichParser(t *testing.T) {
	t.Run("rich fields win over manual ones", func(t *testing.T) {
		rich := &fakeRichParser{record: &analysis.RawRecord{
			Name:         "Jane A. Doe",
			CompanyNames: analysis.Sequence("Acme Corp", "Initech"),
			Designation:  analysis.Sequence("Senior Engineer"),
			NoOfPages:    2,
		}}
		svc := newTestService(testReader(), rich, newFakeJobRepo(), &fakeQueue{})

		resp, err := svc.Score(context.Background(), analysis.ScoreRequest{
			TenantID: "t1",
			FilePath: "tenants/t1/resume.txt",
			FileType: "txt",
		})
		require.NoError(t, err)

		assert.Equal(t, 1, rich.calls)
		assert.Equal(t, "Jane A. Doe", resp.Resume.Name)
		assert.Equal(t, 2, resp.Resume.CompaniesCount)
		assert.False(t, resp.Degraded)
	})

	t.Run("rich parse failure degrades instead of failing", func(t *testing.T) {
		rich := &fakeRichParser{err: errors.New("rate limited")}
		svc := newTestService(testReader(), rich, newFakeJobRepo(), &fakeQueue{})

		resp, err := svc.Score(context.Background(), analysis.ScoreRequest{
			TenantID: "t1",
			FilePath: "tenants/t1/resume.txt",
			FileType: "txt",
		})
		require.NoError(t, err)
		assert.True(t, resp.Degraded)
		assert.Equal(t, "Jane Doe", resp.Resume.Name)
	})
}

// ============================================================================
// Match
// ============================================================================

func TestMatch(t *testing.T) {
	svc := newTestService(testReader(), nil, newFakeJobRepo(), &fakeQueue{})

	t.Run("matches resume against job description", func(t *testing.T) {
		resp, err := svc.Match(context.Background(), analysis.MatchRequest{
			TenantID:       "t1",
			FilePath:       "tenants/t1/resume.txt",
			FileType:       "txt",
			JobDescription: "python developer with sql, aws and machine learning",
		})
		require.NoError(t, err)

		assert.Greater(t, resp.Similarity.OverallScore, 0.0)
		assert.Contains(t, resp.SkillGaps.MissingSkills, "machine learning")
		assert.Equal(t, "software_development", resp.JobCategory)
	})

	t.Run("missing job description is rejected", func(t *testing.T) {
		_, err := svc.Match(context.Background(), analysis.MatchRequest{
			TenantID:       "t1",
			FilePath:       "tenants/t1/resume.txt",
			FileType:       "txt",
			JobDescription: "   ",
		})
		require.Error(t, err)

		var appErr *errx.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "ANALYSIS:MISSING_JOB_TEXT", string(appErr.Code))
	})
}

// ============================================================================
// Rank (sync)
// ============================================================================

func TestRank(t *testing.T) {
	svc := newTestService(testReader(), nil, newFakeJobRepo(), &fakeQueue{})

	docs := []analysis.BatchDocumentRef{
		{Name: "jane.txt", FilePath: "tenants/t1/resume.txt", FileType: "txt"},
		{Name: "john.txt", FilePath: "tenants/t1/second.txt", FileType: "txt"},
	}

	t.Run("ranks documents best first", func(t *testing.T) {
		resp, err := svc.Rank(context.Background(), analysis.RankRequest{
			TenantID:       "t1",
			JobDescription: "python developer with sql and aws",
			Documents:      docs,
		})
		require.NoError(t, err)
		require.Len(t, resp.Rankings, 2)

		assert.Equal(t, 1, resp.Rankings[0].Rank)
		assert.Equal(t, 2, resp.Rankings[1].Rank)
		assert.Equal(t, "jane.txt", resp.Rankings[0].Name)
		assert.GreaterOrEqual(t, resp.Rankings[0].OverallScore, resp.Rankings[1].OverallScore)
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		_, err := svc.Rank(context.Background(), analysis.RankRequest{
			TenantID:       "t1",
			JobDescription: "python developer",
		})
		require.Error(t, err)

		var appErr *errx.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "ANALYSIS:EMPTY_BATCH", string(appErr.Code))
	})

	t.Run("oversized batch is rejected", func(t *testing.T) {
		big := make([]analysis.BatchDocumentRef, MaxBatchDocuments+1)
		for i := range big {
			big[i] = docs[0]
		}
		_, err := svc.Rank(context.Background(), analysis.RankRequest{
			TenantID:       "t1",
			JobDescription: "python developer",
			Documents:      big,
		})
		require.Error(t, err)

		var appErr *errx.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "ANALYSIS:BATCH_TOO_LARGE", string(appErr.Code))
	})
}

// ============================================================================
// Async ranking jobs
// ============================================================================

func TestRankAsync(t *testing.T) {
	docs := []analysis.BatchDocumentRef{
		{Name: "jane.txt", FilePath: "tenants/t1/resume.txt", FileType: "txt"},
	}

	t.Run("creates and enqueues a pending job", func(t *testing.T) {
		repo := newFakeJobRepo()
		queue := &fakeQueue{}
		svc := newTestService(testReader(), nil, repo, queue)

		resp, err := svc.RankAsync(context.Background(), analysis.RankRequest{
			TenantID:       "t1",
			JobDescription: "python developer",
			Documents:      docs,
		})
		require.NoError(t, err)

		assert.Equal(t, analysis.JobStatusPending, resp.Status)
		assert.False(t, resp.JobID.IsEmpty())
		assert.Len(t, queue.ready, 1)

		stored, err := repo.GetByID(context.Background(), resp.JobID)
		require.NoError(t, err)
		assert.Equal(t, 3, stored.MaxAttempts)
	})

	t.Run("enqueue failure marks the job failed", func(t *testing.T) {
		repo := newFakeJobRepo()
		queue := &fakeQueue{enqueueErr: errors.New("redis down")}
		svc := newTestService(testReader(), nil, repo, queue)

		_, err := svc.RankAsync(context.Background(), analysis.RankRequest{
			TenantID:       "t1",
			JobDescription: "python developer",
			Documents:      docs,
		})
		require.Error(t, err)

		var appErr *errx.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "ANALYSIS:QUEUE_ENQUEUE_FAILED", string(appErr.Code))

		for _, job := range repo.jobs {
			assert.Equal(t, analysis.JobStatusFailed, job.Status)
		}
	})
}

func TestProcessRankingJob(t *testing.T) {
	docs := []analysis.BatchDocumentRef{
		{Name: "jane.txt", FilePath: "tenants/t1/resume.txt", FileType: "txt"},
		{Name: "john.txt", FilePath: "tenants/t1/second.txt", FileType: "txt"},
	}

	t.Run("completes a job and stores rankings", func(t *testing.T) {
		repo := newFakeJobRepo()
		queue := &fakeQueue{}
		svc := newTestService(testReader(), nil, repo, queue)

		resp, err := svc.RankAsync(context.Background(), analysis.RankRequest{
			TenantID:       "t1",
			JobDescription: "python developer with sql and aws",
			Documents:      docs,
		})
		require.NoError(t, err)

		job, err := repo.GetByID(context.Background(), resp.JobID)
		require.NoError(t, err)
		require.NoError(t, svc.ProcessRankingJob(context.Background(), job))

		status, err := svc.GetJobStatus(context.Background(), resp.JobID)
		require.NoError(t, err)
		assert.Equal(t, analysis.JobStatusCompleted, status.Status)
		assert.Equal(t, 100, status.Progress)
		require.Len(t, status.Rankings, 2)
		assert.Equal(t, 1, status.Rankings[0].Rank)
	})

	t.Run("failed extraction schedules a retry", func(t *testing.T) {
		repo := newFakeJobRepo()
		queue := &fakeQueue{}
		svc := newTestService(testReader(), nil, repo, queue)

		resp, err := svc.RankAsync(context.Background(), analysis.RankRequest{
			TenantID:       "t1",
			JobDescription: "python developer",
			Documents: []analysis.BatchDocumentRef{
				{Name: "gone.txt", FilePath: "tenants/t1/missing.txt", FileType: "txt"},
			},
		})
		require.NoError(t, err)

		job, err := repo.GetByID(context.Background(), resp.JobID)
		require.NoError(t, err)
		require.Error(t, svc.ProcessRankingJob(context.Background(), job))

		assert.Len(t, queue.delayed, 1)

		stored, err := repo.GetByID(context.Background(), resp.JobID)
		require.NoError(t, err)
		assert.Equal(t, analysis.JobStatusPending, stored.Status)
		assert.Equal(t, 1, stored.AttemptCount)
		assert.NotNil(t, stored.NextRetryAt)
	})

	t.Run("exhausted attempts fail permanently", func(t *testing.T) {
		repo := newFakeJobRepo()
		queue := &fakeQueue{}
		svc := newTestService(testReader(), nil, repo, queue)

		resp, err := svc.RankAsync(context.Background(), analysis.RankRequest{
			TenantID:       "t1",
			JobDescription: "python developer",
			Documents: []analysis.BatchDocumentRef{
				{Name: "gone.txt", FilePath: "tenants/t1/missing.txt", FileType: "txt"},
			},
		})
		require.NoError(t, err)

		job, err := repo.GetByID(context.Background(), resp.JobID)
		require.NoError(t, err)
		job.AttemptCount = 2 // one attempt left

		require.Error(t, svc.ProcessRankingJob(context.Background(), job))

		status, err := svc.GetJobStatus(context.Background(), resp.JobID)
		require.NoError(t, err)
		assert.Equal(t, analysis.JobStatusFailed, status.Status)
		require.NotNil(t, status.Error)
	})
}

// ============================================================================
// Skill configuration
// ============================================================================

func TestGetSkillConfig(t *testing.T) {
	svc := newTestService(testReader(), nil, newFakeJobRepo(), &fakeQueue{})

	resp := svc.GetSkillConfig()
	assert.Contains(t, resp.TechnicalSkills, "python")
	assert.Contains(t, resp.SoftSkills, "leadership")
	assert.Contains(t, resp.JobCategories, "data_science")
	assert.Contains(t, resp.JobCategories["data_science"], "data analyst")
}
