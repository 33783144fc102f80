package analysisapi

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lakshraina2/resume-scanner/pkg/auth"
	"github.com/lakshraina2/resume-scanner/pkg/errx"
	"github.com/lakshraina2/resume-scanner/pkg/fsx"
	"github.com/lakshraina2/resume-scanner/pkg/kernel"
	"github.com/lakshraina2/resume-scanner/scanner/analysis"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/analysissrv"
)

// MaxUploadSize bounds uploaded resume documents
const MaxUploadSize = int64(10 * 1024 * 1024) // 10MB

type AnalysisHandlers struct {
	service    *analysissrv.Service
	fileSystem fsx.FileSystem
}

func NewAnalysisHandlers(service *analysissrv.Service, fileSystem fsx.FileSystem) *AnalysisHandlers {
	return &AnalysisHandlers{
		service:    service,
		fileSystem: fileSystem,
	}
}

func (h *AnalysisHandlers) RegisterRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	api := app.Group("/api/v1/analysis", authMiddleware)

	// Analysis operations
	api.Post("/score", h.ScoreResume) // Full quality score, optional job match
	api.Post("/match", h.MatchResume) // Match one resume against a job
	api.Post("/rank", h.RankBatch)    // Rank a batch (sync, or async=true)

	// Ranking job management
	api.Get("/rank/jobs/:job_id", h.GetJobStatus)
	api.Get("/rank/jobs", h.ListJobs)

	// Configuration
	api.Get("/skills", h.GetSkillConfig)
}

// ============================================================================
// Analysis Handlers
// ============================================================================

// ScoreResume scores an uploaded resume, optionally against a job description
// POST /api/v1/analysis/score
func (h *AnalysisHandlers) ScoreResume(c *fiber.Ctx) error {
	authCtx, ok := auth.FromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	upload, err := h.storeUpload(c, authCtx.TenantID)
	if err != nil {
		return err
	}
	defer h.cleanupUpload(c, upload)

	response, err := h.service.Score(c.Context(), analysis.ScoreRequest{
		TenantID:       authCtx.TenantID,
		FileName:       upload.fileName,
		FilePath:       upload.filePath,
		FileType:       upload.fileType,
		JobDescription: c.FormValue("job_description"),
	})
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// MatchResume matches an uploaded resume against a job description
// POST /api/v1/analysis/match
func (h *AnalysisHandlers) MatchResume(c *fiber.Ctx) error {
	authCtx, ok := auth.FromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	jobDescription := c.FormValue("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	upload, err := h.storeUpload(c, authCtx.TenantID)
	if err != nil {
		return err
	}
	defer h.cleanupUpload(c, upload)

	response, err := h.service.Match(c.Context(), analysis.MatchRequest{
		TenantID:       authCtx.TenantID,
		FileName:       upload.fileName,
		FilePath:       upload.filePath,
		FileType:       upload.fileType,
		JobDescription: jobDescription,
	})
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// RankBatch ranks a batch of uploaded resumes against one job description.
// Runs synchronously by default; pass ?async=true to queue a background job.
// POST /api/v1/analysis/rank
func (h *AnalysisHandlers) RankBatch(c *fiber.Ctx) error {
	authCtx, ok := auth.FromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	jobDescription := c.FormValue("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "multipart form is required",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one file is required",
		})
	}
	if len(files) > analysissrv.MaxBatchDocuments {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":       "too many files",
			"file_count":  len(files),
			"max_allowed": analysissrv.MaxBatchDocuments,
		})
	}

	isAsync := c.Query("async") == "true"

	uploads := make([]*storedUpload, 0, len(files))
	cleanup := func() {
		for _, u := range uploads {
			_ = h.fileSystem.DeleteFile(c.Context(), u.filePath)
		}
	}

	documents := make([]analysis.BatchDocumentRef, 0, len(files))
	for _, file := range files {
		upload, err := h.storeFile(c, authCtx.TenantID, file)
		if err != nil {
			cleanup()
			return err
		}
		uploads = append(uploads, upload)
		documents = append(documents, analysis.BatchDocumentRef{
			Name:     upload.fileName,
			FilePath: upload.filePath,
			FileType: upload.fileType,
		})
	}

	req := analysis.RankRequest{
		TenantID:       authCtx.TenantID,
		JobDescription: jobDescription,
		Documents:      documents,
	}

	if isAsync {
		// Files stay in storage until the worker picks them up
		jobResponse, err := h.service.RankAsync(c.Context(), req)
		if err != nil {
			cleanup()
			return err
		}

		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"message":    "Batch upload successful, ranking started",
			"job":        jobResponse,
			"status_url": fmt.Sprintf("/api/v1/analysis/rank/jobs/%s", jobResponse.JobID),
		})
	}

	defer cleanup()

	response, err := h.service.Rank(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// ============================================================================
// Job Handlers
// ============================================================================

// GetJobStatus returns the state of one ranking job
// GET /api/v1/analysis/rank/jobs/:job_id
func (h *AnalysisHandlers) GetJobStatus(c *fiber.Ctx) error {
	authCtx, ok := auth.FromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	jobID := kernel.BatchJobID(c.Params("job_id"))
	if jobID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job ID",
		})
	}

	response, err := h.service.GetJobStatus(c.Context(), jobID)
	if err != nil {
		return err
	}

	if response.TenantID != authCtx.TenantID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}

	return c.JSON(response)
}

// ListJobs lists ranking jobs for the tenant
// GET /api/v1/analysis/rank/jobs?limit=20&offset=0
func (h *AnalysisHandlers) ListJobs(c *fiber.Ctx) error {
	authCtx, ok := auth.FromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	pagination := kernel.DefaultPagination()
	if limit := c.QueryInt("limit"); limit > 0 {
		pagination.Limit = limit
	}
	if offset := c.QueryInt("offset"); offset > 0 {
		pagination.Offset = offset
	}

	response, err := h.service.ListJobsByTenant(c.Context(), authCtx.TenantID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// ============================================================================
// Configuration Handlers
// ============================================================================

// GetSkillConfig exposes the active skill configuration
// GET /api/v1/analysis/skills
func (h *AnalysisHandlers) GetSkillConfig(c *fiber.Ctx) error {
	return c.JSON(h.service.GetSkillConfig())
}

// ============================================================================
// Upload Helpers
// ============================================================================

type storedUpload struct {
	fileName string
	filePath string
	fileType string
}

// storeUpload reads the "file" multipart field and writes it to storage
func (h *AnalysisHandlers) storeUpload(c *fiber.Ctx, tenantID kernel.TenantID) (*storedUpload, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, errx.Wrap(err, "file is required", errx.TypeValidation)
	}
	return h.storeFile(c, tenantID, file)
}

// storeFile validates one uploaded file and writes it to storage under
// a tenant-scoped unique path
func (h *AnalysisHandlers) storeFile(c *fiber.Ctx, tenantID kernel.TenantID, file *multipart.FileHeader) (*storedUpload, error) {
	if file.Size > MaxUploadSize {
		return nil, analysis.ErrFileTooLarge().
			WithDetail("file_name", file.Filename).
			WithDetail("size", file.Size).
			WithDetail("max_size", MaxUploadSize)
	}

	fileType := determineFileType(file.Filename, file.Header.Get("Content-Type"))
	if fileType == "" {
		return nil, analysis.ErrUnsupportedFormat().
			WithDetail("file_name", file.Filename).
			WithDetail("detected_type", file.Header.Get("Content-Type")).
			WithDetail("supported_types", []string{"pdf", "docx", "txt"})
	}

	uploadedFile, err := file.Open()
	if err != nil {
		return nil, errx.Wrap(err, "failed to open uploaded file", errx.TypeInternal)
	}
	defer uploadedFile.Close()

	// Format: analyses/{tenant_id}/{year}/{month}/{uuid}.{ext}
	now := time.Now()
	extension := filepath.Ext(file.Filename)
	if extension == "" {
		extension = "." + fileType
	}

	filePath := h.fileSystem.Join(
		"analyses",
		tenantID.String(),
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		uuid.New().String()+extension,
	)

	if err := h.fileSystem.WriteFileStream(c.Context(), filePath, uploadedFile); err != nil {
		return nil, errx.Wrap(err, "failed to upload file to storage", errx.TypeInternal).
			WithDetail("file_name", file.Filename)
	}

	return &storedUpload{
		fileName: file.Filename,
		filePath: filePath,
		fileType: fileType,
	}, nil
}

// cleanupUpload removes a synchronously processed upload from storage
func (h *AnalysisHandlers) cleanupUpload(c *fiber.Ctx, upload *storedUpload) {
	if upload != nil {
		_ = h.fileSystem.DeleteFile(c.Context(), upload.filePath)
	}
}

// determineFileType maps the filename extension or content type to a
// supported document type
func determineFileType(filename, contentType string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "pdf"
	case ".docx":
		return "docx"
	case ".txt":
		return "txt"
	}

	switch contentType {
	case "application/pdf":
		return "pdf"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return "docx"
	case "text/plain":
		return "txt"
	}

	return ""
}
