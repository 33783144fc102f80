package analysis

import (
	"net/http"

	"github.com/lakshraina2/resume-scanner/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("ANALYSIS")

// Error codes - Analysis Operations
var (
	CodeEmptyDocument     = ErrRegistry.Register("EMPTY_DOCUMENT", errx.TypeValidation, http.StatusBadRequest, "Document contains no extractable text")
	CodeUnsupportedFormat = ErrRegistry.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Unsupported document format")
	CodeBatchTooLarge     = ErrRegistry.Register("BATCH_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "Batch exceeds the maximum number of documents")
	CodeEmptyBatch        = ErrRegistry.Register("EMPTY_BATCH", errx.TypeValidation, http.StatusBadRequest, "Batch contains no documents")
	CodeMissingJobText    = ErrRegistry.Register("MISSING_JOB_TEXT", errx.TypeValidation, http.StatusBadRequest, "Job description is required")
	CodeExtractionFailed  = ErrRegistry.Register("EXTRACTION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to extract document text")
	CodeConfigLoadFailed  = ErrRegistry.Register("CONFIG_LOAD_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to load skill configuration")
	CodeFileTooLarge      = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File exceeds the maximum allowed size")
)

// Error codes - Batch Job Operations
var (
	CodeJobNotFound        = ErrRegistry.Register("JOB_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Ranking job not found")
	CodeJobCreationFailed  = ErrRegistry.Register("JOB_CREATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to create ranking job record")
	CodeJobUpdateFailed    = ErrRegistry.Register("JOB_UPDATE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to update ranking job")
	CodeJobMaxRetries      = ErrRegistry.Register("JOB_MAX_RETRIES", errx.TypeInternal, http.StatusInternalServerError, "Ranking job exceeded maximum retry attempts")
	CodeQueueEnqueueFailed = ErrRegistry.Register("QUEUE_ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue ranking job")
	CodeQueueDequeueFailed = ErrRegistry.Register("QUEUE_DEQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to dequeue ranking job")
)

// Helper functions - Analysis Operations
func ErrEmptyDocument() *errx.Error {
	return ErrRegistry.New(CodeEmptyDocument)
}

func ErrUnsupportedFormat() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFormat)
}

func ErrBatchTooLarge() *errx.Error {
	return ErrRegistry.New(CodeBatchTooLarge)
}

func ErrEmptyBatch() *errx.Error {
	return ErrRegistry.New(CodeEmptyBatch)
}

func ErrMissingJobText() *errx.Error {
	return ErrRegistry.New(CodeMissingJobText)
}

func ErrExtractionFailed() *errx.Error {
	return ErrRegistry.New(CodeExtractionFailed)
}

func ErrConfigLoadFailed() *errx.Error {
	return ErrRegistry.New(CodeConfigLoadFailed)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

// Helper functions - Batch Job Operations
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobCreationFailed() *errx.Error {
	return ErrRegistry.New(CodeJobCreationFailed)
}

func ErrJobUpdateFailed() *errx.Error {
	return ErrRegistry.New(CodeJobUpdateFailed)
}

func ErrJobMaxRetries() *errx.Error {
	return ErrRegistry.New(CodeJobMaxRetries)
}

func ErrQueueEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueEnqueueFailed)
}

func ErrQueueDequeueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueDequeueFailed)
}
