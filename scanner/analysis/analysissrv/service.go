package analysissrv

import (
	"context"
	"errors"
	"strings"

	"github.com/lakshraina2/resume-scanner/pkg/errx"
	"github.com/lakshraina2/resume-scanner/pkg/fsx"
	"github.com/lakshraina2/resume-scanner/pkg/logx"
	"github.com/lakshraina2/resume-scanner/scanner/analysis"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/match"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/parse"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/score"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/textproc"
)

const (
	MaxBatchDocuments = 10
	MaxWordCloudWords = 100
)

type Service struct {
	proc       *textproc.Processor
	parser     *parse.Parser
	matcher    *match.Matcher
	scorer     *score.Scorer
	ranker     *match.Ranker
	cfg        analysis.SkillConfig
	extractor  analysis.TextExtractor
	richParser analysis.RichParser
	fileReader fsx.FileReader
	jobRepo    analysis.JobRepository
	queue      analysis.JobQueue
}

// NewService creates a new analysis service. richParser may be nil when
// no external parser is configured; responses are then marked degraded
// only if the entity recognizer is also missing.
func NewService(
	proc *textproc.Processor,
	cfg analysis.SkillConfig,
	extractor analysis.TextExtractor,
	richParser analysis.RichParser,
	fileReader fsx.FileReader,
	jobRepo analysis.JobRepository,
	queue analysis.JobQueue,
) *Service {
	matcher := match.NewMatcher(proc, cfg)
	return &Service{
		proc:       proc,
		parser:     parse.NewParser(proc, cfg),
		matcher:    matcher,
		scorer:     score.NewScorer(proc, matcher, cfg),
		ranker:     match.NewRanker(matcher),
		cfg:        cfg,
		extractor:  extractor,
		richParser: richParser,
		fileReader: fileReader,
		jobRepo:    jobRepo,
		queue:      queue,
	}
}

// ============================================================================
// Score Resume
// ============================================================================

// Score runs the full analysis pipeline for one resume: extract, parse,
// score, and optionally match against a job description
func (s *Service) Score(ctx context.Context, req analysis.ScoreRequest) (*analysis.ScoreResponse, error) {
	logx.Infof("Scoring resume: TenantID=%s, File=%s", req.TenantID, req.FileName)

	text, pages, err := s.loadDocument(ctx, req.FilePath, req.FileType)
	if err != nil {
		return nil, err
	}

	parsed, degraded := s.parseResume(ctx, text, pages)

	response := &analysis.ScoreResponse{
		Score:           s.scorer.CalculateOverallScore(parsed, text, req.JobDescription),
		Resume:          parsed.Summary(),
		Suggestions:     s.scorer.GetImprovementSuggestions(parsed, text),
		Statistics:      s.proc.GetTextStatistics(text),
		WordFrequencies: s.proc.WordFrequencies(text, MaxWordCloudWords),
		Degraded:        degraded,
	}

	if req.JobDescription != "" {
		similarity := s.matcher.CalculateSimilarity(text, req.JobDescription)
		gaps := s.matcher.AnalyzeSkillGaps(text, req.JobDescription)
		response.Similarity = &similarity
		response.SkillGaps = &gaps
		response.Recommendations = s.matcher.GetMatchingRecommendations(text, req.JobDescription)
		response.JobCategory = s.matcher.CategorizeJobRole(req.JobDescription)
	}

	return response, nil
}

// ============================================================================
// Match Resume Against Job
// ============================================================================

// Match compares one resume against a job description
func (s *Service) Match(ctx context.Context, req analysis.MatchRequest) (*analysis.MatchResponse, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, analysis.ErrMissingJobText().
			WithDetail("tenant_id", req.TenantID)
	}

	logx.Infof("Matching resume: TenantID=%s, File=%s", req.TenantID, req.FileName)

	text, _, err := s.loadDocument(ctx, req.FilePath, req.FileType)
	if err != nil {
		return nil, err
	}

	return &analysis.MatchResponse{
		Similarity:      s.matcher.CalculateSimilarity(text, req.JobDescription),
		SkillGaps:       s.matcher.AnalyzeSkillGaps(text, req.JobDescription),
		Recommendations: s.matcher.GetMatchingRecommendations(text, req.JobDescription),
		JobCategory:     s.matcher.CategorizeJobRole(req.JobDescription),
		Degraded:        !s.proc.HasRecognizer(),
	}, nil
}

// ============================================================================
// Rank Batch (synchronous)
// ============================================================================

// Rank scores a batch of resumes against one job description and
// returns them ordered best first
func (s *Service) Rank(ctx context.Context, req analysis.RankRequest) (*analysis.RankResponse, error) {
	if err := s.validateRankRequest(req); err != nil {
		return nil, err
	}

	logx.Infof("Ranking batch: TenantID=%s, Documents=%d", req.TenantID, len(req.Documents))

	documents, err := s.loadBatch(ctx, req.Documents)
	if err != nil {
		return nil, err
	}

	return &analysis.RankResponse{
		Rankings: s.ranker.Rank(documents, req.JobDescription),
		Degraded: !s.proc.HasRecognizer(),
	}, nil
}

func (s *Service) validateRankRequest(req analysis.RankRequest) error {
	if strings.TrimSpace(req.JobDescription) == "" {
		return analysis.ErrMissingJobText().
			WithDetail("tenant_id", req.TenantID)
	}
	if len(req.Documents) == 0 {
		return analysis.ErrEmptyBatch().
			WithDetail("tenant_id", req.TenantID)
	}
	if len(req.Documents) > MaxBatchDocuments {
		return analysis.ErrBatchTooLarge().
			WithDetail("tenant_id", req.TenantID).
			WithDetail("document_count", len(req.Documents)).
			WithDetail("max_allowed", MaxBatchDocuments)
	}
	return nil
}

// ============================================================================
// Skill Configuration
// ============================================================================

// GetSkillConfig exposes the active skill configuration
func (s *Service) GetSkillConfig() *analysis.SkillConfigResponse {
	categories := make(map[string][]string, len(s.cfg.JobCategories))
	for _, category := range s.cfg.JobCategories {
		categories[category.Name] = category.Keywords
	}
	return &analysis.SkillConfigResponse{
		TechnicalSkills: s.cfg.TechnicalSkills,
		SoftSkills:      s.cfg.SoftSkills,
		JobCategories:   categories,
	}
}

// ============================================================================
// Private Helper Methods
// ============================================================================

// pageCounter is implemented by extractors that can report page counts
type pageCounter interface {
	PageCount(data []byte, extension string) int
}

// loadDocument reads a stored file and extracts its text. Returns
// ErrEmptyDocument when no usable text came out.
func (s *Service) loadDocument(ctx context.Context, filePath, fileType string) (string, int, error) {
	fileData, err := s.fileReader.ReadFile(ctx, filePath)
	if err != nil {
		return "", 0, analysis.ErrRegistry.NewWithCause(analysis.CodeExtractionFailed, err).
			WithDetail("file_path", filePath).
			WithDetail("stage", "read")
	}

	text, err := s.extractor.Extract(fileData, fileType)
	if err != nil {
		var appErr *errx.Error
		if errors.As(err, &appErr) {
			return "", 0, appErr
		}
		return "", 0, analysis.ErrRegistry.NewWithCause(analysis.CodeExtractionFailed, err).
			WithDetail("file_path", filePath).
			WithDetail("file_type", fileType)
	}

	if strings.TrimSpace(text) == "" {
		return "", 0, analysis.ErrEmptyDocument().
			WithDetail("file_path", filePath).
			WithDetail("file_type", fileType)
	}

	pages := 1
	if counter, ok := s.extractor.(pageCounter); ok {
		pages = counter.PageCount(fileData, fileType)
	}
	return text, pages, nil
}

// loadBatch extracts text for every document in a batch
func (s *Service) loadBatch(ctx context.Context, refs []analysis.BatchDocumentRef) ([]match.Document, error) {
	documents := make([]match.Document, 0, len(refs))
	for _, ref := range refs {
		text, _, err := s.loadDocument(ctx, ref.FilePath, ref.FileType)
		if err != nil {
			var appErr *errx.Error
			if errors.As(err, &appErr) {
				return nil, appErr.WithDetail("document_name", ref.Name)
			}
			return nil, err
		}
		documents = append(documents, match.Document{Name: ref.Name, Text: text})
	}
	return documents, nil
}

// parseResume runs the manual parser, optionally enriched by the
// external parser. Rich parse failures degrade rather than fail.
func (s *Service) parseResume(ctx context.Context, text string, pages int) (*analysis.ParsedResume, bool) {
	degraded := !s.proc.HasRecognizer()

	var rich *analysis.RawRecord
	if s.richParser != nil {
		record, err := s.richParser.Parse(ctx, text)
		if err != nil {
			logx.Warnf("Rich parse failed, falling back to manual parse: %v", err)
			degraded = true
		} else {
			rich = record
		}
	}

	parsed := s.parser.Parse(text, rich)
	if parsed.NoOfPages <= 1 && pages > 1 {
		parsed.NoOfPages = pages
	}
	return parsed, degraded
}
