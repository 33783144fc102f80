package analysis

import "github.com/lakshraina2/resume-scanner/pkg/kernel"

// ScoreRequest asks for a full quality score of one uploaded resume.
// JobDescription is optional; when present the response also carries
// the match analysis.
type ScoreRequest struct {
	TenantID       kernel.TenantID `json:"tenant_id"`
	FileName       string          `json:"file_name"`
	FilePath       string          `json:"file_path"`
	FileType       string          `json:"file_type"`
	JobDescription string          `json:"job_description,omitempty"`
}

// ScoreResponse is the full analysis of one resume
type ScoreResponse struct {
	Score           ScoreResult      `json:"score"`
	Resume          ResumeSummary    `json:"resume"`
	Suggestions     []string         `json:"suggestions"`
	Statistics      TextStatistics   `json:"statistics"`
	WordFrequencies []WordFrequency  `json:"word_frequencies"`
	Degraded        bool             `json:"degraded"`

	// Present only when a job description was supplied
	Similarity      *SimilarityResult `json:"similarity,omitempty"`
	SkillGaps       *SkillGapResult   `json:"skill_gaps,omitempty"`
	Recommendations []string          `json:"recommendations,omitempty"`
	JobCategory     string            `json:"job_category,omitempty"`
}

// MatchRequest asks for a match analysis of one resume against a job
// description
type MatchRequest struct {
	TenantID       kernel.TenantID `json:"tenant_id"`
	FileName       string          `json:"file_name"`
	FilePath       string          `json:"file_path"`
	FileType       string          `json:"file_type"`
	JobDescription string          `json:"job_description"`
}

// MatchResponse carries the similarity breakdown and skill gap analysis
type MatchResponse struct {
	Similarity      SimilarityResult `json:"similarity"`
	SkillGaps       SkillGapResult   `json:"skill_gaps"`
	Recommendations []string         `json:"recommendations"`
	JobCategory     string           `json:"job_category"`
	Degraded        bool             `json:"degraded"`
}

// RankRequest asks for a batch of resumes to be ranked against one job
// description
type RankRequest struct {
	TenantID       kernel.TenantID    `json:"tenant_id"`
	JobDescription string             `json:"job_description"`
	Documents      []BatchDocumentRef `json:"documents"`
}

// RankResponse is the synchronous batch ranking result
type RankResponse struct {
	Rankings []RankingEntry `json:"rankings"`
	Degraded bool           `json:"degraded"`
}

// SkillConfigResponse exposes the active configuration
type SkillConfigResponse struct {
	TechnicalSkills []string            `json:"technical_skills"`
	SoftSkills      []string            `json:"soft_skills"`
	JobCategories   map[string][]string `json:"job_categories"`
}
