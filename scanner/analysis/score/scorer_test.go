package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshraina2/resume-scanner/scanner/analysis"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/match"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/textproc"
)

func newTestScorer() *Scorer {
	cfg := analysis.DefaultSkillConfig()
	proc := textproc.NewProcessor(textproc.NewRegexRecognizer())
	return NewScorer(proc, match.NewMatcher(proc, cfg), cfg)
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{95, "A+"},
		{90.0, "A+"},
		{89.999, "A"},
		{85, "A"},
		{80, "A-"},
		{75, "B+"},
		{70, "B"},
		{65, "B-"},
		{60, "C+"},
		{55, "C"},
		{50.0, "C-"},
		{49.999, "D"},
		{0, "D"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Grade(tt.score), "score %v", tt.score)
	}
}

func TestCompletenessScore(t *testing.T) {
	s := newTestScorer()

	t.Run("empty resume scores zero", func(t *testing.T) {
		assert.Zero(t, s.completenessScore(analysis.NewParsedResume()))
	})

	t.Run("all required and optional present scores one", func(t *testing.T) {
		resume := analysis.NewParsedResume()
		resume.Name = "Jane Doe"
		resume.Emails = []string{"jane@example.com"}
		resume.Skills = []string{"python"}
		resume.Education = []string{"BS Computer Science"}
		resume.ExperienceYears = 3
		resume.Sections[analysis.SectionProjects] = "built things"
		resume.Sections[analysis.SectionCertifications] = "aws certified"
		resume.Sections[analysis.SectionSummary] = "engineer"

		assert.InDelta(t, 1.0, s.completenessScore(resume), 1e-9)
	})

	t.Run("required booleans weigh seventy percent", func(t *testing.T) {
		resume := analysis.NewParsedResume()
		resume.Name = "Jane Doe"
		resume.Phones = []string{"555-123-4567"}
		resume.Skills = []string{"python"}
		resume.Education = []string{"BS"}
		resume.Companies = []string{"Acme"}

		// all 5 required, 0 optional
		assert.InDelta(t, 0.7, s.completenessScore(resume), 1e-9)
	})

	t.Run("objective counts for the summary boolean", func(t *testing.T) {
		resume := analysis.NewParsedResume()
		resume.Sections[analysis.SectionObjective] = "seeking a role"
		assert.InDelta(t, 0.1, s.completenessScore(resume), 1e-9)
	})
}

func TestContentQualityScore(t *testing.T) {
	s := newTestScorer()

	t.Run("empty text scores zero", func(t *testing.T) {
		assert.Zero(t, s.contentQualityScore(""))
	})

	t.Run("ideal document scores one", func(t *testing.T) {
		// ~400 unique-ish words, 15 words per sentence
		var b strings.Builder
		words := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta", "iota", "kappa", "lambda", "mu", "nu", "xi"}
		for i := 0; i < 30; i++ {
			for j, w := range words {
				b.WriteString(w)
				if i%3 == j%3 {
					b.WriteString("x")
				}
				b.WriteString(" ")
			}
			b.WriteString("omega.\n")
		}
		score := s.contentQualityScore(b.String())
		assert.GreaterOrEqual(t, score, 0.8)
	})

	t.Run("tiny document scores low", func(t *testing.T) {
		score := s.contentQualityScore("short text here.")
		assert.Less(t, score, 0.8)
	})
}

func TestSkillsRelevanceScore(t *testing.T) {
	s := newTestScorer()

	t.Run("no skills scores zero", func(t *testing.T) {
		assert.Zero(t, s.skillsRelevanceScore(analysis.NewParsedResume()))
	})

	t.Run("balanced skill set in the ideal band scores one", func(t *testing.T) {
		resume := analysis.NewParsedResume()
		resume.Skills = []string{"python", "java", "sql", "docker", "aws", "react", "git", "leadership"}
		// 8 skills: quantity 1.0; 7 technical: 1.0; tech+soft: 1.0
		assert.InDelta(t, 1.0, s.skillsRelevanceScore(resume), 1e-9)
	})

	t.Run("technical only loses the balance third", func(t *testing.T) {
		resume := analysis.NewParsedResume()
		resume.Skills = []string{"python", "java", "sql", "docker", "aws", "react", "git", "jenkins"}
		assert.InDelta(t, (1.0+1.0+0.7)/3, s.skillsRelevanceScore(resume), 1e-9)
	})

	t.Run("unknown skills count in total but neither bucket", func(t *testing.T) {
		resume := analysis.NewParsedResume()
		resume.Skills = []string{"underwater basket weaving", "competitive napping", "yodeling"}
		// quantity 0.6 (3 skills), tech 0.2, balance 0.3
		assert.InDelta(t, (0.6+0.2+0.3)/3, s.skillsRelevanceScore(resume), 1e-9)
	})
}

func TestExperienceScore(t *testing.T) {
	s := newTestScorer()

	t.Run("senior profile scores one", func(t *testing.T) {
		resume := analysis.NewParsedResume()
		resume.ExperienceYears = 6
		resume.Companies = []string{"A", "B", "C"}
		resume.Designations = []string{"Engineer", "Senior Engineer"}
		assert.InDelta(t, 1.0, s.experienceScore(resume), 1e-9)
	})

	t.Run("zero years hits the zero tier", func(t *testing.T) {
		resume := analysis.NewParsedResume()
		// years 0.0, companies 0.2, designations 0.3
		assert.InDelta(t, 0.5/3, s.experienceScore(resume), 1e-9)
	})
}

func TestCalculateOverallScore(t *testing.T) {
	s := newTestScorer()

	buildResume := func() (*analysis.ParsedResume, string) {
		resume := analysis.NewParsedResume()
		resume.Name = "Jane Doe"
		resume.Emails = []string{"jane@example.com"}
		resume.Phones = []string{"555-123-4567"}
		resume.Skills = []string{"python", "sql", "aws", "docker", "git", "react", "leadership", "communication"}
		resume.Education = []string{"BS Computer Science from State University"}
		resume.ExperienceYears = 6
		resume.Companies = []string{"Acme", "Initech"}
		resume.Designations = []string{"Engineer", "Senior Engineer"}
		resume.Sections[analysis.SectionSummary] = "seasoned engineer"
		resume.Sections[analysis.SectionProjects] = "various projects"
		resume.Sections[analysis.SectionCertifications] = "aws certified"

		text := "Jane Doe built python and sql systems on aws with docker for 6 years of experience. " +
			"Led teams, developed services, improved throughput 40%."
		return resume, text
	}

	t.Run("without job description job_match is zero but weighted", func(t *testing.T) {
		resume, text := buildResume()
		result := s.CalculateOverallScore(resume, text, "")

		require.Len(t, result.CategoryScores, 5)
		assert.Zero(t, result.CategoryScores[analysis.CategoryJobMatch])
		// the 10% job_match weight is not renormalized away
		assert.LessOrEqual(t, result.OverallScore, 90.0)
		assert.NotEmpty(t, result.Grade)
	})

	t.Run("job description fills the job_match category", func(t *testing.T) {
		resume, text := buildResume()
		result := s.CalculateOverallScore(resume, text, "python developer with sql and aws, 3 years of experience")

		assert.Greater(t, result.CategoryScores[analysis.CategoryJobMatch], 0.0)
	})

	t.Run("scores are bounded percentages", func(t *testing.T) {
		resume, text := buildResume()
		result := s.CalculateOverallScore(resume, text, "")
		assert.GreaterOrEqual(t, result.OverallScore, 0.0)
		assert.LessOrEqual(t, result.OverallScore, 100.0)
		for category, score := range result.CategoryScores {
			assert.GreaterOrEqual(t, score, 0.0, category)
			assert.LessOrEqual(t, score, 100.0, category)
		}
	})
}

func TestGenerateFeedback(t *testing.T) {
	s := newTestScorer()

	t.Run("weak resume collects missing information", func(t *testing.T) {
		resume := analysis.NewParsedResume()
		result := s.CalculateOverallScore(resume, "tiny", "")

		joined := strings.Join(result.Feedback, "\n")
		assert.Contains(t, joined, "Missing information")
		assert.Contains(t, joined, "name")
		assert.Contains(t, joined, "contact information")
		assert.Contains(t, joined, "skills section")
		assert.Contains(t, joined, "education details")
		assert.Contains(t, joined, "Add experience")
	})

	t.Run("strong resume earns positive feedback", func(t *testing.T) {
		resume := analysis.NewParsedResume()
		resume.Name = "Jane Doe"
		resume.Emails = []string{"jane@example.com"}
		resume.Skills = []string{"python", "sql", "aws", "docker", "git", "react", "leadership", "communication"}
		resume.Education = []string{"BS"}
		resume.ExperienceYears = 5
		resume.Sections[analysis.SectionProjects] = "x"
		resume.Sections[analysis.SectionCertifications] = "y"
		resume.Sections[analysis.SectionSummary] = "z"

		result := s.CalculateOverallScore(resume, "a perfectly reasonable resume text", "")
		joined := strings.Join(result.Feedback, "\n")
		assert.Contains(t, joined, "Complete profile")
		assert.Contains(t, joined, "Strong skills profile")
	})

	t.Run("low skill count branch", func(t *testing.T) {
		resume := analysis.NewParsedResume()
		resume.Skills = []string{"yodeling"}
		result := s.CalculateOverallScore(resume, "text", "")
		assert.Contains(t, strings.Join(result.Feedback, "\n"), "Add more skills")
	})
}

func TestGetImprovementSuggestions(t *testing.T) {
	s := newTestScorer()

	t.Run("bare resume triggers every heuristic", func(t *testing.T) {
		resume := analysis.NewParsedResume()
		suggestions := s.GetImprovementSuggestions(resume, "plain words only")

		joined := strings.Join(suggestions, "\n")
		assert.Contains(t, joined, "Add numbers")
		assert.Contains(t, joined, "Use action verbs")
		assert.Contains(t, joined, "Expand content")
		assert.Contains(t, joined, "Add email")
		assert.Contains(t, joined, "Add phone")
	})

	t.Run("covered resume triggers none of them", func(t *testing.T) {
		resume := analysis.NewParsedResume()
		resume.Emails = []string{"a@b.co"}
		resume.Phones = []string{"555-123-4567"}

		word := "developed "
		text := "improved metrics by 40%. " + strings.Repeat(word, 300)
		suggestions := s.GetImprovementSuggestions(resume, text)
		assert.Empty(t, suggestions)
	})

	t.Run("overlong resume gets the condense suggestion", func(t *testing.T) {
		resume := analysis.NewParsedResume()
		resume.Emails = []string{"a@b.co"}
		resume.Phones = []string{"555-123-4567"}

		text := "achieved 10x. " + strings.Repeat("word ", 1100)
		suggestions := s.GetImprovementSuggestions(resume, text)
		assert.Contains(t, strings.Join(suggestions, "\n"), "Concise writing")
	})
}
