// Package score turns a parsed resume into a weighted quality score
// with letter grade, feedback, and improvement suggestions.
package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/lakshraina2/resume-scanner/scanner/analysis"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/match"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/textproc"
)

// Category weights. job_match keeps its weight even without a job
// description, zeroing 10% of the ceiling rather than renormalizing.
const (
	weightCompleteness    = 0.30
	weightContentQuality  = 0.25
	weightSkillsRelevance = 0.20
	weightExperience      = 0.15
	weightJobMatch        = 0.10
)

// Scorer evaluates resumes. Construct once and share; all state is
// read-only.
type Scorer struct {
	proc    *textproc.Processor
	matcher *match.Matcher
	cfg     analysis.SkillConfig
}

func NewScorer(proc *textproc.Processor, matcher *match.Matcher, cfg analysis.SkillConfig) *Scorer {
	return &Scorer{
		proc:    proc,
		matcher: matcher,
		cfg:     cfg,
	}
}

// CalculateOverallScore computes the five weighted category scores.
// jobDescription may be empty; job_match then scores 0.
func (s *Scorer) CalculateOverallScore(resume *analysis.ParsedResume, resumeText, jobDescription string) analysis.ScoreResult {
	scores := map[string]float64{
		analysis.CategoryCompleteness:    s.completenessScore(resume),
		analysis.CategoryContentQuality:  s.contentQualityScore(resumeText),
		analysis.CategorySkillsRelevance: s.skillsRelevanceScore(resume),
		analysis.CategoryExperience:      s.experienceScore(resume),
		analysis.CategoryJobMatch:        0,
	}
	if jobDescription != "" {
		similarity := s.matcher.CalculateSimilarity(resumeText, jobDescription)
		scores[analysis.CategoryJobMatch] = similarity.OverallScore / 100
	}

	overall := scores[analysis.CategoryCompleteness]*weightCompleteness +
		scores[analysis.CategoryContentQuality]*weightContentQuality +
		scores[analysis.CategorySkillsRelevance]*weightSkillsRelevance +
		scores[analysis.CategoryExperience]*weightExperience +
		scores[analysis.CategoryJobMatch]*weightJobMatch

	categoryScores := make(map[string]float64, len(scores))
	for category, value := range scores {
		categoryScores[category] = round2(value * 100)
	}

	return analysis.ScoreResult{
		OverallScore:   round2(overall * 100),
		CategoryScores: categoryScores,
		Grade:          Grade(overall * 100),
		Feedback:       s.generateFeedback(scores, resume),
	}
}

// completenessScore averages five required booleans at 70% weight and
// three optional section booleans at 30%
func (s *Scorer) completenessScore(resume *analysis.ParsedResume) float64 {
	required := []bool{
		resume.Name != "",
		resume.HasContactInfo(),
		len(resume.Skills) > 0,
		len(resume.Education) > 0,
		resume.ExperienceYears > 0 || len(resume.Companies) > 0,
	}
	optional := []bool{
		resume.HasSection(analysis.SectionProjects),
		resume.HasSection(analysis.SectionCertifications),
		resume.HasSection(analysis.SectionSummary) || resume.HasSection(analysis.SectionObjective),
	}

	return ratio(required)*0.7 + ratio(optional)*0.3
}

func (s *Scorer) contentQualityScore(resumeText string) float64 {
	if resumeText == "" {
		return 0
	}
	stats := s.proc.GetTextStatistics(resumeText)

	var wordScore float64
	switch wc := stats.WordCount; {
	case wc >= 300 && wc <= 800:
		wordScore = 1.0
	case (wc >= 200 && wc < 300) || (wc > 800 && wc <= 1000):
		wordScore = 0.8
	case (wc >= 100 && wc < 200) || (wc > 1000 && wc <= 1200):
		wordScore = 0.6
	default:
		wordScore = 0.4
	}

	var sentenceScore float64
	switch avg := stats.AvgWordsPerSentence; {
	case avg >= 10 && avg <= 25:
		sentenceScore = 1.0
	case (avg >= 8 && avg < 10) || (avg > 25 && avg <= 30):
		sentenceScore = 0.8
	default:
		sentenceScore = 0.6
	}

	var diversityScore float64
	if stats.WordCount > 0 {
		switch ratio := float64(stats.UniqueWords) / float64(stats.WordCount); {
		case ratio >= 0.5:
			diversityScore = 1.0
		case ratio >= 0.4:
			diversityScore = 0.8
		case ratio >= 0.3:
			diversityScore = 0.6
		default:
			diversityScore = 0.4
		}
	}

	return (wordScore + sentenceScore + diversityScore) / 3
}

// skillsRelevanceScore averages quantity, technical depth, and
// technical/soft balance. A skill is technical when any configured
// technical skill is a substring of it, soft when any soft skill is;
// a skill matching neither counts toward the total only.
func (s *Scorer) skillsRelevanceScore(resume *analysis.ParsedResume) float64 {
	if len(resume.Skills) == 0 {
		return 0
	}

	techCount, softCount := 0, 0
	for _, skill := range resume.Skills {
		skillLower := strings.ToLower(skill)
		switch {
		case containsAny(skillLower, s.cfg.TechnicalSkills):
			techCount++
		case containsAny(skillLower, s.cfg.SoftSkills):
			softCount++
		}
	}

	var quantityScore float64
	switch total := len(resume.Skills); {
	case total >= 8 && total <= 15:
		quantityScore = 1.0
	case (total >= 5 && total < 8) || (total > 15 && total <= 20):
		quantityScore = 0.8
	case (total >= 3 && total < 5) || (total > 20 && total <= 25):
		quantityScore = 0.6
	default:
		quantityScore = 0.4
	}

	var techScore float64
	switch {
	case techCount >= 5:
		techScore = 1.0
	case techCount >= 3:
		techScore = 0.8
	case techCount >= 1:
		techScore = 0.6
	default:
		techScore = 0.2
	}

	var balanceScore float64
	switch {
	case techCount > 0 && softCount > 0:
		balanceScore = 1.0
	case techCount > 0 || softCount > 0:
		balanceScore = 0.7
	default:
		balanceScore = 0.3
	}

	return (quantityScore + techScore + balanceScore) / 3
}

func (s *Scorer) experienceScore(resume *analysis.ParsedResume) float64 {
	var expScore float64
	switch years := resume.ExperienceYears; {
	case years >= 5:
		expScore = 1.0
	case years >= 3:
		expScore = 0.8
	case years >= 1:
		expScore = 0.6
	case years > 0:
		expScore = 0.4
	default:
		expScore = 0.0
	}

	var companyScore float64
	switch n := len(resume.Companies); {
	case n >= 3:
		companyScore = 1.0
	case n >= 2:
		companyScore = 0.8
	case n >= 1:
		companyScore = 0.6
	default:
		companyScore = 0.2
	}

	var progressionScore float64
	switch n := len(resume.Designations); {
	case n >= 2:
		progressionScore = 1.0
	case n >= 1:
		progressionScore = 0.7
	default:
		progressionScore = 0.3
	}

	return (expScore + companyScore + progressionScore) / 3
}

// Grade maps a percentage to a letter grade. Lower bounds are
// inclusive; ties go to the higher tier.
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 80:
		return "A-"
	case score >= 75:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 65:
		return "B-"
	case score >= 60:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 50:
		return "C-"
	default:
		return "D"
	}
}

// generateFeedback evaluates every rule against the raw category
// scores; all applicable rules fire
func (s *Scorer) generateFeedback(scores map[string]float64, resume *analysis.ParsedResume) []string {
	feedback := []string{}

	if scores[analysis.CategoryCompleteness] < 0.7 {
		missing := []string{}
		if resume.Name == "" {
			missing = append(missing, "name")
		}
		if !resume.HasContactInfo() {
			missing = append(missing, "contact information")
		}
		if len(resume.Skills) == 0 {
			missing = append(missing, "skills section")
		}
		if len(resume.Education) == 0 {
			missing = append(missing, "education details")
		}
		if len(missing) > 0 {
			feedback = append(feedback, fmt.Sprintf("Missing information: add %s", strings.Join(missing, ", ")))
		}
	}

	if scores[analysis.CategoryContentQuality] < 0.6 {
		feedback = append(feedback, "Improve content: resume may be too short, too long, or lack detail")
	}

	if scores[analysis.CategorySkillsRelevance] < 0.6 {
		if count := len(resume.Skills); count < 5 {
			feedback = append(feedback, "Add more skills: include relevant technical and soft skills")
		} else if count > 20 {
			feedback = append(feedback, "Optimize skills: focus on the most relevant skills (8-15 recommended)")
		}
	}

	if scores[analysis.CategoryExperience] < 0.5 {
		if resume.ExperienceYears == 0 {
			feedback = append(feedback, "Add experience: include internships, projects, or volunteer work")
		} else {
			feedback = append(feedback, "Enhance experience: add more details about roles and achievements")
		}
	}

	if jobMatch := scores[analysis.CategoryJobMatch]; jobMatch > 0 && jobMatch < 0.6 {
		feedback = append(feedback, "Improve job match: tailor the resume to better match job requirements")
	}

	if scores[analysis.CategoryCompleteness] >= 0.8 {
		feedback = append(feedback, "Complete profile: well-structured resume with all essential sections")
	}
	if scores[analysis.CategorySkillsRelevance] >= 0.8 {
		feedback = append(feedback, "Strong skills profile: good mix of relevant technical and soft skills")
	}

	return feedback
}

var actionVerbs = []string{"achieved", "developed", "managed", "led", "created", "improved", "increased"}

// GetImprovementSuggestions checks independent writing heuristics; each
// yields at most one suggestion
func (s *Scorer) GetImprovementSuggestions(resume *analysis.ParsedResume, resumeText string) []string {
	suggestions := []string{}

	if !strings.ContainsAny(resumeText, "0123456789") {
		suggestions = append(suggestions, "Add numbers: include metrics, percentages, or quantities to showcase impact")
	}

	textLower := strings.ToLower(resumeText)
	hasActionVerb := false
	for _, verb := range actionVerbs {
		if strings.Contains(textLower, verb) {
			hasActionVerb = true
			break
		}
	}
	if !hasActionVerb {
		suggestions = append(suggestions, "Use action verbs: start bullet points with strong action verbs")
	}

	wordCount := len(strings.Fields(resumeText))
	if wordCount < 200 {
		suggestions = append(suggestions, "Expand content: add more details about your experience and achievements")
	} else if wordCount > 1000 {
		suggestions = append(suggestions, "Concise writing: consider reducing content to focus on the most relevant information")
	}

	if len(resume.Emails) == 0 {
		suggestions = append(suggestions, "Add email: include a professional email address")
	}
	if len(resume.Phones) == 0 {
		suggestions = append(suggestions, "Add phone: include your phone number for contact")
	}

	return suggestions
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

func ratio(flags []bool) float64 {
	set := 0
	for _, f := range flags {
		if f {
			set++
		}
	}
	return float64(set) / float64(len(flags))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
