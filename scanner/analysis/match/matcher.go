// Package match computes similarity between resumes and job
// descriptions with four independent lexical methods, analyzes skill
// gaps, and ranks resume batches.
package match

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lakshraina2/resume-scanner/scanner/analysis"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/textproc"
)

const (
	maxFeatures   = 5000
	topKeywords   = 20
	weightTfidf   = 0.4
	weightKeyword = 0.2
	weightSkills  = 0.3
	weightExp     = 0.1
)

// Matcher scores resume/job pairs. Construct once and share; all state
// is read-only.
type Matcher struct {
	proc *textproc.Processor
	cfg  analysis.SkillConfig
	vec  *Vectorizer
}

func NewMatcher(proc *textproc.Processor, cfg analysis.SkillConfig) *Matcher {
	return &Matcher{
		proc: proc,
		cfg:  cfg,
		vec:  NewVectorizer(maxFeatures, textproc.StopwordSet()),
	}
}

// CalculateSimilarity runs the four methods with fixed weights
// 0.4/0.2/0.3/0.1 and returns percentage scores rounded to two
// decimals. When either preprocessed text is empty the result
// short-circuits to an overall score of 0 with no method scores.
func (m *Matcher) CalculateSimilarity(resumeText, jobText string) analysis.SimilarityResult {
	resumeProcessed := m.proc.PreprocessForSimilarity(resumeText)
	jobProcessed := m.proc.PreprocessForSimilarity(jobText)

	if resumeProcessed == "" || jobProcessed == "" {
		return analysis.SimilarityResult{
			OverallScore: 0,
			MethodScores: map[string]float64{},
		}
	}

	scores := map[string]float64{
		analysis.MethodTfidfCosine:     m.tfidfCosine(resumeProcessed, jobProcessed),
		analysis.MethodKeywordMatch:    m.keywordMatch(resumeText, jobText),
		analysis.MethodSkillsMatch:     m.skillsMatch(resumeText, jobText),
		analysis.MethodExperienceMatch: m.experienceMatch(resumeText, jobText),
	}

	overall := scores[analysis.MethodTfidfCosine]*weightTfidf +
		scores[analysis.MethodKeywordMatch]*weightKeyword +
		scores[analysis.MethodSkillsMatch]*weightSkills +
		scores[analysis.MethodExperienceMatch]*weightExp

	methodScores := make(map[string]float64, len(scores))
	for method, score := range scores {
		methodScores[method] = round2(score * 100)
	}

	return analysis.SimilarityResult{
		OverallScore: round2(overall * 100),
		MethodScores: methodScores,
	}
}

// tfidfCosine fits the vector space on exactly the two documents being
// compared. IDF values are therefore corpus-local and not comparable
// across different resume/job pairs.
func (m *Matcher) tfidfCosine(resumeProcessed, jobProcessed string) float64 {
	_, matrix := m.vec.FitTransform([]string{resumeProcessed, jobProcessed})
	return CosineSimilarity(matrix[0], matrix[1])
}

func (m *Matcher) keywordMatch(resumeText, jobText string) float64 {
	keywords := m.ExtractImportantKeywords(jobText, topKeywords)
	if len(keywords) == 0 {
		return 0
	}

	resumeLower := strings.ToLower(resumeText)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(resumeLower, strings.ToLower(kw)) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords))
}

// skillsMatch blends Jaccard similarity with the fraction of job
// skills covered, weighted 0.4/0.6
func (m *Matcher) skillsMatch(resumeText, jobText string) float64 {
	resumeSkills := m.skillSet(resumeText)
	jobSkills := m.skillSet(jobText)

	if len(jobSkills) == 0 {
		return 0
	}

	intersection := 0
	for skill := range resumeSkills {
		if _, ok := jobSkills[skill]; ok {
			intersection++
		}
	}
	union := len(resumeSkills) + len(jobSkills) - intersection

	jaccard := 0.0
	if union > 0 {
		jaccard = float64(intersection) / float64(union)
	}
	coverage := float64(intersection) / float64(len(jobSkills))

	return jaccard*0.4 + coverage*0.6
}

func (m *Matcher) experienceMatch(resumeText, jobText string) float64 {
	resumeExp := m.proc.ExtractExperienceYears(resumeText)
	jobExp := m.ExtractRequiredExperience(jobText)

	if jobExp == 0 {
		return 1.0
	}

	r, j := float64(resumeExp), float64(jobExp)
	switch {
	case r >= j:
		return 1.0
	case r >= j*0.7:
		return 0.8
	case r >= j*0.5:
		return 0.6
	default:
		return r / j
	}
}

// ExtractImportantKeywords ranks the terms of a single document by
// TF-IDF weight and returns the top numKeywords with positive weight
func (m *Matcher) ExtractImportantKeywords(text string, numKeywords int) []string {
	processed := m.proc.PreprocessForSimilarity(text)
	if processed == "" {
		return []string{}
	}

	vocab, matrix := m.vec.FitTransform([]string{processed})
	weights := matrix[0]

	indices := make([]int, len(vocab))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return weights[indices[a]] > weights[indices[b]]
	})

	keywords := []string{}
	for _, i := range indices {
		if len(keywords) >= numKeywords {
			break
		}
		if weights[i] > 0 {
			keywords = append(keywords, vocab[i])
		}
	}
	return keywords
}

var requiredExpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)`),
	regexp.MustCompile(`(?:minimum|min|at least)\s*(\d+)\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(\d+)\s*to\s*(\d+)\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*(?:years?|yrs?)`),
}

// ExtractRequiredExperience reads the required years from a job
// description. Range phrasings contribute their lower bound, and the
// minimum across all matches wins: the most lenient stated requirement
// is used when several phrasings appear.
func (m *Matcher) ExtractRequiredExperience(jobText string) int {
	textLower := strings.ToLower(jobText)
	years := []int{}

	for _, re := range requiredExpPatterns {
		for _, match := range re.FindAllStringSubmatch(textLower, -1) {
			if len(match) < 2 {
				continue
			}
			n, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			years = append(years, n)
		}
	}

	if len(years) == 0 {
		return 0
	}
	min := years[0]
	for _, y := range years[1:] {
		if y < min {
			min = y
		}
	}
	return min
}

// AnalyzeSkillGaps computes the set algebra between resume and job
// skills. Output sets are sorted for deterministic responses.
func (m *Matcher) AnalyzeSkillGaps(resumeText, jobText string) analysis.SkillGapResult {
	resumeSkills := m.skillSet(resumeText)
	jobSkills := m.skillSet(jobText)

	matching := []string{}
	missing := []string{}
	additional := []string{}

	for skill := range resumeSkills {
		if _, ok := jobSkills[skill]; ok {
			matching = append(matching, skill)
		} else {
			additional = append(additional, skill)
		}
	}
	for skill := range jobSkills {
		if _, ok := resumeSkills[skill]; !ok {
			missing = append(missing, skill)
		}
	}
	sort.Strings(matching)
	sort.Strings(missing)
	sort.Strings(additional)

	percentage := 0.0
	if len(jobSkills) > 0 {
		percentage = float64(len(matching)) / float64(len(jobSkills)) * 100
	}

	return analysis.SkillGapResult{
		MatchingSkills:       matching,
		MissingSkills:        missing,
		AdditionalSkills:     additional,
		SkillMatchPercentage: percentage,
	}
}

// CategorizeJobRole returns the first configured category with a
// keyword found in the job text, or "general"
func (m *Matcher) CategorizeJobRole(jobText string) string {
	jobLower := strings.ToLower(jobText)
	for _, category := range m.cfg.JobCategories {
		for _, keyword := range category.Keywords {
			if strings.Contains(jobLower, strings.ToLower(keyword)) {
				return category.Name
			}
		}
	}
	return "general"
}

// GetMatchingRecommendations emits rule-based guidance for improving
// the resume against this job. Rules are evaluated independently in a
// fixed order; zero to five messages are possible.
func (m *Matcher) GetMatchingRecommendations(resumeText, jobText string) []string {
	recommendations := []string{}

	gaps := m.AnalyzeSkillGaps(resumeText, jobText)
	if len(gaps.MissingSkills) > 0 {
		top := gaps.MissingSkills
		if len(top) > 5 {
			top = top[:5]
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Add missing skills: %s", strings.Join(top, ", ")))
	}

	resumeExp := m.proc.ExtractExperienceYears(resumeText)
	requiredExp := m.ExtractRequiredExperience(jobText)
	if requiredExp > resumeExp {
		recommendations = append(recommendations,
			fmt.Sprintf("Experience gap: position requires %d years, highlight relevant projects or internships", requiredExp))
	}

	keywords := m.ExtractImportantKeywords(jobText, 10)
	resumeLower := strings.ToLower(resumeText)
	missingKeywords := []string{}
	for _, kw := range keywords {
		if !strings.Contains(resumeLower, strings.ToLower(kw)) {
			missingKeywords = append(missingKeywords, kw)
		}
	}
	if len(missingKeywords) > 0 {
		top := missingKeywords
		if len(top) > 3 {
			top = top[:3]
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Include key terms: %s", strings.Join(top, ", ")))
	}

	entities := m.proc.ExtractEntities(resumeText)
	if len(entities[analysis.EntityOrg]) == 0 {
		recommendations = append(recommendations,
			"Add company names to highlight work experience")
	}

	if gaps.SkillMatchPercentage < 50 {
		recommendations = append(recommendations,
			"Improve skill relevance: focus on skills mentioned in the job description")
	}

	return recommendations
}

func (m *Matcher) skillSet(text string) map[string]struct{} {
	skills := m.proc.ExtractSkills(text, m.cfg.AllSkills())
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[strings.ToLower(s)] = struct{}{}
	}
	return set
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
