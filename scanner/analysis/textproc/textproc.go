// Package textproc converts raw resume and job text into the linguistic
// features the matching and scoring pipeline consumes. Every extractor
// is best-effort: internal failures degrade to empty or zero results
// instead of propagating.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/lakshraina2/resume-scanner/pkg/logx"
	"github.com/lakshraina2/resume-scanner/scanner/analysis"
)

var (
	nonLetterRe  = regexp.MustCompile(`[^a-zA-Z\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Processor holds the read-only language resources shared across
// requests. Safe for concurrent use.
type Processor struct {
	stopwords  map[string]struct{}
	recognizer analysis.EntityRecognizer
}

// NewProcessor builds a Processor with the given entity recognizer.
// A nil recognizer is allowed; entity extraction then degrades to
// all-empty results.
func NewProcessor(recognizer analysis.EntityRecognizer) *Processor {
	if recognizer == nil {
		logx.Warn("textproc: no entity recognizer configured, entity extraction degraded")
	}
	return &Processor{
		stopwords:  stopwordSet(),
		recognizer: recognizer,
	}
}

// HasRecognizer reports whether entity extraction is fully available
func (p *Processor) HasRecognizer() bool {
	return p.recognizer != nil
}

// Clean lowercases, replaces everything except letters and whitespace
// with spaces, and collapses whitespace runs. Idempotent.
func (p *Processor) Clean(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = nonLetterRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// TokenizeWords splits text into word and punctuation tokens. Runs of
// letters and digits (with internal apostrophes) form one token; every
// other non-space character is its own token.
func (p *Processor) TokenizeWords(text string) []string {
	tokens := []string{}
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(text)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(r)
		case r == '\'' && current.Len() > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]):
			current.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()
	return tokens
}

// TokenizeSentences splits text on sentence-ending punctuation.
// Deterministic and locale-independent for Latin resume text.
func (p *Processor) TokenizeSentences(text string) []string {
	sentences := []string{}
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// RemoveStopwords drops tokens present in the English stopword set
func (p *Processor) RemoveStopwords(text string) string {
	words := p.TokenizeWords(text)
	filtered := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := p.stopwords[strings.ToLower(w)]; !ok {
			filtered = append(filtered, w)
		}
	}
	return strings.Join(filtered, " ")
}

// Lemmatize reduces each token to its base form
func (p *Processor) Lemmatize(text string) string {
	words := p.TokenizeWords(text)
	lemmas := make([]string, 0, len(words))
	for _, w := range words {
		lemmas = append(lemmas, lemmatizeWord(w))
	}
	return strings.Join(lemmas, " ")
}

// PreprocessForSimilarity runs clean, stopword removal, and
// lemmatization in that order. The order is load-bearing: stopwords are
// matched post-lowercasing and lemmatization runs last.
func (p *Processor) PreprocessForSimilarity(text string) string {
	return p.Lemmatize(p.RemoveStopwords(p.Clean(text)))
}

// ExtractEntities runs the configured recognizer. Without one it
// returns an EntityMap with all kinds empty.
func (p *Processor) ExtractEntities(text string) analysis.EntityMap {
	if p.recognizer == nil {
		return analysis.NewEntityMap()
	}
	return p.recognizer.Recognize(text)
}

// ExtractSkills finds every candidate skill appearing as a whole word
// or phrase in the text. Returned strings are the canonical forms from
// the candidate list, deduplicated, in list order.
func (p *Processor) ExtractSkills(text string, skillList []string) []string {
	textLower := strings.ToLower(text)
	found := []string{}
	seen := make(map[string]struct{}, len(skillList))

	for _, skill := range skillList {
		skillLower := strings.ToLower(skill)
		if _, ok := seen[skillLower]; ok {
			continue
		}
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(skillLower) + `\b`)
		if err != nil {
			logx.Warnf("textproc: skipping unmatchable skill pattern %q: %v", skill, err)
			continue
		}
		if re.MatchString(textLower) {
			found = append(found, skill)
			seen[skillLower] = struct{}{}
		}
	}
	return found
}

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

// ExtractEmail returns every email-shaped match in document order.
// Matches are not deduplicated.
func (p *Processor) ExtractEmail(text string) []string {
	matches := emailRe.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`),
	regexp.MustCompile(`\(\d{3}\)\s*\d{3}-\d{4}`),
	regexp.MustCompile(`\b\d{10}\b`),
	regexp.MustCompile(`\b\d{3}\.\d{3}\.\d{4}\b`),
}

// ExtractPhone returns phone-shaped matches for each supported pattern,
// in pattern priority order. A number appearing in multiple forms
// produces multiple entries.
func (p *Processor) ExtractPhone(text string) []string {
	phones := []string{}
	for _, re := range phonePatterns {
		phones = append(phones, re.FindAllString(text, -1)...)
	}
	return phones
}

var educationKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "degree", "university",
	"college", "institute", "school", "bsc", "msc", "ba", "ma",
	"btech", "mtech", "mba", "graduation", "undergraduate", "postgraduate",
}

// ExtractEducation collects every sentence containing an education
// keyword, deduplicated, in first-occurrence order
func (p *Processor) ExtractEducation(text string) []string {
	textLower := strings.ToLower(text)
	info := []string{}
	seen := map[string]struct{}{}

	for _, keyword := range educationKeywords {
		if !strings.Contains(textLower, keyword) {
			continue
		}
		for _, sentence := range p.TokenizeSentences(text) {
			if !strings.Contains(strings.ToLower(sentence), keyword) {
				continue
			}
			trimmed := strings.TrimSpace(sentence)
			if _, ok := seen[trimmed]; ok {
				continue
			}
			seen[trimmed] = struct{}{}
			info = append(info, trimmed)
		}
	}
	return info
}

// ExtractExperienceYears returns the largest experience figure stated
// anywhere in the text, or 0 when none is found. Resumes often restate
// total experience several ways; the maximum is the most defensible
// single figure.
func (p *Processor) ExtractExperienceYears(text string) int {
	return maxYears(strings.ToLower(text), experiencePatterns)
}

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)`),
	regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)`),
	regexp.MustCompile(`experience\s*(?:of\s*)?(\d+)\s*(?:years?|yrs?)`),
}
