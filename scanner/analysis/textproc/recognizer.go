package textproc

import (
	"regexp"
	"strings"

	"github.com/lakshraina2/resume-scanner/scanner/analysis"
)

// RegexRecognizer is a pattern-based entity recognizer for resume text.
// It trades recall for determinism: no model download, no external
// process, stable output for the same input.
type RegexRecognizer struct{}

var _ analysis.EntityRecognizer = (*RegexRecognizer)(nil)

func NewRegexRecognizer() *RegexRecognizer {
	return &RegexRecognizer{}
}

var (
	personLineRe = regexp.MustCompile(`^[A-Z][a-z]+(?: [A-Z][a-z]+){1,2}$`)
	orgRe        = regexp.MustCompile(`[A-Z][A-Za-z&.]*(?: [A-Z][A-Za-z&.]*)* (?:Inc|LLC|Ltd|Corp|Corporation|Company|Technologies|Solutions|Systems|Labs|Group)\b\.?`)
	dateRe       = regexp.MustCompile(`(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\.? \d{4}|\b(?:19|20)\d{2}\s*[-–]\s*(?:(?:19|20)\d{2}|[Pp]resent)|\b(?:19|20)\d{2}\b`)
	gpeRe        = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)?, [A-Z]{2}\b`)
	moneyRe      = regexp.MustCompile(`\$\d[\d,]*(?:\.\d+)?[kKmMbB]?`)
	percentRe    = regexp.MustCompile(`\d+(?:\.\d+)?%`)
)

// Recognize scans the text and fills each entity kind in document
// order. Kinds with no match stay present as empty slices.
func (r *RegexRecognizer) Recognize(text string) analysis.EntityMap {
	entities := analysis.NewEntityMap()

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if personLineRe.MatchString(trimmed) {
			entities[analysis.EntityPerson] = append(entities[analysis.EntityPerson], trimmed)
		}
	}

	entities[analysis.EntityOrg] = append(entities[analysis.EntityOrg], orgRe.FindAllString(text, -1)...)
	entities[analysis.EntityDate] = append(entities[analysis.EntityDate], dateRe.FindAllString(text, -1)...)
	entities[analysis.EntityGPE] = append(entities[analysis.EntityGPE], gpeRe.FindAllString(text, -1)...)
	entities[analysis.EntityMoney] = append(entities[analysis.EntityMoney], moneyRe.FindAllString(text, -1)...)
	entities[analysis.EntityPercent] = append(entities[analysis.EntityPercent], percentRe.FindAllString(text, -1)...)

	return entities
}
