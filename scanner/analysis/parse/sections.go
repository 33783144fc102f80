package parse

import (
	"regexp"
	"strings"

	"github.com/lakshraina2/resume-scanner/scanner/analysis"
)

type sectionPattern struct {
	name string
	re   *regexp.Regexp
}

// sectionPatterns are tested in order against each line; the first
// matching header wins
var sectionPatterns = []sectionPattern{
	{analysis.SectionObjective, regexp.MustCompile(`(?i)(objective|career\s+objective|professional\s+objective)`)},
	{analysis.SectionSummary, regexp.MustCompile(`(?i)(summary|professional\s+summary|profile|about)`)},
	{analysis.SectionExperience, regexp.MustCompile(`(?i)(experience|work\s+experience|employment|professional\s+experience)`)},
	{analysis.SectionEducation, regexp.MustCompile(`(?i)(education|academic|qualification|academics)`)},
	{analysis.SectionSkills, regexp.MustCompile(`(?i)(skills|technical\s+skills|core\s+competencies|expertise)`)},
	{analysis.SectionProjects, regexp.MustCompile(`(?i)(projects|personal\s+projects|academic\s+projects)`)},
	{analysis.SectionCertifications, regexp.MustCompile(`(?i)(certifications?|certificates?|training)`)},
	{analysis.SectionAchievements, regexp.MustCompile(`(?i)(achievements?|accomplishments?|awards?|honors?)`)},
}

// SegmentSections splits resume text into named section bodies. A line
// matching a header pattern switches the current section and is not
// itself appended; lines before the first recognized header are
// discarded. Every section name is present in the result, empty when
// nothing accumulated.
func SegmentSections(text string) map[string]string {
	sections := make(map[string]string, len(analysis.SectionNames))
	for _, name := range analysis.SectionNames {
		sections[name] = ""
	}

	currentSection := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matched := false
		for _, sp := range sectionPatterns {
			if sp.re.MatchString(line) {
				currentSection = sp.name
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if currentSection != "" {
			sections[currentSection] += line + " "
		}
	}

	for name := range sections {
		sections[name] = strings.TrimSpace(sections[name])
	}
	return sections
}
