// Package parse assembles a structured resume record from raw text,
// optionally merged with a richer external parse result.
package parse

import (
	"strings"

	"github.com/lakshraina2/resume-scanner/scanner/analysis"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/textproc"
)

// Parser builds ParsedResume records. Construct once and share; all
// state is read-only.
type Parser struct {
	proc   *textproc.Processor
	skills []string
}

func NewParser(proc *textproc.Processor, cfg analysis.SkillConfig) *Parser {
	return &Parser{
		proc:   proc,
		skills: cfg.AllSkills(),
	}
}

// ParseManual extracts everything derivable from the text alone
func (p *Parser) ParseManual(text string) *analysis.ParsedResume {
	resume := analysis.NewParsedResume()

	resume.Emails = p.proc.ExtractEmail(text)
	resume.Phones = p.proc.ExtractPhone(text)
	resume.Skills = p.proc.ExtractSkills(text, p.skills)
	resume.Education = p.proc.ExtractEducation(text)
	resume.ExperienceYears = p.proc.ExtractExperienceYears(text)
	resume.Entities = p.proc.ExtractEntities(text)
	resume.Sections = SegmentSections(text)

	if persons := resume.Entities[analysis.EntityPerson]; len(persons) > 0 {
		resume.Name = persons[0]
	}
	return resume
}

// Parse runs the manual extraction and, when a rich external record is
// supplied, merges it in with the external values taking priority.
// The result is always fully normalized.
func (p *Parser) Parse(text string, rich *analysis.RawRecord) *analysis.ParsedResume {
	manual := p.ParseManual(text)
	if rich == nil {
		return manual
	}
	return p.merge(rich, manual)
}

// merge prefers rich values field-wise when present and non-empty,
// then applies the normalization coercions
func (p *Parser) merge(rich *analysis.RawRecord, manual *analysis.ParsedResume) *analysis.ParsedResume {
	merged := analysis.NewParsedResume()

	merged.Name = strings.TrimSpace(rich.Name)
	if merged.Name == "" {
		merged.Name = manual.Name
	}

	merged.Emails = preferSequence(rich.Email, manual.Emails)
	merged.Phones = preferSequence(rich.Phone, manual.Phones)
	merged.Skills = preferSequence(rich.Skills, manual.Skills)
	merged.Education = preferSequence(rich.CollegeName, manual.Education)
	merged.Companies = rich.CompanyNames.Values()
	merged.Designations = rich.Designation.Values()
	merged.Degree = rich.Degree.Values()

	// a separately supplied mobile number joins phones unless already
	// present by string equality
	if mobile := strings.TrimSpace(rich.MobileNumber); mobile != "" && !contains(merged.Phones, mobile) {
		merged.Phones = append(merged.Phones, mobile)
	}

	merged.ExperienceYears = manual.ExperienceYears
	if merged.ExperienceYears == 0 && !rich.Experience.IsEmpty() {
		merged.ExperienceYears = p.proc.ExtractExperienceYears(strings.Join(rich.Experience.Values(), " "))
	}
	if merged.ExperienceYears == 0 && rich.TotalExperience > 0 {
		merged.ExperienceYears = rich.TotalExperience
	}

	merged.Sections = manual.Sections
	merged.Entities = manual.Entities

	if rich.NoOfPages > 0 {
		merged.NoOfPages = rich.NoOfPages
	}
	return merged
}

func preferSequence(primary analysis.FieldValue, fallback []string) []string {
	if values := primary.Values(); len(values) > 0 {
		return values
	}
	if fallback == nil {
		return []string{}
	}
	return fallback
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
