package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshraina2/resume-scanner/scanner/analysis"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/textproc"
)

func newTestParser() *Parser {
	proc := textproc.NewProcessor(textproc.NewRegexRecognizer())
	return NewParser(proc, analysis.DefaultSkillConfig())
}

func TestSegmentSections(t *testing.T) {
	t.Run("round trip with two sections", func(t *testing.T) {
		text := "Education\nBS Computer Science\nState University 2019\nSkills\nPython and Go"
		sections := SegmentSections(text)

		assert.Equal(t, "BS Computer Science State University 2019", sections["education"])
		assert.Equal(t, "Python and Go", sections["skills"])
		for _, name := range []string{"objective", "summary", "experience", "projects", "certifications", "achievements"} {
			assert.Equal(t, "", sections[name], "section %s should be empty", name)
		}
	})

	t.Run("lines before the first header are discarded", func(t *testing.T) {
		text := "Jane Doe\njane@example.com\nSummary\nBuilds backend services"
		sections := SegmentSections(text)
		assert.Equal(t, "Builds backend services", sections["summary"])
		for name, body := range sections {
			if name != "summary" {
				assert.Equal(t, "", body)
			}
		}
	})

	t.Run("header line text is not appended", func(t *testing.T) {
		sections := SegmentSections("Work Experience\nBuilt APIs")
		assert.Equal(t, "Built APIs", sections["experience"])
	})

	t.Run("blank lines skipped", func(t *testing.T) {
		sections := SegmentSections("Skills\n\n\nGo\n\nRust")
		assert.Equal(t, "Go Rust", sections["skills"])
	})

	t.Run("all section keys always present", func(t *testing.T) {
		sections := SegmentSections("")
		require.Len(t, sections, len(analysis.SectionNames))
		for _, name := range analysis.SectionNames {
			assert.Contains(t, sections, name)
		}
	})
}

func TestParseManual(t *testing.T) {
	p := newTestParser()

	text := "John Smith\nContact: john@example.com, 555-123-4567\n" +
		"Summary\nBuilds python and aws systems.\n" +
		"Has 6 years of experience.\n" +
		"Education\nBachelor of Science from State University."

	resume := p.ParseManual(text)

	assert.Equal(t, "John Smith", resume.Name)
	assert.Equal(t, []string{"john@example.com"}, resume.Emails)
	assert.Equal(t, []string{"555-123-4567"}, resume.Phones)
	assert.ElementsMatch(t, []string{"python", "aws"}, resume.Skills)
	assert.Equal(t, 6, resume.ExperienceYears)
	assert.NotEmpty(t, resume.Education)
	assert.Equal(t, "Builds python and aws systems.", resume.Sections["summary"])
}

func TestParseManualNeverNil(t *testing.T) {
	p := newTestParser()
	resume := p.ParseManual("")

	assert.NotNil(t, resume.Emails)
	assert.NotNil(t, resume.Phones)
	assert.NotNil(t, resume.Skills)
	assert.NotNil(t, resume.Education)
	assert.NotNil(t, resume.Companies)
	assert.NotNil(t, resume.Designations)
	assert.NotNil(t, resume.Degree)
	assert.NotNil(t, resume.Entities)
	assert.NotNil(t, resume.Sections)
	assert.Equal(t, 1, resume.NoOfPages)
}

func TestParseMerge(t *testing.T) {
	p := newTestParser()
	text := "John Smith\njohn@example.com 555-123-4567\nSkills\npython, sql"

	t.Run("rich values win when present", func(t *testing.T) {
		rich := &analysis.RawRecord{
			Name:   "Johnathan Smith",
			Email:  analysis.Scalar("john.smith@corp.com"),
			Skills: analysis.Sequence("go", "kubernetes"),
		}
		resume := p.Parse(text, rich)

		assert.Equal(t, "Johnathan Smith", resume.Name)
		assert.Equal(t, []string{"john.smith@corp.com"}, resume.Emails)
		assert.Equal(t, []string{"go", "kubernetes"}, resume.Skills)
	})

	t.Run("manual values fill empty rich fields", func(t *testing.T) {
		rich := &analysis.RawRecord{Name: "  "}
		resume := p.Parse(text, rich)

		assert.Equal(t, "John Smith", resume.Name)
		assert.Equal(t, []string{"john@example.com"}, resume.Emails)
	})

	t.Run("mobile number merged into phones by string equality", func(t *testing.T) {
		rich := &analysis.RawRecord{MobileNumber: "999-888-7777"}
		resume := p.Parse(text, rich)
		assert.Contains(t, resume.Phones, "555-123-4567")
		assert.Contains(t, resume.Phones, "999-888-7777")

		dup := &analysis.RawRecord{MobileNumber: "555-123-4567"}
		resume = p.Parse(text, dup)
		count := 0
		for _, phone := range resume.Phones {
			if phone == "555-123-4567" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("experience derived from rich text when manual found none", func(t *testing.T) {
		rich := &analysis.RawRecord{Experience: analysis.Scalar("8 years at Initech")}
		resume := p.Parse("no stated experience", rich)
		assert.Equal(t, 8, resume.ExperienceYears)
	})

	t.Run("total experience used as last resort", func(t *testing.T) {
		rich := &analysis.RawRecord{TotalExperience: 4}
		resume := p.Parse("no stated experience", rich)
		assert.Equal(t, 4, resume.ExperienceYears)
	})

	t.Run("scalar fields coerced to sequences", func(t *testing.T) {
		rich := &analysis.RawRecord{
			Degree:       analysis.Scalar("BSc"),
			CompanyNames: analysis.Sequence("Acme", " ", "Initech"),
		}
		resume := p.Parse(text, rich)
		assert.Equal(t, []string{"BSc"}, resume.Degree)
		assert.Equal(t, []string{"Acme", "Initech"}, resume.Companies)
	})

	t.Run("nil rich record returns manual parse", func(t *testing.T) {
		resume := p.Parse(text, nil)
		assert.Equal(t, "John Smith", resume.Name)
		assert.Equal(t, []string{"john@example.com"}, resume.Emails)
	})
}
