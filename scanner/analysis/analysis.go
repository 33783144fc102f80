package analysis

// TextStatistics holds basic corpus measurements for one document
type TextStatistics struct {
	WordCount           int     `json:"word_count"`
	SentenceCount       int     `json:"sentence_count"`
	CharacterCount      int     `json:"character_count"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
	UniqueWords         int     `json:"unique_words"`
}

// Entity kinds recognized by the entity extractor
const (
	EntityPerson  = "PERSON"
	EntityOrg     = "ORG"
	EntityDate    = "DATE"
	EntityGPE     = "GPE"
	EntityMoney   = "MONEY"
	EntityPercent = "PERCENT"
)

// EntityKinds is the fixed set of entity kinds, in canonical order
var EntityKinds = []string{EntityPerson, EntityOrg, EntityDate, EntityGPE, EntityMoney, EntityPercent}

// EntityMap maps an entity kind to the matched text spans in document order.
// Every kind in EntityKinds is always present, possibly with an empty slice.
type EntityMap map[string][]string

// NewEntityMap returns an EntityMap with all kinds present and empty
func NewEntityMap() EntityMap {
	m := make(EntityMap, len(EntityKinds))
	for _, kind := range EntityKinds {
		m[kind] = []string{}
	}
	return m
}

// Section names produced by the structural parser
const (
	SectionObjective      = "objective"
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
	SectionAchievements   = "achievements"
)

// SectionNames is the fixed key set of ParsedResume.Sections
var SectionNames = []string{
	SectionObjective,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
	SectionAchievements,
}

// ParsedResume is the structured record assembled from one resume document.
// All slice fields are non-nil; Sections always carries the full key set.
type ParsedResume struct {
	Name            string            `json:"name"`
	Emails          []string          `json:"emails"`
	Phones          []string          `json:"phones"`
	Skills          []string          `json:"skills"`
	Education       []string          `json:"education"`
	ExperienceYears int               `json:"experience_years"`
	Companies       []string          `json:"companies"`
	Designations    []string          `json:"designations"`
	Degree          []string          `json:"degree"`
	Sections        map[string]string `json:"sections"`
	Entities        EntityMap         `json:"entities"`
	NoOfPages       int               `json:"no_of_pages"`
}

// NewParsedResume returns a ParsedResume with every collection initialized
func NewParsedResume() *ParsedResume {
	sections := make(map[string]string, len(SectionNames))
	for _, name := range SectionNames {
		sections[name] = ""
	}
	return &ParsedResume{
		Emails:       []string{},
		Phones:       []string{},
		Skills:       []string{},
		Education:    []string{},
		Companies:    []string{},
		Designations: []string{},
		Degree:       []string{},
		Sections:     sections,
		Entities:     NewEntityMap(),
		NoOfPages:    1,
	}
}

// HasContactInfo reports whether the resume carries an email or a phone
func (r *ParsedResume) HasContactInfo() bool {
	return len(r.Emails) > 0 || len(r.Phones) > 0
}

// HasSection reports whether a section accumulated any text
func (r *ParsedResume) HasSection(name string) bool {
	return r.Sections[name] != ""
}

// Summary condenses the parsed record for API responses
func (r *ParsedResume) Summary() ResumeSummary {
	sectionsFound := []string{}
	for _, name := range SectionNames {
		if r.HasSection(name) {
			sectionsFound = append(sectionsFound, name)
		}
	}
	return ResumeSummary{
		Name:                r.Name,
		ContactInfoComplete: r.Name != "" && len(r.Emails) > 0,
		SkillsCount:         len(r.Skills),
		EducationCount:      len(r.Education),
		ExperienceYears:     r.ExperienceYears,
		CompaniesCount:      len(r.Companies),
		HasPhone:            len(r.Phones) > 0,
		SectionsFound:       sectionsFound,
	}
}

// ResumeSummary is the compact view of a parsed resume
type ResumeSummary struct {
	Name                string   `json:"name"`
	ContactInfoComplete bool     `json:"contact_info_complete"`
	SkillsCount         int      `json:"skills_count"`
	EducationCount      int      `json:"education_count"`
	ExperienceYears     int      `json:"experience_years"`
	CompaniesCount      int      `json:"companies_count"`
	HasPhone            bool     `json:"has_phone"`
	SectionsFound       []string `json:"sections_found"`
}

// Similarity method names
const (
	MethodTfidfCosine     = "tfidf_cosine"
	MethodKeywordMatch    = "keyword_match"
	MethodSkillsMatch     = "skills_match"
	MethodExperienceMatch = "experience_match"
)

// SimilarityResult is the multi-method match score for one resume/job pair
type SimilarityResult struct {
	OverallScore float64            `json:"overall_score"`
	MethodScores map[string]float64 `json:"method_scores"`
}

// SkillGapResult is the set algebra between resume and job skills
type SkillGapResult struct {
	MatchingSkills       []string `json:"matching_skills"`
	MissingSkills        []string `json:"missing_skills"`
	AdditionalSkills     []string `json:"additional_skills"`
	SkillMatchPercentage float64  `json:"skill_match_percentage"`
}

// Score category names
const (
	CategoryCompleteness    = "completeness"
	CategoryContentQuality  = "content_quality"
	CategorySkillsRelevance = "skills_relevance"
	CategoryExperience      = "experience"
	CategoryJobMatch        = "job_match"
)

// ScoreResult is the weighted resume quality score with feedback
type ScoreResult struct {
	OverallScore   float64            `json:"overall_score"`
	CategoryScores map[string]float64 `json:"category_scores"`
	Grade          string             `json:"grade"`
	Feedback       []string           `json:"feedback"`
}

// RankingEntry is one ranked document in a batch result
type RankingEntry struct {
	Rank         int                `json:"rank"`
	Name         string             `json:"name"`
	OverallScore float64            `json:"overall_score"`
	MethodScores map[string]float64 `json:"method_scores"`
}

// WordFrequency is one cleaned token with its occurrence count,
// input for word cloud rendering downstream
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}
