package analysis

// SkillConfig is the immutable skill and category configuration loaded once
// at startup and shared read-only across requests
type SkillConfig struct {
	TechnicalSkills []string
	SoftSkills      []string
	JobCategories   []JobCategory
}

// JobCategory pairs a category name with the keywords that identify it.
// Categories are evaluated in slice order; the first match wins.
type JobCategory struct {
	Name     string
	Keywords []string
}

// AllSkills returns technical plus soft skills in configuration order
func (c SkillConfig) AllSkills() []string {
	all := make([]string, 0, len(c.TechnicalSkills)+len(c.SoftSkills))
	all = append(all, c.TechnicalSkills...)
	all = append(all, c.SoftSkills...)
	return all
}

// DefaultSkillConfig returns the compiled-in skill database, used when no
// configuration rows exist in storage
func DefaultSkillConfig() SkillConfig {
	return SkillConfig{
		TechnicalSkills: []string{
			"python", "java", "javascript", "c++", "sql", "html", "css", "react",
			"node.js", "django", "flask", "spring", "mongodb", "postgresql",
			"machine learning", "data science", "tensorflow", "pytorch", "scikit-learn",
			"pandas", "numpy", "matplotlib", "seaborn", "tableau", "power bi",
			"aws", "azure", "docker", "kubernetes", "git", "jenkins",
		},
		SoftSkills: []string{
			"leadership", "communication", "teamwork", "problem solving",
			"critical thinking", "time management", "adaptability", "creativity",
			"project management", "analytical thinking", "collaboration",
		},
		JobCategories: []JobCategory{
			{Name: "data_science", Keywords: []string{"data scientist", "machine learning engineer", "data analyst"}},
			{Name: "software_development", Keywords: []string{"software engineer", "developer", "programmer"}},
			{Name: "web_development", Keywords: []string{"web developer", "frontend developer", "backend developer"}},
			{Name: "product_management", Keywords: []string{"product manager", "product owner", "business analyst"}},
			{Name: "marketing", Keywords: []string{"marketing manager", "digital marketing", "content marketing"}},
		},
	}
}
