package analysisinfra

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/lakshraina2/resume-scanner/pkg/logx"
	"github.com/lakshraina2/resume-scanner/scanner/analysis"
)

// PostgresSkillConfigRepository loads the skill database from Postgres.
// When no rows exist it falls back to the compiled-in defaults so a
// fresh deployment works without seeding.
type PostgresSkillConfigRepository struct {
	db *sqlx.DB
}

func NewPostgresSkillConfigRepository(db *sqlx.DB) analysis.SkillConfigRepository {
	return &PostgresSkillConfigRepository{db: db}
}

type dbSkill struct {
	Kind string `db:"kind"`
	Name string `db:"name"`
}

type dbCategoryKeyword struct {
	Category string `db:"category"`
	Keyword  string `db:"keyword"`
}

// Load reads the skill configuration. Skills and keywords keep their
// stored position order because category evaluation is order sensitive.
func (r *PostgresSkillConfigRepository) Load(ctx context.Context) (analysis.SkillConfig, error) {
	var skills []dbSkill
	err := r.db.SelectContext(ctx, &skills,
		`SELECT kind, name FROM skill_entries ORDER BY position ASC`)
	if err != nil {
		return analysis.SkillConfig{}, analysis.ErrRegistry.
			NewWithCause(analysis.CodeConfigLoadFailed, err).
			WithDetail("table", "skill_entries")
	}

	if len(skills) == 0 {
		logx.Info("No skill configuration in database, using built-in defaults")
		return analysis.DefaultSkillConfig(), nil
	}

	cfg := analysis.SkillConfig{}
	for _, skill := range skills {
		switch skill.Kind {
		case "technical":
			cfg.TechnicalSkills = append(cfg.TechnicalSkills, skill.Name)
		case "soft":
			cfg.SoftSkills = append(cfg.SoftSkills, skill.Name)
		default:
			logx.Warnf("Unknown skill kind %q for %q, skipping", skill.Kind, skill.Name)
		}
	}

	var keywords []dbCategoryKeyword
	err = r.db.SelectContext(ctx, &keywords,
		`SELECT category, keyword FROM job_category_keywords ORDER BY position ASC`)
	if err != nil {
		return analysis.SkillConfig{}, analysis.ErrRegistry.
			NewWithCause(analysis.CodeConfigLoadFailed, err).
			WithDetail("table", "job_category_keywords")
	}

	index := make(map[string]int)
	for _, kw := range keywords {
		i, ok := index[kw.Category]
		if !ok {
			i = len(cfg.JobCategories)
			index[kw.Category] = i
			cfg.JobCategories = append(cfg.JobCategories, analysis.JobCategory{Name: kw.Category})
		}
		cfg.JobCategories[i].Keywords = append(cfg.JobCategories[i].Keywords, kw.Keyword)
	}

	logx.Infof("Loaded skill configuration: %d technical, %d soft, %d categories",
		len(cfg.TechnicalSkills), len(cfg.SoftSkills), len(cfg.JobCategories))
	return cfg, nil
}
