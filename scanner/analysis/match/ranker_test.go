package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshraina2/resume-scanner/scanner/analysis"
	"github.com/lakshraina2/resume-scanner/scanner/analysis/textproc"
)

func newTestRanker() *Ranker {
	proc := textproc.NewProcessor(textproc.NewRegexRecognizer())
	return NewRanker(NewMatcher(proc, analysis.DefaultSkillConfig()))
}

func TestRank(t *testing.T) {
	r := newTestRanker()
	job := "python developer with sql and aws, 3 years of experience required"

	t.Run("orders by score descending with dense ranks", func(t *testing.T) {
		docs := []Document{
			{Name: "weak", Text: "pastry chef baking bread"},
			{Name: "strong", Text: "python sql aws engineer with 5 years of experience"},
			{Name: "middle", Text: "python beginner with 1 year of experience"},
		}
		rankings := r.Rank(docs, job)

		require.Len(t, rankings, 3)
		assert.Equal(t, "strong", rankings[0].Name)
		assert.Equal(t, 1, rankings[0].Rank)
		assert.Equal(t, 2, rankings[1].Rank)
		assert.Equal(t, 3, rankings[2].Rank)
		assert.GreaterOrEqual(t, rankings[0].OverallScore, rankings[1].OverallScore)
		assert.GreaterOrEqual(t, rankings[1].OverallScore, rankings[2].OverallScore)
	})

	t.Run("ties keep input order and get consecutive ranks", func(t *testing.T) {
		same := "python sql aws engineer with 5 years of experience"
		docs := []Document{
			{Name: "alpha", Text: same},
			{Name: "beta", Text: same},
			{Name: "gamma", Text: "unrelated text about gardening"},
		}
		rankings := r.Rank(docs, job)

		require.Len(t, rankings, 3)
		assert.Equal(t, rankings[0].OverallScore, rankings[1].OverallScore)
		assert.Equal(t, "alpha", rankings[0].Name)
		assert.Equal(t, 1, rankings[0].Rank)
		assert.Equal(t, "beta", rankings[1].Name)
		assert.Equal(t, 2, rankings[1].Rank)
		assert.Equal(t, "gamma", rankings[2].Name)
		assert.Equal(t, 3, rankings[2].Rank)
	})

	t.Run("empty batch returns empty sequence", func(t *testing.T) {
		rankings := r.Rank(nil, job)
		assert.NotNil(t, rankings)
		assert.Empty(t, rankings)
	})

	t.Run("single document gets rank one", func(t *testing.T) {
		rankings := r.Rank([]Document{{Name: "only", Text: "python work"}}, job)
		require.Len(t, rankings, 1)
		assert.Equal(t, 1, rankings[0].Rank)
	})
}
