package match

import (
	"sort"

	"github.com/lakshraina2/resume-scanner/scanner/analysis"
)

// Document is one named resume text in a batch
type Document struct {
	Name string
	Text string
}

// Ranker orders resume batches against a single job description
type Ranker struct {
	matcher *Matcher
}

func NewRanker(matcher *Matcher) *Ranker {
	return &Ranker{matcher: matcher}
}

// Rank scores every document independently, sorts descending by
// overall score with a stable sort so ties keep input order, and
// assigns dense 1..N ranks. Works for any N including zero.
func (r *Ranker) Rank(documents []Document, jobDescription string) []analysis.RankingEntry {
	rankings := make([]analysis.RankingEntry, 0, len(documents))

	for _, doc := range documents {
		result := r.matcher.CalculateSimilarity(doc.Text, jobDescription)
		rankings = append(rankings, analysis.RankingEntry{
			Name:         doc.Name,
			OverallScore: result.OverallScore,
			MethodScores: result.MethodScores,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].OverallScore > rankings[j].OverallScore
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}
