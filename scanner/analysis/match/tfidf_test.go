package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshraina2/resume-scanner/scanner/analysis/textproc"
)

func TestVectorizer(t *testing.T) {
	v := NewVectorizer(5000, textproc.StopwordSet())

	t.Run("identical documents are fully similar", func(t *testing.T) {
		_, matrix := v.FitTransform([]string{"python developer", "python developer"})
		assert.InDelta(t, 1.0, CosineSimilarity(matrix[0], matrix[1]), 1e-9)
	})

	t.Run("disjoint documents are orthogonal", func(t *testing.T) {
		_, matrix := v.FitTransform([]string{"python developer", "pastry chef"})
		assert.InDelta(t, 0.0, CosineSimilarity(matrix[0], matrix[1]), 1e-9)
	})

	t.Run("vocabulary holds unigrams and bigrams sorted", func(t *testing.T) {
		vocab, _ := v.FitTransform([]string{"python developer tools"})
		assert.Contains(t, vocab, "python")
		assert.Contains(t, vocab, "python developer")
		assert.Contains(t, vocab, "developer tools")
		assert.IsIncreasing(t, vocab)
	})

	t.Run("stopwords and short tokens excluded", func(t *testing.T) {
		vocab, _ := v.FitTransform([]string{"the python of a go developer"})
		assert.NotContains(t, vocab, "the")
		assert.NotContains(t, vocab, "of")
		// single and two-letter split: token pattern requires length >= 2
		assert.NotContains(t, vocab, "a")
	})

	t.Run("max features caps the vocabulary by frequency", func(t *testing.T) {
		small := NewVectorizer(2, textproc.StopwordSet())
		vocab, _ := small.FitTransform([]string{"alpha alpha alpha beta beta gamma"})
		require.Len(t, vocab, 2)
		assert.Contains(t, vocab, "alpha")
	})

	t.Run("empty documents yield zero vectors", func(t *testing.T) {
		_, matrix := v.FitTransform([]string{"", "python"})
		assert.InDelta(t, 0.0, CosineSimilarity(matrix[0], matrix[1]), 1e-9)
	})
}
