package textproc

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lakshraina2/resume-scanner/scanner/analysis"
)

// GetTextStatistics computes basic corpus measurements. UniqueWords
// counts case-folded alphabetic tokens only.
func (p *Processor) GetTextStatistics(text string) analysis.TextStatistics {
	if text == "" {
		return analysis.TextStatistics{}
	}

	words := p.TokenizeWords(text)
	sentences := p.TokenizeSentences(text)

	unique := map[string]struct{}{}
	for _, w := range words {
		if isAlpha(w) {
			unique[strings.ToLower(w)] = struct{}{}
		}
	}

	stats := analysis.TextStatistics{
		WordCount:      len(words),
		SentenceCount:  len(sentences),
		CharacterCount: len(text),
		UniqueWords:    len(unique),
	}
	if len(sentences) > 0 {
		stats.AvgWordsPerSentence = float64(len(words)) / float64(len(sentences))
	}
	return stats
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || (r > 'Z' && r < 'a') || r > 'z' {
			return false
		}
	}
	return true
}

// WordFrequencies returns the top maxWords cleaned, stopword-free token
// counts, ordered by count descending then first occurrence. Input for
// word cloud rendering downstream.
func (p *Processor) WordFrequencies(text string, maxWords int) []analysis.WordFrequency {
	cleaned := p.RemoveStopwords(p.Clean(text))
	if cleaned == "" {
		return []analysis.WordFrequency{}
	}

	counts := map[string]int{}
	order := map[string]int{}
	for i, w := range strings.Fields(cleaned) {
		if _, ok := counts[w]; !ok {
			order[w] = i
		}
		counts[w]++
	}

	freqs := make([]analysis.WordFrequency, 0, len(counts))
	for word, count := range counts {
		freqs = append(freqs, analysis.WordFrequency{Word: word, Count: count})
	}
	sort.SliceStable(freqs, func(i, j int) bool {
		if freqs[i].Count != freqs[j].Count {
			return freqs[i].Count > freqs[j].Count
		}
		return order[freqs[i].Word] < order[freqs[j].Word]
	})

	if maxWords > 0 && len(freqs) > maxWords {
		freqs = freqs[:maxWords]
	}
	return freqs
}

// maxYears collects every integer the patterns find in the text and
// returns the maximum, skipping malformed matches
func maxYears(textLower string, patterns []*regexp.Regexp) int {
	max := 0
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(textLower, -1) {
			if len(m) < 2 {
				continue
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n > max {
				max = n
			}
		}
	}
	return max
}
