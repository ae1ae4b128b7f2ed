package services

import (
	"regexp"
	"strings"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	nonLetters    = regexp.MustCompile(`[^a-z]`)
	vowelGroups   = regexp.MustCompile(`[aeiouy]+`)
)

// ReadabilityScore approximates Flesch reading ease on a 0-100 scale.
// Higher is easier to read.
func ReadabilityScore(text string) int {
	words := strings.Fields(text)
	sentences := 0
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if len(words) == 0 || sentences == 0 {
		return 0
	}

	syllables := 0
	for _, w := range words {
		w = nonLetters.ReplaceAllString(strings.ToLower(w), "")
		if len(w) <= 3 {
			syllables++
			continue
		}
		if groups := len(vowelGroups.FindAllString(w, -1)); groups > 0 {
			syllables += groups
		} else {
			syllables++
		}
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))
	score := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord

	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return int(score + 0.5)
}
