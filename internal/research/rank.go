package research

import (
	"regexp"
	"sort"
	"strings"
)

// generalKeywords are role/domain words that keep a sentence relevant even
// when it does not mention the exact job title.
var generalKeywords = []string{
	"product",
	"engineering",
	"engineer",
	"frontend",
	"backend",
	"platform",
	"ai",
	"cloud",
	"developer",
	"team",
	"careers",
	"mission",
}

var (
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]?`)
	tokenPattern    = regexp.MustCompile(`[^a-z0-9]+`)
)

// maxRankedSentences bounds how many sentences make it into the digest.
const maxRankedSentences = 8

// Rank filters raw research text down to the sentences most relevant to the
// job role and returns a digest capped at maxChars. Returns "" when no
// sentence matches any keyword; unrelated research is not an error.
func Rank(raw, jobRole string, maxChars int) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	keywords := keywordSet(jobRole)

	type scored struct {
		score    int
		sentence string
	}

	var ranked []scored
	for _, sentence := range sentencePattern.FindAllString(raw, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		lower := strings.ToLower(sentence)
		score := 0
		for keyword := range keywords {
			if strings.Contains(lower, keyword) {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{score: score, sentence: sentence})
		}
	}

	// Stable sort keeps original document order among equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > maxRankedSentences {
		ranked = ranked[:maxRankedSentences]
	}

	seen := make(map[string]bool)
	var selected []string
	for _, entry := range ranked {
		if seen[entry.sentence] {
			continue
		}
		seen[entry.sentence] = true
		selected = append(selected, entry.sentence)
	}

	digest := strings.TrimSpace(strings.Join(selected, " "))
	if digest == "" {
		return ""
	}
	return Truncate(digest, maxChars)
}

// keywordSet unions job-role tokens longer than two characters with the
// fixed general relevance terms.
func keywordSet(jobRole string) map[string]bool {
	keywords := make(map[string]bool, len(generalKeywords))
	for _, token := range tokenPattern.Split(strings.ToLower(jobRole), -1) {
		if len(token) > 2 {
			keywords[token] = true
		}
	}
	for _, keyword := range generalKeywords {
		keywords[keyword] = true
	}
	return keywords
}
