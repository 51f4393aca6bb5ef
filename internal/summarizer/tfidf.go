package summarizer

import (
	"sort"
	"strings"
	"unicode"

	"gobi/internal/embedding/tfidf"
)

// TFIDFSummarizer keeps the sentences with the highest squared TF-IDF mass,
// computed over the sentences of the text being summarized.
type TFIDFSummarizer struct {
	stopwords []string
}

// NewTFIDFSummarizer creates an extractive summarizer ignoring the given stop words.
func NewTFIDFSummarizer(stopwords []string) *TFIDFSummarizer {
	return &TFIDFSummarizer{stopwords: stopwords}
}

// Summarize returns at most maxSentences sentences of text in their original order.
func (s *TFIDFSummarizer) Summarize(text string, maxSentences int) (string, error) {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return strings.TrimSpace(text), nil
	}
	return strings.Join(s.Select(sentences, maxSentences), " "), nil
}

// Select picks the top target sentences by score and restores their order.
// Equal scores favor the earlier sentence.
func (s *TFIDFSummarizer) Select(sentences []string, target int) []string {
	if target <= 0 {
		target = 5
	}
	if len(sentences) <= target {
		return sentences
	}
	emb := tfidf.NewEmbedder(
		tfidf.WithNgramRange(1, 1),
		tfidf.WithL2Norm(false),
		tfidf.WithStopwords(s.stopwords),
	)
	if err := emb.Prepare(sentences); err != nil {
		return sentences[:target]
	}
	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i, sent := range sentences {
		score := 0.0
		if vec, err := emb.Embed(sent); err == nil {
			for _, w := range vec.Values {
				score += w * w
			}
		}
		scores[i] = pair{i, score}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	// Keep original order among selected
	selected := make([]int, target)
	for i := 0; i < target; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	out := make([]string, 0, target)
	for _, idx := range selected {
		out = append(out, sentences[idx])
	}
	return out
}

// SplitSentences splits after '.', '!' or '?' when followed by whitespace.
// Sentences are trimmed and empty ones dropped. A bare list number such as
// "1." stays attached to the sentence it introduces.
func SplitSentences(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				s := strings.TrimSpace(string(runes[start : i+1]))
				if isListMarker(s) {
					continue
				}
				if s != "" {
					out = append(out, s)
				}
				start = i + 1
			}
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

func isListMarker(s string) bool {
	digits := strings.TrimSuffix(s, ".")
	if digits == s || digits == "" {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
