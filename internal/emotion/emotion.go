// Package emotion detects the emotional tone of an utterance.
package emotion

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"gobi/internal/domain"
	"gobi/internal/textnorm"
)

// FallbackModel names the state substituted when classification fails.
const FallbackModel = "fallback"

// LexiconClassifier scores labels by counting cue phrases in the utterance.
type LexiconClassifier struct {
	cues   map[string][]string
	labels []string
}

// NewLexiconClassifier builds a classifier from label -> cue phrases.
func NewLexiconClassifier(cues map[string][]string) *LexiconClassifier {
	c := &LexiconClassifier{cues: make(map[string][]string, len(cues))}
	for label, phrases := range cues {
		for _, p := range phrases {
			c.cues[label] = append(c.cues[label], textnorm.Normalize(p))
		}
		c.labels = append(c.labels, label)
	}
	sort.Strings(c.labels)
	return c
}

// Classify returns the label with the most cue hits. Confidence is the label's
// share of all hits scaled by how many cues it matched; one hit gives 0.7.
func (c *LexiconClassifier) Classify(_ context.Context, text string) (domain.EmotionState, error) {
	t := textnorm.Normalize(text)
	if t == "" {
		return domain.Neutral("none"), nil
	}
	padded := " " + strings.Join(strings.FieldsFunc(t, isSeparator), " ") + " "
	best, bestHits, total := "", 0, 0
	for _, label := range c.labels {
		hits := 0
		for _, cue := range c.cues[label] {
			if cue != "" && strings.Contains(padded, " "+cue+" ") {
				hits++
			}
		}
		total += hits
		if hits > bestHits {
			best, bestHits = label, hits
		}
	}
	if bestHits == 0 {
		return domain.Neutral("lexicon"), nil
	}
	share := float64(bestHits) / float64(total)
	strength := 1.0
	for i := 0; i < bestHits; i++ {
		strength *= 0.3
	}
	return domain.EmotionState{Label: best, Confidence: share * (1 - strength), Model: "lexicon"}, nil
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// SafeClassifier never fails: errors and panics from the wrapped classifier
// become the neutral zero-confidence state.
type SafeClassifier struct {
	inner  domain.Classifier
	logger *slog.Logger
}

// Safe wraps c. A nil classifier always yields the fallback state.
func Safe(c domain.Classifier, logger *slog.Logger) *SafeClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SafeClassifier{inner: c, logger: logger}
}

// Classify always returns a nil error.
func (s *SafeClassifier) Classify(ctx context.Context, text string) (state domain.EmotionState, err error) {
	if s.inner == nil {
		return domain.Neutral(FallbackModel), nil
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("emotion classifier panicked", "panic", fmt.Sprint(r))
			state, err = domain.Neutral(FallbackModel), nil
		}
	}()
	state, err = s.inner.Classify(ctx, text)
	if err != nil {
		s.logger.Warn("emotion classifier failed", "err", err)
		return domain.Neutral(FallbackModel), nil
	}
	if state.Label == "" {
		state.Label = "neutral"
	}
	if state.Confidence < 0 {
		state.Confidence = 0
	}
	if state.Confidence > 1 {
		state.Confidence = 1
	}
	return state, nil
}
