// Package fallback writes the reply used when nothing in the corpus answers a question.
package fallback

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"

	"gobi/internal/lexicon"
	"gobi/internal/textnorm"
)

// MaxKeywords bounds how many utterance keywords are echoed back.
const MaxKeywords = 3

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Generator picks an apology, echoes the topic and asks two clarifying questions.
type Generator struct {
	lexicon *lexicon.Lexicon
	mu      sync.Mutex
	rng     *rand.Rand
}

// New creates a generator. Pass a seeded rand for reproducible output.
func New(lx *lexicon.Lexicon, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Generator{lexicon: lx, rng: rng}
}

// Reply returns a non-empty fallback for the utterance.
func (g *Generator) Reply(utterance, emotion string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	templates := g.lexicon.Templates(emotion)
	parts := []string{templates[g.rng.Intn(len(templates))]}

	if kw := Keywords(utterance, g.lexicon, MaxKeywords); len(kw) > 0 && g.lexicon.TopicIntro != "" {
		parts = append(parts, fmt.Sprintf(g.lexicon.TopicIntro, strings.Join(kw, ", ")))
	}

	questions := g.lexicon.ClarifyingQuestions
	if n := len(questions); n >= 2 {
		perm := g.rng.Perm(n)
		parts = append(parts, questions[perm[0]], questions[perm[1]])
	}
	return strings.Join(parts, " ")
}

// Keywords returns up to max distinct normalized tokens longer than two
// characters that are not stop words, in order of appearance.
func Keywords(utterance string, lx *lexicon.Lexicon, max int) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, tok := range wordPattern.FindAllString(textnorm.Normalize(utterance), -1) {
		if len([]rune(tok)) <= 2 || lx.IsStopword(tok) {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
		if len(out) == max {
			break
		}
	}
	return out
}
