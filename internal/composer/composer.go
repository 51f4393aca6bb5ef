// Package composer turns retrieved text into a bounded, readable reply.
package composer

import (
	"fmt"
	"regexp"
	"strings"

	"gobi/internal/lexicon"
	"gobi/internal/summarizer"
	"gobi/internal/textnorm"
)

// Mode selects how raw text is rewritten.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeSteps Mode = "steps"
)

// ParseMode accepts "auto" and "steps"; the empty string means auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAuto, "":
		return ModeAuto, nil
	case ModeSteps:
		return ModeSteps, nil
	default:
		return "", fmt.Errorf("unknown composer mode %q", s)
	}
}

// Ellipsis marks a reply cut at the word budget.
const Ellipsis = "..."

var stepNumber = regexp.MustCompile(`(?i)^\s*(?:(?:paso|step)\s*\d+|\d+)\s*[.):\-]?\s*`)

// Composer applies the word budget, step rendering, rephrasing and empathy prefix.
type Composer struct {
	lexicon         *lexicon.Lexicon
	summarizer      *summarizer.TFIDFSummarizer
	targetSentences int
	maxItems        int
}

// New creates a composer. Non-positive targets fall back to 5 sentences and 6 items.
func New(lx *lexicon.Lexicon, targetSentences, maxItems int) *Composer {
	if targetSentences <= 0 {
		targetSentences = 5
	}
	if maxItems <= 0 {
		maxItems = 6
	}
	return &Composer{
		lexicon:         lx,
		summarizer:      summarizer.NewTFIDFSummarizer(lx.Stopwords),
		targetSentences: targetSentences,
		maxItems:        maxItems,
	}
}

// Compose rewrites raw according to mode, keeps at most maxWords words and
// prefixes the empathy phrase for emotion. Blank input is returned unchanged.
func (c *Composer) Compose(raw string, mode Mode, maxWords int, emotion string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	var body string
	if mode == ModeSteps {
		body = c.steps(raw, maxWords)
	} else {
		body = c.auto(raw, maxWords)
	}
	return c.lexicon.EmpathyPrefix(emotion) + body
}

func (c *Composer) auto(raw string, maxWords int) string {
	sentences := summarizer.SplitSentences(raw)
	text := strings.Join(c.summarizer.Select(sentences, c.targetSentences), " ")
	return Truncate(c.lexicon.Rephrase(text), maxWords)
}

func (c *Composer) steps(raw string, maxWords int) string {
	sentences := summarizer.SplitSentences(raw)
	var kept []string
	for _, s := range sentences {
		if c.lexicon.IsProcedural(s) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		kept = sentences
	}
	if len(kept) > c.maxItems {
		kept = kept[:c.maxItems]
	}
	var lines []string
	budget := maxWords
	for _, s := range kept {
		item := textnorm.Capitalize(strings.TrimSpace(stepNumber.ReplaceAllString(s, "")))
		if item == "" {
			continue
		}
		words := strings.Fields(item)
		if maxWords > 0 && len(words) > budget {
			if budget > 0 {
				lines = append(lines, "- "+strings.Join(words[:budget], " ")+Ellipsis)
			} else if len(lines) > 0 {
				lines[len(lines)-1] += Ellipsis
			}
			break
		}
		budget -= len(words)
		lines = append(lines, "- "+strings.Join(words, " "))
	}
	return strings.Join(lines, "\n")
}

// Truncate keeps the first maxWords words and appends Ellipsis when it cuts.
// A non-positive maxWords disables the budget.
func Truncate(text string, maxWords int) string {
	words := strings.Fields(text)
	if maxWords <= 0 || len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ") + Ellipsis
}
