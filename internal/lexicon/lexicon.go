// Package lexicon holds the locale-specific word lists, patterns and reply
// templates used by the router, composer, fallback generator and emotion
// classifier. The built-in data is Spanish; a YAML file can replace any field.
//
// Patterns and word lists are matched against normalized text (lower case,
// no diacritics), so they must be written without accents.
package lexicon

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"gobi/internal/textnorm"
)

// SmallTalkRule pairs an anchored pattern with its canned reply.
type SmallTalkRule struct {
	Pattern string `yaml:"pattern"`
	Reply   string `yaml:"reply"`
}

// Rephrasing replaces a formal connective with a plainer one.
type Rephrasing struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Lexicon is the full set of locale data.
type Lexicon struct {
	SmallTalk         []SmallTalkRule `yaml:"small_talk"`
	SmallTalkMaxWords int             `yaml:"small_talk_max_words"`
	DomainHints       []string        `yaml:"domain_hints"`

	NegativeLabels    []string `yaml:"negative_labels"`
	NegativeThreshold float64  `yaml:"negative_threshold"`
	PositiveLabels    []string `yaml:"positive_labels"`
	PositiveThreshold float64  `yaml:"positive_threshold"`

	Confirmation      string `yaml:"confirmation"`
	ConfirmationReply string `yaml:"confirmation_reply"`

	ProceduralKeywords []string     `yaml:"procedural_keywords"`
	StepCues           []string     `yaml:"step_cues"`
	Rephrasings        []Rephrasing `yaml:"rephrasings"`
	Stopwords          []string     `yaml:"stopwords"`

	Empathy             map[string]string   `yaml:"empathy"`
	FallbackTemplates   map[string][]string `yaml:"fallback_templates"`
	ClarifyingQuestions []string            `yaml:"clarifying_questions"`
	TopicIntro          string              `yaml:"topic_intro"`

	DocumentSummaryLabel string `yaml:"document_summary_label"`
	KBSourceName         string `yaml:"kb_source_name"`

	EmotionCues map[string][]string `yaml:"emotion_cues"`

	smallTalk    []*regexp.Regexp
	confirmation *regexp.Regexp
	rephrasings  []*regexp.Regexp
	stopwords    map[string]struct{}
}

// Load reads a YAML override from path on top of the Spanish defaults.
// An empty path returns the defaults.
func Load(path string) (*Lexicon, error) {
	lx := Default()
	if path == "" {
		return lx, lx.Compile()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	if err := yaml.Unmarshal(data, lx); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	if err := lx.Compile(); err != nil {
		return nil, err
	}
	return lx, nil
}

// MustDefault returns the compiled built-in lexicon.
func MustDefault() *Lexicon {
	lx := Default()
	if err := lx.Compile(); err != nil {
		panic(err)
	}
	return lx
}

// Compile validates and compiles the patterns. It must be called after the
// exported fields are changed.
func (lx *Lexicon) Compile() error {
	lx.smallTalk = lx.smallTalk[:0]
	for _, rule := range lx.SmallTalk {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("small talk pattern %q: %w", rule.Pattern, err)
		}
		lx.smallTalk = append(lx.smallTalk, re)
	}
	lx.confirmation = nil
	if lx.Confirmation != "" {
		re, err := regexp.Compile(lx.Confirmation)
		if err != nil {
			return fmt.Errorf("confirmation pattern: %w", err)
		}
		lx.confirmation = re
	}
	lx.rephrasings = lx.rephrasings[:0]
	for _, r := range lx.Rephrasings {
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(r.From))
		if err != nil {
			return fmt.Errorf("rephrasing %q: %w", r.From, err)
		}
		lx.rephrasings = append(lx.rephrasings, re)
	}
	lx.stopwords = make(map[string]struct{}, len(lx.Stopwords))
	for _, w := range lx.Stopwords {
		lx.stopwords[textnorm.Normalize(w)] = struct{}{}
	}
	if len(lx.FallbackTemplates["neutral"]) == 0 {
		return fmt.Errorf("lexicon: neutral fallback templates must not be empty")
	}
	if len(lx.ClarifyingQuestions) < 2 {
		return fmt.Errorf("lexicon: at least two clarifying questions are required")
	}
	return nil
}

// SmallTalkReply returns the reply of the first rule matching the normalized text.
func (lx *Lexicon) SmallTalkReply(normalized string) (string, bool) {
	for i, re := range lx.smallTalk {
		if re.MatchString(normalized) {
			return lx.SmallTalk[i].Reply, true
		}
	}
	return "", false
}

// IsConfirmation reports whether the normalized text asks to confirm a step or section.
func (lx *Lexicon) IsConfirmation(normalized string) bool {
	return lx.confirmation != nil && lx.confirmation.MatchString(normalized)
}

// HasDomainHint reports whether the normalized text mentions domain vocabulary.
func (lx *Lexicon) HasDomainHint(normalized string) bool {
	return containsAny(normalized, lx.DomainHints)
}

// HasStepCue reports whether the normalized text asks for step-by-step instructions.
func (lx *Lexicon) HasStepCue(normalized string) bool {
	return containsAny(normalized, lx.StepCues)
}

// IsProcedural reports whether the sentence mentions a procedural keyword.
func (lx *Lexicon) IsProcedural(sentence string) bool {
	return containsAny(textnorm.Normalize(sentence), lx.ProceduralKeywords)
}

// IsStopword reports whether the normalized token is a stop word.
func (lx *Lexicon) IsStopword(token string) bool {
	_, ok := lx.stopwords[token]
	return ok
}

// StrongEmotion reports whether the emotion should suppress small talk.
func (lx *Lexicon) StrongEmotion(label string, confidence float64) bool {
	if contains(lx.NegativeLabels, label) && confidence >= lx.NegativeThreshold {
		return true
	}
	return contains(lx.PositiveLabels, label) && confidence >= lx.PositiveThreshold
}

// EmpathyPrefix returns the phrase that opens replies for the given emotion.
func (lx *Lexicon) EmpathyPrefix(label string) string {
	return lx.Empathy[label]
}

// Rephrase applies the substitution table, keeping the case of the first letter.
// Only whole words are replaced; accented letters count as word characters.
func (lx *Lexicon) Rephrase(text string) string {
	for i, re := range lx.rephrasings {
		to := lx.Rephrasings[i].To
		var b strings.Builder
		last := 0
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if !wholeWord(text, loc[0], loc[1]) {
				continue
			}
			b.WriteString(text[last:loc[0]])
			if r, _ := utf8.DecodeRuneInString(text[loc[0]:]); unicode.IsUpper(r) {
				b.WriteString(textnorm.Capitalize(to))
			} else {
				b.WriteString(to)
			}
			last = loc[1]
		}
		b.WriteString(text[last:])
		text = b.String()
	}
	return text
}

// wholeWord reports whether s[start:end] is not flanked by letters or digits.
func wholeWord(s string, start, end int) bool {
	if r, _ := utf8.DecodeLastRuneInString(s[:start]); start > 0 && isWordRune(r) {
		return false
	}
	if r, _ := utf8.DecodeRuneInString(s[end:]); end < len(s) && isWordRune(r) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Templates returns the fallback templates for label, defaulting to neutral.
func (lx *Lexicon) Templates(label string) []string {
	if t := lx.FallbackTemplates[label]; len(t) > 0 {
		return t
	}
	return lx.FallbackTemplates["neutral"]
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if t != "" && strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
