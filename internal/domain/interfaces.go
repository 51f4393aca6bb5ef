package domain

import "context"

// Origin tells which corpus a record belongs to.
type Origin int

const (
	OriginDocument Origin = iota
	OriginKnowledgeBase
)

func (o Origin) String() string {
	if o == OriginKnowledgeBase {
		return "kb"
	}
	return "document"
}

// Record is a normalized unit of indexed text. Records are immutable once created.
type Record struct {
	Text     string
	SourceID string
	Location string
	Ordinal  int
	Origin   Origin
}

// KBRow is a knowledge-base table row loaded verbatim.
type KBRow struct {
	Question string
	Answer   string
	Link     string
}

// RetrievalHit is a record matched by a query with its cosine score and rank.
type RetrievalHit struct {
	Record Record
	Score  float64
	Rank   int
}

// SourceRef is a citation attached to an answer.
type SourceRef struct {
	DisplayName string
	URL         string
}

// EmotionState is the classifier output for the current turn.
type EmotionState struct {
	Label      string
	Confidence float64
	Model      string
}

// Neutral is the state substituted when the classifier has nothing to say.
func Neutral(model string) EmotionState {
	return EmotionState{Label: "neutral", Confidence: 0, Model: model}
}

// ReplyKind identifies which branch of the router produced a reply.
type ReplyKind int

const (
	ReplySmallTalk ReplyKind = iota
	ReplyConfirmation
	ReplyGrounded
	ReplyFallback
)

func (k ReplyKind) String() string {
	switch k {
	case ReplySmallTalk:
		return "smalltalk"
	case ReplyConfirmation:
		return "confirmation"
	case ReplyGrounded:
		return "grounded"
	default:
		return "fallback"
	}
}

// Reply is what the chat surface renders for one turn.
type Reply struct {
	Kind    ReplyKind
	Answer  string
	Sources []SourceRef
	Emotion EmotionState
}

// Extractor resolves a document path into text. A non-nil error means the file
// could not be read, which is different from a readable file with no text.
type Extractor interface {
	Extract(path string) (string, error)
}

// Classifier detects the emotional state of an utterance.
type Classifier interface {
	Classify(ctx context.Context, text string) (EmotionState, error)
}

// Responder answers one chat turn.
type Responder interface {
	Respond(ctx context.Context, utterance string) Reply
}
