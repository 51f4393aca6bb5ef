package service

import (
	"context"
	"log/slog"
	"strings"

	"gobi/internal/composer"
	"gobi/internal/domain"
	"gobi/internal/fallback"
	"gobi/internal/index"
	"gobi/internal/lexicon"
	"gobi/internal/textnorm"
)

// RouterConfig wires the router's collaborators.
type RouterConfig struct {
	Cache      *index.Cache
	Classifier domain.Classifier
	Lexicon    *lexicon.Lexicon
	Fuser      *Fuser
	Composer   *composer.Composer
	Fallback   *fallback.Generator
	Mode       composer.Mode
	MaxWords   int
	Logger     *slog.Logger
}

// Router classifies each utterance independently as small talk, a
// confirmation, a grounded query or an ungroundable one.
type Router struct {
	cache      *index.Cache
	classifier domain.Classifier
	lexicon    *lexicon.Lexicon
	fuser      *Fuser
	composer   *composer.Composer
	fallback   *fallback.Generator
	mode       composer.Mode
	maxWords   int
	logger     *slog.Logger
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Mode == "" {
		cfg.Mode = composer.ModeAuto
	}
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = 300
	}
	return &Router{
		cache:      cfg.Cache,
		classifier: cfg.Classifier,
		lexicon:    cfg.Lexicon,
		fuser:      cfg.Fuser,
		composer:   cfg.Composer,
		fallback:   cfg.Fallback,
		mode:       cfg.Mode,
		maxWords:   cfg.MaxWords,
		logger:     cfg.Logger,
	}
}

// Respond produces the reply for one utterance. It never fails.
func (r *Router) Respond(ctx context.Context, utterance string) domain.Reply {
	emo := r.classify(ctx, utterance)
	norm := textnorm.Normalize(utterance)

	if reply, ok := r.smallTalk(utterance, norm, emo); ok {
		r.logger.Debug("route", "kind", domain.ReplySmallTalk, "emotion", emo.Label)
		return domain.Reply{Kind: domain.ReplySmallTalk, Answer: reply, Emotion: emo}
	}

	if r.lexicon.IsConfirmation(norm) {
		r.logger.Debug("route", "kind", domain.ReplyConfirmation, "emotion", emo.Label)
		return domain.Reply{
			Kind:    domain.ReplyConfirmation,
			Answer:  r.lexicon.EmpathyPrefix(emo.Label) + r.lexicon.ConfirmationReply,
			Emotion: emo,
		}
	}

	fused := r.fuser.Fuse(utterance, r.cache.Current())
	if !fused.Empty() {
		mode, text := r.mode, fused.Text()
		if r.lexicon.HasStepCue(norm) {
			mode = composer.ModeSteps
		}
		if mode == composer.ModeSteps {
			text = fused.Body()
		}
		r.logger.Debug("route", "kind", domain.ReplyGrounded, "mode", mode,
			"kb", fused.KB != nil, "sources", len(fused.Sources), "emotion", emo.Label)
		return domain.Reply{
			Kind:    domain.ReplyGrounded,
			Answer:  r.composer.Compose(text, mode, r.maxWords, emo.Label),
			Sources: fused.Sources,
			Emotion: emo,
		}
	}

	r.logger.Debug("route", "kind", domain.ReplyFallback, "emotion", emo.Label)
	return domain.Reply{
		Kind:    domain.ReplyFallback,
		Answer:  r.fallback.Reply(utterance, emo.Label),
		Emotion: emo,
	}
}

func (r *Router) classify(ctx context.Context, utterance string) domain.EmotionState {
	if r.classifier == nil {
		return domain.Neutral("none")
	}
	st, err := r.classifier.Classify(ctx, utterance)
	if err != nil {
		return domain.Neutral("fallback")
	}
	return st
}

// smallTalk applies the gate: strong emotion, long utterances and domain
// vocabulary all disable small talk before any pattern is tried.
func (r *Router) smallTalk(utterance, norm string, emo domain.EmotionState) (string, bool) {
	if norm == "" {
		return "", false
	}
	if r.lexicon.StrongEmotion(emo.Label, emo.Confidence) {
		return "", false
	}
	if limit := r.lexicon.SmallTalkMaxWords; limit > 0 && len(strings.Fields(utterance)) > limit {
		return "", false
	}
	if r.lexicon.HasDomainHint(norm) {
		return "", false
	}
	return r.lexicon.SmallTalkReply(norm)
}
