// Package service wires loading, indexing and routing into the chat engine.
package service

import (
	"context"
	"log/slog"
	"math/rand"

	"gobi/internal/chunker"
	"gobi/internal/composer"
	"gobi/internal/config"
	"gobi/internal/domain"
	"gobi/internal/emotion"
	"gobi/internal/extract"
	"gobi/internal/fallback"
	"gobi/internal/index"
	"gobi/internal/lexicon"
	"gobi/internal/loader"
)

// Deps are the collaborators a RAGService can be given. Nil fields get defaults.
type Deps struct {
	Extractor  domain.Extractor
	Classifier domain.Classifier
	Lexicon    *lexicon.Lexicon
	Rand       *rand.Rand
	Logger     *slog.Logger
}

// Stats describes the active snapshot.
type Stats struct {
	Snapshot      string
	Documents     int
	DocChunks     int
	DocVocabulary int
	KBRows        int
	KBVocabulary  int
}

// RAGService answers chat turns from a document corpus and a knowledge base.
type RAGService struct {
	cfg    *config.AppConfig
	loader *loader.DocumentLoader
	cache  *index.Cache
	router *Router
	logger *slog.Logger
}

// NewRAGService validates cfg and assembles the pipeline. Call Reload or
// Ingest before the first turn; until then every query falls back.
func NewRAGService(cfg *config.AppConfig, deps Deps) (*RAGService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := composer.ParseMode(cfg.Composer.Mode)
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lx := deps.Lexicon
	if lx == nil {
		lx = lexicon.MustDefault()
	}
	ext := deps.Extractor
	if ext == nil {
		ext = extract.NewFileExtractor(cfg.Documents.MaxPDFPages)
	}
	cls := deps.Classifier
	if cls == nil {
		cls = emotion.NewLexiconClassifier(lx.EmotionCues)
	}
	rng := deps.Rand
	if rng == nil && cfg.Fallback.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Fallback.Seed))
	}

	cache := index.NewCache(index.Options{
		NgramMin:  cfg.Index.NgramMin,
		NgramMax:  cfg.Index.NgramMax,
		MaxDF:     cfg.Index.MaxDF,
		Stopwords: cfg.Index.Stopwords,
	}, logger)

	router := NewRouter(RouterConfig{
		Cache:      cache,
		Classifier: emotion.Safe(cls, logger),
		Lexicon:    lx,
		Fuser: NewFuser(FuserConfig{
			DocK:          cfg.Retrieval.DocK,
			SummaryHits:   cfg.Retrieval.SummaryHits,
			MinScore:      cfg.Retrieval.MinScore,
			PublicBaseURL: cfg.Documents.PublicBaseURL,
			KBSourceName:  lx.KBSourceName,
			SummaryLabel:  lx.DocumentSummaryLabel,
		}),
		Composer: composer.New(lx, cfg.Composer.TargetSentences, cfg.Composer.MaxItems),
		Fallback: fallback.New(lx, rng),
		Mode:     mode,
		MaxWords: cfg.Composer.MaxWords,
		Logger:   logger,
	})

	return &RAGService{
		cfg:    cfg,
		loader: loader.NewDocumentLoader(ext, chunker.NewWindowChunker(cfg.Chunker.Size, cfg.Chunker.Overlap), logger),
		cache:  cache,
		router: router,
		logger: logger,
	}, nil
}

// Reload rediscovers the configured corpora and rebuilds the indexes when
// their content changed. Unreadable sources degrade to empty corpora.
func (s *RAGService) Reload(ctx context.Context) (Stats, error) {
	paths, err := loader.Discover(s.cfg.Documents.Dir, s.cfg.Documents.Extensions)
	if err != nil {
		s.logger.Warn("could not list documents", "dir", s.cfg.Documents.Dir, "err", err)
	}
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	rows, err := loader.LoadKnowledgeBase(s.cfg.Knowledge.CSV)
	if err != nil {
		s.logger.Warn("could not read knowledge base", "path", s.cfg.Knowledge.CSV, "err", err)
		rows = nil
	}
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	return s.Ingest(paths, rows), nil
}

// Ingest indexes the given document paths and knowledge-base rows.
func (s *RAGService) Ingest(paths []string, rows []domain.KBRow) Stats {
	s.logger.Debug("ingesting", "documents", len(paths), "kb_rows", len(rows))
	records := s.loader.Load(paths)
	s.cache.Rebuild(records, loader.KnowledgeRecords(rows), rows)
	return s.Stats()
}

// Stats reports the size of the active snapshot.
func (s *RAGService) Stats() Stats {
	snap := s.cache.Current()
	docs := map[string]struct{}{}
	for _, r := range snap.Documents.Records() {
		docs[r.SourceID] = struct{}{}
	}
	return Stats{
		Snapshot:      snap.ID,
		Documents:     len(docs),
		DocChunks:     snap.Documents.Len(),
		DocVocabulary: snap.Documents.Vocabulary(),
		KBRows:        len(snap.Rows),
		KBVocabulary:  snap.Knowledge.Vocabulary(),
	}
}

// Respond answers one chat turn.
func (s *RAGService) Respond(ctx context.Context, utterance string) domain.Reply {
	return s.router.Respond(ctx, utterance)
}
