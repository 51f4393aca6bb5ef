package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// DocumentsConfig locates the document corpus.
type DocumentsConfig struct {
	Dir           string   `yaml:"dir"`
	Extensions    []string `yaml:"extensions"`
	PublicBaseURL string   `yaml:"public_base_url"`
	MaxPDFPages   int      `yaml:"max_pdf_pages"`
}

// KnowledgeConfig locates the knowledge-base table.
type KnowledgeConfig struct {
	CSV string `yaml:"csv"`
}

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// IndexConfig configures the TF-IDF vector space.
type IndexConfig struct {
	NgramMin  int      `yaml:"ngram_min"`
	NgramMax  int      `yaml:"ngram_max"`
	MaxDF     float64  `yaml:"max_df"`
	Stopwords []string `yaml:"stopwords,omitempty"`
}

// RetrievalConfig configures the retrieval fuser.
type RetrievalConfig struct {
	DocK        int     `yaml:"doc_k"`
	SummaryHits int     `yaml:"summary_hits"`
	MinScore    float64 `yaml:"min_score"`
}

// ComposerConfig configures answer composition.
type ComposerConfig struct {
	Mode            string `yaml:"mode"`
	MaxWords        int    `yaml:"max_words"`
	TargetSentences int    `yaml:"target_sentences"`
	MaxItems        int    `yaml:"max_items"`
}

// LexiconConfig points at an optional locale override file.
type LexiconConfig struct {
	Path string `yaml:"path"`
}

// FallbackConfig seeds the fallback generator. Zero means a random seed.
type FallbackConfig struct {
	Seed int64 `yaml:"seed"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Documents DocumentsConfig `yaml:"documents"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Index     IndexConfig     `yaml:"index"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Composer  ComposerConfig  `yaml:"composer"`
	Lexicon   LexiconConfig   `yaml:"lexicon"`
	Fallback  FallbackConfig  `yaml:"fallback"`
	Log       LogConfig       `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/gobi/config.yaml.
// If neither exists, it writes defaults to ~/.config/gobi/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv overrides file values with GOBI_* environment variables.
func (c *AppConfig) ApplyEnv() {
	if v := os.Getenv("GOBI_DOCS_DIR"); v != "" {
		c.Documents.Dir = v
	}
	if v := os.Getenv("GOBI_KB_CSV"); v != "" {
		c.Knowledge.CSV = v
	}
	if v := os.Getenv("GOBI_PUBLIC_DOC_BASE_URL"); v != "" {
		c.Documents.PublicBaseURL = v
	}
	if v := os.Getenv("GOBI_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate rejects settings the pipeline cannot run with.
func (c *AppConfig) Validate() error {
	switch {
	case c.Chunker.Size <= 0:
		return fmt.Errorf("%w: chunker.size must be positive", ErrInvalid)
	case c.Chunker.Overlap <= 0 || c.Chunker.Overlap >= c.Chunker.Size:
		return fmt.Errorf("%w: chunker.overlap must be in (0, size)", ErrInvalid)
	case c.Retrieval.DocK <= 0:
		return fmt.Errorf("%w: retrieval.doc_k must be positive", ErrInvalid)
	case c.Retrieval.SummaryHits <= 0:
		return fmt.Errorf("%w: retrieval.summary_hits must be positive", ErrInvalid)
	case c.Composer.MaxWords <= 0:
		return fmt.Errorf("%w: composer.max_words must be positive", ErrInvalid)
	case c.Index.NgramMin < 1 || c.Index.NgramMax < c.Index.NgramMin:
		return fmt.Errorf("%w: index ngram range", ErrInvalid)
	case c.Index.MaxDF <= 0 || c.Index.MaxDF > 1:
		return fmt.Errorf("%w: index.max_df must be in (0, 1]", ErrInvalid)
	}
	switch strings.ToLower(c.Composer.Mode) {
	case "", "auto", "steps":
	default:
		return fmt.Errorf("%w: unknown composer.mode %q", ErrInvalid, c.Composer.Mode)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// SlogLevel returns the configured log level, defaulting to info.
func (c *AppConfig) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	err := lvl.UnmarshalText([]byte(s))
	return lvl, err
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gobi", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Documents.Dir == "" {
		cfg.Documents.Dir = filepath.Join("data", "docs")
	}
	if len(cfg.Documents.Extensions) == 0 {
		cfg.Documents.Extensions = []string{".pdf", ".docx", ".doc", ".txt"}
	}
	if cfg.Documents.MaxPDFPages == 0 {
		cfg.Documents.MaxPDFPages = 40
	}
	if cfg.Knowledge.CSV == "" {
		cfg.Knowledge.CSV = filepath.Join("data", "knowledge", "kb.csv")
	}
	if cfg.Chunker.Size == 0 {
		cfg.Chunker.Size = 1200
	}
	if cfg.Chunker.Overlap == 0 {
		cfg.Chunker.Overlap = max(1, cfg.Chunker.Size/6)
	}
	if cfg.Index.NgramMin == 0 {
		cfg.Index.NgramMin = 1
	}
	if cfg.Index.NgramMax == 0 {
		cfg.Index.NgramMax = 2
	}
	if cfg.Index.MaxDF == 0 {
		cfg.Index.MaxDF = 0.9
	}
	if cfg.Retrieval.DocK == 0 {
		cfg.Retrieval.DocK = 4
	}
	if cfg.Retrieval.SummaryHits == 0 {
		cfg.Retrieval.SummaryHits = 2
	}
	if cfg.Composer.Mode == "" {
		cfg.Composer.Mode = "auto"
	}
	if cfg.Composer.MaxWords == 0 {
		cfg.Composer.MaxWords = 300
	}
	if cfg.Composer.TargetSentences == 0 {
		cfg.Composer.TargetSentences = 5
	}
	if cfg.Composer.MaxItems == 0 {
		cfg.Composer.MaxItems = 6
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
