package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gobi/internal/config"
	"gobi/internal/domain"
	"gobi/internal/lexicon"
	"gobi/internal/service"
	"gobi/internal/tui"
)

var (
	configPath string
	logFile    string
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "gobi",
		Short:        "GOBI: document-grounded help desk assistant",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default: ./config.yaml, then ~/.config/gobi/config.yaml)")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(chatCmd())
	root.AddCommand(askCmd())
	root.AddCommand(indexCmd())
	return root
}

// loadConfig resolves the config from --config or the default locations and
// applies GOBI_* environment overrides.
func loadConfig() (*config.AppConfig, error) {
	var cfg *config.AppConfig
	var err error
	if configPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func newLogger(cfg *config.AppConfig, fallback io.Writer) (*slog.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w, closeFn = f, func() { f.Close() }
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()})), closeFn, nil
}

// startService builds the engine and loads both corpora.
func startService(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*service.RAGService, service.Stats, error) {
	lx, err := lexicon.Load(cfg.Lexicon.Path)
	if err != nil {
		return nil, service.Stats{}, err
	}
	svc, err := service.NewRAGService(cfg, service.Deps{Lexicon: lx, Logger: logger})
	if err != nil {
		return nil, service.Stats{}, err
	}
	stats, err := svc.Reload(ctx)
	if err != nil {
		return nil, service.Stats{}, err
	}
	logger.Info("corpora loaded", "documents", stats.Documents, "chunks", stats.DocChunks, "kb_rows", stats.KBRows)
	return svc, stats, nil
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			// The TUI owns the terminal, so logs are dropped unless --log-file is set.
			logger, closeLog, err := newLogger(cfg, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, stats, err := startService(ctx, cfg, logger)
			if err != nil {
				return err
			}
			summary := fmt.Sprintf("%d documentos (%d fragmentos) · %d filas de la base de conocimiento",
				stats.Documents, stats.DocChunks, stats.KBRows)
			_, err = tea.NewProgram(tui.New(ctx, svc, summary), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			svc, _, err := startService(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			reply := svc.Respond(cmd.Context(), strings.Join(args, " "))
			printReply(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}

func indexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Load the corpora and print index statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			_, stats, err := startService(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), cfg, stats)
			return nil
		},
	}
}

func printReply(w io.Writer, reply domain.Reply) {
	label := color.New(color.FgGreen, color.Bold).SprintFunc()
	dim := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", label("GOBI:"), reply.Answer)
	if len(reply.Sources) > 0 {
		fmt.Fprintln(w, dim("Fuentes:"))
		for _, s := range reply.Sources {
			fmt.Fprintf(w, "  %s %s\n", dim("•"), s.DisplayName+": "+s.URL)
		}
	}
}

func printStats(w io.Writer, cfg *config.AppConfig, s service.Stats) {
	key := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", key("snapshot:"), s.Snapshot)
	fmt.Fprintf(w, "%s %s (%d documents, %d chunks, vocabulary %d)\n",
		key("documents:"), cfg.Documents.Dir, s.Documents, s.DocChunks, s.DocVocabulary)
	fmt.Fprintf(w, "%s %s (%d rows, vocabulary %d)\n",
		key("knowledge:"), cfg.Knowledge.CSV, s.KBRows, s.KBVocabulary)
}
