package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lazypower/ctxport/internal/config"
	"github.com/lazypower/ctxport/internal/llm"
	"github.com/lazypower/ctxport/internal/pipeline"
	"github.com/lazypower/ctxport/internal/server"
	"github.com/spf13/cobra"
)

var serveAI bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveAI, "ai", false, "enable AI summarization for compress requests")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv(config.Default())
	cfg.LLM.Enabled = serveAI

	db, err := openVault(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var summarizer pipeline.Summarizer
	if cfg.LLM.Enabled {
		summarizer = llm.NewSummarizer(cfg.LLM)
		if llm.ProbeOllama(cfg.LLM.OllamaURL) {
			fmt.Fprintf(os.Stderr, "  ollama: %s\n", cfg.LLM.OllamaURL)
		} else if llm.ProbeChromeAI(cfg.LLM.ChromeAIURL) {
			fmt.Fprintf(os.Stderr, "  chrome ai bridge: %s\n", cfg.LLM.ChromeAIURL)
		} else {
			fmt.Fprintln(os.Stderr, "warning: no AI provider reachable, requests will fall back to rule-based")
		}
	}

	srv := server.New(db, summarizer, cfg.LLM.Enabled, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "ctxport serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  db: %s\n", db.Path)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
