package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lazypower/ctxport/internal/compress"
	"github.com/lazypower/ctxport/internal/config"
	"github.com/lazypower/ctxport/internal/conversation"
	"github.com/lazypower/ctxport/internal/llm"
	"github.com/lazypower/ctxport/internal/pipeline"
	"github.com/lazypower/ctxport/internal/transport"
	"github.com/spf13/cobra"
)

var (
	compressTarget string
	compressAI     bool
	compressCopy   bool
	compressOut    string
	compressSource string
)

var compressCmd = &cobra.Command{
	Use:   "compress [file]",
	Short: "Compress a conversation into a portable context document",
	Long: `Compress reads a conversation from a file or stdin, strips UI noise and
filler, and emits a context document sized for the target platform.
Files ending in .json are treated as platform export documents.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompress,
}

func init() {
	compressCmd.Flags().StringVarP(&compressTarget, "target", "t", "", "destination platform: auto, chatgpt, claude, gemini, copilot")
	compressCmd.Flags().BoolVar(&compressAI, "ai", false, "summarize with a local AI before rule-based compression")
	compressCmd.Flags().BoolVarP(&compressCopy, "copy", "c", false, "copy the result to the clipboard")
	compressCmd.Flags().StringVarP(&compressOut, "out", "o", "", "write the result to a file instead of stdout")
	compressCmd.Flags().StringVarP(&compressSource, "source", "s", "", "source label shown in the output header")
}

func runCompress(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv(config.Default())

	raw, source, err := readConversation(args)
	if err != nil {
		return err
	}
	if compressSource != "" {
		source = compressSource
	}

	target := compressTarget
	if target == "" {
		target = cfg.Transfer.DefaultTarget
	}

	opts := pipeline.Options{
		Source:    source,
		Target:    target,
		AIEnabled: compressAI,
		Progress: func(stage string) {
			fmt.Fprintf(os.Stderr, "  %s...\n", stage)
		},
	}
	if compressAI {
		opts.Summarizer = llm.NewSummarizer(cfg.LLM)
	}

	res, err := pipeline.Run(cmd.Context(), raw, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "compressed %s -> %s chars (%d%% smaller, %s)\n",
		compress.FormatSize(res.OriginalChars),
		compress.FormatSize(res.CompressedChars),
		res.ReductionPercent, res.Method)
	fmt.Fprintf(os.Stderr, "  ~%d tokens for %s\n",
		compress.EstimateTokens(res.Formatted), target)
	if len(res.Chunks) > 1 {
		fmt.Fprintf(os.Stderr, "  split into %d chunks, paste them in order\n", len(res.Chunks))
	}

	if compressCopy {
		// Copy the first chunk; the rest would not fit the target anyway.
		if err := transport.CopyToClipboard(res.Chunks[0]); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else if len(res.Chunks) > 1 {
			fmt.Fprintln(os.Stderr, "  chunk 1 copied to clipboard")
		} else {
			fmt.Fprintln(os.Stderr, "  copied to clipboard")
		}
	}

	if compressOut != "" {
		if err := os.WriteFile(compressOut, []byte(res.Formatted), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	fmt.Println(res.Formatted)
	return nil
}

// readConversation loads raw conversation text from the file argument or
// stdin. JSON files go through export extraction first.
func readConversation(args []string) (raw, source string, err error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") ||
			strings.HasPrefix(strings.TrimSpace(string(data)), "[") {
			if text, jerr := conversation.ExtractFromJSON(data); jerr == nil {
				return text, "Exported conversation", nil
			}
		}
		return string(data), "", nil
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}

	source = filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		text, err := conversation.ExtractFromJSON(data)
		if err != nil {
			return "", "", fmt.Errorf("parse export %s: %w", path, err)
		}
		return text, source, nil
	}
	return string(data), source, nil
}
