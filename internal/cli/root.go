package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ctxport",
	Short: "Compress AI conversations and carry them between platforms",
	Long:  "Ctxport compresses chat transcripts into compact context documents you can paste into ChatGPT, Claude, Gemini, or Copilot. Single Go binary.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(teleportCmd)
	rootCmd.AddCommand(vaultCmd)
	rootCmd.AddCommand(serveCmd)
}
