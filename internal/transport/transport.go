// Package transport moves compressed context to its destination: the system
// clipboard, the default browser, or both at once via Teleport.
package transport

import (
	"fmt"
	"os/exec"
	"runtime"
	"sort"

	"github.com/atotto/clipboard"
)

// targetURLs maps teleport target names to the AI platform to open.
var targetURLs = map[string]string{
	"chatgpt": "https://chatgpt.com/",
	"claude":  "https://claude.ai/new",
	"gemini":  "https://gemini.google.com/app",
	"copilot": "https://copilot.microsoft.com/",
}

// TargetURL returns the launch URL for a teleport target.
func TargetURL(target string) (string, bool) {
	url, ok := targetURLs[target]
	return url, ok
}

// Targets returns the known teleport target names, sorted.
func Targets() []string {
	names := make([]string, 0, len(targetURLs))
	for name := range targetURLs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CopyToClipboard puts text on the system clipboard.
func CopyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// OpenURL launches the default browser on the given URL.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}

// Handoffs is the subset of the vault used to park a pending teleport.
type Handoffs interface {
	SetPendingHandoff(text, target string) error
}

// Teleport copies text to the clipboard, records a pending handoff, and
// opens the target AI platform in the default browser. The clipboard copy
// happens first so the text survives even if the browser launch fails.
func Teleport(store Handoffs, target, text string) error {
	url, ok := TargetURL(target)
	if !ok {
		return fmt.Errorf("unknown teleport target %q", target)
	}
	if text == "" {
		return fmt.Errorf("nothing to teleport")
	}

	if err := CopyToClipboard(text); err != nil {
		return err
	}

	if store != nil {
		if err := store.SetPendingHandoff(text, target); err != nil {
			return err
		}
	}

	return OpenURL(url)
}
