package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lazypower/ctxport/internal/config"
	"github.com/lazypower/ctxport/internal/transport"
	"github.com/lazypower/ctxport/internal/vault"
	"github.com/spf13/cobra"
)

var teleportCmd = &cobra.Command{
	Use:   "teleport <target> [file]",
	Short: "Copy a context to the clipboard and open the target AI platform",
	Long: `Teleport puts the text on your clipboard, records a pending handoff, and
opens the target platform in your browser. Paste (Ctrl+V) when it loads.
Targets: ` + strings.Join(transport.Targets(), ", ") + `.
Reads from the file argument, or stdin when omitted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runTeleport,
}

func runTeleport(cmd *cobra.Command, args []string) error {
	target := args[0]
	if _, ok := transport.TargetURL(target); !ok {
		return fmt.Errorf("unknown target %q (choose from %s)", target, strings.Join(transport.Targets(), ", "))
	}

	var data []byte
	var err error
	if len(args) == 2 {
		data, err = os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[1], err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return fmt.Errorf("nothing to teleport: compress something first")
	}

	db, err := openVault(config.FromEnv(config.Default()))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := transport.Teleport(db, target, text); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "teleporting to %s, text is on your clipboard\n", target)
	return nil
}

// openVault resolves the database path and opens the vault.
func openVault(cfg config.Config) (*vault.DB, error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		var err error
		dbPath, err = vault.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}
	db, err := vault.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	return db, nil
}
