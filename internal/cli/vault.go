package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lazypower/ctxport/internal/compress"
	"github.com/lazypower/ctxport/internal/config"
	"github.com/lazypower/ctxport/internal/transport"
	"github.com/lazypower/ctxport/internal/vault"
	"github.com/spf13/cobra"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Save and reload compressed contexts by project",
}

var vaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved projects",
	RunE:  runVaultList,
}

var vaultSaveCmd = &cobra.Command{
	Use:   "save <project> [file]",
	Short: "Save a compressed context under a project name",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runVaultSave,
}

var (
	vaultLoadAll  bool
	vaultLoadCopy bool
)

var vaultLoadCmd = &cobra.Command{
	Use:   "load <project>",
	Short: "Print the latest saved context for a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runVaultLoad,
}

var vaultDeleteCmd = &cobra.Command{
	Use:   "delete <project>",
	Short: "Delete a project and all its saved contexts",
	Args:  cobra.ExactArgs(1),
	RunE:  runVaultDelete,
}

func init() {
	vaultLoadCmd.Flags().BoolVar(&vaultLoadAll, "all", false, "combine every saved session instead of just the latest")
	vaultLoadCmd.Flags().BoolVarP(&vaultLoadCopy, "copy", "c", false, "copy the loaded context to the clipboard")

	vaultCmd.AddCommand(vaultListCmd)
	vaultCmd.AddCommand(vaultSaveCmd)
	vaultCmd.AddCommand(vaultLoadCmd)
	vaultCmd.AddCommand(vaultDeleteCmd)
}

func runVaultList(cmd *cobra.Command, args []string) error {
	db, err := openVault(config.FromEnv(config.Default()))
	if err != nil {
		return err
	}
	defer db.Close()

	projects, err := db.Projects()
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("no saved projects yet, compress a conversation and `ctxport vault save` it")
		return nil
	}

	for _, p := range projects {
		plural := "s"
		if p.ContextCount == 1 {
			plural = ""
		}
		updated := time.UnixMilli(p.UpdatedAt).Format("2006-01-02 15:04")
		fmt.Printf("%-24s %d context%s  %s chars  updated %s\n",
			p.Name, p.ContextCount, plural, compress.FormatSize(int(p.TotalSize)), updated)
	}
	return nil
}

func runVaultSave(cmd *cobra.Command, args []string) error {
	name := args[0]

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

	db, err := openVault(config.FromEnv(config.Default()))
	if err != nil {
		return err
	}
	defer db.Close()

	c, err := db.SaveContext(name, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved %s chars to project %q\n", compress.FormatSize(c.Size), name)
	return nil
}

func runVaultLoad(cmd *cobra.Command, args []string) error {
	db, err := openVault(config.FromEnv(config.Default()))
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := db.FindProject(args[0])
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("no project named %q", args[0])
	}

	var text string
	if vaultLoadAll {
		contexts, err := db.Contexts(p.ID)
		if err != nil {
			return err
		}
		if len(contexts) == 0 {
			return fmt.Errorf("project %q has no saved contexts", p.Name)
		}
		text = vault.CombineContexts(contexts)
		fmt.Fprintf(os.Stderr, "loaded %d sessions from %q\n", len(contexts), p.Name)
	} else {
		c, err := db.LatestContext(p.ID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("project %q has no saved contexts", p.Name)
		}
		text = c.Compressed
		fmt.Fprintf(os.Stderr, "loaded latest context from %q\n", p.Name)
	}

	if vaultLoadCopy {
		if err := transport.CopyToClipboard(text); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "copied to clipboard")
		}
	}
	fmt.Println(text)
	return nil
}

func runVaultDelete(cmd *cobra.Command, args []string) error {
	db, err := openVault(config.FromEnv(config.Default()))
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := db.FindProject(args[0])
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("no project named %q", args[0])
	}

	if err := db.DeleteProject(p.ID); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "deleted project %q and its %d contexts\n", p.Name, p.ContextCount)
	return nil
}
