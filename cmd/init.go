package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamusis/kwfinder/internal/config"
	"github.com/kamusis/kwfinder/internal/keyword"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config template and create the user keyword stores",
	Long: `Prepare kwfinder for first use.

  1. Writes config.yaml (or the file given with --config) unless a config
     already exists. Edit the paths to match your local setup.
  2. Creates empty user keyword stores (custom-mappings.txt and
     lora-keyword-user.txt) in the keyword directory if they are missing.
     kwfinder --update never creates these files by itself.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// ── 1. Write config if missing ────────────────────────────────────────────
	path := flagConfig
	if path == "" {
		path = config.DefaultPaths[0]
		if existing, err := config.Resolve(""); err == nil {
			path = existing
		}
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := config.Save(path, config.DefaultConfig()); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s (edit the paths for your local setup)", path))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", path))
	}

	// ── 2. Create user stores ─────────────────────────────────────────────────
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(cfg.KeywordPath)
	if err != nil || !info.IsDir() {
		printSkip("", fmt.Sprintf("keyword directory %s not found, user stores not created", cfg.KeywordPath))
		return nil
	}
	created, err := createUserStores(cfg.KeywordPath)
	for _, p := range created {
		printOK("", fmt.Sprintf("Created keyword store: %s", p))
	}
	if err != nil {
		return err
	}
	if len(created) == 0 {
		printSkip("", "User keyword stores already exist")
	}
	return nil
}

// createUserStores creates each missing user store as an empty file and
// returns the paths it created.
func createUserStores(dir string) ([]string, error) {
	var created []string
	for _, id := range keyword.Layers {
		if !id.User() {
			continue
		}
		p := filepath.Join(dir, id.File())
		f, err := os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("cannot create keyword store %s: %w", p, err)
		}
		if err := f.Close(); err != nil {
			return created, err
		}
		created = append(created, p)
	}
	return created, nil
}
