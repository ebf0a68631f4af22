package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamusis/kwfinder/internal/config"
	"github.com/kamusis/kwfinder/internal/identity"
	"github.com/kamusis/kwfinder/internal/keyword"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run pre-flight environment checks",
	Long: `Check that kwfinder's config, directories, keyword stores and cache are usable.
Run this command when something seems wrong, or before filing a bug report.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("kwfinder doctor")
	fmt.Fprintln(stdout)

	// ── Check 1: config ───────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ config ]")
	var cfg *config.Config
	path, err := config.Resolve(flagConfig)
	if err != nil {
		failD("%v (run 'kwfinder init' first)", err)
	} else if cfg, err = config.Load(path); err != nil {
		failD("%v", err)
	} else if err := cfg.Validate(); err != nil {
		failD("%s: %v", path, err)
	} else {
		printOK("", fmt.Sprintf("valid config: %s", path))
	}
	fmt.Fprintln(stdout)

	// ── Check 2: directories ──────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ directories ]")
	if cfg == nil {
		printSkip("", "no config loaded")
	} else {
		dirs := []struct{ name, path string }{
			{"sd_model_path", cfg.ModelPath},
			{"lora_path", cfg.LoraPath},
			{"model_keyword_path", cfg.KeywordPath},
		}
		for _, d := range dirs {
			info, err := os.Stat(d.path)
			switch {
			case d.path == "":
				failD("%s is not set", d.name)
			case err != nil:
				failD("%s: %v", d.name, err)
			case !info.IsDir():
				failD("%s is not a directory: %s", d.name, d.path)
			default:
				printOK(d.name, d.path)
			}
		}
	}
	fmt.Fprintln(stdout)

	// ── Check 3: keyword stores ───────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ keyword stores ]")
	if cfg == nil || cfg.KeywordPath == "" {
		printSkip("", "keyword directory unknown")
	} else {
		for _, id := range keyword.Layers {
			p := filepath.Join(cfg.KeywordPath, id.File())
			_, err := os.Stat(p)
			switch {
			case err == nil:
				printOK(string(id), p)
			case id.User():
				failD("[%s] user store missing, updates cannot be saved: %s (run 'kwfinder init')", id, p)
			default:
				printWarn(string(id), fmt.Sprintf("built-in store missing, is the model-keyword extension installed? %s", p))
			}
		}
	}
	fmt.Fprintln(stdout)

	// ── Check 4: fingerprint cache ────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ fingerprint cache ]")
	if _, err := os.Stat(flagCache); os.IsNotExist(err) {
		printSkip("", fmt.Sprintf("%s not created yet (first search will build it)", flagCache))
	} else if c, err := identity.Load(flagCache); err != nil {
		failD("%v (delete it to rebuild)", err)
	} else {
		printOK("", fmt.Sprintf("%s: %d entries", flagCache, c.Len()))
	}

	fmt.Fprintln(stdout)
	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	printOK("", "all checks passed")
	return nil
}
