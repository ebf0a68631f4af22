package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamusis/kwfinder/internal/fingerprint"
	"github.com/kamusis/kwfinder/internal/identity"
	"github.com/kamusis/kwfinder/internal/keyword"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Sync the fingerprint cache and summarize installed artifacts and keyword stores",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// cacheStats counts cache entries per class.
type cacheStats struct {
	models, loras, noFile int
}

func countCache(c *identity.Cache) cacheStats {
	var st cacheStats
	for _, key := range c.Keys() {
		e, _ := c.Get(key)
		if class, _ := identity.ClassOf(key); class == identity.ClassLora {
			st.loras++
		} else {
			st.models++
		}
		if e.Fingerprint == fingerprint.NoFile {
			st.noFile++
		}
	}
	return st
}

func runStatus(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	printSection("Fingerprint cache")
	st := countCache(s.cache)
	printInfo("", fmt.Sprintf("cache file: %s", flagCache))
	printOK("", fmt.Sprintf("%d model(s) in %s", st.models, s.cfg.ModelPath))
	printOK("", fmt.Sprintf("%d lora(s) in %s", st.loras, s.cfg.LoraPath))
	if st.noFile > 0 {
		printWarn("", fmt.Sprintf("%d artifact(s) vanished while hashing (%s); delete the cache to re-hash", st.noFile, fingerprint.NoFile))
	}

	printSection("Keyword stores")
	for _, id := range keyword.Layers {
		p := filepath.Join(s.keywords.Dir(), id.File())
		n := s.keywords.Layer(id).Len()
		kind := "built-in"
		if id.User() {
			kind = "user"
		}
		if _, err := os.Stat(p); err != nil {
			printMiss(string(id), fmt.Sprintf("%s store missing: %s", kind, p))
			continue
		}
		printOK(string(id), fmt.Sprintf("%d record(s) in %s store %s", n, kind, p))
	}
	return nil
}
