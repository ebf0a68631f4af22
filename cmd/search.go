package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/kwfinder/internal/keyword"
	"github.com/kamusis/kwfinder/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search installed models and loras and print their keywords",
	Long: `Fuzzy-search installed models and loras by filename and print their keywords.

This is what 'kwfinder <query>' does. Use it when the query is also the name
of a subcommand, e.g. 'kwfinder search status'.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	out := search.Resolve(s.cache, s.keywords, args[0])
	printSearchOutcome(stdout, out)
	return nil
}

// layerLabel returns the Type and User columns for rows of layer id.
func layerLabel(id keyword.LayerID) (string, string) {
	user := "false"
	if id.User() {
		user = "true"
	}
	return string(id.Class()), user
}

// printSearchOutcome writes the result table. Name columns are padded to the
// longest matched filename.
func printSearchOutcome(w io.Writer, o search.Outcome) {
	pad := o.MaxNameLen + 2
	fmt.Fprintf(w, "Search word: %s, found %d installed matches, %d keyword matches\n",
		o.Query, o.Installed(), o.KeywordMatches())

	if len(o.Unresolved) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Found the following fuzzy matches, but no associated keywords (incomplete store or model has no kws):")
		fmt.Fprintf(w, "%-*s%s\n", pad, "Name", "Hash")
		for _, m := range o.Unresolved {
			fmt.Fprintf(w, "%-*s%s\n", pad, m.Filename, m.Fingerprint)
		}
	}

	if o.KeywordMatches() == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Found these fuzzy matches:")
	fmt.Fprintf(w, "%-7s%-6s%-*s%-10s%s\n", "Type", "User", pad, "Name", "Hash", "Keywords")
	for _, r := range o.Rows {
		typ, user := layerLabel(r.Layer)
		line := fmt.Sprintf("%-7s%-6s%-*s%-10s%s", typ, user, pad, r.Filename, r.Fingerprint, r.Keywords)
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
