package cmd

import (
	"errors"
	"fmt"

	"github.com/kamusis/kwfinder/internal/keyword"
	"github.com/kamusis/kwfinder/internal/override"
)

// runUpdate writes value as the custom mapping of filename, or deletes the
// mapping when value is empty, then flushes both user stores.
func runUpdate(filename, value string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	edit, err := override.Apply(s.cache, s.keywords, filename, value)
	switch {
	case errors.Is(err, override.ErrAmbiguousArtifact):
		return fmt.Errorf("duplicate entries for model and lora %s, please resolve the update manually", filename)
	case errors.Is(err, override.ErrUnknownArtifact):
		return fmt.Errorf("did not find a corresponding model or lora for %s", filename)
	case err != nil:
		return err
	}

	switch {
	case edit.Deleted && len(edit.Layers) == 0:
		printSkip(edit.Filename, "no custom mapping to delete")
	case edit.Deleted:
		printOK(edit.Filename, fmt.Sprintf("custom mapping deleted (%s)", edit.Fingerprint))
	default:
		printOK(edit.Filename, fmt.Sprintf("custom %s mapping set to %q (%s)", edit.Class, value, edit.Fingerprint))
	}
	return flushUserStores(s.keywords)
}

// flushUserStores writes back every modified user layer. A store file that
// does not exist is reported and skipped; the other layer is still written.
func flushUserStores(set *keyword.Set) error {
	var failed int
	for _, id := range keyword.Layers {
		if !id.User() {
			continue
		}
		written, err := set.Flush(id)
		switch {
		case errors.Is(err, keyword.ErrStoreMissing):
			printErr(id.File(), fmt.Sprintf("failed to find keyword store that is supposed to be updated: %v", err))
			printInfo(id.File(), "create it (e.g. with 'kwfinder init') and run the update again")
			failed++
		case err != nil:
			printErr(id.File(), err.Error())
			failed++
		case written:
			printOK(id.File(), "keyword store updated")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d keyword store(s) could not be written", failed)
	}
	return nil
}
