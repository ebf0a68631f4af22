// Package override edits the user keyword layers for a single artifact.
package override

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kamusis/kwfinder/internal/identity"
	"github.com/kamusis/kwfinder/internal/keyword"
)

var (
	// ErrAmbiguousArtifact indicates the filename resolves both as a model
	// and as a lora. Such edits must be resolved manually.
	ErrAmbiguousArtifact = errors.New("artifact is both a model and a lora")

	// ErrUnknownArtifact indicates the filename matches no cached artifact.
	ErrUnknownArtifact = errors.New("no corresponding model or lora")

	// ErrInvalidKeywords indicates a value the store format cannot hold.
	ErrInvalidKeywords = errors.New("keywords must not contain ','")
)

// Edit describes a change applied to the user layers.
type Edit struct {
	Class       identity.Class
	Fingerprint string
	Filename    string

	// Deleted is true for a removal; Layers lists the layers that held an
	// entry. For an insert, Layers holds the single layer written.
	Deleted bool
	Layers  []keyword.LayerID
}

// Apply sets the user keywords of the artifact named filename to value, or
// removes them from both user layers when value is empty. On error the set is
// left untouched. Persisting the layers is the caller's job.
func Apply(c *identity.Cache, set *keyword.Set, filename, value string) (Edit, error) {
	modelEntry, isModel := c.Get(identity.SearchKey(identity.ClassModel, filename))
	loraEntry, isLora := c.Get(identity.SearchKey(identity.ClassLora, filename))

	var edit Edit
	switch {
	case isModel && isLora:
		return Edit{}, fmt.Errorf("%w: %s", ErrAmbiguousArtifact, filename)
	case isModel:
		edit = Edit{Class: identity.ClassModel, Fingerprint: modelEntry.Fingerprint, Filename: modelEntry.Filename}
	case isLora:
		edit = Edit{Class: identity.ClassLora, Fingerprint: loraEntry.Fingerprint, Filename: loraEntry.Filename}
	default:
		return Edit{}, fmt.Errorf("%w: %s", ErrUnknownArtifact, filename)
	}

	if value == "" {
		edit.Deleted = true
		for _, id := range []keyword.LayerID{keyword.LayerModelUser, keyword.LayerLoraUser} {
			if set.Layer(id).Delete(edit.Fingerprint) {
				edit.Layers = append(edit.Layers, id)
			}
		}
		return edit, nil
	}

	if strings.Contains(value, ",") {
		return Edit{}, fmt.Errorf("%w (use '|' to separate keywords)", ErrInvalidKeywords)
	}
	id := keyword.UserLayer(edit.Class)
	set.Layer(id).Set(edit.Fingerprint, keyword.Record{Keywords: value, DisplayName: edit.Filename})
	edit.Layers = []keyword.LayerID{id}
	return edit, nil
}
