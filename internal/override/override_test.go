package override

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/kwfinder/internal/identity"
	"github.com/kamusis/kwfinder/internal/keyword"
)

func setup(t *testing.T, entries map[string]identity.Entry) (*identity.Cache, *keyword.Set) {
	t.Helper()
	c := identity.NewCache()
	for k, e := range entries {
		c.Put(k, e)
	}
	return c, keyword.NewSet(t.TempDir())
}

func TestApply_ConflictMakesNoChange(t *testing.T) {
	c, set := setup(t, map[string]identity.Entry{
		"model_abc": {Fingerprint: "11111111", Filename: "abc.ckpt"},
		"lora_abc":  {Fingerprint: "22222222", Filename: "abc.safetensors"},
	})

	_, err := Apply(c, set, "abc.safetensors", "tag1|tag2")
	require.ErrorIs(t, err, ErrAmbiguousArtifact)
	assert.Zero(t, set.Layer(keyword.LayerModelUser).Len())
	assert.Zero(t, set.Layer(keyword.LayerLoraUser).Len())
	assert.False(t, set.Modified(keyword.LayerModelUser))
	assert.False(t, set.Modified(keyword.LayerLoraUser))
}

func TestApply_InsertThenDeleteModel(t *testing.T) {
	c, set := setup(t, map[string]identity.Entry{
		"model_abc": {Fingerprint: "11111111", Filename: "abc.ckpt"},
	})

	edit, err := Apply(c, set, "abc", "tag1|tag2")
	require.NoError(t, err)
	assert.Equal(t, identity.ClassModel, edit.Class)
	assert.False(t, edit.Deleted)
	assert.Equal(t, []keyword.LayerID{keyword.LayerModelUser}, edit.Layers)

	rec, ok := set.Layer(keyword.LayerModelUser).Get("11111111")
	require.True(t, ok)
	assert.Equal(t, keyword.Record{Keywords: "tag1|tag2", DisplayName: "abc.ckpt"}, rec)
	assert.Zero(t, set.Layer(keyword.LayerLoraUser).Len())

	edit, err = Apply(c, set, "abc", "")
	require.NoError(t, err)
	assert.True(t, edit.Deleted)
	assert.Equal(t, []keyword.LayerID{keyword.LayerModelUser}, edit.Layers)
	_, ok = set.Layer(keyword.LayerModelUser).Get("11111111")
	assert.False(t, ok)
}

func TestApply_InsertLora(t *testing.T) {
	c, set := setup(t, map[string]identity.Entry{
		"lora_style": {Fingerprint: "33333333", Filename: "Style.safetensors"},
	})

	_, err := Apply(c, set, "Style.safetensors", "watercolor")
	require.NoError(t, err)

	rec, ok := set.Layer(keyword.LayerLoraUser).Get("33333333")
	require.True(t, ok)
	assert.Equal(t, "watercolor", rec.Keywords)
	assert.Equal(t, "Style.safetensors", rec.DisplayName)
	assert.Zero(t, set.Layer(keyword.LayerModelUser).Len())
}

func TestApply_UpdateReplacesInPlace(t *testing.T) {
	c, set := setup(t, map[string]identity.Entry{
		"model_abc": {Fingerprint: "11111111", Filename: "abc.ckpt"},
	})
	set.Layer(keyword.LayerModelUser).Set("11111111", keyword.Record{Keywords: "old"})
	set.Layer(keyword.LayerModelUser).Set("99999999", keyword.Record{Keywords: "other"})

	_, err := Apply(c, set, "abc.ckpt", "new")
	require.NoError(t, err)

	l := set.Layer(keyword.LayerModelUser)
	assert.Equal(t, []string{"11111111", "99999999"}, l.Fingerprints())
	rec, _ := l.Get("11111111")
	assert.Equal(t, "new", rec.Keywords)
}

func TestApply_DeleteIsIdempotent(t *testing.T) {
	c, set := setup(t, map[string]identity.Entry{
		"lora_style": {Fingerprint: "33333333", Filename: "style.pt"},
	})

	edit, err := Apply(c, set, "style.pt", "")
	require.NoError(t, err)
	assert.True(t, edit.Deleted)
	assert.Empty(t, edit.Layers)
}

func TestApply_DeleteClearsBothUserLayers(t *testing.T) {
	c, set := setup(t, map[string]identity.Entry{
		"lora_style": {Fingerprint: "33333333", Filename: "style.pt"},
	})
	set.Layer(keyword.LayerModelUser).Set("33333333", keyword.Record{Keywords: "stray"})
	set.Layer(keyword.LayerLoraUser).Set("33333333", keyword.Record{Keywords: "kw"})

	edit, err := Apply(c, set, "style.pt", "")
	require.NoError(t, err)
	assert.Equal(t, []keyword.LayerID{keyword.LayerModelUser, keyword.LayerLoraUser}, edit.Layers)
	assert.Zero(t, set.Layer(keyword.LayerModelUser).Len())
	assert.Zero(t, set.Layer(keyword.LayerLoraUser).Len())
}

func TestApply_Unknown(t *testing.T) {
	c, set := setup(t, nil)
	_, err := Apply(c, set, "missing.ckpt", "kw")
	assert.ErrorIs(t, err, ErrUnknownArtifact)
}

func TestApply_RejectsComma(t *testing.T) {
	c, set := setup(t, map[string]identity.Entry{
		"model_abc": {Fingerprint: "11111111", Filename: "abc.ckpt"},
	})
	_, err := Apply(c, set, "abc.ckpt", "a, b")
	assert.ErrorIs(t, err, ErrInvalidKeywords)
	assert.Zero(t, set.Layer(keyword.LayerModelUser).Len())
}
