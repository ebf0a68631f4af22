package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/kwfinder/internal/identity"
	"github.com/kamusis/kwfinder/internal/keyword"
)

func TestNearMatch(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		want    bool
	}{
		{"anything", "anything_v2", true},
		{"anythign", "anything_v2", true},  // trailing rune dropped
		{"anyxhing", "anything_v2", true},  // substitution
		{"anthing", "anything_v2", true},   // insertion into pattern
		{"thing_v", "anything_v2", true},   // interior substring
		{"anyhtign", "anything_v2", false}, // two edits
		{"zzzzz", "anything_v2", false},
		{"z", "anything_v2", true},
		{"", "anything_v2", true},
		{"längs", "xlangsx", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, NearMatch(tt.pattern, tt.text, 1))
		})
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("anything_v2", "anyth"))
	assert.True(t, Matches("anything_v2", "anythign"))
	assert.False(t, Matches("anything_v2", "zzzzz"))
	assert.True(t, Matches("anything_v2", ""))
}

func newCache(entries map[string]identity.Entry) *identity.Cache {
	c := identity.NewCache()
	for k, e := range entries {
		c.Put(k, e)
	}
	return c
}

func TestResolve_EndToEnd(t *testing.T) {
	c := newCache(map[string]identity.Entry{
		"model_foo": {Fingerprint: "aabbccdd", Filename: "foo.safetensors"},
	})
	set := keyword.NewSet(t.TempDir())
	set.Layer(keyword.LayerModel).Set("aabbccdd", keyword.Record{Keywords: "cinematic, portrait"})

	out := Resolve(c, set, "foo")

	assert.Equal(t, 1, out.Installed())
	assert.Equal(t, 1, out.KeywordMatches())
	assert.Empty(t, out.Unresolved)
	assert.Equal(t, len("foo.safetensors"), out.MaxNameLen)
	require.Len(t, out.RowsIn(keyword.LayerModel), 1)
	assert.Equal(t, Row{
		Layer:       keyword.LayerModel,
		Filename:    "foo.safetensors",
		Fingerprint: "aabbccdd",
		Keywords:    "cinematic, portrait",
	}, out.Rows[0])
}

func TestResolve_AllLayersContribute(t *testing.T) {
	c := newCache(map[string]identity.Entry{
		"model_anything_v2":  {Fingerprint: "11111111", Filename: "Anything_V2.ckpt"},
		"lora_anythingstyle": {Fingerprint: "22222222", Filename: "AnythingStyle.safetensors"},
		"lora_unrelated":     {Fingerprint: "33333333", Filename: "unrelated.pt"},
	})
	set := keyword.NewSet(t.TempDir())
	set.Layer(keyword.LayerLoraUser).Set("22222222", keyword.Record{Keywords: "mine"})
	set.Layer(keyword.LayerModelUser).Set("11111111", keyword.Record{Keywords: "override", DisplayName: "Anything_V2.ckpt"})
	set.Layer(keyword.LayerModel).Set("11111111", keyword.Record{Keywords: "builtin"})

	out := Resolve(c, set, "ANYTH")

	assert.Equal(t, "anyth", out.Query)
	assert.Equal(t, 2, out.Installed())
	assert.Equal(t, 3, out.KeywordMatches())
	assert.Empty(t, out.Unresolved)

	var layers []keyword.LayerID
	for _, r := range out.Rows {
		layers = append(layers, r.Layer)
	}
	assert.Equal(t, []keyword.LayerID{keyword.LayerModel, keyword.LayerModelUser, keyword.LayerLoraUser}, layers)
}

func TestResolve_Unresolved(t *testing.T) {
	c := newCache(map[string]identity.Entry{
		"model_anything_v2": {Fingerprint: "11111111", Filename: "anything_v2.ckpt"},
	})
	set := keyword.NewSet(t.TempDir())

	out := Resolve(c, set, "anythign")
	assert.Equal(t, 1, out.Installed())
	assert.Zero(t, out.KeywordMatches())
	assert.Equal(t, []Match{{Fingerprint: "11111111", Filename: "anything_v2.ckpt"}}, out.Unresolved)
}

func TestResolve_NoMatches(t *testing.T) {
	c := newCache(map[string]identity.Entry{
		"model_anything_v2": {Fingerprint: "11111111", Filename: "anything_v2.ckpt"},
	})
	out := Resolve(c, keyword.NewSet(t.TempDir()), "zzzzz")

	assert.Zero(t, out.Installed())
	assert.Zero(t, out.KeywordMatches())
	assert.Zero(t, out.MaxNameLen)
	assert.Empty(t, out.Rows)
	assert.Empty(t, out.Unresolved)
}

func TestResolve_EmptyQueryMatchesAll(t *testing.T) {
	c := newCache(map[string]identity.Entry{
		"model_a": {Fingerprint: "1", Filename: "a.ckpt"},
		"lora_b":  {Fingerprint: "2", Filename: "b.pt"},
	})
	out := Resolve(c, keyword.NewSet(t.TempDir()), "")
	assert.Equal(t, 2, out.Installed())
	assert.Len(t, out.Unresolved, 2)
}
