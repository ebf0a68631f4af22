// Package keyword loads and persists the keyword stores published by the
// model-keyword extension, plus the user override stores kept alongside them.
//
// Each store is a line-oriented file:
//
//	<fingerprint>, <keywords>[, <display name>]
//
// Lines starting with '#' are comments.
package keyword

import (
	"bytes"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/kamusis/kwfinder/internal/identity"
)

// LayerID names one of the four keyword layers.
type LayerID string

const (
	LayerModel     LayerID = "model"
	LayerModelUser LayerID = "model_u"
	LayerLora      LayerID = "lora"
	LayerLoraUser  LayerID = "lora_u"
)

// Layers lists every layer in display order: built-in before user override,
// models before loras.
var Layers = []LayerID{LayerModel, LayerModelUser, LayerLora, LayerLoraUser}

// File returns the store filename backing the layer.
func (id LayerID) File() string {
	switch id {
	case LayerModel:
		return "model-keyword.txt"
	case LayerModelUser:
		return "custom-mappings.txt"
	case LayerLora:
		return "lora-keyword.txt"
	case LayerLoraUser:
		return "lora-keyword-user.txt"
	}
	return ""
}

// Class returns the artifact class the layer describes.
func (id LayerID) Class() identity.Class {
	if id == LayerLora || id == LayerLoraUser {
		return identity.ClassLora
	}
	return identity.ClassModel
}

// User reports whether the layer is a user-editable override.
func (id LayerID) User() bool {
	return id == LayerModelUser || id == LayerLoraUser
}

// UserLayer returns the override layer for class.
func UserLayer(class identity.Class) LayerID {
	if class == identity.ClassLora {
		return LayerLoraUser
	}
	return LayerModelUser
}

// Record holds the keyword data for one fingerprint.
type Record struct {
	// Keywords is stored verbatim; sub-keywords separated by "|" are not
	// interpreted here.
	Keywords string

	// DisplayName is optional; empty means absent.
	DisplayName string
}

// Layer is an insertion-ordered mapping from fingerprint to Record.
// Replacing a record keeps its position; new records are appended.
type Layer struct {
	order   []string
	records map[string]Record
}

// NewLayer returns an empty layer.
func NewLayer() *Layer {
	return &Layer{records: make(map[string]Record)}
}

// Get looks up fingerprint. Absence is not an error.
func (l *Layer) Get(fingerprint string) (Record, bool) {
	r, ok := l.records[fingerprint]
	return r, ok
}

// Set inserts or replaces the record for fingerprint.
func (l *Layer) Set(fingerprint string, r Record) {
	if _, ok := l.records[fingerprint]; !ok {
		l.order = append(l.order, fingerprint)
	}
	l.records[fingerprint] = r
}

// Delete removes fingerprint and reports whether it was present.
func (l *Layer) Delete(fingerprint string) bool {
	if _, ok := l.records[fingerprint]; !ok {
		return false
	}
	delete(l.records, fingerprint)
	if i := slices.Index(l.order, fingerprint); i >= 0 {
		l.order = slices.Delete(l.order, i, i+1)
	}
	return true
}

// Len returns the number of records.
func (l *Layer) Len() int {
	return len(l.order)
}

// Fingerprints returns the keys in layer order.
func (l *Layer) Fingerprints() []string {
	return slices.Clone(l.order)
}

// Encode renders the layer in store file format.
func (l *Layer) Encode() []byte {
	var buf bytes.Buffer
	for _, fp := range l.order {
		buf.WriteString(formatLine(fp, l.records[fp]))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Digest returns a hash of the encoded layer, used to detect edits.
func (l *Layer) Digest() uint64 {
	return xxhash.Sum64(l.Encode())
}
