package identity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold lower-cases s with full Unicode case mapping. Search keys and queries
// both go through it so they compare consistently.
func Fold(s string) string {
	// A Caser carries state, so each call gets its own.
	return cases.Lower(language.Und).String(s)
}

// SearchKey returns the normalized cache key for filename under class:
// "<class>_<name>" lower-cased, where name is filename up to its first dot.
func SearchKey(class Class, filename string) string {
	stem, _, _ := strings.Cut(filename, ".")
	return Fold(string(class) + "_" + stem)
}

// BareName strips the class prefix from a search key.
func BareName(key string) string {
	_, bare, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	return bare
}

// ClassOf returns the class encoded in the prefix of a search key.
func ClassOf(key string) (Class, bool) {
	prefix, _, ok := strings.Cut(key, "_")
	if !ok {
		return "", false
	}
	switch Class(prefix) {
	case ClassModel:
		return ClassModel, true
	case ClassLora:
		return ClassLora, true
	}
	return "", false
}
