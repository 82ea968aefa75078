// Package filter compiles the recognized request filters into the
// OData expression understood by the search backend.
package filter

import (
	"fmt"
	"strings"
)

// Recognized filter keys, in compile order.
const (
	KeyAuthor   = "author"
	KeyCategory = "category"
	KeyDate     = "date"
)

// Set holds the recognized equality filters (immutable value object).
// Blank values mean the filter is absent.
type Set struct {
	author   string
	category string
	date     string
}

// New creates a filter Set. Values that are empty or whitespace-only
// are treated as absent.
func New(author, category, date string) Set {
	return Set{
		author:   normalize(author),
		category: normalize(category),
		date:     normalize(date),
	}
}

// Author returns the author filter value.
func (s Set) Author() string { return s.author }

// Category returns the category filter value.
func (s Set) Category() string { return s.category }

// Date returns the date filter value.
func (s Set) Date() string { return s.date }

// IsEmpty reports whether no filter is present.
func (s Set) IsEmpty() bool {
	return s.author == "" && s.category == "" && s.date == ""
}

// Compile renders the backend filter expression: one "key eq 'value'"
// clause per present filter, joined with " and ", in fixed key order
// (author, category, date). Single quotes in values are doubled so the
// value cannot terminate the string literal. Returns "" for an empty set.
func (s Set) Compile() string {
	parts := make([]string, 0, 3)
	for _, kv := range []struct{ key, value string }{
		{KeyAuthor, s.author},
		{KeyCategory, s.category},
		{KeyDate, s.date},
	} {
		if kv.value == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s eq '%s'", kv.key, escape(kv.value)))
	}
	return strings.Join(parts, " and ")
}

func normalize(v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}

func escape(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}
