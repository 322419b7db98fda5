// Package table defines the core data model for the tidy-reshape pipeline:
// an ordered Table of tagged cell Values and the error taxonomy shared by
// sources, rules, and sinks.
//
// # Tidy data
//
// A table is tidy when each column holds one variable, each row one
// observation, and each cell one atomic value. Sources produce raw tables
// with no tidiness guarantees (duplicate headers, blank separator rows,
// combined tokens); the rules in package rules progressively reshape them.
//
// # Value semantics
//
// Cells are a tagged union of string, number, and missing. Raw sources
// deliver strings only; coerce_type and normalize_null introduce numbers and
// the explicit missing marker. An empty string and missing are distinct
// states; scraped tables often carry semantically empty strings that must
// be normalized deliberately rather than silently.
package table
