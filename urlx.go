// Package urlx extracts URLs (or any other string lists) from mixed
// HTML/JSON/XML text by chaining extraction strategies and cleanup filters.
// It also provides a path index over nested JSON-like trees that answers
// exact and regular-expression path queries.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., htmlquery/, goquery/, etree/).
package urlx
