// Package processors enriches a single operation from one aspect of an
// observed exchange: path segments, headers, request body, query string and
// the response stream.
//
// Every processor mutates the operation in place and never overwrites data
// that was already recorded. Errors are returned rather than raised; callers
// treat them as "skip this enrichment".
package processors
