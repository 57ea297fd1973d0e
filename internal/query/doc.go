// Package query turns raw task listing requests into store-ready filters
// and pages results. It owns the fuzzy title pattern, the exact-match
// predicates, the inclusive due-date range, the sort allow-list and the
// offset/limit arithmetic.
package query
