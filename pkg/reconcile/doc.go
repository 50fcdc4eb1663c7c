// Package reconcile merges freshly normalized questions into a persisted
// entry map. New titles receive the "<TO ADD>" placeholder, known titles keep
// their identifiers and titles missing from the schema are retained until
// Prune removes them. ApplyPrefill harvests identifiers from the fields of a
// pre-fill link.
package reconcile
