// Package store persists entry maps as JSON, YAML or SQLite.
package store
