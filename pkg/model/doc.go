// Package model defines the normalized question model shared by the
// reconciler, the generator and the payload builder. Builders reside in
// internal/model but return the types defined here. A Question's Type fixes
// the shape of its answer: TEXT takes one string, RADIO, MATRIX_ROW and SCALE
// take exactly one choice, CHECKBOX takes a non-empty subset. Grid items are
// expanded into one question per row titled "<grid> / <row>". The EntryMap is
// the only long-lived artifact; unresolved identifiers hold the UnresolvedID
// placeholder until an operator supplies them from a pre-fill link.
package model
