// Package orchestrator wires the loader → normalizer → reconciler → generator
// → payload builder pipeline, persisting the entry map between runs and
// collecting the issues raised along the way.
package orchestrator
