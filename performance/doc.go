// Package performance models polyphonic performances as streams of typed
// events: note onsets, note releases, clock advances, and velocity changes.
// It supplies the one-hot vocabulary that maps events onto dense class
// labels for a sequence generator, and a process-wide registry where
// generator implementations announce themselves by id.
package performance
