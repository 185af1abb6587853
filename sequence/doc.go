// Package sequence implements the event-sequence containers at the heart of
// ostinato: dense streams of quantized musical events and their run-length
// encoded form.
//
// The package defines two containers sharing one capability set:
//
//   - Events is a dense, indexable stream of opaque events anchored at an
//     absolute step offset on the quantized grid. It supports appending,
//     resizing from either end with a reserved pad event, and uniform
//     resolution upscaling.
//   - RunLength is a compressed view over an Events stream. It stores
//     (event, run length) pairs instead of raw events, bounds every run by a
//     maximum run length fixed at construction, and can re-expand losslessly
//     into a fresh Events stream.
//
// Both containers are value-agnostic: an event is any comparable Go value,
// and the package never inspects event meaning beyond equality. One value per
// container instance is reserved as the pad event and used only as fill
// material when a sequence grows.
//
// A RunLength sequence is kept in canonical form: two adjacent runs never
// share the same event unless the earlier run is already at the maximum run
// length. Resizing re-establishes canonical form unconditionally. When the
// codec is built with PadRunsOnly, only pad-event runs are merged and split;
// every non-pad event occupies a run of length one.
//
// Containers are plain mutable values. They perform no locking and must not
// be mutated concurrently; Clone is the only supported way to hand a second
// owner independent mutable state.
package sequence
