/*
Package ostinato drives black-box music generators over compact event-sequence
containers.

The module splits into a small set of focused packages:

  - sequence: the core containers, dense event streams and their run-length
    encoded form, with step-grid bookkeeping, two-sided resizing, and a JSON
    wire form
  - performance: typed performance events (note on/off, time shift, velocity),
    the one-hot vocabulary mapping events onto class labels, and the generator
    registry
  - ostinato (this package): the generation loop that repeatedly asks a
    Generator for more events until a sequence reaches a requested length

# Basic Usage

A typical run primes a sequence, picks a generator, and lets the loop fill in
the rest:

	primer := sequence.FromEvents(performance.DefaultEvent(), phrase,
		sequence.StartStep(0))

	build, _ := performance.LookupGenerator("phrase-loop")
	score, err := ostinato.Generate(ctx, build(), primer, 64,
		ostinato.WithHook(ostinato.LoggingHook(slog.Default())))
	if err != nil {
		// Handle error
	}

The loop tracks progress per turn, aborts on generators that stall, trims any
overshoot so the result covers exactly the requested number of steps, and
reports turn-by-turn progress through a Hook.

# Thread Safety

Sequences are plain mutable values and must not be shared across goroutines
without external synchronization. The generator registry is safe for
concurrent use. Hooks run synchronously on the generation goroutine and must
not block.
*/
package ostinato
