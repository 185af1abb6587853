package performance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stavekit/ostinato"
	"github.com/stavekit/ostinato/sequence"
)

// padFactory builds a generator that fills the sequence with pad events.
func padFactory() ostinato.Generator[Event] {
	return ostinato.GeneratorFunc[Event](func(_ context.Context, seq *sequence.Events[Event], target int) (*sequence.Events[Event], error) {
		for seq.Len() < target {
			if err := seq.Append(DefaultEvent()); err != nil {
				return nil, err
			}
		}
		return seq, nil
	})
}

func TestGeneratorRegistry(t *testing.T) {
	RegisterGenerator("test-pad", padFactory)
	RegisterGenerator("test-another", padFactory)
	t.Cleanup(func() {
		DeregisterGenerator("test-pad")
		DeregisterGenerator("test-another")
	})

	t.Run("lookup finds registered factories", func(t *testing.T) {
		factory, ok := LookupGenerator("test-pad")
		require.True(t, ok)
		require.NotNil(t, factory)

		seq, err := factory().Generate(context.Background(), sequence.New(DefaultEvent()), 3)
		require.NoError(t, err)
		assert.Equal(t, 3, seq.Len())
	})

	t.Run("lookup misses unknown ids", func(t *testing.T) {
		_, ok := LookupGenerator("test-missing")
		assert.False(t, ok)
	})

	t.Run("lists ids in lexical order", func(t *testing.T) {
		assert.Equal(t, []string{"test-another", "test-pad"}, Generators())
	})

	t.Run("deregister removes the factory", func(t *testing.T) {
		RegisterGenerator("test-transient", padFactory)
		DeregisterGenerator("test-transient")

		_, ok := LookupGenerator("test-transient")
		assert.False(t, ok)
	})
}
