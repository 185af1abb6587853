package performance

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stavekit/ostinato/sequence"
)

func TestEventConstructors(t *testing.T) {
	t.Run("note on", func(t *testing.T) {
		event, err := NewNoteOn(60)
		require.NoError(t, err)
		assert.Equal(t, Event{Kind: NoteOn, Value: 60}, event)

		for _, pitch := range []int{-1, 128} {
			_, err := NewNoteOn(pitch)
			assert.ErrorIs(t, err, sequence.ErrInvalidArgument, "pitch %d", pitch)
		}
	})

	t.Run("note off", func(t *testing.T) {
		event, err := NewNoteOff(127)
		require.NoError(t, err)
		assert.Equal(t, Event{Kind: NoteOff, Value: 127}, event)

		_, err = NewNoteOff(200)
		assert.ErrorIs(t, err, sequence.ErrInvalidArgument)
	})

	t.Run("time shift", func(t *testing.T) {
		event, err := NewTimeShift(1)
		require.NoError(t, err)
		assert.Equal(t, Event{Kind: TimeShift, Value: 1}, event)

		for _, steps := range []int{0, MaxShiftSteps + 1} {
			_, err := NewTimeShift(steps)
			assert.ErrorIs(t, err, sequence.ErrInvalidArgument, "steps %d", steps)
		}
	})

	t.Run("velocity", func(t *testing.T) {
		event, err := NewVelocity(5)
		require.NoError(t, err)
		assert.Equal(t, Event{Kind: Velocity, Value: 5}, event)

		_, err = NewVelocity(0)
		assert.ErrorIs(t, err, sequence.ErrInvalidArgument)
	})
}

func TestDefaultEvent(t *testing.T) {
	assert.Equal(t, Event{Kind: TimeShift, Value: MaxShiftSteps}, DefaultEvent())
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "note_on(60)", Event{Kind: NoteOn, Value: 60}.String())
	assert.Equal(t, "time_shift(100)", DefaultEvent().String())
	assert.Equal(t, "kind(9)(1)", Event{Kind: Kind(9), Value: 1}.String())
}

func TestEventJSON(t *testing.T) {
	t.Run("kinds marshal as text", func(t *testing.T) {
		data, err := json.Marshal(Event{Kind: NoteOff, Value: 72})
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"note_off","value":72}`, string(data))
	})

	t.Run("round trips", func(t *testing.T) {
		want := Event{Kind: Velocity, Value: 3}
		data, err := json.Marshal(want)
		require.NoError(t, err)

		var got Event
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, want, got)
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		var got Event
		err := json.Unmarshal([]byte(`{"kind":"note_between","value":1}`), &got)
		require.Error(t, err)
	})
}

func TestEventInSequenceContainers(t *testing.T) {
	pad := DefaultEvent()
	noteOn, err := NewNoteOn(64)
	require.NoError(t, err)
	noteOff, err := NewNoteOff(64)
	require.NoError(t, err)

	seq := sequence.FromEvents(pad, []Event{noteOn, noteOff})
	require.NoError(t, seq.SetLength(4, sequence.Right))
	assert.Equal(t, []Event{noteOn, noteOff, pad, pad}, seq.Events())

	encoded, err := sequence.Encode(seq, 2, sequence.PadRunsOnly())
	require.NoError(t, err)
	assert.Equal(t, []sequence.Run[Event]{
		{Event: noteOn, Length: 1},
		{Event: noteOff, Length: 1},
		{Event: pad, Length: 2},
	}, encoded.Runs())
}
