package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stavekit/ostinato/sequence"
)

func TestEncodingNumClasses(t *testing.T) {
	t.Run("notes and time shifts", func(t *testing.T) {
		enc := NewEncoding()
		assert.Equal(t, 356, enc.NumClasses())
		assert.Equal(t, 0, enc.VelocityBins())
	})

	t.Run("with velocity bins", func(t *testing.T) {
		enc := NewEncoding(VelocityBins(16))
		assert.Equal(t, 372, enc.NumClasses())
		assert.Equal(t, 16, enc.VelocityBins())
	})
}

func TestEncodingRoundTrip(t *testing.T) {
	enc := NewEncoding(VelocityBins(16))

	cases := []struct {
		event Event
		label int
	}{
		{event: Event{Kind: NoteOn, Value: 60}, label: 60},
		{event: Event{Kind: NoteOn, Value: 0}, label: 0},
		{event: Event{Kind: NoteOn, Value: 127}, label: 127},
		{event: Event{Kind: NoteOff, Value: 72}, label: 200},
		{event: Event{Kind: NoteOff, Value: 0}, label: 128},
		{event: Event{Kind: NoteOff, Value: 127}, label: 255},
		{event: Event{Kind: TimeShift, Value: 10}, label: 265},
		{event: Event{Kind: TimeShift, Value: 1}, label: 256},
		{event: Event{Kind: TimeShift, Value: 100}, label: 355},
		{event: Event{Kind: Velocity, Value: 5}, label: 360},
		{event: Event{Kind: Velocity, Value: 1}, label: 356},
		{event: Event{Kind: Velocity, Value: 16}, label: 371},
	}
	for _, tc := range cases {
		t.Run(tc.event.String(), func(t *testing.T) {
			label, err := enc.Encode(tc.event)
			require.NoError(t, err)
			assert.Equal(t, tc.label, label)

			event, err := enc.Decode(label)
			require.NoError(t, err)
			assert.Equal(t, tc.event, event)
		})
	}
}

func TestEncodingErrors(t *testing.T) {
	t.Run("velocity outside the vocabulary", func(t *testing.T) {
		enc := NewEncoding()

		_, err := enc.Encode(Event{Kind: Velocity, Value: 1})
		assert.ErrorIs(t, err, sequence.ErrInvalidArgument)
	})

	t.Run("value outside the kind range", func(t *testing.T) {
		enc := NewEncoding(VelocityBins(16))

		for _, event := range []Event{
			{Kind: NoteOn, Value: 128},
			{Kind: TimeShift, Value: 0},
			{Kind: Velocity, Value: 17},
		} {
			_, err := enc.Encode(event)
			assert.ErrorIs(t, err, sequence.ErrInvalidArgument, "%s", event)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		enc := NewEncoding()

		_, err := enc.Encode(Event{Kind: Kind(9), Value: 1})
		assert.ErrorIs(t, err, sequence.ErrInvalidArgument)
	})

	t.Run("label outside the label space", func(t *testing.T) {
		enc := NewEncoding(VelocityBins(16))

		for _, label := range []int{-1, 372} {
			_, err := enc.Decode(label)
			assert.ErrorIs(t, err, sequence.ErrInvalidArgument, "label %d", label)
		}
	})
}

func TestEncodingDefaultEvent(t *testing.T) {
	enc := NewEncoding()

	label, err := enc.Encode(enc.DefaultEvent())
	require.NoError(t, err)
	assert.Equal(t, 355, label)
}

func TestEncodingLabels(t *testing.T) {
	enc := NewEncoding()

	t.Run("encodes a stream in order", func(t *testing.T) {
		seq := sequence.FromEvents(DefaultEvent(), []Event{
			{Kind: NoteOn, Value: 60},
			{Kind: TimeShift, Value: 10},
			{Kind: NoteOff, Value: 60},
		})

		labels, err := enc.Labels(seq)
		require.NoError(t, err)
		assert.Equal(t, []int{60, 265, 188}, labels)
	})

	t.Run("reports the position of the first bad event", func(t *testing.T) {
		seq := sequence.FromEvents(DefaultEvent(), []Event{
			{Kind: NoteOn, Value: 60},
			{Kind: Velocity, Value: 1},
		})

		_, err := enc.Labels(seq)
		require.ErrorIs(t, err, sequence.ErrInvalidArgument)
		assert.ErrorContains(t, err, "event 1")
	})
}
