package uuidx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	id := New()
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, uuid.RFC4122, id.Variant())
	assert.NotEqual(t, id, New())
}

func TestNewOrdering(t *testing.T) {
	first := New()
	second := New()
	assert.LessOrEqual(t, first.String(), second.String(),
		"v7 identifiers sort by creation time")
}
