package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

func TestAvailability_EmptyInputsSkipBackend(t *testing.T) {
	fb := &fakeBackend{availErr: errors.New("must not be called")}
	a := NewAvailability(fb, nil)

	assert.Empty(t, a.Query(context.Background(), nil, "2025-04-10"))
	assert.Empty(t, a.Query(context.Background(), []uint{3}, ""))
}

func TestAvailability_BackendFailureReadsAsNoSlots(t *testing.T) {
	a := NewAvailability(&fakeBackend{availErr: errors.New("boom")}, nil)

	slots := a.Query(context.Background(), []uint{3}, "2025-04-10")
	require.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestAvailability_SortsByStart(t *testing.T) {
	fb := &fakeBackend{slots: []models.AggregatedSlot{
		aggregate(15, []uint{1}, []uint{30}),
		aggregate(9, []uint{1}, []uint{10}),
		aggregate(11, []uint{2}, []uint{20}),
	}}

	slots := NewAvailability(fb, nil).Query(context.Background(), []uint{3}, "2025-04-10")
	require.Len(t, slots, 3)
	assert.Equal(t, "09:00", slots[0].Start.Clock())
	assert.Equal(t, "11:00", slots[1].Start.Clock())
	assert.Equal(t, "15:00", slots[2].Start.Clock())
}
