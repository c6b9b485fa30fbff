package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_FloatingRoundTrip(t *testing.T) {
	var slot AggregatedSlot
	err := json.Unmarshal([]byte(`{"inicio":"2025-04-10T09:00","fin":"2025-04-10T10:00","professionals":[5],"slot_ids":[42]}`), &slot)
	require.NoError(t, err)

	assert.Equal(t, "09:00", slot.Start.Clock())
	assert.Equal(t, time.April, slot.End.Month())

	out, err := json.Marshal(slot)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"inicio":"2025-04-10T09:00:00"`)
}

func TestTimestamp_WithOffset(t *testing.T) {
	ts, err := ParseTimestamp("2025-04-10T09:00:00-04:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-04-10T09:00:00-04:00", ts.String())
}

func TestTimestamp_NullAndGarbage(t *testing.T) {
	var r Reservation
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"created_at":null,"slots_summary":null}`), &r))
	assert.True(t, r.CreatedAt.IsZero())
	assert.Nil(t, r.SlotsSummary)

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"tomorrow"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12`), &ts))
}

func TestReservation_EffectiveAddressFallsBack(t *testing.T) {
	r := Reservation{
		ClientAddresses: []Address{{Street: "Av. Matta", Number: "120"}, {Street: "Otra", Number: "1"}},
		ClientVehicles:  []Vehicle{{LicensePlate: "ABCD12"}},
	}

	require.NotNil(t, r.EffectiveAddress())
	assert.Equal(t, "Av. Matta", r.EffectiveAddress().Street)
	assert.Equal(t, "ABCD12", r.EffectiveVehicle().LicensePlate)

	r.Address = &Address{Street: "Los Leones"}
	assert.Equal(t, "Los Leones", r.EffectiveAddress().Street)

	assert.Nil(t, Reservation{}.EffectiveAddress())
	assert.Nil(t, Reservation{}.EffectiveVehicle())
}

func TestReservationStatus_Valid(t *testing.T) {
	assert.True(t, StatusWaitingClient.Valid())
	assert.False(t, ReservationStatus("ARCHIVED").Valid())
}
