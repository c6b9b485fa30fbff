package booking

import (
	"context"
	"sync"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

type fakeBackend struct {
	mu sync.Mutex

	slots    []models.AggregatedSlot
	availErr error

	lookup    *models.ClientLookup
	lookupErr error
	lookups   []string

	created   *models.Reservation
	createErr error
	payloads  []models.CreateReservationRequest
}

func (f *fakeBackend) Availability(_ context.Context, _ models.AvailabilityRequest) ([]models.AggregatedSlot, error) {
	if f.availErr != nil {
		return nil, f.availErr
	}
	return append([]models.AggregatedSlot(nil), f.slots...), nil
}

func (f *fakeBackend) LookupClient(_ context.Context, email, phone string) (*models.ClientLookup, error) {
	f.mu.Lock()
	f.lookups = append(f.lookups, email+"|"+phone)
	f.mu.Unlock()
	return f.lookup, f.lookupErr
}

func (f *fakeBackend) CreateReservation(_ context.Context, in models.CreateReservationRequest) (*models.Reservation, error) {
	f.mu.Lock()
	f.payloads = append(f.payloads, in)
	f.mu.Unlock()
	return f.created, f.createErr
}

func aggregate(hour int, professionals, slotIDs []uint) models.AggregatedSlot {
	return models.AggregatedSlot{
		Start:         models.Floating(2025, 4, 10, hour, 0),
		End:           models.Floating(2025, 4, 10, hour+1, 0),
		Professionals: professionals,
		SlotIDs:       slotIDs,
	}
}

func completeForm() Form {
	return Form{
		FirstName:    "Ana",
		LastName:     "Pérez",
		Email:        "ana@example.com",
		Phone:        "+56 9 1234 5678",
		RegionID:     13,
		CommuneID:    101,
		Street:       "Av. Siempre Viva",
		Number:       "742",
		LicensePlate: "ab-cd 12",
		Brand:        "Toyota",
		Model:        "Yaris",
	}
}
