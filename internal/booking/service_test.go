package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/backend"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/httperr"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/metrics"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

func newService(fb *fakeBackend) *Service {
	return NewService(fb, NewStore(time.Hour), nil, nil)
}

func TestService_EndToEndBooking(t *testing.T) {
	fb := &fakeBackend{
		slots:   []models.AggregatedSlot{aggregate(9, []uint{5}, []uint{42})},
		created: &models.Reservation{ID: 501, Status: models.StatusPending},
	}
	svc := newService(fb)
	ctx := context.Background()

	v, err := svc.Start(ctx, []uint{3, 7}, "2025-04-10")
	require.NoError(t, err)
	require.Len(t, v.Slots, 1)
	require.Len(t, v.Buckets, 1)

	_, err = svc.Select(v.ID, 0)
	require.NoError(t, err)
	_, err = svc.UpdateForm(v.ID, completeForm().PatchOf())
	require.NoError(t, err)

	v, err = svc.Submit(ctx, v.ID, "captcha")
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, v.State)
	assert.Equal(t, uint(501), v.ReservationID)

	require.Len(t, fb.payloads, 1)
	p := fb.payloads[0]
	assert.Equal(t, uint(42), p.SlotID)
	assert.Equal(t, uint(5), p.ProfessionalID)
	assert.Equal(t, []models.ReservationServiceLine{
		{ServiceID: 3, ProfessionalID: 5},
		{ServiceID: 7, ProfessionalID: 5},
	}, p.Services)
	assert.Equal(t, "56912345678", p.Client.Phone)
	assert.Equal(t, "ABCD12", p.Vehicle.LicensePlate)
	assert.Equal(t, uint(101), p.Address.CommuneID)
	assert.Equal(t, "captcha", p.RecaptchaToken)
}

func TestService_StartRequiresServices(t *testing.T) {
	_, err := newService(&fakeBackend{}).Start(context.Background(), nil, "2025-04-10")
	assert.True(t, httperr.IsBusiness(err, "services_required"))
}

func TestService_BackendRejectionKeepsSelection(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	fb := &fakeBackend{
		slots:     []models.AggregatedSlot{aggregate(9, []uint{5}, []uint{42})},
		createErr: &backend.Error{Status: 400, Body: `{"detail":"El slot ya fue reservado"}`},
	}
	svc := NewService(fb, NewStore(time.Hour), nil, m)
	ctx := context.Background()

	v, _ := svc.Start(ctx, []uint{3}, "2025-04-10")
	_, _ = svc.Select(v.ID, 0)
	_, _ = svc.UpdateForm(v.ID, completeForm().PatchOf())

	v, err := svc.Submit(ctx, v.ID, "captcha")
	require.Error(t, err)
	assert.Equal(t, StateSlotSelected, v.State)
	assert.Equal(t, "El slot ya fue reservado", v.LastError)

	expected := `
# HELP revitek_booking_submissions_total Reservation submissions by outcome
# TYPE revitek_booking_submissions_total counter
revitek_booking_submissions_total{outcome="failed"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "revitek_booking_submissions_total"))
}

func TestService_InvalidFormNeverReachesBackend(t *testing.T) {
	fb := &fakeBackend{slots: []models.AggregatedSlot{aggregate(9, []uint{5}, []uint{42})}}
	svc := newService(fb)
	ctx := context.Background()

	v, _ := svc.Start(ctx, []uint{3}, "2025-04-10")
	_, _ = svc.Select(v.ID, 0)

	_, err := svc.Submit(ctx, v.ID, "captcha")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, fb.payloads)
}

func TestService_LookupPrefillsAndSwallowsErrors(t *testing.T) {
	fb := &fakeBackend{
		slots: []models.AggregatedSlot{aggregate(9, []uint{5}, []uint{42})},
		lookup: &models.ClientLookup{
			Found:   true,
			Client:  &models.ClientInfo{FirstName: "Ana", LastName: "Pérez", Email: "ana@example.com"},
			Address: &models.Address{Street: "Los Leones", Number: "100"},
		},
	}
	svc := newService(fb)
	ctx := context.Background()

	v, _ := svc.Start(ctx, []uint{3}, "2025-04-10")
	_, _ = svc.Select(v.ID, 0)

	v, err := svc.Lookup(ctx, v.ID, "ana@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "Ana", v.Form.FirstName)
	assert.Equal(t, "Los Leones", v.Form.Street)
	assert.Empty(t, v.Form.LicensePlate)
	assert.Equal(t, []string{"ana@example.com|"}, fb.lookups)

	fb.lookup, fb.lookupErr = nil, &backend.Error{Status: 500}
	v, err = svc.Lookup(ctx, v.ID, "", "9 8765 4321")
	require.NoError(t, err)
	assert.Equal(t, "Ana", v.Form.FirstName)

	_, err = svc.Lookup(ctx, v.ID, "x", "12")
	require.NoError(t, err)
	assert.Len(t, fb.lookups, 2)
}

func TestService_ChangeDateRequeries(t *testing.T) {
	fb := &fakeBackend{slots: []models.AggregatedSlot{aggregate(9, []uint{5}, []uint{42})}}
	svc := newService(fb)
	ctx := context.Background()

	v, _ := svc.Start(ctx, []uint{3}, "2025-04-10")
	_, _ = svc.Select(v.ID, 0)

	fb.slots = nil
	v, err := svc.ChangeDate(ctx, v.ID, "2025-04-11")
	require.NoError(t, err)
	assert.Equal(t, StateBrowsing, v.State)
	assert.Empty(t, v.Slots)
}

func TestService_BookOnce(t *testing.T) {
	fb := &fakeBackend{created: &models.Reservation{ID: 7}}
	svc := newService(fb)

	res, err := svc.BookOnce(context.Background(), OneShot{
		Services:       []uint{3, 7},
		Fecha:          "2025-04-10",
		Slot:           aggregate(9, []uint{5, 8}, []uint{42, 43}),
		Form:           completeForm(),
		RecaptchaToken: "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), res.ID)
	require.Len(t, fb.payloads, 1)
	assert.Equal(t, uint(42), fb.payloads[0].SlotID)
	assert.Equal(t, uint(5), fb.payloads[0].ProfessionalID)
}

func TestStore_ExpiresIdleFlows(t *testing.T) {
	s := NewStore(time.Minute)
	now := time.Now()
	s.now = func() time.Time { return now }

	s.Put(NewFlow("a", []uint{1}, "2025-04-10", nil))
	_, err := s.Get("a")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = s.Get("a")
	assert.True(t, httperr.IsBusiness(err, "flow_not_found"))

	s.Put(NewFlow("b", []uint{1}, "2025-04-10", nil))
	assert.Equal(t, 1, s.Len())
}

func TestService_EmptyBackendAnswerIsNotABooking(t *testing.T) {
	fb := &fakeBackend{
		slots:   []models.AggregatedSlot{aggregate(9, []uint{5}, []uint{42})},
		created: &models.Reservation{},
	}
	svc := newService(fb)
	ctx := context.Background()

	v, _ := svc.Start(ctx, []uint{3}, "2025-04-10")
	_, _ = svc.Select(v.ID, 0)
	_, _ = svc.UpdateForm(v.ID, completeForm().PatchOf())

	v, err := svc.Submit(ctx, v.ID, "captcha")
	require.Error(t, err)
	assert.Equal(t, StateSlotSelected, v.State)
	assert.Zero(t, v.ReservationID)
	assert.NotEmpty(t, v.LastError)
	assert.Len(t, fb.payloads, 1)
}
