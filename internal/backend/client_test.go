package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(ts.URL, time.Second, nil, nil)
}

func TestClient_Availability_PostsSelection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/agenda/availability", r.URL.Path)

		var body models.AvailabilityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []uint{3, 7}, body.Services)
		assert.Equal(t, "2025-04-10", body.Fecha)

		_, _ = w.Write([]byte(`[{"inicio":"2025-04-10T09:00","fin":"2025-04-10T10:00","professionals":[5],"slot_ids":[42]}]`))
	})

	slots, err := client.Availability(context.Background(), models.AvailabilityRequest{Services: []uint{3, 7}, Fecha: "2025-04-10"})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, []uint{5}, slots[0].Professionals)
	assert.Equal(t, []uint{42}, slots[0].SlotIDs)
	assert.Equal(t, "09:00", slots[0].Start.Clock())
}

func TestClient_Availability_EnvelopedList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"slots":[{"inicio":"2025-04-10T15:00","fin":"2025-04-10T16:00","professionals":[2],"slot_ids":[8]}]}`))
	})

	slots, err := client.Availability(context.Background(), models.AvailabilityRequest{Services: []uint{1}, Fecha: "2025-04-10"})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "15:00", slots[0].Start.Clock())
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var got string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	_, err := client.WithToken("abc.def.ghi").ListReservations(context.Background(), models.ReservationFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc.def.ghi", got)

	_, err = client.ListReservations(context.Background(), models.ReservationFilter{})
	require.NoError(t, err)
	assert.Empty(t, got, "base client must stay anonymous")
}

func TestClient_ListReservations_Filters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2025-04-10", q.Get("fecha"))
		assert.Equal(t, "PENDING", q.Get("status"))
		assert.Equal(t, "4", q.Get("profesional_id"))
		assert.Equal(t, "true", q.Get("include_cancelled"))
		_, _ = w.Write([]byte(`[{"id":9,"status":"PENDING","slots_summary":null}]`))
	})

	out, err := client.ListReservations(context.Background(), models.ReservationFilter{
		Fecha: "2025-04-10", Status: models.StatusPending, ProfessionalID: 4, IncludeCancelled: true,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, uint(9), out[0].ID)
}

func TestClient_ErrorKeepsRawBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"slot_id":["Slot no disponible"]}`))
	})

	_, err := client.CreateReservation(context.Background(), models.CreateReservationRequest{SlotID: 1})
	require.Error(t, err)

	var be *Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusBadRequest, be.Status)
	assert.Equal(t, `{"slot_id":["Slot no disponible"]}`, be.Message())
}

func TestError_MessagePrefersDetail(t *testing.T) {
	e := &Error{Status: 403, Body: `{"detail":"No autorizado"}`}
	assert.Equal(t, "No autorizado", e.Message())

	empty := &Error{Status: 502}
	assert.Equal(t, "Bad Gateway", empty.Message())
}

func TestClient_LookupNotFoundIsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "56912345678", r.URL.Query().Get("phone"))
		http.NotFound(w, r)
	})

	res, err := client.LookupClient(context.Background(), "", "56912345678")
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestClient_LookupMarksFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"client":{"first_name":"Ana"}}`))
	})

	res, err := client.LookupClient(context.Background(), "ana@revitek.cl", "")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "Ana", res.Client.FirstName)
}

func TestClient_CompleteSendsNote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/agenda/reservas/12/complete/", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"note":"Cambio de aceite ok"}`, string(b))
		_, _ = w.Write([]byte(`{"id":12,"status":"COMPLETED"}`))
	})

	r, err := client.CompleteReservation(context.Background(), 12, "Cambio de aceite ok")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, r.Status)
}

func TestClient_LoginRequiresAccessToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"refresh":"only-refresh"}`))
	})

	_, err := client.Login(context.Background(), models.LoginRequest{Email: "a@b.cl", Password: "x"})
	assert.Error(t, err)
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.ListProfessionals(ctx)
	assert.Error(t, err)
}
