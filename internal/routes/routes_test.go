package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/admin"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/backend"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/booking"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/config"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/session"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
	validators.RegisterGin()
}

// upstream fakes the agenda backend.
type upstream struct {
	mu         sync.Mutex
	created    []models.CreateReservationRequest
	listQuery  []string
	authHeaders []string
}

func (u *upstream) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/agenda/availability", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"inicio":"2025-04-10T09:00","fin":"2025-04-10T10:00","professionals":[5],"slot_ids":[42]}]`))
	})

	mux.HandleFunc("/api/agenda/reservas/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var body models.CreateReservationRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			u.mu.Lock()
			u.created = append(u.created, body)
			u.mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":501,"status":"PENDING"}`))
		case http.MethodGet:
			u.mu.Lock()
			u.listQuery = append(u.listQuery, r.URL.RawQuery)
			u.mu.Unlock()
			if r.URL.Query().Get("status") == "CANCELLED" && r.URL.Query().Get("include_cancelled") == "true" {
				_, _ = w.Write([]byte(`[{"id":3,"status":"CANCELLED"},{"id":4,"status":"CANCELLED"}]`))
				return
			}
			_, _ = w.Write([]byte(`[]`))
		}
	})

	mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		var body models.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Credenciales inválidas"}`))
			return
		}
		tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": 1, "name": "Admin", "email": body.Email, "is_staff": true,
		}).SignedString([]byte("k"))
		_ = json.NewEncoder(w).Encode(map[string]string{"access": tok, "refresh": "r"})
	})

	mux.HandleFunc("/api/catalog/services/", func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.authHeaders = append(u.authHeaders, r.Header.Get("Authorization"))
		u.mu.Unlock()
		var body models.Service
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		body.ID = 9
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	})

	mux.HandleFunc("/agenda/confirm/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/agenda/confirm/abc/" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Enlace inválido"}`))
			return
		}
		_, _ = w.Write([]byte(`{"reservation_id":501,"status":"CONFIRMED","message":"ok"}`))
	})

	return mux
}

func newRouter(t *testing.T, up *upstream) *gin.Engine {
	t.Helper()
	ts := httptest.NewServer(up.handler(t))
	t.Cleanup(ts.Close)

	cfg := &config.Config{
		Env:              "test",
		Timezone:         "America/Santiago",
		SessionTTL:       time.Hour,
		PublicRatePerMin: 1000,
	}
	api := backend.New(ts.URL, time.Second, nil, nil)

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:   cfg,
		Logger:   zap.NewNop(),
		API:      api,
		Sessions: session.NewManager(session.NewMemoryStore(time.Hour), nil),
		Bookings: booking.NewService(api, booking.NewStore(time.Hour), nil, nil),
		Admins:   admin.NewRegistry(admin.Deps{}, time.Hour),
	})
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestBookingFlowEndToEnd(t *testing.T) {
	up := &upstream{}
	r := newRouter(t, up)

	w := do(t, r, http.MethodPost, "/api/public/bookings", map[string]any{"services": []uint{3, 7}, "fecha": "2025-04-10"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	view := decode[booking.View](t, w)
	require.Len(t, view.Slots, 1)

	w = do(t, r, http.MethodPost, "/api/public/bookings/"+view.ID+"/select", map[string]any{"index": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/public/bookings/"+view.ID+"/submit", map[string]any{"recaptcha_token": "tok"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")

	w = do(t, r, http.MethodPatch, "/api/public/bookings/"+view.ID+"/form", map[string]any{
		"first_name": "Ana", "last_name": "Pérez", "email": "ana@example.com", "phone": "+56 9 1234 5678",
		"region_id": 13, "commune_id": 101, "street": "Los Leones", "number": "100",
		"license_plate": "abcd12", "brand": "Kia", "model": "Rio",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/public/bookings/"+view.ID+"/submit", map[string]any{"recaptcha_token": "tok"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	view = decode[booking.View](t, w)
	assert.Equal(t, booking.StateSubmitted, view.State)
	assert.Equal(t, uint(501), view.ReservationID)

	require.Len(t, up.created, 1)
	p := up.created[0]
	assert.Equal(t, uint(42), p.SlotID)
	assert.Equal(t, uint(5), p.ProfessionalID)
	assert.Equal(t, []models.ReservationServiceLine{
		{ServiceID: 3, ProfessionalID: 5},
		{ServiceID: 7, ProfessionalID: 5},
	}, p.Services)

	w = do(t, r, http.MethodPost, "/api/public/bookings/"+view.ID+"/submit", map[string]any{"recaptcha_token": "tok"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPublicAvailabilityBuckets(t *testing.T) {
	r := newRouter(t, &upstream{})

	w := do(t, r, http.MethodPost, "/api/public/availability", map[string]any{"services": []uint{3}, "fecha": "2025-04-10"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		Slots   []models.AggregatedSlot `json:"slots"`
		Buckets []struct {
			Period string `json:"period"`
		} `json:"buckets"`
	}](t, w)
	require.Len(t, body.Slots, 1)
	require.Len(t, body.Buckets, 1)
	assert.Equal(t, "morning", body.Buckets[0].Period)
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@revitek.cl", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[struct {
		SessionID string `json:"session_id"`
	}](t, w)
	require.NotEmpty(t, out.SessionID)
	return "Bearer " + out.SessionID
}

func TestAdminCatalogForwardsAccessToken(t *testing.T) {
	up := &upstream{}
	r := newRouter(t, up)
	bearer := login(t, r)

	w := do(t, r, http.MethodPost, "/api/admin/services", map[string]any{"name": "Lavado"}, "Authorization", bearer)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "duration_min")
	assert.Empty(t, up.authHeaders)

	w = do(t, r, http.MethodPost, "/api/admin/services", map[string]any{"name": "Lavado", "duration_min": 60, "price": 15000}, "Authorization", bearer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	svc := decode[models.Service](t, w)
	assert.Equal(t, uint(9), svc.ID)

	require.Len(t, up.authHeaders, 1)
	assert.True(t, len(up.authHeaders[0]) > len("Bearer "))
	assert.NotEqual(t, bearer, up.authHeaders[0])
}

func TestPublicConfirm(t *testing.T) {
	r := newRouter(t, &upstream{})

	w := do(t, r, http.MethodGet, "/api/public/confirm/abc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CONFIRMED")

	w = do(t, r, http.MethodGet, "/api/public/confirm/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Enlace inválido")
}

func TestAdminCancelledFilter(t *testing.T) {
	up := &upstream{}
	r := newRouter(t, up)

	w := do(t, r, http.MethodGet, "/api/admin/reservations?status=CANCELLED", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@revitek.cl", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Credenciales inválidas")

	bearer := login(t, r)

	w = do(t, r, http.MethodGet, "/api/admin/reservations?status=CANCELLED", nil, "Authorization", bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	list := decode[struct {
		Data []struct {
			ID      uint   `json:"id"`
			Status  string `json:"status"`
			Actions struct {
				Confirm  bool `json:"confirm"`
				Complete bool `json:"complete"`
				Cancel   bool `json:"cancel"`
			} `json:"actions"`
		} `json:"data"`
	}](t, w)
	require.Len(t, list.Data, 2)
	for _, row := range list.Data {
		assert.Equal(t, "CANCELLED", row.Status)
		assert.False(t, row.Actions.Cancel)
	}
	assert.Contains(t, up.listQuery[0], "include_cancelled=true")

	w = do(t, r, http.MethodPost, "/api/admin/reservations/3/cancel", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/api/auth/logout", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodGet, "/api/me", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
