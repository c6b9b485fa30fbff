package models

type ReservationStatus string

const (
	StatusPending       ReservationStatus = "PENDING"
	StatusConfirmed     ReservationStatus = "CONFIRMED"
	StatusReconfirmed   ReservationStatus = "RECONFIRMED"
	StatusWaitingClient ReservationStatus = "WAITING_CLIENT"
	StatusInProgress    ReservationStatus = "IN_PROGRESS"
	StatusCompleted     ReservationStatus = "COMPLETED"
	StatusCancelled     ReservationStatus = "CANCELLED"
	StatusNoShow        ReservationStatus = "NO_SHOW"
)

var AllStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusReconfirmed,
	StatusWaitingClient,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

func (s ReservationStatus) Valid() bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type ReservationService struct {
	ServiceID      uint   `json:"service_id"`
	ServiceName    string `json:"service_name,omitempty"`
	DurationMin    int    `json:"duration_min"`
	ProfessionalID uint   `json:"professional_id"`
}

// SlotsSummary is the time window actually assigned to a reservation.
type SlotsSummary struct {
	Start          Timestamp `json:"inicio"`
	End            Timestamp `json:"fin"`
	ProfessionalID uint      `json:"profesional_id"`
}

type ClientInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (c ClientInfo) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type Address struct {
	ID         uint   `json:"id,omitempty"`
	RegionID   uint   `json:"region_id,omitempty"`
	CommuneID  uint   `json:"commune_id,omitempty"`
	Commune    string `json:"commune,omitempty"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
}

type Vehicle struct {
	ID           uint   `json:"id,omitempty"`
	LicensePlate string `json:"license_plate"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Year         int    `json:"year,omitempty"`
}

type Reservation struct {
	ID          uint                 `json:"id"`
	Status      ReservationStatus    `json:"status"`
	TotalMin    int                  `json:"total_min"`
	Note        string               `json:"note"`
	CreatedAt   Timestamp            `json:"created_at"`
	CancelledBy *string              `json:"cancelled_by"`
	Services    []ReservationService `json:"services"`

	SlotsSummary *SlotsSummary `json:"slots_summary"`

	ClientInfo      *ClientInfo `json:"client_info"`
	Address         *Address    `json:"address"`
	Vehicle         *Vehicle    `json:"vehicle"`
	ClientAddresses []Address   `json:"client_addresses,omitempty"`
	ClientVehicles  []Vehicle   `json:"client_vehicles,omitempty"`
}

// EffectiveAddress returns the reservation address, or the client's first
// known address when the reservation has none of its own.
func (r Reservation) EffectiveAddress() *Address {
	if r.Address != nil {
		return r.Address
	}
	if len(r.ClientAddresses) > 0 {
		a := r.ClientAddresses[0]
		return &a
	}
	return nil
}

func (r Reservation) EffectiveVehicle() *Vehicle {
	if r.Vehicle != nil {
		return r.Vehicle
	}
	if len(r.ClientVehicles) > 0 {
		v := r.ClientVehicles[0]
		return &v
	}
	return nil
}

// ReservationServiceLine is one service inside a creation payload.
type ReservationServiceLine struct {
	ServiceID      uint `json:"service_id"`
	ProfessionalID uint `json:"professional_id"`
}

// CreateReservationRequest is the body posted to the backend to book.
type CreateReservationRequest struct {
	Client         ClientInfo               `json:"client"`
	Vehicle        Vehicle                  `json:"vehicle"`
	Address        Address                  `json:"address"`
	SlotID         uint                     `json:"slot_id"`
	ProfessionalID uint                     `json:"professional_id"`
	Services       []ReservationServiceLine `json:"services"`
	Note           string                   `json:"note,omitempty"`
	RecaptchaToken string                   `json:"recaptcha_token"`
}

type ReservationFilter struct {
	Fecha            string
	Status           ReservationStatus
	ProfessionalID   uint
	IncludeCancelled bool
}

type ConfirmationResult struct {
	ReservationID uint              `json:"reservation_id"`
	Status        ReservationStatus `json:"status"`
	Message       string            `json:"message"`
}
