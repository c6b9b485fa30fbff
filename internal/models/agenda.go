package models

type Slot struct {
	ID             uint      `json:"id"`
	ProfessionalID uint      `json:"profesional"`
	Fecha          string    `json:"fecha"`
	Start          Timestamp `json:"inicio"`
	End            Timestamp `json:"fin"`
	Status         string    `json:"estado"`
}

// AggregatedSlot is a window in which every selected service fits, with the
// professionals able to take it and the raw slot ids backing it.
type AggregatedSlot struct {
	Start         Timestamp `json:"inicio"`
	End           Timestamp `json:"fin"`
	Professionals []uint    `json:"professionals"`
	SlotIDs       []uint    `json:"slot_ids"`
}

type AvailabilityRequest struct {
	Services []uint `json:"services"`
	Fecha    string `json:"fecha"`
}

type SlotBlock struct {
	ID             uint      `json:"id,omitempty"`
	ProfessionalID uint      `json:"profesional" binding:"required"`
	Fecha          string    `json:"fecha" binding:"required"`
	Start          Timestamp `json:"inicio"`
	End            Timestamp `json:"fin"`
	Reason         string    `json:"razon"`
}

type Professional struct {
	ID                  uint   `json:"id,omitempty"`
	FirstName           string `json:"first_name" binding:"required"`
	LastName            string `json:"last_name" binding:"required"`
	Email               string `json:"email,omitempty" binding:"omitempty,email"`
	Phone               string `json:"phone,omitempty"`
	CalendarColor       string `json:"calendar_color"`
	Active              bool   `json:"active"`
	AcceptsReservations bool   `json:"accepts_reservations"`
	HasUser             bool   `json:"has_user"`
	UserEmail           string `json:"user_email,omitempty"`
}

func (p Professional) FullName() string {
	return ClientInfo{FirstName: p.FirstName, LastName: p.LastName}.FullName()
}

type Break struct {
	ID         uint   `json:"id,omitempty"`
	ScheduleID uint   `json:"schedule,omitempty"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
}

type WorkSchedule struct {
	ID             uint    `json:"id,omitempty"`
	ProfessionalID uint    `json:"profesional" binding:"required"`
	Weekday        *int    `json:"weekday" binding:"required,min=0,max=6"`
	StartTime      string  `json:"start_time" binding:"required"`
	EndTime        string  `json:"end_time" binding:"required"`
	Active         bool    `json:"active"`
	Breaks         []Break `json:"breaks,omitempty"`
}
