package dto

import (
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/domain/reservation"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
)

// ReservationRowDTO is one line of the admin reservations table.
type ReservationRowDTO struct {
	ID             uint                     `json:"id"`
	Status         models.ReservationStatus `json:"status"`
	Start          *models.Timestamp        `json:"inicio"`
	End            *models.Timestamp        `json:"fin"`
	ProfessionalID uint                     `json:"profesional_id,omitempty"`
	ClientName     string                   `json:"client_name"`
	ClientPhone    string                   `json:"client_phone"`
	LicensePlate   string                   `json:"license_plate"`
	Services       []string                 `json:"services"`
	TotalMin       int                      `json:"total_min"`
	Note           string                   `json:"note"`
	CancelledBy    *string                  `json:"cancelled_by"`
	Actions        reservation.Actions      `json:"actions"`
}

func ReservationRow(r models.Reservation) ReservationRowDTO {
	row := ReservationRowDTO{
		ID:          r.ID,
		Status:      r.Status,
		TotalMin:    r.TotalMin,
		Note:        r.Note,
		CancelledBy: r.CancelledBy,
		Services:    make([]string, 0, len(r.Services)),
		Actions:     reservation.ActionsFor(r.Status),
	}
	if s := r.SlotsSummary; s != nil {
		start, end := s.Start, s.End
		row.Start, row.End = &start, &end
		row.ProfessionalID = s.ProfessionalID
	}
	if c := r.ClientInfo; c != nil {
		row.ClientName = c.FullName()
		row.ClientPhone = c.Phone
	}
	if v := r.EffectiveVehicle(); v != nil {
		row.LicensePlate = v.LicensePlate
	}
	for _, svc := range r.Services {
		row.Services = append(row.Services, svc.ServiceName)
	}
	return row
}

func ReservationRows(items []models.Reservation) []ReservationRowDTO {
	rows := make([]ReservationRowDTO, 0, len(items))
	for _, r := range items {
		rows = append(rows, ReservationRow(r))
	}
	return rows
}
