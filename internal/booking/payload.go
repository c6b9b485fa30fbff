package booking

import (
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/validators"
)

// Selection is the slot a user picked, resolved to one professional and one
// backing slot id.
type Selection struct {
	Slot           models.AggregatedSlot `json:"slot"`
	ProfessionalID uint                  `json:"professional_id"`
	SlotID         uint                  `json:"slot_id"`
}

// BuildPayload packs a selection and a validated form into the backend
// creation body. Every selected service goes to the same professional.
func BuildPayload(sel Selection, serviceIDs []uint, f Form, captchaToken string) models.CreateReservationRequest {
	lines := make([]models.ReservationServiceLine, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		lines = append(lines, models.ReservationServiceLine{ServiceID: id, ProfessionalID: sel.ProfessionalID})
	}

	return models.CreateReservationRequest{
		Client: models.ClientInfo{
			FirstName: f.FirstName,
			LastName:  f.LastName,
			Email:     f.Email,
			Phone:     validators.Digits(f.Phone),
		},
		Vehicle: models.Vehicle{
			LicensePlate: validators.NormalizePlate(f.LicensePlate),
			Brand:        f.Brand,
			Model:        f.Model,
		},
		Address: models.Address{
			CommuneID: f.CommuneID,
			Street:    f.Street,
			Number:    f.Number,
		},
		SlotID:         sel.SlotID,
		ProfessionalID: sel.ProfessionalID,
		Services:       lines,
		Note:           f.Note,
		RecaptchaToken: captchaToken,
	}
}
