package booking

import (
	"strings"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/validators"
)

// Form holds the client, vehicle and address fields of a booking.
type Form struct {
	FirstName string `json:"first_name" validate:"notblank"`
	LastName  string `json:"last_name" validate:"notblank"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,phone"`

	RegionID  uint   `json:"region_id" validate:"gt=0"`
	CommuneID uint   `json:"commune_id" validate:"gt=0"`
	Street    string `json:"street" validate:"notblank"`
	Number    string `json:"number" validate:"notblank"`

	LicensePlate string `json:"license_plate" validate:"notblank"`
	Brand        string `json:"brand" validate:"notblank"`
	Model        string `json:"model" validate:"notblank"`

	Note string `json:"note"`
}

// FormPatch carries only the fields the user touched.
type FormPatch struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	RegionID     *uint   `json:"region_id"`
	CommuneID    *uint   `json:"commune_id"`
	Street       *string `json:"street"`
	Number       *string `json:"number"`
	LicensePlate *string `json:"license_plate"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	Note         *string `json:"note"`
}

func (f *Form) Apply(p FormPatch) {
	setString(&f.FirstName, p.FirstName)
	setString(&f.LastName, p.LastName)
	setString(&f.Email, p.Email)
	setString(&f.Phone, p.Phone)
	setString(&f.Street, p.Street)
	setString(&f.Number, p.Number)
	setString(&f.LicensePlate, p.LicensePlate)
	setString(&f.Brand, p.Brand)
	setString(&f.Model, p.Model)
	setString(&f.Note, p.Note)

	if p.RegionID != nil {
		// a new region invalidates the commune picked under the old one
		if *p.RegionID != f.RegionID && p.CommuneID == nil {
			f.CommuneID = 0
		}
		f.RegionID = *p.RegionID
	}
	if p.CommuneID != nil {
		f.CommuneID = *p.CommuneID
	}
}

func (f Form) PatchOf() FormPatch {
	return FormPatch{
		FirstName:    &f.FirstName,
		LastName:     &f.LastName,
		Email:        &f.Email,
		Phone:        &f.Phone,
		RegionID:     &f.RegionID,
		CommuneID:    &f.CommuneID,
		Street:       &f.Street,
		Number:       &f.Number,
		LicensePlate: &f.LicensePlate,
		Brand:        &f.Brand,
		Model:        &f.Model,
		Note:         &f.Note,
	}
}

// Validate returns per-field messages, or nil when the form can be sent.
func (f Form) Validate() map[string]string {
	return validators.FieldErrors(validators.Validator().Struct(f))
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
