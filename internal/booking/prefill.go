package booking

import (
	"context"
	"strings"

	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/models"
	"github.com/NavaUDP/Agenda-Revitek-sub000/internal/validators"
)

const minLookupEmailLen = 5

type Lookuper interface {
	LookupClient(ctx context.Context, email, phone string) (*models.ClientLookup, error)
}

// lookupKey decides whether a blur on email/phone is worth a lookup and
// which of the two to send.
func lookupKey(email, phone string) (string, string, bool) {
	email = strings.TrimSpace(email)
	if len(email) >= minLookupEmailLen && strings.Contains(email, "@") {
		return email, "", true
	}
	if validators.HasMinDigits(phone, 8) {
		return "", validators.Digits(phone), true
	}
	return "", "", false
}

// Prefill copies every non-empty field of a lookup answer into the form.
// Region and commune are never touched: the answer has no ids for them.
// Returns the json names of the fields it filled.
func Prefill(f *Form, res *models.ClientLookup) []string {
	if res == nil || !res.Found {
		return nil
	}
	var filled []string
	set := func(dst *string, v, name string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
			filled = append(filled, name)
		}
	}

	if c := res.Client; c != nil {
		set(&f.FirstName, c.FirstName, "first_name")
		set(&f.LastName, c.LastName, "last_name")
		set(&f.Email, c.Email, "email")
		set(&f.Phone, validators.StripCountryPrefix(c.Phone), "phone")
	}
	if v := res.Vehicle; v != nil {
		set(&f.LicensePlate, v.LicensePlate, "license_plate")
		set(&f.Brand, v.Brand, "brand")
		set(&f.Model, v.Model, "model")
	}
	if a := res.Address; a != nil {
		set(&f.Street, a.Street, "street")
		set(&f.Number, a.Number, "number")
	}
	return filled
}
