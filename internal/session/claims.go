package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is what the access token says about its holder. The token is issued
// and verified by the agenda backend; the gateway only reads it.
type User struct {
	UserID         uint   `json:"user_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	IsStaff        bool   `json:"is_staff"`
	ProfessionalID *uint  `json:"professional_id,omitempty"`
}

// CanAdmin reports whether the user may enter the back-office.
func (u User) CanAdmin() bool {
	return u.IsStaff || u.ProfessionalID != nil
}

var (
	ErrInvalidToken = errors.New("invalid access token")
	ErrExpiredToken = errors.New("access token expired")
)

// DecodeUser reads the user claims from an access token without checking
// its signature.
func DecodeUser(access string) (User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, ok := number(claims["user_id"])
	if !ok {
		return User{}, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}
	u := User{UserID: id}
	u.Name, _ = claims["name"].(string)
	u.Email, _ = claims["email"].(string)
	u.IsStaff, _ = claims["is_staff"].(bool)
	if pid, ok := number(claims["professional_id"]); ok {
		u.ProfessionalID = &pid
	}
	return u, nil
}

func number(v any) (uint, bool) {
	f, ok := v.(float64)
	if !ok || f < 0 {
		return 0, false
	}
	return uint(f), true
}

// Expired reports whether the token's exp claim is at or before now. A token
// without exp does not expire here; one that does not parse always has.
func Expired(access string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	return exp != nil && !now.Before(exp.Time)
}
