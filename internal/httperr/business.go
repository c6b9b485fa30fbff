package httperr

import "errors"

// BusinessError is a rule violation detected locally, before or instead of
// calling the backend. Code is stable; Msg is for humans.
type BusinessError struct {
	Code string
	Msg  string
}

func (e BusinessError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessMsg(code, msg string) error {
	return BusinessError{Code: code, Msg: msg}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
