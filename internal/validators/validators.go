package validators

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const minPhoneDigits = 8

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the agenda rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		register(validate)
	})
	return validate
}

// RegisterGin installs the same rules on gin's binding engine so
// `binding:"phone"` works in request structs.
func RegisterGin() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
}

func register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return HasMinDigits(fl.Field().String(), minPhoneDigits)
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func HasMinDigits(s string, n int) bool {
	return len(Digits(s)) >= n
}

// StripCountryPrefix removes the Chilean +56 prefix from a phone number and
// returns only its digits.
func StripCountryPrefix(phone string) string {
	d := Digits(phone)
	if strings.HasPrefix(d, "56") && len(d) > 9 {
		return d[2:]
	}
	return d
}

func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.Join(strings.FieldsFunc(plate, func(r rune) bool {
		return r == ' ' || r == '-' || r == '.' || r == '·'
	}), ""))
}

var messages = map[string]string{
	"required": "Campo obligatorio.",
	"notblank": "Campo obligatorio.",
	"email":    "Correo electrónico inválido.",
	"phone":    "El teléfono debe tener al menos 8 dígitos.",
	"gt":       "Selecciona una opción.",
	"gtfield":  "Debe ser posterior al inicio.",
	"oneof":    "Valor no permitido.",
	"min":      "Valor demasiado corto.",
	"max":      "Valor demasiado largo.",
}

// FieldErrors turns a validator error into json-field → message pairs.
// Errors of any other kind come back under the "_" key.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "Valor inválido."
		}
		out[fe.Field()] = msg
	}
	return out
}
