package adoption

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxNameLength  = 100
	MaxEmailLength = 255
)

// Los mensajes son los que muestra el sitio tal cual.
var (
	ErrMissingFields = errors.New("Faltan campos requeridos")
	ErrInvalidEmail  = errors.New("Email inválido")
	ErrFieldTooLong  = errors.New("Los campos exceden la longitud máxima")
)

// \s de Go es solo ASCII; \v y \p{Z} cubren NBSP, U+2028 y el resto de espacios Unicode.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}@]+@[^\s\v\p{Z}@]+\.[^\s\v\p{Z}@]+$`)

// Request es el pedido de información de adopción que llega desde el sitio.
type Request struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	ShelterAddress string `json:"shelterAddress"`
}

// Validate corta en el primer error: faltantes, formato de email, largo.
// Un campo solo con espacios cuenta como faltante (el sitio solo rechazaba el vacío).
// El largo se cuenta en runes, no en bytes ni en unidades UTF-16 como el sitio:
// un emoji cuenta 1 acá y 2 allá.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Name) == "" ||
		strings.TrimSpace(r.Email) == "" ||
		strings.TrimSpace(r.ShelterAddress) == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(r.Email) {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(r.Name) > MaxNameLength || utf8.RuneCountInString(r.Email) > MaxEmailLength {
		return ErrFieldTooLong
	}
	return nil
}

// IsValidation indica si err es un error de validación (400).
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrFieldTooLong)
}

// Record es lo que guardan los recorders para seguimiento manual.
type Record struct {
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	ShelterAddress string    `json:"shelter_address"`
	ReceivedAt     time.Time `json:"received_at"`
}
