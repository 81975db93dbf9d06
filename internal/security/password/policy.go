package password

import "errors"

// Política mínima para el signup. El mensaje es visible al usuario.
var (
	ErrTooShort = errors.New("Password must be at least 8 characters")
	ErrTooLong  = errors.New("Password must be no more than 128 characters")
)

const (
	MinLen = 8
	MaxLen = 128
)

// Validate chequea la política sobre el plaintext, antes de hashear.
func Validate(plain string) error {
	if len(plain) < MinLen {
		return ErrTooShort
	}
	if len(plain) > MaxLen {
		return ErrTooLong
	}
	return nil
}
