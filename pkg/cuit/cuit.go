// Package cuit valida y normaliza la Clave Única de Identificación Tributaria (AFIP, Argentina).
package cuit

import (
	"errors"
	"fmt"
)

// Length cantidad de dígitos de una CUIT/CUIL.
const Length = 11

// pesos del algoritmo módulo 11 aplicados a los 10 primeros dígitos, de izquierda a derecha.
var weights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// ErrInvalid se devuelve (envuelto) para cualquier CUIT que no supere la validación.
var ErrInvalid = errors.New("cuit inválida")

// Normalize devuelve solo los dígitos ASCII de s: "20-12345678-6" -> "20123456786".
func Normalize(s string) string {
	out := make([]byte, 0, Length)
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			out = append(out, c)
		}
	}
	return string(out)
}

// Validate verifica longitud y dígito verificador. Acepta guiones, puntos y espacios.
func Validate(s string) error {
	digits := Normalize(s)
	if len(digits) != Length {
		return fmt.Errorf("%w: debe tener %d dígitos, se encontraron %d", ErrInvalid, Length, len(digits))
	}
	expected, err := VerificationDigit(digits[:Length-1])
	if err != nil {
		return err
	}
	if digits[Length-1] != expected {
		return fmt.Errorf("%w: dígito verificador esperado %c, recibido %c", ErrInvalid, expected, digits[Length-1])
	}
	return nil
}

// IsValid es el atajo booleano de Validate.
func IsValid(s string) bool {
	return Validate(s) == nil
}

// VerificationDigit calcula el dígito verificador para los 10 primeros dígitos.
// Un resto de 10 no tiene dígito posible: AFIP no emite esas claves.
func VerificationDigit(base string) (byte, error) {
	digits := Normalize(base)
	if len(digits) != Length-1 {
		return 0, fmt.Errorf("%w: se requieren %d dígitos para calcular el verificador", ErrInvalid, Length-1)
	}
	var sum int
	for i := 0; i < Length-1; i++ {
		sum += int(digits[i]-'0') * weights[i]
	}
	switch r := 11 - sum%11; r {
	case 11:
		return '0', nil
	case 10:
		return 0, fmt.Errorf("%w: combinación sin dígito verificador", ErrInvalid)
	default:
		return byte('0' + r), nil
	}
}

// Format presenta la CUIT como XX-XXXXXXXX-X. Si no tiene 11 dígitos la devuelve normalizada.
func Format(s string) string {
	d := Normalize(s)
	if len(d) != Length {
		return d
	}
	return d[:2] + "-" + d[2:10] + "-" + d[10:]
}
